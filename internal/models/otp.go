package models

import (
	"time"

	"github.com/google/uuid"
)

// OneTimePassword — одноразовый код подтверждения, отправляемый на e-mail.
//
// Запись никогда не удаляется бизнес-логикой (остаётся историей);
// единственная мутация — установка Used=true при успешной проверке
// или при инвалидации в момент выпуска нового кода.
type OneTimePassword struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// Active сообщает, пригоден ли код для проверки в момент now.
func (o *OneTimePassword) Active(now time.Time) bool {
	return !o.Used && now.Before(o.ExpiresAt)
}
