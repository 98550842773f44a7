package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken — выпущенный JWT; неизменяем после создания.
// Срок жизни контролируется только собственным exp-клеймом,
// по хранилищу он повторно не проверяется.
type AccessToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// RefreshToken — данные refresh-токена для управления сессиями.
// В БД хранится только хэш секрета (sha256 → base64url);
// единственная мутация — установка Revoked=true.
type RefreshToken struct {
	ID        uuid.UUID
	TokenHash string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
}
