package models

import "time"

// TokenPair — пара токенов, выдаваемая при проверке OTP и при refresh.
//
// Описание:
//   - AccessToken — короткоживущий JWT для доступа к API;
//   - RefreshToken — случайный секрет, который клиент хранит и предъявляет
//     для выпуска нового access-токена; на сервере хранится только его хэш;
//   - ExpiresAt — момент истечения access-токена (UTC).
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
