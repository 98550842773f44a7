// storage задаёт контракты персистентности user-сервиса.
// Контракты нарезаны по агрегатам (пользователь, OTP, токены, профиль,
// настройки); реализация — internal/storage/postgres.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Leplik500/rebuilder-user-service/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound — запись не найдена (пользователь/OTP/токен/настройки).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/username/refresh-token).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// CreateUser атомарно создаёт пользователя вместе с анкетой и настройками.
	CreateUser(ctx context.Context, user *models.User, profile *models.Profile, settings *models.Settings) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByUsername находит пользователя по имени.
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// OTPStorage выполняет операции над одноразовыми кодами.
type OTPStorage interface {
	// SaveOTP сохраняет новый одноразовый код.
	SaveOTP(ctx context.Context, otp *models.OneTimePassword) error
	// ActiveOTPByUserID возвращает действующий код пользователя
	// (used = false и expires_at > now) либо ErrNotFound.
	ActiveOTPByUserID(ctx context.Context, userID uuid.UUID, now time.Time) (*models.OneTimePassword, error)
	// InvalidateActiveOTPs помечает использованными все действующие коды
	// пользователя одним запросом; возвращает число затронутых записей.
	InvalidateActiveOTPs(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error)
	// MarkOTPUsed помечает конкретный код использованным.
	MarkOTPUsed(ctx context.Context, id uuid.UUID) error
}

// AccessTokenStorage выполняет операции над access-токенами.
type AccessTokenStorage interface {
	// SaveAccessToken сохраняет выпущенный access-токен.
	SaveAccessToken(ctx context.Context, token *models.AccessToken) error
}

// RefreshTokenStorage выполняет операции над refresh-токенами.
type RefreshTokenStorage interface {
	// SaveRefreshToken сохраняет новый refresh-токен.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// RefreshTokenByHash находит refresh-токен по его хэшу.
	RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	// RevokeRefreshToken пытается отозвать refresh-токен.
	// Возвращает:
	//	(true, nil)  — токен был активен и отозван сейчас;
	//	(false, nil) — токен существует, но уже был отозван;
	//	(false, ErrNotFound) — токен не найден.
	RevokeRefreshToken(ctx context.Context, hash string) (bool, error)
	// DeleteExpiredTokens удаляет все просроченные refresh-токены.
	DeleteExpiredTokens(ctx context.Context, now time.Time) error
}

// ProfileStorage выполняет операции над анкетами.
type ProfileStorage interface {
	// ProfileByUserID находит анкету по ID пользователя.
	ProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	// UpdateProfile перезаписывает анкету пользователя.
	UpdateProfile(ctx context.Context, profile *models.Profile) error
}

// SettingsStorage выполняет операции над настройками пользователя.
type SettingsStorage interface {
	// SettingsByUserID находит настройки по ID пользователя.
	SettingsByUserID(ctx context.Context, userID uuid.UUID) (*models.Settings, error)
	// UpdateSettings перезаписывает настройки пользователя.
	UpdateSettings(ctx context.Context, settings *models.Settings) error
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	OTPStorage
	AccessTokenStorage
	RefreshTokenStorage
	ProfileStorage
	SettingsStorage
	Close()
}
