package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leplik500/rebuilder-user-service/internal/models"
	"github.com/Leplik500/rebuilder-user-service/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveOTP сохраняет новый одноразовый код.
func (s *Storage) SaveOTP(ctx context.Context, otp *models.OneTimePassword) error {
	const op = "storage.postgres.SaveOTP"

	const query = `
		INSERT INTO one_time_passwords(id, user_id, code, created_at, expires_at, used)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Exec(ctx, query,
		otp.ID,
		otp.UserID,
		otp.Code,
		otp.CreatedAt,
		otp.ExpiresAt,
		otp.Used,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ActiveOTPByUserID возвращает действующий код пользователя.
// Действующих кодов по инварианту не больше одного; на случай гонки
// берётся самый свежий.
func (s *Storage) ActiveOTPByUserID(ctx context.Context, userID uuid.UUID, now time.Time) (*models.OneTimePassword, error) {
	const op = "storage.postgres.ActiveOTPByUserID"

	const query = `
		SELECT id, user_id, code, created_at, expires_at, used
		FROM one_time_passwords
		WHERE user_id = $1 AND used = FALSE AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp models.OneTimePassword
	err := s.db.QueryRow(ctx, query, userID, now).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Code,
		&otp.CreatedAt,
		&otp.ExpiresAt,
		&otp.Used,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &otp, nil
}

// InvalidateActiveOTPs помечает использованными все действующие коды пользователя.
// Один условный UPDATE — операция атомарна сама по себе.
func (s *Storage) InvalidateActiveOTPs(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	const op = "storage.postgres.InvalidateActiveOTPs"

	const query = `
		UPDATE one_time_passwords
		SET used = TRUE
		WHERE user_id = $1 AND used = FALSE AND expires_at > $2
	`

	cmdTag, err := s.db.Exec(ctx, query, userID, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected(), nil
}

// MarkOTPUsed помечает конкретный код использованным.
func (s *Storage) MarkOTPUsed(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.MarkOTPUsed"

	const query = `
		UPDATE one_time_passwords
		SET used = TRUE
		WHERE id = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
