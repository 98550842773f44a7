package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leplik500/rebuilder-user-service/internal/models"
	"github.com/Leplik500/rebuilder-user-service/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileByUserID находит анкету по ID пользователя.
func (s *Storage) ProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	const op = "storage.postgres.ProfileByUserID"

	const query = `
		SELECT user_id, weight, height, age, gender, activity_level, fitness_goal, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var (
		profile  models.Profile
		gender   int16
		activity int16
		goal     int16
	)

	err := s.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Weight,
		&profile.Height,
		&profile.Age,
		&gender,
		&activity,
		&goal,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile.Gender = models.Gender(gender)
	profile.ActivityLevel = models.ActivityLevel(activity)
	profile.FitnessGoal = models.FitnessGoal(goal)

	return &profile, nil
}

// UpdateProfile перезаписывает анкету пользователя.
func (s *Storage) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	const op = "storage.postgres.UpdateProfile"

	const query = `
		UPDATE profiles
		SET weight = $2, height = $3, age = $4, gender = $5, activity_level = $6, fitness_goal = $7, updated_at = $8
		WHERE user_id = $1
	`

	cmdTag, err := s.db.Exec(ctx, query,
		profile.UserID,
		profile.Weight,
		profile.Height,
		profile.Age,
		int16(profile.Gender),
		int16(profile.ActivityLevel),
		int16(profile.FitnessGoal),
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// SettingsByUserID находит настройки по ID пользователя.
func (s *Storage) SettingsByUserID(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	const op = "storage.postgres.SettingsByUserID"

	const query = `
		SELECT user_id, theme, language, created_at, updated_at
		FROM settings
		WHERE user_id = $1
	`

	var (
		settings models.Settings
		theme    int16
		language int16
	)

	err := s.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&theme,
		&language,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	settings.Theme = models.Theme(theme)
	settings.Language = models.Language(language)

	return &settings, nil
}

// UpdateSettings перезаписывает настройки пользователя.
func (s *Storage) UpdateSettings(ctx context.Context, settings *models.Settings) error {
	const op = "storage.postgres.UpdateSettings"

	const query = `
		UPDATE settings
		SET theme = $2, language = $3, updated_at = $4
		WHERE user_id = $1
	`

	cmdTag, err := s.db.Exec(ctx, query,
		settings.UserID,
		int16(settings.Theme),
		int16(settings.Language),
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
