package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Leplik500/rebuilder-user-service/internal/models"
	"github.com/Leplik500/rebuilder-user-service/internal/pkg/log"
	"github.com/Leplik500/rebuilder-user-service/internal/storage"
	"github.com/google/uuid"
)

// UpdateSettingsInput — частичное обновление настроек.
// nil-поле означает "не менять".
type UpdateSettingsInput struct {
	Theme    *string
	Language *string
}

// UpdateProfileInput — частичное обновление анкеты.
// nil-поле означает "не менять".
type UpdateProfileInput struct {
	Weight        *int
	Height        *int
	Age           *int
	Gender        *string
	ActivityLevel *string
	FitnessGoal   *string
}

// ProfileByUserID возвращает анкету пользователя.
func (s *Service) ProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	const op = "service.users.ProfileByUserID"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile, err := s.storage.ProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}

		return nil, failInternal(op, err)
	}

	return profile, nil
}

// UpdateProfile применяет частичное обновление анкеты пользователя
// и возвращает её итоговое состояние. Числовые поля проверяются по тем же
// границам, что и при регистрации; enum-поля — через канонические Parse.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.Profile, error) {
	const op = "service.users.UpdateProfile"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lg := log.From(ctx)

	profile, err := s.storage.ProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}

		return nil, failInternal(op, err)
	}

	limits := s.cfg.Limits

	if input.Weight != nil {
		if *input.Weight < limits.WeightMin || *input.Weight > limits.WeightMax {
			return nil, fmt.Errorf("%s: %w: weight must be between %d and %d", op, ErrInvalidArgument, limits.WeightMin, limits.WeightMax)
		}
		profile.Weight = *input.Weight
	}

	if input.Height != nil {
		if *input.Height < limits.HeightMin || *input.Height > limits.HeightMax {
			return nil, fmt.Errorf("%s: %w: height must be between %d and %d", op, ErrInvalidArgument, limits.HeightMin, limits.HeightMax)
		}
		profile.Height = *input.Height
	}

	if input.Age != nil {
		if *input.Age < limits.AgeMin || *input.Age > limits.AgeMax {
			return nil, fmt.Errorf("%s: %w: age must be between %d and %d", op, ErrInvalidArgument, limits.AgeMin, limits.AgeMax)
		}
		profile.Age = *input.Age
	}

	if input.Gender != nil {
		gender, err := models.ParseGender(*input.Gender)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
		}
		profile.Gender = gender
	}

	if input.ActivityLevel != nil {
		activity, err := models.ParseActivityLevel(*input.ActivityLevel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
		}
		profile.ActivityLevel = activity
	}

	if input.FitnessGoal != nil {
		goal, err := models.ParseFitnessGoal(*input.FitnessGoal)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
		}
		profile.FitnessGoal = goal
	}

	profile.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateProfile(ctx, profile); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}

		return nil, failInternal(op, err)
	}

	lg.Info("profile_updated",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	return profile, nil
}

// SettingsByUserID возвращает настройки пользователя.
func (s *Service) SettingsByUserID(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	const op = "service.users.SettingsByUserID"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings, err := s.storage.SettingsByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrSettingsNotFound)
		}

		return nil, failInternal(op, err)
	}

	return settings, nil
}

// UpdateSettings применяет частичное обновление настроек пользователя
// и возвращает их итоговое состояние.
func (s *Service) UpdateSettings(ctx context.Context, userID uuid.UUID, input UpdateSettingsInput) (*models.Settings, error) {
	const op = "service.users.UpdateSettings"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lg := log.From(ctx)

	settings, err := s.storage.SettingsByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrSettingsNotFound)
		}

		return nil, failInternal(op, err)
	}

	if input.Theme != nil {
		theme, err := models.ParseTheme(*input.Theme)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
		}
		settings.Theme = theme
	}

	if input.Language != nil {
		lang, err := models.ParseLanguage(*input.Language)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
		}
		settings.Language = lang
	}

	settings.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateSettings(ctx, settings); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrSettingsNotFound)
		}

		return nil, failInternal(op, err)
	}

	lg.Info("settings_updated",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	return settings, nil
}
