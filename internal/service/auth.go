package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/Leplik500/rebuilder-user-service/internal/models"
	"github.com/Leplik500/rebuilder-user-service/internal/pkg/log"
	"github.com/Leplik500/rebuilder-user-service/internal/pkg/redact"
	"github.com/Leplik500/rebuilder-user-service/internal/storage"
	"github.com/google/uuid"
)

// RegisterUserInput — входные данные регистрации.
// Строковые enum-поля принимаются в канонической форме
// (см. models.ParseGender и далее).
type RegisterUserInput struct {
	Username      string
	Email         string
	Weight        int
	Height        int
	Age           int
	Gender        string
	ActivityLevel string
	FitnessGoal   string
}

// RequestOTP выпускает новый одноразовый код для пользователя с данным e-mail.
//
// Порядок шагов фиксирован:
//  1. валидация e-mail (без обращения к хранилищу);
//  2. поиск пользователя;
//  3. инвалидация всех действующих кодов (один условный UPDATE);
//  4. генерация нового кода;
//  5. отправка письма — до записи в БД: неотправленный код не должен
//     существовать, проваленная отправка оставляет ноль действующих кодов;
//  6. сохранение нового кода.
func (s *Service) RequestOTP(ctx context.Context, email string) error {
	const op = "service.auth.RequestOTP"

	if err := ctx.Err(); err != nil {
		return err
	}

	lg := log.From(ctx)

	normEmail, err := validateEmail(email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return failInternal(op, err)
	}

	now := time.Now().UTC()

	invalidated, err := s.storage.InvalidateActiveOTPs(ctx, user.ID, now)
	if err != nil {
		return failInternal(op, err)
	}
	if invalidated > 0 {
		lg.Info("previous_otps_invalidated",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
			slog.Int64("count", invalidated),
		)
	}

	code, err := s.otpGen.GenerateCode(s.cfg.Auth.OTPLength)
	if err != nil {
		lg.Error("otp_generate_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return failInternal(op, err)
	}

	if err := s.sender.SendOTP(ctx, normEmail, code); err != nil {
		lg.Error("otp_send_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
			slog.String("err", err.Error()),
		)
		return failInternal(op, err)
	}

	otp := &models.OneTimePassword{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.Auth.OTPTTL),
		Used:      false,
	}

	if err := s.storage.SaveOTP(ctx, otp); err != nil {
		return failInternal(op, err)
	}

	lg.Info("otp_issued",
		slog.String("op", op),
		slog.String("email", redact.Email(normEmail)),
	)

	return nil
}

// VerifyOTP проверяет предъявленный код и выпускает пару токенов.
//
// Проверки выполняются в фиксированном порядке: формат входа → пользователь →
// наличие действующего кода → срок → использованность → совпадение.
// Срок и флаг used перепроверяются после выборки: запрос уже фильтрует по ним,
// но окно гонки между выборкой и проверкой это не закрывает.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (*models.TokenPair, error) {
	const op = "service.auth.VerifyOTP"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lg := log.From(ctx)

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyOTPCode)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, failInternal(op, err)
	}

	now := time.Now().UTC()

	otp, err := s.storage.ActiveOTPByUserID(ctx, user.ID, now)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrOTPNotFound)
		}

		return nil, failInternal(op, err)
	}

	if now.After(otp.ExpiresAt) {
		return nil, fmt.Errorf("%s: %w", op, ErrOTPExpired)
	}

	if otp.Used {
		return nil, fmt.Errorf("%s: %w", op, ErrOTPAlreadyUsed)
	}

	if code != otp.Code {
		lg.Warn("otp_mismatch",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrOTPMismatch)
	}

	if err := s.storage.MarkOTPUsed(ctx, otp.ID); err != nil {
		return nil, failInternal(op, err)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, failInternal(op, err)
	}

	lg.Info("otp_verified",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
	)

	return pair, nil
}

// RefreshAccessToken выпускает новый access-токен по действующему refresh-токену.
// Сам refresh-токен НЕ ротируется: клиенту возвращается та же строка.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "service.auth.RefreshAccessToken"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyToken)
	}

	token, err := s.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, failInternal(op, err)
	}

	access, err := s.generateAccessToken(ctx, user, time.Now().UTC())
	if err != nil {
		return nil, failInternal(op, err)
	}

	return &models.TokenPair{
		AccessToken:  access.Token,
		RefreshToken: refreshToken,
		ExpiresAt:    access.ExpiresAt,
	}, nil
}

// RevokeRefreshToken отзывает refresh-токен (logout).
// Операция не идемпотентна: повторный отзыв — ошибка ErrTokenAlreadyRevoked.
func (s *Service) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	const op = "service.auth.RevokeRefreshToken"

	if err := ctx.Err(); err != nil {
		return err
	}

	lg := log.From(ctx)

	if strings.TrimSpace(refreshToken) == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyToken)
	}

	hash := hashToken(refreshToken)

	revoked, err := s.storage.RevokeRefreshToken(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrTokenNotFound)
		}

		return failInternal(op, err)
	}

	if !revoked {
		return fmt.Errorf("%s: %w", op, ErrTokenAlreadyRevoked)
	}

	// Ключ удаляется целиком: следующая проверка уйдёт в хранилище и
	// увидит revoked = true. При ошибке Redis запись доживёт до своего TTL.
	if s.rcache != nil {
		if err := s.rcache.Drop(ctx, hash); err != nil {
			lg.Warn("refresh_cache_drop_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}
	}

	lg.Info("refresh_revoked_by_user", slog.String("op", op))

	return nil
}

// RegisterUser регистрирует нового пользователя вместе с анкетой и настройками.
// Вся валидация локальна и выполняется до первого обращения к хранилищу.
func (s *Service) RegisterUser(ctx context.Context, input RegisterUserInput) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lg := log.From(ctx)

	normEmail, err := validateEmail(input.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("%s: %w: username must not be blank", op, ErrInvalidArgument)
	}

	limits := s.cfg.Limits
	if input.Weight < limits.WeightMin || input.Weight > limits.WeightMax {
		return nil, fmt.Errorf("%s: %w: weight must be between %d and %d", op, ErrInvalidArgument, limits.WeightMin, limits.WeightMax)
	}
	if input.Height < limits.HeightMin || input.Height > limits.HeightMax {
		return nil, fmt.Errorf("%s: %w: height must be between %d and %d", op, ErrInvalidArgument, limits.HeightMin, limits.HeightMax)
	}
	if input.Age < limits.AgeMin || input.Age > limits.AgeMax {
		return nil, fmt.Errorf("%s: %w: age must be between %d and %d", op, ErrInvalidArgument, limits.AgeMin, limits.AgeMax)
	}

	gender, err := models.ParseGender(input.Gender)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
	}

	activity, err := models.ParseActivityLevel(input.ActivityLevel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
	}

	goal, err := models.ParseFitnessGoal(input.FitnessGoal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
	}

	if _, err := s.storage.UserByEmail(ctx, normEmail); err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, failInternal(op, err)
	}

	if _, err := s.storage.UserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, failInternal(op, err)
	}

	now := time.Now().UTC()

	user := &models.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     normEmail,
		Role:      models.RoleMember,
		CreatedAt: now,
		UpdatedAt: now,
	}

	profile := &models.Profile{
		UserID:        user.ID,
		Weight:        input.Weight,
		Height:        input.Height,
		Age:           input.Age,
		Gender:        gender,
		ActivityLevel: activity,
		FitnessGoal:   goal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	settings := &models.Settings{
		UserID:    user.ID,
		Theme:     models.ThemeDark,
		Language:  models.LanguageEnglish,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.CreateUser(ctx, user, profile, settings); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, failInternal(op, err)
	}

	lg.Info("user_registered",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(normEmail)),
	)

	return user, nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}
