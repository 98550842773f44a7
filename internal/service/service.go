// service содержит бизнес-логику user-сервиса:
// выпуск и проверку одноразовых кодов (OTP), выдачу/обновление/отзыв
// токенов, регистрацию пользователей и работу с хранилищем через
// интерфейсы из пакета storage.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Бизнес-ошибки возвращаются значениями и далее маппятся транспортом
//     на HTTP-статусы (см. комментарии к переменным ошибок ниже).
//   - Отмена контекста — отдельный канал сигнализации: ошибки контекста
//     пробрасываются как есть и никогда не заворачиваются в ErrInternal.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leplik500/rebuilder-user-service/internal/cache"
	"github.com/Leplik500/rebuilder-user-service/internal/config"
	"github.com/Leplik500/rebuilder-user-service/internal/storage"
)

var (
	// ErrInvalidEmail — e-mail имеет некорректный формат или пуст.
	// Транспорт: HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyOTPCode — код подтверждения не передан.
	// Транспорт: HTTP 400.
	ErrEmptyOTPCode = errors.New("otp code cannot be empty")

	// ErrEmptyToken — refresh-токен не передан (пустая строка/пробелы).
	// Транспорт: HTTP 400.
	ErrEmptyToken = errors.New("refresh token cannot be empty")

	// ErrInvalidArgument — прочие некорректные входные данные; в обёртке
	// указывается поле и допустимые значения. Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUserNotFound — пользователь с таким e-mail/ID не зарегистрирован.
	// Транспорт: HTTP 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrOTPNotFound — у пользователя нет действующего кода
	// (не выпускался, просрочен или уже использован). Транспорт: HTTP 404.
	ErrOTPNotFound = errors.New("otp not found")

	// ErrTokenNotFound — предъявленный refresh-токен отсутствует в хранилище.
	// Транспорт: HTTP 404.
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrOTPExpired — срок действия кода истёк. Транспорт: HTTP 401.
	ErrOTPExpired = errors.New("otp expired")

	// ErrOTPAlreadyUsed — код уже был использован. Транспорт: HTTP 401.
	ErrOTPAlreadyUsed = errors.New("otp already used")

	// ErrOTPMismatch — предъявленный код не совпадает с выпущенным.
	// Транспорт: HTTP 401.
	ErrOTPMismatch = errors.New("otp code does not match")

	// ErrTokenExpired — срок действия refresh-токена истёк. Транспорт: HTTP 401.
	ErrTokenExpired = errors.New("refresh token expired")

	// ErrTokenRevoked — refresh-токен отозван и недействителен независимо
	// от срока. Транспорт: HTTP 401.
	ErrTokenRevoked = errors.New("refresh token revoked")

	// ErrTokenAlreadyRevoked — повторная попытка отзыва уже отозванного
	// токена; отзыв не идемпотентен на уровне API. Транспорт: HTTP 401.
	ErrTokenAlreadyRevoked = errors.New("refresh token already revoked")

	// ErrEmailTaken — e-mail уже занят другим пользователем. Транспорт: HTTP 409.
	ErrEmailTaken = errors.New("email already exists")

	// ErrUsernameTaken — имя пользователя уже занято. Транспорт: HTTP 409.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrProfileNotFound — анкета пользователя отсутствует. Транспорт: HTTP 404.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrSettingsNotFound — настройки пользователя отсутствуют. Транспорт: HTTP 404.
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrRefreshTokenCollision — исчерпаны попытки сгенерировать уникальный
	// refresh-токен (редкие коллизии хэша при сохранении). Транспорт: HTTP 500.
	ErrRefreshTokenCollision = errors.New("refresh token collision")

	// ErrInternal — неожиданная ошибка хранилища/почты/генератора; исходное
	// сообщение сохраняется в обёртке для диагностики. Транспорт: HTTP 500.
	ErrInternal = errors.New("internal error")
)

// CodeGenerator выпускает числовые OTP-коды заданной длины.
type CodeGenerator interface {
	GenerateCode(length int) (string, error)
}

// OTPSender доставляет код на адрес пользователя.
// Любая ошибка доставки фатальна для запроса кода.
type OTPSender interface {
	SendOTP(ctx context.Context, to, code string) error
}

// Service описывает бизнес-логику user-сервиса.
type Service struct {
	storage storage.Storage
	sender  OTPSender
	otpGen  CodeGenerator
	cfg     *config.Config
	rcache  cache.RefreshCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, sender OTPSender, otpGen CodeGenerator, cfg *config.Config) *Service {
	return &Service{
		storage: storage,
		sender:  sender,
		otpGen:  otpGen,
		cfg:     cfg,
	}
}

// SetRefreshCache устанавливает кэш refresh-токенов (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}

// failInternal конвертирует неожиданную ошибку нижних слоёв в ErrInternal,
// сохраняя исходное сообщение. Ошибки контекста пробрасываются как есть:
// отмена — это не бизнес-отказ.
func failInternal(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return fmt.Errorf("%s: %w: %v", op, ErrInternal, err)
}
