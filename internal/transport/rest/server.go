// transport/rest содержит реализацию HTTP-эндпоинтов user-сервиса.
// Здесь выполняется только маппинг данных и ошибок доменного слоя (service)
// в HTTP. Вся валидация и бизнес-логика находятся в пакете service.
//
// Принципы:
//   - Контекст запроса прокидывается в сервис без потерь;
//   - Ошибки сервиса явно транслируются в HTTP-статусы:
//   - ErrInvalidEmail/ErrEmptyOTPCode/ErrEmptyToken/ErrInvalidArgument -> 400;
//   - ErrUserNotFound/ErrOTPNotFound/ErrTokenNotFound/ErrProfileNotFound/
//     ErrSettingsNotFound -> 404;
//   - ErrEmailTaken/ErrUsernameTaken -> 409;
//   - ErrOTPExpired/ErrOTPAlreadyUsed/ErrOTPMismatch/ErrTokenExpired/
//     ErrTokenRevoked/ErrTokenAlreadyRevoked -> 401;
//   - иные ошибки -> 500 c единым безопасным сообщением.
//
// Безопасность:
//   - Для 500 наружу не утекают детали внутренних ошибок; подробности должны
//     попадать в логи через middleware на уровне сервера.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Leplik500/rebuilder-user-service/internal/middleware"
	"github.com/Leplik500/rebuilder-user-service/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server — HTTP-сервер user-сервиса поверх сервисного слоя.
type Server struct {
	service *service.Service
}

// NewServer создаёт HTTP-сервер поверх сервисного слоя.
func NewServer(service *service.Service) *Server {
	return &Server{service: service}
}

// Router собирает маршрутизатор со всеми middleware и маршрутами.
// Служебные эндпоинты (/livez, /healthz, /metrics) живут на том же порту.
func (s *Server) Router(base *slog.Logger, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(base))
	r.Use(middleware.Recover(base))
	r.Use(middleware.WithTimeout(timeout))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/otp/request", s.handleRequestOTP)
		r.Post("/otp/verify", s.handleVerifyOTP)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/revoke", s.handleRevoke)
		r.Post("/register", s.handleRegister)
	})

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/profile", s.handleProfile)
		r.Patch("/profile", s.handlePatchProfile)
		r.Get("/settings", s.handleGetSettings)
		r.Patch("/settings", s.handlePatchSettings)
	})

	r.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON сериализует ответ; ошибки кодирования уже не исправить — заголовок ушёл.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// statusByError — маппинг бизнес-ошибок сервиса на HTTP-статусы.
// Наружу уходит сообщение самой бизнес-ошибки, без внутренних префиксов.
var statusByError = []struct {
	err    error
	status int
}{
	{service.ErrInvalidEmail, http.StatusBadRequest},
	{service.ErrEmptyOTPCode, http.StatusBadRequest},
	{service.ErrEmptyToken, http.StatusBadRequest},
	{service.ErrInvalidArgument, http.StatusBadRequest},

	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrOTPNotFound, http.StatusNotFound},
	{service.ErrTokenNotFound, http.StatusNotFound},
	{service.ErrProfileNotFound, http.StatusNotFound},
	{service.ErrSettingsNotFound, http.StatusNotFound},

	{service.ErrEmailTaken, http.StatusConflict},
	{service.ErrUsernameTaken, http.StatusConflict},

	{service.ErrOTPExpired, http.StatusUnauthorized},
	{service.ErrOTPAlreadyUsed, http.StatusUnauthorized},
	{service.ErrOTPMismatch, http.StatusUnauthorized},
	{service.ErrTokenExpired, http.StatusUnauthorized},
	{service.ErrTokenRevoked, http.StatusUnauthorized},
	{service.ErrTokenAlreadyRevoked, http.StatusUnauthorized},
}

// writeServiceError транслирует ошибку сервисного слоя в HTTP-ответ.
func writeServiceError(w http.ResponseWriter, err error) {
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, errorResponse{Error: m.err.Error()})
			return
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "request timed out"})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// decodeJSON читает тело запроса; некорректный JSON — ошибка клиента.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}

	return true
}
