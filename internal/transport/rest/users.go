package rest

import (
	"net/http"
	"time"

	"github.com/Leplik500/rebuilder-user-service/internal/models"
	"github.com/Leplik500/rebuilder-user-service/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type profileResponse struct {
	UserID        string    `json:"user_id"`
	Weight        int       `json:"weight"`
	Height        int       `json:"height"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	ActivityLevel string    `json:"activity_level"`
	FitnessGoal   string    `json:"fitness_goal"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type settingsResponse struct {
	UserID    string    `json:"user_id"`
	Theme     string    `json:"theme"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type patchSettingsRequest struct {
	Theme    *string `json:"theme"`
	Language *string `json:"language"`
}

type patchProfileRequest struct {
	Weight        *int    `json:"weight"`
	Height        *int    `json:"height"`
	Age           *int    `json:"age"`
	Gender        *string `json:"gender"`
	ActivityLevel *string `json:"activity_level"`
	FitnessGoal   *string `json:"fitness_goal"`
}

func toProfileResponse(p *models.Profile) profileResponse {
	return profileResponse{
		UserID:        p.UserID.String(),
		Weight:        p.Weight,
		Height:        p.Height,
		Age:           p.Age,
		Gender:        p.Gender.String(),
		ActivityLevel: p.ActivityLevel.String(),
		FitnessGoal:   p.FitnessGoal.String(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toSettingsResponse(s *models.Settings) settingsResponse {
	return settingsResponse{
		UserID:    s.UserID.String(),
		Theme:     s.Theme.String(),
		Language:  s.Language.String(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// userIDFromPath достаёт и валидирует {userID} из пути.
func userIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}

	return id, true
}

// handleProfile возвращает анкету пользователя.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	profile, err := s.service.ProfileByUserID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// handlePatchProfile частично обновляет анкету пользователя.
func (s *Server) handlePatchProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	var req patchProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := s.service.UpdateProfile(r.Context(), userID, service.UpdateProfileInput{
		Weight:        req.Weight,
		Height:        req.Height,
		Age:           req.Age,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		FitnessGoal:   req.FitnessGoal,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// handleGetSettings возвращает настройки пользователя.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	settings, err := s.service.SettingsByUserID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// handlePatchSettings частично обновляет настройки пользователя.
func (s *Server) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	var req patchSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := s.service.UpdateSettings(r.Context(), userID, service.UpdateSettingsInput{
		Theme:    req.Theme,
		Language: req.Language,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}
