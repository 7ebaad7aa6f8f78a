package http

import (
	"encoding/json"
	"net/http"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/service"
	"github.com/mfedotov/credvault/internal/utils"
	"github.com/mfedotov/credvault/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{
		"message": "registration successful, awaiting admin approval",
		"user":    user,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		log.Info().Err(err).Msg("login failed")
		respondError(w, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	_, _ = utils.WriteJSON(w, map[string]any{
		"token": token.SignedString,
		"user":  user,
	}, http.StatusOK)
}

// me returns the authenticated principal as resolved by the middleware.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		respondError(w, service.ErrTokenInvalid)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"user": user}, http.StatusOK)
}
