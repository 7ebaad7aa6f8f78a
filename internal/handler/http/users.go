package http

import (
	"encoding/json"
	"net/http"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/service"
	"github.com/mfedotov/credvault/internal/utils"
	"github.com/mfedotov/credvault/models"
)

// principal returns the authenticated user or writes a 401 and reports
// false. Handlers behind the authenticate middleware use it to read the
// acting account.
func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		respondError(w, service.ErrTokenInvalid)
	}
	return user, ok
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	admin, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.CreateUser(ctx, req, admin.ID)
	if err != nil {
		log.Err(err).Msg("user creation failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"user": user}, http.StatusCreated)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("listing users failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"users": users}, http.StatusOK)
}

func (h *Handler) listPendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListPendingUsers(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("listing pending users failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"users": users}, http.StatusOK)
}

func (h *Handler) approveUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	admin, ok := h.principal(w, r)
	if !ok {
		return
	}

	userID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.ApproveUser(r.Context(), userID, admin.ID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user approval failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"user": user}, http.StatusOK)
}

func (h *Handler) rejectUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.RejectUser(r.Context(), userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user rejection failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]string{"message": "user rejected"}, http.StatusOK)
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	admin, ok := h.principal(w, r)
	if !ok {
		return
	}

	userID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.DeactivateUser(r.Context(), userID, admin.ID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user deactivation failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"user": user}, http.StatusOK)
}

func (h *Handler) reactivateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.ReactivateUser(r.Context(), userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user reactivation failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"user": user}, http.StatusOK)
}
