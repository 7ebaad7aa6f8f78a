package http

import (
	"encoding/json"
	"net/http"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/utils"
	"github.com/mfedotov/credvault/models"
)

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req models.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	client, err := h.services.ClientService.CreateClient(r.Context(), req, user.ID)
	if err != nil {
		log.Err(err).Msg("client creation failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"client": client}, http.StatusCreated)
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	client, err := h.services.ClientService.GetClient(r.Context(), clientID)
	if err != nil {
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"client": client}, http.StatusOK)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	clients, pagination, err := h.services.ClientService.ListClients(r.Context(), page, limit)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("listing clients failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{
		"clients":    clients,
		"pagination": pagination,
	}, http.StatusOK)
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	clientID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	var patch models.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	client, err := h.services.ClientService.UpdateClient(r.Context(), clientID, patch)
	if err != nil {
		log.Err(err).Int64("client_id", clientID).Msg("client update failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"client": client}, http.StatusOK)
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.ClientService.DeleteClient(r.Context(), clientID); err != nil {
		logger.FromRequest(r).Err(err).Int64("client_id", clientID).Msg("client deletion failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]string{"message": "client deleted"}, http.StatusOK)
}
