package http

import (
	"encoding/json"
	"net/http"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/utils"
	"github.com/mfedotov/credvault/models"
)

func (h *Handler) createResource(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req models.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	resource, err := h.services.ResourceService.CreateResource(r.Context(), req, user.ID)
	if err != nil {
		log.Err(err).Msg("resource creation failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"resource": resource}, http.StatusCreated)
}

func (h *Handler) getResource(w http.ResponseWriter, r *http.Request) {
	resourceID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	resource, err := h.services.ResourceService.GetResource(r.Context(), resourceID)
	if err != nil {
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"resource": resource}, http.StatusOK)
}

func (h *Handler) listResources(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	clientID, err := clientIDParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	resources, pagination, err := h.services.ResourceService.ListResources(r.Context(), clientID, page, limit)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("listing resources failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{
		"resources":  resources,
		"pagination": pagination,
	}, http.StatusOK)
}

func (h *Handler) updateResource(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	resourceID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	var patch models.UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	resource, err := h.services.ResourceService.UpdateResource(r.Context(), resourceID, patch)
	if err != nil {
		log.Err(err).Int64("resource_id", resourceID).Msg("resource update failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"resource": resource}, http.StatusOK)
}

func (h *Handler) deleteResource(w http.ResponseWriter, r *http.Request) {
	resourceID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.ResourceService.DeleteResource(r.Context(), resourceID); err != nil {
		logger.FromRequest(r).Err(err).Int64("resource_id", resourceID).Msg("resource deletion failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]string{"message": "resource deleted"}, http.StatusOK)
}
