package http

import (
	"encoding/json"
	"net/http"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/utils"
	"github.com/mfedotov/credvault/models"
)

func (h *Handler) createCredential(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req models.CreateCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	credential, err := h.services.CredentialService.CreateCredential(r.Context(), req, user.ID)
	if err != nil {
		log.Err(err).Msg("credential creation failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"credential": credential}, http.StatusCreated)
}

// getCredential is the only endpoint that returns decrypted secrets.
func (h *Handler) getCredential(w http.ResponseWriter, r *http.Request) {
	credentialID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	credential, err := h.services.CredentialService.GetCredential(r.Context(), credentialID)
	if err != nil {
		logger.FromRequest(r).Err(err).Int64("credential_id", credentialID).Msg("credential retrieval failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"credential": credential}, http.StatusOK)
}

func (h *Handler) listCredentials(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	clientID, err := clientIDParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	credentials, pagination, err := h.services.CredentialService.ListCredentials(r.Context(), clientID, page, limit)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("listing credentials failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{
		"credentials": credentials,
		"pagination":  pagination,
	}, http.StatusOK)
}

func (h *Handler) updateCredential(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	credentialID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	var patch models.UpdateCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	credential, err := h.services.CredentialService.UpdateCredential(r.Context(), credentialID, patch)
	if err != nil {
		log.Err(err).Int64("credential_id", credentialID).Msg("credential update failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"credential": credential}, http.StatusOK)
}

func (h *Handler) deleteCredential(w http.ResponseWriter, r *http.Request) {
	credentialID, err := idParam(r)
	if err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.CredentialService.DeleteCredential(r.Context(), credentialID); err != nil {
		logger.FromRequest(r).Err(err).Int64("credential_id", credentialID).Msg("credential deletion failed")
		respondError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]string{"message": "credential deleted"}, http.StatusOK)
}
