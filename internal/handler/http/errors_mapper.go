package http

import (
	"errors"
	"net/http"

	"github.com/mfedotov/credvault/internal/service"
	"github.com/mfedotov/credvault/internal/store"
	"github.com/mfedotov/credvault/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:         http.StatusBadRequest,
	service.ErrSelfDeactivation:   http.StatusBadRequest,
	service.ErrAlreadyApproved:    http.StatusConflict,
	service.ErrAlreadyInactive:    http.StatusConflict,
	service.ErrAlreadyActive:      http.StatusConflict,
	service.ErrNotYetApproved:     http.StatusConflict,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrAccountInactive:    http.StatusUnauthorized,
	service.ErrTokenExpired:       http.StatusUnauthorized,
	service.ErrTokenInvalid:       http.StatusUnauthorized,

	store.ErrDuplicateUser:      http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrClientNotFound:     http.StatusNotFound,
	store.ErrResourceNotFound:   http.StatusNotFound,
	store.ErrCredentialNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the client-facing error text. Internal errors
// are flattened to the generic status text so database details never leak
// into responses.
func messageFromError(err error, status int) string {
	if status == http.StatusInternalServerError {
		return http.StatusText(http.StatusInternalServerError)
	}
	return err.Error()
}

// respondError maps err to its HTTP status and writes a JSON error body.
func respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	_, _ = utils.WriteJSON(w, map[string]string{"error": messageFromError(err, status)}, status)
}
