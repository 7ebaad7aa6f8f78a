// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, role checks, logging, and tracing are
// all handled at this layer before requests are forwarded to the service
// layer.
package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// idParam extracts the "{id}" URL parameter as a positive int64.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id parameter")
	}
	return id, nil
}

// pageParams extracts the "page" and "limit" query parameters. Missing or
// malformed values come back as zero; the service layer substitutes its
// defaults.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// clientIDParam extracts the optional "client_id" query parameter used to
// filter resource and credential collections. Absent means no filter.
func clientIDParam(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("client_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid client_id parameter")
	}
	return &id, nil
}
