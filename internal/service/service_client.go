package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/store"
	"github.com/mfedotov/credvault/models"
)

// Pagination bounds for every collection endpoint.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// normalizePage clamps page/limit to sane values: out-of-range input falls
// back to the defaults rather than erroring.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}

// clientService is the concrete implementation of ClientService.
type clientService struct {
	clientRepository store.ClientRepository
	logger           *logger.Logger
}

// NewClientService constructs a ClientService wired to the given repository.
func NewClientService(clientRepository store.ClientRepository, logger *logger.Logger) ClientService {
	return &clientService{
		clientRepository: clientRepository,
		logger:           logger,
	}
}

// CreateClient validates and stores a new client organization.
func (c *clientService) CreateClient(ctx context.Context, req models.CreateClientRequest, createdBy int64) (models.Client, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" {
		return models.Client{}, fmt.Errorf("%w: client name is required", ErrValidation)
	}
	if req.Email != "" {
		if err := validateEmail(req.Email); err != nil {
			return models.Client{}, err
		}
	}

	client, err := c.clientRepository.CreateClient(ctx, models.Client{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		CreatedBy:   &createdBy,
	})
	if err != nil {
		log.Err(err).Str("name", req.Name).Msg("client creation failed")
		return models.Client{}, fmt.Errorf("client creation failed: %w", err)
	}

	log.Info().Int64("client_id", client.ID).Str("name", client.Name).Msg("client created")
	return client, nil
}

// GetClient retrieves a single active client.
func (c *clientService) GetClient(ctx context.Context, clientID int64) (models.Client, error) {
	client, err := c.clientRepository.GetClientByID(ctx, clientID)
	if err != nil {
		return models.Client{}, fmt.Errorf("client lookup failed: %w", err)
	}
	return client, nil
}

// ListClients returns one page of clients together with pagination metadata.
func (c *clientService) ListClients(ctx context.Context, page, limit int) ([]models.Client, models.Pagination, error) {
	page, limit = normalizePage(page, limit)

	clients, err := c.clientRepository.ListClients(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("listing clients failed: %w", err)
	}

	total, err := c.clientRepository.CountClients(ctx)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("counting clients failed: %w", err)
	}

	return clients, buildPagination(page, limit, total), nil
}

// UpdateClient applies a partial update.
func (c *clientService) UpdateClient(ctx context.Context, clientID int64, patch models.UpdateClientRequest) (models.Client, error) {
	log := logger.FromContext(ctx)

	if patch.Name != nil && *patch.Name == "" {
		return models.Client{}, fmt.Errorf("%w: client name cannot be empty", ErrValidation)
	}
	if patch.Email != nil && *patch.Email != "" {
		if err := validateEmail(*patch.Email); err != nil {
			return models.Client{}, err
		}
	}

	client, err := c.clientRepository.UpdateClient(ctx, clientID, patch)
	if err != nil {
		if errors.Is(err, store.ErrBuildingSQLQuery) {
			return models.Client{}, fmt.Errorf("%w: no fields to update", ErrValidation)
		}
		log.Err(err).Int64("client_id", clientID).Msg("client update failed")
		return models.Client{}, fmt.Errorf("client update failed: %w", err)
	}

	log.Info().Int64("client_id", clientID).Msg("client updated")
	return client, nil
}

// DeleteClient soft-deletes a client.
func (c *clientService) DeleteClient(ctx context.Context, clientID int64) error {
	log := logger.FromContext(ctx)

	if err := c.clientRepository.SoftDeleteClient(ctx, clientID); err != nil {
		return fmt.Errorf("client deletion failed: %w", err)
	}

	log.Info().Int64("client_id", clientID).Msg("client deleted")
	return nil
}
