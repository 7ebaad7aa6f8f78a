package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/store"
	"github.com/mfedotov/credvault/models"
)

// resourceService is the concrete implementation of ResourceService.
type resourceService struct {
	resourceRepository store.ResourceRepository
	logger             *logger.Logger
}

// NewResourceService constructs a ResourceService wired to the given
// repository.
func NewResourceService(resourceRepository store.ResourceRepository, logger *logger.Logger) ResourceService {
	return &resourceService{
		resourceRepository: resourceRepository,
		logger:             logger,
	}
}

func validatePort(port *int) error {
	if port != nil && (*port < 1 || *port > 65535) {
		return fmt.Errorf("%w: port must be between 1 and 65535", ErrValidation)
	}
	return nil
}

// CreateResource validates and stores a new infrastructure record.
func (s *resourceService) CreateResource(ctx context.Context, req models.CreateResourceRequest, createdBy int64) (models.Resource, error) {
	log := logger.FromContext(ctx)

	if req.ClientID <= 0 {
		return models.Resource{}, fmt.Errorf("%w: client_id is required", ErrValidation)
	}
	if req.Name == "" {
		return models.Resource{}, fmt.Errorf("%w: resource name is required", ErrValidation)
	}
	if !req.Type.Valid() {
		return models.Resource{}, fmt.Errorf("%w: unknown resource type %q", ErrValidation, req.Type)
	}
	if err := validatePort(req.Port); err != nil {
		return models.Resource{}, err
	}

	resource, err := s.resourceRepository.CreateResource(ctx, models.Resource{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Hostname:    req.Hostname,
		IPAddress:   req.IPAddress,
		Port:        req.Port,
		URL:         req.URL,
		Notes:       req.Notes,
		CreatedBy:   &createdBy,
	})
	if err != nil {
		log.Err(err).Str("name", req.Name).Int64("client_id", req.ClientID).Msg("resource creation failed")
		return models.Resource{}, fmt.Errorf("resource creation failed: %w", err)
	}

	log.Info().Int64("resource_id", resource.ID).Str("name", resource.Name).Msg("resource created")
	return resource, nil
}

// GetResource retrieves a single active resource.
func (s *resourceService) GetResource(ctx context.Context, resourceID int64) (models.Resource, error) {
	resource, err := s.resourceRepository.GetResourceByID(ctx, resourceID)
	if err != nil {
		return models.Resource{}, fmt.Errorf("resource lookup failed: %w", err)
	}
	return resource, nil
}

// ListResources returns one page of resources, optionally filtered by
// client, together with pagination metadata.
func (s *resourceService) ListResources(ctx context.Context, clientID *int64, page, limit int) ([]models.Resource, models.Pagination, error) {
	page, limit = normalizePage(page, limit)

	resources, err := s.resourceRepository.ListResources(ctx, clientID, limit, (page-1)*limit)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("listing resources failed: %w", err)
	}

	total, err := s.resourceRepository.CountResources(ctx, clientID)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("counting resources failed: %w", err)
	}

	return resources, buildPagination(page, limit, total), nil
}

// UpdateResource applies a partial update.
func (s *resourceService) UpdateResource(ctx context.Context, resourceID int64, patch models.UpdateResourceRequest) (models.Resource, error) {
	log := logger.FromContext(ctx)

	if patch.Name != nil && *patch.Name == "" {
		return models.Resource{}, fmt.Errorf("%w: resource name cannot be empty", ErrValidation)
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return models.Resource{}, fmt.Errorf("%w: unknown resource type %q", ErrValidation, *patch.Type)
	}
	if err := validatePort(patch.Port); err != nil {
		return models.Resource{}, err
	}

	resource, err := s.resourceRepository.UpdateResource(ctx, resourceID, patch)
	if err != nil {
		if errors.Is(err, store.ErrBuildingSQLQuery) {
			return models.Resource{}, fmt.Errorf("%w: no fields to update", ErrValidation)
		}
		log.Err(err).Int64("resource_id", resourceID).Msg("resource update failed")
		return models.Resource{}, fmt.Errorf("resource update failed: %w", err)
	}

	log.Info().Int64("resource_id", resourceID).Msg("resource updated")
	return resource, nil
}

// DeleteResource soft-deletes a resource.
func (s *resourceService) DeleteResource(ctx context.Context, resourceID int64) error {
	log := logger.FromContext(ctx)

	if err := s.resourceRepository.SoftDeleteResource(ctx, resourceID); err != nil {
		return fmt.Errorf("resource deletion failed: %w", err)
	}

	log.Info().Int64("resource_id", resourceID).Msg("resource deleted")
	return nil
}
