package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/models"
)

// resourceRepository is the PostgreSQL-backed implementation of
// [ResourceRepository].
type resourceRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewResourceRepository constructs a [ResourceRepository] backed by the
// provided database connection and logger.
func NewResourceRepository(db *DB, logger *logger.Logger) ResourceRepository {
	logger.Debug().Msg("creating resource repository")
	return &resourceRepository{
		db:     db,
		logger: logger,
	}
}

func scanResource(row interface{ Scan(...any) error }) (models.Resource, error) {
	var res models.Resource
	err := row.Scan(
		&res.ID, &res.ClientID, &res.Name, &res.Type, &res.Description,
		&res.Hostname, &res.IPAddress, &res.Port, &res.URL, &res.Notes,
		&res.IsActive, &res.CreatedBy, &res.CreatedAt, &res.UpdatedAt,
		&res.ClientName, &res.CreatedByUsername,
	)
	return res, err
}

// CreateResource inserts a new resource row and re-reads it so the response
// carries the joined client and creator names. The referenced client must
// exist and be active: a soft-deleted client still satisfies the foreign
// key, so it is checked explicitly before the insert. Both a missing and a
// soft-deleted client map to [ErrClientNotFound].
func (r *resourceRepository) CreateResource(ctx context.Context, resource models.Resource) (models.Resource, error) {
	log := logger.FromContext(ctx)

	var one int
	if err := r.db.QueryRowContext(ctx, clientIsActive, resource.ClientID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Resource{}, ErrClientNotFound
		}
		log.Err(err).Str("func", "*resourceRepository.CreateResource").Msg("error: checking client")
		return models.Resource{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var id int64
	err := r.db.QueryRowContext(ctx, createResource,
		resource.ClientID, resource.Name, resource.Type, resource.Description,
		resource.Hostname, resource.IPAddress, resource.Port,
		resource.URL, resource.Notes, resource.CreatedBy,
	).Scan(&id)
	if err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Resource{}, ErrClientNotFound
		}
		log.Err(err).Str("func", "*resourceRepository.CreateResource").Msg("error: inserting resource")
		return models.Resource{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return r.GetResourceByID(ctx, id)
}

// GetResourceByID retrieves an active resource by primary key. Soft-deleted
// rows return [ErrResourceNotFound].
func (r *resourceRepository) GetResourceByID(ctx context.Context, resourceID int64) (models.Resource, error) {
	log := logger.FromContext(ctx)

	resource, err := scanResource(r.db.QueryRowContext(ctx, getResourceByID, resourceID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Resource{}, ErrResourceNotFound
		}
		log.Err(err).Str("func", "*resourceRepository.GetResourceByID").Msg("error: scanning resource")
		return models.Resource{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return resource, nil
}

// listResourcesBuilder is the shared SELECT skeleton for ListResources and
// CountResources so the optional client filter can never drift between the
// page and its total.
func listResourcesBuilder(columns string, clientID *int64) sq.SelectBuilder {
	builder := sq.Select(columns).
		From("resources r").
		LeftJoin("clients c ON r.client_id = c.id").
		LeftJoin("users u ON r.created_by = u.id").
		Where(sq.Eq{"r.is_active": true}).
		PlaceholderFormat(sq.Dollar)
	if clientID != nil {
		builder = builder.Where(sq.Eq{"r.client_id": *clientID})
	}
	return builder
}

// ListResources returns one page of active resources, newest first,
// optionally restricted to a single client.
func (r *resourceRepository) ListResources(ctx context.Context, clientID *int64, limit, offset int) ([]models.Resource, error) {
	log := logger.FromContext(ctx)

	query, args, err := listResourcesBuilder(resourceColumns, clientID).
		OrderBy("r.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.ListResources").Msg("error: querying resources")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			log.Err(err).Str("func", "*resourceRepository.ListResources").Msg("error: scanning resources")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return resources, nil
}

// CountResources returns the number of active resources matching the same
// filter as ListResources.
func (r *resourceRepository) CountResources(ctx context.Context, clientID *int64) (int, error) {
	query, args, err := listResourcesBuilder("COUNT(*)", clientID).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return total, nil
}

// UpdateResource applies a partial update built dynamically with squirrel.
// Only non-nil patch fields become SET clauses; empty strings clear the
// corresponding nullable column. Returns [ErrBuildingSQLQuery] when the
// patch contains nothing to set.
func (r *resourceRepository) UpdateResource(ctx context.Context, resourceID int64, patch models.UpdateResourceRequest) (models.Resource, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("resources").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": resourceID, "is_active": true}).
		PlaceholderFormat(sq.Dollar)

	set := 0
	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
		set++
	}
	if patch.Type != nil {
		builder = builder.Set("resource_type", *patch.Type)
		set++
	}
	if patch.Description != nil {
		builder = builder.Set("description", sq.Expr("NULLIF(?, '')", *patch.Description))
		set++
	}
	if patch.Hostname != nil {
		builder = builder.Set("hostname", sq.Expr("NULLIF(?, '')", *patch.Hostname))
		set++
	}
	if patch.IPAddress != nil {
		builder = builder.Set("ip_address", sq.Expr("NULLIF(?, '')", *patch.IPAddress))
		set++
	}
	if patch.Port != nil {
		builder = builder.Set("port", *patch.Port)
		set++
	}
	if patch.URL != nil {
		builder = builder.Set("url", sq.Expr("NULLIF(?, '')", *patch.URL))
		set++
	}
	if patch.Notes != nil {
		builder = builder.Set("notes", sq.Expr("NULLIF(?, '')", *patch.Notes))
		set++
	}

	if set == 0 {
		return models.Resource{}, ErrBuildingSQLQuery
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Resource{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.UpdateResource").Msg("error: updating resource")
		return models.Resource{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Resource{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return models.Resource{}, ErrResourceNotFound
	}

	return r.GetResourceByID(ctx, resourceID)
}

// SoftDeleteResource flips the is_active flag; the row itself is preserved
// for audit history.
func (r *resourceRepository) SoftDeleteResource(ctx context.Context, resourceID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, softDeleteResource, resourceID)
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.SoftDeleteResource").Msg("error: deleting resource")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrResourceNotFound
	}

	return nil
}
