package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/models"
)

// clientRepository is the PostgreSQL-backed implementation of
// [ClientRepository].
type clientRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewClientRepository constructs a [ClientRepository] backed by the provided
// database connection and logger.
func NewClientRepository(db *DB, logger *logger.Logger) ClientRepository {
	logger.Debug().Msg("creating client repository")
	return &clientRepository{
		db:     db,
		logger: logger,
	}
}

func scanClient(row interface{ Scan(...any) error }) (models.Client, error) {
	var c models.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.CompanyName, &c.Description, &c.Email, &c.Phone, &c.Address,
		&c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt, &c.CreatedByUsername,
	)
	return c, err
}

// CreateClient inserts a new client row and re-reads it through
// [clientRepository.GetClientByID] so the response carries the joined
// creator username, same as every other read path.
func (r *clientRepository) CreateClient(ctx context.Context, client models.Client) (models.Client, error) {
	log := logger.FromContext(ctx)

	var id int64
	err := r.db.QueryRowContext(ctx, createClient,
		client.Name, client.CompanyName, client.Description,
		client.Email, client.Phone, client.Address, client.CreatedBy,
	).Scan(&id)
	if err != nil {
		log.Err(err).Str("func", "*clientRepository.CreateClient").Msg("error: inserting client")
		return models.Client{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return r.GetClientByID(ctx, id)
}

// GetClientByID retrieves an active client by primary key. Soft-deleted
// rows are invisible here: they return [ErrClientNotFound].
func (r *clientRepository) GetClientByID(ctx context.Context, clientID int64) (models.Client, error) {
	log := logger.FromContext(ctx)

	client, err := scanClient(r.db.QueryRowContext(ctx, getClientByID, clientID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Client{}, ErrClientNotFound
		}
		log.Err(err).Str("func", "*clientRepository.GetClientByID").Msg("error: scanning client")
		return models.Client{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return client, nil
}

// ListClients returns one page of active clients, newest first.
func (r *clientRepository) ListClients(ctx context.Context, limit, offset int) ([]models.Client, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listClients, limit, offset)
	if err != nil {
		log.Err(err).Str("func", "*clientRepository.ListClients").Msg("error: querying clients")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			log.Err(err).Str("func", "*clientRepository.ListClients").Msg("error: scanning clients")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return clients, nil
}

// CountClients returns the number of active clients, for pagination totals.
func (r *clientRepository) CountClients(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, countClients).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return total, nil
}

// UpdateClient applies a partial update built dynamically with squirrel:
// only non-nil patch fields become SET clauses. Empty strings clear the
// corresponding nullable column. Returns [ErrBuildingSQLQuery] when the
// patch contains nothing to set.
func (r *clientRepository) UpdateClient(ctx context.Context, clientID int64, patch models.UpdateClientRequest) (models.Client, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("clients").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": clientID, "is_active": true}).
		PlaceholderFormat(sq.Dollar)

	set := 0
	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
		set++
	}
	if patch.CompanyName != nil {
		builder = builder.Set("company_name", sq.Expr("NULLIF(?, '')", *patch.CompanyName))
		set++
	}
	if patch.Description != nil {
		builder = builder.Set("description", sq.Expr("NULLIF(?, '')", *patch.Description))
		set++
	}
	if patch.Email != nil {
		builder = builder.Set("email", sq.Expr("NULLIF(?, '')", *patch.Email))
		set++
	}
	if patch.Phone != nil {
		builder = builder.Set("phone", sq.Expr("NULLIF(?, '')", *patch.Phone))
		set++
	}
	if patch.Address != nil {
		builder = builder.Set("address", sq.Expr("NULLIF(?, '')", *patch.Address))
		set++
	}

	if set == 0 {
		return models.Client{}, ErrBuildingSQLQuery
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Client{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*clientRepository.UpdateClient").Msg("error: updating client")
		return models.Client{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Client{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return models.Client{}, ErrClientNotFound
	}

	return r.GetClientByID(ctx, clientID)
}

// SoftDeleteClient flips the is_active flag; the row itself is preserved
// for audit history.
func (r *clientRepository) SoftDeleteClient(ctx context.Context, clientID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, softDeleteClient, clientID)
	if err != nil {
		log.Err(err).Str("func", "*clientRepository.SoftDeleteClient").Msg("error: deleting client")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrClientNotFound
	}

	return nil
}
