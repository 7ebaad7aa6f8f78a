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

// credentialRepository is the PostgreSQL-backed implementation of
// [CredentialRepository].
type credentialRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCredential inserts a new credential row (ciphertext and IV already
// sealed by the caller) and re-reads it with its joined display fields.
// The referenced resource must exist and be active: a soft-deleted
// resource still satisfies the foreign key, so it is checked explicitly
// before the insert. Both cases map to [ErrResourceNotFound].
func (r *credentialRepository) CreateCredential(ctx context.Context, credential models.Credential) (models.Credential, error) {
	log := logger.FromContext(ctx)

	var one int
	if err := r.db.QueryRowContext(ctx, resourceIsActive, credential.ResourceID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credential{}, ErrResourceNotFound
		}
		log.Err(err).Str("func", "*credentialRepository.CreateCredential").Msg("error: checking resource")
		return models.Credential{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var id int64
	err := r.db.QueryRowContext(ctx, createCredential,
		credential.ResourceID, credential.Type, credential.Username,
		credential.EncryptedPassword, credential.EncryptionIV,
		credential.SSHKey, credential.Notes, credential.ExpiresAt,
		credential.LastRotatedAt, credential.CreatedBy,
	).Scan(&id)
	if err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Credential{}, ErrResourceNotFound
		}
		log.Err(err).Str("func", "*credentialRepository.CreateCredential").Msg("error: inserting credential")
		return models.Credential{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return r.GetCredentialByID(ctx, id)
}

// GetCredentialByID retrieves an active credential by primary key, secret
// columns included. This is the only repository method that selects
// ciphertext, IV and key material.
func (r *credentialRepository) GetCredentialByID(ctx context.Context, credentialID int64) (models.Credential, error) {
	log := logger.FromContext(ctx)

	var cred models.Credential
	err := r.db.QueryRowContext(ctx, getCredentialByID, credentialID).Scan(
		&cred.ID, &cred.ResourceID, &cred.Type, &cred.Username,
		&cred.EncryptedPassword, &cred.EncryptionIV, &cred.SSHKey, &cred.Notes,
		&cred.ExpiresAt, &cred.LastRotatedAt, &cred.IsActive, &cred.CreatedBy,
		&cred.CreatedAt, &cred.UpdatedAt,
		&cred.ResourceName, &cred.ClientID, &cred.ClientName, &cred.CreatedByUsername,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credential{}, ErrCredentialNotFound
		}
		log.Err(err).Str("func", "*credentialRepository.GetCredentialByID").Msg("error: scanning credential")
		return models.Credential{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return cred, nil
}

// listCredentialsBuilder is the shared SELECT skeleton for ListCredentials
// and CountCredentials so the optional client filter can never drift
// between the page and its total.
func listCredentialsBuilder(columns string, clientID *int64) sq.SelectBuilder {
	builder := sq.Select(columns).
		From("credentials cr").
		LeftJoin("resources r ON cr.resource_id = r.id").
		LeftJoin("clients c ON r.client_id = c.id").
		LeftJoin("users u ON cr.created_by = u.id").
		Where(sq.Eq{"cr.is_active": true}).
		PlaceholderFormat(sq.Dollar)
	if clientID != nil {
		builder = builder.Where(sq.Eq{"r.client_id": *clientID})
	}
	return builder
}

// credentialSummaryColumns selects presence booleans in place of the secret
// columns: the list path must never see ciphertext or key material.
const credentialSummaryColumns = `cr.id, cr.resource_id, cr.credential_type, COALESCE(cr.username, ''),
    COALESCE(cr.notes, ''), cr.expires_at, cr.last_rotated_at, cr.is_active, cr.created_by,
    cr.created_at, cr.updated_at,
    (cr.encrypted_password <> '') AS has_password,
    (cr.ssh_key IS NOT NULL AND cr.ssh_key <> '') AS has_ssh_key,
    COALESCE(r.name, ''), COALESCE(r.client_id, 0), COALESCE(c.name, ''), COALESCE(u.username, '')`

// ListCredentials returns one page of active credential summaries, newest
// first, optionally restricted to a single client's resources.
func (r *credentialRepository) ListCredentials(ctx context.Context, clientID *int64, limit, offset int) ([]models.CredentialSummary, error) {
	log := logger.FromContext(ctx)

	query, args, err := listCredentialsBuilder(credentialSummaryColumns, clientID).
		OrderBy("cr.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.ListCredentials").Msg("error: querying credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var credentials []models.CredentialSummary
	for rows.Next() {
		var s models.CredentialSummary
		err := rows.Scan(
			&s.ID, &s.ResourceID, &s.Type, &s.Username,
			&s.Notes, &s.ExpiresAt, &s.LastRotatedAt, &s.IsActive, &s.CreatedBy,
			&s.CreatedAt, &s.UpdatedAt,
			&s.HasPassword, &s.HasSSHKey,
			&s.ResourceName, &s.ClientID, &s.ClientName, &s.CreatedByUsername,
		)
		if err != nil {
			log.Err(err).Str("func", "*credentialRepository.ListCredentials").Msg("error: scanning credentials")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		credentials = append(credentials, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return credentials, nil
}

// CountCredentials returns the number of active credentials matching the
// same filter as ListCredentials.
func (r *credentialRepository) CountCredentials(ctx context.Context, clientID *int64) (int, error) {
	query, args, err := listCredentialsBuilder("COUNT(*)", clientID).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return total, nil
}

// UpdateCredential applies a partial update built dynamically with squirrel.
// Rotation arrives as the EncryptedPassword/EncryptionIV/LastRotatedAt
// triple, always set together by the service layer. Returns
// [ErrBuildingSQLQuery] when the update contains nothing to set.
func (r *credentialRepository) UpdateCredential(ctx context.Context, credentialID int64, update CredentialUpdate) error {
	log := logger.FromContext(ctx)

	builder := sq.Update("credentials").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": credentialID, "is_active": true}).
		PlaceholderFormat(sq.Dollar)

	set := 0
	if update.Type != nil {
		builder = builder.Set("credential_type", *update.Type)
		set++
	}
	if update.Username != nil {
		builder = builder.Set("username", sq.Expr("NULLIF(?, '')", *update.Username))
		set++
	}
	if update.EncryptedPassword != nil {
		builder = builder.Set("encrypted_password", *update.EncryptedPassword)
		set++
	}
	if update.EncryptionIV != nil {
		builder = builder.Set("encryption_iv", *update.EncryptionIV)
		set++
	}
	if update.LastRotatedAt != nil {
		builder = builder.Set("last_rotated_at", *update.LastRotatedAt)
		set++
	}
	if update.SSHKey != nil {
		builder = builder.Set("ssh_key", sq.Expr("NULLIF(?, '')", *update.SSHKey))
		set++
	}
	if update.Notes != nil {
		builder = builder.Set("notes", sq.Expr("NULLIF(?, '')", *update.Notes))
		set++
	}
	switch {
	case update.ClearExpiresAt:
		builder = builder.Set("expires_at", nil)
		set++
	case update.ExpiresAt != nil:
		builder = builder.Set("expires_at", *update.ExpiresAt)
		set++
	}

	if set == 0 {
		return ErrBuildingSQLQuery
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.UpdateCredential").Msg("error: updating credential")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}

// SoftDeleteCredential flips the is_active flag; the row and its ciphertext
// are preserved for audit history.
func (r *credentialRepository) SoftDeleteCredential(ctx context.Context, credentialID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, softDeleteCredential, credentialID)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.SoftDeleteCredential").Msg("error: deleting credential")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}
