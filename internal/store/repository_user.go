package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and the lifecycle state flips against
// the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads one row in userColumns order into a models.User.
func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
		&u.IsActive, &u.IsVerified, &u.ApprovedBy, &u.ApprovedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt, UpdatedAt).
//
// The same INSERT serves self-registration (pending state) and
// admin-initiated creation (active+verified with approval fields filled):
// the caller supplies the flags.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on username or email →
//     [ErrDuplicateUser].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username, user.Email, user.PasswordHash, user.FullName, user.Role,
		user.IsActive, user.IsVerified, user.ApprovedBy, user.ApprovedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrDuplicateUser
		default:
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: inserting user")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByID retrieves a user record by primary key. Returns
// [ErrUserNotFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByEmail retrieves a user record by email. Returns
// [ErrUserNotFound] when no row matches; the login path deliberately folds
// this into a generic invalid-credentials answer.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// ListUsers returns every account, newest first.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	return r.listUsers(ctx, listUsers)
}

// ListPendingUsers returns accounts still awaiting approval, newest first.
func (r *userRepository) ListPendingUsers(ctx context.Context) ([]models.User, error) {
	return r.listUsers(ctx, listPendingUsers)
}

func (r *userRepository) listUsers(ctx context.Context, query string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.listUsers").Msg("error: querying users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.listUsers").Msg("error: scanning users")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// ApproveUser implements the pending → active transition as one conditional
// UPDATE. The WHERE clause requires is_verified = false, so approving an
// account that was approved concurrently (or never existed) yields zero
// rows and [ErrUserNotFound]; the service layer disambiguates using the
// state it read beforehand.
func (r *userRepository) ApproveUser(ctx context.Context, userID, adminID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, approveUser, adminID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.ApproveUser").Msg("error: approving user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// DeleteUser physically removes a still-pending account (registration
// rejection). The guard "is_verified = false" keeps the delete atomic with
// the state check; a verified account is never deleted through this path.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deletePendingUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: deleting user")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetUserActive flips the is_active flag in one conditional UPDATE. The
// guard "is_active <> $2" makes the transition atomic: a concurrent flip to
// the same value yields zero rows and [ErrUserNotFound].
func (r *userRepository) SetUserActive(ctx context.Context, userID int64, active bool) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, setUserActive, userID, active))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.SetUserActive").Msg("error: updating user active flag")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}
