package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDuplicateUser is returned when an attempt to create a user fails
	// because the username or email is already taken (PostgreSQL unique
	// constraint violation on either column).
	ErrDuplicateUser = errors.New("username or email already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set, including conditional updates
	// whose state guard did not match (e.g. approving an already-approved
	// account that raced another request).
	ErrUserNotFound = errors.New("user not found")

	// ErrClientNotFound is returned when a client row does not exist or has
	// been soft-deleted.
	ErrClientNotFound = errors.New("client not found")

	// ErrResourceNotFound is returned when a resource row does not exist,
	// has been soft-deleted, or a credential insert references a missing
	// resource (foreign key violation).
	ErrResourceNotFound = errors.New("resource not found")

	// ErrCredentialNotFound is returned when a credential row does not
	// exist or has been soft-deleted.
	ErrCredentialNotFound = errors.New("credential not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an update with no fields to set).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
