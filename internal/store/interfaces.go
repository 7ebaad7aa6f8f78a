package store

import (
	"context"
	"time"

	"github.com/mfedotov/credvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the data-access contract for user accounts. State-flip
// methods carry their state guard inside the SQL (e.g. "approve only while
// unverified") so each transition is a single atomic read-modify-write;
// a guard miss surfaces as ErrUserNotFound and the service layer decides
// what that means for the caller.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListPendingUsers(ctx context.Context) ([]models.User, error)

	// ApproveUser flips a pending account to verified+active and records
	// the approving admin. No-op (ErrUserNotFound) unless the account is
	// currently unverified.
	ApproveUser(ctx context.Context, userID, adminID int64) (models.User, error)

	// DeleteUser physically removes a still-pending account. No-op
	// (ErrUserNotFound) once the account has been verified.
	DeleteUser(ctx context.Context, userID int64) error

	// SetUserActive flips the is_active flag. No-op (ErrUserNotFound) when
	// the flag already has the requested value.
	SetUserActive(ctx context.Context, userID int64, active bool) (models.User, error)
}

// ClientRepository is the data-access contract for client organizations.
type ClientRepository interface {
	CreateClient(ctx context.Context, client models.Client) (models.Client, error)
	GetClientByID(ctx context.Context, clientID int64) (models.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]models.Client, error)
	CountClients(ctx context.Context) (int, error)
	UpdateClient(ctx context.Context, clientID int64, patch models.UpdateClientRequest) (models.Client, error)
	SoftDeleteClient(ctx context.Context, clientID int64) error
}

// ResourceRepository is the data-access contract for client infrastructure
// records.
type ResourceRepository interface {
	CreateResource(ctx context.Context, resource models.Resource) (models.Resource, error)
	GetResourceByID(ctx context.Context, resourceID int64) (models.Resource, error)
	ListResources(ctx context.Context, clientID *int64, limit, offset int) ([]models.Resource, error)
	CountResources(ctx context.Context, clientID *int64) (int, error)
	UpdateResource(ctx context.Context, resourceID int64, patch models.UpdateResourceRequest) (models.Resource, error)
	SoftDeleteResource(ctx context.Context, resourceID int64) error
}

// CredentialUpdate carries the optional column changes for a credential
// partial update. Nil fields are left untouched. The three rotation fields
// (EncryptedPassword, EncryptionIV, LastRotatedAt) are always set together
// by the service layer — a ciphertext without its IV is meaningless.
// ClearExpiresAt nulls the expiry column and takes precedence over
// ExpiresAt.
type CredentialUpdate struct {
	Type              *models.CredentialType
	Username          *string
	EncryptedPassword *string
	EncryptionIV      *string
	LastRotatedAt     *time.Time
	SSHKey            *string
	Notes             *string
	ExpiresAt         *time.Time
	ClearExpiresAt    bool
}

// CredentialRepository is the data-access contract for stored credentials.
// List methods never select the secret columns; only GetCredentialByID
// returns ciphertext and IV, and only so the service can decrypt them.
type CredentialRepository interface {
	CreateCredential(ctx context.Context, credential models.Credential) (models.Credential, error)
	GetCredentialByID(ctx context.Context, credentialID int64) (models.Credential, error)
	ListCredentials(ctx context.Context, clientID *int64, limit, offset int) ([]models.CredentialSummary, error)
	CountCredentials(ctx context.Context, clientID *int64) (int, error)
	UpdateCredential(ctx context.Context, credentialID int64, update CredentialUpdate) error
	SoftDeleteCredential(ctx context.Context, credentialID int64) error
}
