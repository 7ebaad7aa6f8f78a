package service

import (
	"context"

	"github.com/mfedotov/credvault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles self-registration and login.
type AuthService interface {
	// Register creates a pending account awaiting admin approval.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)

	// GetUser resolves an account by ID; the authentication middleware uses
	// it to re-check account state on every request.
	GetUser(ctx context.Context, userID int64) (models.User, error)
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	CreateToken(user models.User) (models.Token, error)
	ParseToken(tokenString string) (models.Token, error)
}

// UserService covers the admin-only account lifecycle operations.
type UserService interface {
	// CreateUser provisions an account that is verified and active from the
	// start, any role allowed.
	CreateUser(ctx context.Context, req models.CreateUserRequest, adminID int64) (models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	ListPendingUsers(ctx context.Context) ([]models.User, error)

	// ApproveUser activates a pending account and records the approving
	// admin.
	ApproveUser(ctx context.Context, userID, adminID int64) (models.User, error)

	// RejectUser permanently removes a pending account. Approved accounts
	// cannot be rejected, only deactivated.
	RejectUser(ctx context.Context, userID int64) error

	// DeactivateUser suspends an approved account. Admins cannot deactivate
	// themselves.
	DeactivateUser(ctx context.Context, userID, adminID int64) (models.User, error)

	// ReactivateUser restores a previously deactivated account.
	ReactivateUser(ctx context.Context, userID int64) (models.User, error)
}

// ClientService manages client organization records.
type ClientService interface {
	CreateClient(ctx context.Context, req models.CreateClientRequest, createdBy int64) (models.Client, error)
	GetClient(ctx context.Context, clientID int64) (models.Client, error)
	ListClients(ctx context.Context, page, limit int) ([]models.Client, models.Pagination, error)
	UpdateClient(ctx context.Context, clientID int64, patch models.UpdateClientRequest) (models.Client, error)
	DeleteClient(ctx context.Context, clientID int64) error
}

// ResourceService manages client infrastructure records.
type ResourceService interface {
	CreateResource(ctx context.Context, req models.CreateResourceRequest, createdBy int64) (models.Resource, error)
	GetResource(ctx context.Context, resourceID int64) (models.Resource, error)
	ListResources(ctx context.Context, clientID *int64, page, limit int) ([]models.Resource, models.Pagination, error)
	UpdateResource(ctx context.Context, resourceID int64, patch models.UpdateResourceRequest) (models.Resource, error)
	DeleteResource(ctx context.Context, resourceID int64) error
}

// CredentialService manages stored credentials, sealing secrets on the way
// in and opening them only on the single-credential retrieval path.
type CredentialService interface {
	// CreateCredential encrypts the password under a fresh IV and stores
	// the credential. The returned record carries no secret material.
	CreateCredential(ctx context.Context, req models.CreateCredentialRequest, createdBy int64) (models.Credential, error)

	// GetCredential retrieves one credential with its password decrypted.
	// This is the only operation that ever returns plaintext secrets.
	GetCredential(ctx context.Context, credentialID int64) (models.CredentialSecret, error)

	// ListCredentials returns credential summaries with presence booleans
	// in place of secrets. The list path never decrypts.
	ListCredentials(ctx context.Context, clientID *int64, page, limit int) ([]models.CredentialSummary, models.Pagination, error)

	// UpdateCredential applies a partial update. A non-nil password rotates
	// the stored secret: re-encryption under a fresh IV plus a
	// last_rotated_at refresh.
	UpdateCredential(ctx context.Context, credentialID int64, patch models.UpdateCredentialRequest) (models.Credential, error)

	DeleteCredential(ctx context.Context, credentialID int64) error
}
