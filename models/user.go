package models

import "time"

// Role is the access level assigned to a user account. It is embedded in
// session tokens and checked by the authorization middleware on every
// protected request.
type Role string

const (
	// RoleAdmin can manage user accounts and all vault data.
	RoleAdmin Role = "admin"
	// RoleTechnician can manage vault data but not user accounts.
	RoleTechnician Role = "technician"
	// RoleViewer has read-only access to vault data.
	RoleViewer Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleViewer:
		return true
	}
	return false
}

// SelfAssignable reports whether a user may request r during
// self-registration. Admin accounts can only be created by another admin.
func (r Role) SelfAssignable() bool {
	return r == RoleTechnician || r == RoleViewer
}

// User represents an account entity used for authentication and
// authorization. Sensitive fields must never be exposed outside trusted
// boundaries.
//
// Lifecycle: self-registered accounts start unverified and inactive
// (pending); an admin either approves them (verified + active) or rejects
// them (row deleted). Admin-created accounts are verified and active from
// the start. Deactivation flips IsActive only and is reversible.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique login name, shown in audit fields of other
	// records (e.g. credential created_by).
	Username string `json:"username"`

	// Email is the unique address the user authenticates with.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// FullName is the optional display name. Non-sensitive.
	FullName string `json:"full_name,omitempty"`

	// Role determines what the account is allowed to do.
	Role Role `json:"role"`

	// IsActive gates authentication: an inactive account cannot log in
	// regardless of any other state.
	IsActive bool `json:"is_active"`

	// IsVerified records admin approval. An unverified account cannot
	// authenticate even with a correct password.
	IsVerified bool `json:"is_verified"`

	// ApprovedBy references the admin who approved or created the account.
	// Nil while the account is pending.
	ApprovedBy *int64 `json:"approved_by,omitempty"`

	// ApprovedAt is when the approval happened. Nil while pending.
	ApprovedAt *time.Time `json:"approved_at,omitempty"`

	// CreatedAt is when the account row was inserted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the last modification time of the row.
	UpdatedAt time.Time `json:"updated_at"`
}

// Pending reports whether the account is still awaiting admin approval.
func (u User) Pending() bool {
	return !u.IsVerified
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
