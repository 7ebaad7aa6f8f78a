package models

import "time"

// CredentialType tags what kind of access a stored credential grants.
type CredentialType string

const (
	CredentialTypeSSH      CredentialType = "ssh"
	CredentialTypeDatabase CredentialType = "database"
	CredentialTypeAdmin    CredentialType = "admin"
	CredentialTypeAPI      CredentialType = "api"
	CredentialTypeFTP      CredentialType = "ftp"
	CredentialTypeOther    CredentialType = "other"
)

// Valid reports whether t is one of the known credential types.
func (t CredentialType) Valid() bool {
	switch t {
	case CredentialTypeSSH, CredentialTypeDatabase, CredentialTypeAdmin,
		CredentialTypeAPI, CredentialTypeFTP, CredentialTypeOther:
		return true
	}
	return false
}

// Credential is a secret record bound to exactly one resource. The password
// is stored encrypted; EncryptedPassword and EncryptionIV are only ever
// written and read together — an IV is meaningless without its ciphertext.
//
// Deletion is soft (IsActive flip), never physical, so the row survives for
// audit history. Password rotation replaces the ciphertext/IV pair under a
// fresh IV and refreshes LastRotatedAt.
type Credential struct {
	// ID is the internal unique identifier of the credential.
	ID int64 `json:"id"`

	// ResourceID references the resource this credential unlocks.
	ResourceID int64 `json:"resource_id"`

	// Type tags the kind of access (ssh, database, admin, api, ftp, other).
	Type CredentialType `json:"credential_type"`

	// Username is the optional plaintext account name on the target system.
	Username string `json:"username,omitempty"`

	// EncryptedPassword is the AES-256-CBC ciphertext of the password,
	// hex-encoded. Never serialized.
	EncryptedPassword string `json:"-"`

	// EncryptionIV is the hex-encoded 16-byte initialization vector the
	// password was encrypted under. Never serialized.
	EncryptionIV string `json:"-"`

	// SSHKey is optional key material. Never serialized in list payloads;
	// exposed only through the single-credential retrieval path.
	SSHKey string `json:"-"`

	// Notes is an optional free-form description.
	Notes string `json:"notes,omitempty"`

	// ExpiresAt is the optional expiry of the underlying secret.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// LastRotatedAt is refreshed on every password change.
	LastRotatedAt time.Time `json:"last_rotated_at"`

	// IsActive is the soft-delete flag.
	IsActive bool `json:"is_active"`

	// CreatedBy references the user who created the record.
	CreatedBy *int64 `json:"created_by,omitempty"`

	// CreatedAt is when the record was inserted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the last modification time of the row.
	UpdatedAt time.Time `json:"updated_at"`

	// Joined read-only display fields, populated by list/get queries.
	ResourceName      string `json:"resource_name,omitempty"`
	ClientID          int64  `json:"client_id,omitempty"`
	ClientName        string `json:"client_name,omitempty"`
	CreatedByUsername string `json:"created_by_username,omitempty"`
}

// TableName returns the name of the database table
// associated with the Credential model.
func (c Credential) TableName() string {
	return "credentials"
}

// CredentialSummary is the list-path projection of a credential. It carries
// boolean indicators instead of secret material: the collection endpoint
// must never decrypt.
type CredentialSummary struct {
	Credential
	HasPassword bool `json:"has_password"`
	HasSSHKey   bool `json:"has_ssh_key"`
}

// CredentialSecret is the single-credential projection returned by the
// get-by-id path. Password holds the decrypted plaintext and SSHKey the raw
// key material; this is the only shape that ever exposes them.
type CredentialSecret struct {
	Credential
	Password string `json:"password"`
	SSHKey   string `json:"ssh_key,omitempty"`
}
