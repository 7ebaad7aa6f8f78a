package models

// Pagination describes the page window applied to a collection response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// LoginRequest is the login payload. Lookup is by email.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest is the admin-initiated account creation payload.
// Unlike self-registration it may assign any role, including admin.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// CreateCredentialRequest is the credential creation payload. Password is
// the only field that is encrypted before storage.
type CreateCredentialRequest struct {
	ResourceID int64          `json:"resource_id"`
	Type       CredentialType `json:"credential_type"`
	Username   string         `json:"username"`
	Password   string         `json:"password"`
	SSHKey     string         `json:"ssh_key"`
	Notes      string         `json:"notes"`
	ExpiresAt  *string        `json:"expires_at"`
}

// UpdateCredentialRequest is the partial-update payload. Nil fields are
// left untouched; a non-nil Password triggers a rotation (re-encryption
// under a fresh IV plus a last_rotated_at refresh); an empty ExpiresAt
// string removes a previously set expiry.
type UpdateCredentialRequest struct {
	Type      *CredentialType `json:"credential_type"`
	Username  *string         `json:"username"`
	Password  *string         `json:"password"`
	SSHKey    *string         `json:"ssh_key"`
	Notes     *string         `json:"notes"`
	ExpiresAt *string         `json:"expires_at"`
}

// CreateClientRequest is the client creation payload.
type CreateClientRequest struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// UpdateClientRequest is the partial-update payload for a client.
type UpdateClientRequest struct {
	Name        *string `json:"name"`
	CompanyName *string `json:"company_name"`
	Description *string `json:"description"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

// CreateResourceRequest is the resource creation payload.
type CreateResourceRequest struct {
	ClientID    int64        `json:"client_id"`
	Name        string       `json:"name"`
	Type        ResourceType `json:"resource_type"`
	Description string       `json:"description"`
	Hostname    string       `json:"hostname"`
	IPAddress   string       `json:"ip_address"`
	Port        *int         `json:"port"`
	URL         string       `json:"url"`
	Notes       string       `json:"notes"`
}

// UpdateResourceRequest is the partial-update payload for a resource.
type UpdateResourceRequest struct {
	Name        *string       `json:"name"`
	Type        *ResourceType `json:"resource_type"`
	Description *string       `json:"description"`
	Hostname    *string       `json:"hostname"`
	IPAddress   *string       `json:"ip_address"`
	Port        *int          `json:"port"`
	URL         *string       `json:"url"`
	Notes       *string       `json:"notes"`
}
