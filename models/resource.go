package models

import "time"

// ResourceType tags the kind of infrastructure a resource record describes.
type ResourceType string

const (
	ResourceTypeServer   ResourceType = "server"
	ResourceTypeVM       ResourceType = "vm"
	ResourceTypeDatabase ResourceType = "database"
	ResourceTypeSaaS     ResourceType = "saas"
	ResourceTypeOther    ResourceType = "other"
)

// Valid reports whether t is one of the known resource types.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceTypeServer, ResourceTypeVM, ResourceTypeDatabase,
		ResourceTypeSaaS, ResourceTypeOther:
		return true
	}
	return false
}

// Resource is a piece of client infrastructure (server, VM, database, SaaS
// account) that credentials attach to. Deletion is soft.
type Resource struct {
	ID          int64        `json:"id"`
	ClientID    int64        `json:"client_id"`
	Name        string       `json:"name"`
	Type        ResourceType `json:"resource_type"`
	Description string       `json:"description,omitempty"`
	Hostname    string       `json:"hostname,omitempty"`
	IPAddress   string       `json:"ip_address,omitempty"`
	Port        *int         `json:"port,omitempty"`
	URL         string       `json:"url,omitempty"`
	Notes       string       `json:"notes,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedBy *int64    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined read-only display fields.
	ClientName        string `json:"client_name,omitempty"`
	CreatedByUsername string `json:"created_by_username,omitempty"`
}

// TableName returns the name of the database table
// associated with the Resource model.
func (r Resource) TableName() string {
	return "resources"
}
