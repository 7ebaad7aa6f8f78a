package models

import "time"

// Client is an organization whose infrastructure the vault manages
// credentials for. Deletion is soft: IsActive flips and the row stays.
type Client struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name,omitempty"`
	Description string `json:"description,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedBy *int64    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// CreatedByUsername is a joined display field.
	CreatedByUsername string `json:"created_by_username,omitempty"`
}

// TableName returns the name of the database table
// associated with the Client model.
func (c Client) TableName() string {
	return "clients"
}
