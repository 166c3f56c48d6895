package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents an analysis run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	WebsiteURL  string     `json:"website_url"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// VendorProfile represents a stored vendor profile record
type VendorProfile struct {
	ID         uuid.UUID `json:"id"`
	WebsiteURL string    `json:"website_url"`
	Profile    any       `json:"profile"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
