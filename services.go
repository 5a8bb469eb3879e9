package backoffice

import "time"

// Service listing statuses.
const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
)

// Service is one offering presented on the marketing site.
type Service struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Price       string     `json:"price,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Order       int        `json:"order,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func (s Service) RecordID() string     { return s.ID }
func (s Service) RecordStatus() string { return s.Status }
