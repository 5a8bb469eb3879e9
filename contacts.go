package backoffice

import "time"

// Contact inquiry statuses.
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusReplied  = "replied"
	ContactStatusArchived = "archived"
)

// Contact is one inquiry submitted through the site contact form.
type Contact struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Subject    string     `json:"subject,omitempty"`
	Message    string     `json:"message,omitempty"`
	Status     string     `json:"status"`
	ReceivedAt *time.Time `json:"receivedAt,omitempty"`
}

func (c Contact) RecordID() string     { return c.ID }
func (c Contact) RecordStatus() string { return c.Status }
