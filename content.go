package backoffice

import "time"

// Content lifecycle statuses.
const (
	ContentStatusPublished = "published"
	ContentStatusDraft     = "draft"
	ContentStatusScheduled = "scheduled"
	ContentStatusArchived  = "archived"
)

// Content is one page, post or announcement managed by the back office.
type Content struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Body        string     `json:"body,omitempty"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Author      string     `json:"author,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func (c Content) RecordID() string     { return c.ID }
func (c Content) RecordStatus() string { return c.Status }
