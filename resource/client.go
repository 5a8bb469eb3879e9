package resource

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/brightcms/backoffice/client"
)

// Client is a thin typed wrapper over the HTTP core for one REST resource
// path, e.g. /content or /users. Every error coming back from the core is
// wrapped with a resource-scoped action message, preserving the cause.
type Client[T Record] struct {
	api  *client.Service
	path string
	name string
}

// NewClient creates a resource client for path. name is the human label used
// in error messages and notifications ("content item", "user", ...).
func NewClient[T Record](api *client.Service, path, name string) *Client[T] {
	return &Client[T]{api: api, path: path, name: name}
}

// Name returns the human label of the resource family.
func (c *Client[T]) Name() string { return c.name }

// List returns one page of the collection. Filter keys are passed through to
// the server verbatim.
func (c *Client[T]) List(ctx context.Context, opts ListOptions) (*Page[T], error) {
	page := &Page[T]{}
	if err := c.api.Get(ctx, c.path+listQuery(opts, nil), page); err != nil {
		return nil, c.fail("listing", err)
	}
	page.Normalize(opts.PageSize)
	return page, nil
}

// Search returns records matching query, in the same paginated shape as List.
func (c *Client[T]) Search(ctx context.Context, query string, opts ListOptions) (*Page[T], error) {
	extra := url.Values{}
	extra.Set("query", query)
	page := &Page[T]{}
	if err := c.api.Get(ctx, c.path+"/search"+listQuery(opts, extra), page); err != nil {
		return nil, c.fail("searching", err)
	}
	page.Normalize(opts.PageSize)
	return page, nil
}

// Get returns a single record by id. A missing record surfaces as
// client.NotFoundError.
func (c *Client[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	if err := c.api.Get(ctx, c.path+"/"+url.PathEscape(id), &out); err != nil {
		return out, c.fail("fetching", err)
	}
	return out, nil
}

// Create persists a new record and returns the server copy, which carries
// the assigned identity.
func (c *Client[T]) Create(ctx context.Context, data any) (T, error) {
	var out T
	if err := c.api.Post(ctx, c.path, data, &out); err != nil {
		return out, c.fail("creating", err)
	}
	return out, nil
}

// Update applies a partial update: only the fields present in patch change.
// The server copy of the whole record is returned.
func (c *Client[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var out T
	if err := c.api.Patch(ctx, c.path+"/"+url.PathEscape(id), patch, &out); err != nil {
		return out, c.fail("updating", err)
	}
	return out, nil
}

// Delete removes a record by id.
func (c *Client[T]) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, c.path+"/"+url.PathEscape(id)); err != nil {
		return c.fail("deleting", err)
	}
	return nil
}

// BulkCreate persists several records in a single request.
func (c *Client[T]) BulkCreate(ctx context.Context, items []map[string]any) ([]T, error) {
	payload := struct {
		Items []map[string]any `json:"items"`
	}{Items: items}
	var out struct {
		Items []T `json:"items"`
	}
	if err := c.api.Post(ctx, c.path+"/bulk", payload, &out); err != nil {
		return nil, c.fail("bulk-creating", err)
	}
	return out.Items, nil
}

// BulkPatch names one record and the fields to change on it.
type BulkPatch struct {
	ID    string         `json:"id"`
	Patch map[string]any `json:"patch"`
}

// BulkUpdate applies several partial updates in a single request and returns
// the updated server copies.
func (c *Client[T]) BulkUpdate(ctx context.Context, patches []BulkPatch) ([]T, error) {
	payload := struct {
		Items []BulkPatch `json:"items"`
	}{Items: patches}
	var out struct {
		Items []T `json:"items"`
	}
	if err := c.api.Patch(ctx, c.path+"/bulk", payload, &out); err != nil {
		return nil, c.fail("bulk-updating", err)
	}
	return out.Items, nil
}

// BulkDelete removes several records and returns how many the server deleted.
func (c *Client[T]) BulkDelete(ctx context.Context, ids []string) (int, error) {
	payload := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	var out struct {
		Deleted int `json:"deleted"`
	}
	if err := c.api.Post(ctx, c.path+"/bulk-delete", payload, &out); err != nil {
		return 0, c.fail("bulk-deleting", err)
	}
	return out.Deleted, nil
}

// Export downloads the whole collection in the given format (csv, json).
func (c *Client[T]) Export(ctx context.Context, format string) ([]byte, error) {
	path := c.path + "/export"
	if format != "" {
		path += "?format=" + url.QueryEscape(format)
	}
	data, err := c.api.Download(ctx, path)
	if err != nil {
		return nil, c.fail("exporting", err)
	}
	return data, nil
}

// ImportResult reports the outcome of an Import call.
type ImportResult struct {
	Imported int    `json:"imported"`
	Total    int    `json:"total"`
	Message  string `json:"message,omitempty"`
}

// Import uploads a previously exported file.
func (c *Client[T]) Import(ctx context.Context, contentType string, data []byte) (*ImportResult, error) {
	out := &ImportResult{}
	if err := c.api.Upload(ctx, c.path+"/import", contentType, data, out); err != nil {
		return nil, c.fail("importing", err)
	}
	return out, nil
}

func (c *Client[T]) fail(action string, err error) error {
	return fmt.Errorf("failed while %s %s: %w", action, c.name, err)
}

func listQuery(opts ListOptions, extra url.Values) string {
	query := url.Values{}
	for k, v := range extra {
		query[k] = v
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	for k, v := range opts.Filters {
		if v != "" {
			query.Set(k, v)
		}
	}
	if len(query) == 0 {
		return ""
	}
	return "?" + query.Encode()
}
