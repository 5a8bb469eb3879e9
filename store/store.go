package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/brightcms/backoffice/client"
	"github.com/brightcms/backoffice/internal/collection"
	"github.com/brightcms/backoffice/resource"
	"github.com/rs/zerolog"
)

// Phase is the lifecycle state of the most recent store operation.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSucceeded
	PhaseFailed
)

// Statuses forced by Publish and Unpublish.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// ErrFetchInProgress is returned when FetchAll is called while another
// FetchAll for the same store is still in flight. Reads by id and mutations
// are allowed to proceed concurrently.
var ErrFetchInProgress = errors.New("a fetch is already in progress")

// Store is the collection state container for one resource family: a
// paginated, filterable set of records, a current item, the operation phase
// and derived per-status statistics. Results of client calls are applied as
// reducer-style transitions under a single mutex; a failed call leaves the
// last-known-good items and stats untouched.
//
// Responses are not guaranteed to arrive in issue order. Mutations therefore
// carry a monotonic sequence per record id, and a response older than the
// last one applied for that id is silently discarded. A call whose context
// was cancelled is likewise a no-op on completion.
type Store[T resource.Record] struct {
	client   *resource.Client[T]
	notifier client.Notifier
	logger   zerolog.Logger

	mu       sync.Mutex
	phase    Phase
	errMsg   string
	items    []T
	current  *T
	filters  resource.Filters
	defaults resource.Filters

	page       int
	totalPages int
	totalItems int
	pageSize   int

	stats Stats

	seq      atomic.Uint64
	applied  *collection.SyncMap[string, uint64]
	fetching atomic.Bool
}

func New[T resource.Record](resourceClient *resource.Client[T], options ...Option[T]) *Store[T] {
	ret := &Store[T]{
		client:   resourceClient,
		notifier: client.NopNotifier(),
		logger:   zerolog.Nop(),
		defaults: resource.Filters{},
		page:     1,
		pageSize: resource.DefaultPageSize,
		stats:    newStats(),
		applied:  collection.NewSyncMap[string, uint64](),
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.filters = ret.defaults.Clone()
	return ret
}

// Resource exposes the underlying typed client for operations that bypass
// collection state, such as export and import.
func (s *Store[T]) Resource() *resource.Client[T] {
	return s.client
}

// FetchAll loads the current page of the collection under the current
// filters, replacing items, pagination and stats on success. While one
// FetchAll is in flight, another returns ErrFetchInProgress.
func (s *Store[T]) FetchAll(ctx context.Context) error {
	if !s.fetching.CompareAndSwap(false, true) {
		return ErrFetchInProgress
	}
	defer s.fetching.Store(false)

	s.mu.Lock()
	s.phase = PhaseLoading
	opts := resource.ListOptions{Page: s.page, PageSize: s.pageSize, Filters: s.filters.Clone()}
	s.mu.Unlock()

	page, err := s.client.List(ctx, opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		s.phase = PhaseIdle
		return nil
	}
	if err != nil {
		s.failed(err)
		return err
	}
	s.items = page.Items
	s.page = page.CurrentPage
	s.totalPages = page.TotalPages
	s.totalItems = page.TotalItems
	if page.PageSize > 0 {
		s.pageSize = page.PageSize
	}
	s.applyStats(page)
	s.succeeded()
	return nil
}

// FetchByID loads a single record into the current-item slot. It does not
// take the FetchAll guard; independent reads are allowed while a collection
// fetch or mutation is pending.
func (s *Store[T]) FetchByID(ctx context.Context, id string) error {
	s.mu.Lock()
	s.phase = PhaseLoading
	s.mu.Unlock()

	record, err := s.client.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		s.phase = PhaseIdle
		return nil
	}
	if err != nil {
		s.failed(err)
		return err
	}
	s.current = &record
	s.succeeded()
	return nil
}

// Create persists a new record and merges it optimistically: prepended to
// items, totalItems and the stats count for its status both incremented. No
// refetch happens.
func (s *Store[T]) Create(ctx context.Context, data any) (T, error) {
	var zero T
	record, err := s.client.Create(ctx, data)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return zero, nil
	}
	if err != nil {
		s.failed(err)
		return zero, err
	}
	s.items = append([]T{record}, s.items...)
	s.totalItems++
	s.stats.add(record.RecordStatus(), 1)
	s.succeeded()
	s.notifier.Success(s.client.Name() + " created")
	return record, nil
}

// Update applies a partial update. On success the record is replaced in
// place; a status change moves one stats count to another, total unchanged.
// The current item is replaced too when it matches.
func (s *Store[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T
	seq := s.seq.Add(1)
	record, err := s.client.Update(ctx, id, patch)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return zero, nil
	}
	if err != nil {
		s.failed(err)
		return zero, err
	}
	if s.stale(id, seq) {
		return record, nil
	}
	s.applyUpdate(record)
	s.succeeded()
	s.notifier.Success(s.client.Name() + " updated")
	return record, nil
}

// Publish is an Update forcing status to published.
func (s *Store[T]) Publish(ctx context.Context, id string) (T, error) {
	return s.Update(ctx, id, map[string]any{"status": StatusPublished})
}

// Unpublish is an Update forcing status back to draft.
func (s *Store[T]) Unpublish(ctx context.Context, id string) (T, error) {
	return s.Update(ctx, id, map[string]any{"status": StatusDraft})
}

// Delete removes a record. Stats are adjusted from the record's last known
// status before it leaves items; the current item is cleared when it
// matches.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	seq := s.seq.Add(1)
	err := s.client.Delete(ctx, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		s.failed(err)
		return err
	}
	if s.stale(id, seq) {
		return nil
	}
	if idx := s.index(id); idx >= 0 {
		s.stats.add(s.items[idx].RecordStatus(), -1)
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		s.totalItems--
	}
	if s.current != nil && (*s.current).RecordID() == id {
		s.current = nil
	}
	s.succeeded()
	s.notifier.Success(s.client.Name() + " deleted")
	return nil
}

// SetFilters shallow-merges partial into the current filter set. It does not
// fetch; the caller decides when to refetch.
func (s *Store[T]) SetFilters(partial resource.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filters.Merge(partial)
}

// ClearFilters resets to the default filter set. Idempotent.
func (s *Store[T]) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.defaults.Clone()
}

// SetPage selects the page the next FetchAll loads.
func (s *Store[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

// SetPageSize selects how many records the next FetchAll requests.
func (s *Store[T]) SetPageSize(size int) {
	if size < 1 {
		size = resource.DefaultPageSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = size
}

// ---- selectors (copy-on-read) ----

func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]T, len(s.items))
	copy(ret, s.items)
	return ret
}

func (s *Store[T]) Current() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		var zero T
		return zero, false
	}
	return *s.current, true
}

// Pagination describes the server-reported position within the collection.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PageSize    int
}

func (s *Store[T]) Pagination() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Pagination{CurrentPage: s.page, TotalPages: s.totalPages, TotalItems: s.totalItems, PageSize: s.pageSize}
}

func (s *Store[T]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Clone()
}

func (s *Store[T]) Filters() resource.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

func (s *Store[T]) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Err returns the user-facing message of the last failed operation, empty
// after a success.
func (s *Store[T]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// ---- internals, called with s.mu held ----

func (s *Store[T]) succeeded() {
	s.phase = PhaseSucceeded
	s.errMsg = ""
}

func (s *Store[T]) failed(err error) {
	s.phase = PhaseFailed
	s.errMsg = err.Error()
	s.logger.Debug().Err(err).Str("resource", s.client.Name()).Msg("store operation failed")
}

// stale records seq as applied for id and reports whether a newer response
// already won. Last writer is decided by issue order, not network timing.
func (s *Store[T]) stale(id string, seq uint64) bool {
	if last, ok := s.applied.Get(id); ok && last > seq {
		s.logger.Debug().Str("id", id).Msg("discarding stale response")
		return true
	}
	s.applied.Put(id, seq)
	return false
}

func (s *Store[T]) index(id string) int {
	for i := range s.items {
		if s.items[i].RecordID() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) applyUpdate(record T) {
	id := record.RecordID()
	if idx := s.index(id); idx >= 0 {
		s.stats.move(s.items[idx].RecordStatus(), record.RecordStatus())
		s.items[idx] = record
	}
	if s.current != nil && (*s.current).RecordID() == id {
		s.current = &record
	}
}

// applyStats picks the stats source: a server summary is authoritative
// whenever present; counting the in-memory items is only valid when they are
// the full set. On a partial page without a summary the running deltas are
// kept as-is.
func (s *Store[T]) applyStats(page *resource.Page[T]) {
	switch {
	case page.Stats != nil:
		s.stats = statsFromSummary(page.Stats)
	case page.TotalPages <= 1:
		s.stats = newStats()
		for i := range page.Items {
			s.stats.add(page.Items[i].RecordStatus(), 1)
		}
	default:
		s.logger.Debug().Str("resource", s.client.Name()).Msg("no stats summary for paginated response, keeping running counts")
	}
}
