package store

import (
	"github.com/brightcms/backoffice/client"
	"github.com/brightcms/backoffice/resource"
	"github.com/rs/zerolog"
)

// Option represents option
type Option[T resource.Record] func(*Store[T])

// WithNotifier sets the notifier informed of terminal store events
func WithNotifier[T resource.Record](notifier client.Notifier) Option[T] {
	return func(s *Store[T]) {
		s.notifier = notifier
	}
}

// WithLogger sets the logger
func WithLogger[T resource.Record](logger zerolog.Logger) Option[T] {
	return func(s *Store[T]) {
		s.logger = logger
	}
}

// WithDefaultFilters sets the filter set ClearFilters resets to
func WithDefaultFilters[T resource.Record](defaults resource.Filters) Option[T] {
	return func(s *Store[T]) {
		s.defaults = defaults.Clone()
	}
}

// WithPageSize sets the page size requested by FetchAll
func WithPageSize[T resource.Record](size int) Option[T] {
	return func(s *Store[T]) {
		if size > 0 {
			s.pageSize = size
		}
	}
}
