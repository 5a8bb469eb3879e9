package main

import (
	"context"

	"github.com/brightcms/backoffice/resource"
	"github.com/brightcms/backoffice/store"
)

// family erases the record type so commands can address any resource
// collection picked by name on the command line.
type family interface {
	list(ctx context.Context, page, pageSize int, filters resource.Filters) ([]string, store.Pagination, error)
	stats(ctx context.Context) (store.Stats, error)
	export(ctx context.Context, format string) ([]byte, error)
	importData(ctx context.Context, data []byte) (*resource.ImportResult, error)
}

type storeFamily[T resource.Record] struct {
	store    *store.Store[T]
	describe func(T) string
}

func (f *storeFamily[T]) list(ctx context.Context, page, pageSize int, filters resource.Filters) ([]string, store.Pagination, error) {
	f.store.SetPage(page)
	if pageSize > 0 {
		f.store.SetPageSize(pageSize)
	}
	f.store.SetFilters(filters)
	if err := f.store.FetchAll(ctx); err != nil {
		return nil, store.Pagination{}, err
	}
	items := f.store.Items()
	rows := make([]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, f.describe(item))
	}
	return rows, f.store.Pagination(), nil
}

func (f *storeFamily[T]) stats(ctx context.Context) (store.Stats, error) {
	if err := f.store.FetchAll(ctx); err != nil {
		return store.Stats{}, err
	}
	return f.store.Stats(), nil
}

func (f *storeFamily[T]) export(ctx context.Context, format string) ([]byte, error) {
	return f.store.Resource().Export(ctx, format)
}

func (f *storeFamily[T]) importData(ctx context.Context, data []byte) (*resource.ImportResult, error) {
	return f.store.Resource().Import(ctx, "application/octet-stream", data)
}
