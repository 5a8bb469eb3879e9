// Package store provides the generic collection state container used by
// every resource family: a paginated, filterable set of records with a
// current item, an operation phase, and per-status statistics kept in sync
// with create/update/delete results through incremental deltas.
package store
