// Package store defines the access-token store used by the session-aware
// transport in the sibling `transport` package.
//
// It ships with an in-memory implementation sufficient for tests and an
// afs-backed file implementation for durable sessions; swap in a custom
// backend if required.
package store
