// Package reconcile matches upstream records against stored rows by their
// natural key.
//
// FindOrNew loads the row for a key or starts a fresh one, and reports whether
// persisting it will insert or update. Persist saves the row and, when an insert
// loses a race against another writer (gorm.ErrDuplicatedKey), lets the caller
// adopt the winning row and retries once as an update.
//
// Tally aggregates outcomes per entity kind for run reports.
package reconcile
