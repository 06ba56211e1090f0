// Package store provides the durable unread-counter store.
//
// Counts are keyed by channel key ("support", "counterparty:<id>", ...)
// and must survive process restart. Durability is best-effort: a failed
// write is logged and absorbed, and the in-memory mirror stays
// authoritative for the running session.
package store

// CounterStore is the single durable owner of unread counts. Values are
// never negative, absent keys read as zero, and Set fully overwrites.
type CounterStore interface {
	// Get returns the count for key, or 0 if absent.
	Get(key string) int

	// Set overwrites the count for key. Negative values are clamped
	// to zero.
	Set(key string, value int)

	// Close releases any underlying resources.
	Close() error
}

// keyPrefix namespaces every counter key in the backing KV mechanism.
const keyPrefix = "unread:"
