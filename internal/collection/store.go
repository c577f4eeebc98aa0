package collection

import "context"

// OwnershipStore describes persistence operations for ownership records.
type OwnershipStore interface {
	// ListByUser returns every ownership record of a user in one batch.
	ListByUser(ctx context.Context, userID string) ([]Ownership, error)
	// Get returns a single record, or ErrNotFound when absent.
	Get(ctx context.Context, userID, cardID string) (Ownership, error)
	// Upsert inserts or overwrites a record as one atomic statement, so
	// concurrent writes to the same (user, card) key cannot lose updates.
	Upsert(ctx context.Context, o Ownership) error
}
