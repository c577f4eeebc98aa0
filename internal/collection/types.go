package collection

import "errors"

var (
	ErrNotFound     = errors.New("collection: not found")
	ErrInvalidInput = errors.New("collection: invalid input")
)

// Ownership is a per-user, per-card possession record. Absence of a record is
// a valid state meaning "not owned, zero copies"; rows are materialized only
// on first write.
type Ownership struct {
	UserID string `json:"-"`
	CardID string `json:"-"`
	Owns   bool   `json:"owns"`
	Copies int    `json:"copies"`
}
