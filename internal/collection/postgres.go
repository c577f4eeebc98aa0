package collection

import (
	"context"
	"database/sql"
)

var _ OwnershipStore = (*PGOwnershipStore)(nil)

// PGOwnershipStore implements OwnershipStore using PostgreSQL.
type PGOwnershipStore struct {
	db *sql.DB
}

func NewPGOwnershipStore(db *sql.DB) *PGOwnershipStore {
	return &PGOwnershipStore{db: db}
}

func (s *PGOwnershipStore) ListByUser(ctx context.Context, userID string) ([]Ownership, error) {
	rows, err := s.db.QueryContext(ctx,
		`select card_id, owns, copies from user_cards where user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Ownership
	for rows.Next() {
		rec := Ownership{UserID: userID}
		if err := rows.Scan(&rec.CardID, &rec.Owns, &rec.Copies); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PGOwnershipStore) Get(ctx context.Context, userID, cardID string) (Ownership, error) {
	rec := Ownership{UserID: userID, CardID: cardID}
	err := s.db.QueryRowContext(ctx,
		`select owns, copies from user_cards where user_id=$1 and card_id=$2`,
		userID, cardID,
	).Scan(&rec.Owns, &rec.Copies)
	if err != nil {
		if err == sql.ErrNoRows {
			return Ownership{}, ErrNotFound
		}
		return Ownership{}, err
	}
	return rec, nil
}

// Upsert relies on the database for atomicity: a single insert-on-conflict
// statement, not a read-then-write.
func (s *PGOwnershipStore) Upsert(ctx context.Context, o Ownership) error {
	_, err := s.db.ExecContext(ctx,
		`insert into user_cards(user_id, card_id, owns, copies) values($1,$2,$3,$4)
		 on conflict (user_id, card_id) do update set owns=excluded.owns, copies=excluded.copies, updated_at=now()`,
		o.UserID, o.CardID, o.Owns, o.Copies,
	)
	return err
}
