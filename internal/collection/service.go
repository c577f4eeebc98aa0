// Package collection joins the external card catalog with locally persisted
// per-user ownership records.
package collection

import (
	"context"
	"errors"
	"fmt"

	"binder.org/internal/catalog"
)

// CatalogSource is the read-only card catalog the collection is joined
// against.
type CatalogSource interface {
	SetCards(ctx context.Context, setName string) ([]catalog.Card, error)
	Card(ctx context.Context, id string) (catalog.Card, error)
}

// Service is the ownership merge engine.
type Service struct {
	catalog CatalogSource
	store   OwnershipStore
	setName string
}

// NewService constructs a Service bound to one named catalog set.
func NewService(source CatalogSource, store OwnershipStore, setName string) *Service {
	return &Service{catalog: source, store: store, setName: setName}
}

// ListCards returns the full card list of the configured set with the user's
// owns/copies attached to each card. Ownership records are fetched in a
// single batch regardless of catalog size. Catalog order is preserved; any
// upstream or store failure aborts the whole operation.
func (s *Service) ListCards(ctx context.Context, userID string) ([]catalog.Card, error) {
	cards, err := s.catalog.SetCards(ctx, s.setName)
	if err != nil {
		return nil, fmt.Errorf("fetch set %q: %w", s.setName, err)
	}
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load ownership for user %s: %w", userID, err)
	}

	byCard := make(map[string]Ownership, len(records))
	for _, rec := range records {
		byCard[rec.CardID] = rec
	}

	enriched := make([]catalog.Card, 0, len(cards))
	for _, card := range cards {
		merged := make(catalog.Card, len(card)+2)
		for k, v := range card {
			merged[k] = v
		}
		// Zero value covers the documented default: not owned, zero copies.
		rec := byCard[card.ID()]
		merged["owns"] = rec.Owns
		merged["copies"] = rec.Copies
		enriched = append(enriched, merged)
	}
	return enriched, nil
}

// Card is a raw pass-through fetch of a single catalog card, without
// ownership enrichment. The asymmetry with ListCards is deliberate: the list
// is the enrichment surface.
func (s *Service) Card(ctx context.Context, id string) (catalog.Card, error) {
	return s.catalog.Card(ctx, id)
}

// Ownership returns the user's record for one card, or the default
// {owns:false, copies:0} when no record exists.
func (s *Service) Ownership(ctx context.Context, userID, cardID string) (Ownership, error) {
	rec, err := s.store.Get(ctx, userID, cardID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Ownership{UserID: userID, CardID: cardID}, nil
		}
		return Ownership{}, err
	}
	return rec, nil
}

// SetOwnership inserts or overwrites the record for (user, card). Repeating
// the same call yields the same stored state.
func (s *Service) SetOwnership(ctx context.Context, userID, cardID string, owns bool, copies int) error {
	if cardID == "" {
		return fmt.Errorf("%w: card id is required", ErrInvalidInput)
	}
	if copies < 0 {
		return fmt.Errorf("%w: copies must be >= 0", ErrInvalidInput)
	}
	return s.store.Upsert(ctx, Ownership{
		UserID: userID,
		CardID: cardID,
		Owns:   owns,
		Copies: copies,
	})
}
