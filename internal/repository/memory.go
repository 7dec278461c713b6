package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/atinyakov/GophCards/internal/models"
	"github.com/google/uuid"
)

// MemoryCardRepository keeps cards in process memory. It is used when no
// database is configured and in tests.
type MemoryCardRepository struct {
	mu    sync.RWMutex
	cards map[string]models.Card
	now   func() time.Time
}

// NewMemoryCardRepository returns an empty store. now stamps created_at;
// nil means time.Now.
func NewMemoryCardRepository(now func() time.Time) *MemoryCardRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryCardRepository{cards: make(map[string]models.Card), now: now}
}

func clone(c models.Card) models.Card {
	if c.DeletedAt != nil {
		t := *c.DeletedAt
		c.DeletedAt = &t
	}
	c.TextR = cloneInt(c.TextR)
	c.TextG = cloneInt(c.TextG)
	c.TextB = cloneInt(c.TextB)
	return c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	i := *v
	return &i
}

// Insert stores a copy of card with a fresh id and creation time.
func (r *MemoryCardRepository) Insert(_ context.Context, card models.Card) (*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	card = clone(card)
	card.ID = uuid.NewString()
	card.CreatedAt = r.now()
	card.DeletedAt = nil
	r.cards[card.ID] = card

	out := clone(card)
	return &out, nil
}

// GetByID returns a copy of the card.
func (r *MemoryCardRepository) GetByID(_ context.Context, id string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cards[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := clone(c)
	return &out, nil
}

// ListActive returns active cards ordered by created_at descending.
func (r *MemoryCardRepository) ListActive(_ context.Context) ([]models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Card{}
	for _, c := range r.cards {
		if c.DeletedAt == nil {
			out = append(out, clone(c))
		}
	}
	slices.SortFunc(out, func(a, b models.Card) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// ListDeletedSince returns cards deleted at or after windowStart ordered by
// deleted_at descending.
func (r *MemoryCardRepository) ListDeletedSince(_ context.Context, windowStart time.Time) ([]models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Card{}
	for _, c := range r.cards {
		if c.DeletedAt != nil && !c.DeletedAt.Before(windowStart) {
			out = append(out, clone(c))
		}
	}
	slices.SortFunc(out, func(a, b models.Card) int {
		return cmp.Or(b.DeletedAt.Compare(*a.DeletedAt), b.CreatedAt.Compare(a.CreatedAt))
	})
	return out, nil
}

// SetDeletedAt sets or clears the deletion mark of a card owned by owner.
func (r *MemoryCardRepository) SetDeletedAt(_ context.Context, id, owner string, at *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cards[id]
	if !ok || c.Owner != owner {
		return ErrNotFound
	}
	if at == nil {
		c.DeletedAt = nil
	} else {
		t := *at
		c.DeletedAt = &t
	}
	r.cards[id] = c
	return nil
}

// Delete removes a card owned by owner.
func (r *MemoryCardRepository) Delete(_ context.Context, id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cards[id]
	if !ok || c.Owner != owner {
		return ErrNotFound
	}
	delete(r.cards, id)
	return nil
}

// PurgeDeletedBefore removes soft-deleted cards marked before cutoff.
func (r *MemoryCardRepository) PurgeDeletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, c := range r.cards {
		if c.DeletedAt != nil && c.DeletedAt.Before(cutoff) {
			delete(r.cards, id)
			n++
		}
	}
	return n, nil
}
