// Package service implements the card lifecycle and profile lookups,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/GophCards/internal/models"
	"github.com/atinyakov/GophCards/internal/render"
	"github.com/atinyakov/GophCards/internal/repository"
)

// RestoreWindow is how long a soft-deleted card stays in the recently
// deleted listing.
const RestoreWindow = 7 * 24 * time.Hour

// Editor defaults.
const (
	DefaultBackground = 255
	DefaultText       = 0
)

// CardRepository defines the persistence operations needed by the CardService.
type CardRepository interface {
	// Insert stores a new card, assigning its id and creation time.
	Insert(ctx context.Context, card models.Card) (*models.Card, error)
	// GetByID fetches a card in any deletion state.
	// Returns repository.ErrNotFound if the id does not exist.
	GetByID(ctx context.Context, id string) (*models.Card, error)
	// ListActive returns cards without a deletion mark, newest first.
	ListActive(ctx context.Context) ([]models.Card, error)
	// ListDeletedSince returns cards deleted at or after windowStart,
	// most recently deleted first.
	ListDeletedSince(ctx context.Context, windowStart time.Time) ([]models.Card, error)
	// SetDeletedAt sets or clears the deletion mark of a card owned by owner.
	SetDeletedAt(ctx context.Context, id, owner string, at *time.Time) error
	// Delete removes a card owned by owner.
	Delete(ctx context.Context, id, owner string) error
	// PurgeDeletedBefore removes cards soft-deleted before cutoff.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Listing is a snapshot of cards returned to the caller.
type Listing struct {
	Cards []models.Card `json:"cards"`
	AsOf  time.Time     `json:"as_of"`
}

// CardService implements the card lifecycle: Active, SoftDeleted and Purged.
type CardService struct {
	repo CardRepository
	log  *zap.Logger
	now  func() time.Time
}

// Option configures a CardService.
type Option func(*CardService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *CardService) { s.now = now }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *zap.Logger) Option {
	return func(s *CardService) { s.log = log }
}

// NewCardService constructs a CardService with the provided CardRepository.
func NewCardService(repo CardRepository, opts ...Option) *CardService {
	s := &CardService{repo: repo, log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the input and stores a new card owned by owner.
// creatorName is snapshotted into the card and never re-synced.
func (s *CardService) Create(ctx context.Context, owner, creatorName string, in models.CardInput) (*models.Card, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	card := Draft(creatorName, in)
	card.Owner = owner
	card.CreatorID = owner
	card.FontKey = keyOr(in.FontKey, render.FontModern.String())
	card.TemplateKey = keyOr(in.TemplateKey, render.DecorationClassic.String())

	created, err := s.repo.Insert(ctx, card)
	if err != nil {
		return nil, &StoreError{Op: "save card", Err: err}
	}
	s.log.Info("card created", zap.String("id", created.ID), zap.String("owner", owner))
	return created, nil
}

// Draft builds the unsaved card the editor previews. Omitted colors get
// the editor defaults: white background, black text.
func Draft(creatorName string, in models.CardInput) models.Card {
	return models.Card{
		Title:       in.Title,
		Tagline:     in.Content,
		CreatorName: creatorName,
		ColorR:      valueOr(in.ColorR, DefaultBackground),
		ColorG:      valueOr(in.ColorG, DefaultBackground),
		ColorB:      valueOr(in.ColorB, DefaultBackground),
		TextR:       intPtr(valueOr(in.TextR, DefaultText)),
		TextG:       intPtr(valueOr(in.TextG, DefaultText)),
		TextB:       intPtr(valueOr(in.TextB, DefaultText)),
		FontKey:     in.FontKey,
		TemplateKey: in.TemplateKey,
	}
}

// Get returns a card in any deletion state.
func (s *CardService) Get(ctx context.Context, id string) (*models.Card, error) {
	card, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "load card", Err: err}
	}
	return card, nil
}

// owned loads the card and checks that requester owns it.
func (s *CardService) owned(ctx context.Context, id, requester string) (*models.Card, error) {
	card, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if requester == "" || card.Owner != requester {
		return nil, ErrUnauthorized
	}
	return card, nil
}

// mutationErr maps a store error of a mutating call. The store reports
// not-found when the owner guard fails, which the ownership check above
// already ruled out, so it means the card vanished in between.
func mutationErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return &StoreError{Op: op, Err: err}
}

// SoftDelete moves an active card to the recently deleted list.
// Deleting an already deleted card keeps its original deletion time.
func (s *CardService) SoftDelete(ctx context.Context, id, requester string) error {
	card, err := s.owned(ctx, id, requester)
	if err != nil {
		return err
	}
	if card.IsDeleted() {
		return nil
	}
	now := s.now()
	if err := s.repo.SetDeletedAt(ctx, id, requester, &now); err != nil {
		return mutationErr("delete card", err)
	}
	s.log.Info("card soft-deleted", zap.String("id", id))
	return nil
}

// Restore clears the deletion mark. There is no time limit, and restoring
// an active card is a no-op.
func (s *CardService) Restore(ctx context.Context, id, requester string) error {
	card, err := s.owned(ctx, id, requester)
	if err != nil {
		return err
	}
	if !card.IsDeleted() {
		return nil
	}
	if err := s.repo.SetDeletedAt(ctx, id, requester, nil); err != nil {
		return mutationErr("restore card", err)
	}
	s.log.Info("card restored", zap.String("id", id))
	return nil
}

// Purge removes a card permanently, whatever its deletion state.
func (s *CardService) Purge(ctx context.Context, id, requester string) error {
	if _, err := s.owned(ctx, id, requester); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, requester); err != nil {
		return mutationErr("permanently delete card", err)
	}
	s.log.Info("card purged", zap.String("id", id))
	return nil
}

// ListActive returns every active card, newest first.
func (s *CardService) ListActive(ctx context.Context) (Listing, error) {
	now := s.now()
	cards, err := s.repo.ListActive(ctx)
	if err != nil {
		return Listing{}, &StoreError{Op: "load cards", Err: err}
	}
	return Listing{Cards: cards, AsOf: now}, nil
}

// ListRecentlyDeleted returns cards deleted within RestoreWindow of now,
// most recently deleted first. Older deleted cards are left in storage.
func (s *CardService) ListRecentlyDeleted(ctx context.Context) (Listing, error) {
	now := s.now()
	cards, err := s.repo.ListDeletedSince(ctx, now.Add(-RestoreWindow))
	if err != nil {
		return Listing{}, &StoreError{Op: "load deleted cards", Err: err}
	}
	return Listing{Cards: cards, AsOf: now}, nil
}

// PurgeExpired removes cards soft-deleted more than retention ago.
// Retention must cover RestoreWindow.
func (s *CardService) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	if err := CheckRetention(retention); err != nil {
		return 0, err
	}
	n, err := s.repo.PurgeDeletedBefore(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, &StoreError{Op: "purge expired cards", Err: err}
	}
	return n, nil
}

func valueOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func intPtr(v int) *int { return &v }

func keyOr(key, def string) string {
	if key == "" {
		return def
	}
	return key
}
