// Package repository provides persistence implementations for cards and
// profiles using a PostgreSQL database, plus an in-memory card store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/GophCards/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no card matches the id (and owner, for
// mutating calls).
var ErrNotFound = errors.New("card not found")

const cardColumns = `id, title, tagline, owner, creator_id, creator_name,
	color_r, color_g, color_b, text_r, text_g, text_b,
	font_key, template_key, created_at, deleted_at`

// PostgresCardRepository implements card storage against a PostgreSQL database.
type PostgresCardRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCardRepository creates a new PostgresCardRepository using the provided *sql.DB.
func NewPostgresCardRepository(db *sql.DB) *PostgresCardRepository {
	return &PostgresCardRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (models.Card, error) {
	var (
		c                   models.Card
		title, tagline      sql.NullString
		fontKey, template   sql.NullString
		textR, textG, textB sql.NullInt32
		deletedAt           sql.NullTime
	)
	err := row.Scan(
		&c.ID, &title, &tagline, &c.Owner, &c.CreatorID, &c.CreatorName,
		&c.ColorR, &c.ColorG, &c.ColorB, &textR, &textG, &textB,
		&fontKey, &template, &c.CreatedAt, &deletedAt,
	)
	if err != nil {
		return c, err
	}
	c.Title = title.String
	c.Tagline = tagline.String
	c.FontKey = fontKey.String
	c.TemplateKey = template.String
	c.TextR = nullInt(textR)
	c.TextG = nullInt(textG)
	c.TextB = nullInt(textB)
	if deletedAt.Valid {
		t := deletedAt.Time
		c.DeletedAt = &t
	}
	return c, nil
}

func nullInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int32)
	return &i
}

func intArg(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func stringArg(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Insert stores a new card. The id and created_at fields are assigned here
// and by the database respectively; the stored card is returned.
func (r *PostgresCardRepository) Insert(ctx context.Context, card models.Card) (*models.Card, error) {
	card.ID = uuid.NewString()
	card.DeletedAt = nil
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO cards (id, title, tagline, owner, creator_id, creator_name,
			color_r, color_g, color_b, text_r, text_g, text_b, font_key, template_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`,
		card.ID, card.Title, card.Tagline, card.Owner, card.CreatorID, card.CreatorName,
		card.ColorR, card.ColorG, card.ColorB, intArg(card.TextR), intArg(card.TextG), intArg(card.TextB),
		stringArg(card.FontKey), stringArg(card.TemplateKey),
	).Scan(&card.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}
	return &card, nil
}

// GetByID fetches a card regardless of its deletion state.
func (r *PostgresCardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return &c, nil
}

// ListActive returns every card without a deletion mark, newest first.
func (r *PostgresCardRepository) ListActive(ctx context.Context) ([]models.Card, error) {
	return r.list(ctx, `SELECT `+cardColumns+` FROM cards
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC`)
}

// ListDeletedSince returns soft-deleted cards whose deleted_at is at or
// after windowStart, most recently deleted first.
func (r *PostgresCardRepository) ListDeletedSince(ctx context.Context, windowStart time.Time) ([]models.Card, error) {
	return r.list(ctx, `SELECT `+cardColumns+` FROM cards
		WHERE deleted_at IS NOT NULL AND deleted_at >= $1
		ORDER BY deleted_at DESC`, windowStart)
}

func (r *PostgresCardRepository) list(ctx context.Context, query string, args ...any) ([]models.Card, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// SetDeletedAt sets or clears (at == nil) the deletion mark of a card
// owned by owner.
func (r *PostgresCardRepository) SetDeletedAt(ctx context.Context, id, owner string, at *time.Time) error {
	var arg any
	if at != nil {
		arg = *at
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE cards SET deleted_at = $3 WHERE id = $1 AND owner = $2`,
		id, owner, arg)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	return expectOne(res)
}

// Delete removes a card owned by owner.
func (r *PostgresCardRepository) Delete(ctx context.Context, id, owner string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cards WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return expectOne(res)
}

// PurgeDeletedBefore removes soft-deleted cards marked before cutoff and
// reports how many were removed.
func (r *PostgresCardRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM cards
		 WHERE deleted_at IS NOT NULL
		   AND deleted_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge cards: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge cards: %w", err)
	}
	return n, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
