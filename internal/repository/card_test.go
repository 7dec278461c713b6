package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/GophCards/internal/models"
)

var cardRowColumns = []string{
	"id", "title", "tagline", "owner", "creator_id", "creator_name",
	"color_r", "color_g", "color_b", "text_r", "text_g", "text_b",
	"font_key", "template_key", "created_at", "deleted_at",
}

func setupCardMock(t *testing.T) (*PostgresCardRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresCardRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestInsert_Success(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	zero := 0
	card := models.Card{
		Title: "Hi", Owner: "u1", CreatorID: "u1", CreatorName: "alice",
		ColorR: 255, ColorG: 255, ColorB: 255,
		TextR: &zero, TextG: &zero, TextB: &zero,
		FontKey: "modern", TemplateKey: "classic",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO cards`)).
		WithArgs(sqlmock.AnyArg(), "Hi", "", "u1", "u1", "alice",
			255, 255, 255, 0, 0, 0, "modern", "classic").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Insert(context.Background(), card)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" {
		t.Error("expected id to be assigned")
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v; want %v", got.CreatedAt, created)
	}
	if got.DeletedAt != nil {
		t.Errorf("expected new card to be active, got deleted_at %v", got.DeletedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInsert_NullsForMissingOptionalFields(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO cards`)).
		WithArgs(sqlmock.AnyArg(), "", "body", "u1", "u1", "alice",
			1, 2, 3, nil, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	_, err := repo.Insert(context.Background(), models.Card{
		Tagline: "body", Owner: "u1", CreatorID: "u1", CreatorName: "alice",
		ColorR: 1, ColorG: 2, ColorB: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInsert_Error(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO cards`)).
		WillReturnError(errors.New("constraint violation"))

	_, err := repo.Insert(context.Background(), models.Card{Title: "x"})
	if err == nil || !regexp.MustCompile(`insert card`).MatchString(err.Error()) {
		t.Errorf("expected insert card error, got %v", err)
	}
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	deleted := created.Add(time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM cards WHERE id = $1`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(cardRowColumns).AddRow(
			"c1", "Hi", nil, "u1", "u1", "alice",
			int64(10), int64(20), int64(30), int64(1), nil, int64(3),
			"serif", nil, created, deleted,
		))

	c, err := repo.GetByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "c1" || c.Title != "Hi" || c.Tagline != "" || c.ColorG != 20 {
		t.Errorf("got wrong card: %+v", c)
	}
	if c.TextR == nil || *c.TextR != 1 || c.TextG != nil {
		t.Errorf("text channels not scanned correctly: %v %v %v", c.TextR, c.TextG, c.TextB)
	}
	if c.FontKey != "serif" || c.TemplateKey != "" {
		t.Errorf("keys = %q, %q", c.FontKey, c.TemplateKey)
	}
	if c.DeletedAt == nil || !c.DeletedAt.Equal(deleted) {
		t.Errorf("deleted_at = %v; want %v", c.DeletedAt, deleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM cards WHERE id = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListActive_Success(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(cardRowColumns).
		AddRow("2", "b", "", "u1", "u1", "a", 1, 1, 1, nil, nil, nil, nil, nil, now, nil).
		AddRow("1", "a", "", "u2", "u2", "b", 2, 2, 2, nil, nil, nil, nil, nil, now.Add(-time.Hour), nil)

	mock.ExpectQuery(`WHERE deleted_at IS NULL\s+ORDER BY created_at DESC`).
		WillReturnRows(rows)

	cards, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 || cards[0].ID != "2" || cards[1].ID != "1" {
		t.Errorf("unexpected cards returned: %+v", cards)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListActive_Empty(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	mock.ExpectQuery(`WHERE deleted_at IS NULL`).
		WillReturnRows(sqlmock.NewRows(cardRowColumns))

	cards, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cards == nil || len(cards) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", cards)
	}
}

func TestListDeletedSince_Success(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	deleted := start.Add(time.Hour)
	mock.ExpectQuery(`WHERE deleted_at IS NOT NULL AND deleted_at >= \$1\s+ORDER BY deleted_at DESC`).
		WithArgs(start).
		WillReturnRows(sqlmock.NewRows(cardRowColumns).
			AddRow("d1", "t", "", "u1", "u1", "a", 0, 0, 0, nil, nil, nil, nil, nil, start.Add(-time.Hour), deleted))

	cards, err := repo.ListDeletedSince(context.Background(), start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 || cards[0].DeletedAt == nil {
		t.Errorf("unexpected cards returned: %+v", cards)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListDeletedSince_QueryError(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	mock.ExpectQuery(`WHERE deleted_at IS NOT NULL`).
		WillReturnError(errors.New("connection reset"))

	if _, err := repo.ListDeletedSince(context.Background(), time.Now()); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestSetDeletedAt(t *testing.T) {
	at := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		at       *time.Time
		wantArg  any
		affected int64
		wantErr  error
	}{
		{"soft delete", &at, at, 1, nil},
		{"restore", nil, nil, 1, nil},
		{"wrong owner or missing", &at, at, 0, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCardMock(t)
			defer cleanup()

			mock.ExpectExec(regexp.QuoteMeta(`UPDATE cards SET deleted_at = $3 WHERE id = $1 AND owner = $2`)).
				WithArgs("c1", "u1", tt.wantArg).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.SetDeletedAt(context.Background(), "c1", "u1", tt.at)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SetDeletedAt error = %v; want %v", err, tt.wantErr)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cards WHERE id = $1 AND owner = $2`)).
		WithArgs("c1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "c1", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cards WHERE id = $1 AND owner = $2`)).
		WithArgs("c1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "c1", "intruder"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPurgeDeletedBefore(t *testing.T) {
	repo, mock, cleanup := setupCardMock(t)
	defer cleanup()

	cutoff := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM cards\s+WHERE deleted_at IS NOT NULL\s+AND deleted_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.PurgeDeletedBefore(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Errorf("removed = %d; want 4", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
