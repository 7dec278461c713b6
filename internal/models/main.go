// Package models defines the core data structures for cards and profiles.
package models

import "time"

// Card is a stored greeting card.
type Card struct {
	// ID is the unique identifier assigned by the store on insert.
	ID string `json:"id"`
	// Title is the card heading.
	Title string `json:"title"`
	// Tagline holds the card body text.
	Tagline string `json:"tagline"`
	// Owner is the user allowed to delete, restore or purge the card.
	Owner string `json:"owner"`
	// CreatorID is the user who created the card. It never changes.
	CreatorID string `json:"creator_id"`
	// CreatorName is the creator's display name at the moment of creation.
	CreatorName string `json:"creator_name"`

	// ColorR, ColorG and ColorB hold the background color.
	ColorR int `json:"color_r"`
	ColorG int `json:"color_g"`
	ColorB int `json:"color_b"`

	// TextR, TextG and TextB hold the text color. Any of them may be absent.
	TextR *int `json:"text_r"`
	TextG *int `json:"text_g"`
	TextB *int `json:"text_b"`

	// FontKey selects a typography treatment.
	FontKey string `json:"font_key,omitempty"`
	// TemplateKey selects a decorative layout.
	TemplateKey string `json:"template_key,omitempty"`

	// CreatedAt is assigned by the store; zero for an unsaved draft.
	CreatedAt time.Time `json:"created_at"`
	// DeletedAt is nil while the card is active.
	DeletedAt *time.Time `json:"deleted_at"`
}

// IsDeleted reports whether the card is soft-deleted.
func (c Card) IsDeleted() bool {
	return c.DeletedAt != nil
}

// CardInput is the editor payload used to create a card.
type CardInput struct {
	Title   string `json:"title" validate:"max=120"`
	Content string `json:"content" validate:"max=2000"`

	ColorR *int `json:"color_r" validate:"omitempty,gte=0,lte=255"`
	ColorG *int `json:"color_g" validate:"omitempty,gte=0,lte=255"`
	ColorB *int `json:"color_b" validate:"omitempty,gte=0,lte=255"`

	TextR *int `json:"text_r" validate:"omitempty,gte=0,lte=255"`
	TextG *int `json:"text_g" validate:"omitempty,gte=0,lte=255"`
	TextB *int `json:"text_b" validate:"omitempty,gte=0,lte=255"`

	FontKey     string `json:"font_key" validate:"max=32"`
	TemplateKey string `json:"template_key" validate:"max=32"`
}

// Profile holds the public display name of a user.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Identity is the authenticated requester.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}
