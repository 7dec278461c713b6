// Package render maps stored card attributes to a layout descriptor.
//
// Render is pure: it performs no I/O and the same card always yields the
// same Layout. The only time-derived field, CreatedLabel, depends on the
// card's creation timestamp and never on the current time.
package render

import (
	"fmt"
	"strings"

	"github.com/atinyakov/GophCards/internal/models"
)

const (
	// DateLayout formats creation dates as "{abbreviated month} {day}, {year}".
	DateLayout = "Jan 2, 2006"

	// UnsavedLabel replaces the creation date of a draft.
	UnsavedLabel = "Not saved yet"

	defaultHeading = "Card Title"
	defaultBody    = "This is your card content. Add a short message or description here."
	defaultCreator = "Unknown user"
)

// RGB is an opaque color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// White is the text color used when a card has no complete text color.
var White = RGB{R: 255, G: 255, B: 255}

// CSS returns the color as an rgb() expression.
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Layout describes how a card is drawn.
type Layout struct {
	Background   RGB        `json:"background"`
	Text         RGB        `json:"text"`
	Font         Font       `json:"font"`
	FontFamily   string     `json:"font_family"`
	Decoration   Decoration `json:"decoration"`
	Heading      string     `json:"heading"`
	Body         string     `json:"body"`
	Creator      string     `json:"creator"`
	CreatedLabel string     `json:"created_label"`
	Deleted      bool       `json:"deleted"`
}

// Render builds the layout of a card.
func Render(card models.Card) Layout {
	font := ParseFont(card.FontKey)
	l := Layout{
		Background: RGB{
			R: channel(card.ColorR),
			G: channel(card.ColorG),
			B: channel(card.ColorB),
		},
		Text:         textColor(card),
		Font:         font,
		FontFamily:   font.Family(),
		Decoration:   ParseDecoration(card.TemplateKey),
		Heading:      orDefault(card.Title, defaultHeading),
		Body:         orDefault(card.Tagline, defaultBody),
		Creator:      orDefault(card.CreatorName, defaultCreator),
		CreatedLabel: UnsavedLabel,
		Deleted:      card.IsDeleted(),
	}
	if !card.CreatedAt.IsZero() {
		l.CreatedLabel = card.CreatedAt.Format(DateLayout)
	}
	return l
}

func textColor(card models.Card) RGB {
	if card.TextR == nil || card.TextG == nil || card.TextB == nil {
		return White
	}
	return RGB{R: channel(*card.TextR), G: channel(*card.TextG), B: channel(*card.TextB)}
}

func channel(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}

func orDefault(s, def string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return def
}

// Option is a selectable editor entry.
type Option struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Family string `json:"family,omitempty"`
}

// Options lists what the editor offers.
type Options struct {
	Fonts     []Option `json:"fonts"`
	Templates []Option `json:"templates"`
}

// Catalog returns the fonts and non-legacy templates in editor order.
func Catalog() Options {
	var o Options
	for f := Font(0); f < fontCount; f++ {
		o.Fonts = append(o.Fonts, Option{Key: f.String(), Label: f.Label(), Family: f.Family()})
	}
	for d := Decoration(0); d < decorationCount; d++ {
		if d.Legacy() {
			continue
		}
		o.Templates = append(o.Templates, Option{Key: d.String(), Label: d.Label()})
	}
	return o
}
