package render

// Font is the typography treatment selected by a card's font key.
type Font uint8

const (
	FontModern Font = iota
	FontTechno
	FontMono
	FontSoft
	FontSerif
	FontCondensed
	FontBold
	FontSciFi
	FontCorporate
	FontGeometric
	FontMinimal
	FontElegant

	fontCount
)

type fontInfo struct {
	key    string
	label  string
	family string
}

var fonts = [fontCount]fontInfo{
	FontModern:    {key: "modern", label: "Modern Sans", family: "Space Grotesk"},
	FontTechno:    {key: "techno", label: "Techno", family: "Audiowide"},
	FontMono:      {key: "mono", label: "Monospace", family: "JetBrains Mono"},
	FontSoft:      {key: "soft", label: "Soft Rounded", family: "Quicksand"},
	FontSerif:     {key: "serif", label: "Elegant Serif", family: "Playfair Display"},
	FontCondensed: {key: "condensed", label: "Condensed", family: "Roboto Condensed"},
	FontBold:      {key: "bold", label: "Bold Display", family: "Bebas Neue"},
	FontSciFi:     {key: "scifi", label: "Sci-Fi", family: "Orbitron"},
	FontCorporate: {key: "corporate", label: "Corporate", family: "Poppins"},
	FontGeometric: {key: "geometric", label: "Geometric", family: "Montserrat"},
	FontMinimal:   {key: "minimal", label: "Minimal", family: "Inter"},
	FontElegant:   {key: "elegant", label: "Elegant Sans", family: "Raleway"},
}

var fontByKey = func() map[string]Font {
	m := make(map[string]Font, fontCount)
	for f := Font(0); f < fontCount; f++ {
		m[fonts[f].key] = f
	}
	return m
}()

// ParseFont resolves a stored font key. Empty and unknown keys resolve to
// FontModern.
func ParseFont(key string) Font {
	if f, ok := fontByKey[key]; ok {
		return f
	}
	return FontModern
}

func (f Font) info() fontInfo {
	if f >= fontCount {
		return fonts[FontModern]
	}
	return fonts[f]
}

// String returns the font key.
func (f Font) String() string { return f.info().key }

// Label returns the name shown in the editor.
func (f Font) Label() string { return f.info().label }

// Family returns the typeface family used for the treatment.
func (f Font) Family() string { return f.info().family }

// MarshalText implements encoding.TextMarshaler.
func (f Font) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same
// fallback as ParseFont.
func (f *Font) UnmarshalText(b []byte) error {
	*f = ParseFont(string(b))
	return nil
}
