package render

// Decoration is the visual overlay selected by a card's template key.
// The set is closed: every unknown key resolves to DecorationClassic.
type Decoration uint8

const (
	DecorationClassic Decoration = iota
	DecorationPill
	DecorationNeon
	DecorationStripe
	DecorationShapeTopRight
	DecorationShapeRight
	DecorationShapeBottomRight
	DecorationRadiant
	DecorationHalo
	DecorationOrbit
	DecorationGradient
	DecorationMesh

	// Legacy variants. Stored cards may still reference them but the
	// editor no longer offers them.
	DecorationLetter
	DecorationAura
	DecorationQuote
	DecorationDivider
	DecorationSticky

	decorationCount
)

type decorationInfo struct {
	key    string
	label  string
	legacy bool
}

var decorations = [decorationCount]decorationInfo{
	DecorationClassic:          {key: "classic", label: "Classic Glow"},
	DecorationPill:             {key: "pill", label: "Apex"},
	DecorationNeon:             {key: "neon", label: "Neon Frame"},
	DecorationStripe:           {key: "stripe", label: "Diagonal Stripes"},
	DecorationShapeTopRight:    {key: "shape-tr", label: "Sky Fold"},
	DecorationShapeRight:       {key: "shape-right", label: "Edge Rail"},
	DecorationShapeBottomRight: {key: "shape-br", label: "Anchor Glow"},
	DecorationRadiant:          {key: "radiant", label: "Radiant Flow"},
	DecorationHalo:             {key: "halo", label: "Halo Top"},
	DecorationOrbit:            {key: "orbit", label: "Orbit Rings"},
	DecorationGradient:         {key: "gradient", label: "Gradient Flow"},
	DecorationMesh:             {key: "mesh", label: "Mesh Grid"},
	DecorationLetter:           {key: "letter", label: "Letter", legacy: true},
	DecorationAura:             {key: "aura", label: "Aura", legacy: true},
	DecorationQuote:            {key: "quote", label: "Quote", legacy: true},
	DecorationDivider:          {key: "divider", label: "Divider", legacy: true},
	DecorationSticky:           {key: "sticky", label: "Sticky Note", legacy: true},
}

var decorationByKey = func() map[string]Decoration {
	m := make(map[string]Decoration, decorationCount)
	for d := Decoration(0); d < decorationCount; d++ {
		m[decorations[d].key] = d
	}
	return m
}()

// ParseDecoration resolves a stored template key. Empty and unknown keys
// resolve to DecorationClassic.
func ParseDecoration(key string) Decoration {
	if d, ok := decorationByKey[key]; ok {
		return d
	}
	return DecorationClassic
}

func (d Decoration) info() decorationInfo {
	if d >= decorationCount {
		return decorations[DecorationClassic]
	}
	return decorations[d]
}

// String returns the template key.
func (d Decoration) String() string { return d.info().key }

// Label returns the name shown in the editor.
func (d Decoration) Label() string { return d.info().label }

// Legacy reports whether the editor no longer offers this decoration.
func (d Decoration) Legacy() bool { return d.info().legacy }

// MarshalText implements encoding.TextMarshaler.
func (d Decoration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same
// fallback as ParseDecoration.
func (d *Decoration) UnmarshalText(b []byte) error {
	*d = ParseDecoration(string(b))
	return nil
}
