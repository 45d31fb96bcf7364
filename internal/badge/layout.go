package badge

// Layout constants, in pixels.
const (
	Spacing      = 3.0
	LogoWidth    = 14.0
	CornerRadius = 2.5
	// Width is the declared canvas width. Long labels may overflow it.
	Width = 163.0
	// TextBaseline is the y coordinate of both text runs.
	TextBaseline = 14.0

	LogoX    = 3.0
	LogoY    = 2.0
	LogoSize = 14.0

	defaultHeight = 20.0
)

// Geometry holds the horizontal offsets of one badge, left to right from x=0.
type Geometry struct {
	PrimaryBoxStart float64
	PrimaryBoxEnd   float64
	SecondaryBoxEnd float64
	LabelTextX      float64
	VersionTextX    float64
	Width           float64
	Height          float64
}

// ComputeGeometry lays out a badge whose label and version text measure
// labelWidth and versionWidth pixels.
func ComputeGeometry(labelWidth, versionWidth float64, appearance *Appearance) Geometry {
	height := defaultHeight
	if appearance != nil && appearance.Height > 0 {
		height = appearance.Height
	}

	g := Geometry{
		PrimaryBoxStart: 0,
		LabelTextX:      Spacing + LogoWidth + Spacing,
		Width:           Width,
		Height:          height,
	}
	g.PrimaryBoxEnd = g.LabelTextX + labelWidth
	g.VersionTextX = g.PrimaryBoxEnd + Spacing
	g.SecondaryBoxEnd = g.VersionTextX + versionWidth + Spacing
	return g
}
