// Package badge renders two-segment SVG status badges for packages.
//
// A badge is a label box (logo plus package name) followed by a version box.
// Text is measured with a real font when one is available and with a static
// per-character table otherwise, so rendering never fails because of fonts.
package badge

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidArgument is returned when render inputs are missing or malformed.
var ErrInvalidArgument = errors.New("invalid argument")

var colourPattern = regexp.MustCompile(`^(#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|[a-zA-Z]+)$`)

// Appearance holds the process-wide settings controlling how badges look.
// It is immutable after startup and shared read-only by all renders.
type Appearance struct {
	// FontFamily is written verbatim into the SVG font-family attribute.
	FontFamily string
	// FontSize is the text size in points.
	FontSize float64
	// Height is the badge height in pixels.
	Height float64
	// Logo is drawn at the left edge of the label box.
	Logo LogoTemplate
	// MeasureFont is the path of the TrueType/OpenType file used for measuring text.
	MeasureFont string

	PrimaryBackground   string
	PrimaryForeground   string
	SecondaryBackground string
	SecondaryForeground string
}

// DefaultAppearance returns the stock vcpkg look.
func DefaultAppearance() *Appearance {
	return &Appearance{
		FontFamily:          "Arial, Helvetica, sans-serif",
		FontSize:            12,
		Height:              20,
		Logo:                MustParseLogoTemplate(DefaultLogo),
		MeasureFont:         "Fonts/arial.ttf",
		PrimaryBackground:   "#444444",
		PrimaryForeground:   "#FFFFFF",
		SecondaryBackground: "#F9C438",
		SecondaryForeground: "#000000",
	}
}

// Validate checks that every field holds a usable value.
func (a *Appearance) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: appearance is required", ErrInvalidArgument)
	}
	if a.FontSize <= 0 {
		return fmt.Errorf("%w: font size must be positive, got %v", ErrInvalidArgument, a.FontSize)
	}
	if a.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %v", ErrInvalidArgument, a.Height)
	}

	colours := map[string]string{
		"primary background":   a.PrimaryBackground,
		"primary foreground":   a.PrimaryForeground,
		"secondary background": a.SecondaryBackground,
		"secondary foreground": a.SecondaryForeground,
	}
	for name, value := range colours {
		if !colourPattern.MatchString(value) {
			return fmt.Errorf("%w: %s colour %q is not a hex code or colour name", ErrInvalidArgument, name, value)
		}
	}

	return nil
}

// fontSpec returns the font used for measuring text.
func (a *Appearance) fontSpec() FontSpec {
	return FontSpec{Path: a.MeasureFont, Size: a.FontSize}
}
