package badge

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

const (
	// MeasureDPI is the resolution text is rasterised at when measuring.
	MeasureDPI = 92

	// fallbackScale approximates kerning and rendering overhead the static
	// table does not capture.
	fallbackScale = 1.2
	// fallbackDefaultWidth is charged for characters missing from the table.
	fallbackDefaultWidth = 7
)

// fallbackWidths holds advance widths in pixels at a 12pt reference size.
// Source: https://github.com/dustinmoris/CI-BuildStats (TextSize.fs).
var fallbackWidths = map[rune]float64{
	'a': 7, 'b': 7, 'c': 6, 'd': 7, 'e': 7, 'f': 3, 'g': 7, 'h': 7, 'i': 3,
	'j': 3, 'k': 6, 'l': 3, 'm': 10, 'n': 7, 'o': 7, 'p': 7, 'q': 7, 'r': 4,
	's': 6, 't': 3, 'u': 7, 'v': 6, 'w': 9, 'x': 6, 'y': 6, 'z': 6,

	'A': 8, 'B': 8, 'C': 9, 'D': 9, 'E': 8, 'F': 8, 'G': 9, 'H': 9, 'I': 3,
	'J': 6, 'K': 8, 'L': 7, 'M': 10, 'N': 9, 'O': 10, 'P': 8, 'Q': 10, 'R': 9,
	'S': 8, 'T': 8, 'U': 9, 'V': 8, 'W': 12, 'X': 8, 'Y': 8, 'Z': 8,

	'0': 7, '1': 7, '2': 7, '3': 7, '4': 7, '5': 7, '6': 7, '7': 7, '8': 7, '9': 7,

	'-': 4, '_': 7, '~': 7, '.': 3, '!': 4, '*': 5, '\'': 3, '(': 4, ')': 4,
	'[': 4, ']': 4, ';': 3, ':': 3, '@': 12, '=': 7, '+': 7, '$': 7, ',': 3,
	'#': 7, '?': 7, '/': 4, '&': 8, ' ': 7,
}

var errNoFont = errors.New("no measurement font configured")

// MeasureSource identifies which branch produced a measurement.
type MeasureSource int

const (
	// SourceFont means the width came from real font metrics.
	SourceFont MeasureSource = iota
	// SourceFallback means the width came from the static table.
	SourceFallback
)

// String returns the metric label for the source.
func (s MeasureSource) String() string {
	switch s {
	case SourceFont:
		return "font"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// FontSpec names the font file and size used for measuring.
type FontSpec struct {
	Path string
	Size float64
}

// Measurement is the outcome of measuring one string.
// Err carries the font failure when Source is SourceFallback.
type Measurement struct {
	Width  float64
	Source MeasureSource
	Err    error
}

// TextWidthEstimator measures rendered text widths.
// Parsed fonts are loaded once per path and shared read-only; every
// measurement creates its own face, so the estimator is safe for concurrent use.
type TextWidthEstimator struct {
	readFile func(string) ([]byte, error)
	fonts    sync.Map // path -> *loadedFont
}

type loadedFont struct {
	once sync.Once
	font *opentype.Font
	err  error
}

// NewTextWidthEstimator returns an estimator that reads fonts from disk.
func NewTextWidthEstimator() *TextWidthEstimator {
	return &TextWidthEstimator{readFile: os.ReadFile}
}

// Measure returns the width of text in pixels. Font problems of any kind
// select the fallback branch; they are reported in the result, never returned.
func (e *TextWidthEstimator) Measure(text string, spec FontSpec) Measurement {
	width, err := e.measureFont(text, spec)
	if err != nil {
		return Measurement{Width: MeasureFallback(text), Source: SourceFallback, Err: err}
	}
	return Measurement{Width: width, Source: SourceFont}
}

// MeasureFallback sums the static advance table over text and scales the
// result. It needs no external resources.
func MeasureFallback(text string) float64 {
	var sum float64
	for _, r := range text {
		if w, ok := fallbackWidths[r]; ok {
			sum += w
		} else {
			sum += fallbackDefaultWidth
		}
	}
	return sum * fallbackScale
}

func (e *TextWidthEstimator) measureFont(text string, spec FontSpec) (width float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("measuring %q panicked: %v", text, r)
		}
	}()

	if spec.Path == "" {
		return 0, errNoFont
	}
	if spec.Size <= 0 {
		return 0, fmt.Errorf("invalid font size %v", spec.Size)
	}

	f, err := e.load(spec.Path)
	if err != nil {
		return 0, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     MeasureDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return 0, fmt.Errorf("creating face: %w", err)
	}
	defer face.Close()

	advance := font.MeasureString(face, text)
	return float64(advance) / 64, nil
}

func (e *TextWidthEstimator) load(path string) (*opentype.Font, error) {
	v, _ := e.fonts.LoadOrStore(path, &loadedFont{})
	lf := v.(*loadedFont)
	lf.once.Do(func() {
		data, err := e.readFile(path)
		if err != nil {
			lf.err = fmt.Errorf("reading font %s: %w", path, err)
			return
		}
		lf.font, lf.err = opentype.Parse(data)
		if lf.err != nil {
			lf.err = fmt.Errorf("parsing font %s: %w", path, lf.err)
		}
	})
	return lf.font, lf.err
}
