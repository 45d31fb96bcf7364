package badge

import (
	"fmt"
	"math"
	"strconv"

	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"
)

const svgStyle = "shape-rendering: geometricPrecision; image-rendering: optimizeQuality; fill-rule: evenodd; clip-rule: evenodd"

// Result is a rendered badge together with the data it was built from.
type Result struct {
	SVG      string
	Geometry Geometry
	Label    Measurement
	Version  Measurement
}

// UsedFallback reports whether either text run was measured with the static table.
func (r Result) UsedFallback() bool {
	return r.Label.Source == SourceFallback || r.Version.Source == SourceFallback
}

// Renderer composes badge SVG documents. It holds no per-render state and
// is safe for concurrent use.
type Renderer struct {
	estimator *TextWidthEstimator
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithEstimator sets the text width estimator.
func WithEstimator(e *TextWidthEstimator) RendererOption {
	return func(r *Renderer) {
		r.estimator = e
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.estimator == nil {
		r.estimator = NewTextWidthEstimator()
	}
	return r
}

// Render returns the SVG document for a badge showing label and "v"+version.
// Identical inputs always produce byte-identical output.
func (r *Renderer) Render(label, version string, appearance *Appearance) (string, error) {
	res, err := r.RenderBadge(label, version, appearance)
	if err != nil {
		return "", err
	}
	return res.SVG, nil
}

// RenderBadge is like Render but also returns the measurements and geometry.
func (r *Renderer) RenderBadge(label, version string, appearance *Appearance) (Result, error) {
	if label == "" {
		return Result{}, fmt.Errorf("%w: label is required", ErrInvalidArgument)
	}
	if version == "" {
		return Result{}, fmt.Errorf("%w: version is required", ErrInvalidArgument)
	}
	if appearance == nil {
		return Result{}, fmt.Errorf("%w: appearance is required", ErrInvalidArgument)
	}

	spec := appearance.fontSpec()
	labelM := r.estimator.Measure(label, spec)
	versionM := r.estimator.Measure(version, spec)
	logFallback(spec, labelM, versionM)

	geometry := ComputeGeometry(labelM.Width, versionM.Width, appearance)
	svg, err := compose(label, version, geometry, appearance)
	if err != nil {
		return Result{}, err
	}

	return Result{SVG: svg, Geometry: geometry, Label: labelM, Version: versionM}, nil
}

// logFallback logs once per render when either text run fell back.
func logFallback(spec FontSpec, label, version Measurement) {
	err := label.Err
	if err == nil {
		err = version.Err
	}
	if err == nil {
		return
	}
	log.Debug().Err(err).
		Str("font", spec.Path).
		Bool("label_fallback", label.Source == SourceFallback).
		Bool("version_fallback", version.Source == SourceFallback).
		Msg("Falling back to static text widths")
}

func compose(label, version string, g Geometry, a *Appearance) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("style", svgStyle)
	svg.CreateAttr("width", formatNumber(g.Width))
	svg.CreateAttr("height", formatNumber(g.Height))
	svg.CreateAttr("fill", "none")

	group := svg.CreateElement("g")
	group.CreateAttr("font-family", a.FontFamily)
	group.CreateAttr("font-size", formatNumber(a.FontSize))
	group.CreateAttr("fill", "#000000")

	// Label box, squared off on the right where it meets the version box.
	addRect(group, g.PrimaryBoxStart, g.PrimaryBoxEnd-g.PrimaryBoxStart, g.Height, true, a.PrimaryBackground)
	addRect(group, g.PrimaryBoxEnd-CornerRadius, CornerRadius, g.Height, false, a.PrimaryBackground)
	// Version box, squared off on the left.
	addRect(group, g.PrimaryBoxEnd, g.SecondaryBoxEnd-g.PrimaryBoxEnd, g.Height, true, a.SecondaryBackground)
	addRect(group, g.PrimaryBoxEnd, CornerRadius, g.Height, false, a.SecondaryBackground)

	addText(group, g.LabelTextX, label, a.PrimaryForeground)
	addText(group, g.VersionTextX, "v"+version, a.SecondaryForeground)

	logo := svg.CreateElement("g")
	if !a.Logo.IsZero() {
		el, err := a.Logo.Element(LogoX, LogoY, LogoSize)
		if err != nil {
			return "", err
		}
		logo.AddChild(el)
	}

	doc.Indent(4)
	return doc.WriteToString()
}

func addRect(parent *etree.Element, x, width, height float64, rounded bool, fill string) {
	rect := parent.CreateElement("rect")
	rect.CreateAttr("x", formatNumber(x))
	rect.CreateAttr("y", "0")
	rect.CreateAttr("height", formatNumber(height))
	rect.CreateAttr("width", formatNumber(width))
	if rounded {
		r := formatNumber(CornerRadius)
		rect.CreateAttr("rx", r)
		rect.CreateAttr("ry", r)
	}
	rect.CreateAttr("stroke-width", "0")
	rect.CreateAttr("fill", fill)
}

func addText(parent *etree.Element, x float64, content, fill string) {
	text := parent.CreateElement("text")
	text.CreateAttr("x", formatNumber(x))
	text.CreateAttr("y", formatNumber(TextBaseline))
	text.CreateAttr("fill", fill)
	text.SetText(content)
}

// formatNumber writes v with at most three decimals and no locale influence.
func formatNumber(v float64) string {
	rounded := math.Round(v*1000) / 1000
	if rounded == 0 {
		rounded = 0 // normalise -0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
