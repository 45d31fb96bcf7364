package badge

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// DefaultLogo is the vcpkg logo. The placeholders {x}, {y} and {size} are
// replaced with the logo position and edge length.
const DefaultLogo = `<svg xmlns="http://www.w3.org/2000/svg" x="{x}" y="{y}" width="{size}px" height="{size}px" viewBox="0 0 16 16" fill="none">
    <path d="M7.27287 5.05296C3.94764 3.87505 1.57018 5.3753 0.192701 7.10237C0.140493 7.16604 0.0400939 7.12624 0.0521418 7.04268C0.132461 6.58504 0.321213 5.68967 0.690683 4.86991C2.19266 1.53913 6.18855 -0.0804928 8.56601 0.0030751C10.9435 0.086643 13.7908 1.6426 12.8029 3.83924C11.9314 5.7812 10.7507 6.28658 7.27287 5.05296Z" fill="url(#paint0_linear)" />
    <path d="M4.77944 4.99812C4.77944 4.95434 4.74731 4.91455 4.69912 4.91455C3.59473 4.94241 1.24539 5.67462 0.0285453 7.88718C0.0245293 7.89514 0.0205128 7.9031 0.0205128 7.91504C-0.356989 10.5614 4.59872 12.2884 4.77944 4.99812Z" fill="url(#paint1_linear)" />
    <path d="M8.74113 10.947C12.0664 12.1249 14.4438 10.6247 15.8213 8.89762C15.8735 8.83395 15.9739 8.87374 15.9618 8.95731C15.8815 9.41495 15.6928 10.3103 15.3233 11.1301C13.8253 14.4609 9.82946 16.0805 7.452 15.9969C5.07454 15.9133 2.22722 14.3574 3.21515 12.1607C4.0826 10.2228 5.26731 9.71738 8.74113 10.947Z" fill="url(#paint2_linear)" />
    <path d="M11.2125 11.07C11.2125 11.1138 11.2447 11.1536 11.2928 11.1536C12.3972 11.1258 14.7546 10.3577 15.9715 8.14119C15.9755 8.13323 15.9795 8.12527 15.9795 8.11333C16.357 5.47099 11.3932 3.77974 11.2125 11.07Z" fill="url(#paint3_linear)" />
    <defs>
        <linearGradient id="paint0_linear" x1="0.324315" y1="7.86759" x2="13.877" y2="-0.453912" gradientUnits="userSpaceOnUse">
            <stop stop-color="#FC950B" />
            <stop offset="0.592076" stop-color="#F9C438" />
        </linearGradient>
        <linearGradient id="paint1_linear" x1="5.64274" y1="4.08734" x2="0.327581" y2="10.3649" gradientUnits="userSpaceOnUse">
            <stop stop-color="#FC950B" />
            <stop offset="1" stop-color="#F9C438" />
        </linearGradient>
        <linearGradient id="paint2_linear" x1="17.2883" y1="9.94356" x2="2.09626" y2="14.7361" gradientUnits="userSpaceOnUse">
            <stop stop-color="#FC950B" />
            <stop offset="0.612893" stop-color="#F9C438" />
        </linearGradient>
        <linearGradient id="paint3_linear" x1="14.1247" y1="13.4565" x2="12.6976" y2="2.10704" gradientUnits="userSpaceOnUse">
            <stop stop-color="#FC950B" />
            <stop offset="1" stop-color="#F9C438" />
        </linearGradient>
    </defs>
</svg>`

// LogoTemplate is an SVG fragment with position placeholders.
// Named placeholders {x}, {y} and {size} are preferred; the positional
// forms {0}, {1} and {2} are accepted for older configuration files.
// The zero value renders no logo.
type LogoTemplate struct {
	raw string
}

// ParseLogoTemplate validates raw by formatting it with sample values and
// parsing the result as XML. An empty string yields the zero template.
func ParseLogoTemplate(raw string) (LogoTemplate, error) {
	t := LogoTemplate{raw: strings.TrimSpace(raw)}
	if t.IsZero() {
		return t, nil
	}
	if _, err := t.Element(LogoX, LogoY, LogoSize); err != nil {
		return LogoTemplate{}, err
	}
	return t, nil
}

// MustParseLogoTemplate is like ParseLogoTemplate but panics on error.
func MustParseLogoTemplate(raw string) LogoTemplate {
	t, err := ParseLogoTemplate(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// IsZero reports whether the template is empty.
func (t LogoTemplate) IsZero() bool {
	return t.raw == ""
}

// String returns the unformatted template.
func (t LogoTemplate) String() string {
	return t.raw
}

// Format substitutes the position into the template. Only numbers are
// substituted, so the output is as well-formed as the template itself.
func (t LogoTemplate) Format(x, y, size float64) string {
	xs, ys, ss := formatNumber(x), formatNumber(y), formatNumber(size)
	return strings.NewReplacer(
		"{x}", xs, "{y}", ys, "{size}", ss,
		"{0}", xs, "{1}", ys, "{2}", ss,
	).Replace(t.raw)
}

// Element formats the template and parses it into a detached element.
func (t LogoTemplate) Element(x, y, size float64) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(t.Format(x, y, size)); err != nil {
		return nil, fmt.Errorf("%w: logo is not well-formed XML: %v", ErrInvalidArgument, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: logo has no root element", ErrInvalidArgument)
	}
	return root.Copy(), nil
}
