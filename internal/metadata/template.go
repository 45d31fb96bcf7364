package metadata

import (
	"fmt"
	"net/url"
	"strings"
)

// URLTemplate builds the metadata URL for a package. The placeholder
// {package} (or the positional {0}) is replaced by the path-escaped name.
type URLTemplate struct {
	raw string
}

// ParseURLTemplate validates raw: it must contain a placeholder and expand
// to an absolute http or https URL.
func ParseURLTemplate(raw string) (URLTemplate, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "{package}") && !strings.Contains(raw, "{0}") {
		return URLTemplate{}, fmt.Errorf("url template %q has no {package} placeholder", raw)
	}

	t := URLTemplate{raw: raw}
	u, err := url.Parse(t.Format("probe"))
	if err != nil {
		return URLTemplate{}, fmt.Errorf("url template %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return URLTemplate{}, fmt.Errorf("url template %q must use http or https", raw)
	}
	if u.Host == "" {
		return URLTemplate{}, fmt.Errorf("url template %q has no host", raw)
	}
	return t, nil
}

// MustParseURLTemplate is like ParseURLTemplate but panics on error.
func MustParseURLTemplate(raw string) URLTemplate {
	t, err := ParseURLTemplate(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Format returns the URL for packageName.
func (t URLTemplate) Format(packageName string) string {
	escaped := url.PathEscape(packageName)
	return strings.NewReplacer("{package}", escaped, "{0}", escaped).Replace(t.raw)
}

// String returns the unexpanded template.
func (t URLTemplate) String() string {
	return t.raw
}
