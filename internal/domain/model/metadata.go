// Package model provides domain models for the badge service.
package model

// PackageMetadata is what the metadata source reports for one package at
// fetch time. It is never mutated after creation.
type PackageMetadata struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	// PortVersion is the packaging revision, if the source reports one.
	PortVersion *int `json:"port_version,omitempty"`
}

// Complete reports whether the metadata carries everything a badge needs.
func (m *PackageMetadata) Complete() bool {
	return m != nil && m.Name != "" && m.Version != ""
}
