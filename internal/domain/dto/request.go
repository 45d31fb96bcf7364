// Package dto defines Data Transfer Objects for HTTP request and response handling.
package dto

import "strings"

// BadgeRequest holds the path parameters of the badge endpoint.
type BadgeRequest struct {
	// Package is the package name exactly as requested.
	Package string `uri:"package" example:"fmt"`
} // @name BadgeRequest

// Blank reports whether the requested name is empty or whitespace.
func (r BadgeRequest) Blank() bool {
	return strings.TrimSpace(r.Package) == ""
}
