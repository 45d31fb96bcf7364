package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageMetadata_Complete(t *testing.T) {
	revision := 2

	tests := []struct {
		name     string
		meta     *PackageMetadata
		expected bool
	}{
		{name: "nil metadata", meta: nil, expected: false},
		{name: "missing name", meta: &PackageMetadata{Version: "1.0"}, expected: false},
		{name: "missing version", meta: &PackageMetadata{Name: "fmt"}, expected: false},
		{name: "name and version", meta: &PackageMetadata{Name: "fmt", Version: "10.2.1"}, expected: true},
		{name: "with optional fields", meta: &PackageMetadata{Name: "fmt", Version: "10.2.1", Description: "Formatting library", PortVersion: &revision}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.meta.Complete())
		})
	}
}
