package metadata

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/guttosm/badge-service/internal/domain/model"
)

// manifestSchema accepts the subset of a vcpkg port manifest the badge needs.
// vcpkg spells the version field in one of four ways depending on the scheme.
const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "version": {"type": "string", "minLength": 1},
    "version-semver": {"type": "string", "minLength": 1},
    "version-date": {"type": "string", "minLength": 1},
    "version-string": {"type": "string", "minLength": 1},
    "description": {
      "oneOf": [
        {"type": "string"},
        {"type": "array", "items": {"type": "string"}}
      ]
    },
    "port-version": {"type": "integer", "minimum": 0},
    "portVersion": {"type": "integer", "minimum": 0}
  },
  "anyOf": [
    {"required": ["version"]},
    {"required": ["version-semver"]},
    {"required": ["version-date"]},
    {"required": ["version-string"]}
  ]
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(manifestSchema))
	if err != nil {
		panic(fmt.Sprintf("compiling manifest schema: %v", err))
	}
	return schema
}

type manifest struct {
	Name             string          `json:"name"`
	Version          string          `json:"version"`
	VersionSemver    string          `json:"version-semver"`
	VersionDate      string          `json:"version-date"`
	VersionString    string          `json:"version-string"`
	Description      json.RawMessage `json:"description"`
	PortVersion      *int            `json:"port-version"`
	PortVersionCamel *int            `json:"portVersion"`
}

// Decode validates body against the manifest schema and converts it to metadata.
func Decode(body []byte) (*model.PackageMetadata, error) {
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidMetadata, strings.Join(problems, "; "))
	}

	var m manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}

	meta := &model.PackageMetadata{
		Name:        m.Name,
		Version:     firstNonEmpty(m.Version, m.VersionSemver, m.VersionDate, m.VersionString),
		Description: description(m.Description),
		PortVersion: m.PortVersion,
	}
	if meta.PortVersion == nil {
		meta.PortVersion = m.PortVersionCamel
	}
	return meta, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// description flattens the string-or-array description into one string.
func description(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, " ")
	}
	return ""
}
