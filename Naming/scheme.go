package Naming

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Metadata carries the user-supplied naming fields merged with derived
// values (extension, resolved sequence index).
type Metadata map[string]string

// Reserved metadata keys that never become filename segments.
var reservedKeys = map[string]bool{
	"ext":                  true,
	"studentSubSelections": true,
	"generatedName":        true,
	"index":                true,
}

// Scheme builds a canonical filename from metadata and the 1-based
// sequence index of the file within the task's cumulative upload count.
type Scheme interface {
	Generate(meta Metadata, index int) string
}

// Field is one ordered segment of a category-owned dynamic scheme.
type Field struct {
	Name        string
	Placeholder string
}

var whitespace = regexp.MustCompile(`\s+`)

func stripSpaces(s string) string {
	return whitespace.ReplaceAllString(s, "")
}

func get(meta Metadata, key, fallback string) string {
	if v, ok := meta[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Scheme identifiers. Categories store one of these; selection never
// compares category names.
const (
	SchemeIDMobility = "mobility"
	SchemeIDRetail   = "retail"
	SchemeIDAgri     = "agri"
)

// SchemeFor selects the generator bound to a scheme identifier. The
// mobility, retail and agri identifiers carry fixed positional grammars;
// anything else uses the configured field list, or the prefix fallback
// when none is configured.
func SchemeFor(schemeID, prefix string, fields []Field) Scheme {
	switch schemeID {
	case SchemeIDMobility:
		return MobilityScheme{}
	case SchemeIDRetail:
		return RetailScheme{}
	case SchemeIDAgri:
		return AgriScheme{}
	}
	if len(fields) > 0 {
		return FieldListScheme{Fields: fields}
	}
	return FallbackScheme{Prefix: prefix}
}

// FieldListScheme joins configured field values in display order. Auto
// fields (frame, sequence) are filled elsewhere and skipped here.
type FieldListScheme struct {
	Fields []Field
}

func (s FieldListScheme) Generate(meta Metadata, index int) string {
	ext := get(meta, "ext", "jpg")
	parts := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		if field.Name == "frame" || field.Name == "sequence" {
			continue
		}
		value := meta[field.Name]
		if value == "" {
			value = field.Placeholder
		}
		if value == "" {
			value = "Unknown"
		}
		parts = append(parts, stripSpaces(value))
	}
	return strings.Join(parts, "_") + "." + ext
}

// FallbackScheme is used when a category has no configured fields: the
// category prefix, every non-reserved metadata value in key order, and a
// zero-padded sequence index.
type FallbackScheme struct {
	Prefix string
}

func (s FallbackScheme) Generate(meta Metadata, index int) string {
	ext := get(meta, "ext", "jpg")

	keys := make([]string, 0, len(meta))
	for key := range meta {
		if !reservedKeys[key] {
			keys = append(keys, key)
		}
	}
	// Map order is random; sort so the same metadata always yields the
	// same name.
	sort.Strings(keys)

	parts := []string{s.Prefix}
	for _, key := range keys {
		parts = append(parts, stripSpaces(meta[key]))
	}
	parts = append(parts, fmt.Sprintf("%03d", index))
	return strings.Join(parts, "_") + "." + ext
}
