// Package id derives stable node ids from node content.
package id

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/zero-day-ai/schemaorg/urlutil"
)

// Generator creates deterministic ids for graph nodes.
type Generator interface {
	// Generate creates a deterministic id for a node of nodeType under host.
	// The id format is: {host}#/schema/{kebab-type}/{hash}
	//
	// Returns an error if:
	//   - The node type is not registered
	//   - None of the identifying properties are present
	//
	// Example:
	//   id, err := gen.Generate("https://example.com", "ImageObject", map[string]any{"url": "/logo.png"})
	//   // id = "https://example.com#/schema/image-object/Xq3iV0a1b2c3"
	Generate(host, nodeType string, properties map[string]any) (string, error)
}

// DeterministicGenerator implements Generator with name-based (v5) UUIDs.
//
// ID Generation Algorithm:
//  1. Look up the candidate identifying properties for the type
//  2. Pick the first candidate present on the node
//  3. Build canonical string: nodeType:prop=normalized(value)
//  4. Hash it as a v5 UUID in a namespace derived from the host
//  5. Base64url encode the first 9 bytes (no padding)
//  6. Return {host}#/schema/{kebab-type}/{encoded}
//
// The same host, type and identifying value always produce the same id, so
// two resolvers describing the same person collapse into one graph node.
type DeterministicGenerator struct {
	registry TypeRegistry
}

// NewGenerator creates a new DeterministicGenerator with the given registry.
//
// Example:
//
//	gen := id.NewGenerator(id.NewDefaultTypeRegistry())
func NewGenerator(registry TypeRegistry) *DeterministicGenerator {
	return &DeterministicGenerator{
		registry: registry,
	}
}

// Generate creates a deterministic id from host, node type and properties.
func (g *DeterministicGenerator) Generate(host, nodeType string, properties map[string]any) (string, error) {
	candidates, err := g.registry.IdentifyingProperties(nodeType)
	if err != nil {
		return "", fmt.Errorf("failed to get identifying properties for node type %q: %w", nodeType, err)
	}

	prop, ok := firstPresent(candidates, properties)
	if !ok {
		return "", fmt.Errorf("%w for node type %q (want one of %v)", ErrMissingIdentifyingProperties, nodeType, candidates)
	}

	normalized, err := normalizeValue(prop, properties[prop])
	if err != nil {
		return "", fmt.Errorf("failed to normalize property %q: %w", prop, err)
	}

	canonical := fmt.Sprintf("%s:%s=%s", nodeType, prop, normalized)
	namespace := uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.TrimSuffix(host, "/")))
	hash := uuid.NewSHA1(namespace, []byte(canonical))
	encoded := base64.RawURLEncoding.EncodeToString(hash[:9])

	return urlutil.PrefixID(host, "#/schema/"+kebab(nodeType)+"/"+encoded), nil
}

// normalizeValue converts a property value to its canonical string representation.
// Normalization rules:
//   - string: trimmed, and lowercased unless prop is a url
//   - numbers and bools: fmt %v
//   - complex types (maps, slices): JSON marshal
func normalizeValue(prop string, val any) (string, error) {
	switch v := val.(type) {
	case string:
		if isURLProperty(prop) {
			return strings.TrimSpace(v), nil
		}
		return strings.ToLower(strings.TrimSpace(v)), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return fmt.Sprintf("%v", v), nil
	case float32:
		return fmt.Sprintf("%.6f", v), nil
	case float64:
		return fmt.Sprintf("%.6f", v), nil
	default:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal complex value to JSON: %w", err)
		}
		return string(jsonBytes), nil
	}
}

// isURLProperty reports whether prop holds a locator ("url", "contentUrl",
// "embedUrl"). Url paths are case-sensitive.
func isURLProperty(prop string) bool {
	return strings.HasSuffix(strings.ToLower(prop), "url")
}

// kebab converts a Schema.org type name to kebab case ("ImageObject" -> "image-object").
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
