package id

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Sentinel errors for registry operations.
var (
	// ErrNodeTypeNotRegistered indicates that the requested schema type is not in the registry.
	//
	// Example:
	//	props, err := registry.IdentifyingProperties("Recipe")
	//	if errors.Is(err, id.ErrNodeTypeNotRegistered) {
	//	    // fall back to a fixed fragment id
	//	}
	ErrNodeTypeNotRegistered = errors.New("node type not registered")

	// ErrMissingIdentifyingProperties indicates that none of the identifying
	// properties of a type are present on the node.
	ErrMissingIdentifyingProperties = errors.New("missing identifying properties")
)

// TypeRegistry maps Schema.org types to the properties that identify a node
// of that type. Identifying properties are the natural key used to derive a
// stable id for nodes that do not declare one, such as images and people.
//
// A type may list several candidate properties; the first one present on a
// node is used.
type TypeRegistry interface {
	// IdentifyingProperties returns the candidate identifying properties for nodeType.
	// Returns ErrNodeTypeNotRegistered if the type is unknown.
	IdentifyingProperties(nodeType string) ([]string, error)

	// IsRegistered checks if a type exists in the registry.
	IsRegistered(nodeType string) bool

	// Register adds or replaces the identifying properties of a type.
	Register(nodeType string, properties ...string)

	// AllTypes returns a sorted list of all registered type names.
	AllTypes() []string
}

// DefaultTypeRegistry is the default in-memory TypeRegistry.
// It is safe for concurrent use.
type DefaultTypeRegistry struct {
	mu       sync.RWMutex
	registry map[string][]string
}

// NewDefaultTypeRegistry creates a registry pre-populated with the types
// whose ids are derived from their content:
//
//   - ImageObject: [url, contentUrl]
//   - VideoObject: [contentUrl, embedUrl, name]
//   - Person: [name, url]
//   - Organization: [name, url]
//   - HowToStep: [name, text]
//   - Question: [name]
//
// Example:
//
//	registry := id.NewDefaultTypeRegistry()
//	props, err := registry.IdentifyingProperties("ImageObject")
//	// props = ["url", "contentUrl"]
func NewDefaultTypeRegistry() *DefaultTypeRegistry {
	r := &DefaultTypeRegistry{
		registry: make(map[string][]string),
	}

	r.Register("ImageObject", "url", "contentUrl")
	r.Register("VideoObject", "contentUrl", "embedUrl", "name")
	r.Register("Person", "name", "url")
	r.Register("Organization", "name", "url")
	r.Register("HowToStep", "name", "text")
	r.Register("Question", "name")

	return r
}

// Register adds or replaces the identifying properties of a type.
func (r *DefaultTypeRegistry) Register(nodeType string, properties ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	props := make([]string, len(properties))
	copy(props, properties)
	r.registry[nodeType] = props
}

// IdentifyingProperties returns the candidate identifying properties for nodeType.
func (r *DefaultTypeRegistry) IdentifyingProperties(nodeType string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	props, ok := r.registry[nodeType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeTypeNotRegistered, nodeType)
	}

	// Return a copy to prevent external modification
	result := make([]string, len(props))
	copy(result, props)
	return result, nil
}

// IsRegistered checks if a type exists in the registry.
func (r *DefaultTypeRegistry) IsRegistered(nodeType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.registry[nodeType]
	return ok
}

// AllTypes returns a sorted list of all registered type names.
func (r *DefaultTypeRegistry) AllTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.registry))
	for nodeType := range r.registry {
		types = append(types, nodeType)
	}

	sort.Strings(types)
	return types
}

// firstPresent returns the first candidate property with a usable value.
func firstPresent(candidates []string, properties map[string]any) (string, bool) {
	for _, prop := range candidates {
		val, ok := properties[prop]
		if !ok || val == nil {
			continue
		}
		if s, isString := val.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return prop, true
	}
	return "", false
}
