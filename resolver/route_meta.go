package resolver

import (
	"slices"
	"time"

	"github.com/zero-day-ai/schemaorg/node"
)

// ApplyRouteMeta fills gaps in defaults from route metadata. Only fields the
// caller lists in keys are touched, and a field already holding a value is
// never overwritten.
//
// Recognized metadata: "title" (fills headline and name), "description",
// "image", "dateModified" and "datePublished" (which also fills a video's
// uploadDate). Dates may be time.Time or strings and are stored as given.
func ApplyRouteMeta(defaults node.Node, routeMeta map[string]any, keys []string) {
	if defaults == nil {
		return
	}
	has := func(key string) bool {
		return slices.Contains(keys, key)
	}

	if title, ok := routeMeta["title"].(string); ok {
		if has("headline") {
			node.SetIfEmpty(defaults, "headline", title)
		}
		if has("name") {
			node.SetIfEmpty(defaults, "name", title)
		}
	}

	if description, ok := routeMeta["description"].(string); ok && has("description") {
		node.SetIfEmpty(defaults, "description", description)
	}

	if img, ok := routeMeta["image"].(string); ok && has("image") {
		node.SetIfEmpty(defaults, "image", img)
	}

	if v := routeMeta["dateModified"]; isDateValue(v) && has("dateModified") {
		node.SetIfEmpty(defaults, "dateModified", v)
	}

	published := routeMeta["datePublished"]
	if isDateValue(published) {
		if has("datePublished") {
			node.SetIfEmpty(defaults, "datePublished", published)
		}
		if has("uploadDate") {
			node.SetIfEmpty(defaults, "uploadDate", published)
		}
	}
}

func isDateValue(v any) bool {
	switch t := v.(type) {
	case string:
		return true
	case time.Time:
		return true
	case *time.Time:
		return t != nil
	default:
		return false
	}
}
