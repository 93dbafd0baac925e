package node

import (
	"fmt"
	"strings"
	"time"

	"github.com/zero-day-ai/schemaorg"
)

// isoLayout matches the millisecond-precision UTC form used in JSON-LD dates.
const isoLayout = "2006-01-02T15:04:05.000Z"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
}

// DateToISO normalizes a date value to an ISO-8601 UTC string with
// millisecond precision. It accepts time.Time, *time.Time and strings in
// the common date layouts. Strings without a zone are read as UTC.
func DateToISO(v any) (string, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(isoLayout), nil
	case *time.Time:
		if t == nil {
			return "", fmt.Errorf("nil time: %w", schemaorg.ErrUnsupportedValue)
		}
		return t.UTC().Format(isoLayout), nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC().Format(isoLayout), nil
			}
		}
		return "", fmt.Errorf("unparseable date %q: %w", t, schemaorg.ErrUnsupportedValue)
	default:
		return "", fmt.Errorf("date of type %T: %w", v, schemaorg.ErrUnsupportedValue)
	}
}

// NormalizeDate rewrites n[key] to its ISO form when it holds a date value.
// Absent fields are left alone.
func NormalizeDate(n Node, key string) error {
	v, ok := n[key]
	if !ok || v == nil || v == "" {
		return nil
	}
	iso, err := DateToISO(v)
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	n[key] = iso
	return nil
}
