package resolver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/resolver"
)

func TestApplyRouteMeta_FillGapNeverOverrides(t *testing.T) {
	defaults := node.Node{"headline": "Existing"}

	resolver.ApplyRouteMeta(defaults, map[string]any{"title": "New"}, []string{"headline"})

	assert.Equal(t, "Existing", defaults["headline"])
}

func TestApplyRouteMeta(t *testing.T) {
	published := time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC)
	meta := map[string]any{
		"title":         "Title",
		"description":   "Desc",
		"image":         "/og.png",
		"dateModified":  "2022-02-01",
		"datePublished": published,
	}

	tests := []struct {
		name     string
		defaults node.Node
		keys     []string
		want     node.Node
	}{
		{
			name:     "article keys",
			defaults: node.Node{},
			keys:     []string{"headline", "description", "image", "dateModified", "datePublished"},
			want: node.Node{
				"headline":      "Title",
				"description":   "Desc",
				"image":         "/og.png",
				"dateModified":  "2022-02-01",
				"datePublished": published,
			},
		},
		{
			name:     "name from title",
			defaults: node.Node{},
			keys:     []string{"name"},
			want:     node.Node{"name": "Title"},
		},
		{
			name:     "video upload date from published",
			defaults: node.Node{},
			keys:     []string{"uploadDate"},
			want:     node.Node{"uploadDate": published},
		},
		{
			name:     "unrecognized keys ignored",
			defaults: node.Node{"@type": "Thing"},
			keys:     nil,
			want:     node.Node{"@type": "Thing"},
		},
		{
			name:     "empty values are gaps",
			defaults: node.Node{"description": ""},
			keys:     []string{"description"},
			want:     node.Node{"description": "Desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver.ApplyRouteMeta(tt.defaults, meta, tt.keys)
			assert.Equal(t, tt.want, tt.defaults)
		})
	}
}

func TestApplyRouteMeta_IgnoresWrongTypes(t *testing.T) {
	defaults := node.Node{}
	resolver.ApplyRouteMeta(defaults, map[string]any{
		"title":         42,
		"description":   []string{"x"},
		"datePublished": 1641092645,
	}, []string{"headline", "description", "datePublished", "uploadDate"})

	assert.Empty(t, defaults)
	assert.NotPanics(t, func() { resolver.ApplyRouteMeta(nil, map[string]any{"title": "x"}, []string{"name"}) })
}
