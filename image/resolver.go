// Package image expands image values (urls, partial ImageObject nodes or
// lists of them) into fully formed ImageObject nodes.
package image

import (
	"strconv"
	"sync"

	"github.com/zero-day-ai/schemaorg/id"
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/urlutil"
)

// TypeImageObject is the Schema.org type of expanded images.
const TypeImageObject = "ImageObject"

// PrimaryImageID is the fragment id given to the primary image of a node.
const PrimaryImageID = "#primaryimage"

// Options controls how images are expanded.
type Options struct {
	// ResolvePrimaryImage gives the first image the primary image id.
	ResolvePrimaryImage bool

	// AsRootNodes keeps the expanded images as root graph nodes and returns
	// id references in their place.
	AsRootNodes bool
}

// Resolver expands image values. Implementations must not fail: values
// they cannot interpret are returned unchanged.
type Resolver interface {
	ResolveImages(input any, opts Options) node.Arrayable[any]
}

// Collector is implemented by resolvers that keep root image nodes for the
// graph assembler.
type Collector interface {
	RootNodes() []node.Node
}

// DefaultResolver expands images relative to a canonical host and collects
// the nodes produced with AsRootNodes. It is safe for concurrent use.
type DefaultResolver struct {
	host string
	ids  id.Generator

	mu    sync.Mutex
	roots []node.Node
	index map[string]int
}

// NewResolver creates a DefaultResolver for host. A nil generator uses the
// default type registry.
func NewResolver(host string, gen id.Generator) *DefaultResolver {
	if gen == nil {
		gen = id.NewGenerator(id.NewDefaultTypeRegistry())
	}
	return &DefaultResolver{
		host:  host,
		ids:   gen,
		index: make(map[string]int),
	}
}

// ResolveImages expands input. A single value stays single and a list stays
// a list; id references pass through untouched.
func (r *DefaultResolver) ResolveImages(input any, opts Options) node.Arrayable[any] {
	in := node.AsArrayable(input)
	items := in.Items()
	out := make([]any, 0, len(items))

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range items {
		if node.IsReference(item) {
			out = append(out, item)
			continue
		}
		img, ok := r.normalize(item)
		if !ok {
			out = append(out, item)
			continue
		}
		r.assignID(img, i, opts.ResolvePrimaryImage)

		if opts.AsRootNodes {
			r.addRoot(img, i)
			out = append(out, img.Ref())
			continue
		}
		out = append(out, img)
	}

	if in.IsList() {
		return node.List(out...)
	}
	return node.Single(out[0])
}

// RootNodes returns the collected root image nodes in first-seen order.
func (r *DefaultResolver) RootNodes() []node.Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]node.Node, len(r.roots))
	copy(out, r.roots)
	return out
}

func (r *DefaultResolver) normalize(item any) (node.Node, bool) {
	var img node.Node
	switch v := item.(type) {
	case string:
		if v == "" {
			return nil, false
		}
		img = node.Node{"url": v}
	default:
		n, ok := node.AsNode(item)
		if !ok {
			return nil, false
		}
		img = n.Clone()
	}

	node.SetIfEmpty(img, node.KeyType, TypeImageObject)
	if !img.Has("url") {
		if content, ok := img.String("contentUrl"); ok {
			img["url"] = content
		}
	}
	urlutil.RewriteField(img, "url", r.host)
	urlutil.RewriteField(img, "contentUrl", r.host)
	if u, ok := img.String("url"); ok && !img.Has("contentUrl") {
		img["contentUrl"] = u
	}
	return img, true
}

// assignID gives img its id. The primary image id goes to the first image
// only while no root image with a different url holds it. Callers hold r.mu.
func (r *DefaultResolver) assignID(img node.Node, index int, primary bool) {
	if img.ID() != "" {
		urlutil.RewriteID(img, r.host)
		return
	}
	if primary && index == 0 {
		primaryID := urlutil.PrefixID(r.host, PrimaryImageID)
		if i, taken := r.index[primaryID]; !taken || sameURL(r.roots[i], img) {
			img[node.KeyID] = primaryID
			return
		}
	}
	r.assignGenerated(img, index)
}

func (r *DefaultResolver) assignGenerated(img node.Node, index int) {
	generated, err := r.ids.Generate(r.host, TypeImageObject, img)
	if err != nil {
		generated = urlutil.PrefixID(r.host, "#/schema/image/"+strconv.Itoa(index))
	}
	img[node.KeyID] = generated
}

// addRoot stores img as a root node. A root with the same id and url is
// patched; an explicit id already naming another url is replaced by a
// content id so distinct images never share a node. Callers hold r.mu.
func (r *DefaultResolver) addRoot(img node.Node, index int) {
	if i, ok := r.index[img.ID()]; ok {
		if sameURL(r.roots[i], img) {
			r.roots[i] = node.Merge(img, r.roots[i])
			return
		}
		r.assignGenerated(img, index)
		if i, ok := r.index[img.ID()]; ok {
			r.roots[i] = node.Merge(img, r.roots[i])
			return
		}
	}
	r.index[img.ID()] = len(r.roots)
	r.roots = append(r.roots, img)
}

// sameURL reports whether two images can describe the same picture. An
// image without a url matches anything.
func sameURL(a, b node.Node) bool {
	ua, _ := a.String("url")
	ub, _ := b.String("url")
	return ua == "" || ub == "" || ua == ub
}
