package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zero-day-ai/schemaorg"
	"github.com/zero-day-ai/schemaorg/config"
	"github.com/zero-day-ai/schemaorg/id"
	"github.com/zero-day-ai/schemaorg/image"
	"github.com/zero-day-ai/schemaorg/urlutil"
)

// Client is the resolution context: the site-wide state that defaults and
// resolve hooks read while a graph is built. A Client is read-only once
// created and lives for a single graph-build pass.
type Client struct {
	config       *config.Config
	canonicalURL string
	routeMeta    map[string]any
	images       image.Resolver
	ids          id.Generator
	logger       *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithCanonicalURL sets the url of the page being described. Root-relative
// values are resolved against the canonical host. Defaults to the host.
func WithCanonicalURL(u string) ClientOption {
	return func(c *Client) {
		c.canonicalURL = u
	}
}

// WithRouteMeta sets the route metadata (title, description, image, dates)
// node definitions use to fill gaps in their defaults.
func WithRouteMeta(meta map[string]any) ClientOption {
	return func(c *Client) {
		c.routeMeta = make(map[string]any, len(meta))
		for k, v := range meta {
			c.routeMeta[k] = v
		}
	}
}

// WithImageResolver replaces the image expansion collaborator.
func WithImageResolver(r image.Resolver) ClientOption {
	return func(c *Client) {
		c.images = r
	}
}

// WithIDGenerator replaces the generator used for content-derived ids.
func WithIDGenerator(g id.Generator) ClientOption {
	return func(c *Client) {
		c.ids = g
	}
}

// WithLogger sets a custom logger.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client from a validated configuration.
//
// Example:
//
//	client, err := resolver.NewClient(cfg,
//		resolver.WithCanonicalURL("/blog/hello"),
//		resolver.WithRouteMeta(map[string]any{"title": "Hello"}),
//	)
func NewClient(cfg *config.Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, schemaorg.NewConfigurationError("resolver.NewClient",
			fmt.Errorf("%w: nil config", schemaorg.ErrInvalidConfig))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:    cfg,
		routeMeta: map[string]any{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.ids == nil {
		c.ids = id.NewGenerator(id.NewDefaultTypeRegistry())
	}
	if c.images == nil {
		c.images = image.NewResolver(cfg.CanonicalHost(), c.ids)
	}
	c.canonicalURL = c.normalizePageURL(c.canonicalURL)

	return c, nil
}

func (c *Client) normalizePageURL(u string) string {
	host := c.config.CanonicalHost()
	if u == "" {
		return host
	}
	u = urlutil.ResolveAgainstBase(host, u)
	if !c.config.Site.TrailingSlash && u != host+"/" {
		u = strings.TrimSuffix(u, "/")
	}
	return u
}

// Config returns the site configuration.
func (c *Client) Config() *config.Config {
	return c.config
}

// CanonicalHost returns the site base url without a trailing slash.
func (c *Client) CanonicalHost() string {
	return c.config.CanonicalHost()
}

// CanonicalURL returns the absolute url of the page being described.
func (c *Client) CanonicalURL() string {
	return c.canonicalURL
}

// DefaultLanguage returns the site language.
func (c *Client) DefaultLanguage() string {
	return c.config.DefaultLanguage()
}

// RouteMeta returns a copy of the route metadata.
func (c *Client) RouteMeta() map[string]any {
	out := make(map[string]any, len(c.routeMeta))
	for k, v := range c.routeMeta {
		out[k] = v
	}
	return out
}

// Images returns the image expansion collaborator.
func (c *Client) Images() image.Resolver {
	return c.images
}

// IDs returns the content-derived id generator.
func (c *Client) IDs() id.Generator {
	return c.ids
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

type clientKey struct{}

// WithClient returns a context carrying c as the active resolution client.
func WithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// ClientFrom returns the active resolution client, or a missing context
// error when none is attached to ctx.
func ClientFrom(ctx context.Context) (*Client, error) {
	return clientFrom(ctx, "resolver.ClientFrom")
}

func clientFrom(ctx context.Context, op string) (*Client, error) {
	if ctx != nil {
		if c, ok := ctx.Value(clientKey{}).(*Client); ok && c != nil {
			return c, nil
		}
	}
	return nil, schemaorg.NewMissingContextError(op)
}
