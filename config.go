package folio

import (
	"go.uber.org/zap"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/internal/observability"
)

// SiteConfig holds the server configuration of a folio site. Site identity
// (name, URL, author) lives in the content tree, not here.
type SiteConfig struct {
	ContentDir  string // Content tree root (default "content")
	Addr        string // Listen address (default ":3000")
	RecentPosts int    // Posts shown on the home page (default 3)
}

func (c *SiteConfig) setDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.RecentPosts <= 0 {
		c.RecentPosts = 3
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger used for request and error logging. A nil
// logger discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		a.Logger = observability.OrNop(logger)
	}
}

// WithStore replaces the content store built from ContentDir.
func WithStore(store *content.Store) Option {
	return func(a *App) {
		a.Store = store
	}
}
