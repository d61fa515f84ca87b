package mdpress

import "time"

const defaultPageSize = 10

// Config holds all configuration for an mdpress site.
type Config struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for meta tags

	Addr     string // Listen address (default ":3000")
	PostsDir string // Directory of .md post files (default "posts")

	// CacheTTL gates the post, index and render caches. Zero means every
	// request reloads; the default lives in the config loader, not here,
	// so an explicit zero survives.
	CacheTTL time.Duration

	PageSize    int  // Entries per listing page and per feed (default 10)
	FeedEnabled bool // Serve /feed (RSS); opt-in

	// AnalyticsPath is the page-view SQLite database. Empty disables
	// analytics entirely.
	AnalyticsPath string
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostsDir == "" {
		c.PostsDir = "posts"
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithRenderer replaces the default templ-backed renderer.
func WithRenderer(r Renderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
