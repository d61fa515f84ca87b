// Package mdpress serves a directory of Markdown files as a browsable,
// taggable site: a paginated index, per-post pages, tag listings, an RSS
// feed and a sitemap. Posts carry an optional "Key: value" header block
// (title, date, tags, status, description); everything is cached with a
// TTL and invalidated early through per-file watches, so publishing is
// just writing a file.
//
// Users provide their own templ components via the Views struct, or an
// entirely different Renderer, and mdpress handles the caching, listing
// and handler logic.
package mdpress

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inksmith/mdpress/analytics"
)

// App is the mdpress application: the Echo instance, the content engine
// and the wiring between them.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Engine *Engine
	Views  Views

	analytics    *analytics.Store
	renderer     Renderer
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given configuration and view components.
func New(cfg Config, views Views, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, engine, middleware and routes, then runs
// the server until it shuts down.
func (a *App) Start() error {
	a.Store = NewStore(a.Config.PostsDir)

	if a.renderer == nil {
		a.renderer = &TemplRenderer{Views: a.Views, Site: a.Config}
	}
	a.Engine = NewEngine(a.Store, a.renderer, a.Config.CacheTTL, a.Config.PageSize)

	if a.Config.AnalyticsPath != "" {
		store, err := analytics.NewStore(a.Config.AnalyticsPath)
		if err != nil {
			return fmt.Errorf("mdpress: init analytics: %w", err)
		}
		a.analytics = store
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)

	e.GET("/", a.handleIndex)
	e.GET("/tag/:tag", a.handleTag)
	e.GET("/sitemap.xml", a.handleSitemap)
	if a.Config.FeedEnabled {
		e.GET("/feed", a.handleFeed)
	}
	if a.analytics != nil {
		e.GET("/stats.json", a.handleStats)
	}

	// Last: everything else is a post slug.
	e.GET("/:slug", a.handlePost)
}

// Close releases watch subscriptions and the analytics database. Call on
// shutdown.
func (a *App) Close() error {
	if a.Engine != nil {
		a.Engine.Close()
	}
	if a.analytics != nil {
		return a.analytics.Close()
	}
	return nil
}
