// Package folio serves a personal portfolio and blog from a flat-file content
// tree, built with Go, Echo, and templ.
//
// Content is read through the content package on every request. Users provide
// their own templ components via the ViewFuncs struct; folio handles routing,
// middleware, feeds and error pages.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/content"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages.
type ViewFuncs struct {
	Home        func(d HomeData) templ.Component
	Page        func(d PageData) templ.Component
	BlogList    func(d BlogListData) templ.Component
	Post        func(d PostData) templ.Component
	Projects    func(d ProjectListData) templ.Component
	Project     func(d ProjectData) templ.Component
	Resume      func(d ResumeData) templ.Component
	NotFound    func(l Layout) templ.Component
	ServerError func() templ.Component
}

// App is the central folio application. It wires together the content
// store, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *content.Store
	Views  ViewFuncs
	Logger *zap.Logger

	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates a new folio App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		Logger:    zap.NewNop(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Store == nil {
		a.Store = content.New(cfg.ContentDir)
	}

	return a
}

// Start validates the whole content tree, then installs middleware and
// routes and serves until the server is shut down. Content defects are
// deployment defects, so the server refuses to start on any of them.
func (a *App) Start() error {
	if err := a.Store.Check(); err != nil {
		return fmt.Errorf("folio: content check: %w", err)
	}
	a.Setup()

	a.Logger.Info("listening", zap.String("addr", a.Config.Addr), zap.String("content", a.Config.ContentDir))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Setup installs middleware, routes and custom routes. Start calls it; tests
// call it directly to serve through Echo without listening.
func (a *App) Setup() {
	if a.ready {
		return
	}
	a.ready = true

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework stylesheet, then the user's static assets.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/folio.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", handleHealth)

	e.GET("/", a.handleHome)
	e.GET("/about/", a.handlePage("about"))
	e.GET("/contact/", a.handlePage("contact"))
	e.GET("/blog/", a.handleBlogList)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/projects/", a.handleProjects)
	e.GET("/projects/:slug/", a.handleProject)
	e.GET("/resume/", a.handleResume)
}

// Shutdown gracefully stops the server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close stops the server immediately and flushes the logger.
func (a *App) Close() error {
	err := a.Echo.Close()
	_ = a.Logger.Sync()
	return err
}
