// Package folio is a personal blog and portfolio engine built with Go, Echo,
// and templ. It serves posts from SQLite, renders them through user-supplied
// templ views, and can export the whole site as static files.
//
// Post URLs are always /blog/<slug>/ where the slug comes from the slug
// package, so links built from titles, front matter or stored records agree.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
// Keeping them outside the package lets a site own all of its markup.
type ViewFuncs struct {
	Home           func(p Page, posts []BlogPost, activeTag string, tags []string) templ.Component
	Post           func(p Page, post BlogPost, related []BlogPost) templ.Component
	AdminLogin     func(p Page, showError bool, csrfToken string) templ.Component
	AdminDashboard func(p Page, posts []BlogPost, message string, csrfToken string) templ.Component
	AdminForm      func(p Page, post BlogPost, csrfToken string) templ.Component
	AdminImages    func(p Page, images []Image, csrfToken string) templ.Component
	NotFound       func(p Page) templ.Component
	ServerError    func(p Page) templ.Component
}

// App is the central folio application. It wires together the store,
// cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs
	Logger *log.Logger

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	contentDir   string
	now          func() time.Time
	initOnce     sync.Once
	initErr      error
}

// New creates a new folio App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = log.New("folio")
		a.Logger.SetLevel(log.INFO)
	}
	a.Echo.Logger = a.Logger
	a.Echo.HideBanner = true

	return a
}

// Open initializes the store and the post cache. It is idempotent and is
// all a static Build needs.
func (a *App) Open() error {
	if a.Store != nil {
		return nil
	}
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	return nil
}

// Init validates the server configuration, opens the store, and installs
// middleware and routes. Start calls it; tests can call it directly and then
// drive a.Echo as an http.Handler.
func (a *App) Init() error {
	a.initOnce.Do(func() {
		a.initErr = a.init()
	})
	return a.initErr
}

func (a *App) init() error {
	if a.Config.AdminPassword == "" {
		return errors.New("folio: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return errors.New("folio: SessionSecret is required")
	}
	if err := a.Open(); err != nil {
		return err
	}
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves HTTP until ctx is cancelled, then
// shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		a.Logger.Infof("listening on %s", a.Config.Addr)
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.Logger.Info("shutting down")
		return a.Echo.Shutdown(shutdownCtx)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/tags/:tag/", a.handleTag)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
}

// page assembles the shared view data; exclude keeps the current post out
// of the sidebar.
func (a *App) page(meta PageMeta, exclude string) (Page, error) {
	recent, err := a.Cache.RecentPosts(a.Config.RecentPosts, exclude)
	if err != nil {
		return Page{}, err
	}
	if meta.Title == "" {
		meta.Title = a.Config.Name
	}
	if meta.Description == "" {
		meta.Description = a.Config.Description
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	return Page{
		Site:   a.Config,
		Meta:   meta,
		Recent: recent,
		Year:   a.now().Year(),
	}, nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
