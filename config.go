package folio

import (
	"time"

	"github.com/labstack/gommon/log"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Metadata SiteMetadata

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")

	AdminPassword string // Required for Start: admin login password
	SessionSecret string // Required for Start: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
	RecentPosts  int           // Sidebar length (default 5)

	// ContentSecurityPolicy is sent on every response (default DefaultCSP).
	ContentSecurityPolicy string
	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds for
	// HTTPS requests (default one year). A negative value disables the header.
	HSTSMaxAge int
}

// DefaultCSP allows the site's own assets plus remote post thumbnails.
const DefaultCSP = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'; form-action 'self'; frame-ancestors 'none'"

// SiteMetadata is the author and social data shown in the footer and
// JSON-LD. It is loaded once at start-up and handed to every page.
type SiteMetadata struct {
	Author        string
	TwitterHandle string
	LinkedIn      string
	GitHub        string
	SourceRepo    string // repository under GitHub holding the site source
	StartHere     string // slug or title of the post new readers should open first
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.RecentPosts == 0 {
		c.RecentPosts = 5
	}
	if c.ContentSecurityPolicy == "" {
		c.ContentSecurityPolicy = DefaultCSP
	}
	if c.HSTSMaxAge == 0 {
		c.HSTSMaxAge = 365 * 24 * 60 * 60
	}
	if c.Metadata.SourceRepo == "" {
		c.Metadata.SourceRepo = "Ibaslogic"
	}
	if c.Metadata.StartHere == "" {
		c.Metadata.StartHere = "gatsby-tutorial-from-scratch-for-beginners"
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

// WithContentDir names the markdown source directory so Build never
// exports over it.
func WithContentDir(dir string) Option {
	return func(a *App) {
		a.contentDir = dir
	}
}

// WithLogger replaces the default logger. It is also installed as the Echo logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithClock overrides the time source used for dates and the footer year.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
