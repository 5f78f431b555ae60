package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ibaslogic/folio"
	"github.com/ibaslogic/folio/views"
)

var (
	cfgFile string
	cfg     config
)

type config struct {
	Site struct {
		Name        string `mapstructure:"name"`
		URL         string `mapstructure:"url"`
		Description string `mapstructure:"description"`
	} `mapstructure:"site"`
	SiteMetadata struct {
		Author        string `mapstructure:"author"`
		TwitterHandle string `mapstructure:"twitter_handle"`
		LinkedIn      string `mapstructure:"linkedin"`
		GitHub        string `mapstructure:"github"`
		SourceRepo    string `mapstructure:"source_repo"`
		StartHere     string `mapstructure:"start_here"`
	} `mapstructure:"site_metadata"`

	Addr          string        `mapstructure:"addr"`
	DatabasePath  string        `mapstructure:"database_path"`
	ContentDir    string        `mapstructure:"content_dir"`
	StaticDir     string        `mapstructure:"static_dir"`
	AdminPassword string        `mapstructure:"admin_password"`
	SessionSecret string        `mapstructure:"session_secret"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
	PostCacheTTL  time.Duration `mapstructure:"post_cache_ttl"`
	RecentPosts   int           `mapstructure:"recent_posts"`
	CSP           string        `mapstructure:"content_security_policy"`
	HSTSMaxAge    int           `mapstructure:"hsts_max_age"`
	LogLevel      string        `mapstructure:"log_level"`
}

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - a personal blog engine built with Go, Echo, and templ",
	Long: `folio serves a blog from SQLite, imports posts written as markdown
files with front matter, and exports the whole site as static HTML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", folio.EnvOr("FOLIO_CONFIG", ""), "config file (default is ./config.yaml)")
	rootCmd.AddCommand(serveCmd, buildCmd, importCmd, slugCmd, versionCmd)
}

func initializeConfig() error {
	v := viper.New()

	// Every key needs a default so AutomaticEnv can see it.
	v.SetDefault("site.name", "")
	v.SetDefault("site.url", "")
	v.SetDefault("site.description", "")
	for _, k := range []string{"author", "twitter_handle", "linkedin", "github", "source_repo", "start_here"} {
		v.SetDefault("site_metadata."+k, "")
	}
	v.SetDefault("addr", "")
	v.SetDefault("database_path", "")
	v.SetDefault("content_dir", "content")
	v.SetDefault("static_dir", "public")
	v.SetDefault("admin_password", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("post_cache_ttl", "5m")
	v.SetDefault("recent_posts", 5)
	v.SetDefault("content_security_policy", "")
	v.SetDefault("hsts_max_age", 0)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (c config) siteConfig() folio.SiteConfig {
	return folio.SiteConfig{
		Name:        c.Site.Name,
		URL:         c.Site.URL,
		Description: c.Site.Description,
		Metadata: folio.SiteMetadata{
			Author:        c.SiteMetadata.Author,
			TwitterHandle: c.SiteMetadata.TwitterHandle,
			LinkedIn:      c.SiteMetadata.LinkedIn,
			GitHub:        c.SiteMetadata.GitHub,
			SourceRepo:    c.SiteMetadata.SourceRepo,
			StartHere:     c.SiteMetadata.StartHere,
		},
		Addr:          c.Addr,
		DatabasePath:  c.DatabasePath,
		AdminPassword: c.AdminPassword,
		SessionSecret: c.SessionSecret,
		CookieSecure:  c.CookieSecure,
		PostCacheTTL:  c.PostCacheTTL,
		RecentPosts:   c.RecentPosts,

		ContentSecurityPolicy: c.CSP,
		HSTSMaxAge:            c.HSTSMaxAge,
	}
}

func newLogger(level string) *log.Logger {
	l := log.New("folio")
	l.SetOutput(os.Stderr)
	switch strings.ToLower(level) {
	case "debug":
		l.SetLevel(log.DEBUG)
	case "warn":
		l.SetLevel(log.WARN)
	case "error":
		l.SetLevel(log.ERROR)
	case "off":
		l.SetLevel(log.OFF)
	default:
		l.SetLevel(log.INFO)
	}
	return l
}

func newApp() *folio.App {
	return folio.New(cfg.siteConfig(), views.Funcs(),
		folio.WithStaticDir(cfg.StaticDir),
		folio.WithContentDir(cfg.ContentDir),
		folio.WithLogger(newLogger(cfg.LogLevel)),
	)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
