package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("folio %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestSlugCommand(t *testing.T) {
	got := execute(t, "slug", "Gatsby", "Tutorial:", "From", "Scratch", "for", "Beginners")
	if got != "gatsby-tutorial-from-scratch-for-beginners\n" {
		t.Errorf("got %q", got)
	}
	got = execute(t, "slug", "--link", "123 Go!")
	if got != "/blog/123-go/\n" {
		t.Errorf("got %q", got)
	}
	slugLink = false
}

func TestVersionCommand(t *testing.T) {
	if got := execute(t, "version"); got != "folio dev\n" {
		t.Errorf("got %q", got)
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `site:
  name: Ibas Blog
  url: https://ibaslogic.com
site_metadata:
  author: Ibas Majid
  twitter_handle: ibaslogic
  github: Ibaslogic
  source_repo: gatsby-blog
post_cache_ttl: 2m
recent_posts: 3
hsts_max_age: 600
content_security_policy: default-src 'self'
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_ADMIN_PASSWORD", "secret")
	t.Setenv("FOLIO_SITE_METADATA_LINKEDIN", "ibas")

	execute(t, "--config", path, "version")
	defer func() { cfgFile = "" }()

	sc := cfg.siteConfig()
	if sc.Name != "Ibas Blog" || sc.URL != "https://ibaslogic.com" {
		t.Errorf("site = %q %q", sc.Name, sc.URL)
	}
	if sc.Metadata.Author != "Ibas Majid" || sc.Metadata.GitHub != "Ibaslogic" || sc.Metadata.SourceRepo != "gatsby-blog" {
		t.Errorf("metadata = %+v", sc.Metadata)
	}
	if sc.Metadata.LinkedIn != "ibas" {
		t.Errorf("linkedin from env = %q", sc.Metadata.LinkedIn)
	}
	if sc.AdminPassword != "secret" {
		t.Errorf("admin password from env = %q", sc.AdminPassword)
	}
	if sc.PostCacheTTL != 2*time.Minute || sc.RecentPosts != 3 {
		t.Errorf("ttl/recent = %v/%d", sc.PostCacheTTL, sc.RecentPosts)
	}
	if sc.HSTSMaxAge != 600 || sc.ContentSecurityPolicy != "default-src 'self'" {
		t.Errorf("security = %d %q", sc.HSTSMaxAge, sc.ContentSecurityPolicy)
	}
	if cfg.ContentDir != "content" || cfg.StaticDir != "public" {
		t.Errorf("dirs = %q %q", cfg.ContentDir, cfg.StaticDir)
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	var stderr bytes.Buffer
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "version"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&stderr)
	defer func() { cfgFile = "" }()
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing config file")
	}
	// main prints the error; cobra must not print it as well.
	if stderr.Len() != 0 {
		t.Errorf("cobra wrote %q", stderr.String())
	}
}
