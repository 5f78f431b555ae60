package folio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"github.com/ibaslogic/folio/slug"
)

// Build renders every public page of the site into outDir: the home page,
// one page per published post and tag, the feed, the sitemap, robots.txt,
// 404.html, and a copy of the static directory under public/. outDir is
// emptied first.
func (a *App) Build(ctx context.Context, outDir string) error {
	if err := a.Open(); err != nil {
		return err
	}
	if err := a.checkOutDir(outDir); err != nil {
		return err
	}
	a.Cache.Invalidate()
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}

	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("folio: clean %s: %w", outDir, err)
	}
	if err := copyDir(a.staticDir, filepath.Join(outDir, "public")); err != nil {
		return fmt.Errorf("folio: copy static assets: %w", err)
	}

	home, err := a.page(PageMeta{URL: BuildURL(a.Config.URL), JSONLD: WebsiteJsonLD(a.Config)}, "")
	if err != nil {
		return err
	}
	if err := writeComponent(ctx, filepath.Join(outDir, "index.html"), a.Views.Home(home, posts, "", tags)); err != nil {
		return err
	}

	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := a.page(a.postMeta(post), post.Slug)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, filepath.FromSlash(post.Link), "index.html")
		if err := writeComponent(ctx, path, a.Views.Post(p, post, FilterRelatedPosts(post, posts))); err != nil {
			return err
		}
	}

	tagPages := 0
	for _, tagSlug := range tagSlugs(tags) {
		tagged, matched, err := a.Cache.ListPostsByTagSlug(tagSlug)
		if err != nil {
			return err
		}
		if len(matched) > 1 {
			a.Logger.Warnf("tags %s share the page %s", JoinTags(matched), TagLink(matched[0]))
		}
		p, err := a.page(a.tagMeta(matched), "")
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, "tags", tagSlug, "index.html")
		if err := writeComponent(ctx, path, a.Views.Home(p, tagged, matched[0], tags)); err != nil {
			return err
		}
		tagPages++
	}

	notFound, err := a.page(PageMeta{Title: "Not found | " + a.Config.Name}, "")
	if err != nil {
		return err
	}
	if err := writeComponent(ctx, filepath.Join(outDir, "404.html"), a.Views.NotFound(notFound)); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outDir, "feed.xml"), func(w io.Writer) error { return a.writeRSS(w, posts) }); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outDir, "sitemap.xml"), func(w io.Writer) error { return a.writeSitemap(w, posts, tags) }); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outDir, "robots.txt"), func(w io.Writer) error {
		_, err := io.WriteString(w, a.robotsTxt())
		return err
	}); err != nil {
		return err
	}

	a.Logger.Infof("built %d posts and %d tag pages into %s", len(posts), tagPages, outDir)
	return nil
}

// tagSlugs returns the distinct non-empty slugs of tags, in order.
func tagSlugs(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		s := slug.Make(t)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// checkOutDir refuses output directories that Build's clean-up would wipe
// sources from: the static, content and working directories, the database,
// or any directory holding one of them. Output inside the static directory
// is refused too, since copying it would recurse into itself.
func (a *App) checkOutDir(outDir string) error {
	out, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}
	sources := []string{a.staticDir, ".", a.Config.DatabasePath}
	if a.contentDir != "" {
		sources = append(sources, a.contentDir)
	}
	for _, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			return err
		}
		if within(abs, out) {
			return fmt.Errorf("folio: output directory %s would overwrite %s", outDir, src)
		}
	}
	static, err := filepath.Abs(a.staticDir)
	if err != nil {
		return err
	}
	if within(out, static) {
		return fmt.Errorf("folio: output directory %s is inside the static directory %s", outDir, a.staticDir)
	}
	return nil
}

// within reports whether path is dir or lies beneath it. Both are absolute.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func writeComponent(ctx context.Context, path string, cmp templ.Component) error {
	return writeFile(path, func(w io.Writer) error { return cmp.Render(ctx, w) })
}

func writeFile(path string, fill func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		return fmt.Errorf("folio: write %s: %w", path, err)
	}
	return w.Flush()
}

// copyDir mirrors src into dst. A missing src is not an error.
func copyDir(src, dst string) error {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		return writeFile(target, func(w io.Writer) error {
			_, err := io.Copy(w, in)
			return err
		})
	})
}
