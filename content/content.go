// Package content loads blog posts authored as markdown files with YAML
// front matter and imports them into a folio store.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ibaslogic/folio"
	"github.com/ibaslogic/folio/markdown"
	"github.com/ibaslogic/folio/slug"
)

// ErrEmptySlug is returned for a file whose slug, title and file name hold
// no letters or digits.
var ErrEmptySlug = errors.New("content: empty slug")

// DuplicateSlugError reports two files that resolve to the same post slug.
type DuplicateSlugError struct {
	Slug   string
	First  string
	Second string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("content: slug %q used by both %s and %s", e.Slug, e.First, e.Second)
}

const summaryLength = 160

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

type frontMatter struct {
	Title     string   `yaml:"title" toml:"title" json:"title"`
	Slug      string   `yaml:"slug" toml:"slug" json:"slug"`
	Date      any      `yaml:"date" toml:"date" json:"date"`
	Tags      []string `yaml:"tags" toml:"tags" json:"tags"`
	Summary   string   `yaml:"summary" toml:"summary" json:"summary"`
	Thumbnail string   `yaml:"thumbnail" toml:"thumbnail" json:"thumbnail"`
	Draft     bool     `yaml:"draft" toml:"draft" json:"draft"`
}

// Load reads every markdown file under dir. Posts come back newest first.
func Load(dir string) ([]folio.BlogPost, error) {
	var posts []folio.BlogPost
	seen := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}
		post, err := loadFile(path)
		if err != nil {
			return err
		}
		if first, ok := seen[post.Slug]; ok {
			return &DuplicateSlugError{Slug: post.Slug, First: first, Second: path}
		}
		seen[post.Slug] = path
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func loadFile(path string) (folio.BlogPost, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return folio.BlogPost{}, err
	}
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return folio.BlogPost{}, fmt.Errorf("content: %s: front matter: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = titleFromFile(base)
	}
	postSlug := slug.Make(firstNonEmpty(fm.Slug, fm.Title, base))
	if postSlug == "" {
		return folio.BlogPost{}, fmt.Errorf("%w: %s", ErrEmptySlug, path)
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return folio.BlogPost{}, fmt.Errorf("content: %s: %w", path, err)
	}
	if date.IsZero() {
		info, err := os.Stat(path)
		if err != nil {
			return folio.BlogPost{}, err
		}
		date = info.ModTime()
	}

	content := string(body)
	summary := strings.TrimSpace(fm.Summary)
	if summary == "" {
		summary = markdown.Excerpt(content, summaryLength)
	}
	return folio.BlogPost{
		Title:     title,
		Date:      date.Format("2006-01-02"),
		Tags:      folio.FilterEmpty(fm.Tags),
		Summary:   summary,
		Link:      folio.PostLink(postSlug),
		Slug:      postSlug,
		Content:   content,
		Thumbnail: strings.TrimSpace(fm.Thumbnail),
		Published: !fm.Draft,
	}, nil
}

// titleFromFile turns "my_first-post" into "My First Post".
func titleFromFile(base string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(base))
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// parseDate accepts whatever the front matter decoder produced for date.
// A missing date yields the zero time.
func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return d, nil
	case string:
		d = strings.TrimSpace(d)
		if d == "" {
			return time.Time{}, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid date %q", d)
	default:
		return time.Time{}, fmt.Errorf("invalid date %v", v)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// PostSaver is the part of folio.Store that Import writes to.
type PostSaver interface {
	SavePost(p folio.BlogPost) error
}

// Import loads dir and upserts every post into store. Posts removed from
// disk are left in the store.
func Import(ctx context.Context, dir string, store PostSaver) (int, error) {
	posts, err := Load(dir)
	if err != nil {
		return 0, err
	}
	for i, p := range posts {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := store.SavePost(p); err != nil {
			return i, fmt.Errorf("content: save %s: %w", p.Slug, err)
		}
	}
	return len(posts), nil
}
