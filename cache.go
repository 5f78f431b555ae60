package folio

import (
	"sync"
	"time"

	"github.com/ibaslogic/folio/slug"
)

// PostCache is an in-memory cache of published blog posts and tags with TTL.
type PostCache struct {
	mu      sync.RWMutex
	posts   []BlogPost
	tags    []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	if posts == nil {
		// Non-nil marks the cache as loaded even for an empty blog.
		posts = []BlogPost{}
	}
	c.posts = posts
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and tags after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]BlogPost, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.tags, nil
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *PostCache) ListPosts(tag string) ([]BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	normalized := normalizeTag(tag)
	var filtered []BlogPost
	for _, p := range posts {
		for _, t := range p.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// ListPostsByTagSlug returns published posts carrying any tag whose slug is
// tagSlug, along with those tags. Tags such as "c" and "c++" share the slug
// "c" and therefore share one listing.
func (c *PostCache) ListPostsByTagSlug(tagSlug string) ([]BlogPost, []string, error) {
	posts, tags, err := c.ensureLoaded()
	if err != nil || tagSlug == "" {
		return nil, nil, err
	}
	var matched []string
	for _, t := range tags {
		if slug.Make(t) == tagSlug {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return nil, nil, nil
	}
	var filtered []BlogPost
	for _, p := range posts {
		for _, t := range p.Tags {
			if slug.Make(t) == tagSlug {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, matched, nil
}

// ListTags returns all unique tags from published posts.
func (c *PostCache) ListTags() ([]string, error) {
	_, tags, err := c.ensureLoaded()
	return tags, err
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(postSlug string) (BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == postSlug {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

// RecentPosts returns up to n of the newest published posts, leaving out
// the post whose slug is exclude.
func (c *PostCache) RecentPosts(n int, exclude string) ([]BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	recent := make([]BlogPost, 0, n)
	for _, p := range posts {
		if len(recent) == n {
			break
		}
		if p.Slug != exclude {
			recent = append(recent, p)
		}
	}
	return recent, nil
}
