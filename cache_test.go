package folio

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func setupTestCache(t *testing.T, ttl time.Duration) (*PostCache, *Store) {
	t.Helper()
	s, cleanup := setupTestStore(t)
	t.Cleanup(cleanup)
	for _, p := range []BlogPost{
		{Slug: "three", Title: "Three", Date: "2024-01-03", Tags: []string{"go"}, Published: true},
		{Slug: "two", Title: "Two", Date: "2024-01-02", Tags: []string{"web"}, Published: true},
		{Slug: "one", Title: "One", Date: "2024-01-01", Tags: []string{"Go"}, Published: true},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}
	return NewPostCache(s, ttl), s
}

func TestPostCacheListPosts(t *testing.T) {
	c, _ := setupTestCache(t, time.Minute)

	all, err := c.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(all) != 3 || all[0].Slug != "three" {
		t.Errorf("ListPosts = %v", all)
	}

	tagged, err := c.ListPosts("GO")
	if err != nil {
		t.Fatalf("ListPosts(GO) failed: %v", err)
	}
	if len(tagged) != 2 || tagged[0].Slug != "three" || tagged[1].Slug != "one" {
		t.Errorf("ListPosts(GO) = %v", tagged)
	}
}

func TestPostCacheListPostsByTagSlug(t *testing.T) {
	c, s := setupTestCache(t, time.Minute)
	if err := s.SavePost(BlogPost{Slug: "four", Title: "Four", Date: "2024-01-04", Tags: []string{"Go!"}, Published: true}); err != nil {
		t.Fatal(err)
	}

	posts, tags, err := c.ListPostsByTagSlug("go")
	if err != nil {
		t.Fatalf("ListPostsByTagSlug failed: %v", err)
	}
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "go!" {
		t.Errorf("tags = %v", tags)
	}
	if len(posts) != 3 || posts[0].Slug != "four" || posts[2].Slug != "one" {
		t.Errorf("posts = %v", posts)
	}

	for _, missing := range []string{"", "rust"} {
		posts, tags, err := c.ListPostsByTagSlug(missing)
		if err != nil || posts != nil || tags != nil {
			t.Errorf("ListPostsByTagSlug(%q) = %v, %v, %v", missing, posts, tags, err)
		}
	}
}

func TestPostCacheServesStaleUntilInvalidated(t *testing.T) {
	c, s := setupTestCache(t, time.Hour)
	if _, err := c.ListPosts(""); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePost(BlogPost{Slug: "four", Title: "Four", Date: "2024-01-04", Published: true}); err != nil {
		t.Fatal(err)
	}

	if _, err := c.GetPost("four"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cached read should not see the new post yet, err = %v", err)
	}
	c.Invalidate()
	if _, err := c.GetPost("four"); err != nil {
		t.Errorf("after Invalidate GetPost = %v", err)
	}
}

func TestPostCacheExpires(t *testing.T) {
	c, s := setupTestCache(t, 20*time.Millisecond)
	if _, err := c.ListPosts(""); err != nil {
		t.Fatal(err)
	}
	if err := s.DeletePost("three"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(40 * time.Millisecond)
	if _, err := c.GetPost("three"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired cache should reload, err = %v", err)
	}
}

func TestPostCacheEmptyBlog(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	c := NewPostCache(s, time.Minute)

	posts, err := c.ListPosts("")
	if err != nil || len(posts) != 0 {
		t.Errorf("ListPosts on empty blog = %v, %v", posts, err)
	}
	if !c.valid() {
		t.Error("an empty blog should still count as loaded")
	}
}

func TestPostCacheRecentPosts(t *testing.T) {
	c, _ := setupTestCache(t, time.Minute)

	tests := []struct {
		n       int
		exclude string
		want    []string
	}{
		{2, "", []string{"three", "two"}},
		{2, "three", []string{"two", "one"}},
		{10, "two", []string{"three", "one"}},
		{0, "", nil},
		{-1, "", nil},
	}
	for _, tt := range tests {
		got, err := c.RecentPosts(tt.n, tt.exclude)
		if err != nil {
			t.Fatalf("RecentPosts failed: %v", err)
		}
		if len(got) != len(tt.want) {
			t.Errorf("RecentPosts(%d, %q) = %v, want %v", tt.n, tt.exclude, got, tt.want)
			continue
		}
		for i := range got {
			if got[i].Slug != tt.want[i] {
				t.Errorf("RecentPosts(%d, %q)[%d] = %s, want %s", tt.n, tt.exclude, i, got[i].Slug, tt.want[i])
			}
		}
	}
}

func TestPostCacheConcurrentReads(t *testing.T) {
	c, _ := setupTestCache(t, time.Millisecond)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%5 == 0 {
				c.Invalidate()
			}
			if _, err := c.GetPost("two"); err != nil {
				t.Errorf("GetPost failed: %v", err)
			}
		}(i)
	}
	wg.Wait()
}
