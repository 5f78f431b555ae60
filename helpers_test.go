package folio

import (
	"encoding/json"
	"testing"
)

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{" go ", "", "  ", "web"})
	if len(got) != 2 || got[0] != "go" || got[1] != "web" {
		t.Errorf("FilterEmpty = %v", got)
	}
	if got := FilterEmpty(nil); got != nil {
		t.Errorf("FilterEmpty(nil) = %v", got)
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	current := BlogPost{Slug: "a", Tags: []string{"Go", "web"}}
	posts := []BlogPost{
		current,
		{Slug: "b", Tags: []string{"go"}},
		{Slug: "c", Tags: []string{"rust"}},
		{Slug: "d", Tags: []string{"WEB", "css"}},
		{Slug: "e"},
	}
	got := FilterRelatedPosts(current, posts)
	if len(got) != 2 || got[0].Slug != "b" || got[1].Slug != "d" {
		t.Errorf("FilterRelatedPosts = %v", got)
	}
	if got := FilterRelatedPosts(BlogPost{Slug: "x"}, posts); len(got) != 0 {
		t.Errorf("untagged post should have no related posts, got %v", got)
	}
}

func decodeJSONLD(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("invalid JSON-LD %q: %v", s, err)
	}
	return m
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := SiteConfig{
		Name:        "Ibas",
		URL:         "https://ibaslogic.com",
		Description: "Tutorials",
		Metadata:    SiteMetadata{Author: "Ibas Majid", TwitterHandle: "ibaslogic"},
	}
	m := decodeJSONLD(t, WebsiteJsonLD(cfg))
	if m["@type"] != "WebSite" || m["name"] != "Ibas" || m["description"] != "Tutorials" {
		t.Errorf("WebsiteJsonLD = %v", m)
	}
	author, ok := m["author"].(map[string]any)
	if !ok || author["name"] != "Ibas Majid" {
		t.Fatalf("author = %v", m["author"])
	}
	sameAs, ok := author["sameAs"].([]any)
	if !ok || len(sameAs) != 1 || sameAs[0] != "https://twitter.com/ibaslogic" {
		t.Errorf("sameAs = %v", author["sameAs"])
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Ibas", URL: "https://ibaslogic.com/"}
	post := BlogPost{
		Slug:      "hello-world",
		Title:     "Hello World",
		Date:      "2024-01-02",
		Summary:   "Hi",
		Tags:      []string{"go", "web"},
		Thumbnail: "/public/uploads/hello.jpg",
	}
	m := decodeJSONLD(t, BlogPostingJsonLD(post, cfg))
	if m["url"] != "https://ibaslogic.com/blog/hello-world/" {
		t.Errorf("url = %v", m["url"])
	}
	if m["image"] != "https://ibaslogic.com/public/uploads/hello.jpg" {
		t.Errorf("image = %v", m["image"])
	}
	if m["keywords"] != "go, web" {
		t.Errorf("keywords = %v", m["keywords"])
	}
	if _, ok := m["author"]; ok {
		t.Error("author should be omitted without metadata")
	}
}
