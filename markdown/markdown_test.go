package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"use `fmt.Println` here", "use <code>fmt.Println</code> here"},
		{"`**not bold**`", "<code>**not bold**</code>"},
	}
	for _, tt := range tests {
		got, err := Render(tt.input)
		if err != nil {
			t.Fatalf("Render(%q): %v", tt.input, err)
		}
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderHeadingIDsUseSlugs(t *testing.T) {
	input := "# Getting Started!\n\n## Getting Started\n\n## Café Notes\n\n## ???"
	got, err := Render(input)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		`<h1 id="getting-started">`,
		`<h2 id="getting-started-1">`,
		`<h2 id="cafe-notes">`,
		`<h2 id="section">`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render output missing %s:\n%s", want, got)
		}
	}
}

func TestRenderHeadingIDsResetPerDocument(t *testing.T) {
	for i := 0; i < 2; i++ {
		got, err := Render("## Intro")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(got, `id="intro"`) {
			t.Fatalf("render %d: id not reset: %s", i, got)
		}
	}
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	input := "```go\nfmt.Println(\"hello\")\n```"
	got, err := Render(input)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should keep language-go class: %q", got)
	}
	if !strings.Contains(got, "<pre>") {
		t.Errorf("code block should be wrapped in pre: %q", got)
	}
}

func TestRenderLists(t *testing.T) {
	got, err := Render("- item 1\n- item 2\n\n1. first\n2. second")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"<ul>", "<li>item 1</li>", "<ol>", "<li>second</li>"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render output missing %s: %q", want, got)
		}
	}
}

func TestRenderTable(t *testing.T) {
	got, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>1</td>") {
		t.Errorf("table not rendered: %q", got)
	}
}

func TestRenderStripsUnsafeContent(t *testing.T) {
	tests := []string{
		"<script>alert(1)</script>",
		"[x](javascript:alert(1))",
		`<img src="x" onerror="alert(1)">`,
	}
	for _, input := range tests {
		got, err := Render(input)
		if err != nil {
			t.Fatalf("Render(%q): %v", input, err)
		}
		lower := strings.ToLower(got)
		if strings.Contains(lower, "<script") || strings.Contains(lower, "javascript:") || strings.Contains(lower, "onerror") {
			t.Errorf("Render(%q) = %q, unsafe content survived", input, got)
		}
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Component("hello *world*").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "<em>world</em>") {
		t.Errorf("component output = %q", buf.String())
	}
}

func TestExcerpt(t *testing.T) {
	src := "# Title\n\nThis is **the** first paragraph of a fairly long post body."
	got := Excerpt(src, 22)
	if got != "Title This is the…" {
		t.Errorf("Excerpt = %q", got)
	}
	if got := Excerpt("Short & sweet", 100); got != "Short & sweet" {
		t.Errorf("Excerpt short = %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/public/uploads/a.jpg", "/public/uploads/a.jpg"},
		{"#intro", "#intro"},
		{"https://example.com/a?b=1&c=2", "https://example.com/a?b=1&amp;c=2"},
		{"mailto:me@example.com", "mailto:me@example.com"},
		{"javascript:alert(1)", ""},
		{"data:text/html;base64,xx", ""},
		{"relative/path", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.want {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
