package views

import (
	"github.com/a-h/templ"

	"github.com/ibaslogic/folio"
)

// Sidebar lists recent posts, each with its thumbnail and a link built
// from the post's slug.
func Sidebar(posts []folio.BlogPost) templ.Component {
	return component(func(w *writer) {
		w.raw(`<aside class="sidebar"><h3>Recent Posts</h3>`)
		if len(posts) == 0 {
			w.raw(`<p class="muted">No posts yet.</p></aside>`)
			return
		}
		w.raw(`<ul class="recent-posts">`)
		for _, p := range posts {
			w.render(SidebarPost(p))
		}
		w.raw("</ul></aside>")
	})
}

// SidebarPost is one entry of the recent posts list.
func SidebarPost(p folio.BlogPost) templ.Component {
	return component(func(w *writer) {
		w.raw("<li>")
		if p.Thumbnail != "" {
			w.raw(`<img class="img-thumbnail" loading="lazy" width="160"`)
			w.attr("src", string(templ.URL(p.Thumbnail)))
			w.attr("alt", p.Title)
			w.raw(">")
		}
		w.link(folio.PostLink(p.Slug), p.Title, false)
		w.raw("</li>")
	})
}
