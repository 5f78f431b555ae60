package views

import (
	"github.com/a-h/templ"

	"github.com/ibaslogic/folio"
)

// Home is the post listing, optionally narrowed to activeTag.
func Home(p folio.Page, posts []folio.BlogPost, activeTag string, tags []string) templ.Component {
	return Layout(p, component(func(w *writer) {
		w.raw(`<div class="with-sidebar"><section class="posts">`)
		if len(tags) > 0 {
			w.raw(`<nav class="tags">`)
			w.raw("<a")
			w.attr("class", TagClass(activeTag == ""))
			w.raw(` href="/">all</a>`)
			for _, t := range tags {
				w.raw("<a")
				w.attr("class", TagClass(t == activeTag))
				w.href(folio.TagLink(t))
				w.raw(">")
				w.text(t)
				w.raw("</a>")
			}
			w.raw("</nav>")
		}
		if activeTag != "" {
			w.raw("<h1>Posts tagged ")
			w.text(activeTag)
			w.raw("</h1>")
		}
		if len(posts) == 0 {
			w.raw(`<p class="muted">Nothing published yet.</p>`)
		}
		for _, post := range posts {
			w.render(PostCard(post))
		}
		w.raw("</section>")
		w.render(Sidebar(p.Recent))
		w.raw("</div>")
	}))
}

// PostCard is a post teaser in a listing.
func PostCard(post folio.BlogPost) templ.Component {
	return component(func(w *writer) {
		w.raw(`<article class="post-card"><h2>`)
		w.link(folio.PostLink(post.Slug), post.Title, false)
		w.raw("</h2>")
		w.render(postMeta(post))
		if post.Summary != "" {
			w.raw("<p>")
			w.text(post.Summary)
			w.raw("</p>")
		}
		w.raw("</article>")
	})
}

func postMeta(post folio.BlogPost) templ.Component {
	return component(func(w *writer) {
		w.raw(`<p class="post-meta"><time`)
		w.attr("datetime", post.Date)
		w.raw(">")
		w.text(post.Date)
		w.raw("</time>")
		for _, t := range post.Tags {
			w.raw(" ")
			w.raw("<a")
			w.attr("class", TagClass(false))
			w.href(folio.TagLink(t))
			w.raw(">")
			w.text(t)
			w.raw("</a>")
		}
		w.raw("</p>")
	})
}
