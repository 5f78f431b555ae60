package views

import (
	"github.com/a-h/templ"

	"github.com/ibaslogic/folio"
	"github.com/ibaslogic/folio/markdown"
)

// Post renders a single article with related posts and the sidebar.
func Post(p folio.Page, post folio.BlogPost, related []folio.BlogPost) templ.Component {
	return Layout(p, component(func(w *writer) {
		w.raw(`<div class="with-sidebar"><article class="post"><h1>`)
		w.text(post.Title)
		w.raw("</h1>")
		w.render(postMeta(post))
		w.raw(`<div class="post-body">`)
		w.render(markdown.Component(post.Content))
		w.raw("</div>")
		if len(related) > 0 {
			w.raw(`<section class="related"><h2>Related posts</h2><ul>`)
			for _, r := range related {
				w.raw("<li>")
				w.link(folio.PostLink(r.Slug), r.Title, false)
				w.raw("</li>")
			}
			w.raw("</ul></section>")
		}
		w.raw("</article>")
		w.render(Sidebar(p.Recent))
		w.raw("</div>")
	}))
}
