package views

import (
	"github.com/a-h/templ"

	"github.com/ibaslogic/folio"
)

func NotFound(p folio.Page) templ.Component {
	return Layout(p, component(func(w *writer) {
		w.raw(`<section class="error-page"><h1>Page not found</h1><p>The page you were looking for does not exist. Try the <a href="/">latest posts</a>.</p></section>`)
		w.render(Sidebar(p.Recent))
	}))
}

func ServerError(p folio.Page) templ.Component {
	return Layout(p, component(func(w *writer) {
		w.raw(`<section class="error-page"><h1>Something went wrong</h1><p>Please try again in a moment.</p></section>`)
	}))
}
