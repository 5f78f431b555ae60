package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ibaslogic/folio"
)

// Footer renders the open-source blurb, the "start here" link, the
// copyright line and the author's social profiles.
func Footer(site folio.SiteConfig, year int) templ.Component {
	meta := site.Metadata
	return component(func(w *writer) {
		w.raw(`<footer class="site-footer"><div class="container"><div class="ft-top"><div class="open-source">`)
		if src := folio.SourceCodeURL(meta); src != "" {
			w.raw("<h3>Open Source Project</h3><p>Use and modify (be creative) <a")
			w.href(src)
			w.raw(` title="Open-source project" target="_blank" rel="noopener noreferrer">site source code</a>. Also welcomes suggestions to improve this web project.</p>`)
		}
		w.raw(`<div class="start-here"><p>Don't know where to start? </p>`)
		w.link(folio.PostLink(meta.StartHere), "start here", false)
		w.raw("</div></div></div>")

		author := meta.Author
		if author == "" {
			author = site.Name
		}
		w.raw(`<div class="ft-bottom"><p class="copy">Designed and developed by `)
		w.text(author)
		w.raw(" &copy; ", strconv.Itoa(year), "</p>")

		if links := folio.SocialLinks(meta); len(links) > 0 {
			w.raw(`<div class="social"><span class="check-me">Connect with `)
			w.text(firstName(author))
			w.raw(`</span><ul class="social-list">`)
			for _, l := range links {
				w.raw(`<li class="social-item">`)
				w.link(l.URL, l.Name, true)
				w.raw("</li>")
			}
			w.raw("</ul></div>")
		}
		w.raw("</div></div></footer>")
	})
}
