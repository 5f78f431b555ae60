package views

import (
	"github.com/a-h/templ"

	"github.com/ibaslogic/folio"
)

// Layout wraps body in the site chrome: head metadata, header and footer.
func Layout(p folio.Page, body templ.Component) templ.Component {
	return component(func(w *writer) {
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw("<title>")
		w.text(p.Meta.Title)
		w.raw("</title>")
		if p.Meta.Description != "" {
			w.raw(`<meta name="description"`)
			w.attr("content", p.Meta.Description)
			w.raw(">")
		}
		if p.Meta.URL != "" {
			w.raw(`<link rel="canonical"`)
			w.href(p.Meta.URL)
			w.raw(`><meta property="og:url"`)
			w.attr("content", p.Meta.URL)
			w.raw(">")
		}
		w.raw(`<meta property="og:title"`)
		w.attr("content", p.Meta.Title)
		w.raw(`><meta property="og:type"`)
		w.attr("content", p.Meta.OGType)
		w.raw(">")
		w.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		w.attr("title", p.Site.Name)
		w.raw(">")
		w.raw(`<link rel="icon" href="/favicon.svg"><link rel="stylesheet" href="/public/styles.css">`)
		if p.Meta.JSONLD != "" {
			// json.Marshal escapes <, > and &, so the block cannot close the script tag.
			w.raw(`<script type="application/ld+json">`, p.Meta.JSONLD, "</script>")
		}
		w.raw(`</head><body><header class="site-header"><div class="container">`)
		w.raw(`<a class="brand" href="/">`)
		w.text(p.Site.Name)
		w.raw(`</a><nav><a href="/">Blog</a><a href="/feed.xml">RSS</a></nav></div></header>`)
		w.raw(`<main class="container">`)
		w.render(body)
		w.raw("</main>")
		w.render(Footer(p.Site, p.Year))
		w.raw("</body></html>")
	})
}
