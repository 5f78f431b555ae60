package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/ibaslogic/folio"
)

func AdminLogin(p folio.Page, showError bool, csrfToken string) templ.Component {
	return Layout(p, component(func(w *writer) {
		w.raw(`<section class="admin-login"><h1>Admin</h1>`)
		if showError {
			w.raw(`<p class="error">Wrong password.</p>`)
		}
		w.raw(`<form method="post" action="/admin/login/">`)
		w.csrf(csrfToken)
		w.raw(`<label>Password <input type="password" name="password" required autofocus></label>`)
		w.raw(`<button type="submit">Log in</button></form></section>`)
	}))
}

// AdminDashboard lists every post, drafts included, above an empty post form.
func AdminDashboard(p folio.Page, posts []folio.BlogPost, message string, csrfToken string) templ.Component {
	return Layout(p, component(func(w *writer) {
		w.raw(`<section class="admin"><header class="admin-bar"><h1>Posts</h1>`)
		w.raw(`<a href="/admin/images/">Images</a>`)
		w.raw(`<form method="post" action="/admin/logout/">`)
		w.csrf(csrfToken)
		w.raw(`<button type="submit">Log out</button></form></header>`)
		if message != "" {
			w.raw(`<p class="flash">`)
			w.text(message)
			w.raw("</p>")
		}
		w.raw(`<table class="admin-posts"><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, post := range posts {
			w.raw("<tr><td>")
			w.link("/admin/post/"+post.Slug+"/", post.Title, false)
			w.raw("</td><td>")
			w.text(post.Date)
			w.raw("</td><td>")
			if post.Published {
				w.link(folio.PostLink(post.Slug), "published", false)
			} else {
				w.raw("draft")
			}
			w.raw(`</td><td><form method="post"`)
			w.attr("action", "/admin/post/"+post.Slug+"/")
			w.raw(`><input type="hidden" name="_method" value="DELETE">`)
			w.csrf(csrfToken)
			w.raw(`<button type="submit">Delete</button></form></td></tr>`)
		}
		w.raw("</tbody></table><h2>New post</h2>")
		w.render(postForm(folio.BlogPost{}, csrfToken))
		w.raw("</section>")
	}))
}

// AdminForm is the edit page for a single post.
func AdminForm(p folio.Page, post folio.BlogPost, csrfToken string) templ.Component {
	return Layout(p, component(func(w *writer) {
		w.raw(`<section class="admin"><header class="admin-bar"><h1>Edit post</h1>`)
		w.raw(`<a href="/admin/">Posts</a><a href="/admin/images/">Images</a></header>`)
		w.render(postForm(post, csrfToken))
		w.raw("</section>")
	}))
}

// postForm edits post. An empty Slug means a new post.
func postForm(post folio.BlogPost, csrfToken string) templ.Component {
	return component(func(w *writer) {
		w.raw(`<form class="post-form" method="post" action="/admin/save/">`)
		w.csrf(csrfToken)
		w.raw(`<input type="hidden" name="original_slug"`)
		w.attr("value", post.Slug)
		w.raw(">")
		field := func(label, name, value string) {
			w.raw("<label>", label, ` <input type="text"`)
			w.attr("name", name)
			w.attr("value", value)
			w.raw("></label>")
		}
		field("Title", "title", post.Title)
		field("Slug", "slug", post.Slug)
		field("Date", "date", post.Date)
		field("Tags", "tags", strings.Join(post.Tags, ", "))
		field("Thumbnail", "thumbnail", post.Thumbnail)
		w.raw(`<label>Summary <textarea name="summary" rows="2">`)
		w.text(post.Summary)
		w.raw(`</textarea></label><label>Content <textarea name="content" rows="20">`)
		w.text(post.Content)
		w.raw(`</textarea></label><label><input type="checkbox" name="published" value="1"`)
		if post.Published {
			w.raw(" checked")
		}
		w.raw(`> Published</label><button type="submit">Save</button></form>`)
	})
}

func AdminImages(p folio.Page, images []folio.Image, csrfToken string) templ.Component {
	return Layout(p, component(func(w *writer) {
		w.raw(`<section class="admin-images"><header class="admin-bar"><h1>Images</h1>`)
		w.raw(`<a href="/admin/">Posts</a></header>`)
		w.raw(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		w.csrf(csrfToken)
		w.raw(`<input type="file" name="image" accept="image/png,image/jpeg,image/gif" required>`)
		w.raw(`<button type="submit">Upload</button></form><ul class="image-grid">`)
		for _, img := range images {
			w.raw(`<li><img loading="lazy"`)
			w.attr("src", folio.ImageURL(img.ThumbFilename))
			w.attr("alt", img.OriginalName)
			w.raw("><code>")
			w.text(folio.ImageURL(img.Filename))
			w.raw("</code><span>")
			w.raw(strconv.Itoa(img.Width), "&times;", strconv.Itoa(img.Height))
			w.raw(`</span><form method="post"`)
			w.attr("action", "/admin/images/"+img.Filename+"/")
			w.raw(`><input type="hidden" name="_method" value="DELETE">`)
			w.csrf(csrfToken)
			w.raw(`<button type="submit">Delete</button></form></li>`)
		}
		w.raw("</ul></section>")
	}))
}
