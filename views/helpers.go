// Package views holds folio's default templ components. Each exported
// function returns a templ.Component; Funcs bundles them for folio.New.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/ibaslogic/folio"
)

// Funcs returns the default view set.
func Funcs() folio.ViewFuncs {
	return folio.ViewFuncs{
		Home:           Home,
		Post:           Post,
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		AdminForm:      AdminForm,
		AdminImages:    AdminImages,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

// writer accumulates the first write error so markup can be emitted
// without checking every call.
type writer struct {
	ctx context.Context
	out io.Writer
	err error
}

func component(fn func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{ctx: ctx, out: out}
		fn(w)
		return w.err
	})
}

func (w *writer) raw(parts ...string) {
	for _, s := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.out, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) attr(name, value string) {
	w.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (w *writer) href(u string) {
	w.attr("href", string(templ.URL(u)))
}

// link writes a complete anchor; external links open in a new tab.
func (w *writer) link(u, label string, external bool) {
	w.raw("<a")
	w.href(u)
	if external {
		w.raw(` target="_blank" rel="noopener noreferrer"`)
	}
	w.raw(">")
	w.text(label)
	w.raw("</a>")
}

func (w *writer) render(c templ.Component) {
	if w.err == nil {
		w.err = c.Render(w.ctx, w.out)
	}
}

func (w *writer) csrf(token string) {
	w.raw(`<input type="hidden" name="_csrf"`)
	w.attr("value", token)
	w.raw(">")
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	if active {
		return "tag tag-active"
	}
	return "tag"
}

func firstName(author string) string {
	if f := strings.Fields(author); len(f) > 0 {
		return f[0]
	}
	return ""
}
