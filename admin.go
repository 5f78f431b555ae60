package folio

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ibaslogic/folio/markdown"
	"github.com/ibaslogic/folio/slug"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		p, err := a.adminPage()
		if err != nil {
			return err
		}
		return Render(c, a.Views.AdminLogin(p, false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) adminPage() (Page, error) {
	return a.page(PageMeta{Title: "Admin | " + a.Config.Name}, "")
}

func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return err
	}
	p, err := a.page(PageMeta{Title: "Edit " + post.Title + " | " + a.Config.Name}, "")
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminForm(p, post, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	c.Logger().Warnf("failed admin login from %s", ip)
	p, err := a.adminPage()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminLogin(p, true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func adminRedirect(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape(msg))
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	postSlug := strings.TrimSpace(c.FormValue("slug"))
	if postSlug == "" {
		postSlug = title
	}
	postSlug = slug.Make(postSlug)
	if postSlug == "" {
		return adminRedirect(c, "Slug is required. Add a title or slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = a.now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return adminRedirect(c, "Invalid date format. Use YYYY-MM-DD.")
	}
	thumbnail := strings.TrimSpace(c.FormValue("thumbnail"))
	if thumbnail != "" && markdown.SafeURL(thumbnail) == "" {
		return adminRedirect(c, "Thumbnail must be a site path or http(s) URL.")
	}
	content := c.FormValue("content")
	summary := strings.TrimSpace(c.FormValue("summary"))
	if summary == "" {
		summary = markdown.Excerpt(content, 160)
	}
	post := BlogPost{
		Slug:      postSlug,
		Title:     title,
		Date:      date,
		Tags:      FilterEmpty(strings.Split(c.FormValue("tags"), ",")),
		Summary:   summary,
		Content:   content,
		Thumbnail: thumbnail,
		Published: c.FormValue("published") != "",
	}
	if err := a.Store.SavePost(post); err != nil {
		return err
	}
	// A changed slug is a rename; drop the record under the old one.
	if original := c.FormValue("original_slug"); original != "" && original != postSlug {
		if err := a.Store.DeletePost(original); err != nil {
			return err
		}
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeletePost(c.Param("slug")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	p, err := a.adminPage()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(p, posts, msg, CsrfToken(c)))
}
