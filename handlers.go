package folio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ibaslogic/folio/slug"
)

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	meta := PageMeta{URL: BuildURL(a.Config.URL), JSONLD: WebsiteJsonLD(a.Config)}
	if tag != "" {
		meta = a.tagMeta([]string{tag})
	}
	return a.renderListing(c, meta, posts, tag)
}

// handleTag serves /tags/:tag/. The path carries the tag's slug; every
// stored tag with that slug contributes to the listing.
func (a *App) handleTag(c echo.Context) error {
	posts, matched, err := a.Cache.ListPostsByTagSlug(c.Param("tag"))
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return echo.ErrNotFound
	}
	return a.renderListing(c, a.tagMeta(matched), posts, matched[0])
}

// tagMeta describes the listing page shared by tags, which all have the
// same slug.
func (a *App) tagMeta(tags []string) PageMeta {
	return PageMeta{
		Title: "#" + strings.Join(tags, ", #") + " | " + a.Config.Name,
		URL:   BuildURL(a.Config.URL, TagLink(tags[0])),
	}
}

func (a *App) renderListing(c echo.Context, meta PageMeta, posts []BlogPost, activeTag string) error {
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	p, err := a.page(meta, "")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(p, posts, activeTag, tags))
}

func (a *App) handlePost(c echo.Context) error {
	param := c.Param("slug")
	canonical := slug.Make(param)
	if canonical == "" {
		return echo.ErrNotFound
	}
	if canonical != param {
		return c.Redirect(http.StatusMovedPermanently, PostLink(canonical))
	}
	post, err := a.Cache.GetPost(canonical)
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	p, err := a.page(a.postMeta(post), post.Slug)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(p, post, FilterRelatedPosts(post, posts)))
}

func (a *App) postMeta(post BlogPost) PageMeta {
	return PageMeta{
		Title:       post.Title + " | " + a.Config.Name,
		Description: post.Summary,
		URL:         BuildURL(a.Config.URL, post.Link),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(post, a.Config),
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts, tags)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, a.robotsTxt())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	switch {
	case code == http.StatusNotFound:
		p, perr := a.page(PageMeta{Title: "Not found | " + a.Config.Name}, "")
		if perr != nil {
			c.Logger().Errorf("render not found: %v", perr)
		}
		p.Site, p.Year = a.Config, a.now().Year()
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(p))
	case code >= 500:
		c.Logger().Errorf("server error: %v", err)
		p := Page{Site: a.Config, Meta: PageMeta{Title: a.Config.Name}, Year: a.now().Year()}
		_ = RenderStatus(c, code, a.Views.ServerError(p))
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
