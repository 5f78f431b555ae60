package folio

import (
	"net/url"
	"path"
	"strings"

	"github.com/ibaslogic/folio/slug"
)

// PostLink returns the site-relative path of the post identified by s.
// s may be a stored slug or a raw title; it is always normalized first.
func PostLink(s string) string {
	if sl := slug.Make(s); sl != "" {
		return "/blog/" + sl + "/"
	}
	return "/blog/"
}

// TagLink returns the site-relative listing path for tag.
func TagLink(tag string) string {
	if sl := slug.Make(tag); sl != "" {
		return "/tags/" + sl + "/"
	}
	return "/"
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// SocialLinks lists the author's profiles in footer order, skipping any
// network without a handle.
func SocialLinks(meta SiteMetadata) []SocialLink {
	var links []SocialLink
	add := func(name, prefix, handle string) {
		handle = strings.Trim(strings.TrimSpace(handle), "/@")
		if handle == "" {
			return
		}
		links = append(links, SocialLink{Name: name, URL: prefix + url.PathEscape(handle)})
	}
	add("Twitter", "https://twitter.com/", meta.TwitterHandle)
	add("LinkedIn", "https://www.linkedin.com/in/", meta.LinkedIn)
	add("GitHub", "https://github.com/", meta.GitHub)
	return links
}

// SourceCodeURL points at the site's own repository on GitHub.
func SourceCodeURL(meta SiteMetadata) string {
	user := strings.Trim(strings.TrimSpace(meta.GitHub), "/@")
	repo := strings.Trim(strings.TrimSpace(meta.SourceRepo), "/")
	if user == "" || repo == "" {
		return ""
	}
	return "https://github.com/" + url.PathEscape(user) + "/" + url.PathEscape(repo)
}
