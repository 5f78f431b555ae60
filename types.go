package folio

// BlogPost is the core content type stored in SQLite and rendered by templates.
type BlogPost struct {
	Title     string
	Date      string
	Tags      []string
	Summary   string
	Link      string
	Slug      string
	Content   string
	Thumbnail string // public path of the sidebar thumbnail, may be empty
	Published bool
}

// Image is an uploaded picture and its sidebar thumbnail.
type Image struct {
	Filename      string
	ThumbFilename string
	OriginalName  string
	Width         int
	Height        int
	Size          int
	UploadedAt    string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// Page is the data every full-page view receives besides its own content.
type Page struct {
	Site   SiteConfig
	Meta   PageMeta
	Recent []BlogPost
	Year   int
}

// SocialLink is one entry of the footer's social list.
type SocialLink struct {
	Name string // "Twitter", "LinkedIn", "GitHub"
	URL  string
}
