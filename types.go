package folio

import "github.com/eringen/folio/content"

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // absolute og:image
	Twitter     string // twitter:creator handle, may be empty
}

// Layout is the site chrome shared by every page: identity, navigation,
// social links and the page's own metadata.
type Layout struct {
	Site   content.SiteConfig
	Nav    []content.NavItem
	Social []content.SocialProfile
	SEO    content.SEODefaults
	Meta   PageMeta
	Path   string // request path, for marking the active nav item
}

// HomeData is passed to ViewFuncs.Home.
type HomeData struct {
	Layout
	Profile  content.SiteProfile
	Posts    []content.Document[content.BlogPostMeta]
	Featured []content.Document[content.ProjectMeta]
}

// PageData is passed to ViewFuncs.Page.
type PageData struct {
	Layout
	Page content.Document[content.PageMeta]
}

// BlogListData is passed to ViewFuncs.BlogList.
type BlogListData struct {
	Layout
	Posts     []content.Document[content.BlogPostMeta]
	Tags      []string
	ActiveTag string
}

// PostData is passed to ViewFuncs.Post.
type PostData struct {
	Layout
	Post    content.Document[content.BlogPostMeta]
	Related []content.Document[content.BlogPostMeta]
	Source  SourceKind // empty unless the post has a canonical URL
	Share   ShareLinks
	JSONLD  string
}

// ProjectListData is passed to ViewFuncs.Projects.
type ProjectListData struct {
	Layout
	Projects []content.Document[content.ProjectMeta]
}

// ProjectData is passed to ViewFuncs.Project.
type ProjectData struct {
	Layout
	Project content.Document[content.ProjectMeta]
}

// ResumeData is passed to ViewFuncs.Resume.
type ResumeData struct {
	Layout
	Resume   content.Document[content.PageMeta]
	Metadata content.ResumeMetadata
}
