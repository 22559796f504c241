// Package content loads and validates the flat-file content tree of a folio
// site: singleton configuration documents, static pages, blog posts,
// projects and the résumé.
//
// Every accessor is a pure function of the filesystem: documents are read and
// validated on each call and nothing is cached.
package content

// Kind identifies a document kind. Each kind has exactly one validator.
type Kind string

const (
	KindPage       Kind = "page"
	KindBlogPost   Kind = "blog post"
	KindProject    Kind = "project"
	KindSite       Kind = "site config"
	KindNavigation Kind = "navigation config"
	KindSocial     Kind = "social config"
	KindSEO        Kind = "seo config"
	KindResume     Kind = "resume metadata"
)

// RawDocument is a loaded but unvalidated document.
type RawDocument struct {
	Path string
	Meta map[string]any
	Body string
}

// Document is a validated document: typed metadata plus the unrendered body.
type Document[T any] struct {
	Path string
	Meta T
	Body string
}

// PageMeta is the metadata of a static page and of the résumé body document.
type PageMeta struct {
	Title       string
	Description string
}

// BlogPostMeta is the metadata of a blog post.
type BlogPostMeta struct {
	Title        string
	Description  string
	Slug         string
	Date         string
	ReadingTime  string
	Tags         []string
	CanonicalURL string // set when the post points at an external publication
	OGImage      string
}

// External reports whether the post is a pointer to content published elsewhere.
func (m BlogPostMeta) External() bool {
	return m.CanonicalURL != ""
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

// ProjectLinks holds the optional outbound links of a project.
type ProjectLinks struct {
	Repo string
	Demo string
}

// ProjectMeta is the metadata of a project.
type ProjectMeta struct {
	Title       string
	Description string
	Slug        string
	Date        string
	Featured    bool
	Status      ProjectStatus // empty when unset
	Stack       []string
	Links       *ProjectLinks // nil when the document has no links
	Image       string
}

// SiteConfig is the singleton site identity document.
type SiteConfig struct {
	SiteName      string
	Tagline       string
	Headline      string
	Pronouns      string
	Company       string
	Location      string
	Email         string
	AvatarImage   string
	Affiliation   string
	GithubRepoURL string
}

// SiteProfile is the site config together with the trimmed body of its
// document, used as the author summary on the home page.
type SiteProfile struct {
	Config  SiteConfig
	Summary string
}

// NavItem is one entry of the navigation config.
type NavItem struct {
	Label string
	Href  string
}

// SocialIcon names one of the fixed set of social icons.
type SocialIcon string

const (
	IconGithub   SocialIcon = "github"
	IconLinkedIn SocialIcon = "linkedin"
	IconTwitter  SocialIcon = "twitter"
	IconMedium   SocialIcon = "medium"
	IconMail     SocialIcon = "mail"
	IconLink     SocialIcon = "link"
)

var socialIcons = map[SocialIcon]struct{}{
	IconGithub:   {},
	IconLinkedIn: {},
	IconTwitter:  {},
	IconMedium:   {},
	IconMail:     {},
	IconLink:     {},
}

// SocialProfile is one entry of the social config.
type SocialProfile struct {
	Label string
	Href  string
	Icon  SocialIcon
}

// SEODefaults is the singleton SEO defaults document.
type SEODefaults struct {
	DefaultTitle       string
	DefaultDescription string
	DefaultOGImage     string
	SiteURL            string
	TwitterHandle      string
}

// ResumeDisplay selects how the résumé page is presented.
type ResumeDisplay string

const (
	ResumeDisplayMDX      ResumeDisplay = "mdx"
	ResumeDisplayExternal ResumeDisplay = "external"
)

// ResumeMetadata is the singleton résumé metadata document.
type ResumeMetadata struct {
	Title       string
	PDFPath     string
	LastUpdated string
	DisplayAs   ResumeDisplay // empty when unset
}
