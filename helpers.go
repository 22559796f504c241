package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/folio/content"
)

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

// AbsoluteURL resolves a site path against siteURL. Values that are already
// absolute http(s) URLs are returned unchanged; an empty siteURL leaves the
// path relative.
func AbsoluteURL(siteURL, p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(siteURL, "/") + p
}

// NewPageMeta builds page metadata, falling back to the SEO defaults for an
// empty title, description or image.
func NewPageMeta(seo content.SEODefaults, title, description, pagePath, image string) PageMeta {
	if title == "" {
		title = seo.DefaultTitle
	}
	if description == "" {
		description = seo.DefaultDescription
	}
	if image == "" {
		image = seo.DefaultOGImage
	}
	return PageMeta{
		Title:       title,
		Description: description,
		URL:         AbsoluteURL(seo.SiteURL, pagePath),
		OGType:      "website",
		Image:       AbsoluteURL(seo.SiteURL, image),
		Twitter:     seo.TwitterHandle,
	}
}

// SourceKind names the publication a cross-posted blog post points at.
type SourceKind string

const (
	SourceMedium   SourceKind = "Medium"
	SourceSubstack SourceKind = "Substack"
	SourceLinkedIn SourceKind = "LinkedIn"
	SourceX        SourceKind = "X"
	SourceExternal SourceKind = "External"
)

// SourceOf classifies a canonical URL by host. An empty URL yields "".
func SourceOf(canonicalURL string) SourceKind {
	if canonicalURL == "" {
		return ""
	}
	host := strings.ToLower(canonicalURL)
	if u, err := url.Parse(canonicalURL); err == nil && u.Host != "" {
		host = strings.ToLower(u.Hostname())
	}
	switch {
	case hostIs(host, "medium.com"):
		return SourceMedium
	case hostIs(host, "substack.com"):
		return SourceSubstack
	case hostIs(host, "linkedin.com"):
		return SourceLinkedIn
	case hostIs(host, "twitter.com"), hostIs(host, "x.com"):
		return SourceX
	default:
		return SourceExternal
	}
}

func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// ShareLinks are prefilled share URLs for a page.
type ShareLinks struct {
	X        string
	LinkedIn string
}

// NewShareLinks builds share URLs for the page at pageURL.
func NewShareLinks(title, pageURL string) ShareLinks {
	x := url.Values{}
	x.Set("text", title)
	x.Set("url", pageURL)
	li := url.Values{}
	li.Set("url", pageURL)
	return ShareLinks{
		X:        "https://twitter.com/intent/tweet?" + x.Encode(),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?" + li.Encode(),
	}
}

// FilterRelatedPosts finds posts that share at least one tag with current.
func FilterRelatedPosts(current content.Document[content.BlogPostMeta], posts []content.Document[content.BlogPostMeta]) []content.Document[content.BlogPostMeta] {
	tagSet := make(map[string]struct{})
	for _, t := range current.Meta.Tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []content.Document[content.BlogPostMeta]
	for _, p := range posts {
		if p.Meta.Slug == current.Meta.Slug {
			continue
		}
		for _, t := range p.Meta.Tags {
			tag := strings.ToLower(strings.TrimSpace(t))
			if _, ok := tagSet[tag]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// PostURL returns the public URL of a post: its canonical URL when it is
// published elsewhere, otherwise its page on this site.
func PostURL(siteURL string, post content.BlogPostMeta) string {
	if post.External() {
		return post.CanonicalURL
	}
	return BuildURL(siteURL, "blog", post.Slug)
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema.
func WebsiteJsonLD(site content.SiteConfig, seo content.SEODefaults) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        site.SiteName,
		"url":         BuildURL(seo.SiteURL),
		"description": seo.DefaultDescription,
		"author": map[string]string{
			"@type": "Person",
			"name":  site.SiteName,
		},
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post content.BlogPostMeta, site content.SiteConfig, seo content.SEODefaults) string {
	postURL := BuildURL(seo.SiteURL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.Date,
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   PostURL(seo.SiteURL, post),
		},
		"author": map[string]string{
			"@type": "Person",
			"name":  site.SiteName,
		},
	}
	if t, ok := content.ParseDate(post.Date); ok {
		data["datePublished"] = t.Format("2006-01-02")
	}
	if post.OGImage != "" {
		data["image"] = AbsoluteURL(seo.SiteURL, post.OGImage)
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
