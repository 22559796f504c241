package folio

import (
	"encoding/json"
	"testing"

	"github.com/eringen/folio/content"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog", "hello"}, "https://example.com/blog/hello/"},
		{"https://example.com/", []string{"projects", "x"}, "https://example.com/projects/x/"},
		{"https://example.com/sub", []string{"blog"}, "https://example.com/sub/blog/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		site, path, expected string
	}{
		{"https://example.com", "/og.png", "https://example.com/og.png"},
		{"https://example.com/", "og.png", "https://example.com/og.png"},
		{"https://example.com", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"", "/about/", "/about/"},
	}
	for _, tt := range tests {
		if got := AbsoluteURL(tt.site, tt.path); got != tt.expected {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", tt.site, tt.path, got, tt.expected)
		}
	}
}

func TestNewPageMetaDefaults(t *testing.T) {
	seo := content.SEODefaults{
		DefaultTitle:       "Example",
		DefaultDescription: "A site",
		DefaultOGImage:     "/public/og.png",
		SiteURL:            "https://example.com",
		TwitterHandle:      "@example",
	}
	m := NewPageMeta(seo, "", "", "/", "")
	if m.Title != "Example" || m.Description != "A site" {
		t.Errorf("defaults not applied: %+v", m)
	}
	if m.Image != "https://example.com/public/og.png" {
		t.Errorf("image = %q", m.Image)
	}
	if m.Twitter != "@example" || m.OGType != "website" {
		t.Errorf("unexpected meta: %+v", m)
	}

	m = NewPageMeta(seo, "About", "Me", "/about/", "https://cdn.example.com/me.png")
	if m.Title != "About" || m.Description != "Me" || m.URL != "https://example.com/about/" {
		t.Errorf("overrides not applied: %+v", m)
	}
	if m.Image != "https://cdn.example.com/me.png" {
		t.Errorf("image = %q", m.Image)
	}
}

func TestSourceOf(t *testing.T) {
	tests := []struct {
		url      string
		expected SourceKind
	}{
		{"", ""},
		{"https://medium.com/@me/post", SourceMedium},
		{"https://blog.medium.com/post", SourceMedium},
		{"https://me.substack.com/p/post", SourceSubstack},
		{"https://www.linkedin.com/pulse/post", SourceLinkedIn},
		{"https://x.com/me/status/1", SourceX},
		{"https://twitter.com/me/status/1", SourceX},
		{"https://box.com/file", SourceExternal},
		{"https://dev.to/me/post", SourceExternal},
	}
	for _, tt := range tests {
		if got := SourceOf(tt.url); got != tt.expected {
			t.Errorf("SourceOf(%q) = %q, want %q", tt.url, got, tt.expected)
		}
	}
}

func TestNewShareLinks(t *testing.T) {
	s := NewShareLinks("Hello & bye", "https://example.com/blog/hello/")
	if s.X != "https://twitter.com/intent/tweet?text=Hello+%26+bye&url=https%3A%2F%2Fexample.com%2Fblog%2Fhello%2F" {
		t.Errorf("X = %q", s.X)
	}
	if s.LinkedIn != "https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fexample.com%2Fblog%2Fhello%2F" {
		t.Errorf("LinkedIn = %q", s.LinkedIn)
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	doc := func(slug string, tags ...string) content.Document[content.BlogPostMeta] {
		return content.Document[content.BlogPostMeta]{Meta: content.BlogPostMeta{Slug: slug, Tags: tags}}
	}
	current := doc("a", "Go", "web")
	posts := []content.Document[content.BlogPostMeta]{
		current,
		doc("b", "go"),
		doc("c", "ops"),
		doc("d", " WEB "),
	}
	related := FilterRelatedPosts(current, posts)
	if len(related) != 2 || related[0].Meta.Slug != "b" || related[1].Meta.Slug != "d" {
		t.Errorf("FilterRelatedPosts = %+v", related)
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	post := content.BlogPostMeta{
		Title:   "Hello",
		Slug:    "hello",
		Date:    "March 5, 2024",
		Tags:    []string{"go", "web"},
		OGImage: "/public/hello.png",
	}
	site := content.SiteConfig{SiteName: "Example"}
	seo := content.SEODefaults{SiteURL: "https://example.com"}

	var data map[string]any
	if err := json.Unmarshal([]byte(BlogPostingJsonLD(post, site, seo)), &data); err != nil {
		t.Fatal(err)
	}
	if data["datePublished"] != "2024-03-05" {
		t.Errorf("datePublished = %v", data["datePublished"])
	}
	if data["url"] != "https://example.com/blog/hello/" {
		t.Errorf("url = %v", data["url"])
	}
	if data["image"] != "https://example.com/public/hello.png" {
		t.Errorf("image = %v", data["image"])
	}
	if data["keywords"] != "go, web" {
		t.Errorf("keywords = %v", data["keywords"])
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	var data map[string]any
	got := WebsiteJsonLD(content.SiteConfig{SiteName: "Example"}, content.SEODefaults{SiteURL: "https://example.com"})
	if err := json.Unmarshal([]byte(got), &data); err != nil {
		t.Fatal(err)
	}
	if data["@type"] != "WebSite" || data["name"] != "Example" {
		t.Errorf("unexpected JSON-LD: %s", got)
	}
}
