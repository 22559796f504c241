package folio

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
)

func text(format string, args ...any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

func postSlugs(posts []content.Document[content.BlogPostMeta]) string {
	s := make([]string, 0, len(posts))
	for _, p := range posts {
		s = append(s, p.Meta.Slug)
	}
	return strings.Join(s, ",")
}

func projectSlugs(projects []content.Document[content.ProjectMeta]) string {
	s := make([]string, 0, len(projects))
	for _, p := range projects {
		s = append(s, p.Meta.Slug)
	}
	return strings.Join(s, ",")
}

// stubViews renders just enough of each page data to assert on.
func stubViews() ViewFuncs {
	return ViewFuncs{
		Home: func(d HomeData) templ.Component {
			return text("home name=%s summary=%s posts=%s featured=%s",
				d.Site.SiteName, d.Profile.Summary, postSlugs(d.Posts), projectSlugs(d.Featured))
		},
		Page: func(d PageData) templ.Component {
			return text("page title=%s meta=%s url=%s", d.Page.Meta.Title, d.Meta.Title, d.Meta.URL)
		},
		BlogList: func(d BlogListData) templ.Component {
			return text("blog posts=%s tags=%s active=%s", postSlugs(d.Posts), strings.Join(d.Tags, ","), d.ActiveTag)
		},
		Post: func(d PostData) templ.Component {
			shared := strings.Contains(d.Share.LinkedIn, url.QueryEscape(d.Meta.URL))
			return text("post slug=%s related=%s source=%s url=%s og=%s shared=%t",
				d.Post.Meta.Slug, postSlugs(d.Related), d.Source, d.Meta.URL, d.Meta.OGType, shared)
		},
		Projects: func(d ProjectListData) templ.Component {
			return text("projects=%s", projectSlugs(d.Projects))
		},
		Project: func(d ProjectData) templ.Component {
			return text("project slug=%s", d.Project.Meta.Slug)
		},
		Resume: func(d ResumeData) templ.Component {
			return text("resume title=%s pdf=%s", d.Resume.Meta.Title, d.Metadata.PDFPath)
		},
		NotFound: func(l Layout) templ.Component {
			return text("not found site=%s", l.Site.SiteName)
		},
		ServerError: func() templ.Component {
			return text("server error")
		},
	}
}

func md(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

func testTree() fstest.MapFS {
	return fstest.MapFS{
		"_config/site.mdx": md("---\nsiteName: Example\ntagline: Builder\nlocation: Berlin\nemail: me@example.com\navatarImage: /public/avatar.png\n---\nI build things.\n"),
		"_config/navigation.mdx": md("---\nitems:\n  - label: Blog\n    href: /blog/\n---\n"),
		"_config/social.mdx":     md("---\nprofiles:\n  - label: GitHub\n    href: https://github.com/example\n    icon: github\n---\n"),
		"_config/seo.mdx":        md("---\ndefaultTitle: Example\ndefaultDescription: A site\ndefaultOgImage: /public/og.png\nsiteUrl: https://example.com\n---\n"),
		"pages/about.mdx":        md("---\ntitle: About me\n---\nHello.\n"),
		"pages/contact.mdx":      md("---\ntitle: Contact\n---\n"),
		"resume/resume.mdx":      md("---\ntitle: Résumé\n---\nWork.\n"),
		"resume/resume.metadata.mdx": md("---\ntitle: Résumé\npdfPath: /public/resume.pdf\n---\n"),
		"blog/a.mdx": md("---\ntitle: A\nslug: a\ndate: \"2024-01-01\"\ntags: [go, web]\n---\nFirst post body.\n"),
		"blog/b.mdx": md("---\ntitle: B\nslug: b\ndate: \"2023-01-01\"\ntags: [go]\ncanonicalUrl: https://medium.com/@example/b-123\n---\n"),
		"blog/c.mdx": md("---\ntitle: C\nslug: c\ndate: \"2022-01-01\"\ntags: [ops]\n---\n"),
		"projects/old.mdx": md("---\ntitle: Old\nslug: old\ndate: \"2022-01-01\"\nfeatured: true\n---\n"),
		"projects/new.mdx": md("---\ntitle: New\nslug: new\ndate: \"2024-01-01\"\n---\n"),
	}
}

func newTestApp(t *testing.T, fsys fstest.MapFS) *App {
	t.Helper()
	a := New(SiteConfig{RecentPosts: 2}, stubViews(),
		WithStore(content.NewFS(fsys)),
		WithStaticDir(t.TempDir()),
	)
	a.Setup()
	return a
}

func get(t *testing.T, a *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	a := newTestApp(t, testTree())
	rec := get(t, a, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "home name=Example summary=I build things. posts=a,b featured=old", rec.Body.String())
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
}

func TestPages(t *testing.T) {
	a := newTestApp(t, testTree())

	rec := get(t, a, "/about/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "page title=About me meta=About me url=https://example.com/about/", rec.Body.String())

	rec = get(t, a, "/about")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/about/", rec.Header().Get("Location"))
}

func TestBlogList(t *testing.T) {
	a := newTestApp(t, testTree())

	rec := get(t, a, "/blog/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "blog posts=a,b,c tags=go,ops,web active=", rec.Body.String())

	rec = get(t, a, "/blog/?tag=GO")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "blog posts=a,b tags=go,ops,web active=go", rec.Body.String())
}

func TestPost(t *testing.T) {
	a := newTestApp(t, testTree())

	rec := get(t, a, "/blog/a/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "post slug=a related=b source= url=https://example.com/blog/a/ og=article shared=true", rec.Body.String())

	rec = get(t, a, "/blog/b/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "post slug=b related=a source=Medium url=https://example.com/blog/b/ og=article shared=true", rec.Body.String())
}

func TestNilLoggerDiscards(t *testing.T) {
	a := New(SiteConfig{}, stubViews(), WithLogger(nil))
	require.NotNil(t, a.Logger)
	a.Logger.Info("dropped")
}

func TestUnknownSlugsAreNotFound(t *testing.T) {
	a := newTestApp(t, testTree())
	for _, target := range []string{"/blog/missing/", "/projects/missing/", "/nope/"} {
		rec := get(t, a, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "not found site=Example", rec.Body.String(), target)
	}
}

func TestMissingPageIsNotFound(t *testing.T) {
	fsys := testTree()
	delete(fsys, "pages/contact.mdx")
	rec := get(t, newTestApp(t, fsys), "/contact/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjects(t *testing.T) {
	a := newTestApp(t, testTree())

	rec := get(t, a, "/projects/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "projects=old,new", rec.Body.String())

	rec = get(t, a, "/projects/new/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "project slug=new", rec.Body.String())
}

func TestResume(t *testing.T) {
	a := newTestApp(t, testTree())
	rec := get(t, a, "/resume/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "resume title=Résumé pdf=/public/resume.pdf", rec.Body.String())

	fsys := testTree()
	fsys["resume/resume.metadata.mdx"] = md("---\ntitle: Résumé\npdfPath: /public/resume.pdf\ndisplayAs: external\n---\n")
	rec = get(t, newTestApp(t, fsys), "/resume/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/public/resume.pdf", rec.Header().Get("Location"))
}

func TestInvalidContentIsServerError(t *testing.T) {
	fsys := testTree()
	fsys["blog/d.mdx"] = md("---\ntitle: D\nslug: d\n---\n")
	a := newTestApp(t, fsys)

	rec := get(t, a, "/blog/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server error", rec.Body.String())

	// Projects are unaffected by a broken blog post.
	rec = get(t, a, "/projects/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartRefusesBrokenContent(t *testing.T) {
	fsys := testTree()
	delete(fsys, "_config/seo.mdx")
	a := New(SiteConfig{Addr: "127.0.0.1:0"}, stubViews(), WithStore(content.NewFS(fsys)))
	err := a.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestFeed(t *testing.T) {
	a := newTestApp(t, testTree())
	rec := get(t, a, "/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")

	var feed struct {
		Channel struct {
			Title string `xml:"title"`
			Items []struct {
				Title       string `xml:"title"`
				Link        string `xml:"link"`
				Description string `xml:"description"`
				PubDate     string `xml:"pubDate"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Equal(t, "Example", feed.Channel.Title)
	require.Len(t, feed.Channel.Items, 3)
	assert.Equal(t, "https://example.com/blog/a/", feed.Channel.Items[0].Link)
	assert.Equal(t, "First post body.", feed.Channel.Items[0].Description)
	assert.Equal(t, "Mon, 01 Jan 2024 00:00:00 +0000", feed.Channel.Items[0].PubDate)
	assert.Equal(t, "https://medium.com/@example/b-123", feed.Channel.Items[1].Link)
}

func TestSitemap(t *testing.T) {
	a := newTestApp(t, testTree())
	rec := get(t, a, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)

	var set struct {
		URLs []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	locs := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Equal(t, []string{
		"https://example.com/",
		"https://example.com/about/",
		"https://example.com/projects/",
		"https://example.com/blog/",
		"https://example.com/contact/",
		"https://example.com/resume/",
		"https://example.com/blog/a/",
		"https://example.com/blog/b/",
		"https://example.com/blog/c/",
		"https://example.com/projects/new/",
		"https://example.com/projects/old/",
	}, locs)
	assert.Equal(t, "2024-01-01", set.URLs[6].LastMod)
}

func TestRobots(t *testing.T) {
	a := newTestApp(t, testTree())
	rec := get(t, a, "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://example.com/sitemap.xml")
}

func TestHealthAndStylesheet(t *testing.T) {
	a := newTestApp(t, testTree())
	rec := get(t, a, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = get(t, a, "/public/folio.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--ink")
}
