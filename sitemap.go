package folio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

// staticRoutes are the fixed pages listed in the sitemap.
var staticRoutes = []string{"/", "/about/", "/projects/", "/blog/", "/contact/", "/resume/"}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// buildSitemap lists the static routes, every blog post and every project.
// Slugs come from directory listings, so one malformed document does not
// drop the whole sitemap.
func (a *App) buildSitemap() (sitemapURLSet, error) {
	seo, err := a.Store.SEODefaults()
	if err != nil {
		return sitemapURLSet{}, err
	}
	blogSlugs, err := a.Store.BlogSlugs()
	if err != nil {
		return sitemapURLSet{}, err
	}
	projectSlugs, err := a.Store.ProjectSlugs()
	if err != nil {
		return sitemapURLSet{}, err
	}

	urls := make([]sitemapURL, 0, len(staticRoutes)+len(blogSlugs)+len(projectSlugs))
	for _, r := range staticRoutes {
		urls = append(urls, sitemapURL{Loc: AbsoluteURL(seo.SiteURL, r)})
	}
	for _, slug := range blogSlugs {
		u := sitemapURL{Loc: BuildURL(seo.SiteURL, "blog", slug)}
		if post, err := a.Store.BlogPost(slug); err == nil {
			u.LastMod = lastMod(post.Meta.Date)
		}
		urls = append(urls, u)
	}
	for _, slug := range projectSlugs {
		u := sitemapURL{Loc: BuildURL(seo.SiteURL, "projects", slug)}
		if project, err := a.Store.Project(slug); err == nil {
			u.LastMod = lastMod(project.Meta.Date)
		}
		urls = append(urls, u)
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}, nil
}

func lastMod(date string) string {
	if t, ok := content.ParseDate(date); ok {
		return t.Format("2006-01-02")
	}
	return ""
}

func (a *App) renderSitemap(c echo.Context) error {
	sitemap, err := a.buildSitemap()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
