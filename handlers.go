package folio

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/content"
)

// layout loads the site chrome. Every request re-reads the singleton
// documents, so edits show up without a restart.
func (a *App) layout(c echo.Context, title, description, image string) (Layout, error) {
	site, err := a.Store.SiteConfig()
	if err != nil {
		return Layout{}, err
	}
	nav, err := a.Store.Navigation()
	if err != nil {
		return Layout{}, err
	}
	social, err := a.Store.Social()
	if err != nil {
		return Layout{}, err
	}
	seo, err := a.Store.SEODefaults()
	if err != nil {
		return Layout{}, err
	}
	p := c.Request().URL.Path
	return Layout{
		Site:   site,
		Nav:    nav,
		Social: social,
		SEO:    seo,
		Meta:   NewPageMeta(seo, title, description, p, image),
		Path:   p,
	}, nil
}

func (a *App) handleHome(c echo.Context) error {
	l, err := a.layout(c, "", "", "")
	if err != nil {
		return err
	}
	profile, err := a.Store.SiteProfile()
	if err != nil {
		return err
	}
	posts, err := a.Store.BlogPosts()
	if err != nil {
		return err
	}
	if len(posts) > a.Config.RecentPosts {
		posts = posts[:a.Config.RecentPosts]
	}
	projects, err := a.Store.Projects()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(HomeData{
		Layout:   l,
		Profile:  profile,
		Posts:    posts,
		Featured: content.FeaturedProjects(projects),
	}))
}

func (a *App) handlePage(slug string) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := a.Store.Page(slug)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				return a.renderNotFound(c)
			}
			return err
		}
		l, err := a.layout(c, page.Meta.Title, page.Meta.Description, "")
		if err != nil {
			return err
		}
		return Render(c, a.Views.Page(PageData{Layout: l, Page: page}))
	}
}

func (a *App) handleBlogList(c echo.Context) error {
	tag := content.NormalizeTag(c.QueryParam("tag"))
	posts, err := a.Store.BlogPosts()
	if err != nil {
		return err
	}
	l, err := a.layout(c, "Blog", "", "")
	if err != nil {
		return err
	}
	return Render(c, a.Views.BlogList(BlogListData{
		Layout:    l,
		Posts:     content.FilterByTag(posts, tag),
		Tags:      content.Tags(posts),
		ActiveTag: tag,
	}))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Store.BlogPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return a.renderNotFound(c)
		}
		return err
	}
	posts, err := a.Store.BlogPosts()
	if err != nil {
		return err
	}
	l, err := a.layout(c, post.Meta.Title, post.Meta.Description, post.Meta.OGImage)
	if err != nil {
		return err
	}
	l.Meta.OGType = "article"
	l.Meta.URL = BuildURL(l.SEO.SiteURL, "blog", post.Meta.Slug)
	return Render(c, a.Views.Post(PostData{
		Layout:  l,
		Post:    post,
		Related: FilterRelatedPosts(post, posts),
		Source:  SourceOf(post.Meta.CanonicalURL),
		Share:   NewShareLinks(post.Meta.Title, l.Meta.URL),
		JSONLD:  BlogPostingJsonLD(post.Meta, l.Site, l.SEO),
	}))
}

func (a *App) handleProjects(c echo.Context) error {
	projects, err := a.Store.Projects()
	if err != nil {
		return err
	}
	l, err := a.layout(c, "Projects", "", "")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Projects(ProjectListData{Layout: l, Projects: projects}))
}

func (a *App) handleProject(c echo.Context) error {
	project, err := a.Store.Project(c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return a.renderNotFound(c)
		}
		return err
	}
	l, err := a.layout(c, project.Meta.Title, project.Meta.Description, project.Meta.Image)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Project(ProjectData{Layout: l, Project: project}))
}

func (a *App) handleResume(c echo.Context) error {
	meta, err := a.Store.ResumeMetadata()
	if err != nil {
		return err
	}
	if meta.DisplayAs == content.ResumeDisplayExternal {
		return c.Redirect(http.StatusFound, meta.PDFPath)
	}
	resume, err := a.Store.Resume()
	if err != nil {
		return err
	}
	l, err := a.layout(c, resume.Meta.Title, resume.Meta.Description, "")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Resume(ResumeData{Layout: l, Resume: resume, Metadata: meta}))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Store.BlogPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

// handleRobots serves robots.txt from the static dir when the site ships
// one, and a permissive default pointing at the sitemap otherwise.
func (a *App) handleRobots(c echo.Context) error {
	p := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(p); err == nil {
		return c.File(p)
	}
	seo, err := a.Store.SEODefaults()
	if err != nil {
		return err
	}
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", AbsoluteURL(seo.SiteURL, "/sitemap.xml"))
	return c.String(http.StatusOK, body)
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// renderNotFound renders the NotFound view. The chrome is best effort: if the
// singletons themselves fail to load the page renders without them.
func (a *App) renderNotFound(c echo.Context) error {
	l, err := a.layout(c, "Not found", "", "")
	if err != nil {
		a.Logger.Warn("not found page without layout", zap.Error(err))
	}
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(l))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Bool("content_defect", content.IsValidation(err) || content.IsParse(err)),
		)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
