// Package views provides the default templates of a folio site. They are
// plain html/template files wrapped as templ components, so a site can swap
// any of them for its own templ components one field at a time.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"home", "page", "blog", "post", "projects", "project", "resume", "notfound", "error"}

// Templates holds one parsed template set per page, each combined with the
// shared layout.
type Templates struct {
	sets map[string]*template.Template
}

// Parse parses the embedded templates.
func Parse() (*Templates, error) {
	return ParseFS(templateFS, "templates")
}

// ParseFS parses layout.html and one <page>.html per page from dir in fsys.
func ParseFS(fsys fs.FS, dir string) (*Templates, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, dir+"/layout.html")
	if err != nil {
		return nil, fmt.Errorf("views: parse layout: %w", err)
	}
	t := &Templates{sets: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		set, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := set.ParseFS(fsys, dir+"/"+name+".html"); err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		t.sets[name] = set
	}
	return t, nil
}

// Component renders page with data as a templ component.
func (t *Templates) Component(page string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		set, ok := t.sets[page]
		if !ok {
			return fmt.Errorf("views: unknown page %q", page)
		}
		return set.ExecuteTemplate(w, "layout.html", data)
	})
}

// ViewFuncs returns the default view functions backed by t.
func (t *Templates) ViewFuncs() folio.ViewFuncs {
	return folio.ViewFuncs{
		Home:     func(d folio.HomeData) templ.Component { return t.Component("home", d) },
		Page:     func(d folio.PageData) templ.Component { return t.Component("page", d) },
		BlogList: func(d folio.BlogListData) templ.Component { return t.Component("blog", d) },
		Post:     func(d folio.PostData) templ.Component { return t.Component("post", d) },
		Projects: func(d folio.ProjectListData) templ.Component { return t.Component("projects", d) },
		Project:  func(d folio.ProjectData) templ.Component { return t.Component("project", d) },
		Resume:   func(d folio.ResumeData) templ.Component { return t.Component("resume", d) },
		NotFound: func(l folio.Layout) templ.Component { return t.Component("notfound", l) },
		ServerError: func() templ.Component {
			return t.Component("error", folio.Layout{Meta: folio.PageMeta{Title: "Server error"}})
		},
	}
}

// Default returns the view functions for the embedded templates. The
// templates ship with the binary, so a parse failure is a programming error.
func Default() folio.ViewFuncs {
	t, err := Parse()
	if err != nil {
		panic(err)
	}
	return t.ViewFuncs()
}

var funcs = template.FuncMap{
	"formatDate":  content.FormatDate,
	"markdown":    renderMarkdown,
	"pathEscape":  PathEscape,
	"joinTags":    JoinTags,
	"tagClass":    TagClass,
	"navCurrent":  NavCurrent,
	"iconLabel":   IconLabel,
	"jsonLD":      func(s string) template.JS { return template.JS(s) },
	"websiteLD":   func(l folio.Layout) template.JS { return template.JS(folio.WebsiteJsonLD(l.Site, l.SEO)) },
	"absoluteURL": func(l folio.Layout, p string) string { return folio.AbsoluteURL(l.SEO.SiteURL, p) },
}

func renderMarkdown(source string) (template.HTML, error) {
	html, err := markdown.Render(source)
	if err != nil {
		return "", err
	}
	return template.HTML(html), nil
}
