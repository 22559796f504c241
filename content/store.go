package content

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
)

// Directory layout of a content tree.
const (
	ConfigDir   = "_config"
	PagesDir    = "pages"
	BlogDir     = "blog"
	ProjectsDir = "projects"
	ResumeDir   = "resume"
)

// Store reads documents from a content tree. It holds no mutable state and
// is safe for concurrent use; every call goes back to the filesystem.
type Store struct {
	fsys fs.FS
}

// New returns a Store rooted at the directory dir.
func New(dir string) *Store {
	return &Store{fsys: os.DirFS(dir)}
}

// NewFS returns a Store reading from fsys.
func NewFS(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

func (s *Store) loadSingleton(kind Kind, dir, stem string) (RawDocument, error) {
	name, err := s.resolve(kind, dir, stem)
	if err != nil {
		return RawDocument{}, err
	}
	return s.Load(name)
}

// SiteConfig loads _config/site.
func (s *Store) SiteConfig() (SiteConfig, error) {
	doc, err := s.loadSingleton(KindSite, ConfigDir, "site")
	if err != nil {
		return SiteConfig{}, err
	}
	return ValidateSiteConfig(doc.Meta)
}

// SiteProfile loads _config/site together with its trimmed body.
func (s *Store) SiteProfile() (SiteProfile, error) {
	doc, err := s.loadSingleton(KindSite, ConfigDir, "site")
	if err != nil {
		return SiteProfile{}, err
	}
	cfg, err := ValidateSiteConfig(doc.Meta)
	if err != nil {
		return SiteProfile{}, err
	}
	return SiteProfile{Config: cfg, Summary: strings.TrimSpace(doc.Body)}, nil
}

// Navigation loads _config/navigation.
func (s *Store) Navigation() ([]NavItem, error) {
	doc, err := s.loadSingleton(KindNavigation, ConfigDir, "navigation")
	if err != nil {
		return nil, err
	}
	return ValidateNavigation(doc.Meta)
}

// Social loads _config/social.
func (s *Store) Social() ([]SocialProfile, error) {
	doc, err := s.loadSingleton(KindSocial, ConfigDir, "social")
	if err != nil {
		return nil, err
	}
	return ValidateSocial(doc.Meta)
}

// SEODefaults loads _config/seo.
func (s *Store) SEODefaults() (SEODefaults, error) {
	doc, err := s.loadSingleton(KindSEO, ConfigDir, "seo")
	if err != nil {
		return SEODefaults{}, err
	}
	return ValidateSEODefaults(doc.Meta)
}

// Page loads pages/<slug>.
func (s *Store) Page(slug string) (Document[PageMeta], error) {
	name, err := s.resolve(KindPage, PagesDir, slug)
	if err != nil {
		return Document[PageMeta]{}, err
	}
	doc, err := s.Load(name)
	if err != nil {
		return Document[PageMeta]{}, err
	}
	meta, err := validatePage(slug, doc.Meta)
	if err != nil {
		return Document[PageMeta]{}, err
	}
	return Document[PageMeta]{Path: doc.Path, Meta: meta, Body: doc.Body}, nil
}

// PageSlugs lists the slugs of every static page.
func (s *Store) PageSlugs() ([]string, error) {
	return s.listSlugs(KindPage, PagesDir)
}

// ResumeMetadata loads resume/resume.metadata.
func (s *Store) ResumeMetadata() (ResumeMetadata, error) {
	doc, err := s.loadSingleton(KindResume, ResumeDir, "resume.metadata")
	if err != nil {
		return ResumeMetadata{}, err
	}
	return ValidateResumeMetadata(doc.Meta)
}

// Resume loads resume/resume, whose metadata has the page shape.
func (s *Store) Resume() (Document[PageMeta], error) {
	doc, err := s.loadSingleton(KindPage, ResumeDir, "resume")
	if err != nil {
		return Document[PageMeta]{}, err
	}
	meta, err := validatePage("resume", doc.Meta)
	if err != nil {
		return Document[PageMeta]{}, err
	}
	return Document[PageMeta]{Path: doc.Path, Meta: meta, Body: doc.Body}, nil
}

// BlogSlugs lists the slugs of every blog post, sorted.
func (s *Store) BlogSlugs() ([]string, error) {
	return s.listSlugs(KindBlogPost, BlogDir)
}

// ProjectSlugs lists the slugs of every project, sorted.
func (s *Store) ProjectSlugs() ([]string, error) {
	return s.listSlugs(KindProject, ProjectsDir)
}

// BlogPost loads blog/<slug>. The slug field of the document must match its
// filename.
func (s *Store) BlogPost(slug string) (Document[BlogPostMeta], error) {
	name, err := s.resolve(KindBlogPost, BlogDir, slug)
	if err != nil {
		return Document[BlogPostMeta]{}, err
	}
	doc, err := s.Load(name)
	if err != nil {
		return Document[BlogPostMeta]{}, err
	}
	meta, err := validateBlogPost(slug, doc.Meta)
	if err != nil {
		return Document[BlogPostMeta]{}, err
	}
	if meta.Slug != slug {
		return Document[BlogPostMeta]{}, slugMismatch(KindBlogPost, slug, meta.Slug)
	}
	return Document[BlogPostMeta]{Path: doc.Path, Meta: meta, Body: doc.Body}, nil
}

// Project loads projects/<slug>. The slug field of the document must match
// its filename.
func (s *Store) Project(slug string) (Document[ProjectMeta], error) {
	name, err := s.resolve(KindProject, ProjectsDir, slug)
	if err != nil {
		return Document[ProjectMeta]{}, err
	}
	doc, err := s.Load(name)
	if err != nil {
		return Document[ProjectMeta]{}, err
	}
	meta, err := validateProject(slug, doc.Meta)
	if err != nil {
		return Document[ProjectMeta]{}, err
	}
	if meta.Slug != slug {
		return Document[ProjectMeta]{}, slugMismatch(KindProject, slug, meta.Slug)
	}
	return Document[ProjectMeta]{Path: doc.Path, Meta: meta, Body: doc.Body}, nil
}

func slugMismatch(kind Kind, filename, field string) error {
	return &ValidationError{
		Kind:   kind,
		Name:   filename,
		Field:  "slug",
		Reason: fmt.Sprintf("must match the filename, got %q", field),
	}
}

// BlogPosts loads every blog post, newest first. One invalid post fails the
// whole call. Posts with unparseable dates sort last; ties order by slug.
func (s *Store) BlogPosts() ([]Document[BlogPostMeta], error) {
	slugs, err := s.BlogSlugs()
	if err != nil {
		return nil, err
	}
	posts := make([]Document[BlogPostMeta], 0, len(slugs))
	for _, slug := range slugs {
		post, err := s.BlogPost(slug)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	SortBlogPosts(posts)
	return posts, nil
}

// Projects loads every project, featured first and newest first within each
// group. One invalid project fails the whole call.
func (s *Store) Projects() ([]Document[ProjectMeta], error) {
	slugs, err := s.ProjectSlugs()
	if err != nil {
		return nil, err
	}
	projects := make([]Document[ProjectMeta], 0, len(slugs))
	for _, slug := range slugs {
		project, err := s.Project(slug)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	SortProjects(projects)
	return projects, nil
}

// SortBlogPosts orders posts by descending date, then ascending slug.
func SortBlogPosts(posts []Document[BlogPostMeta]) {
	slices.SortStableFunc(posts, func(a, b Document[BlogPostMeta]) int {
		if c := SortDate(b.Meta.Date).Compare(SortDate(a.Meta.Date)); c != 0 {
			return c
		}
		return cmp.Compare(a.Meta.Slug, b.Meta.Slug)
	})
}

// SortProjects orders featured projects first, then by descending date, then
// ascending slug.
func SortProjects(projects []Document[ProjectMeta]) {
	slices.SortStableFunc(projects, func(a, b Document[ProjectMeta]) int {
		if a.Meta.Featured != b.Meta.Featured {
			if a.Meta.Featured {
				return -1
			}
			return 1
		}
		if c := SortDate(b.Meta.Date).Compare(SortDate(a.Meta.Date)); c != 0 {
			return c
		}
		return cmp.Compare(a.Meta.Slug, b.Meta.Slug)
	})
}

// FeaturedProjects returns the featured subset of projects, keeping order.
func FeaturedProjects(projects []Document[ProjectMeta]) []Document[ProjectMeta] {
	var out []Document[ProjectMeta]
	for _, p := range projects {
		if p.Meta.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Tags returns the sorted, deduplicated, lowercased tags of posts.
func Tags(posts []Document[BlogPostMeta]) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Meta.Tags {
			if t = NormalizeTag(t); t != "" {
				set[t] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

// FilterByTag returns the posts carrying tag, compared case-insensitively.
// An empty tag returns posts unchanged.
func FilterByTag(posts []Document[BlogPostMeta], tag string) []Document[BlogPostMeta] {
	tag = NormalizeTag(tag)
	if tag == "" {
		return posts
	}
	var out []Document[BlogPostMeta]
	for _, p := range posts {
		for _, t := range p.Meta.Tags {
			if NormalizeTag(t) == tag {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// NormalizeTag folds a tag to the form Tags returns.
func NormalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// Check loads and validates every document in the tree and returns all
// failures joined, or nil. Unlike the collection accessors it keeps going
// after the first bad document so one run reports every defect.
func (s *Store) Check() error {
	var errs []error
	record := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	_, err := s.SiteConfig()
	record(err)
	_, err = s.Navigation()
	record(err)
	_, err = s.Social()
	record(err)
	_, err = s.SEODefaults()
	record(err)
	_, err = s.ResumeMetadata()
	record(err)
	_, err = s.Resume()
	record(err)

	if slugs, err := s.PageSlugs(); err != nil {
		record(err)
	} else {
		for _, slug := range slugs {
			_, err := s.Page(slug)
			record(err)
		}
	}
	if slugs, err := s.BlogSlugs(); err != nil {
		record(err)
	} else {
		for _, slug := range slugs {
			_, err := s.BlogPost(slug)
			record(err)
		}
	}
	if slugs, err := s.ProjectSlugs(); err != nil {
		record(err)
	} else {
		for _, slug := range slugs {
			_, err := s.Project(slug)
			record(err)
		}
	}
	return errors.Join(errs...)
}
