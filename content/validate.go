package content

import (
	"fmt"
	"strings"
	"time"
)

// fields reads typed values out of an untyped metadata mapping and keeps the
// first shape violation it sees. Callers read every field, then check err.
type fields struct {
	kind Kind
	name string
	path string // key prefix for nested mappings, e.g. "links."
	meta map[string]any
	err  *ValidationError
}

func newFields(kind Kind, name string, meta map[string]any) *fields {
	return &fields{kind: kind, name: name, meta: meta}
}

// nested returns a reader over a nested mapping that reports into the same error slot.
func (f *fields) nested(prefix string, meta map[string]any) *fields {
	return &fields{kind: f.kind, name: f.name, path: f.path + prefix, meta: meta, err: f.err}
}

func (f *fields) fail(key, reason string) {
	if f.err == nil {
		f.err = &ValidationError{Kind: f.kind, Name: f.name, Field: f.path + key, Reason: reason}
	}
}

func (f *fields) ok() error {
	if f.err != nil {
		return f.err
	}
	return nil
}

func (f *fields) str(key string) string {
	v, present := f.meta[key]
	if !present {
		f.fail(key, "is required")
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case time.Time:
		f.fail(key, "must be a quoted string, got an unquoted timestamp")
		return ""
	default:
		f.fail(key, fmt.Sprintf("must be a string, got %s", typeName(v)))
		return ""
	}
}

func (f *fields) optStr(key string) string {
	if _, present := f.meta[key]; !present {
		return ""
	}
	return f.str(key)
}

func (f *fields) optBool(key string) bool {
	v, present := f.meta[key]
	if !present {
		return false
	}
	b, isBool := v.(bool)
	if !isBool {
		f.fail(key, fmt.Sprintf("must be a boolean, got %s", typeName(v)))
		return false
	}
	return b
}

func (f *fields) optStrings(key string) []string {
	v, present := f.meta[key]
	if !present {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, isString := item.(string)
			if !isString {
				f.fail(fmt.Sprintf("%s[%d]", key, i), fmt.Sprintf("must be a string, got %s", typeName(item)))
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		f.fail(key, fmt.Sprintf("must be a list of strings, got %s", typeName(v)))
		return nil
	}
}

func (f *fields) enum(key string, allowed ...string) string {
	s := f.str(key)
	if f.err != nil {
		return ""
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	f.fail(key, fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), s))
	return ""
}

func (f *fields) optEnum(key string, allowed ...string) string {
	if _, present := f.meta[key]; !present {
		return ""
	}
	return f.enum(key, allowed...)
}

func (f *fields) optMapping(key string) (map[string]any, bool) {
	v, present := f.meta[key]
	if !present {
		return nil, false
	}
	m, isMap := asMapping(v)
	if !isMap {
		f.fail(key, fmt.Sprintf("must be a mapping, got %s", typeName(v)))
		return nil, false
	}
	return m, true
}

func (f *fields) list(key string) []any {
	v, present := f.meta[key]
	if !present {
		f.fail(key, "is required")
		return nil
	}
	list, isList := v.([]any)
	if !isList {
		f.fail(key, fmt.Sprintf("must be a list, got %s", typeName(v)))
		return nil
	}
	return list
}

func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, isString := k.(string)
			if !isString {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// ValidatePage checks the metadata of a static page.
func ValidatePage(meta map[string]any) (PageMeta, error) {
	return validatePage("", meta)
}

func validatePage(name string, meta map[string]any) (PageMeta, error) {
	f := newFields(KindPage, name, meta)
	page := PageMeta{
		Title:       f.str("title"),
		Description: f.optStr("description"),
	}
	if err := f.ok(); err != nil {
		return PageMeta{}, err
	}
	return page, nil
}

// ValidateBlogPost checks the metadata of a blog post. Errors name the post by
// its slug field when it has one.
func ValidateBlogPost(meta map[string]any) (BlogPostMeta, error) {
	return validateBlogPost(slugOf(meta), meta)
}

func validateBlogPost(name string, meta map[string]any) (BlogPostMeta, error) {
	f := newFields(KindBlogPost, name, meta)
	post := BlogPostMeta{
		Title:        f.str("title"),
		Description:  f.optStr("description"),
		Slug:         f.str("slug"),
		Date:         f.str("date"),
		ReadingTime:  f.optStr("readingTime"),
		Tags:         f.optStrings("tags"),
		CanonicalURL: f.optStr("canonicalUrl"),
		OGImage:      f.optStr("ogImage"),
	}
	if err := f.ok(); err != nil {
		return BlogPostMeta{}, err
	}
	return post, nil
}

// ValidateProject checks the metadata of a project. An absent links mapping
// is valid and leaves Links nil.
func ValidateProject(meta map[string]any) (ProjectMeta, error) {
	return validateProject(slugOf(meta), meta)
}

func validateProject(name string, meta map[string]any) (ProjectMeta, error) {
	f := newFields(KindProject, name, meta)
	project := ProjectMeta{
		Title:       f.str("title"),
		Description: f.optStr("description"),
		Slug:        f.str("slug"),
		Date:        f.str("date"),
		Featured:    f.optBool("featured"),
		Status:      ProjectStatus(f.optEnum("status", string(ProjectActive), string(ProjectArchived))),
		Stack:       f.optStrings("stack"),
		Image:       f.optStr("image"),
	}
	if links, ok := f.optMapping("links"); ok {
		lf := f.nested("links.", links)
		project.Links = &ProjectLinks{
			Repo: lf.optStr("repo"),
			Demo: lf.optStr("demo"),
		}
		f.err = lf.err
	}
	if err := f.ok(); err != nil {
		return ProjectMeta{}, err
	}
	return project, nil
}

// ValidateSiteConfig checks the site config singleton.
func ValidateSiteConfig(meta map[string]any) (SiteConfig, error) {
	f := newFields(KindSite, "site", meta)
	cfg := SiteConfig{
		SiteName:      f.str("siteName"),
		Tagline:       f.str("tagline"),
		Headline:      f.optStr("headline"),
		Pronouns:      f.optStr("pronouns"),
		Company:       f.optStr("company"),
		Location:      f.str("location"),
		Email:         f.str("email"),
		AvatarImage:   f.str("avatarImage"),
		Affiliation:   f.optStr("affiliation"),
		GithubRepoURL: f.optStr("githubRepoUrl"),
	}
	if err := f.ok(); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

// ValidateNavigation checks the navigation singleton, whose entries live
// under the "items" key.
func ValidateNavigation(meta map[string]any) ([]NavItem, error) {
	f := newFields(KindNavigation, "navigation", meta)
	raw := f.list("items")
	items := make([]NavItem, 0, len(raw))
	for i, entry := range raw {
		m, isMap := asMapping(entry)
		if !isMap {
			f.fail(fmt.Sprintf("items[%d]", i), fmt.Sprintf("must be a mapping, got %s", typeName(entry)))
			break
		}
		ef := f.nested(fmt.Sprintf("items[%d].", i), m)
		item := NavItem{Label: ef.str("label"), Href: ef.str("href")}
		f.err = ef.err
		if f.err != nil {
			break
		}
		items = append(items, item)
	}
	if err := f.ok(); err != nil {
		return nil, err
	}
	return items, nil
}

// ValidateSocial checks the social singleton, whose entries live under the
// "profiles" key.
func ValidateSocial(meta map[string]any) ([]SocialProfile, error) {
	f := newFields(KindSocial, "social", meta)
	icons := make([]string, 0, len(socialIcons))
	for _, icon := range []SocialIcon{IconGithub, IconLinkedIn, IconTwitter, IconMedium, IconMail, IconLink} {
		icons = append(icons, string(icon))
	}
	raw := f.list("profiles")
	profiles := make([]SocialProfile, 0, len(raw))
	for i, entry := range raw {
		m, isMap := asMapping(entry)
		if !isMap {
			f.fail(fmt.Sprintf("profiles[%d]", i), fmt.Sprintf("must be a mapping, got %s", typeName(entry)))
			break
		}
		ef := f.nested(fmt.Sprintf("profiles[%d].", i), m)
		profile := SocialProfile{
			Label: ef.str("label"),
			Href:  ef.str("href"),
			Icon:  SocialIcon(ef.enum("icon", icons...)),
		}
		f.err = ef.err
		if f.err != nil {
			break
		}
		profiles = append(profiles, profile)
	}
	if err := f.ok(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ValidateSEODefaults checks the SEO defaults singleton.
func ValidateSEODefaults(meta map[string]any) (SEODefaults, error) {
	f := newFields(KindSEO, "seo", meta)
	seo := SEODefaults{
		DefaultTitle:       f.str("defaultTitle"),
		DefaultDescription: f.str("defaultDescription"),
		DefaultOGImage:     f.str("defaultOgImage"),
		SiteURL:            f.str("siteUrl"),
		TwitterHandle:      f.optStr("twitterHandle"),
	}
	if err := f.ok(); err != nil {
		return SEODefaults{}, err
	}
	return seo, nil
}

// ValidateResumeMetadata checks the résumé metadata singleton.
func ValidateResumeMetadata(meta map[string]any) (ResumeMetadata, error) {
	f := newFields(KindResume, "resume.metadata", meta)
	resume := ResumeMetadata{
		Title:       f.str("title"),
		PDFPath:     f.str("pdfPath"),
		LastUpdated: f.optStr("lastUpdated"),
		DisplayAs:   ResumeDisplay(f.optEnum("displayAs", string(ResumeDisplayMDX), string(ResumeDisplayExternal))),
	}
	if err := f.ok(); err != nil {
		return ResumeMetadata{}, err
	}
	return resume, nil
}

func slugOf(meta map[string]any) string {
	s, _ := meta["slug"].(string)
	return s
}
