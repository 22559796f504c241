package folio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/eringen/folio/content"
)

// Recommended minimum size of an OpenGraph image.
const (
	ogImageMinWidth  = 1200
	ogImageMinHeight = 630
)

// ImageRef is one image referenced from the content tree.
type ImageRef struct {
	Source string // document that references the image, e.g. "blog/hello"
	Field  string
	Ref    string // value as written
	OG     bool   // used as an OpenGraph image
}

// ImageReport is the result of checking one ImageRef.
type ImageReport struct {
	ImageRef
	Path    string // resolved file path, empty for remote images
	Format  string
	Width   int
	Height  int
	Problem string // empty when the image is fine
}

// OK reports whether the image was found, decoded and is large enough.
func (r ImageReport) OK() bool {
	return r.Problem == ""
}

// CollectImageRefs lists the images referenced from site config, SEO
// defaults, blog posts and projects.
func CollectImageRefs(store *content.Store) ([]ImageRef, error) {
	site, err := store.SiteConfig()
	if err != nil {
		return nil, err
	}
	seo, err := store.SEODefaults()
	if err != nil {
		return nil, err
	}
	refs := []ImageRef{
		{Source: "_config/site", Field: "avatarImage", Ref: site.AvatarImage},
		{Source: "_config/seo", Field: "defaultOgImage", Ref: seo.DefaultOGImage, OG: true},
	}
	posts, err := store.BlogPosts()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Meta.OGImage != "" {
			refs = append(refs, ImageRef{Source: "blog/" + p.Meta.Slug, Field: "ogImage", Ref: p.Meta.OGImage, OG: true})
		}
	}
	projects, err := store.Projects()
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Meta.Image != "" {
			refs = append(refs, ImageRef{Source: "projects/" + p.Meta.Slug, Field: "image", Ref: p.Meta.Image})
		}
	}
	return refs, nil
}

// CheckImages resolves every image referenced from the content tree against
// staticDir and decodes its header. Remote images are reported without being
// fetched. The error is non-nil only when the content itself cannot be loaded.
func CheckImages(store *content.Store, staticDir string) ([]ImageReport, error) {
	refs, err := CollectImageRefs(store)
	if err != nil {
		return nil, err
	}
	reports := make([]ImageReport, 0, len(refs))
	for _, ref := range refs {
		reports = append(reports, checkImage(ref, staticDir))
	}
	return reports, nil
}

func checkImage(ref ImageRef, staticDir string) ImageReport {
	r := ImageReport{ImageRef: ref}
	if strings.HasPrefix(ref.Ref, "http://") || strings.HasPrefix(ref.Ref, "https://") {
		return r
	}
	r.Path = localImagePath(staticDir, ref.Ref)

	f, err := os.Open(r.Path)
	if err != nil {
		r.Problem = "missing file"
		return r
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		r.Problem = fmt.Sprintf("decode: %v", err)
		return r
	}
	r.Format, r.Width, r.Height = format, cfg.Width, cfg.Height
	if ref.OG && (cfg.Width < ogImageMinWidth || cfg.Height < ogImageMinHeight) {
		r.Problem = fmt.Sprintf("%dx%d is smaller than %dx%d", cfg.Width, cfg.Height, ogImageMinWidth, ogImageMinHeight)
	}
	return r
}

// localImagePath maps a site path to a file under staticDir. Both
// "/public/x.png" and "/x.png" resolve to staticDir/x.png.
func localImagePath(staticDir, ref string) string {
	p := strings.TrimPrefix(ref, "/")
	p = strings.TrimPrefix(p, "public/")
	return filepath.Join(staticDir, filepath.FromSlash(p))
}
