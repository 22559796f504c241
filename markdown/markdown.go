// Package markdown renders document bodies to sanitized HTML, as a string or
// as a templ component.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	policy = newPolicy()

	reMDXStatement = regexp.MustCompile(`^\s*(import|export)\s`)
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+-]+$`)).OnElements("code")
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("loading").OnElements("img")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoFollowOnFullyQualifiedLinks(true)
	return p
}

// Markdown returns a templ.Component that renders source as HTML.
func Markdown(source string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := RenderMarkdown(&buf, source); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render returns the sanitized HTML for source.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, source); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderMarkdown writes the sanitized HTML representation of source to buf.
// Raw HTML in the source passes through goldmark and is then filtered by the
// sanitizer, so scripts and event handlers never reach the output.
func RenderMarkdown(buf *bytes.Buffer, source string) error {
	var raw bytes.Buffer
	if err := md.Convert([]byte(StripMDX(source)), &raw); err != nil {
		return err
	}
	buf.Write(policy.SanitizeBytes(raw.Bytes()))
	return nil
}

// StripMDX removes top-level import and export statements so bodies authored
// for an MDX toolchain render as plain markdown. Lines inside fenced code
// blocks are kept.
func StripMDX(source string) string {
	lines := strings.Split(source, "\n")
	out := lines[:0]
	fence := ""
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if fence == "" {
			if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
				fence = trimmed[:3]
			} else if reMDXStatement.MatchString(line) {
				continue
			}
		} else if strings.HasPrefix(trimmed, fence) {
			fence = ""
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Excerpt returns the first paragraph of source as plain text, cut to at most
// limit runes. It is used for feed descriptions when a post has none.
func Excerpt(source string, limit int) string {
	var para []string
	for _, line := range strings.Split(StripMDX(source), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "<") {
			if len(para) > 0 {
				break
			}
			continue
		}
		para = append(para, trimmed)
	}
	text := html.UnescapeString(bluemonday.StrictPolicy().Sanitize(strings.Join(para, " ")))
	text = reLink.ReplaceAllString(text, "$1")
	text = reInlineMarks.ReplaceAllString(text, "")
	if r := []rune(text); limit > 0 && len(r) > limit {
		text = strings.TrimSpace(string(r[:limit])) + "…"
	}
	return text
}

var (
	reLink        = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	reInlineMarks = regexp.MustCompile("[*_`]")
)
