package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderBasics(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"- one\n- two", "<li>one</li>"},
		{"1. first\n2. second", "<ol>"},
		{"> quoted", "<blockquote>"},
		{"| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"~~gone~~", "<del>gone</del>"},
	}
	for _, tt := range tests {
		got, err := Render(tt.input)
		if err != nil {
			t.Fatalf("Render(%q) error: %v", tt.input, err)
		}
		if !strings.Contains(got, tt.contains) {
			t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.contains)
		}
	}
}

func TestRenderHeadingIDs(t *testing.T) {
	got, err := Render("## Getting Started")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `<h2 id="getting-started">Getting Started</h2>`) {
		t.Errorf("heading id missing: %q", got)
	}
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	got, err := Render("```go\nfmt.Println(\"<hi>\")\n```")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("language class missing: %q", got)
	}
	if !strings.Contains(got, "&lt;hi&gt;") {
		t.Errorf("code content should be escaped: %q", got)
	}
}

func TestRenderSanitizesHTML(t *testing.T) {
	tests := []struct {
		input  string
		banned string
	}{
		{"<script>alert(1)</script>", "<script"},
		{`<img src="x.png" onerror="alert(1)">`, "onerror"},
		{"[click](javascript:alert(1))", "javascript:"},
		{`<iframe src="https://evil.example"></iframe>`, "<iframe"},
	}
	for _, tt := range tests {
		got, err := Render(tt.input)
		if err != nil {
			t.Fatalf("Render(%q) error: %v", tt.input, err)
		}
		if strings.Contains(got, tt.banned) {
			t.Errorf("Render(%q) = %q, should not contain %q", tt.input, got, tt.banned)
		}
	}
}

func TestRenderExternalLinks(t *testing.T) {
	got, err := Render("[site](https://example.com)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `target="_blank"`) || !strings.Contains(got, "nofollow") {
		t.Errorf("external link attributes missing: %q", got)
	}
	got, err = Render("[home](/about/)")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, `target="_blank"`) {
		t.Errorf("relative link should stay in the same tab: %q", got)
	}
}

func TestStripMDX(t *testing.T) {
	input := strings.Join([]string{
		"import Chart from '../components/Chart'",
		"export const meta = {}",
		"",
		"Intro paragraph.",
		"",
		"```js",
		"import x from 'y'",
		"```",
	}, "\n")
	got := StripMDX(input)
	if strings.Contains(got, "Chart") || strings.Contains(got, "export const") {
		t.Errorf("StripMDX left a top-level statement: %q", got)
	}
	if !strings.Contains(got, "import x from 'y'") {
		t.Errorf("StripMDX removed a line inside a code fence: %q", got)
	}
	if !strings.Contains(got, "Intro paragraph.") {
		t.Errorf("StripMDX removed body text: %q", got)
	}
}

func TestStripMDXKeepsProse(t *testing.T) {
	input := "Important: export controls matter.\nimportant detail"
	if got := StripMDX(input); got != input {
		t.Errorf("StripMDX(%q) = %q, want unchanged", input, got)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		input    string
		limit    int
		expected string
	}{
		{"# Title\n\nFirst **para** with [a link](/x/).\n\nSecond.", 0, "First para with a link."},
		{"Don't panic.", 0, "Don't panic."},
		{"abcdefghij", 4, "abcd…"},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := Excerpt(tt.input, tt.limit); got != tt.expected {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.expected)
		}
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("Hello *world*").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<em>world</em>") {
		t.Errorf("component output = %q", buf.String())
	}
}
