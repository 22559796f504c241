package views

import (
	"net/url"
	"strings"

	"github.com/eringen/folio/content"
)

// PathEscape wraps url.PathEscape for use in templates.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	if active {
		return "tag active"
	}
	return "tag"
}

// JoinTags formats a tag slice as a comma-separated string.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// NavCurrent reports whether href is the nav entry for the request path.
// "/" only matches itself; other entries also match their sub-pages.
func NavCurrent(href, path string) bool {
	if href == "/" {
		return path == "/"
	}
	href = strings.TrimSuffix(href, "/")
	return path == href || strings.HasPrefix(path, href+"/")
}

// IconLabel returns the visible label for a social icon.
func IconLabel(icon content.SocialIcon) string {
	switch icon {
	case content.IconGithub:
		return "GitHub"
	case content.IconLinkedIn:
		return "LinkedIn"
	case content.IconTwitter:
		return "X"
	case content.IconMedium:
		return "Medium"
	case content.IconMail:
		return "Email"
	default:
		return "Link"
	}
}
