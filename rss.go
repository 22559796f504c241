package folio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
)

const feedExcerptLength = 240

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string      `xml:"title"`
	Link          string      `xml:"link"`
	Description   string      `xml:"description"`
	Language      string      `xml:"language"`
	LastBuildDate string      `xml:"lastBuildDate,omitempty"`
	Self          rssAtomLink `xml:"atom:link"`
	Items         []rssItem   `xml:"item"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        rssGUID  `xml:"guid"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// buildFeed assembles an RSS 2.0 document for posts, which must already be
// sorted newest first.
func buildFeed(site content.SiteConfig, seo content.SEODefaults, posts []content.Document[content.BlogPostMeta]) rssXML {
	base := BuildURL(seo.SiteURL)
	items := make([]rssItem, 0, len(posts))
	lastBuild := ""
	for _, p := range posts {
		pubDate := ""
		if t, ok := content.ParseDate(p.Meta.Date); ok {
			pubDate = t.Format(time.RFC1123Z)
			if lastBuild == "" {
				lastBuild = pubDate
			}
		}
		description := p.Meta.Description
		if description == "" {
			description = markdown.Excerpt(p.Body, feedExcerptLength)
		}
		postURL := PostURL(seo.SiteURL, p.Meta)
		items = append(items, rssItem{
			Title:       p.Meta.Title,
			Link:        postURL,
			Description: description,
			PubDate:     pubDate,
			GUID:        rssGUID{Value: postURL, IsPermaLink: true},
			Categories:  p.Meta.Tags,
		})
	}
	return rssXML{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         site.SiteName,
			Link:          base,
			Description:   seo.DefaultDescription,
			Language:      "en-us",
			LastBuildDate: lastBuild,
			Self: rssAtomLink{
				Href: AbsoluteURL(seo.SiteURL, "/feed.xml"),
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}
}

func (a *App) renderRSS(c echo.Context, posts []content.Document[content.BlogPostMeta]) error {
	site, err := a.Store.SiteConfig()
	if err != nil {
		return err
	}
	seo, err := a.Store.SEODefaults()
	if err != nil {
		return err
	}
	feed := buildFeed(site, seo, posts)
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
