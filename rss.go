package mdpress

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	TTL           int       `xml:"ttl,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// renderRSS encodes a feed listing as RSS 2.0. The channel <ttl> mirrors
// the cache TTL so well-behaved readers poll no faster than the site
// refreshes.
func renderRSS(l Listing, site Config) ([]byte, error) {
	items := make([]rssItem, 0, len(l.Entries))
	for _, e := range l.Entries {
		link := PostURL(site, e.Slug)
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        link,
			Description: e.Description,
			PubDate:     e.Date.Format(time.RFC1123Z),
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:         site.Name,
			Link:          site.URL,
			Description:   site.Description,
			LastBuildDate: l.LastBuild.Format(time.RFC1123Z),
			TTL:           l.TTLMinutes,
			Items:         items,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(feed); err != nil {
		return nil, fmt.Errorf("mdpress: encode feed: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// PostPath is the site-relative path of a post. It must agree with the
// route table, which serves posts at /<slug> with no trailing slash.
func PostPath(slug string) string {
	return "/" + url.PathEscape(slug)
}

// PostURL is the canonical absolute URL of a post. The feed, the sitemap
// and the HTML views all build post links through PostPath/PostURL so the
// three outputs cannot drift from the router.
func PostURL(site Config, slug string) string {
	return strings.TrimRight(site.URL, "/") + PostPath(slug)
}
