// Package views provides the default templ components for an mdpress
// site: a minimal, style-free HTML skeleton users are expected to replace
// with their own components.
package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/inksmith/mdpress"
)

// Default returns the built-in component set.
func Default() mdpress.Views {
	return mdpress.Views{
		Post:        Post,
		Index:       Index,
		Tag:         Tag,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

func component(build func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		build(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHead(buf *bytes.Buffer, title, description string, site mdpress.Config) {
	buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"/>")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
	buf.WriteString("<title>" + html.EscapeString(title) + "</title>")
	if description != "" {
		buf.WriteString("<meta name=\"description\" content=\"" + html.EscapeString(description) + "\"/>")
	}
	if site.Author != "" {
		buf.WriteString("<meta name=\"author\" content=\"" + html.EscapeString(site.Author) + "\"/>")
	}
	buf.WriteString("<link rel=\"stylesheet\" href=\"/public/style.css\"/>")
	buf.WriteString("</head><body>")
	buf.WriteString("<header><a href=\"/\">" + html.EscapeString(site.Name) + "</a></header><main>")
}

func writeFoot(buf *bytes.Buffer) {
	buf.WriteString("</main></body></html>")
}

// Post renders a single post page.
func Post(view mdpress.PostView, site mdpress.Config) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeHead(buf, view.Title, view.Description, site)
		buf.WriteString("<article><h1>" + html.EscapeString(view.Title) + "</h1>")
		if !view.Date.IsZero() {
			buf.WriteString("<time datetime=\"" + view.Date.Format("2006-01-02") + "\">")
			buf.WriteString(view.Date.Format("January 2, 2006"))
			buf.WriteString("</time>")
		}
		// Content is already rendered, sanitized Markdown HTML.
		buf.WriteString(view.Content)
		if len(view.Tags) > 0 {
			buf.WriteString("<ul class=\"tags\">")
			for _, t := range view.Tags {
				buf.WriteString("<li><a href=\"/tag/" + url.PathEscape(t) + "\">" + html.EscapeString(t) + "</a></li>")
			}
			buf.WriteString("</ul>")
		}
		buf.WriteString("</article>")
		writeFoot(buf)
	})
}

// Index renders one page of the main listing.
func Index(listing mdpress.Listing, site mdpress.Config) templ.Component {
	return listingPage(site.Name, listing, site)
}

// Tag renders one page of a tag listing.
func Tag(listing mdpress.Listing, site mdpress.Config) templ.Component {
	return listingPage(site.Name+": "+listing.Tag, listing, site)
}

func listingPage(title string, listing mdpress.Listing, site mdpress.Config) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeHead(buf, title, site.Description, site)
		buf.WriteString("<ul class=\"entries\">")
		for _, e := range listing.Entries {
			buf.WriteString("<li><a href=\"" + mdpress.PostPath(e.Slug) + "\">" + html.EscapeString(e.Title) + "</a>")
			buf.WriteString(" <time datetime=\"" + e.Date.Format(time.RFC3339) + "\">" + e.Date.Format("2006-01-02") + "</time>")
			if e.Description != "" {
				buf.WriteString("<p>" + html.EscapeString(e.Description) + "</p>")
			}
			buf.WriteString("</li>")
		}
		buf.WriteString("</ul>")
		writePager(buf, listing)
		writeFoot(buf)
	})
}

func writePager(buf *bytes.Buffer, listing mdpress.Listing) {
	if listing.PreviousPage == 0 && listing.NextPage == 0 {
		return
	}
	base := "/?page="
	if listing.Tag != "" {
		base = "/tag/" + url.PathEscape(listing.Tag) + "?page="
	}
	buf.WriteString("<nav class=\"pager\">")
	if listing.PreviousPage > 0 {
		buf.WriteString("<a rel=\"prev\" href=\"" + base + strconv.Itoa(listing.PreviousPage) + "\">newer</a>")
	}
	if listing.NextPage > 0 {
		buf.WriteString("<a rel=\"next\" href=\"" + base + strconv.Itoa(listing.NextPage) + "\">older</a>")
	}
	buf.WriteString("</nav>")
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString("<!DOCTYPE html><html><head><title>Not Found</title></head>")
		buf.WriteString("<body><h1>404</h1><p>There is no such page. <a href=\"/\">Back to the index.</a></p></body></html>")
	})
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString("<!DOCTYPE html><html><head><title>Server Error</title></head>")
		buf.WriteString("<body><h1>500</h1><p>Something broke. Try again in a minute.</p></body></html>")
	})
}
