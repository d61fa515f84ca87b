package mdpress

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// Views holds the templ components the default renderer draws from.
// Users own these and can replace any of them to reskin the site without
// touching handler logic; the views package provides a default set.
type Views struct {
	Post        func(view PostView, site Config) templ.Component
	Index       func(listing Listing, site Config) templ.Component
	Tag         func(listing Listing, site Config) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// TemplRenderer renders page payloads through templ components, except the
// feed, which is plain RSS XML.
type TemplRenderer struct {
	Views Views
	Site  Config
}

// Render implements Renderer.
func (r *TemplRenderer) Render(template string, data any) ([]byte, error) {
	var cmp templ.Component
	switch template {
	case "post":
		view, ok := data.(PostView)
		if !ok {
			return nil, fmt.Errorf("mdpress: post template wants PostView, got %T", data)
		}
		cmp = r.Views.Post(view, r.Site)
	case "index", "tag":
		listing, ok := data.(Listing)
		if !ok {
			return nil, fmt.Errorf("mdpress: %s template wants Listing, got %T", template, data)
		}
		if template == "tag" {
			cmp = r.Views.Tag(listing, r.Site)
		} else {
			cmp = r.Views.Index(listing, r.Site)
		}
	case "rss":
		listing, ok := data.(Listing)
		if !ok {
			return nil, fmt.Errorf("mdpress: rss template wants Listing, got %T", data)
		}
		return renderRSS(listing, r.Site)
	default:
		return nil, fmt.Errorf("mdpress: unknown template %q", template)
	}

	var buf bytes.Buffer
	if err := cmp.Render(context.Background(), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
