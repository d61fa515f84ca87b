// Package markdown renders post bodies to HTML with goldmark and exposes
// the small amount of document structure the listing code needs.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// engine is shared across requests; goldmark instances are stateless.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Render converts Markdown source to HTML.
func Render(src string) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// FirstHeading returns the text of the heading src begins with, if any.
// Listings use it as the post title when the header block has none. The
// source may be a truncated prefix, so the returned text can itself be cut
// short; callers accept that.
func FirstHeading(src string) (string, bool) {
	source := []byte(src)
	doc := engine.Parser().Parse(text.NewReader(source))
	h, ok := doc.FirstChild().(*ast.Heading)
	if !ok {
		return "", false
	}
	return string(h.Text(source)), true
}
