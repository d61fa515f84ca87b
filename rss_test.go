package mdpress

import (
	"strings"
	"testing"
	"time"
)

func TestRenderRSS(t *testing.T) {
	site := Config{
		Name:        "Test Blog",
		URL:         "https://example.com",
		Description: "A test blog",
	}
	listing := Listing{
		Entries: []ListEntry{
			{
				Slug:        "hello-world",
				Title:       "Hello World",
				Description: "The first post",
				Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			},
		},
		LastBuild:  time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		TTLMinutes: 10,
	}

	out, err := renderRSS(listing, site)
	if err != nil {
		t.Fatalf("renderRSS failed: %v", err)
	}
	xml := string(out)

	for _, want := range []string{
		`<rss version="2.0">`,
		"<title>Test Blog</title>",
		"<description>A test blog</description>",
		"<ttl>10</ttl>",
		"<lastBuildDate>Thu, 01 Feb 2024 12:00:00 +0000</lastBuildDate>",
		"<title>Hello World</title>",
		"<link>https://example.com/hello-world</link>",
		"<guid>https://example.com/hello-world</guid>",
		"<pubDate>Fri, 05 Jan 2024 00:00:00 +0000</pubDate>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("feed missing %q\n%s", want, xml)
		}
	}
	// A trailing slash would 404 on our own route table (/:slug).
	if strings.Contains(xml, "hello-world/") {
		t.Errorf("feed links must not carry a trailing slash:\n%s", xml)
	}
}

func TestPostURLMatchesRoutePath(t *testing.T) {
	site := Config{URL: "https://example.com/"}

	// The router serves posts at exactly PostPath(slug); the absolute URL
	// must be the site URL plus that path, nothing more.
	if got := PostPath("hello-world"); got != "/hello-world" {
		t.Errorf("PostPath = %q, want %q", got, "/hello-world")
	}
	if got := PostURL(site, "hello-world"); got != "https://example.com/hello-world" {
		t.Errorf("PostURL = %q, want %q", got, "https://example.com/hello-world")
	}
	// Awkward filenames still produce a well-formed path segment.
	if got := PostPath("50% off"); got != "/50%25%20off" {
		t.Errorf("PostPath = %q, want escaped segment", got)
	}
}

func TestRenderRSSZeroTTLOmitted(t *testing.T) {
	out, err := renderRSS(Listing{LastBuild: time.Now()}, Config{Name: "B", URL: "http://x"})
	if err != nil {
		t.Fatalf("renderRSS failed: %v", err)
	}
	if strings.Contains(string(out), "<ttl>") {
		t.Error("caching disabled should omit the ttl element")
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", []string{"post"}, "https://example.com/post"},
		{"https://example.com/base", []string{"post"}, "https://example.com/base/post"},
		{"https://example.com", nil, "https://example.com"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}
