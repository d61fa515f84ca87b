package mdpress

import (
	"reflect"
	"testing"
	"time"
)

func TestParseDocumentFullHeader(t *testing.T) {
	raw := "Title: Hello\nDate: 2024-01-05\nTags: a, b, a\n\nBody text"
	doc := ParseDocument(raw)

	if doc.Meta.Title != "Hello" {
		t.Errorf("Title = %q, want %q", doc.Meta.Title, "Hello")
	}
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if !doc.Meta.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", doc.Meta.Date, want)
	}
	if !reflect.DeepEqual(doc.Meta.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %v, want [a b]", doc.Meta.Tags)
	}
	if doc.Body != "Body text" {
		t.Errorf("Body = %q, want %q", doc.Body, "Body text")
	}
}

func TestParseDocumentNoBlankLine(t *testing.T) {
	raw := "Title: Hello\nJust text with no separator"
	doc := ParseDocument(raw)

	if doc.Meta.Title != "" {
		t.Errorf("Title = %q, want empty", doc.Meta.Title)
	}
	if doc.Body != raw {
		t.Errorf("Body = %q, want original input", doc.Body)
	}
}

func TestParseDocumentRejectsMixedHeader(t *testing.T) {
	// One line fails the key:value pattern, so the whole block is body.
	raw := "Title: Hello\nnot a header line\n\nBody"
	doc := ParseDocument(raw)

	if doc.Meta.Title != "" {
		t.Errorf("Title = %q, want empty", doc.Meta.Title)
	}
	if doc.Body != raw {
		t.Errorf("Body = %q, want original input", doc.Body)
	}
}

func TestParseDocumentRepeatedKeyDiscardsHeader(t *testing.T) {
	// Two Title lines collapse into one distinct key; the count check
	// fails and all metadata is silently discarded. Existing content
	// depends on this.
	raw := "Title: One\nTitle: Two\n\nBody"
	doc := ParseDocument(raw)

	if doc.Meta.Title != "" {
		t.Errorf("Title = %q, want empty", doc.Meta.Title)
	}
	if doc.Body != raw {
		t.Errorf("Body = %q, want original input", doc.Body)
	}
}

func TestParseDocumentKeysAreCaseInsensitive(t *testing.T) {
	raw := "TITLE: Shout\ndate: 2024-02-03\n\nBody"
	doc := ParseDocument(raw)

	if doc.Meta.Title != "Shout" {
		t.Errorf("Title = %q, want %q", doc.Meta.Title, "Shout")
	}
	if doc.Meta.Date.IsZero() {
		t.Error("Date should be set")
	}
}

func TestParseDocumentInvalidDateDropped(t *testing.T) {
	raw := "Title: Hello\nDate: not a date\n\nBody"
	doc := ParseDocument(raw)

	if !doc.Meta.Date.IsZero() {
		t.Errorf("Date = %v, want zero", doc.Meta.Date)
	}
	// The header itself is still accepted.
	if doc.Meta.Title != "Hello" {
		t.Errorf("Title = %q, want %q", doc.Meta.Title, "Hello")
	}
	if doc.Body != "Body" {
		t.Errorf("Body = %q, want %q", doc.Body, "Body")
	}
}

func TestParseDocumentStatus(t *testing.T) {
	tests := []struct {
		status string
		draft  bool
	}{
		{"draft", true},
		{"published", false},
		{"Draft", false}, // only the exact literal counts
	}
	for _, tt := range tests {
		doc := ParseDocument("Status: " + tt.status + "\n\nBody")
		if doc.Meta.Draft != tt.draft {
			t.Errorf("status %q: Draft = %v, want %v", tt.status, doc.Meta.Draft, tt.draft)
		}
	}
}

func TestParseDocumentTitleTrailingWhitespace(t *testing.T) {
	doc := ParseDocument("Title: Hello   \t\n\nBody")
	if doc.Meta.Title != "Hello" {
		t.Errorf("Title = %q, want %q", doc.Meta.Title, "Hello")
	}
}

func TestParseDocumentTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"go, infra", []string{"go", "infra"}},
		{"a, , b,, a ,c", []string{"a", "b", "c"}},
		{" solo ", []string{"solo"}},
		{",,", nil},
	}
	for _, tt := range tests {
		doc := ParseDocument("Tags: " + tt.in + "\n\nBody")
		if !reflect.DeepEqual(doc.Meta.Tags, tt.want) {
			t.Errorf("tags %q = %v, want %v", tt.in, doc.Meta.Tags, tt.want)
		}
	}
}

func TestParseDocumentDescription(t *testing.T) {
	doc := ParseDocument("Description: kept  verbatim \n\nBody")
	if doc.Meta.Description != "kept  verbatim " {
		t.Errorf("Description = %q, want verbatim value", doc.Meta.Description)
	}
}

func TestParseDocumentEmptyInput(t *testing.T) {
	doc := ParseDocument("")
	if doc.Body != "" || doc.Meta.Title != "" {
		t.Errorf("empty input should produce empty document, got %+v", doc)
	}
}
