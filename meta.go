package mdpress

import (
	"regexp"
	"strings"
	"time"
)

// headerLine matches one "Key: value" line of a post's header block.
var headerLine = regexp.MustCompile(`^([a-zA-Z0-9-]+)\s*:\s*(.*)$`)

// dateLayouts are tried in order when parsing the Date header.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
}

// Metadata is the structured header of a post. Every field is optional;
// a zero Date means the post has no publish date.
type Metadata struct {
	Title       string
	Date        time.Time
	Tags        []string
	Description string
	Draft       bool
}

// Document is raw post text split into metadata and body.
type Document struct {
	Meta Metadata
	Body string
}

// ParseDocument splits raw post text into a metadata header and body.
//
// The header is everything before the first blank line, one "Key: value"
// per line. It is accepted only when every line parses as a header and no
// key repeats: the number of distinct parsed keys must equal the number of
// lines. Otherwise the whole input, header candidate included, is treated
// as body text with empty metadata. A repeated key therefore discards the
// entire header; existing content relies on that.
//
// ParseDocument never fails; malformed input degrades to an empty header.
func ParseDocument(raw string) Document {
	doc := Document{Body: raw}

	sep := strings.Index(raw, "\n\n")
	if sep == -1 {
		return doc
	}

	lines := strings.Split(raw[:sep], "\n")
	fields := make(map[string]string, len(lines))
	for _, line := range lines {
		m := headerLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fields[strings.ToLower(m[1])] = m[2]
	}
	if len(fields) != len(lines) {
		return doc
	}

	doc.Body = raw[sep+2:]

	if v, ok := fields["title"]; ok {
		doc.Meta.Title = strings.TrimRightFunc(v, isSpace)
	}
	if v, ok := fields["date"]; ok {
		if d, ok := parseDate(v); ok {
			doc.Meta.Date = d
		}
	}
	if v, ok := fields["tags"]; ok {
		doc.Meta.Tags = splitTags(v)
	}
	if v, ok := fields["status"]; ok && v == "draft" {
		doc.Meta.Draft = true
	}
	if v, ok := fields["description"]; ok {
		doc.Meta.Description = v
	}
	return doc
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// parseDate accepts the handful of date formats posts actually use.
// Anything else drops the field rather than failing the post.
func parseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// splitTags splits a comma-separated tag list, trims each tag, and drops
// empty values and duplicates while preserving first-seen order.
func splitTags(v string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, t := range strings.Split(v, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}
