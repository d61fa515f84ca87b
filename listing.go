package mdpress

import (
	"sort"
	"time"

	"github.com/inksmith/mdpress/markdown"
)

// ListEntry is one row of a listing or feed payload.
type ListEntry struct {
	Slug        string
	Title       string
	Description string
	Date        time.Time
}

// Listing is the payload handed to the index, tag and feed templates.
type Listing struct {
	Entries []ListEntry
	Tag     string

	// Paging, unused in feed mode. 0 means "no such page".
	Page         int
	PreviousPage int
	NextPage     int

	// Feed-only fields.
	LastBuild  time.Time
	TTLMinutes int
}

// ListOptions selects and pages a listing. Feed mode ignores Page and
// always produces the newest entries.
type ListOptions struct {
	Tag  string
	Page int
	Feed bool
}

// BuildListing filters, sorts and pages a snapshot into a Listing.
//
// Entries without a publish date never appear, drafts never appear, and a
// tag filter keeps only entries carrying that exact tag. Entries are
// ordered newest first; equal dates keep an arbitrary but stable relative
// order. Page numbers are 1-based and clamped upward to 1. The feed has no
// paging but is still cut to one page of entries; it is a recency window,
// not an archive.
func BuildListing(snap *Snapshot, opts ListOptions, pageSize int, ttl time.Duration) Listing {
	var entries []ListEntry
	for _, e := range snap.Entries {
		if e.Meta.Date.IsZero() {
			// No date, no listing.
			continue
		}
		if e.Meta.Draft {
			continue
		}
		if opts.Tag != "" && !hasTag(e.Meta.Tags, opts.Tag) {
			continue
		}
		entries = append(entries, ListEntry{
			Slug:        e.Slug,
			Title:       e.Meta.Title,
			Description: e.Meta.Description,
			Date:        e.Meta.Date,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	l := Listing{Tag: opts.Tag}
	if opts.Feed {
		l.LastBuild = time.Now()
		l.TTLMinutes = int((ttl + time.Minute - 1) / time.Minute)
	} else {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		l.Page = page
		if page > 1 {
			l.PreviousPage = page - 1
		}
		if pageSize*page < len(entries) {
			l.NextPage = page + 1
		}
		if skip := pageSize * (page - 1); skip < len(entries) {
			entries = entries[skip:]
		} else {
			entries = nil
		}
	}
	if len(entries) > pageSize {
		entries = entries[:pageSize]
	}

	// Resolve fallback titles only for the few entries that survived
	// paging: metadata title, else the leading heading of the truncated
	// body, else the slug.
	for i := range entries {
		if entries[i].Title != "" {
			continue
		}
		if h, ok := markdown.FirstHeading(snap.Entries[entries[i].Slug].Text); ok {
			entries[i].Title = h
		} else {
			entries[i].Title = entries[i].Slug
		}
	}
	l.Entries = entries
	return l
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
