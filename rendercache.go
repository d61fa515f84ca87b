package mdpress

import "sync"

// renderKind enumerates the cacheable output classes.
type renderKind int

const (
	kindPost renderKind = iota
	kindIndex
	kindTag
	kindFeed
)

type renderedPage struct {
	ref    any // the *Post or *Snapshot the bytes were built from
	output []byte
}

// RenderCache memoizes rendered response bytes per view. Validity is pure
// identity: a cached page is served only while the *Post or *Snapshot it
// was built from is still the live instance. When a reload or rebuild
// replaces that object, every page built from the old one silently
// becomes a miss. No TTL of its own, no content hashing.
type RenderCache struct {
	mu    sync.Mutex
	posts map[string]*renderedPage
	tags  map[string]*renderedPage
	index *renderedPage
	feed  *renderedPage
}

// NewRenderCache creates an empty RenderCache.
func NewRenderCache() *RenderCache {
	return &RenderCache{
		posts: make(map[string]*renderedPage),
		tags:  make(map[string]*renderedPage),
	}
}

// Lookup returns the cached bytes for (kind, key) if they were produced
// from ref.
func (rc *RenderCache) Lookup(kind renderKind, key string, ref any) ([]byte, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	var pg *renderedPage
	switch kind {
	case kindPost:
		pg = rc.posts[key]
	case kindTag:
		pg = rc.tags[key]
	case kindIndex:
		pg = rc.index
	case kindFeed:
		pg = rc.feed
	}
	if pg == nil || pg.ref != ref {
		return nil, false
	}
	return pg.output, true
}

// Store records rendered bytes for (kind, key) along with the object that
// produced them, displacing whatever was there.
func (rc *RenderCache) Store(kind renderKind, key string, ref any, output []byte) {
	pg := &renderedPage{ref: ref, output: output}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	switch kind {
	case kindPost:
		rc.posts[key] = pg
	case kindTag:
		rc.tags[key] = pg
	case kindIndex:
		rc.index = pg
	case kindFeed:
		rc.feed = pg
	}
}
