package mdpress

import (
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// indexPrefixSize is how much of each post the index builder reads. Only
// the header block and the first few lines of body matter for listings;
// slurping whole files would make the scan cost grow with archive size.
// The tradeoff: a header block longer than this truncates the body prefix,
// which can cut a fallback title mid-heading.
const indexPrefixSize = 1024

// Entry is one post's representation in a directory snapshot: metadata
// parsed from the post's prefix plus the (possibly truncated) body text.
type Entry struct {
	Slug string
	Meta Metadata
	Text string
}

// Snapshot is an immutable point-in-time view of the posts directory.
// A rebuild produces a new *Snapshot; existing snapshots are never edited,
// so pointer identity marks render-cache staleness.
type Snapshot struct {
	Entries map[string]*Entry
	Built   time.Time
}

// Index maintains the TTL-gated directory snapshot.
type Index struct {
	store *Store
	ttl   time.Duration

	mu   sync.Mutex
	snap *Snapshot

	group singleflight.Group
}

// NewIndex creates an Index over the given store.
func NewIndex(store *Store, ttl time.Duration) *Index {
	return &Index{store: store, ttl: ttl}
}

func (ix *Index) cached() *Snapshot {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.snap == nil || !ix.snap.Built.Add(ix.ttl).After(time.Now()) {
		return nil
	}
	return ix.snap
}

// Snapshot returns the current directory snapshot, rebuilding it when the
// cached one has expired. Concurrent callers share a single rebuild.
func (ix *Index) Snapshot() (*Snapshot, error) {
	if snap := ix.cached(); snap != nil {
		return snap, nil
	}
	v, err, _ := ix.group.Do("rebuild", func() (any, error) {
		if snap := ix.cached(); snap != nil {
			return snap, nil
		}
		return ix.rebuild()
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// rebuild scans the store and reads every candidate's prefix concurrently.
// The snapshot is published exactly once, after the last read finishes.
// A failed per-post read only drops that post from the snapshot; only a
// failed directory listing fails the build.
func (ix *Index) rebuild() (*Snapshot, error) {
	slugs, err := ix.store.List()
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		entries = make(map[string]*Entry, len(slugs))
		wg      sync.WaitGroup
	)
	for _, slug := range slugs {
		slug := slug
		wg.Add(1)
		go func() {
			defer wg.Done()
			prefix, err := ix.store.ReadPrefix(slug, indexPrefixSize)
			if err != nil {
				log.Printf("mdpress: index scan %s: %v", slug, err)
				return
			}
			doc := ParseDocument(string(prefix))
			mu.Lock()
			entries[slug] = &Entry{Slug: slug, Meta: doc.Meta, Text: doc.Body}
			mu.Unlock()
		}()
	}
	wg.Wait()

	snap := &Snapshot{Entries: entries, Built: time.Now()}
	ix.mu.Lock()
	ix.snap = snap
	ix.mu.Unlock()
	return snap, nil
}
