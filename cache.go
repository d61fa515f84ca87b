package mdpress

import (
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Post is one cached content item. A Post is never mutated after load;
// reloading produces a fresh *Post, so pointer identity doubles as the
// staleness marker the render cache compares against.
type Post struct {
	Slug string
	Meta Metadata
	Body string

	loaded time.Time
}

// PostCache holds fully-read posts keyed by slug. An entry is fresh for
// the configured TTL (0 means always stale) and is replaced early when the
// file watch reports a change. Each cached slug has exactly one armed
// subscription.
type PostCache struct {
	store *Store
	ttl   time.Duration

	mu    sync.Mutex
	posts map[string]*Post
	subs  map[string]*Subscription

	group singleflight.Group
}

// NewPostCache creates a PostCache over the given store.
func NewPostCache(store *Store, ttl time.Duration) *PostCache {
	return &PostCache{
		store: store,
		ttl:   ttl,
		posts: make(map[string]*Post),
		subs:  make(map[string]*Subscription),
	}
}

// Get returns the cached post for slug if one exists and is still fresh.
func (c *PostCache) Get(slug string) (*Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.posts[slug]
	if p == nil || !p.loaded.Add(c.ttl).After(time.Now()) {
		return nil, false
	}
	return p, true
}

// Ensure returns a fresh post for slug, reading it from the store when the
// cache has no usable entry. Concurrent calls for the same slug share one
// read, so a slug never ends up with two live subscriptions. Slugs with
// the hidden-file prefix are rejected before any I/O.
func (c *PostCache) Ensure(slug string) (*Post, error) {
	if strings.HasPrefix(slug, ".") {
		return nil, ErrNotFound
	}
	if p, ok := c.Get(slug); ok {
		return p, nil
	}
	v, err, _ := c.group.Do(slug, func() (any, error) {
		if p, ok := c.Get(slug); ok {
			return p, nil
		}
		return c.load(slug)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Post), nil
}

// load reads and parses a post, stores it under a new identity, and arms a
// watch subscription if the slug does not have one yet.
func (c *PostCache) load(slug string) (*Post, error) {
	raw, err := c.store.ReadAll(slug)
	if err != nil {
		return nil, err
	}
	doc := ParseDocument(string(raw))
	p := &Post{Slug: slug, Meta: doc.Meta, Body: doc.Body, loaded: time.Now()}

	c.mu.Lock()
	c.posts[slug] = p
	armed := c.subs[slug] != nil
	c.mu.Unlock()

	if !armed {
		c.watch(slug)
	}
	return p, nil
}

// watch arms a subscription for slug and spawns its event loop. If a
// concurrent loader armed one first, the extra subscription is closed
// immediately.
func (c *PostCache) watch(slug string) {
	sub, err := c.store.Watch(slug)
	if err != nil {
		log.Printf("mdpress: watch %s: %v", slug, err)
		return
	}
	c.mu.Lock()
	if c.subs[slug] != nil {
		c.mu.Unlock()
		sub.Close()
		return
	}
	c.subs[slug] = sub
	c.mu.Unlock()

	go func() {
		for ev := range sub.Events {
			if ev == Changed {
				// Replace the cached identity. On a read failure the stale
				// entry stays; it will age out via TTL.
				if _, err := c.load(slug); err != nil {
					log.Printf("mdpress: reload %s: %v", slug, err)
				}
				continue
			}
			c.evict(slug)
			return
		}
	}()
}

// evict drops the cached post and tears down its subscription. Subsequent
// lookups behave as a cache miss.
func (c *PostCache) evict(slug string) {
	c.mu.Lock()
	sub := c.subs[slug]
	delete(c.subs, slug)
	delete(c.posts, slug)
	c.mu.Unlock()
	if sub != nil {
		sub.Close()
	}
}

// Close tears down every watch subscription and empties the cache.
func (c *PostCache) Close() {
	c.mu.Lock()
	subs := c.subs
	c.subs = make(map[string]*Subscription)
	c.posts = make(map[string]*Post)
	c.mu.Unlock()
	for _, sub := range subs {
		sub.Close()
	}
}
