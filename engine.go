package mdpress

import (
	"fmt"
	"time"

	"github.com/inksmith/mdpress/markdown"
)

// compressionThreshold is the smallest response the gzip middleware will
// compress. Post pages below it are padded up to it with trailing spaces;
// the padding must stay byte-exact because downstream caches key on it.
const compressionThreshold = 1024

// PostView is the payload handed to the post template.
type PostView struct {
	Slug        string
	Title       string
	Description string
	Date        time.Time
	Tags        []string
	Content     string // rendered HTML body
}

// Renderer turns a named template and its payload into response bytes.
// Template names: "post" (PostView), "index", "tag" and "rss" (Listing).
type Renderer interface {
	Render(template string, data any) ([]byte, error)
}

// Engine composes the caches, the listing logic and the renderer into the
// three operations the handlers call. All state lives in the engine's
// caches; handlers hold no state of their own.
type Engine struct {
	posts    *PostCache
	index    *Index
	rendered *RenderCache
	renderer Renderer
	pageSize int
	ttl      time.Duration
}

// NewEngine creates an Engine over the given store and renderer.
func NewEngine(store *Store, renderer Renderer, ttl time.Duration, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Engine{
		posts:    NewPostCache(store, ttl),
		index:    NewIndex(store, ttl),
		rendered: NewRenderCache(),
		renderer: renderer,
		pageSize: pageSize,
		ttl:      ttl,
	}
}

// Close tears down the engine's watch subscriptions.
func (e *Engine) Close() {
	e.posts.Close()
}

// RenderPost produces the detail page for one post. Returns ErrNotFound
// for unknown or hidden slugs.
func (e *Engine) RenderPost(slug string) ([]byte, error) {
	post, err := e.posts.Ensure(slug)
	if err != nil {
		return nil, err
	}
	if out, ok := e.rendered.Lookup(kindPost, slug, post); ok {
		return out, nil
	}

	content, err := markdown.Render(post.Body)
	if err != nil {
		return nil, fmt.Errorf("mdpress: render post %s: %w", slug, err)
	}
	view := PostView{
		Slug:        slug,
		Title:       post.Meta.Title,
		Description: post.Meta.Description,
		Date:        post.Meta.Date,
		Tags:        post.Meta.Tags,
		Content:     string(content),
	}
	if view.Title == "" {
		if h, ok := markdown.FirstHeading(post.Body); ok {
			view.Title = h
		} else {
			view.Title = slug
		}
	}

	out, err := e.renderer.Render("post", view)
	if err != nil {
		return nil, fmt.Errorf("mdpress: render post %s: %w", slug, err)
	}
	out = padToThreshold(out)
	e.rendered.Store(kindPost, slug, post, out)
	return out, nil
}

// RenderListing produces one page of the index, or of a tag listing when
// tag is non-empty. Only page 1 is render-cached; deeper pages are always
// recomputed.
func (e *Engine) RenderListing(tag string, page int) ([]byte, error) {
	snap, err := e.index.Snapshot()
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	kind, key, tmpl := kindIndex, "", "index"
	if tag != "" {
		kind, key, tmpl = kindTag, tag, "tag"
	}
	cacheable := page == 1
	if cacheable {
		if out, ok := e.rendered.Lookup(kind, key, snap); ok {
			return out, nil
		}
	}

	listing := BuildListing(snap, ListOptions{Tag: tag, Page: page}, e.pageSize, e.ttl)
	out, err := e.renderer.Render(tmpl, listing)
	if err != nil {
		return nil, fmt.Errorf("mdpress: render listing: %w", err)
	}
	if cacheable {
		e.rendered.Store(kind, key, snap, out)
	}
	return out, nil
}

// RenderFeed produces the syndication feed: the newest page-size worth of
// entries, no paging.
func (e *Engine) RenderFeed() ([]byte, error) {
	snap, err := e.index.Snapshot()
	if err != nil {
		return nil, err
	}
	if out, ok := e.rendered.Lookup(kindFeed, "", snap); ok {
		return out, nil
	}

	listing := BuildListing(snap, ListOptions{Feed: true}, e.pageSize, e.ttl)
	out, err := e.renderer.Render("rss", listing)
	if err != nil {
		return nil, fmt.Errorf("mdpress: render feed: %w", err)
	}
	e.rendered.Store(kindFeed, "", snap, out)
	return out, nil
}

// Sitemap returns every dated, non-draft entry, newest first and unpaged,
// for the sitemap handler.
func (e *Engine) Sitemap() ([]ListEntry, error) {
	snap, err := e.index.Snapshot()
	if err != nil {
		return nil, err
	}
	listing := BuildListing(snap, ListOptions{Feed: true}, len(snap.Entries)+1, e.ttl)
	return listing.Entries, nil
}

// padToThreshold pads b with trailing spaces to exactly the compression
// threshold. Shorter responses would skip gzip and, worse, skip the
// downstream proxy behavior tuned to compressed post pages.
func padToThreshold(b []byte) []byte {
	if len(b) >= compressionThreshold {
		return b
	}
	out := make([]byte, compressionThreshold)
	n := copy(out, b)
	for i := n; i < compressionThreshold; i++ {
		out[i] = ' '
	}
	return out
}
