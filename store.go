package mdpress

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("mdpress: post not found")

// postExt is the extension recognized as post content. Filenames map to
// slugs by stripping it.
const postExt = ".md"

// Store reads posts from a directory of Markdown files. It is strictly
// read-only; publishing a post means dropping a file into the directory.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given posts directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// List returns the slugs of every recognized post file. Hidden files and
// files without the post extension are skipped.
func (s *Store) List() ([]string, error) {
	dirents, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("mdpress: list posts: %w", err)
	}
	var slugs []string
	for _, d := range dirents {
		name := d.Name()
		if d.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, postExt) {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(name, postExt))
	}
	return slugs, nil
}

func (s *Store) path(slug string) string {
	return filepath.Join(s.root, slug+postExt)
}

// ReadAll returns the full content of a post.
func (s *Store) ReadAll(slug string) ([]byte, error) {
	b, err := os.ReadFile(s.path(slug))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mdpress: read %s: %w", slug, err)
	}
	return b, nil
}

// ReadPrefix returns at most n bytes from the start of a post. Posts
// shorter than n are returned whole.
func (s *Store) ReadPrefix(slug string, n int) ([]byte, error) {
	f, err := os.Open(s.path(slug))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mdpress: read %s: %w", slug, err)
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("mdpress: read %s: %w", slug, err)
	}
	return buf[:read], nil
}

// EventKind classifies a change to a watched post file.
type EventKind int

const (
	// Changed means the file content was modified; the post should be
	// reloaded.
	Changed EventKind = iota
	// Removed means the file was deleted or renamed, or the watch itself
	// failed; the post should be evicted and the subscription is dead.
	Removed
)

// Subscription delivers change events for a single post file until the
// file goes away or Close is called. Events is closed when the watch loop
// exits; Removed, when delivered, is always the final event.
type Subscription struct {
	Events chan EventKind

	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once
}

// Watch arms a filesystem watch on a single post file.
func (s *Store) Watch(slug string) (*Subscription, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("mdpress: watch %s: %w", slug, err)
	}
	if err := w.Add(s.path(slug)); err != nil {
		w.Close()
		return nil, fmt.Errorf("mdpress: watch %s: %w", slug, err)
	}
	sub := &Subscription{
		Events:  make(chan EventKind, 4),
		watcher: w,
		done:    make(chan struct{}),
	}
	go sub.loop()
	return sub, nil
}

func (sub *Subscription) loop() {
	defer close(sub.Events)
	for {
		select {
		case ev, ok := <-sub.watcher.Events:
			if !ok {
				return
			}
			switch {
			case ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create):
				sub.deliver(Changed)
			case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
				sub.deliver(Removed)
				return
			}
		case _, ok := <-sub.watcher.Errors:
			if !ok {
				return
			}
			// A broken watch is indistinguishable from a gone file as far
			// as the cache is concerned: drop the entry, a later lookup
			// loads fresh.
			sub.deliver(Removed)
			return
		case <-sub.done:
			return
		}
	}
}

func (sub *Subscription) deliver(k EventKind) {
	select {
	case sub.Events <- k:
	case <-sub.done:
	}
}

// Close cancels the subscription. Safe to call more than once.
func (sub *Subscription) Close() {
	sub.once.Do(func() {
		close(sub.done)
		sub.watcher.Close()
	})
}
