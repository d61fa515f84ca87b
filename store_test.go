package mdpress

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir), dir
}

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestStoreList(t *testing.T) {
	s, dir := setupTestStore(t)
	writePost(t, dir, "first.md", "one")
	writePost(t, dir, "second.md", "two")
	writePost(t, dir, ".hidden.md", "nope")
	writePost(t, dir, "notes.txt", "nope")
	if err := os.Mkdir(filepath.Join(dir, "drafts.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	slugs, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	sort.Strings(slugs)
	want := []string{"first", "second"}
	if !reflect.DeepEqual(slugs, want) {
		t.Errorf("List = %v, want %v", slugs, want)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope"))
	if _, err := s.List(); err == nil {
		t.Error("List on a missing directory should fail")
	}
}

func TestStoreReadAll(t *testing.T) {
	s, dir := setupTestStore(t)
	writePost(t, dir, "post.md", "Title: T\n\nBody")

	b, err := s.ReadAll("post")
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(b) != "Title: T\n\nBody" {
		t.Errorf("ReadAll = %q", b)
	}

	if _, err := s.ReadAll("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadAll(missing) = %v, want ErrNotFound", err)
	}
}

func TestStoreReadPrefix(t *testing.T) {
	s, dir := setupTestStore(t)
	long := strings.Repeat("x", 2000)
	writePost(t, dir, "long.md", long)
	writePost(t, dir, "short.md", "tiny")

	b, err := s.ReadPrefix("long", 1024)
	if err != nil {
		t.Fatalf("ReadPrefix failed: %v", err)
	}
	if len(b) != 1024 {
		t.Errorf("prefix length = %d, want 1024", len(b))
	}

	b, err = s.ReadPrefix("short", 1024)
	if err != nil {
		t.Fatalf("ReadPrefix failed: %v", err)
	}
	if string(b) != "tiny" {
		t.Errorf("short prefix = %q, want whole file", b)
	}

	if _, err := s.ReadPrefix("missing", 1024); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadPrefix(missing) = %v, want ErrNotFound", err)
	}
}

func waitEvent(t *testing.T, sub *Subscription, want EventKind) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-sub.Events:
			if !ok {
				t.Fatal("subscription closed before expected event")
			}
			if ev == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event %v", want)
		}
	}
}

func TestStoreWatchChange(t *testing.T) {
	s, dir := setupTestStore(t)
	writePost(t, dir, "watched.md", "v1")

	sub, err := s.Watch("watched")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sub.Close()

	writePost(t, dir, "watched.md", "v2")
	waitEvent(t, sub, Changed)
}

func TestStoreWatchRemove(t *testing.T) {
	s, dir := setupTestStore(t)
	writePost(t, dir, "doomed.md", "v1")

	sub, err := s.Watch("doomed")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sub.Close()

	if err := os.Remove(filepath.Join(dir, "doomed.md")); err != nil {
		t.Fatal(err)
	}
	waitEvent(t, sub, Removed)
}

func TestSubscriptionCloseIdempotent(t *testing.T) {
	s, dir := setupTestStore(t)
	writePost(t, dir, "p.md", "x")

	sub, err := s.Watch("p")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	sub.Close()
	sub.Close() // must not panic
}

func TestStoreWatchMissingFile(t *testing.T) {
	s, _ := setupTestStore(t)
	if _, err := s.Watch("ghost"); err == nil {
		t.Error("Watch on a missing file should fail")
	}
}
