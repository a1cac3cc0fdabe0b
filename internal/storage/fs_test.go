package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"testing/fstest"
)

func TestFSSource(t *testing.T) {
	fsys := fstest.MapFS{
		"public/blogs/b.md":         {Data: []byte("# B")},
		"public/blogs/a.markdown":   {Data: []byte("# A")},
		"public/blogs/notes.txt":    {Data: []byte("notes")},
		"public/blogs/drafts/c.md":  {Data: []byte("# C")},
		"public/other/elsewhere.md": {Data: []byte("# X")},
	}
	src := NewFSSource(fsys, "public/blogs")

	names, err := src.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"a.markdown", "b.md"}) {
		t.Fatalf("unexpected names %#v", names)
	}

	data, err := src.Fetch(context.Background(), "b.md")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "# B" {
		t.Fatalf("unexpected content %q", data)
	}

	for _, name := range []string{"missing.md", "../other/elsewhere.md", "drafts/c.md"} {
		if _, err := src.Fetch(context.Background(), name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Fetch(%q) = %v, want ErrNotFound", name, err)
		}
	}
}

func TestFSSource_MissingDirectory(t *testing.T) {
	src := NewFSSource(fstest.MapFS{}, "nope")
	if _, err := src.Discover(context.Background()); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestStaticList(t *testing.T) {
	list := NewStaticList([]string{"a.md", "", "b.md", "a.md"})
	if list.Name() != "known-files" {
		t.Fatalf("unexpected name %q", list.Name())
	}

	names, err := list.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"a.md", "b.md"}) {
		t.Fatalf("unexpected names %#v", names)
	}

	names[0] = "mutated.md"
	again, _ := list.Discover(context.Background())
	if again[0] != "a.md" {
		t.Fatalf("Discover must return a copy")
	}
}
