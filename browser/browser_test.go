package browser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rika-tools/vertexa/loader"
)

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.obj", "A.stl", "notes.txt", ".hidden.obj"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "parts"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries: %v", entries)
	}
	if !entries[0].Dir || entries[0].Name != "parts" {
		t.Error("directories first:", entries[0])
	}
	// case-insensitive sort
	if entries[1].Name != "A.stl" || entries[2].Name != "b.obj" {
		t.Error("order:", entries[1].Name, entries[2].Name)
	}
	if entries[1].Format != loader.FormatSTL {
		t.Error("format:", entries[1].Format)
	}
}

func TestListMissingDir(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "gone")); err == nil {
		t.Error("expected error")
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 8)
	w, err := Watch(dir, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "new.obj"), []byte("v 0 0 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}
