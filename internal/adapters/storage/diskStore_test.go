package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quill/internal/core/errs"
	mediaPort "quill/internal/ports/media"
)

func TestDiskImageStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskImageStore(dir)
	if err != nil {
		t.Fatalf("NewDiskImageStore: %v", err)
	}

	content := []byte("not really a png")
	path, err := store.Save(&mediaPort.Upload{
		Filename: "photo.PNG",
		Reader:   bytes.NewReader(content),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, "post/") || !strings.HasSuffix(path, ".png") {
		t.Errorf("got path %q, want post/<uuid>.png", path)
	}

	saved, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if !bytes.Equal(saved, content) {
		t.Error("saved content differs from the upload")
	}
}

func TestDiskImageStoreRejectsUnknownType(t *testing.T) {
	store, err := NewDiskImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskImageStore: %v", err)
	}

	_, err = store.Save(&mediaPort.Upload{
		Filename: "script.sh",
		Reader:   strings.NewReader("#!/bin/sh"),
	})
	if !errs.IsValidation(err) {
		t.Errorf("got %v, want ValidationError", err)
	}
}
