package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *UploadStore {
	t.Helper()
	store, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewUploadStore: %v", err)
	}
	store.now = func() time.Time {
		return time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
	}
	return store
}

func TestUploadStore_Save(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save(context.Background(), "pat-1", ".png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if filepath.Base(path) != "pat-1_20240315_093045.png" {
		t.Fatalf("unexpected filename: %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if len(data) != 3 {
		t.Fatalf("expected 3 bytes, got %d", len(data))
	}
}

func TestUploadStore_Save_SanitizesPatientID(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save(context.Background(), "../../etc/passwd", ".jpg", []byte{1})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if filepath.Base(path) != "etcpasswd_20240315_093045.jpg" {
		t.Fatalf("path traversal not neutralized: %s", filepath.Base(path))
	}
	if filepath.Dir(path) != store.dir {
		t.Fatalf("file escaped uploads dir: %s", path)
	}
}

func TestUploadStore_Save_RejectsExtension(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(context.Background(), "pat-1", ".exe", []byte{1}); err == nil {
		t.Fatalf("expected rejection of .exe")
	}
}

func TestUploadStore_Remove(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save(context.Background(), "pat-1", ".bmp", []byte{1})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Remove(context.Background(), path); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still exists after Remove")
	}
}

func TestUploadStore_Save_CancelledContext(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Save(ctx, "pat-1", ".jpg", []byte{1}); err == nil {
		t.Fatalf("expected context error")
	}
}
