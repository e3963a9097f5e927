package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLocalClientStoreAndGet(t *testing.T) {
	client, err := NewLocalClient(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalClient: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	ts := time.Date(2024, 5, 11, 14, 30, 45, 0, time.UTC)
	content := []byte("<html>forecast</html>")

	relPath, err := client.StoreBundleFile(ctx, content, "index.html", ts)
	if err != nil {
		t.Fatalf("StoreBundleFile: %v", err)
	}
	want := "2024/05/11/AuroraForecast-2024-05-11-14-30-45/index.html"
	if relPath != want {
		t.Errorf("relPath = %q, want %q", relPath, want)
	}

	got, err := client.GetFile(ctx, relPath)
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("GetFile returned %q, want %q", got, content)
	}
}

func TestLocalClientGetFileTraversal(t *testing.T) {
	client, err := NewLocalClient(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalClient: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	for _, path := range []string{
		"../outside.txt",
		"../../etc/passwd",
		"2024/../../secret",
	} {
		if _, err := client.GetFile(ctx, path); err == nil {
			t.Errorf("GetFile(%q) succeeded, want traversal rejection", path)
		}
	}
}

func TestLocalClientGetFileMissing(t *testing.T) {
	client, err := NewLocalClient(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalClient: %v", err)
	}
	defer client.Close()

	if _, err := client.GetFile(context.Background(), "2024/05/11/missing/index.html"); err == nil {
		t.Error("GetFile for missing file succeeded")
	}
}

func TestLocalClientListBundles(t *testing.T) {
	client, err := NewLocalClient(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalClient: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	timestamps := []time.Time{
		time.Date(2024, 5, 9, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 11, 14, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}
	for _, ts := range timestamps {
		if _, err := client.StoreBundleFile(ctx, []byte("<html></html>"), "index.html", ts); err != nil {
			t.Fatalf("StoreBundleFile: %v", err)
		}
		// Chart files must not appear in the listing.
		if _, err := client.StoreBundleFile(ctx, []byte("png"), "solar_wind_speed.png", ts); err != nil {
			t.Fatalf("StoreBundleFile: %v", err)
		}
	}

	bundles, err := client.ListBundles(ctx, 10)
	if err != nil {
		t.Fatalf("ListBundles: %v", err)
	}
	if len(bundles) != 3 {
		t.Fatalf("got %d bundles, want 3: %v", len(bundles), bundles)
	}

	// Newest first.
	wantFirst := "2024/05/11/AuroraForecast-2024-05-11-14-00-00/index.html"
	if bundles[0] != wantFirst {
		t.Errorf("bundles[0] = %q, want %q", bundles[0], wantFirst)
	}
	wantLast := "2024/05/09/AuroraForecast-2024-05-09-10-00-00/index.html"
	if bundles[2] != wantLast {
		t.Errorf("bundles[2] = %q, want %q", bundles[2], wantLast)
	}

	limited, err := client.ListBundles(ctx, 2)
	if err != nil {
		t.Fatalf("ListBundles with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d bundles with limit 2, want 2", len(limited))
	}
}

func TestLocalClientPurgeOlderThan(t *testing.T) {
	dir := t.TempDir()
	client, err := NewLocalClient(dir)
	if err != nil {
		t.Fatalf("NewLocalClient: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	oldTS := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	freshTS := time.Date(2024, 5, 11, 14, 0, 0, 0, time.UTC)

	oldRel, err := client.StoreBundleFile(ctx, []byte("<html></html>"), "index.html", oldTS)
	if err != nil {
		t.Fatalf("StoreBundleFile: %v", err)
	}
	freshRel, err := client.StoreBundleFile(ctx, []byte("<html></html>"), "index.html", freshTS)
	if err != nil {
		t.Fatalf("StoreBundleFile: %v", err)
	}

	// Purging keys off file mtime, so backdate the old bundle past the
	// retention window.
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, oldRel), stale, stale); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	if err := client.PurgeOlderThan(ctx, 24*time.Hour); err != nil {
		t.Fatalf("PurgeOlderThan: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, oldRel)); !os.IsNotExist(err) {
		t.Errorf("stale bundle file still present, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, freshRel)); err != nil {
		t.Errorf("fresh bundle file removed: %v", err)
	}

	bundles, err := client.ListBundles(ctx, 10)
	if err != nil {
		t.Fatalf("ListBundles: %v", err)
	}
	if len(bundles) != 1 || bundles[0] != freshRel {
		t.Errorf("bundles after purge = %v, want only %q", bundles, freshRel)
	}
}

func TestLocalClientListBundlesEmpty(t *testing.T) {
	client, err := NewLocalClient(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalClient: %v", err)
	}
	defer client.Close()

	bundles, err := client.ListBundles(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListBundles: %v", err)
	}
	if len(bundles) != 0 {
		t.Errorf("got %d bundles from empty store, want 0", len(bundles))
	}
}
