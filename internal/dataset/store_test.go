package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/cache"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/cache/memory"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/models"

	"go.uber.org/zap"
)

type countingLoader struct {
	loads int
}

func (l *countingLoader) Load(ctx context.Context, path string) (*models.Dataset, error) {
	l.loads++
	return &models.Dataset{
		SourcePath: path,
		LoadedAt:   time.Now(),
		Postings: []models.JobPosting{
			{JobTitle: "Business Analyst", CompanyName: "A", Location: "NY"},
		},
	}, nil
}

func TestStoreMemoizesByPathAndMtime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	ldr := &countingLoader{}
	c := memory.New(cache.DefaultOptions())
	defer c.Close()
	store := NewStore(ldr, c, zap.NewNop(), time.Hour)

	ctx := context.Background()
	ds1, err := store.Dataset(ctx, path)
	if err != nil {
		t.Fatalf("first Dataset call failed: %v", err)
	}
	ds2, err := store.Dataset(ctx, path)
	if err != nil {
		t.Fatalf("second Dataset call failed: %v", err)
	}
	if ldr.loads != 1 {
		t.Errorf("expected one load for unchanged input, got %d", ldr.loads)
	}
	if len(ds1.Postings) != len(ds2.Postings) {
		t.Error("memoized dataset differs from original")
	}

	// A newer modification time invalidates the memoized snapshot.
	newMtime := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, newMtime, newMtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if _, err := store.Dataset(ctx, path); err != nil {
		t.Fatalf("Dataset after mtime change failed: %v", err)
	}
	if ldr.loads != 2 {
		t.Errorf("expected reload after mtime change, got %d loads", ldr.loads)
	}
}

func TestStoreMissingFile(t *testing.T) {
	c := memory.New(cache.DefaultOptions())
	defer c.Close()
	store := NewStore(&countingLoader{}, c, zap.NewNop(), time.Hour)

	if _, err := store.Dataset(context.Background(), filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing dataset file")
	}
}
