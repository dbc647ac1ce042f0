package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fuvar/internal/core"
)

func TestMemoryStoreAddAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, added, err := s.Add(ctx, core.Factories, "CATL", 5000)
	if err != nil || !added || id != 1 {
		t.Fatalf("unexpected add: id=%d added=%v err=%v", id, added, err)
	}
	if _, added, _ := s.Add(ctx, core.Factories, "", 5000); added {
		t.Fatalf("blank label should be ignored")
	}
	if _, added, _ := s.Add(ctx, core.Factories, "BMW", 0); added {
		t.Fatalf("zero price should be ignored")
	}

	list, err := s.List(ctx, core.Factories)
	if err != nil || len(list) != 1 || list[0].Label != "CATL" {
		t.Fatalf("unexpected list: %v err=%v", list, err)
	}
	if zones, _ := s.List(ctx, core.Zones); len(zones) != 0 {
		t.Fatalf("collections should be independent, got zones=%v", zones)
	}
}

func TestMemoryStoreRemove(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, _, _ := s.Add(ctx, core.Addresses, "A", 1)
	b, _, _ := s.Add(ctx, core.Addresses, "B", 2)

	removed, err := s.Remove(ctx, core.Addresses, 42)
	if err != nil || removed {
		t.Fatalf("unknown id: removed=%v err=%v", removed, err)
	}
	if list, _ := s.List(ctx, core.Addresses); len(list) != 2 {
		t.Fatalf("unknown id changed the collection: %v", list)
	}

	removed, err = s.Remove(ctx, core.Addresses, a)
	if err != nil || !removed {
		t.Fatalf("remove %d: removed=%v err=%v", a, removed, err)
	}
	list, _ := s.List(ctx, core.Addresses)
	if len(list) != 1 || list[0].ID != b {
		t.Fatalf("unexpected list after remove: %v", list)
	}
}

func TestNewFromFilesSeeds(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	// No files -> default factories only
	s := NewFromFiles(dir)
	factories, _ := s.List(ctx, core.Factories)
	if len(factories) != 3 {
		t.Fatalf("expected default factories when files missing, got %v", factories)
	}

	mustWrite := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	mustWrite("seed_factories.txt", "# name;price\nAudi;7000\n\nbroken line\nMercedes; 6500\n")
	mustWrite("seed_zones.txt", "Zone 0-5;1000\nZone 5-10;notanumber\n")

	s = NewFromFiles(dir)
	factories, _ = s.List(ctx, core.Factories)
	if len(factories) != 2 || factories[0].Label != "Audi" || factories[1].Price != 6500 {
		t.Fatalf("unexpected factories: %v", factories)
	}
	zones, _ := s.List(ctx, core.Zones)
	if len(zones) != 1 || zones[0].Label != "Zone 0-5" {
		t.Fatalf("unexpected zones: %v", zones)
	}
}
