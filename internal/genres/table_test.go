package genres_test

import (
	"os"
	"path/filepath"
	"testing"

	"cinesync/internal/genres"
)

func sampleMappings() []genres.Mapping {
	return []genres.Mapping{
		{TMDBID: 28, Name: "Action", ItemID: "item-action"},
		{TMDBID: 99, Name: "Documentary", ItemID: "item-documentary"},
		{TMDBID: 878, Name: "Science Fiction", ItemID: "item-scifi"},
	}
}

func TestResolvePreservesOrderAndDropsUnmatched(t *testing.T) {
	table := genres.NewTable(sampleMappings())

	refs := table.Resolve([]int64{878, 12345, 28})
	want := []string{"item-scifi", "item-action"}
	if len(refs) != len(want) {
		t.Fatalf("unexpected refs: %v", refs)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Fatalf("unexpected ref order: got %v want %v", refs, want)
		}
	}
}

func TestResolveEmptyInput(t *testing.T) {
	table := genres.NewTable(sampleMappings())
	if refs := table.Resolve(nil); len(refs) != 0 {
		t.Fatalf("expected no refs, got %v", refs)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "genres.toml")
	if err := genres.Save(path, sampleMappings()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	table, err := genres.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("unexpected table size: %d", table.Len())
	}
	mapping, ok := table.Lookup(99)
	if !ok || mapping.ItemID != "item-documentary" {
		t.Fatalf("unexpected mapping: %#v ok=%v", mapping, ok)
	}
}

func TestLoadMissingFileMentionsSeed(t *testing.T) {
	_, err := genres.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRejectsEntryWithoutItemID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.toml")
	content := "[[genre]]\ntmdb_id = 28\nname = \"Action\"\nitem_id = \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write mapping: %v", err)
	}
	if _, err := genres.Load(path); err == nil {
		t.Fatal("expected error for mapping without item_id")
	}
}

func TestNewTableIgnoresDuplicateIDs(t *testing.T) {
	table := genres.NewTable([]genres.Mapping{
		{TMDBID: 28, Name: "Action", ItemID: "first"},
		{TMDBID: 28, Name: "Action", ItemID: "second"},
	})
	if table.Len() != 1 {
		t.Fatalf("unexpected size: %d", table.Len())
	}
	mapping, _ := table.Lookup(28)
	if mapping.ItemID != "first" {
		t.Fatalf("expected first mapping kept, got %q", mapping.ItemID)
	}
}
