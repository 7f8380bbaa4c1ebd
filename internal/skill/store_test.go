package skill

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	fs := NewFileStore(path)

	if _, err := fs.Load(); !errors.Is(err, ErrNoSave) {
		t.Fatalf("Load on missing file = %v, want ErrNoSave", err)
	}
	want := &Snapshot{SkillPoints: 4, UnlockedSkillIDs: []string{"A", "B"}, LastSaveTimestamp: 42}
	if err := fs.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := fs.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.SkillPoints != 4 || len(got.UnlockedSkillIDs) != 2 || got.LastSaveTimestamp != 42 {
		t.Errorf("Load = %+v", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestCorruptSaveStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := NewFileStore(path)
	if _, err := fs.Load(); err == nil || errors.Is(err, ErrNoSave) {
		t.Fatalf("Load on corrupt file = %v", err)
	}

	g := NewGraph(testTrees(), fs, nil)
	g.Load()
	if g.Points() != 0 || g.IsUnlocked("A") {
		t.Error("corrupt save did not start fresh")
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ps, err := NewPostgresStore(dsn, "test-profile")
	if err != nil {
		t.Fatal(err)
	}
	defer ps.Close()

	want := &Snapshot{SkillPoints: 7, UnlockedSkillIDs: []string{"A"}, LastSaveTimestamp: 99}
	if err := ps.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := ps.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.SkillPoints != 7 || len(got.UnlockedSkillIDs) != 1 || got.UnlockedSkillIDs[0] != "A" {
		t.Errorf("Load = %+v", got)
	}
}
