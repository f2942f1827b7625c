package engineconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	p, err := LoadFrom(filepath.Join(dir, "missing.json"))
	if err != nil || p != Default() {
		t.Fatalf("missing file: %+v, %v", p, err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if p, _ := LoadFrom(bad); p != Default() {
		t.Errorf("invalid file: %+v", p)
	}
}

func TestSaveRoundTripKeepsPartialDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "engine.json")
	want := Default()
	want.ShowFPS = true
	want.Seed = 7
	if err := SaveTo(path, want); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if got, _ := LoadFrom(path); got != want {
		t.Errorf("LoadFrom = %+v, want %+v", got, want)
	}

	if err := os.WriteFile(path, []byte(`{"show_memalloc": true}`), 0644); err != nil {
		t.Fatal(err)
	}
	got, _ := LoadFrom(path)
	if !got.ShowMemAlloc || got.TargetFPS != 60 || got.WindowWidth != 1280 {
		t.Errorf("partial file = %+v", got)
	}
}
