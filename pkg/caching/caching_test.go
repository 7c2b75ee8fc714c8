package caching

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_RoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	url := "https://fbref.com/en/comps/"
	if _, ok := c.Get(url); ok {
		t.Fatal("Get returned a hit for an empty cache")
	}

	if err := c.Set(url, []byte("<html>leagues</html>")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok := c.Get(url)
	if !ok {
		t.Fatal("Get missed after Set")
	}
	if string(data) != "<html>leagues</html>" {
		t.Errorf("Get = %q", data)
	}
}

func TestCache_ExpiredEntryMisses(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, time.Minute)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	url := "https://fbref.com/en/squads/18bb7c10/Arsenal-Stats"
	if err := c.Set(url, []byte("stale")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("cache dir: %v entries, err %v", len(entries), err)
	}
	old := time.Now().Add(-2 * time.Minute)
	if err := os.Chtimes(filepath.Join(dir, entries[0].Name()), old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	if _, ok := c.Get(url); ok {
		t.Error("expired entry served as a hit")
	}
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	url := "https://fbref.com/en/players/abc/Player-Stats"
	if err := c.Set(url, []byte("body")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	old := time.Now().Add(-24 * time.Hour)
	os.Chtimes(filepath.Join(dir, entries[0].Name()), old, old)

	if _, ok := c.Get(url); !ok {
		t.Error("zero TTL entry expired")
	}
}
