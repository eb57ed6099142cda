package store

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "channel.state")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	var want State
	for i := range want.Root {
		want.Root[i] = int8(i%3) - 1
	}
	want.Index = 42
	for i := range want.NextRoot {
		want.NextRoot[i] = int8((i+1)%3) - 1
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("Load returned %+v, want %+v", got, want)
	}
}

func TestLoadMissingFileReturnsZeroState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.state")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var zero State
	if got != zero {
		t.Fatalf("Load on a missing file returned non-zero state %+v", got)
	}
}

func TestOpenTwiceFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "channel.state")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	defer s1.Close()

	if _, err := Open(path); err == nil {
		t.Fatalf("second Open on the same path succeeded while the first lock is held")
	}
}
