// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jevents

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creachadair/mds/mtest"
)

func TestCPUString(t *testing.T) {
	mtest.Swap(t, &cpuInfoPath, filepath.Join("testdata", "cpuinfo"))

	got, err := CPUString()
	if err != nil {
		t.Fatalf("CPUString failed: %v", err)
	}
	const want = "GenuineIntel-6-5E" // model 94
	if got != want {
		t.Errorf("CPUString: got %q, want %q", got, want)
	}
}

func TestCPUStringMissing(t *testing.T) {
	mtest.Swap(t, &cpuInfoPath, filepath.Join("testdata", "nonesuch"))

	if got, err := CPUString(); err == nil {
		t.Errorf("CPUString: got %q, want error", got)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Run("EventMapFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "events.json")
		if err := os.WriteFile(path, []byte("[]"), 0600); err != nil {
			t.Fatalf("Write fixture: %v", err)
		}
		t.Setenv("EVENTMAP", path)

		got, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath failed: %v", err)
		}
		if got != path {
			t.Errorf("DefaultPath: got %q, want %q", got, path)
		}
	})

	t.Run("EventMapID", func(t *testing.T) {
		t.Setenv("EVENTMAP", "Silvermont")
		t.Setenv("XDG_CACHE_HOME", filepath.FromSlash("/var/cache/u"))

		got, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath failed: %v", err)
		}
		want := filepath.FromSlash("/var/cache/u/pmu-events/Silvermont-core.json")
		if got != want {
			t.Errorf("DefaultPath: got %q, want %q", got, want)
		}
	})

	t.Run("CPUIdentity", func(t *testing.T) {
		mtest.Swap(t, &cpuInfoPath, filepath.Join("testdata", "cpuinfo"))
		t.Setenv("EVENTMAP", "")
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", filepath.FromSlash("/home/u"))

		got, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath failed: %v", err)
		}
		want := filepath.FromSlash("/home/u/.cache/pmu-events/GenuineIntel-6-5E.json")
		if got != want {
			t.Errorf("DefaultPath: got %q, want %q", got, want)
		}
	})

	t.Run("NoCacheDir", func(t *testing.T) {
		t.Setenv("EVENTMAP", "Silvermont")
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", "")

		if got, err := DefaultPath(); err == nil {
			t.Errorf("DefaultPath: got %q, want error", got)
		}
	})
}
