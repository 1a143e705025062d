package transcript

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempAudio(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, bytes.Repeat([]byte{0xFF}, size), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSizeGuardPassThrough(t *testing.T) {
	path := writeTempAudio(t, "small.mp3", 128)

	guard := &SizeGuard{Limit: 1024, runCommand: func(context.Context, string, ...string) error {
		t.Fatal("transcoder must not run for files under the limit")
		return nil
	}}

	got, err := guard.EnsureWithinLimit(context.Background(), path)
	if err != nil {
		t.Fatalf("EnsureWithinLimit: %v", err)
	}
	if got != path {
		t.Errorf("got %q, want original path %q", got, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("original file must survive: %v", err)
	}
}

func TestSizeGuardCompressesOversized(t *testing.T) {
	path := writeTempAudio(t, "big.mp3", 2048)

	var gotArgs []string
	guard := &SizeGuard{Limit: 1024, runCommand: func(_ context.Context, name string, args ...string) error {
		gotArgs = append([]string{name}, args...)
		return nil
	}}

	got, err := guard.EnsureWithinLimit(context.Background(), path)
	if err != nil {
		t.Fatalf("EnsureWithinLimit: %v", err)
	}

	want := filepath.Join(filepath.Dir(path), "big_compressed.mp3")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("original must be deleted after recompression")
	}

	if len(gotArgs) == 0 || gotArgs[0] != "ffmpeg" {
		t.Fatalf("unexpected command: %v", gotArgs)
	}
	for _, flag := range []string{"-b:a", "32k", "-ac", "1", "-ar", "16000", "-y"} {
		found := false
		for _, a := range gotArgs {
			if a == flag {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing transcoder arg %q in %v", flag, gotArgs)
		}
	}
}

func TestSizeGuardTranscoderFailure(t *testing.T) {
	path := writeTempAudio(t, "big.mp3", 2048)

	guard := &SizeGuard{Limit: 1024, runCommand: func(context.Context, string, ...string) error {
		return errors.New("boom")
	}}

	if _, err := guard.EnsureWithinLimit(context.Background(), path); err == nil {
		t.Fatal("expected error from failed transcoder")
	}
	// The original is gone even on failure: it was too large to keep.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("original must be deleted even when recompression fails")
	}
}

func TestSizeGuardMissingFile(t *testing.T) {
	guard := NewSizeGuard()
	if _, err := guard.EnsureWithinLimit(context.Background(), filepath.Join(t.TempDir(), "nope.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCompressedPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/abc123.mp3", "/tmp/abc123_compressed.mp3"},
		{"/tmp/abc123.m4a", "/tmp/abc123_compressed.mp3"},
		{"/tmp/noext", "/tmp/noext_compressed.mp3"},
		{"/tmp/dir.v2/clip", "/tmp/dir.v2/clip_compressed.mp3"},
	}
	for _, tt := range tests {
		if got := compressedPath(tt.in); got != tt.want {
			t.Errorf("compressedPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
