package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// MaxUploadBytes is the Whisper API upload ceiling.
const MaxUploadBytes = 25 * 1024 * 1024

// SizeGuard enforces the speech-to-text upload ceiling by recompressing
// oversized audio (mono, 16 kHz, 32 kbps) with an external transcoder.
type SizeGuard struct {
	// Limit is the maximum allowed file size. Defaults to MaxUploadBytes.
	Limit int64

	// FFmpegPath is the transcoder binary. Defaults to "ffmpeg".
	FFmpegPath string

	// runCommand is swapped in tests.
	runCommand func(ctx context.Context, name string, args ...string) error
}

// NewSizeGuard creates a guard with the Whisper upload ceiling.
func NewSizeGuard() *SizeGuard {
	return &SizeGuard{Limit: MaxUploadBytes}
}

// EnsureWithinLimit returns a path to an audio file no larger than the limit.
// Files at or under the limit pass through untouched. Oversized files are
// recompressed to a new file and the original is deleted unconditionally once
// the transcoder has been invoked, so no attempt leaks the large download.
func (g *SizeGuard) EnsureWithinLimit(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("audio: stat: %w", err)
	}

	limit := g.Limit
	if limit == 0 {
		limit = MaxUploadBytes
	}
	if info.Size() <= limit {
		return path, nil
	}

	slog.Warn("audio file exceeds upload limit, compressing",
		slog.String("path", path),
		slog.Int64("size", info.Size()),
		slog.Int64("limit", limit))

	compressed := compressedPath(path)
	runErr := g.run(ctx, g.ffmpeg(),
		"-i", path,
		"-b:a", "32k",
		"-ac", "1",
		"-ar", "16000",
		"-y",
		compressed,
	)

	// The original is dead weight either way once the transcoder ran.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("audio: remove original failed", slog.Any("error", err))
	}

	if runErr != nil {
		os.Remove(compressed)
		return "", fmt.Errorf("audio: compress: %w", runErr)
	}
	return compressed, nil
}

func (g *SizeGuard) run(ctx context.Context, name string, args ...string) error {
	if g.runCommand != nil {
		return g.runCommand(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (g *SizeGuard) ffmpeg() string {
	if g.FFmpegPath != "" {
		return g.FFmpegPath
	}
	return "ffmpeg"
}

// compressedPath derives the output name: "<stem>_compressed.mp3".
func compressedPath(path string) string {
	stem := path
	if i := strings.LastIndexByte(path, '.'); i > strings.LastIndexByte(path, '/') {
		stem = path[:i]
	}
	return stem + "_compressed.mp3"
}
