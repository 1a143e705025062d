// Package media wraps yt-dlp for caption enumeration, caption download, and
// audio extraction. It is a thin I/O boundary: every operation conveys
// failure as an error for the transcript pipeline to degrade around, never a crash.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/anatolykoptev/go_youtube/internal/retry"
)

const (
	defaultYtdlpPath = "yt-dlp"
	defaultTimeout   = 10 * time.Minute

	// maxCaptionBytes bounds caption downloads; caption tracks are small,
	// anything larger is a platform error page.
	maxCaptionBytes = 4 * 1024 * 1024
)

// ErrYtdlpNotInstalled is returned when the yt-dlp binary cannot be executed.
var ErrYtdlpNotInstalled = errors.New("yt-dlp is not installed or not in PATH")

// CaptionFormat is one downloadable rendition of a caption track.
type CaptionFormat struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// CaptionTracks holds a video's caption inventory keyed by language code.
// Manual holds human-authored tracks, Automatic machine-generated ones.
type CaptionTracks struct {
	Manual    map[string][]CaptionFormat
	Automatic map[string][]CaptionFormat
}

// Empty reports whether no caption tracks exist at all.
func (t CaptionTracks) Empty() bool {
	return len(t.Manual) == 0 && len(t.Automatic) == 0
}

// Client runs yt-dlp as a subprocess and fetches caption bytes over HTTP.
type Client struct {
	// Path is the yt-dlp executable. Defaults to "yt-dlp".
	Path string

	// TempDir receives downloaded audio files, named by video id.
	TempDir string

	// Timeout bounds a single yt-dlp invocation. Defaults to 10 minutes.
	Timeout time.Duration

	// HTTPClient fetches caption track URLs. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// NewClient creates a media client writing audio artifacts under tempDir.
func NewClient(tempDir string) *Client {
	return &Client{
		Path:    defaultYtdlpPath,
		TempDir: tempDir,
		Timeout: defaultTimeout,
	}
}

// ytdlpInfo is the subset of `yt-dlp -J` output the pipeline needs.
type ytdlpInfo struct {
	Subtitles         map[string][]CaptionFormat `json:"subtitles"`
	AutomaticCaptions map[string][]CaptionFormat `json:"automatic_captions"`
}

// ListCaptionTracks enumerates all caption tracks for a video.
func (c *Client) ListCaptionTracks(ctx context.Context, videoID string) (CaptionTracks, error) {
	out, err := c.run(ctx, "-J", "--skip-download", "--no-warnings", watchURL(videoID))
	if err != nil {
		return CaptionTracks{}, err
	}
	return parseCaptionTracks(out)
}

// parseCaptionTracks decodes `yt-dlp -J` output into the caption inventory.
func parseCaptionTracks(out []byte) (CaptionTracks, error) {
	var info ytdlpInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return CaptionTracks{}, fmt.Errorf("media: parse yt-dlp info: %w", err)
	}
	return CaptionTracks{
		Manual:    info.Subtitles,
		Automatic: info.AutomaticCaptions,
	}, nil
}

// DownloadCaptions fetches the raw bytes of one caption format.
func (c *Client) DownloadCaptions(ctx context.Context, format CaptionFormat) ([]byte, error) {
	if format.URL == "" {
		return nil, errors.New("media: caption track has no URL")
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := retry.HTTP(ctx, retry.DefaultConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, format.URL, nil)
		if err != nil {
			return nil, err
		}
		return client.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("media: fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media: fetch captions: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes))
	if err != nil {
		return nil, fmt.Errorf("media: read captions: %w", err)
	}
	return data, nil
}

// DownloadAudio downloads best-available audio as an mp3 named by video id.
// The caller owns the returned file and must delete it.
func (c *Client) DownloadAudio(ctx context.Context, videoID string) (string, error) {
	outTmpl := filepath.Join(c.TempDir, videoID+".%(ext)s")
	_, err := c.run(ctx,
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "64K",
		"--no-warnings",
		"-o", outTmpl,
		watchURL(videoID),
	)
	if err != nil {
		return "", err
	}

	audioPath := filepath.Join(c.TempDir, videoID+".mp3")
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("media: audio file missing after download: %w", err)
	}
	return audioPath, nil
}

// run executes yt-dlp with the given arguments and returns stdout.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, c.path(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrYtdlpNotInstalled
		}
		if cmdCtx.Err() != nil {
			return nil, fmt.Errorf("media: yt-dlp: %w", cmdCtx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		return nil, fmt.Errorf("media: yt-dlp failed: %w: %s", err, msg)
	}
	return stdout.Bytes(), nil
}

func (c *Client) path() string {
	if c.Path != "" {
		return c.Path
	}
	return defaultYtdlpPath
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
