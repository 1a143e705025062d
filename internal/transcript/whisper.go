package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultWhisperBase  = "https://api.openai.com/v1"
	defaultWhisperModel = "whisper-1"
)

// STTResult is the speech-to-text backend's reply.
type STTResult struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments"`
}

// WhisperClient calls the OpenAI Whisper transcription API. The API takes
// multipart/form-data: audio bytes in the "file" field, parameters alongside.
type WhisperClient struct {
	APIKey  string
	BaseURL string // defaults to the OpenAI API
	Model   string // defaults to whisper-1
	HTTP    *http.Client
}

// NewWhisperClient creates a Whisper API client.
func NewWhisperClient(apiKey string) *WhisperClient {
	return &WhisperClient{
		APIKey: apiKey,
		HTTP:   &http.Client{Timeout: 10 * time.Minute},
	}
}

// Transcribe uploads the audio file and returns text with segment timing.
// language may be empty to let the backend auto-detect.
func (w *WhisperClient) Transcribe(ctx context.Context, audioPath, language string) (*STTResult, error) {
	if w.APIKey == "" {
		return nil, errors.New("whisper: api key not configured")
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("whisper: read audio: %w", err)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("model", w.model()); err != nil {
		return nil, fmt.Errorf("whisper: write model field: %w", err)
	}
	if err := form.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("whisper: write response_format field: %w", err)
	}
	if language != "" {
		if err := form.WriteField("language", language); err != nil {
			return nil, fmt.Errorf("whisper: write language field: %w", err)
		}
	}
	part, err := form.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("whisper: create file field: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("whisper: write audio data: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("whisper: close form: %w", err)
	}

	url := strings.TrimRight(w.baseURL(), "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("whisper: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.APIKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := w.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("whisper: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result STTResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("whisper: decode response: %w", err)
	}
	return &result, nil
}

func (w *WhisperClient) client() *http.Client {
	if w.HTTP != nil {
		return w.HTTP
	}
	return http.DefaultClient
}

func (w *WhisperClient) baseURL() string {
	if w.BaseURL != "" {
		return w.BaseURL
	}
	return defaultWhisperBase
}

func (w *WhisperClient) model() string {
	if w.Model != "" {
		return w.Model
	}
	return defaultWhisperModel
}
