// Package summarize turns a video transcript into a structured summary via
// an LLM provider. Provider quirks (request shape, fenced JSON replies) stay
// inside this package; callers see one Result type.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// maxTranscriptChars bounds the transcript passed to the model; longer
// transcripts are cut to stay inside the context window.
const maxTranscriptChars = 50_000

// Request carries the material the model summarizes.
type Request struct {
	Title       string
	Description string
	Transcript  string
}

// Result is the provider-neutral summary record.
type Result struct {
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"key_points"`
	Highlights []string `json:"highlights"`
	Topics     []string `json:"topics"`
}

// Provider generates a summary from a transcript. One implementation per
// LLM vendor, selected once at construction time.
type Provider interface {
	Summarize(ctx context.Context, req Request) (*Result, error)
}

const systemPrompt = `You are an expert at analyzing and summarizing YouTube video content.
Given a video's title, description, and transcript, provide a comprehensive summary.

Your response must be in JSON format with the following structure:
{
    "summary": "A 2-3 paragraph summary of the main content",
    "key_points": ["Point 1", "Point 2", "Point 3", ...],
    "highlights": ["Important quote or moment 1", "Important quote or moment 2", ...],
    "topics": ["Topic/Tag 1", "Topic/Tag 2", ...]
}

Guidelines:
- summary: Capture the main message and key insights (2-3 paragraphs)
- key_points: List 3-7 main points discussed (concise bullet points)
- highlights: 2-5 notable quotes, statistics, or moments (if applicable)
- topics: 3-8 relevant tags/categories for content classification`

// buildUserPrompt formats the request, truncating oversized transcripts.
func buildUserPrompt(req Request) string {
	text := req.Transcript
	if len(text) > maxTranscriptChars {
		text = text[:maxTranscriptChars] + "..."
	}
	return fmt.Sprintf("Title: %s\n\nDescription: %s\n\nTranscript:\n%s\n\nPlease analyze this video and provide a structured summary.",
		req.Title, req.Description, text)
}

// StripFences removes markdown code fences some providers wrap JSON in.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseResult decodes a (possibly fenced) JSON summary reply.
func parseResult(raw string) (*Result, error) {
	var out Result
	if err := json.Unmarshal([]byte(StripFences(raw)), &out); err != nil {
		return nil, fmt.Errorf("summarize: parse reply: %w", err)
	}
	if out.Summary == "" || len(out.KeyPoints) == 0 {
		return nil, errors.New("summarize: reply missing summary or key_points")
	}
	if out.Highlights == nil {
		out.Highlights = []string{}
	}
	if out.Topics == nil {
		out.Topics = []string{}
	}
	return &out, nil
}

// Fallback is the degraded record used when summary generation fails, so a
// batch keeps its partial-success shape instead of dropping the video.
func Fallback(title string) *Result {
	return &Result{
		Summary:    "Summary generation failed. Title: " + title,
		KeyPoints:  []string{"Unable to generate summary"},
		Highlights: []string{},
		Topics:     []string{},
	}
}
