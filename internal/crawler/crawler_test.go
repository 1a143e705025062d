package crawler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anatolykoptev/go_youtube/internal/summarize"
	"github.com/anatolykoptev/go_youtube/internal/transcript"
	"github.com/anatolykoptev/go_youtube/internal/youtube"
)

type fakeSource struct {
	channelID  string
	resolveErr error
	meta       *youtube.ChannelMetadata
	videos     []youtube.VideoMetadata
	videosErr  error
}

func (f *fakeSource) ResolveChannelID(context.Context, string) (string, error) {
	return f.channelID, f.resolveErr
}

func (f *fakeSource) GetChannelMetadata(context.Context, string) (*youtube.ChannelMetadata, error) {
	if f.meta == nil {
		return nil, youtube.ErrChannelNotFound
	}
	return f.meta, nil
}

func (f *fakeSource) LatestVideos(context.Context, string, int) ([]youtube.VideoMetadata, error) {
	return f.videos, f.videosErr
}

func (f *fakeSource) VideosByTimeRange(context.Context, string, time.Time, time.Time, int) ([]youtube.VideoMetadata, error) {
	return f.videos, f.videosErr
}

// fakeExtractor returns a canned transcript per video id; absent ids yield nil.
type fakeExtractor struct {
	transcripts map[string]*transcript.Transcript
}

func (f *fakeExtractor) GetTranscript(_ context.Context, videoID string, _ transcript.LanguageHint) *transcript.Transcript {
	return f.transcripts[videoID]
}

type fakeSummarizer struct {
	err   error
	calls int
}

func (f *fakeSummarizer) Summarize(_ context.Context, req summarize.Request) (*summarize.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &summarize.Result{
		Summary:    "summary of " + req.Title,
		KeyPoints:  []string{"point"},
		Highlights: []string{},
		Topics:     []string{"topic"},
	}, nil
}

func testVideo(id, title string) youtube.VideoMetadata {
	return youtube.VideoMetadata{
		VideoID:         id,
		Title:           title,
		PublishedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		DurationSeconds: 300,
		ViewCount:       1000,
	}
}

func testTranscript(id string) *transcript.Transcript {
	return &transcript.Transcript{
		VideoID:  id,
		Language: "en",
		Source:   transcript.SourceManualCaptions,
		Text:     "transcript text",
	}
}

func TestLatestVideosSkipsMissingTranscripts(t *testing.T) {
	src := &fakeSource{
		channelID: "UC1234567890123456789012",
		videos:    []youtube.VideoMetadata{testVideo("v1", "First"), testVideo("v2", "Second"), testVideo("v3", "Third")},
	}
	ext := &fakeExtractor{transcripts: map[string]*transcript.Transcript{
		"v1": testTranscript("v1"),
		"v3": testTranscript("v3"),
	}}
	sum := &fakeSummarizer{}

	cr := &Crawler{Source: src, Extractor: ext, Summarizer: sum}
	out, err := cr.LatestVideos(context.Background(), LatestVideosInput{Username: "@chan", N: 3})
	if err != nil {
		t.Fatalf("LatestVideos: %v", err)
	}

	if out.VideosProcessed != 2 {
		t.Errorf("videos_processed = %d, want 2", out.VideosProcessed)
	}
	if len(out.Summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(out.Summaries))
	}
	if out.Summaries[0].VideoID != "v1" || out.Summaries[1].VideoID != "v3" {
		t.Errorf("unexpected summary order: %q, %q", out.Summaries[0].VideoID, out.Summaries[1].VideoID)
	}
	if sum.calls != 2 {
		t.Errorf("summarizer calls = %d, want 2", sum.calls)
	}
	if out.Summaries[0].URL != "https://www.youtube.com/watch?v=v1" {
		t.Errorf("url = %q", out.Summaries[0].URL)
	}
	if out.Summaries[0].FullTranscript != "" {
		t.Error("full transcript must be omitted unless requested")
	}
}

func TestLatestVideosIncludeTranscript(t *testing.T) {
	src := &fakeSource{channelID: "UC1234567890123456789012", videos: []youtube.VideoMetadata{testVideo("v1", "First")}}
	ext := &fakeExtractor{transcripts: map[string]*transcript.Transcript{"v1": testTranscript("v1")}}

	cr := &Crawler{Source: src, Extractor: ext, Summarizer: &fakeSummarizer{}}
	out, err := cr.LatestVideos(context.Background(), LatestVideosInput{Username: "@chan", N: 1, IncludeTranscript: true})
	if err != nil {
		t.Fatalf("LatestVideos: %v", err)
	}
	if out.Summaries[0].FullTranscript != "transcript text" {
		t.Errorf("full_transcript = %q", out.Summaries[0].FullTranscript)
	}
}

func TestLatestVideosFallbackOnSummarizerError(t *testing.T) {
	src := &fakeSource{channelID: "UC1234567890123456789012", videos: []youtube.VideoMetadata{testVideo("v1", "Broken Video")}}
	ext := &fakeExtractor{transcripts: map[string]*transcript.Transcript{"v1": testTranscript("v1")}}
	sum := &fakeSummarizer{err: errors.New("llm down")}

	cr := &Crawler{Source: src, Extractor: ext, Summarizer: sum}
	out, err := cr.LatestVideos(context.Background(), LatestVideosInput{Username: "@chan", N: 1})
	if err != nil {
		t.Fatalf("LatestVideos: %v", err)
	}

	if out.VideosProcessed != 1 {
		t.Fatalf("videos_processed = %d, want 1 (fallback keeps the video)", out.VideosProcessed)
	}
	got := out.Summaries[0]
	if got.Summary != "Summary generation failed. Title: Broken Video" {
		t.Errorf("summary = %q", got.Summary)
	}
	if len(got.KeyPoints) != 1 || got.KeyPoints[0] != "Unable to generate summary" {
		t.Errorf("key_points = %v", got.KeyPoints)
	}
}

func TestLatestVideosChannelNotFound(t *testing.T) {
	src := &fakeSource{resolveErr: youtube.ErrChannelNotFound}

	cr := &Crawler{Source: src, Extractor: &fakeExtractor{}, Summarizer: &fakeSummarizer{}}
	out, err := cr.LatestVideos(context.Background(), LatestVideosInput{Username: "@missing", N: 5})
	if err != nil {
		t.Fatalf("LatestVideos: %v", err)
	}
	if out.Error != "Channel not found: @missing" {
		t.Errorf("error = %q", out.Error)
	}
}

func TestLatestVideosEmptyChannel(t *testing.T) {
	src := &fakeSource{channelID: "UC1234567890123456789012", videosErr: youtube.ErrNoVideos}

	cr := &Crawler{Source: src, Extractor: &fakeExtractor{}, Summarizer: &fakeSummarizer{}}
	out, err := cr.LatestVideos(context.Background(), LatestVideosInput{Username: "@chan", N: 5})
	if err != nil {
		t.Fatalf("LatestVideos: %v", err)
	}
	if out.Error != "No videos found" {
		t.Errorf("error = %q", out.Error)
	}
}

func TestLatestVideosChannelVanishesAtListing(t *testing.T) {
	// A well-shaped but nonexistent channel id skips resolution and fails
	// only when the uploads playlist is looked up.
	src := &fakeSource{channelID: "UC0000000000000000000000", videosErr: youtube.ErrChannelNotFound}

	cr := &Crawler{Source: src, Extractor: &fakeExtractor{}, Summarizer: &fakeSummarizer{}}
	out, err := cr.LatestVideos(context.Background(), LatestVideosInput{Username: "UC0000000000000000000000", N: 5})
	if err != nil {
		t.Fatalf("LatestVideos: %v", err)
	}
	if out.Error != "No videos found" {
		t.Errorf("error = %q", out.Error)
	}
}

func TestVideosByTimeRange(t *testing.T) {
	src := &fakeSource{
		channelID: "UC1234567890123456789012",
		videos:    []youtube.VideoMetadata{testVideo("v1", "First"), testVideo("v2", "Second")},
	}
	ext := &fakeExtractor{transcripts: map[string]*transcript.Transcript{"v1": testTranscript("v1")}}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	cr := &Crawler{Source: src, Extractor: ext, Summarizer: &fakeSummarizer{}}
	out, err := cr.VideosByTimeRange(context.Background(), TimeRangeInput{Username: "@chan", MaxVideos: 20}, start, end)
	if err != nil {
		t.Fatalf("VideosByTimeRange: %v", err)
	}

	if out.VideosFound != 2 {
		t.Errorf("videos_found = %d, want 2", out.VideosFound)
	}
	if out.VideosProcessed != 1 {
		t.Errorf("videos_processed = %d, want 1", out.VideosProcessed)
	}
	if out.TimeRange == nil || out.TimeRange.Start != "2026-03-01T00:00:00Z" {
		t.Errorf("time_range = %+v", out.TimeRange)
	}
}

func TestVideosByTimeRangeEmpty(t *testing.T) {
	src := &fakeSource{channelID: "UC1234567890123456789012", videosErr: youtube.ErrNoVideos}

	cr := &Crawler{Source: src, Extractor: &fakeExtractor{}, Summarizer: &fakeSummarizer{}}
	out, err := cr.VideosByTimeRange(context.Background(), TimeRangeInput{Username: "@chan", MaxVideos: 20},
		time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("VideosByTimeRange: %v", err)
	}
	if out.Error != "No videos found in this time range" {
		t.Errorf("error = %q", out.Error)
	}
}

func TestVideosByTimeRangeChannelVanishesAtListing(t *testing.T) {
	src := &fakeSource{channelID: "UC0000000000000000000000", videosErr: youtube.ErrChannelNotFound}

	cr := &Crawler{Source: src, Extractor: &fakeExtractor{}, Summarizer: &fakeSummarizer{}}
	out, err := cr.VideosByTimeRange(context.Background(), TimeRangeInput{Username: "UC0000000000000000000000", MaxVideos: 20},
		time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("VideosByTimeRange: %v", err)
	}
	if out.Error != "No videos found in this time range" {
		t.Errorf("error = %q", out.Error)
	}
}

func TestChannelInfo(t *testing.T) {
	src := &fakeSource{
		channelID: "UC1234567890123456789012",
		meta: &youtube.ChannelMetadata{
			ChannelID:       "UC1234567890123456789012",
			Title:           "Test Channel",
			Description:     "about things",
			SubscriberCount: 42,
			VideoCount:      7,
			ViewCount:       9001,
			PublishedAt:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Country:         "US",
			Keywords:        []string{"tech"},
		},
	}

	cr := &Crawler{Source: src, Extractor: &fakeExtractor{}, Summarizer: &fakeSummarizer{}}
	out, err := cr.ChannelInfo(context.Background(), ChannelInfoInput{Username: "@chan"})
	if err != nil {
		t.Fatalf("ChannelInfo: %v", err)
	}

	if out.Title != "Test Channel" {
		t.Errorf("title = %q", out.Title)
	}
	if out.Statistics.Subscribers != 42 || out.Statistics.Videos != 7 || out.Statistics.TotalViews != 9001 {
		t.Errorf("statistics = %+v", out.Statistics)
	}
	if out.PublishedAt != "2020-01-01T00:00:00Z" {
		t.Errorf("published_at = %q", out.PublishedAt)
	}
}

func TestChannelInfoNotFound(t *testing.T) {
	src := &fakeSource{resolveErr: youtube.ErrChannelNotFound}

	cr := &Crawler{Source: src, Extractor: &fakeExtractor{}, Summarizer: &fakeSummarizer{}}
	out, err := cr.ChannelInfo(context.Background(), ChannelInfoInput{Username: "@missing"})
	if err != nil {
		t.Fatalf("ChannelInfo: %v", err)
	}
	if out.Error != "Channel not found: @missing" {
		t.Errorf("error = %q", out.Error)
	}
}
