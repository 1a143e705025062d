// Package crawler orchestrates the channel pipeline: resolve a channel,
// list its videos, extract a transcript per video, and summarize each one.
// Videos without a usable transcript are skipped, not fatal; responses
// report videos_processed so callers can see partial coverage.
package crawler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_youtube/internal/summarize"
	"github.com/anatolykoptev/go_youtube/internal/transcript"
	"github.com/anatolykoptev/go_youtube/internal/youtube"
)

// TranscriptExtractor yields a transcript for a video, or nil when none
// of the extraction strategies produced text.
type TranscriptExtractor interface {
	GetTranscript(ctx context.Context, videoID string, hint transcript.LanguageHint) *transcript.Transcript
}

// ChannelSource is the subset of the YouTube Data API the crawler needs.
type ChannelSource interface {
	ResolveChannelID(ctx context.Context, username string) (string, error)
	GetChannelMetadata(ctx context.Context, channelID string) (*youtube.ChannelMetadata, error)
	LatestVideos(ctx context.Context, channelID string, n int) ([]youtube.VideoMetadata, error)
	VideosByTimeRange(ctx context.Context, channelID string, start, end time.Time, maxVideos int) ([]youtube.VideoMetadata, error)
}

// Crawler wires the channel source, transcript extractor, and summarizer
// into the three tool operations. Store and Cache may be nil.
type Crawler struct {
	Source     ChannelSource
	Extractor  TranscriptExtractor
	Summarizer summarize.Provider
	Store      *Store
	Cache      *Cache
}

// ChannelInfo fetches channel metadata for a username, handle, or channel ID.
func (c *Crawler) ChannelInfo(ctx context.Context, input ChannelInfoInput) (*ChannelInfoOutput, error) {
	metrics.ChannelLookups.Add(1)

	cacheKey := CacheKey("channel_info", input.Username)
	if out, ok := CacheLoad[ChannelInfoOutput](ctx, c.Cache, cacheKey); ok {
		return &out, nil
	}

	channelID, err := c.Source.ResolveChannelID(ctx, input.Username)
	if errors.Is(err, youtube.ErrChannelNotFound) {
		return &ChannelInfoOutput{Error: "Channel not found: " + input.Username}, nil
	}
	if err != nil {
		return nil, err
	}

	meta, err := c.Source.GetChannelMetadata(ctx, channelID)
	if errors.Is(err, youtube.ErrChannelNotFound) {
		return &ChannelInfoOutput{Error: "Channel not found: " + input.Username}, nil
	}
	if err != nil {
		return nil, err
	}

	out := ChannelInfoOutput{
		ChannelID:   meta.ChannelID,
		Title:       meta.Title,
		Description: meta.Description,
		CustomURL:   meta.CustomURL,
		AvatarURL:   meta.AvatarURL,
		BannerURL:   meta.BannerURL,
		Statistics: ChannelStatistics{
			Subscribers: meta.SubscriberCount,
			Videos:      meta.VideoCount,
			TotalViews:  meta.ViewCount,
		},
		PublishedAt: meta.PublishedAt.Format(time.RFC3339),
		Country:     meta.Country,
		Keywords:    meta.Keywords,
	}
	CacheStore(ctx, c.Cache, cacheKey, out)
	return &out, nil
}

// LatestVideos summarizes the n most recent videos of a channel.
func (c *Crawler) LatestVideos(ctx context.Context, input LatestVideosInput) (*LatestVideosOutput, error) {
	metrics.VideoBatches.Add(1)

	channelID, err := c.Source.ResolveChannelID(ctx, input.Username)
	if errors.Is(err, youtube.ErrChannelNotFound) {
		return &LatestVideosOutput{Error: "Channel not found: " + input.Username}, nil
	}
	if err != nil {
		return nil, err
	}

	videos, err := c.Source.LatestVideos(ctx, channelID, input.N)
	// A bogus channel-id-shaped input passes resolution untouched and only
	// surfaces here; it reads the same as an empty channel to the caller.
	if errors.Is(err, youtube.ErrNoVideos) || errors.Is(err, youtube.ErrChannelNotFound) {
		return &LatestVideosOutput{Error: "No videos found"}, nil
	}
	if err != nil {
		return nil, err
	}

	slog.Info("crawl: processing latest videos",
		slog.String("channel", input.Username), slog.Int("count", len(videos)))

	summaries := make([]VideoDigest, 0, len(videos))
	for i := range videos {
		video := &videos[i]
		digest := c.processVideo(ctx, video, input.IncludeTranscript)
		if digest == nil {
			continue
		}
		summaries = append(summaries, *digest)
	}

	return &LatestVideosOutput{
		Channel:         input.Username,
		VideosProcessed: len(summaries),
		Summaries:       summaries,
	}, nil
}

// VideosByTimeRange summarizes videos published within [start, end].
func (c *Crawler) VideosByTimeRange(ctx context.Context, input TimeRangeInput, start, end time.Time) (*TimeRangeOutput, error) {
	metrics.VideoBatches.Add(1)

	channelID, err := c.Source.ResolveChannelID(ctx, input.Username)
	if errors.Is(err, youtube.ErrChannelNotFound) {
		return &TimeRangeOutput{Error: "Channel not found: " + input.Username}, nil
	}
	if err != nil {
		return nil, err
	}

	videos, err := c.Source.VideosByTimeRange(ctx, channelID, start, end, input.MaxVideos)
	if errors.Is(err, youtube.ErrNoVideos) || errors.Is(err, youtube.ErrChannelNotFound) {
		return &TimeRangeOutput{Error: "No videos found in this time range"}, nil
	}
	if err != nil {
		return nil, err
	}

	slog.Info("crawl: processing time range",
		slog.String("channel", input.Username),
		slog.Time("start", start), slog.Time("end", end),
		slog.Int("count", len(videos)))

	summaries := make([]VideoDigest, 0, len(videos))
	for i := range videos {
		video := &videos[i]
		digest := c.processVideo(ctx, video, input.IncludeTranscript)
		if digest == nil {
			continue
		}
		summaries = append(summaries, *digest)
	}

	return &TimeRangeOutput{
		Channel: input.Username,
		TimeRange: &TimeRange{
			Start: start.Format(time.RFC3339),
			End:   end.Format(time.RFC3339),
		},
		VideosFound:     len(videos),
		VideosProcessed: len(summaries),
		Summaries:       summaries,
	}, nil
}

// processVideo runs transcript extraction and summarization for one video.
// Returns nil when no transcript could be extracted; the video is skipped.
func (c *Crawler) processVideo(ctx context.Context, video *youtube.VideoMetadata, includeTranscript bool) *VideoDigest {
	slog.Info("crawl: processing video",
		slog.String("video_id", video.VideoID), slog.String("title", video.Title))

	tr := c.transcriptFor(ctx, video)
	if tr == nil {
		slog.Warn("crawl: no transcript, skipping", slog.String("video_id", video.VideoID))
		return nil
	}

	metrics.SummaryCalls.Add(1)
	result, err := c.Summarizer.Summarize(ctx, summarize.Request{
		Title:       video.Title,
		Description: video.Description,
		Transcript:  tr.Text,
	})
	if err != nil {
		// Degrade to a placeholder record rather than dropping the video.
		metrics.SummaryErrors.Add(1)
		slog.Error("crawl: summary generation failed",
			slog.String("video_id", video.VideoID), slog.Any("error", err))
		result = summarize.Fallback(video.Title)
	}

	digest := &VideoDigest{
		VideoID:            video.VideoID,
		Title:              video.Title,
		URL:                youtube.WatchURL(video.VideoID),
		PublishedAt:        video.PublishedAt.Format(time.RFC3339),
		DurationSeconds:    video.DurationSeconds,
		ViewCount:          video.ViewCount,
		Summary:            result.Summary,
		KeyPoints:          result.KeyPoints,
		Highlights:         result.Highlights,
		Topics:             result.Topics,
		TranscriptSource:   tr.Source,
		TranscriptLanguage: tr.Language,
	}
	if includeTranscript {
		digest.FullTranscript = tr.Text
	}
	return digest
}

// transcriptFor checks the store before running extraction, and persists
// freshly extracted transcripts for future crawls.
func (c *Crawler) transcriptFor(ctx context.Context, video *youtube.VideoMetadata) *transcript.Transcript {
	metrics.TranscriptRequests.Add(1)

	if tr, ok := c.Store.Get(ctx, video.VideoID); ok {
		slog.Debug("crawl: transcript store hit", slog.String("video_id", video.VideoID))
		return tr
	}

	tr := c.Extractor.GetTranscript(ctx, video.VideoID, transcript.LanguageHint{
		DefaultAudioLanguage: video.DefaultAudioLanguage,
		DefaultLanguage:      video.DefaultLanguage,
	})
	if tr == nil {
		metrics.TranscriptMisses.Add(1)
		return nil
	}

	switch tr.Source {
	case transcript.SourceSpeechToText:
		metrics.SpeechToTextRuns.Add(1)
	default:
		metrics.CaptionHits.Add(1)
	}

	if err := c.Store.Put(ctx, tr); err != nil {
		slog.Warn("crawl: transcript store write failed",
			slog.String("video_id", video.VideoID), slog.Any("error", err))
	}
	return tr
}
