package crawler

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the crawler.
var metrics struct {
	ChannelLookups     atomic.Int64
	VideoBatches       atomic.Int64
	TranscriptRequests atomic.Int64
	CaptionHits        atomic.Int64
	SpeechToTextRuns   atomic.Int64
	TranscriptMisses   atomic.Int64
	SummaryCalls       atomic.Int64
	SummaryErrors      atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics(c *Cache) map[string]int64 {
	hits, misses := c.Stats()
	return map[string]int64{
		"channel_lookups":     metrics.ChannelLookups.Load(),
		"video_batches":       metrics.VideoBatches.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"caption_hits":        metrics.CaptionHits.Load(),
		"speech_to_text_runs": metrics.SpeechToTextRuns.Load(),
		"transcript_misses":   metrics.TranscriptMisses.Load(),
		"summary_calls":       metrics.SummaryCalls.Load(),
		"summary_errors":      metrics.SummaryErrors.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics(c *Cache) string {
	m := GetMetrics(c)
	var sb strings.Builder
	keys := []string{
		"channel_lookups", "video_batches",
		"transcript_requests", "caption_hits", "speech_to_text_runs", "transcript_misses",
		"summary_calls", "summary_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
