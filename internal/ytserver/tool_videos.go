package ytserver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_youtube/internal/crawler"
)

func registerLatestVideos(server *mcp.Server, cr *crawler.Crawler) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_latest_videos_summary",
		Description: "Get AI-powered summaries of the latest N videos from a YouTube channel. Fetches the most recent uploads, extracts transcripts (subtitles, auto-captions, or speech-to-text), and generates summaries with key points, highlights, and topics. Videos without any usable transcript are skipped.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input crawler.LatestVideosInput) (*mcp.CallToolResult, crawler.LatestVideosOutput, error) {
		if input.Username == "" {
			return nil, crawler.LatestVideosOutput{}, fmt.Errorf("username is required")
		}
		if input.N == 0 {
			input.N = 5
		}
		if input.N < 1 || input.N > 50 {
			return nil, crawler.LatestVideosOutput{Error: "n must be between 1 and 50"}, nil
		}

		slog.Info("tool: latest videos",
			slog.String("username", input.Username), slog.Int("n", input.N))

		cacheKey := crawler.CacheKey("latest_videos",
			input.Username, strconv.Itoa(input.N), strconv.FormatBool(input.IncludeTranscript))
		if out, ok := crawler.CacheLoad[crawler.LatestVideosOutput](ctx, cr.Cache, cacheKey); ok {
			return nil, out, nil
		}

		out, err := cr.LatestVideos(ctx, input)
		if err != nil {
			return nil, crawler.LatestVideosOutput{}, err
		}
		if out.Error == "" {
			crawler.CacheStore(ctx, cr.Cache, cacheKey, *out)
		}
		return nil, *out, nil
	})
}

func registerTimeRange(server *mcp.Server, cr *crawler.Crawler) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_videos_by_timerange",
		Description: "Get AI summaries of videos published within a specific date range. Accepts ISO dates (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS, 'Z' suffix allowed). Extracts transcripts and batch-summarizes each video; reports both videos found and videos successfully processed.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input crawler.TimeRangeInput) (*mcp.CallToolResult, crawler.TimeRangeOutput, error) {
		if input.Username == "" {
			return nil, crawler.TimeRangeOutput{}, fmt.Errorf("username is required")
		}
		if input.MaxVideos == 0 {
			input.MaxVideos = 20
		}
		if input.MaxVideos < 1 || input.MaxVideos > 100 {
			return nil, crawler.TimeRangeOutput{Error: "max_videos must be between 1 and 100"}, nil
		}

		start, err := ParseISODate(input.StartDate)
		if err != nil {
			return nil, crawler.TimeRangeOutput{Error: "Invalid date format: " + err.Error()}, nil
		}
		end, err := ParseISODate(input.EndDate)
		if err != nil {
			return nil, crawler.TimeRangeOutput{Error: "Invalid date format: " + err.Error()}, nil
		}

		slog.Info("tool: videos by time range",
			slog.String("username", input.Username),
			slog.Time("start", start), slog.Time("end", end))

		cacheKey := crawler.CacheKey("videos_by_timerange",
			input.Username, start.Format(time.RFC3339), end.Format(time.RFC3339),
			strconv.Itoa(input.MaxVideos), strconv.FormatBool(input.IncludeTranscript))
		if out, ok := crawler.CacheLoad[crawler.TimeRangeOutput](ctx, cr.Cache, cacheKey); ok {
			return nil, out, nil
		}

		out, err := cr.VideosByTimeRange(ctx, input, start, end)
		if err != nil {
			return nil, crawler.TimeRangeOutput{}, err
		}
		if out.Error == "" {
			crawler.CacheStore(ctx, cr.Cache, cacheKey, *out)
		}
		return nil, *out, nil
	})
}

// isoLayouts are the accepted date formats, from most to least specific.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISODate parses an ISO-8601 date or datetime. A trailing "Z" is
// treated as UTC; naive datetimes are also interpreted as UTC.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as ISO date", s)
}
