// Package youtube wraps the YouTube Data API v3 for channel and video reads.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// Sentinel errors surfaced to the tool layer.
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrNoVideos        = errors.New("no videos found")
)

const maxPageSize = 50

// Client is a YouTube Data API v3 client with request rate limiting.
type Client struct {
	svc     *ytapi.Service
	limiter *rate.Limiter
}

// NewClient creates a Data API client. The limiter spaces out API calls to
// stay clear of per-second quota bursts; the daily quota is the caller's problem.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("youtube: api key required")
	}
	svc, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}
	return &Client{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}, nil
}

// IsChannelID reports whether s has the shape of a YouTube channel id
// (fixed "UC" prefix, 24 characters). Shape only — no lookup is performed.
func IsChannelID(s string) bool {
	return strings.HasPrefix(s, "UC") && len(s) == 24
}

// ResolveChannelID converts a handle, legacy username, or channel id to a
// channel id. Inputs already shaped like a channel id pass through verbatim.
func (c *Client) ResolveChannelID(ctx context.Context, identifier string) (string, error) {
	if IsChannelID(identifier) {
		return identifier, nil
	}

	name := strings.TrimPrefix(identifier, "@")

	// Legacy usernames resolve directly.
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	resp, err := c.svc.Channels.List([]string{"id"}).ForUsername(name).MaxResults(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("youtube: channels.list forUsername: %w", err)
	}
	if len(resp.Items) > 0 {
		return resp.Items[0].Id, nil
	}

	// Handles and custom URLs need a channel search.
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	search, err := c.svc.Search.List([]string{"snippet"}).Q(name).Type("channel").MaxResults(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("youtube: search channel: %w", err)
	}
	if len(search.Items) == 0 {
		return "", ErrChannelNotFound
	}
	return search.Items[0].Snippet.ChannelId, nil
}

// GetChannelMetadata fetches full channel metadata for a handle, username, or id.
func (c *Client) GetChannelMetadata(ctx context.Context, identifier string) (*ChannelMetadata, error) {
	channelID, err := c.ResolveChannelID(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Channels.List([]string{"snippet", "statistics", "contentDetails", "brandingSettings"}).
		Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: channels.list: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrChannelNotFound
	}

	item := resp.Items[0]
	meta := &ChannelMetadata{
		ChannelID:   channelID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		CustomURL:   item.Snippet.CustomUrl,
		AvatarURL:   bestThumbnail(item.Snippet.Thumbnails),
		Country:     item.Snippet.Country,
		PublishedAt: parseTimestamp(item.Snippet.PublishedAt),
	}
	if item.Statistics != nil {
		meta.SubscriberCount = item.Statistics.SubscriberCount
		meta.VideoCount = item.Statistics.VideoCount
		meta.ViewCount = item.Statistics.ViewCount
	}
	if item.BrandingSettings != nil {
		if item.BrandingSettings.Image != nil {
			meta.BannerURL = item.BrandingSettings.Image.BannerExternalUrl
		}
		if item.BrandingSettings.Channel != nil && item.BrandingSettings.Channel.Keywords != "" {
			meta.Keywords = splitKeywords(item.BrandingSettings.Channel.Keywords)
		}
	}
	return meta, nil
}

// LatestVideos returns up to maxResults most recent uploads, newest first.
// A channel with no uploads yields ErrNoVideos.
func (c *Client) LatestVideos(ctx context.Context, channelID string, maxResults int) ([]VideoMetadata, error) {
	uploads, err := c.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	var videos []VideoMetadata
	pageToken := ""
	for len(videos) < maxResults {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(uploads).
			MaxResults(int64(min(maxPageSize, maxResults-len(videos)))).
			PageToken(pageToken).
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("youtube: playlistItems.list: %w", err)
		}

		ids := make([]string, 0, len(resp.Items))
		for _, item := range resp.Items {
			ids = append(ids, item.ContentDetails.VideoId)
		}
		details, err := c.videoDetails(ctx, ids)
		if err != nil {
			return nil, err
		}
		videos = append(videos, details...)

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if len(videos) == 0 {
		return nil, ErrNoVideos
	}
	if len(videos) > maxResults {
		videos = videos[:maxResults]
	}
	return videos, nil
}

// VideosByTimeRange returns up to maxResults videos published within [start, end],
// newest first (search order=date). An empty window yields ErrNoVideos.
func (c *Client) VideosByTimeRange(ctx context.Context, channelID string, start, end time.Time, maxResults int) ([]VideoMetadata, error) {
	var videos []VideoMetadata
	pageToken := ""
	for len(videos) < maxResults {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := c.svc.Search.List([]string{"id"}).
			ChannelId(channelID).
			Type("video").
			PublishedAfter(start.Format(time.RFC3339)).
			PublishedBefore(end.Format(time.RFC3339)).
			Order("date").
			MaxResults(int64(min(maxPageSize, maxResults-len(videos)))).
			PageToken(pageToken).
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("youtube: search videos: %w", err)
		}

		ids := make([]string, 0, len(resp.Items))
		for _, item := range resp.Items {
			if item.Id != nil && item.Id.VideoId != "" {
				ids = append(ids, item.Id.VideoId)
			}
		}
		details, err := c.videoDetails(ctx, ids)
		if err != nil {
			return nil, err
		}
		videos = append(videos, details...)

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if len(videos) == 0 {
		return nil, ErrNoVideos
	}
	if len(videos) > maxResults {
		videos = videos[:maxResults]
	}
	return videos, nil
}

// uploadsPlaylistID returns the channel's uploads playlist id.
func (c *Client) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	resp, err := c.svc.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("youtube: channels.list contentDetails: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", ErrChannelNotFound
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

// videoDetails fetches snippet/statistics/contentDetails for a batch of video ids.
func (c *Client) videoDetails(ctx context.Context, ids []string) ([]VideoMetadata, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(ids...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: videos.list: %w", err)
	}

	out := make([]VideoMetadata, 0, len(resp.Items))
	for _, item := range resp.Items {
		out = append(out, parseVideo(item))
	}
	return out, nil
}

func parseVideo(item *ytapi.Video) VideoMetadata {
	v := VideoMetadata{VideoID: item.Id}
	if item.Snippet != nil {
		v.Title = item.Snippet.Title
		v.Description = item.Snippet.Description
		v.ChannelID = item.Snippet.ChannelId
		v.ChannelTitle = item.Snippet.ChannelTitle
		v.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
		v.Tags = item.Snippet.Tags
		v.CategoryID = item.Snippet.CategoryId
		v.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
		v.DefaultLanguage = item.Snippet.DefaultLanguage
		v.DefaultAudioLanguage = item.Snippet.DefaultAudioLanguage
		if v.DefaultAudioLanguage == "" {
			v.DefaultAudioLanguage = item.Snippet.DefaultLanguage
		}
	}
	if item.Statistics != nil {
		v.ViewCount = item.Statistics.ViewCount
		v.LikeCount = item.Statistics.LikeCount
		v.CommentCount = item.Statistics.CommentCount
	}
	if item.ContentDetails != nil {
		v.DurationSeconds = ParseISODuration(item.ContentDetails.Duration)
		v.HasSubtitles = item.ContentDetails.Caption == "true"
	}
	return v
}

// parseTimestamp parses an RFC 3339 timestamp, returning the zero time on failure.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		slog.Debug("youtube: bad timestamp", slog.String("value", s))
		return time.Time{}
	}
	return t
}

// bestThumbnail picks the highest quality thumbnail URL available.
func bestThumbnail(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, thumb := range []*ytapi.Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}

// splitKeywords splits the brandingSettings keyword string. YouTube returns
// either comma-separated or space-separated (with quoted phrases) keywords.
func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
