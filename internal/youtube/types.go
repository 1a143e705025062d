package youtube

import "time"

// ChannelMetadata describes a YouTube channel as returned by the Data API.
type ChannelMetadata struct {
	ChannelID       string    `json:"channel_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CustomURL       string    `json:"custom_url,omitempty"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	BannerURL       string    `json:"banner_url,omitempty"`
	SubscriberCount uint64    `json:"subscriber_count"`
	VideoCount      uint64    `json:"video_count"`
	ViewCount       uint64    `json:"view_count"`
	PublishedAt     time.Time `json:"published_at"`
	Country         string    `json:"country,omitempty"`
	Keywords        []string  `json:"keywords,omitempty"`
}

// VideoMetadata describes a single video as returned by the Data API.
type VideoMetadata struct {
	VideoID      string
	Title        string
	Description  string
	ThumbnailURL string

	ChannelID    string
	ChannelTitle string

	ViewCount    uint64
	LikeCount    uint64
	CommentCount uint64

	PublishedAt     time.Time
	DurationSeconds int64

	Tags       []string
	CategoryID string

	HasSubtitles bool

	// DefaultAudioLanguage is the declared audio-track language, falling back
	// to the snippet's default language. Empty when YouTube reports neither.
	DefaultAudioLanguage string
	DefaultLanguage      string
}

// WatchURL returns the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
