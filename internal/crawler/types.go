package crawler

// ChannelInfoInput is the input for get_channel_metadata.
type ChannelInfoInput struct {
	Username string `json:"username" jsonschema:"YouTube username (e.g. '@mkbhd'), handle, or channel ID"`
}

// LatestVideosInput is the input for get_latest_videos_summary.
type LatestVideosInput struct {
	Username          string `json:"username" jsonschema:"YouTube username, handle, or channel ID"`
	N                 int    `json:"n,omitempty" jsonschema:"Number of latest videos to summarize (default: 5, max: 50)"`
	IncludeTranscript bool   `json:"include_transcript,omitempty" jsonschema:"Include full transcript in response (default: false)"`
}

// TimeRangeInput is the input for get_videos_by_timerange.
type TimeRangeInput struct {
	Username          string `json:"username" jsonschema:"YouTube username, handle, or channel ID"`
	StartDate         string `json:"start_date" jsonschema:"Start date in ISO format (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS)"`
	EndDate           string `json:"end_date" jsonschema:"End date in ISO format (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS)"`
	MaxVideos         int    `json:"max_videos,omitempty" jsonschema:"Maximum number of videos to process (default: 20, max: 100)"`
	IncludeTranscript bool   `json:"include_transcript,omitempty" jsonschema:"Include full transcripts (default: false)"`
}

// ChannelStatistics groups the channel counters.
type ChannelStatistics struct {
	Subscribers uint64 `json:"subscribers"`
	Videos      uint64 `json:"videos"`
	TotalViews  uint64 `json:"total_views"`
}

// ChannelInfoOutput is the output for get_channel_metadata.
type ChannelInfoOutput struct {
	Error       string            `json:"error,omitempty"`
	ChannelID   string            `json:"channel_id,omitempty"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	CustomURL   string            `json:"custom_url,omitempty"`
	AvatarURL   string            `json:"avatar_url,omitempty"`
	BannerURL   string            `json:"banner_url,omitempty"`
	Statistics  ChannelStatistics `json:"statistics"`
	PublishedAt string            `json:"published_at,omitempty"`
	Country     string            `json:"country,omitempty"`
	Keywords    []string          `json:"keywords,omitempty"`
}

// VideoDigest is one summarized video in a latest-videos response.
type VideoDigest struct {
	VideoID            string   `json:"video_id"`
	Title              string   `json:"title"`
	URL                string   `json:"url"`
	PublishedAt        string   `json:"published_at"`
	DurationSeconds    int64    `json:"duration_seconds"`
	ViewCount          uint64   `json:"view_count"`
	Summary            string   `json:"summary"`
	KeyPoints          []string `json:"key_points"`
	Highlights         []string `json:"highlights"`
	Topics             []string `json:"topics"`
	TranscriptSource   string   `json:"transcript_source"`
	TranscriptLanguage string   `json:"transcript_language,omitempty"`
	FullTranscript     string   `json:"full_transcript,omitempty"`
}

// LatestVideosOutput is the output for get_latest_videos_summary.
type LatestVideosOutput struct {
	Error           string        `json:"error,omitempty"`
	Channel         string        `json:"channel,omitempty"`
	VideosProcessed int           `json:"videos_processed"`
	Summaries       []VideoDigest `json:"summaries,omitempty"`
}

// TimeRange echoes the queried window back to the caller.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeRangeOutput is the output for get_videos_by_timerange.
type TimeRangeOutput struct {
	Error           string        `json:"error,omitempty"`
	Channel         string        `json:"channel,omitempty"`
	TimeRange       *TimeRange    `json:"time_range,omitempty"`
	VideosFound     int           `json:"videos_found"`
	VideosProcessed int           `json:"videos_processed"`
	Summaries       []VideoDigest `json:"summaries,omitempty"`
}
