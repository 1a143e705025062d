// Package transcript turns a video id into plain text suitable for
// summarization, trying platform captions first and falling back to
// speech-to-text over downloaded audio.
package transcript

// Transcript source tags, carried through to the final summary.
const (
	SourceManualCaptions = "youtube_subtitles"
	SourceAutoCaptions   = "youtube_auto_captions"
	SourceSpeechToText   = "openai_whisper_api"
)

// Segment is one timed span of speech-to-text output.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the pipeline's output. Text is always non-empty; "no
// transcript" is modeled as a nil *Transcript, never an empty one.
type Transcript struct {
	VideoID  string    `json:"video_id"`
	Language string    `json:"language"`
	Source   string    `json:"source"`
	Text     string    `json:"text"`
	Segments []Segment `json:"segments,omitempty"`
}
