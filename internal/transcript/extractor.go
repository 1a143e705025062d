package transcript

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/media"
)

// defaultPreferredLang is the caption language picked when the caller has no
// preference and the track exists.
const defaultPreferredLang = "en"

// MediaSource is the caption/audio boundary, implemented by media.Client.
type MediaSource interface {
	ListCaptionTracks(ctx context.Context, videoID string) (media.CaptionTracks, error)
	DownloadCaptions(ctx context.Context, format media.CaptionFormat) ([]byte, error)
	DownloadAudio(ctx context.Context, videoID string) (string, error)
}

// SpeechToText converts an audio file to text, implemented by WhisperClient.
type SpeechToText interface {
	Transcribe(ctx context.Context, audioPath, language string) (*STTResult, error)
}

// Extractor acquires transcripts: platform captions first, then speech-to-text.
// All collaborator failures are absorbed; a video that yields nothing returns
// nil rather than an error.
type Extractor struct {
	Media         MediaSource
	STT           SpeechToText
	Guard         *SizeGuard
	PreferredLang string
}

// NewExtractor wires the media adapter and speech-to-text backend.
func NewExtractor(source MediaSource, stt SpeechToText) *Extractor {
	return &Extractor{
		Media:         source,
		STT:           stt,
		Guard:         NewSizeGuard(),
		PreferredLang: defaultPreferredLang,
	}
}

// GetTranscript tries captions, then speech-to-text. nil means no transcript
// could be obtained from any source; that is a logged, non-fatal outcome.
func (e *Extractor) GetTranscript(ctx context.Context, videoID string, hint LanguageHint) *Transcript {
	if t := e.fromCaptions(ctx, videoID); t != nil {
		return t
	}
	return e.fromSpeechToText(ctx, videoID, DetectLanguage(hint))
}

// fromCaptions attempts step 1: platform caption tracks.
func (e *Extractor) fromCaptions(ctx context.Context, videoID string) *Transcript {
	tracks, err := e.Media.ListCaptionTracks(ctx, videoID)
	if err != nil {
		slog.Warn("captions: enumeration failed", slog.String("video_id", videoID), slog.Any("error", err))
		return nil
	}
	if tracks.Empty() {
		slog.Info("captions: none available", slog.String("video_id", videoID))
		return nil
	}

	// Manual tracks beat automatic ones outright, whatever the languages.
	set := tracks.Manual
	source := SourceManualCaptions
	if len(set) == 0 {
		set = tracks.Automatic
		source = SourceAutoCaptions
	}

	language := e.pickLanguage(set)
	if len(set[language]) == 0 {
		slog.Warn("captions: track has no formats",
			slog.String("video_id", videoID), slog.String("lang", language))
		return nil
	}
	format := pickFormat(set[language])

	raw, err := e.Media.DownloadCaptions(ctx, format)
	if err != nil {
		slog.Warn("captions: download failed",
			slog.String("video_id", videoID), slog.String("lang", language), slog.Any("error", err))
		return nil
	}

	text, err := ParseCaptions(raw, format.Ext)
	if err != nil {
		slog.Warn("captions: parse failed",
			slog.String("video_id", videoID), slog.String("format", format.Ext), slog.Any("error", err))
		return nil
	}
	if text == "" {
		return nil
	}

	return &Transcript{
		VideoID:  videoID,
		Language: language,
		Source:   source,
		Text:     text,
	}
}

// fromSpeechToText attempts step 3: download audio, guard the size, transcribe.
func (e *Extractor) fromSpeechToText(ctx context.Context, videoID, language string) *Transcript {
	if e.STT == nil {
		slog.Warn("stt: backend not configured", slog.String("video_id", videoID))
		return nil
	}

	audioPath, err := e.Media.DownloadAudio(ctx, videoID)
	if err != nil {
		slog.Warn("stt: audio download failed", slog.String("video_id", videoID), slog.Any("error", err))
		return nil
	}

	guard := e.Guard
	if guard == nil {
		guard = NewSizeGuard()
	}
	audioPath, err = guard.EnsureWithinLimit(ctx, audioPath)
	if err != nil {
		slog.Warn("stt: size guard failed", slog.String("video_id", videoID), slog.Any("error", err))
		return nil
	}

	result, err := e.STT.Transcribe(ctx, audioPath, language)

	// The artifact never outlives the call, success or not.
	if rmErr := os.Remove(audioPath); rmErr != nil && !os.IsNotExist(rmErr) {
		slog.Warn("stt: remove audio failed", slog.Any("error", rmErr))
	}

	if err != nil {
		slog.Warn("stt: transcription failed", slog.String("video_id", videoID), slog.Any("error", err))
		return nil
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return nil
	}

	lang := result.Language
	if lang == "" {
		lang = language
	}
	if lang == "" {
		lang = "unknown"
	}

	return &Transcript{
		VideoID:  videoID,
		Language: lang,
		Source:   SourceSpeechToText,
		Text:     text,
		Segments: result.Segments,
	}
}

// pickLanguage selects the preferred language if present, else the first
// available language in sorted order for determinism.
func (e *Extractor) pickLanguage(set map[string][]media.CaptionFormat) string {
	preferred := e.PreferredLang
	if preferred == "" {
		preferred = defaultPreferredLang
	}
	if _, ok := set[preferred]; ok {
		return preferred
	}

	langs := make([]string, 0, len(set))
	for lang := range set {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs[0]
}

// pickFormat prefers json3 (structured timing) over textual formats.
func pickFormat(formats []media.CaptionFormat) media.CaptionFormat {
	for _, f := range formats {
		if f.Ext == FormatJSON3 {
			return f
		}
	}
	return formats[0]
}
