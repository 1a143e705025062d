package transcript

import "strings"

// whisperLang maps region-qualified YouTube language codes to the two-letter
// codes the Whisper API expects. Codes not listed fall back to the prefix
// before the first "-".
var whisperLang = map[string]string{
	"zh-CN": "zh",
	"zh-TW": "zh",
	"zh-HK": "zh",
	"en-US": "en",
	"en-GB": "en",
	"ja-JP": "ja",
	"ko-KR": "ko",
	"es-ES": "es",
	"fr-FR": "fr",
	"de-DE": "de",
	"it-IT": "it",
	"pt-BR": "pt",
	"ru-RU": "ru",
	"ar-SA": "ar",
	"hi-IN": "hi",
}

// NormalizeLang converts a YouTube language code to a Whisper language code.
// Exact table matches win; otherwise the region suffix is truncated.
func NormalizeLang(code string) string {
	if mapped, ok := whisperLang[code]; ok {
		return mapped
	}
	base, _, _ := strings.Cut(code, "-")
	return base
}

// LanguageHint carries the language metadata YouTube reports for a video.
type LanguageHint struct {
	DefaultAudioLanguage string
	DefaultLanguage      string
}

// DetectLanguage derives a Whisper language code from video metadata.
// Empty means no hint: let Whisper auto-detect.
func DetectLanguage(hint LanguageHint) string {
	if hint.DefaultAudioLanguage != "" {
		return NormalizeLang(hint.DefaultAudioLanguage)
	}
	if hint.DefaultLanguage != "" {
		return NormalizeLang(hint.DefaultLanguage)
	}
	return ""
}
