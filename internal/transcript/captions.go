package transcript

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Caption formats understood by ParseCaptions. json3 carries timing as
// structured events; vtt and srt are stripped of markup textually.
const (
	FormatJSON3 = "json3"
	FormatVTT   = "vtt"
	FormatSRT   = "srt"
)

var (
	vttHeaderRE    = regexp.MustCompile(`(?s)WEBVTT.*?\n\n`)
	vttTimestampRE = regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}.*?\n`)
	srtCueNumberRE = regexp.MustCompile(`(?m)^\d+\n`)
	srtTimestampRE = regexp.MustCompile(`\d{2}:\d{2}:\d{2},\d{3} --> \d{2}:\d{2}:\d{2},\d{3}\n`)
)

// json3Doc is the youtube json3 caption document: a list of timed events,
// each holding zero or more text segments.
type json3Doc struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// ParseCaptions flattens raw caption bytes into plain text, discarding
// timing and markup. Unknown formats and malformed input return an error;
// the pipeline treats both as "this step yielded nothing".
func ParseCaptions(raw []byte, format string) (string, error) {
	switch format {
	case FormatJSON3:
		return parseJSON3(raw)
	case FormatVTT:
		content := vttHeaderRE.ReplaceAllString(string(raw), "")
		content = vttTimestampRE.ReplaceAllString(content, "")
		return joinLines(content), nil
	case FormatSRT:
		content := srtCueNumberRE.ReplaceAllString(string(raw), "")
		content = srtTimestampRE.ReplaceAllString(content, "")
		return joinLines(content), nil
	default:
		return "", fmt.Errorf("unsupported caption format %q", format)
	}
}

func parseJSON3(raw []byte) (string, error) {
	var doc json3Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("parse json3 captions: %w", err)
	}

	var sb strings.Builder
	for _, event := range doc.Events {
		for _, seg := range event.Segs {
			text := strings.TrimSpace(seg.UTF8)
			if text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}

// joinLines collapses the remaining non-blank lines into one space-joined string.
func joinLines(content string) string {
	var parts []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
