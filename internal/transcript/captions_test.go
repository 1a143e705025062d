package transcript

import "testing"

func TestParseCaptionsJSON3(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "segments joined in event order",
			raw:  `{"events":[{"segs":[{"utf8":"hello"},{"utf8":"world"}]},{"segs":[{"utf8":"again"}]}]}`,
			want: "hello world again",
		},
		{
			name: "empty and whitespace segments dropped",
			raw:  `{"events":[{"segs":[{"utf8":"\n"},{"utf8":"  "},{"utf8":"kept"}]},{"segs":[]}]}`,
			want: "kept",
		},
		{
			name: "events without segs",
			raw:  `{"events":[{},{"segs":[{"utf8":"only"}]}]}`,
			want: "only",
		},
		{
			name: "no events",
			raw:  `{"events":[]}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCaptions([]byte(tt.raw), FormatJSON3)
			if err != nil {
				t.Fatalf("ParseCaptions: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCaptionsJSON3Malformed(t *testing.T) {
	if _, err := ParseCaptions([]byte("{not json"), FormatJSON3); err == nil {
		t.Error("expected error for malformed json3")
	}
}

func TestParseCaptionsVTT(t *testing.T) {
	raw := "WEBVTT\nKind: captions\nLanguage: en\n\n" +
		"00:00:00.000 --> 00:00:02.500\nfirst line\n\n" +
		"00:00:02.500 --> 00:00:05.000 align:start position:0%\nsecond line\ncontinues here\n"

	got, err := ParseCaptions([]byte(raw), FormatVTT)
	if err != nil {
		t.Fatalf("ParseCaptions: %v", err)
	}
	want := "first line second line continues here"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseCaptionsSRT(t *testing.T) {
	raw := "1\n00:00:00,000 --> 00:00:02,500\nfirst line\n\n" +
		"2\n00:00:02,500 --> 00:00:05,000\nsecond line\n"

	got, err := ParseCaptions([]byte(raw), FormatSRT)
	if err != nil {
		t.Fatalf("ParseCaptions: %v", err)
	}
	want := "first line second line"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseCaptionsUnknownFormat(t *testing.T) {
	if _, err := ParseCaptions([]byte("whatever"), "ttml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
