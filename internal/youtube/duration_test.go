package youtube

import "testing"

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT15S", 15},
		{"PT2H", 7200},
		{"PT10M", 600},
		{"PT0S", 0},
		// Malformed or unsupported values come back as zero seconds.
		{"P1DT2H", 0},
		{"4M13S", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := ParseISODuration(tt.in); got != tt.want {
			t.Errorf("ParseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
