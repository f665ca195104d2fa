package gemini

import "testing"

func TestParseRating(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    float64
		wantErr bool
	}{
		{"bare number", "7", 7, false},
		{"decimal", "6.5", 6.5, false},
		{"with prose", "Rating: 8/10", 8, false},
		{"leading whitespace", "  3 ", 3, false},
		{"clamped high", "15", 10, false},
		{"no number", "highly relevant", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRating(tt.reply)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRating(%q) expected an error", tt.reply)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRating(%q) errored: %v", tt.reply, err)
			}
			if got != tt.want {
				t.Errorf("ParseRating(%q) = %f, want %f", tt.reply, got, tt.want)
			}
		})
	}
}
