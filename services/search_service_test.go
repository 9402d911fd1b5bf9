package services

import (
	"testing"
	"time"
)

func TestLocationKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single word", "東京", []string{"東京"}},
		{"spaces", "東京 大阪", []string{"東京", "大阪"}},
		{"ascii comma", "東京,大阪", []string{"東京", "大阪"}},
		{"japanese comma", "東京、大阪", []string{"東京", "大阪"}},
		{"mixed with extra space", " 東京 、 大阪 ", []string{"東京", "大阪"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := locationKeywords(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("locationKeywords(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("locationKeywords(%q) = %v, want %v", tt.input, got, tt.want)
					break
				}
			}
		})
	}
}

func TestParseDateLoose(t *testing.T) {
	t.Parallel()

	t.Run("plain literal", func(t *testing.T) {
		got, ok := parseDateLoose("2025-08-20")
		want := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
		if !ok || !got.Equal(want) {
			t.Errorf("got (%v, %v), want (%v, true)", got, ok, want)
		}
	})

	t.Run("unpadded literal", func(t *testing.T) {
		got, ok := parseDateLoose("2025-8-2")
		want := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
		if !ok || !got.Equal(want) {
			t.Errorf("got (%v, %v), want (%v, true)", got, ok, want)
		}
	})

	t.Run("embedded in message text", func(t *testing.T) {
		got, ok := parseDateLoose("出発日は2025-08-20でお願いします")
		want := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
		if !ok || !got.Equal(want) {
			t.Errorf("got (%v, %v), want (%v, true)", got, ok, want)
		}
	})

	t.Run("invalid calendar date", func(t *testing.T) {
		if _, ok := parseDateLoose("2025-02-30"); ok {
			t.Error("expected 2025-02-30 to be rejected")
		}
	})

	t.Run("no literal", func(t *testing.T) {
		if _, ok := parseDateLoose("8月20日"); ok {
			t.Error("expected japanese date form to not parse")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, ok := parseDateLoose(""); ok {
			t.Error("expected empty string to not parse")
		}
	})
}
