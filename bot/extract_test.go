package bot

import (
	"testing"
	"time"
)

func TestExtractLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
		ok      bool
	}{
		{"exact", "東京", "東京", true},
		{"embedded", "来月東京に行きたいです", "東京", true},
		{"first match wins", "東京から大阪へ", "東京", true},
		{"unknown place", "ニューヨーク", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractLocation(tt.message)
			if got != tt.want || ok != tt.ok {
				t.Errorf("extractLocation(%q) = (%q, %v), want (%q, %v)", tt.message, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestContainsDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		want    bool
	}{
		{"2025-08-20", true},
		{"2025-8-2", true},
		{"8月20日", true},
		{"12月1日", true},
		{"チェックインは2025-08-20です", true},
		{"明日", false},
		{"08/20", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := containsDate(tt.message); got != tt.want {
				t.Errorf("containsDate(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestExtractCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"2名", "2", true},
		{"3人", "3", true},
		{"4", "4", true},
		{"10名でお願いします", "10", true},
		{"ふたり", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := extractCount(tt.message)
			if got != tt.want || ok != tt.ok {
				t.Errorf("extractCount(%q) = (%q, %v), want (%q, %v)", tt.message, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractReservationNumber(t *testing.T) {
	t.Parallel()

	valid := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	t.Run("bare uuid", func(t *testing.T) {
		got, ok := extractReservationNumber(valid)
		if !ok || got != valid {
			t.Errorf("got (%q, %v)", got, ok)
		}
	})
	t.Run("embedded in sentence", func(t *testing.T) {
		got, ok := extractReservationNumber("予約番号は " + valid + " です")
		if !ok || got != valid {
			t.Errorf("got (%q, %v)", got, ok)
		}
	})
	t.Run("non hex rejected", func(t *testing.T) {
		if _, ok := extractReservationNumber("zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"); ok {
			t.Error("expected no match for non-hex token")
		}
	})
	t.Run("too short rejected", func(t *testing.T) {
		if _, ok := extractReservationNumber("a1b2c3d4-e5f6-7890"); ok {
			t.Error("expected no match for truncated token")
		}
	})
}

func TestParseISODate(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		got, ok := parseISODate("2025-08-20")
		want := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
		if !ok || !got.Equal(want) {
			t.Errorf("got (%v, %v), want (%v, true)", got, ok, want)
		}
	})
	t.Run("unpadded", func(t *testing.T) {
		got, ok := parseISODate("2025-8-2")
		want := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
		if !ok || !got.Equal(want) {
			t.Errorf("got (%v, %v), want (%v, true)", got, ok, want)
		}
	})
	t.Run("embedded in message", func(t *testing.T) {
		got, ok := parseISODate("チェックインは2025-08-20でお願いします")
		want := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
		if !ok || !got.Equal(want) {
			t.Errorf("got (%v, %v), want (%v, true)", got, ok, want)
		}
	})
	t.Run("out of range month", func(t *testing.T) {
		if _, ok := parseISODate("2025-13-01"); ok {
			t.Error("expected month 13 to be rejected")
		}
	})
	t.Run("japanese form not parseable", func(t *testing.T) {
		if _, ok := parseISODate("8月20日"); ok {
			t.Error("expected 8月20日 to not parse as ISO")
		}
	})
}

func TestNightsBetween(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		checkin  string
		checkout string
		want     int
	}{
		{"two nights", "2025-08-20", "2025-08-22", 2},
		{"one night", "2025-08-20", "2025-08-21", 1},
		{"same day defaults", "2025-08-20", "2025-08-20", 1},
		{"reversed defaults", "2025-08-22", "2025-08-20", 1},
		{"malformed checkin defaults", "8月20日", "2025-08-22", 1},
		{"missing checkout defaults", "2025-08-20", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nightsBetween(tt.checkin, tt.checkout); got != tt.want {
				t.Errorf("nightsBetween(%q, %q) = %d, want %d", tt.checkin, tt.checkout, got, tt.want)
			}
		})
	}
}
