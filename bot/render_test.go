package bot

import (
	"strings"
	"testing"

	"gorm.io/datatypes"

	"bookiniad-backend/models"
)

func TestFormatYen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{100, "100"},
		{1000, "1,000"},
		{25000, "25,000"},
		{1234567, "1,234,567"},
		{-9500, "-9,500"},
	}
	for _, tt := range tests {
		if got := formatYen(tt.in); got != tt.want {
			t.Errorf("formatYen(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	t.Run("short string unchanged", func(t *testing.T) {
		if got := truncateRunes("東京のホテル", 60); got != "東京のホテル" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("long string cut with ellipsis", func(t *testing.T) {
		long := strings.Repeat("あ", 80)
		got := truncateRunes(long, 60)
		if !strings.HasSuffix(got, "...") {
			t.Errorf("got %q, want ellipsis suffix", got)
		}
		if n := len([]rune(got)); n != 63 {
			t.Errorf("rune length = %d, want 63", n)
		}
	})
	t.Run("multibyte never split", func(t *testing.T) {
		got := truncateRunes(strings.Repeat("沖", 10), 5)
		if got != strings.Repeat("沖", 5)+"..." {
			t.Errorf("got %q", got)
		}
	})
}

func TestAmenitiesSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", "なし"},
		{"empty array", "[]", "なし"},
		{"two items", `["WiFi","プール"]`, "WiFi, プール"},
		{"capped at three", `["WiFi","プール","スパ","ジム"]`, "WiFi, プール, スパ"},
		{"malformed json", `{broken`, "なし"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := amenitiesSummary([]byte(tt.raw)); got != tt.want {
				t.Errorf("amenitiesSummary(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRenderAccommodationResults(t *testing.T) {
	t.Parallel()

	slots := Slots{Location: "東京", CheckinDate: "2025-08-20", CheckoutDate: "2025-08-22"}

	t.Run("no results lists the conditions and hints", func(t *testing.T) {
		got := renderAccommodationResults(nil, slots, "2")
		for _, want := range []string{"東京", "2025-08-20", "2025-08-22", "見つかりませんでした", "ヒント"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("stay cost multiplies nights and guests", func(t *testing.T) {
		results := []models.Accommodation{
			{Name: "宿", Location: "東京", Rank: 3, PricePerNight: 10000, Amenities: datatypes.JSON(`["WiFi"]`)},
		}
		got := renderAccommodationResults(results, slots, "2")
		// 10000 yen x 2 nights x 2 guests
		if !strings.Contains(got, "¥40,000") {
			t.Errorf("output missing the stay total:\n%s", got)
		}
		if !strings.Contains(got, "2泊") {
			t.Errorf("output missing the night count:\n%s", got)
		}
	})
}

func TestRenderFlightResultsAverage(t *testing.T) {
	t.Parallel()

	slots := Slots{Departure: "東京", Destination: "沖縄", DepartureDate: "2025-08-20"}
	results := []models.Flight{
		{Name: "便A", FlightNumber: "SK1", Fee: 10000, AvailableSeats: 50},
		{Name: "便B", FlightNumber: "SK2", Fee: 30000, AvailableSeats: 50},
	}
	got := renderFlightResults(results, slots, "2")
	// Average of the per-flight totals: (20000 + 60000) / 2.
	if !strings.Contains(got, "¥40,000") {
		t.Errorf("output missing the average fare:\n%s", got)
	}
	if !strings.Contains(got, "SK1") || !strings.Contains(got, "SK2") {
		t.Errorf("output missing flight numbers:\n%s", got)
	}
}
