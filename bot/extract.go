package bot

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// knownLocations is the fixed gazetteer for location slots. Matching is exact
// containment, first hit wins; no tokenization.
var knownLocations = []string{
	"東京", "大阪", "沖縄", "札幌", "京都", "福岡", "北海道", "神戸", "横浜", "名古屋",
}

var (
	// Accepts 2025-08-20 (zero padding optional) and 8月20日 (year implied).
	datePattern = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})|(\d{1,2})月(\d{1,2})日`)

	isoDatePattern = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)

	// A count with an optional 名/人 suffix.
	countPattern = regexp.MustCompile(`(\d+)[名人]?`)

	// Reservation numbers are hyphenated hex, UUID-shaped.
	reservationPattern = regexp.MustCompile(`[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}`)
)

// extractLocation returns the first gazetteer entry contained in the message.
func extractLocation(message string) (string, bool) {
	for _, loc := range knownLocations {
		if strings.Contains(message, loc) {
			return loc, true
		}
	}
	return "", false
}

// containsDate reports whether the message holds a date literal in either
// accepted form. The raw message is stored as the slot value, matching how the
// transcript carries user-supplied dates.
func containsDate(message string) bool {
	return datePattern.MatchString(message)
}

// extractCount pulls a guest/passenger count out of the message. The count is
// kept as the matched string; formatting layers parse it when needed.
func extractCount(message string) (string, bool) {
	m := countPattern.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractReservationNumber finds a UUID-shaped token in the message.
func extractReservationNumber(message string) (string, bool) {
	m := reservationPattern.FindString(message)
	return m, m != ""
}

// parseISODate parses the first YYYY-M-D literal inside s into a date.
func parseISODate(s string) (time.Time, bool) {
	m := isoDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// nightsBetween derives the stay length from the checkin/checkout slot values,
// defaulting to one night when either is missing or malformed.
func nightsBetween(checkinRaw, checkoutRaw string) int {
	checkin, ok1 := parseISODate(checkinRaw)
	checkout, ok2 := parseISODate(checkoutRaw)
	if !ok1 || !ok2 {
		return 1
	}
	nights := int(checkout.Sub(checkin).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

func containsAny(message string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(message, w) {
			return true
		}
	}
	return false
}
