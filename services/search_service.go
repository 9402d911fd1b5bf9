package services

import (
	"log"
	"regexp"
	"strings"
	"time"

	"bookiniad-backend/models"

	"gorm.io/gorm"
)

var isoDateLiteral = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)

// SearchService runs the read-only inventory lookups behind both the chat chains
// and the search endpoints. Queries are bounded (≤10 rows) and relax once before
// reporting no results; they never touch availability counters themselves.
type SearchService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{DB: db, Now: time.Now}
}

// locationKeywords splits a free-text location query on whitespace and commas.
func locationKeywords(location string) []string {
	cleaned := strings.NewReplacer(",", " ", "、", " ").Replace(location)
	return strings.Fields(cleaned)
}

// SearchAccommodations matches every keyword of the location query against
// location, name and description (case-insensitive containment, OR across
// keywords), orders by nightly price and caps at 10. Parties over 4 are
// restricted to multi-room properties. An empty strict result relaxes to
// location-or-name matching capped at 5.
func (s *SearchService) SearchAccommodations(location, checkinDate, checkoutDate string, guests int) []models.Accommodation {
	keywords := locationKeywords(location)

	query := s.DB.Model(&models.Accommodation{})
	if len(keywords) > 0 {
		var conds []string
		var args []interface{}
		for _, kw := range keywords {
			p := "%" + kw + "%"
			conds = append(conds, "(LOWER(location) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))")
			args = append(args, p, p, p)
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	} else if location != "" {
		p := "%" + location + "%"
		query = query.Where("LOWER(location) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", p, p)
	}
	if guests > 4 {
		query = query.Where("total_rooms >= ?", 2)
	}

	var results []models.Accommodation
	if err := query.Order("price_per_night ASC").Limit(10).Find(&results).Error; err != nil {
		log.Printf("search: accommodation query failed: %v", err)
		return nil
	}
	if len(results) > 0 {
		return results
	}

	// Relaxed tier: drop the description field from matching.
	if len(keywords) == 0 {
		return nil
	}
	var conds []string
	var args []interface{}
	for _, kw := range keywords {
		p := "%" + kw + "%"
		conds = append(conds, "(LOWER(location) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?))")
		args = append(args, p, p)
	}
	err := s.DB.Model(&models.Accommodation{}).
		Where(strings.Join(conds, " OR "), args...).
		Order("price_per_night ASC").
		Limit(5).
		Find(&results).Error
	if err != nil {
		log.Printf("search: relaxed accommodation query failed: %v", err)
		return nil
	}
	return results
}

// SearchFlights filters on origin and destination containment, restricted to
// departures from now on, optionally pinned to one calendar date, ordered by
// departure time and capped at 10. The relaxed tier ORs origin and destination
// and drops the date pin, capped at 5.
func (s *SearchService) SearchFlights(departure, destination, departureDate string, passengers int) []models.Flight {
	now := s.Now()

	query := s.DB.Model(&models.Flight{}).Where("departure_time > ?", now)
	if departure != "" {
		query = query.Where("LOWER(place_from) LIKE LOWER(?)", "%"+departure+"%")
	}
	if destination != "" {
		query = query.Where("LOWER(place_to) LIKE LOWER(?)", "%"+destination+"%")
	}
	if day, ok := parseDateLoose(departureDate); ok {
		query = query.Where("departure_time >= ? AND departure_time < ?", day, day.AddDate(0, 0, 1))
	}

	var results []models.Flight
	if err := query.Order("departure_time ASC").Limit(10).Find(&results).Error; err != nil {
		log.Printf("search: flight query failed: %v", err)
		return nil
	}
	if len(results) > 0 {
		return results
	}

	err := s.DB.Model(&models.Flight{}).
		Where("departure_time > ?", now).
		Where("LOWER(place_from) LIKE LOWER(?) OR LOWER(place_to) LIKE LOWER(?)",
			"%"+departure+"%", "%"+destination+"%").
		Order("departure_time ASC").
		Limit(5).
		Find(&results).Error
	if err != nil {
		log.Printf("search: relaxed flight query failed: %v", err)
		return nil
	}
	return results
}

// SearchPackages lists available packages, optionally filtered by the outbound
// flight's origin and destination.
func (s *SearchService) SearchPackages(departure, destination string) []models.TravelPackage {
	query := s.DB.Model(&models.TravelPackage{}).
		Preload("OutboundFlight").
		Preload("ReturnFlight").
		Preload("Accommodation").
		Where("is_available = ?", true)
	if departure != "" || destination != "" {
		query = query.Joins("LEFT JOIN flights ON flights.id = travel_packages.outbound_flight_id")
		if departure != "" {
			query = query.Where("LOWER(flights.place_from) LIKE LOWER(?)", "%"+departure+"%")
		}
		if destination != "" {
			query = query.Where("LOWER(flights.place_to) LIKE LOWER(?)", "%"+destination+"%")
		}
	}

	var results []models.TravelPackage
	if err := query.Limit(20).Find(&results).Error; err != nil {
		log.Printf("search: package query failed: %v", err)
		return nil
	}
	return results
}

// parseDateLoose finds a YYYY-M-D literal inside s (zero padding optional). Slot
// values carry the raw user message, so the literal may be embedded in text.
func parseDateLoose(s string) (time.Time, bool) {
	m := isoDateLiteral.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-1-2", m[1]+"-"+m[2]+"-"+m[3])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
