package services

import (
	"errors"
	"log"
	"time"

	"bookiniad-backend/models"

	"gorm.io/gorm"
)

// AvailabilityService answers day-granular capacity questions. It is strictly
// read-only: bookings never decrement these counters, so the answers are
// advisory, valid at read time.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// RoomsAvailable returns the room count for the accommodation on the date. When
// no availability row exists for that date (including dates far outside any
// seeded range) the accommodation's static TotalRooms is the capacity.
func (s *AvailabilityService) RoomsAvailable(acc models.Accommodation, date time.Time) int {
	var row models.AccommodationAvailability
	err := s.DB.Where("accommodation_id = ? AND date = ?", acc.ID, date.Format("2006-01-02")).
		First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("availability: room lookup failed for accommodation %d: %v", acc.ID, err)
		}
		return acc.TotalRooms
	}
	return row.AvailableRooms
}

// SeatsAvailable is the flight counterpart, falling back to the flight's static
// AvailableSeats when no per-date row exists.
func (s *AvailabilityService) SeatsAvailable(flight models.Flight, date time.Time) int {
	var row models.FlightAvailability
	err := s.DB.Where("flight_id = ? AND date = ?", flight.ID, date.Format("2006-01-02")).
		First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("availability: seat lookup failed for flight %d: %v", flight.ID, err)
		}
		return flight.AvailableSeats
	}
	return row.AvailableSeats
}

// StayAvailable reports whether every night of [checkin, checkout) has at least
// guests rooms. The checkout date itself is excluded.
func (s *AvailabilityService) StayAvailable(accommodationID uint, checkin, checkout time.Time, guests int) bool {
	var acc models.Accommodation
	if err := s.DB.First(&acc, accommodationID).Error; err != nil {
		log.Printf("availability: accommodation %d not found: %v", accommodationID, err)
		return false
	}
	return stayCovered(func(d time.Time) int { return s.RoomsAvailable(acc, d) }, checkin, checkout, guests)
}

// FlightAvailable reports whether the flight has at least passengers seats on
// the date.
func (s *AvailabilityService) FlightAvailable(flightID uint, date time.Time, passengers int) bool {
	var flight models.Flight
	if err := s.DB.First(&flight, flightID).Error; err != nil {
		log.Printf("availability: flight %d not found: %v", flightID, err)
		return false
	}
	return s.SeatsAvailable(flight, date) >= passengers
}

// stayCovered walks each night of the stay window; one short night rejects the
// whole stay.
func stayCovered(roomsOn func(time.Time) int, checkin, checkout time.Time, guests int) bool {
	if !checkout.After(checkin) {
		return false
	}
	for d := checkin; d.Before(checkout); d = d.AddDate(0, 0, 1) {
		if roomsOn(d) < guests {
			return false
		}
	}
	return true
}
