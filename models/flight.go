package models

import "time"

// Flight types.
const (
	FlightTypeDomestic      = "domestic"
	FlightTypeInternational = "international"
)

// Flight is one scheduled departure, not a recurring route. Several rows sharing a
// flight number but departing on different days are the same commercial flight on
// different days, so lookups must pair the number with a date.
type Flight struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string    `gorm:"column:name;size:120" json:"name"`
	FlightNumber   string    `gorm:"column:flight_number;size:20;index" json:"flight_number"`
	FlightType     string    `gorm:"column:flight_type;size:20;default:domestic" json:"flight_type"`
	PlaceFrom      string    `gorm:"column:place_from;size:20" json:"place_from"`
	PlaceTo        string    `gorm:"column:place_to;size:20" json:"place_to"`
	DepartureTime  time.Time `gorm:"column:departure_time" json:"departure_time"`
	ArrivalTime    time.Time `gorm:"column:arrival_time" json:"arrival_time"`
	Fee            int       `gorm:"column:fee" json:"fee"`
	AvailableSeats int       `gorm:"column:available_seats;default:100" json:"available_seats"`
}

// FlightTypeDisplay returns the label used in chat responses.
func (f Flight) FlightTypeDisplay() string {
	if f.FlightType == FlightTypeInternational {
		return "国際線"
	}
	return "国内線"
}

// FlightAvailability holds the seat count for one flight on one date, with the same
// missing-row-means-static-capacity rule as accommodations.
type FlightAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FlightID       uint      `gorm:"column:flight_id;uniqueIndex:idx_flight_date" json:"flight_id"`
	Date           time.Time `gorm:"column:date;type:date;uniqueIndex:idx_flight_date" json:"date"`
	AvailableSeats int       `gorm:"column:available_seats" json:"available_seats"`

	Flight Flight `gorm:"foreignKey:FlightID" json:"-"`
}
