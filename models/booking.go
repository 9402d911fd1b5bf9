package models

import "time"

// Booking is created exactly once per successful reservation request and is
// immutable afterwards. TotalFee is fixed at creation time:
// Σ(flight fee × party size) + nightly price × nights × party size.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	ReservationNumber string    `gorm:"column:reservation_number;size:64;uniqueIndex" json:"reservation_number"`
	FromDate          time.Time `gorm:"column:from_date" json:"from_date"`
	ToDate            time.Time `gorm:"column:to_date" json:"to_date"`
	NumOfPeople       int       `gorm:"column:num_of_people;default:1" json:"num_of_people"`
	TotalFee          int       `gorm:"column:total_fee;default:1" json:"total_fee"`
	Place             string    `gorm:"column:place;size:30" json:"place"`

	AccommodationID uint          `gorm:"column:accommodation_id" json:"accommodation_id"`
	Accommodation   Accommodation `gorm:"foreignKey:AccommodationID" json:"accommodation,omitempty"`

	Flights []Flight `gorm:"many2many:booking_flights" json:"flights,omitempty"`
}
