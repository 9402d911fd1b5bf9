package models

import (
	"time"

	"gorm.io/datatypes"
)

// Accommodation is static reference data; the chat and search layers only read it.
type Accommodation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name          string         `gorm:"column:name;size:30" json:"name"`
	Rank          int            `gorm:"column:rank;default:0" json:"rank"`
	Location      string         `gorm:"column:location;size:100" json:"location"`
	Description   string         `gorm:"column:description;type:text" json:"description"`
	Amenities     datatypes.JSON `gorm:"column:amenities" json:"amenities"`
	PricePerNight int            `gorm:"column:price_per_night;default:10000" json:"price_per_night"`
	ImageURL      string         `gorm:"column:image_url" json:"image_url,omitempty"`
	TotalRooms    int            `gorm:"column:total_rooms;default:50" json:"total_rooms"`
}

// AccommodationAvailability holds the room count for one accommodation on one date.
// A missing row for a date means the accommodation's TotalRooms is the capacity.
type AccommodationAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AccommodationID uint      `gorm:"column:accommodation_id;uniqueIndex:idx_accommodation_date" json:"accommodation_id"`
	Date            time.Time `gorm:"column:date;type:date;uniqueIndex:idx_accommodation_date" json:"date"`
	AvailableRooms  int       `gorm:"column:available_rooms" json:"available_rooms"`

	Accommodation Accommodation `gorm:"foreignKey:AccommodationID" json:"-"`
}
