package models

// TravelPackage bundles an optional outbound/return flight pair with an
// accommodation. Reference data for the package listing and the chat menu.
type TravelPackage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"column:name;size:100" json:"name"`
	Description  string `gorm:"column:description;type:text" json:"description"`
	TotalPrice   int    `gorm:"column:total_price" json:"total_price"`
	StayDuration int    `gorm:"column:stay_duration" json:"stay_duration"`
	IsAvailable  bool   `gorm:"column:is_available;default:true" json:"is_available"`

	OutboundFlightID *uint `gorm:"column:outbound_flight_id" json:"outbound_flight_id,omitempty"`
	ReturnFlightID   *uint `gorm:"column:return_flight_id" json:"return_flight_id,omitempty"`
	AccommodationID  *uint `gorm:"column:accommodation_id" json:"accommodation_id,omitempty"`

	OutboundFlight *Flight        `gorm:"foreignKey:OutboundFlightID" json:"outbound_flight,omitempty"`
	ReturnFlight   *Flight        `gorm:"foreignKey:ReturnFlightID" json:"return_flight,omitempty"`
	Accommodation  *Accommodation `gorm:"foreignKey:AccommodationID" json:"accommodation,omitempty"`
}
