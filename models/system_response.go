package models

import "time"

// SystemResponse logs one generated chat response for the performance summary.
// Written best-effort; a failed insert never blocks the chat reply.
type SystemResponse struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionRef        uint      `gorm:"column:session_ref;index" json:"session_ref"`
	IntentDetected    string    `gorm:"column:intent_detected;size:100" json:"intent_detected"`
	ProcessingTime    float64   `gorm:"column:processing_time" json:"processing_time"`
	ResponseGenerated string    `gorm:"column:response_generated;type:text" json:"response_generated"`
	Timestamp         time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`

	Session ChatSession `gorm:"foreignKey:SessionRef" json:"-"`
}
