package models

import (
	"time"

	"gorm.io/datatypes"
)

// Session and message types.
const (
	SessionTypeAIAgent     = "ai_agent"
	SessionTypeAIAssistant = "ai_assistant"
	SessionTypeRuleBot     = "rule_bot"

	MessageTypeUser = "user"
)

// ChatSession is created once per chat widget instantiation. The only mutation the
// backend ever performs on it is flipping IsActive off.
type ChatSession struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID   string    `gorm:"column:session_id;size:100;uniqueIndex" json:"session_id"`
	SessionType string    `gorm:"column:session_type;size:20" json:"session_type"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`

	Messages []ChatMessage `gorm:"foreignKey:SessionRef;constraint:OnDelete:CASCADE" json:"-"`
}

// ChatMessage is one immutable transcript turn. Reasoning carries the structured
// payload the bot emitted for its own turns (intent plus any collected slots) and
// is nil for user turns. Conversational state is only ever reconstructed from these
// rows; no in-process session object exists.
type ChatMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionRef  uint           `gorm:"column:session_ref;index" json:"session_ref"`
	MessageType string         `gorm:"column:message_type;size:20" json:"message_type"`
	Content     string         `gorm:"column:content;type:text" json:"content"`
	Timestamp   time.Time      `gorm:"column:timestamp;autoCreateTime;index" json:"timestamp"`
	Reasoning   datatypes.JSON `gorm:"column:reasoning" json:"reasoning,omitempty"`

	Session ChatSession `gorm:"foreignKey:SessionRef" json:"-"`
}
