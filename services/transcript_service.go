package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"bookiniad-backend/models"
	"bookiniad-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("session_not_found")
	ErrSessionInactive = errors.New("session_inactive")
)

// TranscriptService owns chat sessions and their append-only message log. Turns
// are immutable once written; the only session mutation is deactivation.
type TranscriptService struct {
	DB *gorm.DB
}

func NewTranscriptService(db *gorm.DB) *TranscriptService {
	return &TranscriptService{DB: db}
}

// CreateSession registers a new conversation of the given type under a fresh
// opaque identifier.
func (s *TranscriptService) CreateSession(sessionType string) (models.ChatSession, error) {
	token, err := utils.GenerateSecureToken(16)
	if err != nil {
		return models.ChatSession{}, fmt.Errorf("failed to generate session id: %w", err)
	}

	session := models.ChatSession{
		SessionID:   token,
		SessionType: sessionType,
		IsActive:    true,
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return models.ChatSession{}, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// FindActiveSession resolves a session identifier, rejecting deactivated ones.
func (s *TranscriptService) FindActiveSession(sessionID string) (models.ChatSession, error) {
	var session models.ChatSession
	if err := s.DB.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ChatSession{}, ErrSessionNotFound
		}
		return models.ChatSession{}, fmt.Errorf("failed to find session: %w", err)
	}
	if !session.IsActive {
		return models.ChatSession{}, ErrSessionInactive
	}
	return session, nil
}

// DeactivateSession flips the active flag; sessions are never deleted here.
func (s *TranscriptService) DeactivateSession(sessionID string) error {
	result := s.DB.Model(&models.ChatSession{}).
		Where("session_id = ?", sessionID).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// RecentTurns returns up to limit turns for the session, newest first. This is
// the window the dialogue engine reconstructs its state from.
func (s *TranscriptService) RecentTurns(sessionRef uint, limit int) ([]models.ChatMessage, error) {
	var turns []models.ChatMessage
	err := s.DB.Where("session_ref = ?", sessionRef).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&turns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return turns, nil
}

// AppendTurn writes one immutable turn. The reasoning payload (nil for user
// turns) is stored as JSON exactly as the engine emitted it.
func (s *TranscriptService) AppendTurn(sessionRef uint, messageType, content string, reasoning map[string]interface{}) (models.ChatMessage, error) {
	turn := models.ChatMessage{
		SessionRef:  sessionRef,
		MessageType: messageType,
		Content:     content,
	}
	if reasoning != nil {
		raw, err := json.Marshal(reasoning)
		if err != nil {
			return models.ChatMessage{}, fmt.Errorf("failed to encode reasoning payload: %w", err)
		}
		turn.Reasoning = datatypes.JSON(raw)
	}
	if err := s.DB.Create(&turn).Error; err != nil {
		return models.ChatMessage{}, fmt.Errorf("failed to append turn: %w", err)
	}
	return turn, nil
}
