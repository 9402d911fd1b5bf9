package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookiniad-backend/models"
	"bookiniad-backend/services"
	"bookiniad-backend/utils"
)

// ChatController exposes the chat session + message endpoints.
type ChatController struct {
	chat        *services.ChatService
	transcripts *services.TranscriptService
}

func NewChatController(chat *services.ChatService, transcripts *services.TranscriptService) *ChatController {
	return &ChatController{chat: chat, transcripts: transcripts}
}

type createSessionRequest struct {
	SessionType string `json:"session_type" binding:"required"`
}

type chatMessageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

func validSessionType(t string) bool {
	switch t {
	case models.SessionTypeAIAgent, models.SessionTypeAIAssistant, models.SessionTypeRuleBot:
		return true
	}
	return false
}

// CreateSession opens a new conversation and returns its identifier.
func (ctl *ChatController) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !validSessionType(req.SessionType) {
		utils.JSONError(c, http.StatusBadRequest, "invalid session type")
		return
	}

	session, err := ctl.transcripts.CreateSession(req.SessionType)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create session")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"session_id":   session.SessionID,
		"session_type": session.SessionType,
	})
}

// Message runs one dialogue turn.
func (ctl *ChatController) Message(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := ctl.chat.ProcessMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			utils.JSONError(c, http.StatusNotFound, "session not found")
		case errors.Is(err, services.ErrSessionInactive):
			utils.JSONError(c, http.StatusGone, "session is no longer active")
		case c.Request.Context().Err() != nil:
			// Timed out; the reply finishes persisting in the background.
			utils.JSONError(c, http.StatusAccepted, "still processing")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to process message")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"response": resp.Content,
		"intent":   resp.Intent,
	})
}

// CloseSession deactivates a session; the transcript is kept.
func (ctl *ChatController) CloseSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if err := ctl.transcripts.DeactivateSession(sessionID); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "session not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to close session")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"session_id": sessionID, "is_active": false})
}

// Performance returns the per-system response statistics.
func (ctl *ChatController) Performance(c *gin.Context) {
	entries, err := ctl.chat.PerformanceSummary()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build performance summary")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entries)
}
