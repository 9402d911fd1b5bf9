package services

import (
	"context"
	"log"
	"sync"
	"time"

	"bookiniad-backend/bot"
	"bookiniad-backend/models"

	"gorm.io/gorm"
)

// transcriptWindow is how many recent messages are handed to the engine. Wider
// than the engine's own bot-turn window since user turns sit between bot turns.
const transcriptWindow = 12

// ChatService orchestrates one dialogue turn: resolve the session, rebuild
// state from the transcript, run the engine, persist the outcome. The engine is
// stateless, so this service is the only place per-session ordering matters;
// a keyed mutex serializes the append-then-read sequence per session.
type ChatService struct {
	DB          *gorm.DB
	transcripts *TranscriptService
	engine      *bot.Engine

	mu           sync.Mutex
	sessionLocks map[string]*sync.Mutex
}

func NewChatService(db *gorm.DB, transcripts *TranscriptService, engine *bot.Engine) *ChatService {
	return &ChatService{
		DB:           db,
		transcripts:  transcripts,
		engine:       engine,
		sessionLocks: make(map[string]*sync.Mutex),
	}
}

func (s *ChatService) lockSession(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.sessionLocks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.sessionLocks[sessionID] = lock
	}
	return lock
}

// ProcessMessage handles one inbound message and returns the computed bot turn.
// The turn is persisted exactly once either way. If ctx is already done by the
// time the write phase starts, the writes finish in the background and ctx.Err()
// is returned alongside the response so the caller can surface a
// still-processing placeholder.
func (s *ChatService) ProcessMessage(ctx context.Context, sessionID, message string) (bot.Response, error) {
	session, err := s.transcripts.FindActiveSession(sessionID)
	if err != nil {
		return bot.Response{}, err
	}

	lock := s.lockSession(sessionID)
	lock.Lock()

	started := time.Now()

	turns, err := s.transcripts.RecentTurns(session.ID, transcriptWindow)
	if err != nil {
		// A transcript read failure degrades to an empty history: the engine
		// answers as if the conversation just started rather than failing.
		log.Printf("chat: transcript read failed for session %s: %v", sessionID, err)
		turns = nil
	}

	resp := s.engine.ProcessTurn(turns, message)
	elapsed := time.Since(started)

	persist := func() {
		if _, err := s.transcripts.AppendTurn(session.ID, models.MessageTypeUser, message, nil); err != nil {
			log.Printf("chat: failed to persist user turn for session %s: %v", sessionID, err)
		}
		if _, err := s.transcripts.AppendTurn(session.ID, session.SessionType, resp.Content, resp.Reasoning); err != nil {
			log.Printf("chat: failed to persist bot turn for session %s: %v", sessionID, err)
		}

		record := models.SystemResponse{
			SessionRef:        session.ID,
			IntentDetected:    resp.Intent,
			ProcessingTime:    elapsed.Seconds(),
			ResponseGenerated: resp.Content,
		}
		if err := s.DB.Create(&record).Error; err != nil {
			log.Printf("chat: failed to record system response for session %s: %v", sessionID, err)
		}
	}

	if ctx.Err() != nil {
		// The caller's deadline has fired. The session lock travels with the
		// background write, so the turn lands exactly once and the next turn
		// cannot read the transcript before it does.
		go func() {
			defer lock.Unlock()
			persist()
		}()
		return resp, ctx.Err()
	}

	persist()
	lock.Unlock()
	return resp, nil
}

// PerformanceEntry summarizes one session type for the comparison page.
type PerformanceEntry struct {
	SessionType     string  `json:"session_type"`
	TotalSessions   int64   `json:"total_sessions"`
	TotalResponses  int64   `json:"total_responses"`
	AvgResponseTime float64 `json:"avg_response_time"`
}

// PerformanceSummary aggregates response counts and average processing time per
// session type.
func (s *ChatService) PerformanceSummary() ([]PerformanceEntry, error) {
	var entries []PerformanceEntry
	for _, sessionType := range []string{
		models.SessionTypeAIAgent, models.SessionTypeAIAssistant, models.SessionTypeRuleBot,
	} {
		var entry PerformanceEntry
		entry.SessionType = sessionType

		if err := s.DB.Model(&models.ChatSession{}).
			Where("session_type = ?", sessionType).
			Count(&entry.TotalSessions).Error; err != nil {
			return nil, err
		}

		row := s.DB.Model(&models.SystemResponse{}).
			Joins("JOIN chat_sessions ON chat_sessions.id = system_responses.session_ref").
			Where("chat_sessions.session_type = ?", sessionType).
			Select("COUNT(*) AS total, COALESCE(AVG(processing_time), 0) AS avg_time")

		var agg struct {
			Total   int64
			AvgTime float64
		}
		if err := row.Scan(&agg).Error; err != nil {
			return nil, err
		}
		entry.TotalResponses = agg.Total
		entry.AvgResponseTime = agg.AvgTime

		entries = append(entries, entry)
	}
	return entries, nil
}
