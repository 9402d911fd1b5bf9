package bot

import (
	"encoding/json"
	"testing"

	"gorm.io/datatypes"

	"bookiniad-backend/models"
)

func botTurn(t *testing.T, payload map[string]interface{}) models.ChatMessage {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return models.ChatMessage{MessageType: "bot", Reasoning: datatypes.JSON(raw)}
}

func userTurn(content string) models.ChatMessage {
	return models.ChatMessage{MessageType: models.MessageTypeUser, Content: content}
}

func TestReconstruct(t *testing.T) {
	t.Parallel()

	t.Run("empty transcript yields zero state", func(t *testing.T) {
		st := Reconstruct(nil)
		if st.Intent != "" || st.State != "" || st.SearchType != "" {
			t.Errorf("got %+v, want zero state", st)
		}
	})

	t.Run("newest bot turn decides intent and state", func(t *testing.T) {
		turns := []models.ChatMessage{
			botTurn(t, map[string]interface{}{
				"intent": IntentCheckinSet, "state": StateAwaitingCheckout, "search_type": SearchTypeAccommodation,
			}),
			botTurn(t, map[string]interface{}{
				"intent": IntentAccommodationStart, "state": StateAwaitingLocation, "search_type": SearchTypeAccommodation,
			}),
		}
		st := Reconstruct(turns)
		if st.Intent != IntentCheckinSet || st.State != StateAwaitingCheckout {
			t.Errorf("got intent=%q state=%q, want newest turn's", st.Intent, st.State)
		}
	})

	t.Run("user turns are skipped", func(t *testing.T) {
		turns := []models.ChatMessage{
			userTurn("2025-08-20"),
			botTurn(t, map[string]interface{}{
				"intent": IntentAccommodationSet, "state": StateAwaitingCheckin,
				"search_type": SearchTypeAccommodation, "location": "東京",
			}),
		}
		st := Reconstruct(turns)
		if st.Intent != IntentAccommodationSet || st.Slots.Location != "東京" {
			t.Errorf("got %+v, want state from the bot turn behind the user turn", st)
		}
	})

	t.Run("each slot taken from newest turn defining it", func(t *testing.T) {
		turns := []models.ChatMessage{
			botTurn(t, map[string]interface{}{
				"intent": IntentCheckinRetry, "state": StateAwaitingCheckin,
				"search_type": SearchTypeAccommodation,
			}),
			botTurn(t, map[string]interface{}{
				"intent": IntentAccommodationSet, "state": StateAwaitingCheckin,
				"search_type": SearchTypeAccommodation, "location": "大阪",
			}),
			botTurn(t, map[string]interface{}{
				"intent": IntentAccommodationSet, "state": StateAwaitingCheckin,
				"search_type": SearchTypeAccommodation, "location": "東京",
			}),
		}
		st := Reconstruct(turns)
		if st.Intent != IntentCheckinRetry {
			t.Errorf("intent = %q, want %q", st.Intent, IntentCheckinRetry)
		}
		if st.Slots.Location != "大阪" {
			t.Errorf("location = %q, want newest defined value 大阪", st.Slots.Location)
		}
	})

	t.Run("newer empty slot never clears older value", func(t *testing.T) {
		turns := []models.ChatMessage{
			botTurn(t, map[string]interface{}{
				"intent": IntentGuestsRetry, "state": StateAwaitingGuests,
				"search_type": SearchTypeAccommodation,
			}),
			botTurn(t, map[string]interface{}{
				"intent": IntentCheckoutSet, "state": StateAwaitingGuests,
				"search_type": SearchTypeAccommodation,
				"location":    "沖縄", "checkin_date": "2025-08-20", "checkout_date": "2025-08-22",
			}),
		}
		st := Reconstruct(turns)
		if st.Slots.Location != "沖縄" || st.Slots.CheckinDate != "2025-08-20" || st.Slots.CheckoutDate != "2025-08-22" {
			t.Errorf("slots = %+v, want values recovered from the older turn", st.Slots)
		}
	})

	t.Run("window caps at five bot turns", func(t *testing.T) {
		turns := make([]models.ChatMessage, 0, recentWindow+1)
		for i := 0; i < recentWindow; i++ {
			turns = append(turns, botTurn(t, map[string]interface{}{
				"intent": IntentCheckinRetry, "state": StateAwaitingCheckin,
				"search_type": SearchTypeAccommodation,
			}))
		}
		// Sixth turn back carries the location; it must be out of reach.
		turns = append(turns, botTurn(t, map[string]interface{}{
			"intent": IntentAccommodationSet, "state": StateAwaitingCheckin,
			"search_type": SearchTypeAccommodation, "location": "東京",
		}))
		st := Reconstruct(turns)
		if st.Slots.Location != "" {
			t.Errorf("location = %q, want empty: turn outside the window must be ignored", st.Slots.Location)
		}
	})

	t.Run("malformed payload skipped without failing", func(t *testing.T) {
		turns := []models.ChatMessage{
			{MessageType: "bot", Reasoning: datatypes.JSON(`{not json`)},
			botTurn(t, map[string]interface{}{
				"intent": IntentFlightStart, "state": StateAwaitingDeparture, "search_type": SearchTypeFlight,
			}),
		}
		st := Reconstruct(turns)
		if st.Intent != IntentFlightStart {
			t.Errorf("intent = %q, want the next readable turn's intent", st.Intent)
		}
	})

	t.Run("reconstruction is deterministic", func(t *testing.T) {
		turns := []models.ChatMessage{
			botTurn(t, map[string]interface{}{
				"intent": IntentDestinationSet, "state": StateAwaitingDepDate,
				"search_type": SearchTypeFlight, "departure": "東京", "destination": "沖縄",
			}),
		}
		first := Reconstruct(turns)
		second := Reconstruct(turns)
		if first != second {
			t.Errorf("two reconstructions differ: %+v vs %+v", first, second)
		}
	})
}
