package bot

import (
	"encoding/json"

	"bookiniad-backend/models"
)

// recentWindow bounds how many bot turns the reconstructor inspects.
const recentWindow = 5

// Intent values emitted by the engine. The intent of the newest bot turn is the
// single discriminant for which mode the next message is handled in.
const (
	IntentGreeting            = "greeting"
	IntentSearchMenu          = "search_menu"
	IntentBookingInquiry      = "booking_inquiry"
	IntentFAQ                 = "faq"
	IntentFallback            = "fallback"
	IntentSearchError         = "search_error"
	IntentLocationDetected    = "location_detected"
	IntentPackageSearchStart  = "package_search_start"
	IntentBookingFound        = "booking_found"
	IntentBookingNotFound     = "booking_not_found"
	IntentInvalidReservation  = "invalid_reservation_format"
	IntentAccommodationStart  = "accommodation_search_start"
	IntentAccommodationSet    = "accommodation_location_set"
	IntentCheckinSet          = "accommodation_checkin_set"
	IntentCheckoutSet         = "accommodation_checkout_set"
	IntentAccommodationDone   = "accommodation_search_complete"
	IntentLocationRetry       = "accommodation_location_retry"
	IntentCheckinRetry        = "accommodation_checkin_retry"
	IntentCheckoutRetry       = "accommodation_checkout_retry"
	IntentGuestsRetry         = "accommodation_guests_retry"
	IntentFlightStart         = "flight_search_start"
	IntentDepartureSet        = "flight_departure_set"
	IntentDestinationSet      = "flight_destination_set"
	IntentFlightDateSet       = "flight_date_set"
	IntentFlightDone          = "flight_search_complete"
	IntentDepartureRetry      = "flight_departure_retry"
	IntentDestinationRetry    = "flight_destination_retry"
	IntentFlightDateRetry     = "flight_date_retry"
	IntentPassengersRetry     = "flight_passengers_retry"
)

// State values: the point inside a chain the conversation is waiting at.
const (
	StateInitial           = "initial"
	StateAwaitingLocation  = "awaiting_location"
	StateAwaitingCheckin   = "awaiting_checkin_date"
	StateAwaitingCheckout  = "awaiting_checkout_date"
	StateAwaitingGuests    = "awaiting_guests"
	StateAwaitingDeparture = "awaiting_departure"
	StateAwaitingDest      = "awaiting_destination"
	StateAwaitingDepDate   = "awaiting_departure_date"
	StateAwaitingPax       = "awaiting_passengers"
	StateSearchComplete    = "search_complete"
)

// Search types tagged on chain turns.
const (
	SearchTypeAccommodation = "accommodation"
	SearchTypeFlight        = "flight"
	SearchTypePackage       = "package"
)

// searchIntents are the intents that keep the conversation inside a search chain:
// the next message is handled by the chain's current-step handler, not as a
// top-level command. Every retry intent loops back into its own chain.
var searchIntents = map[string]bool{
	IntentSearchMenu:         true,
	IntentAccommodationStart: true,
	IntentFlightStart:        true,
	IntentPackageSearchStart: true,
	IntentLocationDetected:   true,
	IntentAccommodationSet:   true,
	IntentCheckinSet:         true,
	IntentCheckoutSet:        true,
	IntentDepartureSet:       true,
	IntentDestinationSet:     true,
	IntentFlightDateSet:      true,
	IntentLocationRetry:      true,
	IntentCheckinRetry:       true,
	IntentCheckoutRetry:      true,
	IntentGuestsRetry:        true,
	IntentDepartureRetry:     true,
	IntentDestinationRetry:   true,
	IntentFlightDateRetry:    true,
	IntentPassengersRetry:    true,
}

// bookingIntents keep the conversation in reservation-number parsing mode.
var bookingIntents = map[string]bool{
	IntentBookingInquiry:     true,
	IntentBookingNotFound:    true,
	IntentInvalidReservation: true,
}

// Slots are the values collected across turns. A slot set several turns back is
// still recovered as long as some turn inside the window carries it, because every
// successful transition copies known slots forward into its own payload.
type Slots struct {
	Location      string
	CheckinDate   string
	CheckoutDate  string
	Departure     string
	Destination   string
	DepartureDate string
}

// State is everything the engine knows about a conversation before the next
// message arrives. It is rebuilt from scratch on every turn.
type State struct {
	Intent     string
	State      string
	SearchType string
	Slots      Slots
}

// Reconstruct recovers the conversational state from a transcript slice ordered
// newest-first. The newest bot turn alone decides intent/state/search type, while
// each slot is taken independently from the newest turn that defines it. Empty or
// malformed transcripts yield the zero State; this never fails.
func Reconstruct(turns []models.ChatMessage) State {
	var st State
	seenBot := 0
	for _, turn := range turns {
		if turn.MessageType == models.MessageTypeUser {
			continue
		}
		if seenBot >= recentWindow {
			break
		}
		seenBot++

		payload := decodePayload(turn.Reasoning)
		if payload == nil {
			continue
		}
		if st.Intent == "" {
			st.Intent, _ = payload["intent"].(string)
			st.State, _ = payload["state"].(string)
			st.SearchType, _ = payload["search_type"].(string)
		}
		fillSlot(&st.Slots.Location, payload, "location")
		fillSlot(&st.Slots.CheckinDate, payload, "checkin_date")
		fillSlot(&st.Slots.CheckoutDate, payload, "checkout_date")
		fillSlot(&st.Slots.Departure, payload, "departure")
		fillSlot(&st.Slots.Destination, payload, "destination")
		fillSlot(&st.Slots.DepartureDate, payload, "departure_date")
	}
	return st
}

func decodePayload(raw []byte) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload
}

// fillSlot sets dst from payload[key] only if dst is still empty, so a newer turn
// is never overwritten by an older one and absent keys never clear a value.
func fillSlot(dst *string, payload map[string]interface{}, key string) {
	if *dst != "" {
		return
	}
	if v, ok := payload[key].(string); ok && v != "" {
		*dst = v
	}
}
