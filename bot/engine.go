package bot

import (
	"log"
	"time"

	"bookiniad-backend/models"
)

// SearchProvider executes the inventory lookups the chains trigger once their
// final slot is filled. Implementations are read-only.
type SearchProvider interface {
	SearchAccommodations(location, checkinDate, checkoutDate string, guests int) []models.Accommodation
	SearchFlights(departure, destination, departureDate string, passengers int) []models.Flight
}

// AvailabilityChecker answers day-granular capacity questions with the
// missing-row-means-static-capacity fallback.
type AvailabilityChecker interface {
	StayAvailable(accommodationID uint, checkin, checkout time.Time, guests int) bool
	FlightAvailable(flightID uint, date time.Time, passengers int) bool
}

// BookingFinder resolves a reservation number to a booking. The identifier may be
// presented in parsed or raw form; implementations must accept both.
type BookingFinder interface {
	FindByReservationNumber(number string) (*models.Booking, error)
}

// Response is one computed bot turn. Reasoning is the structured payload persisted
// with the turn; the next request reconstructs all state from it.
type Response struct {
	Content   string                 `json:"content"`
	Intent    string                 `json:"intent"`
	Reasoning map[string]interface{} `json:"reasoning"`
}

// Engine is the rule-based dialogue engine. It holds no conversational state:
// ProcessTurn is a pure function of the supplied transcript slice and message,
// so any number of instances may serve any number of sessions.
type Engine struct {
	search       SearchProvider
	availability AvailabilityChecker
	bookings     BookingFinder
}

func New(search SearchProvider, availability AvailabilityChecker, bookings BookingFinder) *Engine {
	return &Engine{search: search, availability: availability, bookings: bookings}
}

const greetingContent = "こんにちは！bookiniad.comです。\n1. 旅行検索\n2. 予約確認\n3. よくある質問\n番号でお選びください。"

// ProcessTurn computes the bot turn for one inbound message given the session's
// recent transcript (newest-first). It never fails: unexpected panics degrade to a
// retry-suggesting fallback so the conversation always stays resumable.
func (e *Engine) ProcessTurn(turns []models.ChatMessage, message string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bot: recovered while processing turn: %v", r)
			resp = Response{
				Content: "申し訳ございません。処理中にエラーが発生しました。\nもう一度入力いただくか、「リセット」で最初に戻ってください。",
				Intent:  IntentFallback,
				Reasoning: map[string]interface{}{
					"intent": IntentFallback,
					"state":  "error",
				},
			}
		}
	}()

	st := Reconstruct(turns)

	switch {
	case searchIntents[st.Intent]:
		return e.handleSearchInput(st, message)
	case bookingIntents[st.Intent]:
		return e.handleBookingNumberInput(message)
	default:
		return e.handleTopLevel(message)
	}
}

// commandRule pairs a keyword predicate with its response. Rules are evaluated in
// order, first match wins, so the priority is auditable at a glance.
type commandRule struct {
	matches func(string) bool
	respond func() Response
}

var topLevelRules = []commandRule{
	{
		matches: func(m string) bool {
			return containsAny(m, "こんにちは", "hello", "はじめまして", "リセット", "もどる")
		},
		respond: greetingResponse,
	},
	{
		matches: func(m string) bool { return containsAny(m, "検索", "探す", "1") },
		respond: func() Response {
			return Response{
				Content: "旅行検索を開始します。\n\nまず、以下のいずれかをお選びください：\n" +
					"• 宿泊施設検索：「宿泊」「ホテル」\n• 航空券検索：「航空券」「フライト」\n" +
					"• パッケージ検索：「パッケージ」「セット」\n\n検索したい内容を入力してください。",
				Intent: IntentSearchMenu,
				Reasoning: map[string]interface{}{
					"intent": IntentSearchMenu,
					"state":  "awaiting_search_type",
				},
			}
		},
	},
	{
		matches: func(m string) bool {
			return containsAny(m, "予約", "booking", "予約確認", "予約照会", "2")
		},
		respond: func() Response {
			return Response{
				Content: "予約確認を開始します。\n\n予約番号を教えてください。\n例: abc12345-def6-7890-ghij-klmnopqrstuv",
				Intent:  IntentBookingInquiry,
				Reasoning: map[string]interface{}{
					"intent": IntentBookingInquiry,
					"state":  "awaiting_reservation_number",
				},
			}
		},
	},
	{
		matches: func(m string) bool { return containsAny(m, "faq", "よくある質問", "質問", "3") },
		respond: func() Response {
			return Response{
				Content: "よくある質問:\n\n" +
					"• 予約のキャンセルは可能ですか？\n  → 出発日の3日前まで可能です。\n\n" +
					"• 料金に含まれるものは？\n  → 宿泊費、航空券代、税金が含まれます。\n\n" +
					"• 変更は可能ですか？\n  → 出発日の7日前まで変更可能です。\n\n" +
					"他にご質問がありましたら「1」で検索、「2」で予約確認ができます。",
				Intent: IntentFAQ,
				Reasoning: map[string]interface{}{
					"intent": IntentFAQ,
					"state":  "faq_complete",
				},
			}
		},
	},
}

func (e *Engine) handleTopLevel(message string) Response {
	for _, rule := range topLevelRules {
		if rule.matches(message) {
			return rule.respond()
		}
	}
	return Response{
		Content: "申し訳ございません。理解できませんでした。\n\n以下からお選びください：\n" +
			"1. 旅行検索\n2. 予約確認\n3. よくある質問\n\n「リセット」で最初に戻ります。",
		Intent: IntentFallback,
		Reasoning: map[string]interface{}{
			"intent": IntentFallback,
			"state":  "error",
		},
	}
}

func greetingResponse() Response {
	return Response{
		Content: greetingContent,
		Intent:  IntentGreeting,
		Reasoning: map[string]interface{}{
			"intent": IntentGreeting,
			"state":  StateInitial,
		},
	}
}

// chainPayload builds a turn payload that carries every known slot forward, so a
// failed extraction several steps later can never lose an earlier value.
func chainPayload(intent, state, searchType string, slots Slots) map[string]interface{} {
	p := map[string]interface{}{
		"intent":      intent,
		"state":       state,
		"search_type": searchType,
	}
	if slots.Location != "" {
		p["location"] = slots.Location
	}
	if slots.CheckinDate != "" {
		p["checkin_date"] = slots.CheckinDate
	}
	if slots.CheckoutDate != "" {
		p["checkout_date"] = slots.CheckoutDate
	}
	if slots.Departure != "" {
		p["departure"] = slots.Departure
	}
	if slots.Destination != "" {
		p["destination"] = slots.Destination
	}
	if slots.DepartureDate != "" {
		p["departure_date"] = slots.DepartureDate
	}
	return p
}
