package bot

import (
	"fmt"
	"strconv"

	"bookiniad-backend/models"
)

// handleSearchInput advances whichever chain the reconstructed state says is in
// progress. Any step that fails extraction re-emits its own prompt as a retry and
// carries the collected slots forward untouched.
func (e *Engine) handleSearchInput(st State, message string) Response {
	switch {
	case st.State == StateAwaitingLocation && st.SearchType == SearchTypeAccommodation:
		return e.accommodationLocation(st, message)
	case st.State == StateAwaitingCheckin && st.SearchType == SearchTypeAccommodation:
		return e.accommodationCheckin(st, message)
	case st.State == StateAwaitingCheckout && st.SearchType == SearchTypeAccommodation:
		return e.accommodationCheckout(st, message)
	case st.State == StateAwaitingGuests && st.SearchType == SearchTypeAccommodation:
		return e.accommodationGuests(st, message)
	case st.State == StateAwaitingDeparture && st.SearchType == SearchTypeFlight:
		return e.flightDeparture(st, message)
	case st.State == StateAwaitingDest && st.SearchType == SearchTypeFlight:
		return e.flightDestination(st, message)
	case st.State == StateAwaitingDepDate && st.SearchType == SearchTypeFlight:
		return e.flightDate(st, message)
	case st.State == StateAwaitingPax && st.SearchType == SearchTypeFlight:
		return e.flightPassengers(st, message)
	}
	return e.selectSearchType(message)
}

// selectSearchType handles the message right after the search menu (or a stray
// message inside a chain state the dispatcher has no handler for): pick a search
// type, reset, or detect a bare location mention.
func (e *Engine) selectSearchType(message string) Response {
	switch {
	case containsAny(message, "宿泊", "ホテル", "泊まる"):
		return Response{
			Content: "宿泊施設検索を選択されました。\n\n以下の情報を順番に教えてください：\n\n" +
				"1. 宿泊地（例：東京、大阪、沖縄）\n2. チェックイン日（例：2025-08-20）\n" +
				"3. チェックアウト日（例：2025-08-22）\n4. 宿泊人数（例：2名）\n\n" +
				"まずは宿泊地を教えてください。",
			Intent:    IntentAccommodationStart,
			Reasoning: chainPayload(IntentAccommodationStart, StateAwaitingLocation, SearchTypeAccommodation, Slots{}),
		}
	case containsAny(message, "航空券", "フライト", "飛行機"):
		return Response{
			Content: "航空券検索を選択されました。\n\n以下の情報を順番に教えてください：\n\n" +
				"1. 出発地（例：東京、大阪）\n2. 目的地（例：沖縄、福岡）\n" +
				"3. 出発日（例：2025-08-20）\n4. 搭乗者数（例：2名）\n\n" +
				"まずは出発地を教えてください。",
			Intent:    IntentFlightStart,
			Reasoning: chainPayload(IntentFlightStart, StateAwaitingDeparture, SearchTypeFlight, Slots{}),
		}
	case containsAny(message, "パッケージ", "セット", "旅行"):
		return Response{
			Content: "パッケージ検索を選択されました。\n\n人気のパッケージをご紹介します：\n\n" +
				"• 沖縄3日間パッケージ - ¥50,000\n• 北海道2泊3日 - ¥45,000\n• 京都観光パッケージ - ¥35,000\n\n" +
				"詳細な検索をご希望の場合は、出発地と目的地を教えてください。\n例：「東京から沖縄」",
			Intent:    IntentPackageSearchStart,
			Reasoning: chainPayload(IntentPackageSearchStart, "showing_popular_packages", SearchTypePackage, Slots{}),
		}
	case containsAny(message, "リセット", "もどる", "戻る", "最初"):
		return greetingResponse()
	}

	if loc, ok := extractLocation(message); ok {
		return Response{
			Content: fmt.Sprintf("%sでの検索ですね。\n\n検索タイプを選択してください：\n", loc) +
				fmt.Sprintf("• 宿泊施設：「%sのホテル」\n• 航空券：「%sへの航空券」\n• パッケージ：「%sのパッケージ」\n\n", loc, loc, loc) +
				"または、より具体的な条件を教えてください。",
			Intent: IntentLocationDetected,
			Reasoning: map[string]interface{}{
				"intent":            IntentLocationDetected,
				"state":             "awaiting_search_refinement",
				"detected_location": loc,
			},
		}
	}

	return Response{
		Content: "検索内容を理解できませんでした。\n\n以下から選択してください：\n" +
			"• 宿泊施設検索：「宿泊」「ホテル」\n• 航空券検索：「航空券」「フライト」\n" +
			"• パッケージ検索：「パッケージ」「セット」\n\nまたは「リセット」で最初に戻ります。",
		Intent: IntentSearchError,
		Reasoning: map[string]interface{}{
			"intent": IntentSearchError,
			"state":  "search_input_error",
		},
	}
}

func (e *Engine) accommodationLocation(st State, message string) Response {
	loc, ok := extractLocation(message)
	if !ok {
		return Response{
			Content: "宿泊地が見つかりませんでした。\n\n以下の地域から選択してください：\n" +
				"東京、大阪、沖縄、札幌、京都、福岡、北海道",
			Intent:    IntentLocationRetry,
			Reasoning: chainPayload(IntentLocationRetry, StateAwaitingLocation, SearchTypeAccommodation, st.Slots),
		}
	}
	st.Slots.Location = loc
	return Response{
		Content: fmt.Sprintf("%sでの宿泊施設検索ですね。\n\nチェックイン日を教えてください。\n例：2025-08-20 または 8月20日", loc),
		Intent:  IntentAccommodationSet,
		Reasoning: chainPayload(IntentAccommodationSet, StateAwaitingCheckin,
			SearchTypeAccommodation, st.Slots),
	}
}

func (e *Engine) accommodationCheckin(st State, message string) Response {
	if !containsDate(message) {
		return Response{
			Content:   "日付の形式が正しくありません。\n\n以下の形式で入力してください：\n• 2025-08-20\n• 8月20日",
			Intent:    IntentCheckinRetry,
			Reasoning: chainPayload(IntentCheckinRetry, StateAwaitingCheckin, SearchTypeAccommodation, st.Slots),
		}
	}
	st.Slots.CheckinDate = message
	return Response{
		Content:   "チェックイン日を確認しました。\n\nチェックアウト日を教えてください。\n例：2025-08-22 または 8月22日",
		Intent:    IntentCheckinSet,
		Reasoning: chainPayload(IntentCheckinSet, StateAwaitingCheckout, SearchTypeAccommodation, st.Slots),
	}
}

func (e *Engine) accommodationCheckout(st State, message string) Response {
	if !containsDate(message) {
		return Response{
			Content:   "日付の形式が正しくありません。\n\n以下の形式で入力してください：\n• 2025-08-22\n• 8月22日",
			Intent:    IntentCheckoutRetry,
			Reasoning: chainPayload(IntentCheckoutRetry, StateAwaitingCheckout, SearchTypeAccommodation, st.Slots),
		}
	}
	st.Slots.CheckoutDate = message
	return Response{
		Content:   "チェックアウト日を確認しました。\n\n宿泊人数を教えてください。\n例：2名 または 2人",
		Intent:    IntentCheckoutSet,
		Reasoning: chainPayload(IntentCheckoutSet, StateAwaitingGuests, SearchTypeAccommodation, st.Slots),
	}
}

// accommodationGuests fills the terminal slot and runs the synchronous search.
// Whatever the result count, the chain ends in search_complete; results are shown
// once per filled slot set.
func (e *Engine) accommodationGuests(st State, message string) Response {
	guests, ok := extractCount(message)
	if !ok {
		return Response{
			Content:   "人数がわかりませんでした。\n\n以下の形式で入力してください：\n• 2名\n• 2人\n• 2",
			Intent:    IntentGuestsRetry,
			Reasoning: chainPayload(IntentGuestsRetry, StateAwaitingGuests, SearchTypeAccommodation, st.Slots),
		}
	}
	guestCount, _ := strconv.Atoi(guests)

	results := e.search.SearchAccommodations(st.Slots.Location, st.Slots.CheckinDate, st.Slots.CheckoutDate, guestCount)
	results = e.filterAvailableStays(results, st.Slots, guestCount)

	payload := chainPayload(IntentAccommodationDone, StateSearchComplete, SearchTypeAccommodation, st.Slots)
	payload["guests"] = guests
	payload["results_count"] = len(results)

	return Response{
		Content:   renderAccommodationResults(results, st.Slots, guests),
		Intent:    IntentAccommodationDone,
		Reasoning: payload,
	}
}

// filterAvailableStays drops candidates whose per-date room counts cannot cover
// the stay, so the presented results are guaranteed available. Skipped when the
// slot dates are not well-formed calendar dates (e.g. the 8月20日 form).
func (e *Engine) filterAvailableStays(results []models.Accommodation, slots Slots, guests int) []models.Accommodation {
	checkin, ok1 := parseISODate(slots.CheckinDate)
	checkout, ok2 := parseISODate(slots.CheckoutDate)
	if !ok1 || !ok2 || !checkout.After(checkin) || e.availability == nil {
		return results
	}
	kept := results[:0]
	for _, acc := range results {
		if e.availability.StayAvailable(acc.ID, checkin, checkout, guests) {
			kept = append(kept, acc)
		}
	}
	return kept
}

func (e *Engine) flightDeparture(st State, message string) Response {
	loc, ok := extractLocation(message)
	if !ok {
		return Response{
			Content: "出発地が見つかりませんでした。\n\n以下の地域から選択してください：\n" +
				"東京、大阪、沖縄、札幌、京都、福岡、北海道",
			Intent:    IntentDepartureRetry,
			Reasoning: chainPayload(IntentDepartureRetry, StateAwaitingDeparture, SearchTypeFlight, st.Slots),
		}
	}
	st.Slots.Departure = loc
	return Response{
		Content:   fmt.Sprintf("%sからの出発ですね。\n\n目的地を教えてください。\n例：沖縄、福岡、北海道", loc),
		Intent:    IntentDepartureSet,
		Reasoning: chainPayload(IntentDepartureSet, StateAwaitingDest, SearchTypeFlight, st.Slots),
	}
}

func (e *Engine) flightDestination(st State, message string) Response {
	loc, ok := extractLocation(message)
	if !ok {
		return Response{
			Content: "目的地が見つかりませんでした。\n\n以下の地域から選択してください：\n" +
				"東京、大阪、沖縄、札幌、京都、福岡、北海道",
			Intent:    IntentDestinationRetry,
			Reasoning: chainPayload(IntentDestinationRetry, StateAwaitingDest, SearchTypeFlight, st.Slots),
		}
	}
	st.Slots.Destination = loc
	return Response{
		Content:   fmt.Sprintf("%sへの航空券ですね。\n\n出発日を教えてください。\n例：2025-08-20 または 8月20日", loc),
		Intent:    IntentDestinationSet,
		Reasoning: chainPayload(IntentDestinationSet, StateAwaitingDepDate, SearchTypeFlight, st.Slots),
	}
}

func (e *Engine) flightDate(st State, message string) Response {
	if !containsDate(message) {
		return Response{
			Content:   "日付の形式が正しくありません。\n\n以下の形式で入力してください：\n• 2025-08-20\n• 8月20日",
			Intent:    IntentFlightDateRetry,
			Reasoning: chainPayload(IntentFlightDateRetry, StateAwaitingDepDate, SearchTypeFlight, st.Slots),
		}
	}
	st.Slots.DepartureDate = message
	return Response{
		Content:   "出発日を確認しました。\n\n搭乗者数を教えてください。\n例：2名 または 2人",
		Intent:    IntentFlightDateSet,
		Reasoning: chainPayload(IntentFlightDateSet, StateAwaitingPax, SearchTypeFlight, st.Slots),
	}
}

func (e *Engine) flightPassengers(st State, message string) Response {
	passengers, ok := extractCount(message)
	if !ok {
		return Response{
			Content:   "搭乗者数がわかりませんでした。\n\n以下の形式で入力してください：\n• 2名\n• 2人\n• 2",
			Intent:    IntentPassengersRetry,
			Reasoning: chainPayload(IntentPassengersRetry, StateAwaitingPax, SearchTypeFlight, st.Slots),
		}
	}
	paxCount, _ := strconv.Atoi(passengers)

	results := e.search.SearchFlights(st.Slots.Departure, st.Slots.Destination, st.Slots.DepartureDate, paxCount)
	results = e.filterAvailableFlights(results, st.Slots, paxCount)

	payload := chainPayload(IntentFlightDone, StateSearchComplete, SearchTypeFlight, st.Slots)
	payload["passengers"] = passengers
	payload["results_count"] = len(results)

	return Response{
		Content:   renderFlightResults(results, st.Slots, passengers),
		Intent:    IntentFlightDone,
		Reasoning: payload,
	}
}

func (e *Engine) filterAvailableFlights(results []models.Flight, slots Slots, passengers int) []models.Flight {
	date, ok := parseISODate(slots.DepartureDate)
	if !ok || e.availability == nil {
		return results
	}
	kept := results[:0]
	for _, flight := range results {
		if e.availability.FlightAvailable(flight.ID, date, passengers) {
			kept = append(kept, flight)
		}
	}
	return kept
}

// handleBookingNumberInput parses a reservation number out of the message and
// looks the booking up. Every outcome leaves the conversation able to retry or
// reset; an unknown number is a normal reply, not a fault.
func (e *Engine) handleBookingNumberInput(message string) Response {
	number, ok := extractReservationNumber(message)
	if !ok {
		return Response{
			Content: "予約番号の形式が正しくないようです。\n\n予約番号は以下のような形式です：\n" +
				"abc12345-def6-7890-ghij-klmnopqrstuv\n\n正しい予約番号を入力してください。\n\n「リセット」で最初に戻ります。",
			Intent: IntentInvalidReservation,
			Reasoning: map[string]interface{}{
				"intent": IntentInvalidReservation,
				"state":  "format_error",
				"input":  message,
			},
		}
	}

	booking, err := e.bookings.FindByReservationNumber(number)
	if err != nil || booking == nil {
		return Response{
			Content: fmt.Sprintf("申し訳ございません。予約番号「%s」が見つかりませんでした。\n\n", number) +
				"予約番号をもう一度確認して入力してください。\n\n例: abc12345-def6-7890-ghij-klmnopqrstuv\n\n「リセット」で最初に戻ります。",
			Intent: IntentBookingNotFound,
			Reasoning: map[string]interface{}{
				"intent": IntentBookingNotFound,
				"state":  "reservation_not_found",
				"input":  number,
			},
		}
	}

	hotelName := "なし"
	if booking.Accommodation.Name != "" {
		hotelName = booking.Accommodation.Name
	}
	return Response{
		Content: fmt.Sprintf("予約が見つかりました！\n\n予約番号: %s\n宿泊施設: %s\n宿泊人数: %d名\n合計料金: ¥%s\n\n",
			number, hotelName, booking.NumOfPeople, formatYen(booking.TotalFee)) +
			"詳細はこちらのリンクで確認できます：\n/booking/inquiry/\n\n" +
			"他にお手伝いできることはありますか？「1」で検索、「リセット」で最初に戻ります。",
		Intent: IntentBookingFound,
		Reasoning: map[string]interface{}{
			"intent":             IntentBookingFound,
			"state":              "booking_details_shown",
			"reservation_number": number,
		},
	}
}
