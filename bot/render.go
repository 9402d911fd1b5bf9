package bot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"bookiniad-backend/models"
)

// maxDisplayedResults caps how many hits a chat response embeds.
const maxDisplayedResults = 3

func renderAccommodationResults(results []models.Accommodation, slots Slots, guests string) string {
	guestCount, _ := strconv.Atoi(guests)
	locationDisplay := orDefault(slots.Location, "指定の場所")
	checkinDisplay := orDefault(slots.CheckinDate, "指定日")
	checkoutDisplay := orDefault(slots.CheckoutDate, "指定日")

	if len(results) == 0 {
		return fmt.Sprintf("宿泊人数%s名で確認しました。\n\n", guests) +
			"📋 検索条件:\n" +
			fmt.Sprintf("• 宿泊地: %s\n• チェックイン: %s\n• チェックアウト: %s\n• 人数: %s名\n\n",
				locationDisplay, checkinDisplay, checkoutDisplay, guests) +
			"❌ 申し訳ございませんが、条件に合う宿泊施設が見つかりませんでした。\n\n" +
			"💡 検索のヒント:\n• 宿泊地の表記を変えてみる（例：「東京」→「Tokyo」）\n" +
			"• 近隣エリアで検索してみる\n• 日程を調整してみる\n\n" +
			"他にお手伝いできることはありますか？\n「1」で検索、「リセット」で最初に戻ります。"
	}

	nights := nightsBetween(slots.CheckinDate, slots.CheckoutDate)
	shown := results
	if len(shown) > maxDisplayedResults {
		shown = shown[:maxDisplayedResults]
	}

	var lines []string
	totalCost := 0
	for _, acc := range shown {
		stayCost := acc.PricePerNight * nights * guestCount
		totalCost += stayCost
		lines = append(lines, fmt.Sprintf(
			"📍 %s\n   所在地: %s\n   ランク: %s (%dつ星)\n   料金: ¥%s/泊 (合計: ¥%s)\n   説明: %s\n   設備: %s",
			acc.Name, acc.Location, strings.Repeat("⭐", acc.Rank), acc.Rank,
			formatYen(acc.PricePerNight), formatYen(stayCost),
			truncateRunes(acc.Description, 60), amenitiesSummary(acc.Amenities)))
	}

	return fmt.Sprintf("宿泊人数%s名で確認しました。\n\n", guests) +
		"📋 検索条件:\n" +
		fmt.Sprintf("• 宿泊地: %s\n• チェックイン: %s\n• チェックアウト: %s\n• 人数: %s名\n• 宿泊日数: %d泊\n\n",
			locationDisplay, checkinDisplay, checkoutDisplay, guests, nights) +
		fmt.Sprintf("🏨 検索結果 (上位%d件):\n\n%s\n\n", len(shown), strings.Join(lines, "\n")) +
		fmt.Sprintf("💰 表示施設の平均料金: ¥%s (総額)\n\n", formatYen(totalCost/len(shown))) +
		"他にお手伝いできることはありますか？\n「1」で検索、「リセット」で最初に戻ります。"
}

func renderFlightResults(results []models.Flight, slots Slots, passengers string) string {
	paxCount, _ := strconv.Atoi(passengers)
	departureDisplay := orDefault(slots.Departure, "指定の出発地")
	destinationDisplay := orDefault(slots.Destination, "指定の目的地")
	dateDisplay := orDefault(slots.DepartureDate, "指定日")

	if len(results) == 0 {
		return fmt.Sprintf("搭乗者数%s名で確認しました。\n\n", passengers) +
			"📋 検索条件:\n" +
			fmt.Sprintf("• 出発地: %s\n• 目的地: %s\n• 出発日: %s\n• 搭乗者数: %s名\n\n",
				departureDisplay, destinationDisplay, dateDisplay, passengers) +
			"❌ 申し訳ございませんが、条件に合う航空券が見つかりませんでした。\n\n" +
			"💡 検索のヒント:\n• 出発地・目的地の表記を確認\n• 日程を前後に調整してみる\n• 別の空港を検討してみる\n\n" +
			"他にお手伝いできることはありますか？\n「1」で検索、「リセット」で最初に戻ります。"
	}

	shown := results
	if len(shown) > maxDisplayedResults {
		shown = shown[:maxDisplayedResults]
	}

	var lines []string
	totalCost := 0
	for _, flight := range shown {
		fareCost := flight.Fee * paxCount
		totalCost += fareCost
		lines = append(lines, fmt.Sprintf(
			"✈️ %s %s\n   路線: %s → %s\n   出発: %s 到着: %s\n   料金: ¥%s/人 (合計: ¥%s)\n   空席: %d席\n   便種別: %s",
			flight.Name, flight.FlightNumber, flight.PlaceFrom, flight.PlaceTo,
			flight.DepartureTime.Format("15:04"), flight.ArrivalTime.Format("15:04"),
			formatYen(flight.Fee), formatYen(fareCost), flight.AvailableSeats, flight.FlightTypeDisplay()))
	}

	return fmt.Sprintf("搭乗者数%s名で確認しました。\n\n", passengers) +
		"📋 検索条件:\n" +
		fmt.Sprintf("• 出発地: %s\n• 目的地: %s\n• 出発日: %s\n• 搭乗者数: %s名\n\n",
			departureDisplay, destinationDisplay, dateDisplay, passengers) +
		fmt.Sprintf("✈️ 検索結果 (上位%d件):\n\n%s\n\n", len(shown), strings.Join(lines, "\n")) +
		fmt.Sprintf("💰 表示便の平均料金: ¥%s (総額)\n\n", formatYen(totalCost/len(shown))) +
		"他にお手伝いできることはありますか？\n「1」で検索、「リセット」で最初に戻ります。"
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// formatYen groups digits in thousands, e.g. 1234567 -> "1,234,567".
func formatYen(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// truncateRunes shortens s to max runes, appending an ellipsis when cut. Rune
// based so multibyte text is never split mid-character.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// amenitiesSummary renders up to three amenity tags from the JSON column.
func amenitiesSummary(raw []byte) string {
	var amenities []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &amenities)
	}
	if len(amenities) == 0 {
		return "なし"
	}
	if len(amenities) > 3 {
		amenities = amenities[:3]
	}
	return strings.Join(amenities, ", ")
}
