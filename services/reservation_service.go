// services/reservation_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"bookiniad-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking_not_found")

// ValidationError aggregates everything wrong with a reservation request. The
// request fails as a whole: no partial booking is ever created.
type ValidationError struct {
	Message      string
	FlightErrors []string
}

func (e *ValidationError) Error() string {
	if len(e.FlightErrors) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.FlightErrors, "; ")
}

// ReservationRequest carries a fully-specified booking request. FlightNumbers
// pairs each flight number with its requested date, "SF101@2025-08-20" comma
// separated; a bare number defaults its date to the checkin date.
type ReservationRequest struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	NumOfPeople     int    `json:"num_of_people"`
	FlightNumbers   string `json:"flight_numbers"`
	Accommodation   string `json:"accommodation_name"`
	CheckinDate     string `json:"checkin_date"`
	CheckoutDate    string `json:"checkout_date"`
	SpecialRequests string `json:"special_requests"`
}

// ReservationResult reports the created booking plus its fee breakdown.
type ReservationResult struct {
	Booking           models.Booking `json:"booking"`
	Nights            int            `json:"nights"`
	AccommodationCost int            `json:"accommodation_cost"`
	FlightCost        int            `json:"flight_cost"`
}

// ReservationService validates and writes bookings. Capacity is advisory: it is
// read at validation time and never decremented, matching the inventory design.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type flightSpec struct {
	raw    string
	number string
	date   time.Time
}

// parseFlightSpecs splits the comma-separated spec list. Bad date literals are
// reported per spec; a bare flight number falls back to defaultDate.
func parseFlightSpecs(raw string, defaultDate time.Time) ([]flightSpec, []string) {
	var specs []flightSpec
	var errs []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if number, dateStr, found := strings.Cut(part, "@"); found {
			date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
			if err != nil {
				errs = append(errs, fmt.Sprintf("便名「%s」の日付形式が正しくありません。", part))
				continue
			}
			specs = append(specs, flightSpec{raw: part, number: strings.TrimSpace(number), date: date})
		} else {
			specs = append(specs, flightSpec{raw: part, number: part, date: defaultDate})
		}
	}
	return specs, errs
}

// selectFlight picks the flight matching the spec out of the candidates (all
// flights whose number contains the spec's number, any date). It returns either
// the chosen flight or a user-facing error naming up to five alternative
// departure dates when the flight runs on other days.
func selectFlight(candidates []models.Flight, spec flightSpec, people int) (*models.Flight, string) {
	var sameDay []models.Flight
	for _, f := range candidates {
		if f.DepartureTime.Year() == spec.date.Year() && f.DepartureTime.YearDay() == spec.date.YearDay() {
			sameDay = append(sameDay, f)
		}
	}

	if len(sameDay) == 0 {
		if len(candidates) == 0 {
			return nil, fmt.Sprintf("便名「%s」が見つかりません。", spec.number)
		}
		return nil, fmt.Sprintf("便名「%s」は%sには運航していません。運航日: %s",
			spec.number, spec.date.Format("2006-01-02"),
			strings.Join(alternativeDates(candidates, 5), ", "))
	}

	flight := sameDay[0]
	if flight.AvailableSeats < people {
		return nil, fmt.Sprintf("便名「%s」(%s)の空席不足: 必要%d席、空席%d席",
			spec.number, spec.date.Format("2006-01-02"), people, flight.AvailableSeats)
	}
	return &flight, ""
}

// alternativeDates lists the distinct departure dates of the candidate flights,
// earliest first, capped at limit.
func alternativeDates(candidates []models.Flight, limit int) []string {
	sorted := make([]models.Flight, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DepartureTime.Before(sorted[j].DepartureTime)
	})

	seen := map[string]bool{}
	var dates []string
	for _, f := range sorted {
		d := f.DepartureTime.Format("2006-01-02")
		if seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
		if len(dates) >= limit {
			break
		}
	}
	return dates
}

// Create validates the request in order (customer fields, dates, accommodation,
// then every flight spec) and only writes when everything passed. The booking
// row and its flight associations go in as one transaction, so either the whole
// reservation exists or none of it does.
func (s *ReservationService) Create(req ReservationRequest) (ReservationResult, error) {
	if strings.TrimSpace(req.CustomerName) == "" ||
		strings.TrimSpace(req.CustomerEmail) == "" ||
		strings.TrimSpace(req.CustomerPhone) == "" {
		return ReservationResult{}, &ValidationError{Message: "予約者情報（氏名、メールアドレス、電話番号）は必須です。"}
	}
	if req.NumOfPeople < 1 {
		return ReservationResult{}, &ValidationError{Message: "予約人数は1名以上で指定してください。"}
	}

	checkin, err1 := time.Parse("2006-01-02", strings.TrimSpace(req.CheckinDate))
	checkout, err2 := time.Parse("2006-01-02", strings.TrimSpace(req.CheckoutDate))
	if err1 != nil || err2 != nil {
		return ReservationResult{}, &ValidationError{Message: "日付は YYYY-MM-DD 形式で入力してください。"}
	}
	if !checkout.After(checkin) {
		return ReservationResult{}, &ValidationError{Message: "チェックアウト日はチェックイン日より後の日付を指定してください。"}
	}
	nights := int(checkout.Sub(checkin).Hours() / 24)

	var accommodation models.Accommodation
	p := "%" + strings.TrimSpace(req.Accommodation) + "%"
	err := s.DB.Where("LOWER(name) LIKE LOWER(?) OR LOWER(location) LIKE LOWER(?)", p, p).
		First(&accommodation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReservationResult{}, &ValidationError{
				Message: fmt.Sprintf("宿泊施設「%s」が見つかりませんでした。", req.Accommodation),
			}
		}
		return ReservationResult{}, fmt.Errorf("failed to look up accommodation: %w", err)
	}

	specs, flightErrors := parseFlightSpecs(req.FlightNumbers, checkin)

	var selected []models.Flight
	totalFlightCost := 0
	for _, spec := range specs {
		var candidates []models.Flight
		err := s.DB.Where("flight_number LIKE ?", "%"+spec.number+"%").
			Order("departure_time ASC").
			Find(&candidates).Error
		if err != nil {
			return ReservationResult{}, fmt.Errorf("failed to look up flights: %w", err)
		}

		flight, msg := selectFlight(candidates, spec, req.NumOfPeople)
		if flight == nil {
			flightErrors = append(flightErrors, msg)
			continue
		}
		selected = append(selected, *flight)
		totalFlightCost += flight.Fee * req.NumOfPeople
	}

	if len(flightErrors) > 0 {
		return ReservationResult{}, &ValidationError{
			Message:      "航空券の予約で問題が発生しました。",
			FlightErrors: flightErrors,
		}
	}
	if len(selected) == 0 {
		return ReservationResult{}, &ValidationError{Message: "予約可能な航空券が見つかりませんでした。"}
	}

	accommodationCost := accommodation.PricePerNight * nights * req.NumOfPeople
	totalCost := totalFlightCost + accommodationCost

	booking := models.Booking{
		ReservationNumber: uuid.NewString(),
		FromDate:          time.Date(checkin.Year(), checkin.Month(), checkin.Day(), 14, 0, 0, 0, checkin.Location()),
		ToDate:            time.Date(checkout.Year(), checkout.Month(), checkout.Day(), 11, 0, 0, 0, checkout.Location()),
		NumOfPeople:       req.NumOfPeople,
		TotalFee:          totalCost,
		Place:             accommodation.Location,
		AccommodationID:   accommodation.ID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return tx.Model(&booking).Association("Flights").Append(&selected)
	})
	if err != nil {
		return ReservationResult{}, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.Accommodation = accommodation
	booking.Flights = selected
	return ReservationResult{
		Booking:           booking,
		Nights:            nights,
		AccommodationCost: accommodationCost,
		FlightCost:        totalFlightCost,
	}, nil
}

// FindByReservationNumber resolves a reservation identifier presented either in
// parsed UUID form or as a raw string; both round-trip to the same booking.
func (s *ReservationService) FindByReservationNumber(number string) (*models.Booking, error) {
	lookup := strings.TrimSpace(number)
	if parsed, err := uuid.Parse(lookup); err == nil {
		lookup = parsed.String()
	}

	var booking models.Booking
	err := s.DB.Preload("Flights").Preload("Accommodation").
		Where("reservation_number = ?", lookup).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to look up booking: %w", err)
	}
	return &booking, nil
}

// BookingDetail is the inquiry view of a booking. The recomputed total and the
// stored fee can legitimately diverge (the stored fee applied the party size at
// creation); both are reported instead of silently reconciling.
type BookingDetail struct {
	Booking           models.Booking `json:"booking"`
	Nights            int            `json:"nights"`
	AccommodationCost int            `json:"accommodation_cost"`
	FlightCost        int            `json:"flight_cost"`
	CalculatedTotal   int            `json:"calculated_total"`
	StoredTotal       int            `json:"stored_total"`
	TotalsMatch       bool           `json:"totals_match"`
}

// Detail builds the inquiry view for a reservation number.
func (s *ReservationService) Detail(number string) (BookingDetail, error) {
	booking, err := s.FindByReservationNumber(number)
	if err != nil {
		return BookingDetail{}, err
	}

	// FromDate/ToDate carry the 14:00/11:00 checkin/checkout times; count whole
	// calendar days between the date parts.
	from := booking.FromDate
	to := booking.ToDate
	nights := int(time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).
		Sub(time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	flightCost := 0
	for _, f := range booking.Flights {
		flightCost += f.Fee * booking.NumOfPeople
	}
	accommodationCost := booking.Accommodation.PricePerNight * nights * booking.NumOfPeople
	calculated := accommodationCost + flightCost

	return BookingDetail{
		Booking:           *booking,
		Nights:            nights,
		AccommodationCost: accommodationCost,
		FlightCost:        flightCost,
		CalculatedTotal:   calculated,
		StoredTotal:       booking.TotalFee,
		TotalsMatch:       calculated == booking.TotalFee,
	}, nil
}
