package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bookiniad-backend/models"
	"bookiniad-backend/services"
	"bookiniad-backend/utils"
)

// SearchController exposes the accommodation, flight and package search
// endpoints. Date parameters are required here: the interactive search path
// layers an explicit per-date availability flag on top of the raw results.
type SearchController struct {
	search       *services.SearchService
	availability *services.AvailabilityService
}

func NewSearchController(search *services.SearchService, availability *services.AvailabilityService) *SearchController {
	return &SearchController{search: search, availability: availability}
}

type accommodationResult struct {
	models.Accommodation
	AvailableForDates bool `json:"available_for_dates"`
}

type flightResult struct {
	models.Flight
	AvailableForDate bool `json:"available_for_date"`
}

// Accommodations handles GET /api/accommodations.
func (ctl *SearchController) Accommodations(c *gin.Context) {
	location := c.Query("location")
	checkinDate := c.Query("checkin_date")
	checkoutDate := c.Query("checkout_date")
	guests, err := strconv.Atoi(c.DefaultQuery("guests", "1"))
	if err != nil || guests < 1 {
		utils.JSONError(c, http.StatusBadRequest, "guests must be a positive number")
		return
	}

	if checkinDate == "" || checkoutDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "チェックイン日とチェックアウト日を指定してください。")
		return
	}
	checkin, err1 := time.Parse("2006-01-02", checkinDate)
	checkout, err2 := time.Parse("2006-01-02", checkoutDate)
	if err1 != nil || err2 != nil {
		utils.JSONError(c, http.StatusBadRequest, "正しい日付形式で入力してください。")
		return
	}
	if !checkout.After(checkin) {
		utils.JSONError(c, http.StatusBadRequest, "チェックアウト日はチェックイン日より後の日付を指定してください。")
		return
	}

	hits := ctl.search.SearchAccommodations(location, checkinDate, checkoutDate, guests)
	results := make([]accommodationResult, 0, len(hits))
	for _, acc := range hits {
		results = append(results, accommodationResult{
			Accommodation:     acc,
			AvailableForDates: ctl.availability.StayAvailable(acc.ID, checkin, checkout, guests),
		})
	}
	utils.JSONSuccess(c, http.StatusOK, results)
}

// Flights handles GET /api/flights.
func (ctl *SearchController) Flights(c *gin.Context) {
	departure := c.Query("departure")
	destination := c.Query("destination")
	departureDate := c.Query("departure_date")
	passengers, err := strconv.Atoi(c.DefaultQuery("passengers", "1"))
	if err != nil || passengers < 1 {
		utils.JSONError(c, http.StatusBadRequest, "passengers must be a positive number")
		return
	}

	if departureDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "出発日を指定してください。")
		return
	}
	date, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "正しい日付形式で入力してください。")
		return
	}

	hits := ctl.search.SearchFlights(departure, destination, departureDate, passengers)
	results := make([]flightResult, 0, len(hits))
	for _, flight := range hits {
		results = append(results, flightResult{
			Flight:           flight,
			AvailableForDate: ctl.availability.FlightAvailable(flight.ID, date, passengers),
		})
	}
	utils.JSONSuccess(c, http.StatusOK, results)
}

// Packages handles GET /api/packages.
func (ctl *SearchController) Packages(c *gin.Context) {
	packages := ctl.search.SearchPackages(c.Query("departure"), c.Query("destination"))
	utils.JSONSuccess(c, http.StatusOK, packages)
}
