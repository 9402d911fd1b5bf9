package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookiniad-backend/services"
	"bookiniad-backend/utils"
)

// BookingController exposes reservation creation and inquiry.
type BookingController struct {
	reservations *services.ReservationService
}

func NewBookingController(reservations *services.ReservationService) *BookingController {
	return &BookingController{reservations: reservations}
}

// Create handles POST /api/bookings. Validation failures come back as one
// aggregated 400; nothing is written unless every check passed.
func (ctl *BookingController) Create(c *gin.Context) {
	var req services.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := ctl.reservations.Create(req)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":       false,
				"error":         vErr.Message,
				"flight_errors": vErr.FlightErrors,
			})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, result)
}

// Inquiry handles GET /api/bookings/:reservation_number.
func (ctl *BookingController) Inquiry(c *gin.Context) {
	detail, err := ctl.reservations.Detail(c.Param("reservation_number"))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, detail)
}
