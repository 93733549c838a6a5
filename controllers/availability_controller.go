package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc}
}

// roomSearchResult is a room plus the computed price for the whole stay.
type roomSearchResult struct {
	models.Room
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"totalPrice"`
}

// ---------------------------
// Search (GET /api/rooms/search)
// ---------------------------

func (ctrl *AvailabilityController) SearchRooms(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "check_in must be a YYYY-MM-DD date")
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "check_out must be a YYYY-MM-DD date")
		return
	}

	nights := utils.NightCount(checkIn, checkOut)
	if nights <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDateRange", "check_out must be after check_in")
		return
	}
	if checkIn.Before(utils.Today()) {
		utils.JSONError(c, http.StatusBadRequest, "error.checkInInPast", "check_in must not be in the past")
		return
	}

	adults, err := strconv.Atoi(c.DefaultQuery("adults", "1"))
	if err != nil || adults < 1 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidGuests", "adults must be a positive integer")
		return
	}
	children, err := strconv.Atoi(c.DefaultQuery("children", "0"))
	if err != nil || children < 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidGuests", "children must be a non-negative integer")
		return
	}

	rooms, err := ctrl.AvailabilitySvc.FindAvailableRooms(checkIn, checkOut, adults+children)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "error.internal",
			"message": "failed to search rooms",
			"details": err.Error(),
		}})
		return
	}

	results := make([]roomSearchResult, 0, len(rooms))
	for _, room := range rooms {
		results = append(results, roomSearchResult{
			Room:       room,
			Nights:     nights,
			TotalPrice: float64(nights) * room.Price,
		})
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"checkIn":  checkIn.Format(utils.DateLayout),
		"checkOut": checkOut.Format(utils.DateLayout),
		"nights":   nights,
		"rooms":    results,
	})
}
