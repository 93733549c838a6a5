package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	RoomID     uint                     `json:"room_id" binding:"required"`
	CheckIn    string                   `json:"check_in" binding:"required"`
	CheckOut   string                   `json:"check_out" binding:"required"`
	Adults     int                      `json:"adults"`
	Children   int                      `json:"children"`
	GuestName  string                   `json:"guest_name" binding:"required"`
	GuestEmail string                   `json:"guest_email" binding:"required,email"`
	GuestPhone string                   `json:"guest_phone"`
	GuestList  []map[string]interface{} `json:"guest_list,omitempty"`
}

type CreateAdminBookingRequest struct {
	CreateBookingRequest
	// Informational entries set this false so the room stays bookable.
	BlocksAvailability *bool `json:"blocks_availability"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// bookingIDParam parses the :id path segment.
func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidBookingId",
			"message": "booking id must be a positive integer",
		}})
		return 0, false
	}
	return uint(id), true
}

// respondBookingError maps the service error taxonomy onto HTTP codes.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDateRange) || errors.Is(err, services.ErrCheckInPast):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidDateRange",
			"message": "dates must be YYYY-MM-DD with check_out after check_in, and check_in not in the past",
		}})
	case errors.Is(err, services.ErrCapacityExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.capacityExceeded",
			"message": "guest count exceeds the room's maximum occupancy",
		}})
	case errors.Is(err, services.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
			"code":    "error.roomNotFound",
			"message": "room not found",
		}})
	case errors.Is(err, services.ErrRoomInactive):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.roomInactive",
			"message": "room is not available for booking",
		}})
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
			"code":    "error.bookingNotFound",
			"message": "booking not found",
		}})
	case errors.Is(err, services.ErrDatesUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.datesUnavailable",
			"message": "the room is not available for the selected dates",
		}})
	case errors.Is(err, services.ErrDatesNoLongerAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.datesNoLongerAvailable",
			"message": "the selected dates were taken while the booking was pending; please pick different dates",
		}})
	case errors.Is(err, services.ErrAlreadyConfirmed):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.alreadyConfirmed",
			"message": "booking is already confirmed",
		}})
	case errors.Is(err, services.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.alreadyCancelled",
			"message": "booking is already cancelled",
		}})
	case errors.Is(err, services.ErrPaymentOrderMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.orderMismatch",
			"message": "payment order does not match the booking",
		}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "error.internal",
			"message": "internal error",
			"details": err.Error(),
		}})
	}
}

// ---------------------------
// 1) Create booking (POST /api/bookings)
// ---------------------------

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "invalid booking payload",
			"details": err.Error(),
		}})
		return
	}

	booking, err := ctrl.BookingSvc.CreatePending(services.CreateBookingInput{
		RoomID:     req.RoomID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Adults:     req.Adults,
		Children:   req.Children,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		GuestList:  req.GuestList,
	})
	if err != nil {
		log.Printf("CreateBooking error for room %d: %v", req.RoomID, err)
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// ---------------------------
// 2) Admin create (POST /api/admin/bookings)
// ---------------------------

func (ctrl *BookingController) CreateAdminBooking(c *gin.Context) {
	var req CreateAdminBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "invalid booking payload",
			"details": err.Error(),
		}})
		return
	}

	blocks := true
	if req.BlocksAvailability != nil {
		blocks = *req.BlocksAvailability
	}

	booking, err := ctrl.BookingSvc.CreateAdminBooking(services.CreateBookingInput{
		RoomID:     req.RoomID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Adults:     req.Adults,
		Children:   req.Children,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		GuestList:  req.GuestList,
	}, blocks)
	if err != nil {
		log.Printf("CreateAdminBooking error for room %d: %v", req.RoomID, err)
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// ---------------------------
// 3) List / detail
// ---------------------------

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.BookingSvc.ListBookings()
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetBooking(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// ---------------------------
// 4) Cancel (POST /api/bookings/:id/cancel)
// ---------------------------

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.Cancel(id)
	if err != nil {
		log.Printf("CancelBooking error for booking %d: %v", id, err)
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}
