package controllers

import (
	"log"
	"net/http"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	BookingID uint `json:"booking_id" binding:"required"`
}

type VerifyPaymentRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// ---------------------------
// 1) Create gateway order (POST /api/payments/order)
// ---------------------------

func (ctrl *PaymentController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "booking_id is required",
			"details": err.Error(),
		}})
		return
	}

	order, err := ctrl.PaymentSvc.CreateOrder(req.BookingID)
	if err != nil {
		log.Printf("CreateOrder error for booking %d: %v", req.BookingID, err)
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, order)
}

// ---------------------------
// 2) Verify payment callback (POST /api/payments/verify)
//
// The signature is checked against the gateway before anything touches
// the booking; only a verified payment reaches Confirm.
// ---------------------------

func (ctrl *PaymentController) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "booking_id, order_id, payment_id and signature are required",
			"details": err.Error(),
		}})
		return
	}

	if !ctrl.PaymentSvc.Gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		log.Printf("VerifyPayment: bad signature for booking %d order %s", req.BookingID, req.OrderID)
		if err := ctrl.PaymentSvc.MarkPaymentFailed(req.BookingID); err != nil {
			log.Printf("warning: failed to record failed payment for booking %d: %v", req.BookingID, err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidSignature",
			"message": "payment signature verification failed",
		}})
		return
	}

	booking, err := ctrl.PaymentSvc.OnPaymentVerified(req.BookingID, req.OrderID, req.PaymentID)
	if err != nil {
		log.Printf("VerifyPayment error for booking %d: %v", req.BookingID, err)
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}
