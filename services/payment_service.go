package services

import (
	"fmt"

	"hotel-booking/gateway"
	"hotel-booking/models"
)

// PaymentService bridges the payment gateway and the booking lifecycle.
// It never touches occupancy rows itself; confirmation always goes
// through BookingService.Confirm.
type PaymentService struct {
	Bookings *BookingService
	Gateway  gateway.Client
}

func NewPaymentService(bookings *BookingService, gw gateway.Client) *PaymentService {
	return &PaymentService{Bookings: bookings, Gateway: gw}
}

// CreateOrder registers the booking's total with the gateway before the
// guest is redirected to pay, and records the order id on the booking.
func (s *PaymentService) CreateOrder(bookingID uint) (*gateway.Order, error) {
	booking, err := s.Bookings.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	switch booking.Status {
	case models.BookingConfirmed:
		return nil, ErrAlreadyConfirmed
	case models.BookingCancelled:
		return nil, ErrAlreadyCancelled
	}

	receipt := fmt.Sprintf("booking_%d", booking.ID)
	order, err := s.Gateway.CreateOrder(booking.TotalAmount, receipt)
	if err != nil {
		return nil, fmt.Errorf("gateway order creation failed: %w", err)
	}

	if err := s.Bookings.DB.Model(booking).
		Update("gateway_order_id", order.OrderID).Error; err != nil {
		return nil, fmt.Errorf("failed to record gateway order id: %w", err)
	}
	return order, nil
}

// OnPaymentVerified is the inbound contract of the bridge: it must only
// be called after the gateway signature has been verified. It hands the
// payment identifiers to Confirm, which owns the critical section.
func (s *PaymentService) OnPaymentVerified(bookingID uint, gatewayOrderID, gatewayPaymentID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GatewayOrderID != "" && gatewayOrderID != "" && booking.GatewayOrderID != gatewayOrderID {
		return nil, ErrPaymentOrderMismatch
	}
	return s.Bookings.Confirm(bookingID, gatewayOrderID, gatewayPaymentID)
}

// MarkPaymentFailed records a failed payment attempt. The booking stays
// PENDING so the guest can retry; no availability is held either way.
func (s *PaymentService) MarkPaymentFailed(bookingID uint) error {
	booking, err := s.Bookings.GetBooking(bookingID)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingPending {
		return nil
	}
	return s.Bookings.DB.Model(booking).
		Update("payment_status", models.PaymentFailed).Error
}
