package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingStatus is the booking lifecycle state. Only CONFIRMED bookings
// hold occupancy rows.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomID uint `gorm:"column:room_id;index" json:"roomId"`

	GuestName  string `gorm:"column:guest_name;size:191" json:"guestName"`
	GuestEmail string `gorm:"column:guest_email;size:191" json:"guestEmail"`
	GuestPhone string `gorm:"column:guest_phone;size:32" json:"guestPhone,omitempty"`

	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut"`
	Nights   int       `gorm:"column:nights" json:"nights"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	TotalAmount   float64       `gorm:"column:total_amount" json:"totalAmount"`
	Status        BookingStatus `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"column:payment_status;size:32" json:"paymentStatus"`

	GatewayOrderID   string `gorm:"column:gateway_order_id;size:64" json:"gatewayOrderId,omitempty"`
	GatewayPaymentID string `gorm:"column:gateway_payment_id;size:64" json:"gatewayPaymentId,omitempty"`

	// Admin bookings with BlocksAvailability=false are informational only:
	// they never own occupancy rows and guests can still book the room.
	BlocksAvailability bool `gorm:"column:blocks_availability;default:true" json:"blocksAvailability"`

	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanyingGuests,omitempty"`

	Room  Room          `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Dates []BookingDate `gorm:"foreignKey:BookingID" json:"-"`
}
