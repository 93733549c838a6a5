package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"hotel-booking/models"
	"hotel-booking/utils"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService owns the booking lifecycle: PENDING on create, then
// Confirm or Cancel. It is the only writer of booking_dates rows.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// CreateBookingInput carries everything the checkout flow collects.
type CreateBookingInput struct {
	RoomID     uint
	CheckIn    string // ISO calendar date
	CheckOut   string
	Adults     int
	Children   int
	GuestName  string
	GuestEmail string
	GuestPhone string
	GuestList  []map[string]interface{}
}

// mysqlDupEntry is ER_DUP_ENTRY, raised when an insert hits a unique index.
const mysqlDupEntry = 1062

// isDuplicateKeyErr recognizes a unique-index collision across the
// drivers we run against (MySQL in production, sqlite in tests).
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDupEntry {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate entry") || strings.Contains(lc, "unique constraint")
}

// normalizeGuestList keeps only the fields we store for accompanying
// guests (name + type), dropping entries without a name.
func normalizeGuestList(guestList []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(guestList))
	for _, g := range guestList {
		name := ""
		for _, k := range []string{"name", "fullName", "full_name"} {
			if v, ok := g[k]; ok && v != nil {
				name = strings.TrimSpace(fmt.Sprintf("%v", v))
				break
			}
		}
		if name == "" {
			continue
		}
		typ := "Adult"
		for _, k := range []string{"type", "guestType", "guest_type"} {
			if v, ok := g[k]; ok && v != nil {
				if s := strings.TrimSpace(fmt.Sprintf("%v", v)); s != "" {
					typ = s
				}
				break
			}
		}
		out = append(out, map[string]interface{}{"fullName": name, "type": typ})
	}
	return out
}

// CreatePending validates the request, re-verifies availability and
// inserts a PENDING booking. It deliberately writes no occupancy rows:
// the room is not hard-reserved while the guest is off at the payment
// gateway. The availability read here is an optimization only — Confirm
// re-derives truth from the unique index.
func (s *BookingService) CreatePending(in CreateBookingInput) (*models.Booking, error) {
	checkIn, err := utils.ParseDate(in.CheckIn)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	checkOut, err := utils.ParseDate(in.CheckOut)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	nights := utils.NightCount(checkIn, checkOut)
	if nights <= 0 {
		return nil, ErrInvalidDateRange
	}
	if checkIn.Before(utils.Today()) {
		return nil, ErrCheckInPast
	}

	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}

	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("db error checking room %d: %w", in.RoomID, err)
	}
	if !room.Active {
		return nil, ErrRoomInactive
	}
	if in.Adults+in.Children > room.MaxOccupancy {
		return nil, ErrCapacityExceeded
	}

	free, err := roomFreeForNights(s.DB, room.ID, utils.NightsBetween(checkIn, checkOut))
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrDatesUnavailable
	}

	accompanyingJSON, _ := json.Marshal(normalizeGuestList(in.GuestList))

	booking := models.Booking{
		RoomID:             room.ID,
		GuestName:          strings.TrimSpace(in.GuestName),
		GuestEmail:         strings.TrimSpace(in.GuestEmail),
		GuestPhone:         strings.TrimSpace(in.GuestPhone),
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Nights:             nights,
		Adults:             in.Adults,
		Children:           in.Children,
		TotalAmount:        float64(nights) * room.Price,
		Status:             models.BookingPending,
		PaymentStatus:      models.PaymentPending,
		BlocksAvailability: true,
		AccompanyingGuests: datatypes.JSON(accompanyingJSON),
	}

	if err := s.DB.Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	booking.Room = room
	return &booking, nil
}

// Confirm is the critical section. Inside one transaction it loads the
// booking, re-checks admin blocks and inserts one occupancy row per
// night of the stay. Any unique-index collision — a concurrent booking
// claimed a night first — aborts the whole transaction, so no partial
// marker set can ever persist and the booking stays PENDING.
func (s *BookingService) Confirm(bookingID uint, gatewayOrderID, gatewayPaymentID string) (*models.Booking, error) {
	var booking models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		switch booking.Status {
		case models.BookingConfirmed:
			return ErrAlreadyConfirmed
		case models.BookingCancelled:
			return ErrAlreadyCancelled
		}

		nights := utils.NightsBetween(booking.CheckIn, booking.CheckOut)
		if len(nights) == 0 {
			return ErrInvalidDateRange
		}

		// Admin blocks live in their own table, so inserting occupancy
		// rows cannot collide with them; re-check inside the tx instead.
		var blocked int64
		if err := tx.Model(&models.BlockedDate{}).
			Where("room_id = ? AND night IN ?", booking.RoomID, nights).
			Count(&blocked).Error; err != nil {
			return err
		}
		if blocked > 0 {
			return ErrDatesNoLongerAvailable
		}

		for _, night := range nights {
			row := models.BookingDate{
				BookingID: booking.ID,
				RoomID:    booking.RoomID,
				Night:     night,
			}
			if err := tx.Create(&row).Error; err != nil {
				if isDuplicateKeyErr(err) {
					return ErrDatesNoLongerAvailable
				}
				return fmt.Errorf("failed to insert occupancy row: %w", err)
			}
		}

		updates := map[string]interface{}{
			"status":         models.BookingConfirmed,
			"payment_status": models.PaymentSuccess,
		}
		if gatewayOrderID != "" {
			updates["gateway_order_id"] = gatewayOrderID
		}
		if gatewayPaymentID != "" {
			updates["gateway_payment_id"] = gatewayPaymentID
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return err
		}

		booking.Status = models.BookingConfirmed
		booking.PaymentStatus = models.PaymentSuccess
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Best-effort confirmation email; the booking is already committed.
	if booking.GuestEmail != "" {
		var room models.Room
		if err := s.DB.First(&room, booking.RoomID).Error; err == nil {
			if mailErr := utils.SendBookingConfirmationEmail(
				booking.GuestEmail,
				booking.GuestName,
				room.RoomNumber,
				booking.CheckIn.Format(utils.DateLayout),
				booking.CheckOut.Format(utils.DateLayout),
				booking.Nights,
				booking.TotalAmount,
			); mailErr != nil {
				log.Printf("warning: confirmation email for booking %d failed: %v", booking.ID, mailErr)
			}
		}
	}

	return &booking, nil
}

// Cancel sets the booking to CANCELLED and removes its occupancy rows
// in one transaction, making the nights immediately bookable again.
// Cancelling an already-cancelled booking is a no-op.
func (s *BookingService) Cancel(bookingID uint) (*models.Booking, error) {
	var booking models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if booking.Status == models.BookingCancelled {
			return nil
		}

		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status": models.BookingCancelled,
		}).Error; err != nil {
			return err
		}

		if err := tx.
			Where("booking_id = ?", booking.ID).
			Delete(&models.BookingDate{}).Error; err != nil {
			return err
		}

		booking.Status = models.BookingCancelled
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &booking, nil
}

// CreateAdminBooking records a staff-entered booking. When
// blocksAvailability is false the booking is informational only: it
// shows up in listings but writes no occupancy rows, so guests can
// still book the room. When true it is confirmed immediately and the
// rows are written in the same transaction as the booking itself.
func (s *BookingService) CreateAdminBooking(in CreateBookingInput, blocksAvailability bool) (*models.Booking, error) {
	checkIn, err := utils.ParseDate(in.CheckIn)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	checkOut, err := utils.ParseDate(in.CheckOut)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	nights := utils.NightCount(checkIn, checkOut)
	if nights <= 0 {
		return nil, ErrInvalidDateRange
	}

	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}

	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("db error checking room %d: %w", in.RoomID, err)
	}

	booking := models.Booking{
		RoomID:             room.ID,
		GuestName:          strings.TrimSpace(in.GuestName),
		GuestEmail:         strings.TrimSpace(in.GuestEmail),
		GuestPhone:         strings.TrimSpace(in.GuestPhone),
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Nights:             nights,
		Adults:             in.Adults,
		Children:           in.Children,
		TotalAmount:        float64(nights) * room.Price,
		Status:             models.BookingConfirmed,
		PaymentStatus:      models.PaymentSuccess,
		BlocksAvailability: blocksAvailability,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		if !blocksAvailability {
			return nil
		}
		for _, night := range utils.NightsBetween(checkIn, checkOut) {
			row := models.BookingDate{
				BookingID: booking.ID,
				RoomID:    booking.RoomID,
				Night:     night,
			}
			if err := tx.Create(&row).Error; err != nil {
				if isDuplicateKeyErr(err) {
					return ErrDatesNoLongerAvailable
				}
				return fmt.Errorf("failed to insert occupancy row: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	booking.Room = room
	return &booking, nil
}

// GetBooking loads a booking with its room.
func (s *BookingService) GetBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

// ListBookings returns all bookings, newest first.
func (s *BookingService) ListBookings() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Room").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}
