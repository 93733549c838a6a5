package services

import (
	"sync"
	"testing"

	"hotel-booking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)

	booking, err := svc.CreatePending(CreateBookingInput{
		RoomID:     room.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     2,
		GuestName:  "Alex Tan",
		GuestEmail: "alex@example.com",
	})
	require.NoError(t, err)

	// Scenario B: pending booking, total computed, no occupancy rows yet
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)
	assert.Equal(t, 2, booking.Nights)
	assert.Equal(t, 2000.0, booking.TotalAmount)
	assert.EqualValues(t, 0, countBookingDates(t, db, booking.ID))
}

func TestCreatePendingValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)

	cases := []struct {
		name string
		in   CreateBookingInput
		want error
	}{
		{"unknown room", CreateBookingInput{RoomID: 999, CheckIn: checkIn, CheckOut: checkOut, Adults: 1}, ErrRoomNotFound},
		{"checkout before checkin", CreateBookingInput{RoomID: room.ID, CheckIn: checkOut, CheckOut: checkIn, Adults: 1}, ErrInvalidDateRange},
		{"zero nights", CreateBookingInput{RoomID: room.ID, CheckIn: checkIn, CheckOut: checkIn, Adults: 1}, ErrInvalidDateRange},
		{"ambiguous date format", CreateBookingInput{RoomID: room.ID, CheckIn: "10-03-2030", CheckOut: checkOut, Adults: 1}, ErrInvalidDateRange},
		{"too many guests", CreateBookingInput{RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2, Children: 1}, ErrCapacityExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePending(tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreatePendingPastCheckIn(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(-3, 2)
	_, err := svc.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 1,
	})
	assert.ErrorIs(t, err, ErrCheckInPast)
}

func TestCreatePendingInactiveRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	room := createTestRoom(t, db, "101", 1000, 2)
	require.NoError(t, db.Model(&room).Update("active", false).Error)

	checkIn, checkOut := stayDates(7, 2)
	_, err := svc.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 1,
	})
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestConfirmWritesOccupancyAndExcludesFromSearch(t *testing.T) {
	db := setupTestDB(t)
	bookings := NewBookingService(db)
	availability := NewAvailabilityService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)
	booking, err := bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2,
		GuestName: "Alex Tan", GuestEmail: "alex@example.com",
	})
	require.NoError(t, err)

	// Scenario C
	confirmed, err := bookings.Confirm(booking.ID, "order_123", "pay_456")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
	assert.Equal(t, models.PaymentSuccess, confirmed.PaymentStatus)
	assert.EqualValues(t, 2, countBookingDates(t, db, booking.ID))

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, "order_123", reloaded.GatewayOrderID)
	assert.Equal(t, "pay_456", reloaded.GatewayPaymentID)

	rooms, err := availability.FindAvailableRooms(parseDay(t, checkIn), parseDay(t, checkOut), 1)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestConfirmConflictLeavesBookingPending(t *testing.T) {
	db := setupTestDB(t)
	bookings := NewBookingService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 3)
	first, err := bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2,
	})
	require.NoError(t, err)

	// second guest grabs an overlapping range while the first is paying
	overlapIn, overlapOut := stayDates(8, 3)
	second, err := bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: overlapIn, CheckOut: overlapOut, Adults: 2,
	})
	require.NoError(t, err)

	_, err = bookings.Confirm(first.ID, "", "")
	require.NoError(t, err)

	// Scenario D: the loser gets a conflict and no partial marker set
	_, err = bookings.Confirm(second.ID, "", "")
	assert.ErrorIs(t, err, ErrDatesNoLongerAvailable)
	assert.EqualValues(t, 0, countBookingDates(t, db, second.ID))

	var loser models.Booking
	require.NoError(t, db.First(&loser, second.ID).Error)
	assert.Equal(t, models.BookingPending, loser.Status)
}

func TestConfirmMutualExclusionConcurrent(t *testing.T) {
	db := setupTestDB(t)
	bookings := NewBookingService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)
	a, err := bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2,
	})
	require.NoError(t, err)
	b, err := bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uint{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			_, errs[i] = bookings.Confirm(id, "", "")
		}(i, id)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrDatesNoLongerAvailable)
		}
	}
	assert.Equal(t, 1, winners)

	// the winner's markers are the only rows for the room
	var total int64
	require.NoError(t, db.Model(&models.BookingDate{}).
		Where("room_id = ?", room.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

func TestConfirmStateGuards(t *testing.T) {
	db := setupTestDB(t)
	bookings := NewBookingService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)
	booking, err := bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2,
	})
	require.NoError(t, err)

	_, err = bookings.Confirm(999, "", "")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = bookings.Confirm(booking.ID, "", "")
	require.NoError(t, err)

	_, err = bookings.Confirm(booking.ID, "", "")
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)

	_, err = bookings.Cancel(booking.ID)
	require.NoError(t, err)

	_, err = bookings.Confirm(booking.ID, "", "")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestConfirmBlockedByAdminBlock(t *testing.T) {
	db := setupTestDB(t)
	bookings := NewBookingService(db)
	blocks := NewBlockService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)
	booking, err := bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2,
	})
	require.NoError(t, err)

	// staff blocks a night of the stay before payment completes
	_, err = blocks.BlockRoom(room.ID, parseDay(t, checkIn), parseDay(t, checkIn).AddDate(0, 0, 1), "maintenance")
	require.NoError(t, err)

	_, err = bookings.Confirm(booking.ID, "", "")
	assert.ErrorIs(t, err, ErrDatesNoLongerAvailable)
	assert.EqualValues(t, 0, countBookingDates(t, db, booking.ID))
}

func TestCancelRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	bookings := NewBookingService(db)
	availability := NewAvailabilityService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)
	booking, err := bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2,
	})
	require.NoError(t, err)
	_, err = bookings.Confirm(booking.ID, "", "")
	require.NoError(t, err)

	// Scenario E: cancel removes every marker and the room reappears
	cancelled, err := bookings.Cancel(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.EqualValues(t, 0, countBookingDates(t, db, booking.ID))

	rooms, err := availability.FindAvailableRooms(parseDay(t, checkIn), parseDay(t, checkOut), 1)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, room.ID, rooms[0].ID)
}

func TestCancelTwiceIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	bookings := NewBookingService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)
	booking, err := bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2,
	})
	require.NoError(t, err)

	first, err := bookings.Cancel(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, first.Status)

	second, err := bookings.Cancel(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, second.Status)
}

func TestAdminBookingNonBlocking(t *testing.T) {
	db := setupTestDB(t)
	bookings := NewBookingService(db)
	availability := NewAvailabilityService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)
	booking, err := bookings.CreateAdminBooking(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 1,
		GuestName: "Walk In",
	}, false)
	require.NoError(t, err)

	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.False(t, booking.BlocksAvailability)
	assert.EqualValues(t, 0, countBookingDates(t, db, booking.ID))

	// the room stays bookable by guests
	free, err := availability.IsRoomAvailable(room.ID, parseDay(t, checkIn), parseDay(t, checkOut))
	require.NoError(t, err)
	assert.True(t, free)

	list, err := bookings.ListBookings()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAdminBookingBlockingClaimsNights(t *testing.T) {
	db := setupTestDB(t)
	bookings := NewBookingService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)
	booking, err := bookings.CreateAdminBooking(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 1,
	}, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, countBookingDates(t, db, booking.ID))

	// a conflicting admin booking rolls back entirely
	_, err = bookings.CreateAdminBooking(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 1,
	}, true)
	assert.ErrorIs(t, err, ErrDatesNoLongerAvailable)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreatePendingAfterConfirmedOverlap(t *testing.T) {
	db := setupTestDB(t)
	bookings := NewBookingService(db)
	room := createTestRoom(t, db, "101", 1000, 2)

	checkIn, checkOut := stayDates(7, 2)
	booking, err := bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2,
	})
	require.NoError(t, err)
	_, err = bookings.Confirm(booking.ID, "", "")
	require.NoError(t, err)

	_, err = bookings.CreatePending(CreateBookingInput{
		RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Adults: 2,
	})
	assert.ErrorIs(t, err, ErrDatesUnavailable)
}
