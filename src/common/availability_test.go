package common

import (
	"testing"

	"hbs/src/models"
	"hbs/src/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedHotel(t *testing.T, d *gorm.DB) (models.RoomType, []models.Room) {
	t.Helper()
	roomType := models.RoomType{Type: "Classic", BasePrice: 120, ReservationFeePercentage: 10}
	require.NoError(t, d.Create(&roomType).Error)
	numbers := []string{"103", "101", "102"}
	rooms := make([]models.Room, 0, len(numbers))
	for _, n := range numbers {
		room := models.Room{RoomNumber: n, RoomTypeID: roomType.ID, Price: roomType.BasePrice}
		require.NoError(t, d.Create(&room).Error)
		rooms = append(rooms, room)
	}
	return roomType, rooms
}

func roomNumbers(rooms []models.Room) []string {
	numbers := make([]string, 0, len(rooms))
	for _, r := range rooms {
		numbers = append(numbers, r.RoomNumber)
	}
	return numbers
}

func TestFindAvailableRooms(t *testing.T) {
	d := newTestDB(t)
	roomType, _ := seedHotel(t, d)

	var occupied models.Room
	require.NoError(t, d.Where(&models.Room{RoomNumber: "102"}).First(&occupied).Error)
	_, err := CreateOccupancy(d, occupied.ID, 1, date(t, "2024-01-15"), date(t, "2024-01-20"))
	require.NoError(t, err)

	rooms, err := FindAvailableRooms(date(t, "2024-01-15"), date(t, "2024-01-20"), roomType.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "103"}, roomNumbers(rooms))

	rooms, err = FindAvailableRooms(date(t, "2024-01-20"), date(t, "2024-01-25"), roomType.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102", "103"}, roomNumbers(rooms), "a stay starting on the departure day must see the room free")

	// Repeated queries over the same ledger state must rank candidates the same.
	again, err := FindAvailableRooms(date(t, "2024-01-15"), date(t, "2024-01-20"), roomType.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "103"}, roomNumbers(again))
}

func TestFindAvailableRoomsFiltersByType(t *testing.T) {
	d := newTestDB(t)
	seedHotel(t, d)

	other := models.RoomType{Type: "Deluxe", BasePrice: 200, ReservationFeePercentage: 15}
	require.NoError(t, d.Create(&other).Error)
	require.NoError(t, d.Create(&models.Room{RoomNumber: "201", RoomTypeID: other.ID, Price: other.BasePrice}).Error)

	rooms, err := FindAvailableRooms(date(t, "2024-01-15"), date(t, "2024-01-20"), other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"201"}, roomNumbers(rooms))

	rooms, err = FindAvailableRooms(date(t, "2024-01-15"), date(t, "2024-01-20"), 0)
	require.NoError(t, err)
	assert.Len(t, rooms, 4, "zero type id must span the whole inventory")
}

func TestFindAvailableRoomsFailsClosed(t *testing.T) {
	d := newTestDB(t)
	seedHotel(t, d)

	inner, err := d.DB()
	require.NoError(t, err)
	require.NoError(t, inner.Close())

	_, err = FindAvailableRooms(date(t, "2024-01-15"), date(t, "2024-01-20"), 0)
	assert.ErrorIs(t, err, types.ErrUnavailable, "storage faults must never produce an optimistic availability answer")
}

func TestCheckRoomAvailability(t *testing.T) {
	d := newTestDB(t)
	room := seedRoom(t, d, "101")

	_, err := CreateOccupancy(d, room.ID, 7, date(t, "2024-01-15"), date(t, "2024-01-20"))
	require.NoError(t, err)

	free, err := CheckRoomAvailability(room.ID, date(t, "2024-01-16"), date(t, "2024-01-18"), 0)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = CheckRoomAvailability(room.ID, date(t, "2024-01-16"), date(t, "2024-01-18"), 7)
	require.NoError(t, err)
	assert.True(t, free, "excluding the booking's own entries must free the interval")
}

func TestGetAvailabilityCalendar(t *testing.T) {
	d := newTestDB(t)
	roomType, _ := seedHotel(t, d)

	var room models.Room
	require.NoError(t, d.Where(&models.Room{RoomNumber: "101"}).First(&room).Error)
	booking := models.Booking{
		GuestFirstName: "Ada",
		GuestLastName:  "Lovelace",
		CheckIn:        date(t, "2024-01-15"),
		CheckOut:       date(t, "2024-01-20"),
		RoomID:         room.ID,
		Status:         types.BOOKING_RESERVED,
	}
	require.NoError(t, d.Create(&booking).Error)
	_, err := CreateOccupancy(d, room.ID, booking.ID, booking.CheckIn, booking.CheckOut)
	require.NoError(t, err)

	calendar, err := GetAvailabilityCalendar(date(t, "2024-01-01"), date(t, "2024-02-01"), roomType.ID)
	require.NoError(t, err)
	require.Len(t, calendar, 3)
	assert.Equal(t, "101", calendar[0].RoomNumber)
	require.Len(t, calendar[0].Occupancy, 1)
	assert.Equal(t, "Ada Lovelace", calendar[0].Occupancy[0].GuestName)
	assert.Empty(t, calendar[1].Occupancy)
	assert.Empty(t, calendar[2].Occupancy)
}
