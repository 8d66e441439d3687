package common

import (
	"fmt"
	"log"
	"time"

	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/models/scopes"
	"hbs/src/types"
)

// FindAvailableRooms returns every room (optionally filtered by type) with no
// conflicting active ledger entry for [checkIn, checkOut), ordered by room
// number ascending. The ordering is the candidate ranking used for
// allocation, so it must be stable across calls with the same ledger state.
// Any storage fault fails closed: the caller gets ErrUnavailable, never an
// optimistic answer.
func FindAvailableRooms(checkIn, checkOut time.Time, roomTypeID uint) ([]models.Room, error) {
	d := db.GetDb()
	q := d.Model(&models.Room{}).Preload("RoomType").Scopes(scopes.ByRoomNumber)
	if roomTypeID != 0 {
		q = q.Where("room_type_id = ?", roomTypeID)
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		log.Printf("Error listing rooms: %s\n", err.Error())
		return nil, types.ErrUnavailable
	}
	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		conflict, err := HasConflict(d, room.ID, checkIn, checkOut, 0)
		if err != nil {
			log.Printf("Error checking availability for room %d: %s\n", room.ID, err.Error())
			return nil, types.ErrUnavailable
		}
		if !conflict {
			available = append(available, room)
		}
	}
	return available, nil
}

// CheckRoomAvailability is the single-room predicate used by extension and
// check validation. True means free.
func CheckRoomAvailability(roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	conflict, err := HasConflict(db.GetDb(), roomID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		log.Printf("Error checking availability for room %d: %s\n", roomID, err.Error())
		return false, types.ErrUnavailable
	}
	return !conflict, nil
}

// GetRoomOccupancy lists a room's ledger entries, optionally restricted to
// those touching [start, end).
func GetRoomOccupancy(roomID uint, start, end *time.Time) ([]models.RoomOccupancy, error) {
	d := db.GetDb()
	q := d.
		Model(&models.RoomOccupancy{}).
		Where("room_id = ?", roomID).
		Order("check_in ASC")
	if start != nil && end != nil {
		q = q.Where("check_in < ? AND check_out > ?", *end, *start)
	}
	var entries []models.RoomOccupancy
	if err := q.Find(&entries).Error; err != nil {
		return nil, types.ErrUnavailable
	}
	return entries, nil
}

// GetAvailabilityCalendar builds the per-room occupancy listing for display:
// every room of the (optional) type with its entries inside [start, end) and
// the guest name behind each booking.
func GetAvailabilityCalendar(start, end time.Time, roomTypeID uint) ([]types.RoomCalendarEntry, error) {
	d := db.GetDb()
	q := d.Model(&models.Room{}).Preload("RoomType").Scopes(scopes.ByRoomNumber)
	if roomTypeID != 0 {
		q = q.Where("room_type_id = ?", roomTypeID)
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, types.ErrUnavailable
	}
	calendar := make([]types.RoomCalendarEntry, 0, len(rooms))
	for _, room := range rooms {
		entries, err := GetRoomOccupancy(room.ID, &start, &end)
		if err != nil {
			return nil, err
		}
		entry := types.RoomCalendarEntry{
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			Occupancy:  make([]types.CalendarOccupancy, 0, len(entries)),
		}
		if room.RoomType != nil {
			entry.RoomType = room.RoomType.Type
		}
		for _, o := range entries {
			guestName := "Unknown"
			var booking models.Booking
			if err := d.Select("guest_first_name", "guest_last_name").First(&booking, o.BookingID).Error; err == nil {
				guestName = fmt.Sprintf("%s %s", booking.GuestFirstName, booking.GuestLastName)
			}
			entry.Occupancy = append(entry.Occupancy, types.CalendarOccupancy{
				BookingID: o.BookingID,
				CheckIn:   o.CheckIn,
				CheckOut:  o.CheckOut,
				Status:    o.Status,
				GuestName: guestName,
			})
		}
		calendar = append(calendar, entry)
	}
	return calendar, nil
}
