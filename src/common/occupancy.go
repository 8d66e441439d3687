package common

import (
	"errors"
	"log"
	"time"

	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
)

// The occupancy ledger. Every mutation here must run inside a caller-supplied
// transaction and, when paired with an availability check, under the room's
// lock (see roomlock.go), so that a check-then-write pair is atomic.

// HasConflict reports whether any active entry on the room overlaps the
// half-open interval [checkIn, checkOut). Two intervals [a1,a2) and [b1,b2)
// overlap iff a1 < b2 && b1 < a2. Entries in completed or cancelled status
// never count. excludeBookingID, when non-zero, ignores that booking's own
// entries, which is what extension validation needs.
func HasConflict(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	var count int64
	q := tx.
		Model(&models.RoomOccupancy{}).
		Where("room_id = ?", roomID).
		Where("status = ?", types.OCCUPANCY_ACTIVE).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeBookingID != 0 {
		q = q.Where("booking_id <> ?", excludeBookingID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateOccupancy writes a new active ledger entry after re-running the
// conflict predicate inside the same transaction.
func CreateOccupancy(tx *gorm.DB, roomID, bookingID uint, checkIn, checkOut time.Time) (*models.RoomOccupancy, error) {
	conflict, err := HasConflict(tx, roomID, checkIn, checkOut, 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, &types.ConflictError{RoomID: roomID, Reason: "room is not available for the specified date range"}
	}
	occupancy := models.RoomOccupancy{
		RoomID:    roomID,
		BookingID: bookingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Status:    types.OCCUPANCY_ACTIVE,
	}
	if err := tx.Create(&occupancy).Error; err != nil {
		return nil, err
	}
	return &occupancy, nil
}

// ExtendOccupancy moves the active entry's checkOut for a booking, validating
// the new interval against every other active entry on the same room first.
// On conflict the stored interval is left untouched.
func ExtendOccupancy(tx *gorm.DB, bookingID uint, newCheckOut time.Time) (*models.RoomOccupancy, error) {
	var occupancy models.RoomOccupancy
	err := tx.
		Where(&models.RoomOccupancy{BookingID: bookingID}).
		Where("status = ?", types.OCCUPANCY_ACTIVE).
		First(&occupancy).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	if !newCheckOut.After(occupancy.CheckIn) {
		return nil, &types.ValidationError{Field: "newCheckOut", Reason: "must be after checkIn"}
	}
	conflict, err := HasConflict(tx, occupancy.RoomID, occupancy.CheckIn, newCheckOut, bookingID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, &types.ConflictError{RoomID: occupancy.RoomID, Reason: "room is not available for the extended date range"}
	}
	if err := tx.
		Model(&models.RoomOccupancy{}).
		Where("id = ?", occupancy.ID).
		Update("check_out", newCheckOut).
		Error; err != nil {
		return nil, err
	}
	occupancy.CheckOut = newCheckOut
	return &occupancy, nil
}

// SetOccupancyStatus transitions every entry of a booking out of or back into
// the conflict-relevant active state.
func SetOccupancyStatus(tx *gorm.DB, bookingID uint, status types.OccupancyStatus) error {
	res := tx.
		Model(&models.RoomOccupancy{}).
		Where("booking_id = ?", bookingID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		log.Printf("No occupancy entries found for booking %d\n", bookingID)
	}
	return nil
}
