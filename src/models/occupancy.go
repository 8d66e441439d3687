package models

import (
	"time"

	"hbs/src/types"
)

// RoomOccupancy is one ledger entry: a room committed to a booking for the
// half-open interval [CheckIn, CheckOut). Entries are never deleted, only
// status-transitioned, so the ledger doubles as an audit trail.
type RoomOccupancy struct {
	ID        uint                  `gorm:"primarykey" json:"id"`
	RoomID    uint                  `gorm:"index:idx_room_dates" json:"roomId"`
	BookingID uint                  `gorm:"index" json:"bookingId"`
	CheckIn   time.Time             `gorm:"index:idx_room_dates" json:"checkIn"`
	CheckOut  time.Time             `gorm:"index:idx_room_dates" json:"checkOut"`
	Status    types.OccupancyStatus `gorm:"index;default:'active'" json:"status"`

	types.Timestamps
}

// Overlaps reports whether the entry's interval intersects [checkIn, checkOut).
// Both intervals are half-open, so a stay ending on the day another begins
// does not overlap.
func (o *RoomOccupancy) Overlaps(checkIn, checkOut time.Time) bool {
	return o.CheckIn.Before(checkOut) && checkIn.Before(o.CheckOut)
}
