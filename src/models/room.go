package models

import "hbs/src/types"

// Room has no stored availability flag; whether a room is free for a date
// range is always derived from its occupancy entries.
type Room struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	RoomNumber string  `gorm:"uniqueIndex" json:"roomNumber"`
	RoomTypeID uint    `gorm:"index" json:"roomTypeId"`
	Price      float64 `json:"price,omitempty"`

	RoomType    *RoomType       `gorm:"foreignKey:room_type_id" json:"roomType,omitempty"`
	Occupancies []RoomOccupancy `gorm:"foreignKey:room_id" json:"occupancies,omitempty"`

	types.Timestamps
}
