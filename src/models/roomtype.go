package models

type RoomType struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Type        string  `gorm:"uniqueIndex" json:"type"`
	Description string  `json:"description,omitempty"`
	BasePrice   float64 `json:"basePrice"`
	// Percentage of BasePrice due up front when reserving, 0-100.
	ReservationFeePercentage float64 `json:"reservationFeePercentage"`

	Rooms []Room `gorm:"foreignKey:room_type_id" json:"rooms,omitempty"`
}
