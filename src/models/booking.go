package models

import (
	"time"

	"hbs/src/types"
)

// Booking is one row per allocated room; a multi-room request produces
// multiple rows sharing guest and payment data.
type Booking struct {
	ID uint `gorm:"primarykey" json:"id"`

	GuestFirstName string `json:"guest_firstName"`
	GuestLastName  string `json:"guest_lastName"`
	GuestEmail     string `json:"guest_email"`
	GuestPhone     string `json:"guest_phone"`
	GuestAddress   string `json:"guest_address,omitempty"`
	GuestCity      string `json:"guest_city,omitempty"`

	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
	Adults   int       `json:"adults,omitempty"`
	Children int       `json:"children,omitempty"`
	Rooms    int       `json:"rooms,omitempty"`

	PaymentMode   string  `json:"paymentMode,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Amount        float64 `json:"amount"`
	PaidAmount    float64 `json:"paidamount"`
	Requests      string  `json:"requests,omitempty"`

	RoomID uint                `gorm:"index" json:"room_id"`
	Status types.BookingStatus `gorm:"default:'reserved'" json:"status"`

	Room        *Room           `gorm:"foreignKey:room_id" json:"room,omitempty"`
	Occupancies []RoomOccupancy `gorm:"foreignKey:booking_id" json:"occupancies,omitempty"`

	types.Timestamps
}
