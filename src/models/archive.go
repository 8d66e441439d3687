package models

import (
	"time"

	"hbs/src/types"

	"github.com/google/uuid"
)

// ArchivedBooking is an append-only copy of a Booking taken at the moment it
// is removed from the live table. Never mutated after creation.
type ArchivedBooking struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ArchiveID uuid.UUID `gorm:"type:uuid;index" json:"archive_id"`
	BookingID uint      `gorm:"index" json:"booking_id"`

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

	RoomID uint                `json:"room_id"`
	Status types.BookingStatus `json:"status"`

	DeletedAt time.Time `gorm:"not null" json:"deleted_at"`

	types.Timestamps
}

// NewArchivedBooking copies a live booking into its archive projection,
// stamping the removal time.
func NewArchivedBooking(b *Booking, deletedAt time.Time) *ArchivedBooking {
	return &ArchivedBooking{
		ArchiveID:      uuid.New(),
		BookingID:      b.ID,
		GuestFirstName: b.GuestFirstName,
		GuestLastName:  b.GuestLastName,
		GuestEmail:     b.GuestEmail,
		GuestPhone:     b.GuestPhone,
		GuestAddress:   b.GuestAddress,
		GuestCity:      b.GuestCity,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		Adults:         b.Adults,
		Children:       b.Children,
		Rooms:          b.Rooms,
		PaymentMode:    b.PaymentMode,
		PaymentMethod:  b.PaymentMethod,
		Amount:         b.Amount,
		PaidAmount:     b.PaidAmount,
		Requests:       b.Requests,
		RoomID:         b.RoomID,
		Status:         b.Status,
		DeletedAt:      deletedAt,
	}
}
