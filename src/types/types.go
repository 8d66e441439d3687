package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type BookingStatus string

const (
	BOOKING_RESERVED    BookingStatus = "reserved"
	BOOKING_CHECKED_IN  BookingStatus = "checked_in"
	BOOKING_CHECKED_OUT BookingStatus = "checked_out"
)

type OccupancyStatus string

const (
	OCCUPANCY_ACTIVE    OccupancyStatus = "active"
	OCCUPANCY_COMPLETED OccupancyStatus = "completed"
	OCCUPANCY_CANCELLED OccupancyStatus = "cancelled"
)

type Env string

const (
	Production Env = "production"
	Test       Env = "test"
	Local      Env = "local"
)

// BookingGuest, BookingStay and BookingPayment mirror the nested wire shape
// clients send; they are flattened onto the Booking model at the boundary.
type BookingGuest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
}

type BookingStay struct {
	CheckIn  string `json:"checkIn" binding:"required,staydate"`
	CheckOut string `json:"checkOut" binding:"required,staydate,gtdate=CheckIn"`
	Adults   int    `json:"adults,omitempty"`
	Children int    `json:"children,omitempty"`
	Rooms    int    `json:"rooms,omitempty"`
}

type BookingPayment struct {
	PaymentMode   string  `json:"paymentMode,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Amount        float64 `json:"amount" binding:"required"`
}

type CreateBookingRequestBody struct {
	Guest        BookingGuest   `json:"guest" binding:"required"`
	Availability BookingStay    `json:"availability" binding:"required"`
	Payment      BookingPayment `json:"payment" binding:"required"`
	RoomTypeID   uint           `json:"roomTypeId" binding:"required"`
	Requests     string         `json:"requests,omitempty"`
}

type ExtendBookingRequestBody struct {
	NewCheckOut  string   `json:"newCheckOut" binding:"required,staydate"`
	UpdatedTotal *float64 `json:"updatedTotal,omitempty"`
}

type CreateRoomRequestBody struct {
	RoomNumber string  `json:"roomNumber" binding:"required"`
	RoomTypeID uint    `json:"roomTypeId" binding:"required"`
	Price      float64 `json:"price,omitempty"`
}

type UpdateRoomRequestBody struct {
	RoomNumber *string  `json:"roomNumber,omitempty"`
	RoomTypeID *uint    `json:"roomTypeId,omitempty"`
	Price      *float64 `json:"price,omitempty"`
}

type UpdateRoomTypeRequestBody struct {
	Rate                     *float64 `json:"rate,omitempty"`
	Type                     *string  `json:"type,omitempty"`
	Description              *string  `json:"description,omitempty"`
	ReservationFeePercentage *float64 `json:"reservationFeePercentage,omitempty"`
}

type CreateContactMessageRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

// RoomCalendarEntry is the per-room occupancy listing returned by the
// availability calendar endpoint.
type RoomCalendarEntry struct {
	RoomID     uint                `json:"roomId"`
	RoomNumber string              `json:"roomNumber"`
	RoomType   string              `json:"roomType"`
	Occupancy  []CalendarOccupancy `json:"occupancy"`
}

type CalendarOccupancy struct {
	BookingID uint            `json:"bookingId"`
	CheckIn   time.Time       `json:"checkIn"`
	CheckOut  time.Time       `json:"checkOut"`
	Status    OccupancyStatus `json:"status"`
	GuestName string          `json:"guestName"`
}
