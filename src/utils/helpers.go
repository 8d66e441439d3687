package utils

import (
	"errors"
	"log"
	"sync"
	"time"

	"hbs/src/common"
	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/lib/mailer"
	"hbs/src/models"
	"hbs/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParseStayDate normalizes a wire date into a UTC midnight instant.
func ParseStayDate(field, value string) (time.Time, error) {
	t, err := time.Parse(config.DATE_PARSE_FORMAT, value)
	if err != nil {
		return time.Time{}, &types.ValidationError{Field: field, Reason: "expected " + config.DATE_PARSE_FORMAT}
	}
	return t.UTC(), nil
}

// CreateBooking validates the request, selects rooms and commits the booking
// rows together with their ledger entries. Multi-room requests are
// all-or-nothing: either every requested room is allocated or the whole
// batch rolls back. Candidate rooms are tried in room-number order; each one
// is re-checked under its lock inside the transaction, so a candidate lost to
// a concurrent request falls through to the next one.
func CreateBooking(params *types.CreateBookingRequestBody) ([]models.Booking, error) {
	requestId := uuid.New()

	checkIn, err := ParseStayDate("checkIn", params.Availability.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := ParseStayDate("checkOut", params.Availability.CheckOut)
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, &types.ValidationError{Field: "checkOut", Reason: "must be after checkIn"}
	}

	roomCount := params.Availability.Rooms
	if roomCount <= 0 {
		roomCount = 1
	}

	// The fee floor comes from the requested type, never from whichever
	// rooms end up allocated.
	minFee, err := common.MinimumReservationFee(params.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if params.Payment.Amount < minFee {
		return nil, &types.FeeTooLowError{Minimum: minFee, Declared: params.Payment.Amount}
	}

	candidates, err := common.FindAvailableRooms(checkIn, checkOut, params.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if len(candidates) < roomCount {
		return nil, &types.InsufficientAvailabilityError{Requested: roomCount, Available: len(candidates)}
	}

	var bookings []models.Booking
	var held []*sync.Mutex
	defer func() {
		for _, mu := range held {
			mu.Unlock()
		}
	}()

	d := db.GetDb()
	err = d.Transaction(func(tx *gorm.DB) error {
		allocated := 0
		for _, room := range candidates {
			if allocated == roomCount {
				break
			}
			held = append(held, common.LockRoom(room.ID))
			booking := models.Booking{
				GuestFirstName: params.Guest.FirstName,
				GuestLastName:  params.Guest.LastName,
				GuestEmail:     params.Guest.Email,
				GuestPhone:     params.Guest.Phone,
				GuestAddress:   params.Guest.Address,
				GuestCity:      params.Guest.City,
				CheckIn:        checkIn,
				CheckOut:       checkOut,
				Adults:         params.Availability.Adults,
				Children:       params.Availability.Children,
				Rooms:          roomCount,
				PaymentMode:    params.Payment.PaymentMode,
				PaymentMethod:  params.Payment.PaymentMethod,
				Amount:         params.Payment.Amount,
				PaidAmount:     params.Payment.Amount,
				Requests:       params.Requests,
				RoomID:         room.ID,
				Status:         types.BOOKING_RESERVED,
			}
			if err := tx.Create(&booking).Error; err != nil {
				return err
			}
			if _, err := common.CreateOccupancy(tx, room.ID, booking.ID, checkIn, checkOut); err != nil {
				var conflict *types.ConflictError
				if errors.As(err, &conflict) {
					// Lost the race for this room; drop the row and
					// try the next candidate.
					if err := tx.Delete(&models.Booking{}, booking.ID).Error; err != nil {
						return err
					}
					continue
				}
				return err
			}
			booking.Room = &room
			bookings = append(bookings, booking)
			allocated++
		}
		if allocated < roomCount {
			return &types.InsufficientAvailabilityError{Requested: roomCount, Available: allocated}
		}
		return nil
	})
	if err != nil {
		log.Printf("CreateBooking %s failed: %s\n", requestId.String(), err.Error())
		return nil, err
	}
	log.Printf("CreateBooking %s: allocated %d room(s) for %s %s\n", requestId.String(), len(bookings), params.Guest.FirstName, params.Guest.LastName)

	roomType := ""
	if rt, err := common.GetRoomType(params.RoomTypeID); err == nil {
		roomType = rt.Type
	}
	go mailer.SendBookingConfirmation(bookings, roomType)

	return bookings, nil
}

// GetBooking resolves a live booking row.
func GetBooking(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := db.GetDb().Preload("Room").Preload("Room.RoomType").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// ExtendBooking moves a stay's checkOut after re-validating the new interval
// against every other active entry on the same room. Booking and ledger are
// updated in one transaction; the booking's status is untouched. The fee
// floor is not re-validated here, only the total charged may be adjusted.
func ExtendBooking(id uint, params *types.ExtendBookingRequestBody) (*models.Booking, error) {
	newCheckOut, err := ParseStayDate("newCheckOut", params.NewCheckOut)
	if err != nil {
		return nil, err
	}
	booking, err := GetBooking(id)
	if err != nil {
		return nil, err
	}

	mu := common.LockRoom(booking.RoomID)
	defer mu.Unlock()

	d := db.GetDb()
	err = d.Transaction(func(tx *gorm.DB) error {
		if _, err := common.ExtendOccupancy(tx, booking.ID, newCheckOut); err != nil {
			return err
		}
		updates := map[string]any{"check_out": newCheckOut}
		if params.UpdatedTotal != nil {
			updates["paid_amount"] = common.Round2(*params.UpdatedTotal)
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Updates(updates).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	booking.CheckOut = newCheckOut
	if params.UpdatedTotal != nil {
		booking.PaidAmount = common.Round2(*params.UpdatedTotal)
	}
	return booking, nil
}

// CheckInBooking transitions reserved -> checked_in. Any other starting
// status is an invalid transition and leaves all state untouched. A prior
// completed ledger entry for the booking is restored to active, covering
// re-activation after an early administrative check-out.
func CheckInBooking(id uint) (*models.Booking, error) {
	booking, err := GetBooking(id)
	if err != nil {
		return nil, err
	}
	if booking.Status != types.BOOKING_RESERVED {
		return nil, &types.InvalidTransitionError{From: booking.Status, Op: "check in"}
	}
	d := db.GetDb()
	err = d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("status", types.BOOKING_CHECKED_IN).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.RoomOccupancy{}).
			Where("booking_id = ?", booking.ID).
			Where("status = ?", types.OCCUPANCY_COMPLETED).
			Update("status", types.OCCUPANCY_ACTIVE).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	booking.Status = types.BOOKING_CHECKED_IN
	return booking, nil
}

// CheckOutBooking transitions checked_in -> checked_out and completes the
// booking's ledger entries, freeing the room for new reservations from the
// moment of departure. The row stays live until archival picks it up.
func CheckOutBooking(id uint) (*models.Booking, error) {
	booking, err := GetBooking(id)
	if err != nil {
		return nil, err
	}
	if booking.Status != types.BOOKING_CHECKED_IN {
		return nil, &types.InvalidTransitionError{From: booking.Status, Op: "check out"}
	}
	d := db.GetDb()
	err = d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("status", types.BOOKING_CHECKED_OUT).
			Error; err != nil {
			return err
		}
		if err := common.SetOccupancyStatus(tx, booking.ID, types.OCCUPANCY_COMPLETED); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	booking.Status = types.BOOKING_CHECKED_OUT
	return booking, nil
}

// ArchiveBooking is the single removal path for live bookings, used by
// cancellation, check-out and post-stay cleanup alike: the row is copied into
// the archive with a deletion timestamp, its ledger entries flip to
// completed, and the live row is deleted, all in one transaction. The ledger
// entries themselves are retained for history. Repeating the call yields
// ErrNotFound; the archive never receives a second copy.
func ArchiveBooking(id uint) (*models.ArchivedBooking, error) {
	var archived *models.ArchivedBooking
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}
		archived = models.NewArchivedBooking(&booking, time.Now().UTC())
		if err := tx.Create(archived).Error; err != nil {
			return err
		}
		if err := common.SetOccupancyStatus(tx, booking.ID, types.OCCUPANCY_COMPLETED); err != nil {
			return err
		}
		if err := tx.Delete(&models.Booking{}, booking.ID).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return archived, nil
}

// SweepDepartedStays archives bookings whose stay already ended but were
// never explicitly checked out through the API. Runs on a schedule.
func SweepDepartedStays() {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	d := db.GetDb()
	var ids []uint
	err := d.
		Model(&models.Booking{}).
		Where("status = ?", types.BOOKING_CHECKED_OUT).
		Where("check_out < ?", today).
		Pluck("id", &ids).
		Error
	if err != nil {
		log.Printf("[sweep] Error listing departed stays: %s\n", err.Error())
		return
	}
	for _, id := range ids {
		if _, err := ArchiveBooking(id); err != nil {
			log.Printf("[sweep] Error archiving booking %d: %s\n", id, err.Error())
		}
	}
	if len(ids) > 0 {
		log.Printf("[sweep] Archived %d departed stay(s)\n", len(ids))
	}
}
