package mailer

import (
	"fmt"
	"log"
	"os"

	"hbs/src/config"
	"hbs/src/lib"
	"hbs/src/models"
)

// SendBookingConfirmation mails the finalized booking projection to the
// guest. Fire-and-forget: failures are logged, never propagated, so a mail
// outage cannot fail a booking that already committed.
func SendBookingConfirmation(bookings []models.Booking, roomType string) {
	if len(bookings) == 0 {
		return
	}
	first := bookings[0]
	roomNumbers := ""
	for i, b := range bookings {
		if i > 0 {
			roomNumbers += ", "
		}
		if b.Room != nil {
			roomNumbers += b.Room.RoomNumber
		} else {
			roomNumbers += fmt.Sprintf("#%d", b.RoomID)
		}
	}
	senderFrom := os.Getenv("SMTP_FROM")
	input := &lib.SendMailInput{
		Subject:  fmt.Sprintf("Booking Confirmation #%d", first.ID),
		From:     senderFrom,
		FromName: "Reservations",
		To:       []string{first.GuestEmail},
		Html:     true,
		Body: fmt.Sprintf(`
			<p>Dear %s %s,</p>
			<p>Your reservation is confirmed.</p>
			<p>Room type: <b>%s</b><br/>
			Room(s): %s<br/>
			Check-in: %s<br/>
			Check-out: %s<br/>
			Amount paid: %.2f</p>
			<p>We look forward to your stay.</p>
		`,
			first.GuestFirstName,
			first.GuestLastName,
			roomType,
			roomNumbers,
			first.CheckIn.Format(config.DATE_PARSE_FORMAT),
			first.CheckOut.Format(config.DATE_PARSE_FORMAT),
			first.PaidAmount,
		),
	}
	if err := lib.SendMail(input); err != nil {
		log.Printf("[mailer] Could not send confirmation for booking %d: %s\n", first.ID, err.Error())
	}
}
