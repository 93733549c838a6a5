package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// SendBookingConfirmationEmail sends the guest a plain-text confirmation
// after a successful payment. Delivery is best-effort: the booking is
// already committed when this runs, so failures are logged, not fatal.
//
// DEV fallback: when SMTP is not configured the mail is logged instead
// of sent.
func SendBookingConfirmationEmail(
	recipientEmail,
	guestName,
	roomNumber,
	checkInDate,
	checkOutDate string,
	nights int,
	totalAmount float64,
) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := EnvOrDefault("SMTP_FROM_NAME", "Hotel Booking")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s room:%s %s -> %s nights:%d total:%.2f",
			recipientEmail, roomNumber, checkInDate, checkOutDate, nights, totalAmount)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	guestName = safe(guestName)
	roomNumber = safe(roomNumber)

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("Booking Confirmed — Room %s", roomNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your booking is confirmed. Details:\n\n"+
			"Room: %s\n"+
			"Check-In: %s\n"+
			"Check-Out: %s\n"+
			"Nights: %d\n"+
			"Total Paid: %.2f\n\n"+
			"We look forward to welcoming you.\n\n"+
			"Best regards,\n%s",
		guestName, roomNumber, checkInDate, checkOutDate, nights, totalAmount, fromName,
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body + "\r\n")

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("❌ Failed to send confirmation email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("📨 Confirmation email sent to %s", recipientEmail)
	return nil
}
