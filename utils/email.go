package utils

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

// SendOTPEmail sends the OTP to the account's email address
func SendOTPEmail(email string, otp string) {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your OTP Code")
	m.SetBody("text/plain", "Your OTP code is: "+otp)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send OTP email to %s: %v", email, err)
		return
	}

	log.Printf("OTP email successfully sent to %s", email)
}

// SendCommissionEmail notifies a sub-agent that a commission was created for
// them. Best effort only; a delivery failure is logged and forgotten.
func SendCommissionEmail(email, studentName string, amount float64) {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "New commission on your account")
	m.SetBody("text/plain", fmt.Sprintf(
		"A commission of %.2f has been recorded for the application of %s. It will be paid out once approved.",
		amount, studentName))

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send commission email to %s: %v", email, err)
		return
	}

	log.Printf("Commission email successfully sent to %s", email)
}
