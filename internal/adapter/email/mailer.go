package email

// Mailer delivers one-time codes out-of-band.
type Mailer interface {
	SendPasswordResetOTP(toEmail, toName, otp string) error
}
