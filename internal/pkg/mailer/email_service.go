package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendRefundNotice(toEmail, hostName, bookingRef, refundType string, refundAmount, reversalAmount float64) error
	SendPendingManualAlert(toEmail, bookingRef, syntheticRef string, refundAmount float64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendRefundNotice tells the host a refund was executed on one of their
// bookings, including the clawed-back share if any.
func (s *emailService) SendRefundNotice(toEmail, hostName, bookingRef, refundType string, refundAmount, reversalAmount float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Refund processed for booking %s", bookingRef))

	reversalLine := ""
	if reversalAmount > 0 {
		reversalLine = fmt.Sprintf("<p>Amount reclaimed from your payout: <b>%.2f</b></p>", reversalAmount)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>A <b>%s</b> refund was processed for booking <b>%s</b>.</p>
			<p>Guest refund amount: <b>%.2f</b></p>
			%s
			<p>You can review the booking details in your host dashboard.</p>
		</div>
	`, hostName, refundType, bookingRef, refundAmount, reversalLine)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

// SendPendingManualAlert notifies the operations inbox that a refund was
// recorded without processor confirmation and needs manual reconciliation.
func (s *emailService) SendPendingManualAlert(toEmail, bookingRef, syntheticRef string, refundAmount float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("ACTION NEEDED: unconfirmed refund on booking %s", bookingRef))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Unconfirmed refund recorded</h2>
			<p>The payment processor could not be reached while refunding booking <b>%s</b>.</p>
			<p>The refund of <b>%.2f</b> was recorded locally under reference <b>%s</b>.</p>
			<p>Reconcile it manually in the processor dashboard, then replace the synthetic reference.</p>
		</div>
	`, bookingRef, refundAmount, syntheticRef)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
