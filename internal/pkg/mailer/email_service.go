// FILE: internal/pkg/mailer/email_service.go
package mailer

//go:generate mockgen -source=email_service.go -destination=mock_email_service.go -package=mailer

import (
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendAgreementConfirmation(toEmail, tenantName, roomTitle, confirmLink string, expiresAt time.Time) error
	SendPaymentSuccess(toEmail, tenantName string, amount int64, transactionId string) error
	SendPaymentFailed(toEmail, tenantName, reason string) error
	SendContractSigned(toEmail, fullName, roomTitle, documentURL string) error
	SendWithdrawalUpdate(toEmail, tenantName, status string, netAmount int64, note string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}

func (s *emailService) SendAgreementConfirmation(toEmail, tenantName, roomTitle, confirmLink string, expiresAt time.Time) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your rental offer for %s</h2>
			<p>Hi %s, the landlord accepted your request and sent you the lease terms.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Review and confirm</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>This offer expires on %s.</p>
		</div>
	`, html.EscapeString(roomTitle), html.EscapeString(tenantName), confirmLink, confirmLink, expiresAt.Format("02/01/2006 15:04 MST"))

	return s.send(toEmail, "Confirm your rental agreement", body)
}

func (s *emailService) SendPaymentSuccess(toEmail, tenantName string, amount int64, transactionId string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Deposit received</h2>
			<p>Hi %s, we received your deposit of <b>%d VND</b>.</p>
			<p>Transaction: %s</p>
			<p>Your lease has been sent for e-signature. Please check your inbox.</p>
		</div>
	`, html.EscapeString(tenantName), amount, transactionId)

	return s.send(toEmail, "Deposit payment successful", body)
}

func (s *emailService) SendPaymentFailed(toEmail, tenantName, reason string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Deposit payment failed</h2>
			<p>Hi %s, your deposit payment could not be completed.</p>
			<p>Reason: %s</p>
			<p>You can try again from your agreement page.</p>
		</div>
	`, html.EscapeString(tenantName), html.EscapeString(reason))

	return s.send(toEmail, "Deposit payment failed", body)
}

func (s *emailService) SendContractSigned(toEmail, fullName, roomTitle, documentURL string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Lease signed</h2>
			<p>Hi %s, the lease for %s is now signed and active.</p>
			<p><a href="%s">Download the signed contract</a></p>
		</div>
	`, html.EscapeString(fullName), html.EscapeString(roomTitle), documentURL)

	return s.send(toEmail, "Your lease is active", body)
}

func (s *emailService) SendWithdrawalUpdate(toEmail, tenantName, status string, netAmount int64, note string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Withdrawal %s</h2>
			<p>Hi %s, your withdrawal request is now <b>%s</b>.</p>
			<p>Amount payable: %d VND</p>
			<p>%s</p>
		</div>
	`, html.EscapeString(status), html.EscapeString(tenantName), html.EscapeString(status), netAmount, html.EscapeString(note))

	return s.send(toEmail, "Withdrawal request update", body)
}
