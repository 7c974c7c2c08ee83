package mailer

import (
	"fmt"

	"cancelflow-be/pkg/utils"

	"gopkg.in/gomail.v2"
)

type Offer string

const (
	OfferDownsell        Offer = "downsell"
	OfferSpecialDiscount Offer = "special_discount"
)

type IEmailService interface {
	SendOfferAccepted(toEmail string, offer Offer, newMonthlyPrice int64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendOfferAccepted(toEmail string, offer Offer, newMonthlyPrice int64) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your subscription discount is active")
	m.SetBody("text/html", offerBody(offer, newMonthlyPrice))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send offer confirmation to %s: %w", toEmail, err)
	}
	return nil
}

func offerBody(offer Offer, newMonthlyPrice int64) string {
	headline := "Thanks for staying with us!"
	if offer == OfferSpecialDiscount {
		headline = "Your 50% discount has been applied."
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>Your subscription stays active. Your new monthly price is:</p>
			<h1 style="color: #4CAF50;">%s/month</h1>
			<p>You can manage your subscription at any time from your account page.</p>
		</div>
	`, headline, utils.FormatPrice(newMonthlyPrice))
}
