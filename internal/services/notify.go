package services

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NotifyService sends SMS confirmations through Twilio. When the
// credentials are absent it stays disabled and every call becomes a
// no-op: notifications are best effort and never block an enrollment
// or a withdrawal.
type NotifyService struct {
	client  *twilio.RestClient
	from    string
	enabled bool
}

// NewNotifyService builds the notifier from TWILIO_ACCOUNT_SID,
// TWILIO_AUTH_TOKEN and TWILIO_SMS_FROM.
func NewNotifyService() *NotifyService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_SMS_FROM")

	if accountSid == "" || authToken == "" || from == "" {
		log.Println("⚠️  Twilio credentials not found - SMS confirmations disabled")
		return &NotifyService{}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return &NotifyService{client: client, from: from, enabled: true}
}

func (n *NotifyService) send(to, body string) {
	if n == nil || !n.enabled || to == "" {
		return
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(n.from)
	params.SetTo(to)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		log.Printf("❌ Failed to send SMS to %s: %v", to, err)
		return
	}
	log.Printf("✅ SMS sent to %s", to)
}

// EnrollmentWelcome confirms a fresh enrollment to the recruit.
func (n *NotifyService) EnrollmentWelcome(phone, name string) {
	n.send(phone, fmt.Sprintf("Bienvenue chez TaxiConnect, %s ! Votre inscription est enregistrée.", name))
}

// WithdrawalConfirmation confirms a recorded withdrawal request.
func (n *NotifyService) WithdrawalConfirmation(phone, reference string, amount float64) {
	n.send(phone, fmt.Sprintf("Votre demande de retrait de %.0f XAF est enregistrée. Réf: %s", amount, reference))
}
