// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

// LeadMail is the subset of a lead rendered in notification emails.
type LeadMail struct {
	Reference   string
	Kind        string
	FullName    string
	Email       string
	Phone       string
	Company     string
	Message     string
	WebsiteUrl  string
	OptionNames []string
	TotalMin    float64
	TotalMax    float64
	TotalMinTtc float64
	TotalMaxTtc float64
	OnRequest   int
}

type IEmailService interface {
	SendLeadNotification(toEmail string, lead LeadMail) error
	SendLeadAcknowledgement(lead LeadMail) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

// NewEmailService returns a no-op sender when host is empty so local runs
// and tests never dial out.
func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	if host == "" {
		return noopEmailService{}
	}
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) newMessage(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

func (s *emailService) SendLeadNotification(toEmail string, lead LeadMail) error {
	if toEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Nouvelle demande (%s) - %s", lead.Kind, lead.FullName)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Nouvelle demande %s</h2>
			<p><strong>Référence :</strong> %s</p>
			<p><strong>Contact :</strong> %s &lt;%s&gt; %s</p>
			<p><strong>Société :</strong> %s</p>
			%s
			<p>%s</p>
		</div>
	`,
		html.EscapeString(lead.Kind),
		html.EscapeString(lead.Reference),
		html.EscapeString(lead.FullName),
		html.EscapeString(lead.Email),
		html.EscapeString(lead.Phone),
		html.EscapeString(lead.Company),
		renderDetails(lead),
		html.EscapeString(lead.Message),
	)

	if err := s.dialer.DialAndSend(s.newMessage(toEmail, subject, body)); err != nil {
		return fmt.Errorf("send lead notification %s: %w", lead.Reference, err)
	}
	return nil
}

func (s *emailService) SendLeadAcknowledgement(lead LeadMail) error {
	subject := "Nous avons bien reçu votre demande"
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Merci %s !</h2>
			<p>Votre demande (référence %s) a bien été enregistrée. Nous revenons vers vous sous 48h.</p>
			%s
		</div>
	`,
		html.EscapeString(lead.FullName),
		html.EscapeString(lead.Reference),
		renderDetails(lead),
	)

	if err := s.dialer.DialAndSend(s.newMessage(lead.Email, subject, body)); err != nil {
		return fmt.Errorf("send lead acknowledgement %s: %w", lead.Reference, err)
	}
	return nil
}

func renderDetails(lead LeadMail) string {
	var b strings.Builder
	if lead.WebsiteUrl != "" {
		fmt.Fprintf(&b, "<p><strong>Site :</strong> %s</p>", html.EscapeString(lead.WebsiteUrl))
	}
	if len(lead.OptionNames) > 0 {
		b.WriteString("<ul>")
		for _, name := range lead.OptionNames {
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(name))
		}
		b.WriteString("</ul>")
		fmt.Fprintf(&b, "<p><strong>Estimation :</strong> %.2f € - %.2f € HT (%.2f € - %.2f € TTC)</p>",
			lead.TotalMin, lead.TotalMax, lead.TotalMinTtc, lead.TotalMaxTtc)
	}
	if lead.OnRequest > 0 {
		fmt.Fprintf(&b, "<p>%d option(s) d'automatisation sur devis.</p>", lead.OnRequest)
	}
	return b.String()
}

type noopEmailService struct{}

func (noopEmailService) SendLeadNotification(string, LeadMail) error { return nil }

func (noopEmailService) SendLeadAcknowledgement(LeadMail) error { return nil }
