package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"motorent-backoffice/internal/config"
	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const displayTimeLayout = "2006-01-02 15:04"

// Message is a rendered email ready for a Mailer.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers a rendered message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer picks the provider configured in cfg.Provider.
func NewMailer(cfg config.MailConfig) (Mailer, error) {
	switch cfg.Provider {
	case "smtp":
		return &SMTPMailer{
			dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
			from:     cfg.From,
			fromName: cfg.FromName,
		}, nil
	case "sendgrid":
		return &SendGridMailer{
			client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
			from:     cfg.From,
			fromName: cfg.FromName,
		}, nil
	case "none", "":
		return NoopMailer{}, nil
	default:
		return nil, fmt.Errorf("unsupported mail provider: %s", cfg.Provider)
	}
}

type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func (s *SMTPMailer) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetAddressHeader("To", msg.To, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}
	return nil
}

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type SendGridMailer struct {
	client   sendGridClient
	from     string
	fromName string
}

func (s *SendGridMailer) Send(ctx context.Context, msg Message) error {
	from := mail.NewEmail(s.fromName, s.from)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// NoopMailer logs instead of sending. Used when no provider is configured.
type NoopMailer struct{}

func (NoopMailer) Send(ctx context.Context, msg Message) error {
	logger.InfoContext(ctx, "email delivery disabled, dropping message", "to", msg.To, "subject", msg.Subject)
	return nil
}

type emailService struct {
	mailer Mailer
}

func NewEmailService(mailer Mailer) EmailService {
	return &emailService{mailer: mailer}
}

func (s *emailService) SendContractConfirmation(ctx context.Context, customer *domain.Customer, contract *domain.ContractDetail) error {
	if customer.Email == "" {
		return nil
	}
	data := map[string]any{
		"CustomerName":       customer.FullName,
		"ContractID":         contract.ID,
		"Status":             contract.Status,
		"MotorbikeName":      contract.MotorbikeName,
		"LicensePlate":       contract.LicensePlate,
		"RentalType":         contract.RentalType,
		"RentalDate":         contract.RentalDate.Format(displayTimeLayout),
		"ExpectedReturnDate": contract.ExpectedReturnDate.Format(displayTimeLayout),
		"TotalAmount":        contract.TotalAmount.StringFixed(0),
		"DiscountAmount":     "",
		"DepositAmount":      contract.DepositAmount.StringFixed(0),
	}
	if contract.DiscountAmount.Valid {
		data["DiscountAmount"] = contract.DiscountAmount.Decimal.StringFixed(0)
	}
	text := fmt.Sprintf("Hello %s,\n\nYour rental contract #%d for %s (%s) runs from %s to %s.\nTotal: %s, deposit: %s.\n",
		customer.FullName, contract.ID, contract.MotorbikeName, contract.LicensePlate,
		data["RentalDate"], data["ExpectedReturnDate"], data["TotalAmount"], data["DepositAmount"])

	return s.send(ctx, "contract_confirmation.html", data, Message{
		To:      customer.Email,
		ToName:  customer.FullName,
		Subject: fmt.Sprintf("Rental contract #%d confirmation", contract.ID),
		Text:    text,
	})
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, customer *domain.Customer, contract *domain.ContractDetail, payment *domain.Payment) error {
	if customer.Email == "" {
		return nil
	}
	data := map[string]any{
		"CustomerName":  customer.FullName,
		"ContractID":    contract.ID,
		"Amount":        payment.Amount.StringFixed(0),
		"Method":        payment.Method,
		"PaymentDate":   payment.PaymentDate.Format(displayTimeLayout),
		"Reference":     payment.Reference,
		"MotorbikeName": contract.MotorbikeName,
		"LicensePlate":  contract.LicensePlate,
	}
	text := fmt.Sprintf("Hello %s,\n\nWe received %s (%s) for rental contract #%d on %s.\n",
		customer.FullName, data["Amount"], payment.Method, contract.ID, data["PaymentDate"])

	return s.send(ctx, "payment_receipt.html", data, Message{
		To:      customer.Email,
		ToName:  customer.FullName,
		Subject: fmt.Sprintf("Payment receipt for contract #%d", contract.ID),
		Text:    text,
	})
}

func (s *emailService) SendPasswordReset(ctx context.Context, employee *domain.Employee, resetLink string, expiresAt time.Time) error {
	data := map[string]any{
		"Name":      employee.FullName,
		"Link":      resetLink,
		"ExpiresAt": expiresAt.Format(displayTimeLayout),
	}
	text := fmt.Sprintf("Hello %s,\n\nReset your password here: %s\nThe link expires at %s.\n",
		employee.FullName, resetLink, data["ExpiresAt"])

	return s.send(ctx, "password_reset.html", data, Message{
		To:      employee.Email,
		ToName:  employee.FullName,
		Subject: "Password reset request",
		Text:    text,
	})
}

func (s *emailService) send(ctx context.Context, tmpl string, data any, msg Message) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", tmpl, err)
	}
	msg.HTML = buf.String()

	logger.ExternalServiceCall(ctx, "mail", "send", "to", msg.To, "subject", msg.Subject)
	err := s.mailer.Send(ctx, msg)
	logger.ExternalServiceResult(ctx, "mail", "send", err)
	return err
}
