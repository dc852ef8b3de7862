package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorent-backoffice/internal/config"
	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

type captureMailer struct {
	sent []service.Message
}

func (c *captureMailer) Send(ctx context.Context, msg service.Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

func TestEmailService_ContractConfirmation(t *testing.T) {
	mailer := &captureMailer{}
	svc := service.NewEmailService(mailer)
	customer := &domain.Customer{FullName: "Nguyen Van A", Email: "a@example.com"}
	contract := &domain.ContractDetail{
		RentalContract: domain.RentalContract{
			ID:                 42,
			Status:             domain.ContractStatusActive,
			RentalType:         domain.RentalTypeHourly,
			RentalDate:         testNow,
			ExpectedReturnDate: testNow.Add(3 * time.Hour),
			TotalAmount:        dec(54000),
			DiscountAmount:     decimal.NewNullDecimal(dec(6000)),
			DepositAmount:      dec(500000),
		},
		MotorbikeName: "Honda Vision",
		LicensePlate:  "59A-12345",
	}

	require.NoError(t, svc.SendContractConfirmation(context.Background(), customer, contract))
	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "a@example.com", msg.To)
	assert.Contains(t, msg.Subject, "#42")
	assert.Contains(t, msg.HTML, "Honda Vision (59A-12345)")
	assert.Contains(t, msg.HTML, "54000")
	assert.Contains(t, msg.HTML, "6000")
	assert.Contains(t, msg.Text, "2025-06-01 08:00")
}

func TestEmailService_SkipsCustomersWithoutEmail(t *testing.T) {
	mailer := &captureMailer{}
	svc := service.NewEmailService(mailer)

	err := svc.SendPaymentReceipt(context.Background(), &domain.Customer{FullName: "No Mail"},
		&domain.ContractDetail{}, &domain.Payment{Amount: dec(1)})
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestEmailService_PasswordResetEscapesLink(t *testing.T) {
	mailer := &captureMailer{}
	svc := service.NewEmailService(mailer)
	employee := &domain.Employee{FullName: "Tran Thi B", Email: "b@example.com"}

	link := "https://admin.example.com/reset?token=abc&x=<script>"
	require.NoError(t, svc.SendPasswordReset(context.Background(), employee, link, testNow))
	require.Len(t, mailer.sent, 1)
	assert.NotContains(t, mailer.sent[0].HTML, "<script>")
}

func TestNewMailer(t *testing.T) {
	for _, provider := range []string{"smtp", "sendgrid", "none", ""} {
		m, err := service.NewMailer(config.MailConfig{Provider: provider, SMTPHost: "localhost", SMTPPort: 25})
		require.NoError(t, err, provider)
		assert.NotNil(t, m)
	}
	_, err := service.NewMailer(config.MailConfig{Provider: "pigeon"})
	assert.Error(t, err)
}
