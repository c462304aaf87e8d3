package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/rentfolio/rentfolio-api/internal/config"
	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/pkg/logger"
	"github.com/resend/resend-go/v2"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

func (s *EmailService) SendPasswordReset(ctx context.Context, user *models.User, token string) error {
	data := struct {
		Name   string
		Token  string
		AppURL string
	}{
		Name:   user.FullName,
		Token:  token,
		AppURL: s.config.AppURL,
	}

	body, err := s.renderTemplate("reset_password.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Email},
		Subject: "Reset your password",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", user.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Reset your password", user.Email))
	return nil
}

func (s *EmailService) SendAccountCreated(ctx context.Context, user *models.User) error {
	data := struct {
		Name   string
		AppURL string
	}{
		Name:   user.FullName,
		AppURL: s.config.AppURL,
	}

	body, err := s.renderTemplate("account_created.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Email},
		Subject: "Welcome to Rentfolio",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", user.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Welcome to Rentfolio", user.Email))
	return nil
}

// UnitAlertData is one row in the delinquency digest
type UnitAlertData struct {
	Address      string
	UnitNumber   int
	Status       string
	DaysInStatus int
	AmountOwed   string
}

// SendUnitAlertDigest emails an admin the list of units that are vacant
// or behind on rent across the portfolio
func (s *EmailService) SendUnitAlertDigest(ctx context.Context, user *models.User, alerts []UnitAlertData) error {
	data := struct {
		Name   string
		Alerts []UnitAlertData
		AppURL string
	}{
		Name:   user.FullName,
		Alerts: alerts,
		AppURL: s.config.AppURL,
	}

	body, err := s.renderTemplate("unit_alert_digest.html", data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Unit alerts (%d units)", len(alerts))
	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Email},
		Subject: subject,
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", user.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: %s", user.Email, subject))
	return nil
}

// SendMonthlySummary emails an admin the portfolio P&L summary for the
// latest month
func (s *EmailService) SendMonthlySummary(ctx context.Context, user *models.User, month string, summary models.PLSummary) error {
	data := struct {
		Name          string
		Month         string
		TotalIncome   string
		TotalExpenses string
		NetIncome     string
		AppURL        string
	}{
		Name:          user.FullName,
		Month:         month,
		TotalIncome:   fmt.Sprintf("$%.2f", summary.TotalIncome),
		TotalExpenses: fmt.Sprintf("$%.2f", summary.TotalExpenses),
		NetIncome:     fmt.Sprintf("$%.2f", summary.NetIncome),
		AppURL:        s.config.AppURL,
	}

	body, err := s.renderTemplate("monthly_summary.html", data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Portfolio summary for %s", month)
	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Email},
		Subject: subject,
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", user.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: %s", user.Email, subject))
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
