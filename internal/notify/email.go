package notify

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/emredev/auto-service-crm/internal/models"
	log "github.com/sirupsen/logrus"
)

// Mailer sends admin notices over SMTP. When no SMTP host is configured
// the mailer is disabled and sends are skipped with a log line, so local
// setups work without mail credentials.
type Mailer struct {
	Host       string
	Port       string
	Username   string
	Password   string
	From       string
	AdminEmail string
}

// NewMailerFromEnv builds a mailer from SMTP_* environment variables.
func NewMailerFromEnv() *Mailer {
	return &Mailer{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       getEnvDefault("SMTP_PORT", "587"),
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       getEnvDefault("SMTP_FROM", "noreply@localhost"),
		AdminEmail: getEnvDefault("ADMIN_EMAIL", "admin@localhost"),
	}
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Enabled reports whether a mail host is configured.
func (m *Mailer) Enabled() bool {
	return m.Host != ""
}

func (m *Mailer) send(subject, body string) error {
	if !m.Enabled() {
		log.Infof("Email skipped (service disabled): %s", subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + m.AdminEmail,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := m.Host + ":" + m.Port
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	if err := smtp.SendMail(addr, auth, m.From, []string{m.AdminEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// SendUserRegistrationNotice tells the admin a new account is waiting
// for approval.
func (m *Mailer) SendUserRegistrationNotice(email, firstName, lastName string) error {
	body := fmt.Sprintf("New user registration pending approval.\n\nName: %s %s\nEmail: %s\n\nPlease activate the account from the user management page.",
		firstName, lastName, email)
	return m.send("New user registration - approval needed", body)
}

// SendWorkOrderNotice summarises a newly created work order for the admin.
func (m *Mailer) SendWorkOrderNotice(customerName, vehicleInfo string, order *models.WorkOrder) error {
	var parts strings.Builder
	for _, p := range order.Parts {
		fmt.Fprintf(&parts, "- %s (%s): %.2f\n", p.Name, p.Code, p.Price)
	}
	body := fmt.Sprintf("New work order created.\n\nCustomer: %s\nVehicle: %s\nService date: %s\nTotal: %.2f\n\nParts:\n%s",
		customerName, vehicleInfo, order.ServiceDate.Format("2006-01-02"), order.TotalPrice(), parts.String())
	return m.send("New work order", body)
}
