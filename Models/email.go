package Models

import (
	"strings"

	"ImageVault/Config"
)

type EmailConfig struct {
	SMTPServer   string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	ToEmails     []string
	CCEmails     []string
	TLSEnabled   bool
	SkipTLSCheck bool
}

// EmailMessage represents an email to be sent
type EmailMessage struct {
	To      []string
	CC      []string
	BCC     []string
	Subject string
	Body    string
	IsHTML  bool
}

// LoadEmailConfig reads the SMTP settings from the environment. Sending is
// disabled when EMAIL_PASSWORD is unset.
func LoadEmailConfig() EmailConfig {
	return EmailConfig{
		SMTPServer:   Config.Getenv("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:     Config.GetenvInt("SMTP_PORT", 587),
		Username:     Config.Getenv("EMAIL_USER", ""),
		Password:     Config.Getenv("EMAIL_PASSWORD", ""),
		FromEmail:    Config.Getenv("EMAIL_FROM", Config.Getenv("EMAIL_USER", "")),
		FromName:     Config.Getenv("EMAIL_FROM_NAME", "ImageVault"),
		ToEmails:     splitList(Config.Getenv("EMAIL_TO", "")),
		CCEmails:     splitList(Config.Getenv("EMAIL_CC", "")),
		TLSEnabled:   Config.GetenvBool("SMTP_TLS", true),
		SkipTLSCheck: Config.GetenvBool("SMTP_SKIP_TLS_CHECK", false),
	}
}

func (c EmailConfig) Enabled() bool {
	return c.Password != "" && len(c.ToEmails) > 0
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
