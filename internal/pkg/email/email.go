package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Sender delivers the transactional mails of the portal.
type Sender interface {
	SendOTP(toEmail, code string, ttl time.Duration) error
	SendPasswordReset(toEmail, resetURL string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender implements Sender over SMTP. Without credentials it only logs what it would
// have sent, which keeps local development free of a mail server.
type SMTPSender struct {
	config   SMTPConfig
	logger   zerolog.Logger
	sendMail sendMailFunc
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		config:   config,
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

var otpTemplate = template.Must(template.New("otp").Parse(`<html><body>
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>Verify your email</h2>
<p>Your PlacementHub verification code is:</p>
<p style="font-size: 24px; letter-spacing: 4px;"><strong>{{.Code}}</strong></p>
<p>The code expires in {{.Minutes}} minutes. If you did not sign up, ignore this email.</p>
</div>
</body></html>`))

var resetTemplate = template.Must(template.New("reset").Parse(`<html><body>
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>Reset your password</h2>
<p><a href="{{.URL}}">Choose a new password</a></p>
<p>The link can be used once and expires in one hour.</p>
</div>
</body></html>`))

func (s *SMTPSender) configured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// SendOTP mails a signup verification code
func (s *SMTPSender) SendOTP(toEmail, code string, ttl time.Duration) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("otp", code).
			Msg("SMTP credentials not configured - OTP email not sent")
		return nil
	}

	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, map[string]interface{}{"Code": code, "Minutes": int(ttl.Minutes())}); err != nil {
		return fmt.Errorf("failed to render OTP email: %w", err)
	}
	return s.sendHTML(toEmail, "Your PlacementHub verification code", body.String())
}

// SendPasswordReset mails a one-time reset link
func (s *SMTPSender) SendPasswordReset(toEmail, resetURL string) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("resetURL", resetURL).
			Msg("SMTP credentials not configured - password reset email not sent")
		return nil
	}

	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, map[string]string{"URL": resetURL}); err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}
	return s.sendHTML(toEmail, "Reset your PlacementHub password", body.String())
}

func (s *SMTPSender) sendHTML(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.config.From)
	fmt.Fprintf(&msg, "To: %s\r\n", toEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	if err := s.sendMail(addr, auth, s.config.From, []string{toEmail}, msg.Bytes()); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Str("subject", subject).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}
