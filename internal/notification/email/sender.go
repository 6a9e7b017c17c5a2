// Package email delivers agent-facing notification emails over SMTP.
package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"imogest_backend/platform/config"
)

// Sender is the outbound email surface of the notification layer.
type Sender interface {
	SendNewLeadEmail(ctx context.Context, toEmail string, data NewLeadData) error
	SendStageChangedEmail(ctx context.Context, toEmail string, data StageChangedData) error
	SendTaskReminderEmail(ctx context.Context, toEmail string, data TaskReminderData) error
}

// SMTPSender implements Sender using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
	baseURL   string
}

// NewSMTPSender builds a sender from the notification configuration.
// Returns nil when email is disabled.
func NewSMTPSender(cfg config.NotificationConfig) *SMTPSender {
	if !cfg.IsEmailEnabled() {
		return nil
	}
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		baseURL:   cfg.GetAppBaseURL(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendNewLeadEmail notifies the assigned agent about a fresh lead.
func (s *SMTPSender) SendNewLeadEmail(ctx context.Context, toEmail string, data NewLeadData) error {
	data.LeadURL = fmt.Sprintf("%s/leads/%s", s.baseURL, data.LeadID)
	content, err := renderTemplate("new_lead", data)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectNewLead, content)
}

// SendStageChangedEmail notifies the assigned agent about a pipeline move.
func (s *SMTPSender) SendStageChangedEmail(ctx context.Context, toEmail string, data StageChangedData) error {
	data.LeadURL = fmt.Sprintf("%s/leads/%s", s.baseURL, data.LeadID)
	content, err := renderTemplate("stage_changed", data)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectStageChangedFmt, data.LeadName), content)
}

// SendTaskReminderEmail notifies the agent about an upcoming task.
func (s *SMTPSender) SendTaskReminderEmail(ctx context.Context, toEmail string, data TaskReminderData) error {
	content, err := renderTemplate("task_reminder", data)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectTaskReminderFmt, data.Title), content)
}
