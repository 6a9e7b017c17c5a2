// Package notification turns domain events into agent-facing email and
// WhatsApp messages.
package notification

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"imogest_backend/internal/events"
	"imogest_backend/internal/notification/email"
	"imogest_backend/internal/notification/whatsapp"
	"imogest_backend/platform/config"
	"imogest_backend/platform/logger"
)

// Service fans domain events out to the configured channels. Delivery
// failures are logged, never returned to publishers.
type Service struct {
	emailSender email.Sender
	whatsapp    *whatsapp.Client
	inboxEmail  string
	inboxPhone  string
	log         *logger.Logger
}

// New creates a notification service. Either channel may be nil.
func New(emailSender email.Sender, wa *whatsapp.Client, cfg config.NotificationConfig, log *logger.Logger) *Service {
	return &Service{
		emailSender: emailSender,
		whatsapp:    wa,
		inboxEmail:  cfg.GetAgentInboxEmail(),
		inboxPhone:  cfg.GetAgentInboxPhone(),
		log:         log,
	}
}

// Subscribe registers the event handlers on the bus.
func (s *Service) Subscribe(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(s.onLeadCreated))
	bus.Subscribe(events.LeadStageChanged{}.EventName(), events.HandlerFunc(s.onLeadStageChanged))
	bus.Subscribe(events.TaskReminderDue{}.EventName(), events.HandlerFunc(s.onTaskReminderDue))
}

func (s *Service) onLeadCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadCreated)
	if !ok {
		return nil
	}

	message := fmt.Sprintf("Novo contacto: %s", e.Name)
	if e.Source != "" {
		message += fmt.Sprintf(" (via %s)", e.Source)
	}

	s.dispatch(ctx, message, func(ctx context.Context) error {
		return s.emailSender.SendNewLeadEmail(ctx, s.inboxEmail, email.NewLeadData{
			LeadID:   e.LeadID.String(),
			LeadName: e.Name,
			Source:   e.Source,
		})
	})
	return nil
}

func (s *Service) onLeadStageChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadStageChanged)
	if !ok {
		return nil
	}

	message := fmt.Sprintf("Contacto %s: %s -> %s", e.Name, e.OldStatus, e.NewStatus)

	s.dispatch(ctx, message, func(ctx context.Context) error {
		return s.emailSender.SendStageChangedEmail(ctx, s.inboxEmail, email.StageChangedData{
			LeadID:    e.LeadID.String(),
			LeadName:  e.Name,
			OldStatus: e.OldStatus,
			NewStatus: e.NewStatus,
		})
	})
	return nil
}

func (s *Service) onTaskReminderDue(ctx context.Context, event events.Event) error {
	e, ok := event.(events.TaskReminderDue)
	if !ok {
		return nil
	}

	dueAt := e.DueAt.Format("02/01/2006 15:04")
	message := fmt.Sprintf("Lembrete: %s às %s", e.Title, dueAt)

	s.dispatch(ctx, message, func(ctx context.Context) error {
		return s.emailSender.SendTaskReminderEmail(ctx, s.inboxEmail, email.TaskReminderData{
			Title: e.Title,
			DueAt: dueAt,
		})
	})
	return nil
}

// dispatch sends through both channels concurrently and swallows failures.
func (s *Service) dispatch(ctx context.Context, waMessage string, sendEmail func(context.Context) error) {
	g, gctx := errgroup.WithContext(ctx)

	if s.emailSender != nil && s.inboxEmail != "" {
		g.Go(func() error {
			if err := sendEmail(gctx); err != nil {
				s.log.NotificationError("email", s.inboxEmail, err)
			}
			return nil
		})
	}

	if s.whatsapp != nil && s.inboxPhone != "" {
		g.Go(func() error {
			if err := s.whatsapp.SendMessage(gctx, s.inboxPhone, waMessage); err != nil {
				s.log.NotificationError("whatsapp", s.inboxPhone, err)
			}
			return nil
		})
	}

	_ = g.Wait()
}
