package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"league-registration/internal/api"
	"league-registration/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// NotificationService sends the post-registration emails and the admin
// trigger. Every attempt is independent, bounded by its own timeout, and
// only logged on failure.
type NotificationService struct {
	renderer   MessageRenderer
	email      EmailSender
	admin      AdminTrigger
	adminEmail string
	timeout    time.Duration
	logger     zerolog.Logger

	wg sync.WaitGroup
}

func NewNotificationService(renderer MessageRenderer, email EmailSender, admin AdminTrigger, adminEmail string, timeout time.Duration, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		renderer:   renderer,
		email:      email,
		admin:      admin,
		adminEmail: adminEmail,
		timeout:    timeout,
		logger:     logger,
	}
}

// Dispatch returns immediately. The work outlives ctx's cancellation but
// keeps its values.
func (n *NotificationService) Dispatch(ctx context.Context, s domain.RegistrationSummary) {
	base := context.WithoutCancel(ctx)
	log := n.logger.With().Int64("team_id", s.TeamID).Bool("waitlist", s.Waitlist).Logger()

	g := new(errgroup.Group)

	n.spawn(g, log, "confirmation email", func() error {
		if s.CaptainEmail == "" {
			return fmt.Errorf("captain has no email address")
		}
		msg, err := n.renderer.Confirmation(s)
		if err != nil {
			return err
		}
		return n.send(base, log, s.CaptainEmail, msg.Subject, msg.HTML)
	})

	if !s.Waitlist {
		if n.admin != nil && n.admin.Enabled() && s.SessionToken != "" {
			n.spawn(g, log, "admin trigger", func() error {
				ctx, cancel := context.WithTimeout(base, n.timeout)
				defer cancel()

				status, err := n.admin.Trigger(ctx, s.SessionToken)
				if err != nil {
					return err
				}
				log.Debug().Int("status", status).Msg("admin notification triggered")
				return nil
			})
		}

		if n.adminEmail != "" {
			n.spawn(g, log, "admin email", func() error {
				msg, err := n.renderer.AdminRegistration(s)
				if err != nil {
					return err
				}
				return n.send(base, log, n.adminEmail, msg.Subject, msg.HTML)
			})
		}
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := g.Wait(); err != nil {
			log.Warn().Err(err).Msg("background notification failed")
		}
	}()
}

// Wait blocks until every dispatched notification has finished.
func (n *NotificationService) Wait() {
	n.wg.Wait()
}

func (n *NotificationService) spawn(g *errgroup.Group, log zerolog.Logger, name string, fn func() error) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s panicked: %v", name, r)
				log.Error().Str("task", name).Interface("panic", r).Msg("notification task panicked")
			}
		}()

		if err := fn(); err != nil {
			failureEvent(log, err).Err(err).Str("task", name).Msg("notification failed")
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	})
}

// Upstream failures that may clear on retry are logged at warn.
func failureEvent(log zerolog.Logger, err error) *zerolog.Event {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Temporary() {
		return log.Warn()
	}
	return log.Error()
}

func (n *NotificationService) send(base context.Context, log zerolog.Logger, to, subject, html string) error {
	ctx, cancel := context.WithTimeout(base, n.timeout)
	defer cancel()

	id, err := n.email.Send(ctx, api.Email{
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}
	log.Debug().Str("email_id", id).Str("subject", subject).Msg("email sent")
	return nil
}
