package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"andhara-backend/internal/config"
	"andhara-backend/internal/health"
	"andhara-backend/internal/mailer"
	"andhara-backend/internal/metrics"
	"andhara-backend/internal/models"
	"andhara-backend/internal/timeutil"

	"github.com/robfig/cron/v3"
)

type dueLister interface {
	ListDue(ctx context.Context, from, to time.Time) ([]*models.DueFollowUp, error)
}

// EmailService owns the daily follow-up reminder: a cron job at the
// configured Bogota hour, plus a manual trigger used by the send endpoint.
type EmailService struct {
	FollowUps dueLister
	Mailer    mailer.Provider
	Health    *health.HealthChecker

	recipients []string
	sendHour   int
	cron       *cron.Cron
}

func NewEmailService(followUps dueLister, provider mailer.Provider, checker *health.HealthChecker, cfg *config.Config) *EmailService {
	var recipients []string
	for _, addr := range strings.Split(cfg.Email.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return &EmailService{
		FollowUps:  followUps,
		Mailer:     provider,
		Health:     checker,
		recipients: recipients,
		sendHour:   cfg.Email.SendHour,
	}
}

// SendReminder performs one send: query the follow-ups due today or
// tomorrow, render the body and deliver it. The outcome is recorded on the
// health checker either way.
func (s *EmailService) SendReminder(ctx context.Context) error {
	today := timeutil.Today()
	due, err := s.FollowUps.ListDue(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		s.record(false, fmt.Sprintf("listing due follow-ups: %v", err))
		return err
	}
	if len(s.recipients) == 0 {
		err := fmt.Errorf("no reminder recipients configured")
		s.record(false, err.Error())
		return err
	}

	body := mailer.ReminderBody(due)
	if err := s.Mailer.Send(s.recipients, mailer.ReminderSubject(today), body); err != nil {
		s.record(false, err.Error())
		return err
	}
	s.record(true, fmt.Sprintf("sent reminder for %d customers", len(due)))
	return nil
}

// SendReminderWithRetry retries transient failures. Used by the manual
// trigger endpoint.
func (s *EmailService) SendReminderWithRetry(ctx context.Context, attempts int) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = s.SendReminder(ctx); err == nil {
			return nil
		}
		log.Printf("[Email] reminder attempt %d/%d failed: %v", attempt, attempts, err)
		if attempt < attempts {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}
	return err
}

// StartScheduler runs the reminder every day at the configured hour,
// Bogota time.
func (s *EmailService) StartScheduler() error {
	s.cron = cron.New(cron.WithLocation(timeutil.Bogota))
	spec := fmt.Sprintf("0 %d * * *", s.sendHour)
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.SendReminder(ctx); err != nil {
			log.Printf("[Email] daily reminder failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling daily reminder: %w", err)
	}
	s.cron.Start()
	log.Printf("[Email] daily reminder scheduled at %02d:00 %s", s.sendHour, timeutil.Bogota)
	return nil
}

// StopScheduler stops the cron loop, waiting for a running job to finish.
func (s *EmailService) StopScheduler() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *EmailService) record(ok bool, message string) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	metrics.DailyEmailRuns.WithLabelValues(outcome).Inc()
	if s.Health != nil {
		s.Health.RecordEmailJob(ok, message)
	}
}
