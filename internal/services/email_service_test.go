package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"andhara-backend/internal/config"
	"andhara-backend/internal/models"
	"andhara-backend/internal/services"
	"andhara-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDueLister struct {
	due  []*models.DueFollowUp
	err  error
	from time.Time
	to   time.Time
}

func (f *fakeDueLister) ListDue(ctx context.Context, from, to time.Time) ([]*models.DueFollowUp, error) {
	f.from, f.to = from, to
	return f.due, f.err
}

type recordingMailer struct {
	to      []string
	subject string
	body    string
	calls   int
	fail    int // fail the first N sends
}

func (m *recordingMailer) Send(to []string, subject, htmlBody string) error {
	m.calls++
	if m.calls <= m.fail {
		return errors.New("smtp unavailable")
	}
	m.to, m.subject, m.body = to, subject, htmlBody
	return nil
}

func emailConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Email.To = "gerencia@andhara.com, ventas@andhara.com"
	cfg.Email.SendHour = 8
	return cfg
}

func TestSendReminder(t *testing.T) {
	t.Parallel()

	lister := &fakeDueLister{due: []*models.DueFollowUp{
		{CustomerName: "Ana Martínez", Phone: "3001234567", PurchaseDuration: 30},
	}}
	m := &recordingMailer{}
	svc := services.NewEmailService(lister, m, nil, emailConfig())

	require.NoError(t, svc.SendReminder(context.Background()))
	assert.Equal(t, []string{"gerencia@andhara.com", "ventas@andhara.com"}, m.to)
	assert.Contains(t, m.body, "Ana Martínez")
}

func TestSendReminderQueriesTodayAndTomorrow(t *testing.T) {
	t.Parallel()

	lister := &fakeDueLister{}
	svc := services.NewEmailService(lister, &recordingMailer{}, nil, emailConfig())

	require.NoError(t, svc.SendReminder(context.Background()))
	today := timeutil.Today()
	assert.Equal(t, today, lister.from)
	assert.Equal(t, today.AddDate(0, 0, 1), lister.to)
}

func TestSendReminderSubjectCarriesDate(t *testing.T) {
	t.Parallel()

	m := &recordingMailer{}
	svc := services.NewEmailService(&fakeDueLister{}, m, nil, emailConfig())

	require.NoError(t, svc.SendReminder(context.Background()))
	assert.Equal(t, "Gestión diaria de clientes - "+timeutil.Today().Format(timeutil.DateLayout), m.subject)
}

func TestSendReminderNoRecipients(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	svc := services.NewEmailService(&fakeDueLister{}, &recordingMailer{}, nil, cfg)
	assert.Error(t, svc.SendReminder(context.Background()))
}

func TestSendReminderWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on a later attempt", func(t *testing.T) {
		t.Parallel()
		m := &recordingMailer{fail: 2}
		svc := services.NewEmailService(&fakeDueLister{}, m, nil, emailConfig())

		require.NoError(t, svc.SendReminderWithRetry(context.Background(), 3))
		assert.Equal(t, 3, m.calls)
	})

	t.Run("gives up after the attempt budget", func(t *testing.T) {
		t.Parallel()
		m := &recordingMailer{fail: 10}
		svc := services.NewEmailService(&fakeDueLister{}, m, nil, emailConfig())

		assert.Error(t, svc.SendReminderWithRetry(context.Background(), 3))
		assert.Equal(t, 3, m.calls)
	})
}
