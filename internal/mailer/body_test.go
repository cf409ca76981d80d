package mailer_test

import (
	"testing"

	"andhara-backend/internal/mailer"
	"andhara-backend/internal/models"
	"andhara-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
)

func TestReminderBodyEmpty(t *testing.T) {
	t.Parallel()

	body := mailer.ReminderBody(nil)
	assert.Contains(t, body, "No hay clientes para contactar hoy")
	assert.NotContains(t, body, "<table")
}

func TestReminderBodyListsCustomers(t *testing.T) {
	t.Parallel()

	due := []*models.DueFollowUp{
		{
			CustomerName:     "Ana Martínez",
			Phone:            "3001234567",
			PurchaseDuration: 30,
			PurchaseDate:     timeutil.Today().AddDate(0, 0, -30),
		},
		{
			CustomerName:     "Luis Gómez",
			Phone:            "3109876543",
			PurchaseDuration: 15,
			PurchaseDate:     timeutil.Today().AddDate(0, 0, -15),
		},
	}

	body := mailer.ReminderBody(due)
	assert.Contains(t, body, "<table")
	assert.Contains(t, body, "Ana Martínez")
	assert.Contains(t, body, "3001234567")
	assert.Contains(t, body, "Luis Gómez")
	assert.Contains(t, body, "<td>30</td>")
}
