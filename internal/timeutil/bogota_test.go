package timeutil_test

import (
	"testing"
	"time"

	"andhara-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
)

func TestTodayIsMidnightBogota(t *testing.T) {
	t.Parallel()

	today := timeutil.Today()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, 0, today.Second())
	assert.Equal(t, timeutil.Bogota, today.Location())
}

func TestDaysUntil(t *testing.T) {
	t.Parallel()

	today := timeutil.Today()
	assert.Equal(t, 0, timeutil.DaysUntil(today))
	assert.Equal(t, 7, timeutil.DaysUntil(today.AddDate(0, 0, 7)))
	assert.Equal(t, -3, timeutil.DaysUntil(today.AddDate(0, 0, -3)))
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	tomorrow := timeutil.Today().AddDate(0, 0, 1)
	lateTomorrow := tomorrow.Add(23 * time.Hour)
	assert.Equal(t, 1, timeutil.DaysUntil(lateTomorrow))
}
