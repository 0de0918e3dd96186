package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDayUTC(t *testing.T) {
	require.NoError(t, Init("America/Bogota"))
	t.Cleanup(func() { _ = Init("UTC") })

	// 03:00 UTC on the 2nd is still the 1st in Bogota (UTC-5)
	at := time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC)

	got := StartOfDayUTC(at)

	assert.Equal(t, time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC), got)
}

func TestInit_RejectsUnknownZone(t *testing.T) {
	assert.Error(t, Init("Mars/Olympus"))
}
