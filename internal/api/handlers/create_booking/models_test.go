package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime_ServerLocalZone(t *testing.T) {
	origLocal := time.Local
	time.Local = time.FixedZone("UTC+3", 3*60*60)
	defer func() { time.Local = origLocal }()

	parsed, err := parseDateTime("2025-11-20 12:00:00")
	require.NoError(t, err)

	// Стеночные 12:00 в зоне сервера, а не в UTC
	assert.True(t, parsed.Equal(time.Date(2025, 11, 20, 12, 0, 0, 0, time.Local)))

	// В 14:00 локальных часов слот на 12:00 уже прошёл: без локального
	// разбора UTC-значение 12:00 было бы "будущим" на смещение зоны
	now := time.Date(2025, 11, 20, 14, 0, 0, 0, time.Local)
	assert.True(t, parsed.Before(now))
}

func TestParseDateTime_MinutePrecision(t *testing.T) {
	parsed, err := parseDateTime("2025-11-20 10:30")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2025, 11, 20, 10, 30, 0, 0, time.Local)))

	_, err = parseDateTime("20.11.2025 10:30")
	assert.Error(t, err)
}
