package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BatoulDev/babibeauty-booking/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestScheduleConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ScheduleConfig
		wantErr bool
	}{
		{name: "default", cfg: DefaultSchedule()},
		{
			name: "open after close",
			cfg: ScheduleConfig{
				OpenTime: "19:00", CloseTime: "09:00",
				SlotDurationMinutes: 30, SlotCapacity: 3,
			},
			wantErr: true,
		},
		{
			name: "open equals close",
			cfg: ScheduleConfig{
				OpenTime: "09:00", CloseTime: "09:00",
				SlotDurationMinutes: 30, SlotCapacity: 3,
			},
			wantErr: true,
		},
		{
			name: "invalid open time",
			cfg: ScheduleConfig{
				OpenTime: "9am", CloseTime: "19:00",
				SlotDurationMinutes: 30, SlotCapacity: 3,
			},
			wantErr: true,
		},
		{
			name: "duration too small",
			cfg: ScheduleConfig{
				OpenTime: "09:00", CloseTime: "19:00",
				SlotDurationMinutes: 1, SlotCapacity: 3,
			},
			wantErr: true,
		},
		{
			name: "capacity zero",
			cfg: ScheduleConfig{
				OpenTime: "09:00", CloseTime: "19:00",
				SlotDurationMinutes: 30, SlotCapacity: 0,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchedule)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestScheduleConfig_Slots_DefaultGrid(t *testing.T) {
	day := date(2025, 11, 20)

	slots := DefaultSchedule().Slots(day)

	// 09:00-19:00 с шагом 30 минут - ровно 20 слотов
	require.Len(t, slots, 20)

	assert.Equal(t, time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC), slots[0].StartsAt)
	assert.Equal(t, time.Date(2025, 11, 20, 9, 30, 0, 0, time.UTC), slots[0].EndsAt)
	assert.Equal(t, time.Date(2025, 11, 20, 18, 30, 0, 0, time.UTC), slots[19].StartsAt)
	assert.Equal(t, time.Date(2025, 11, 20, 19, 0, 0, 0, time.UTC), slots[19].EndsAt)

	// Сетка строго упорядочена и непрерывна
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndsAt, slots[i].StartsAt)
	}
}

func TestScheduleConfig_Slots_OddWindowNoTruncatedSlot(t *testing.T) {
	cfg := ScheduleConfig{
		OpenTime:            types.TimeString("09:00"),
		CloseTime:           types.TimeString("10:15"),
		SlotDurationMinutes: 30,
		SlotCapacity:        3,
	}

	slots := cfg.Slots(date(2025, 11, 20))

	// 09:00-09:30 и 09:30-10:00, усечённого 10:00-10:15 нет
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2025, 11, 20, 9, 30, 0, 0, time.UTC), slots[1].StartsAt)
	assert.Equal(t, time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC), slots[1].EndsAt)
}

func TestScheduleConfig_AlignsToGrid(t *testing.T) {
	cfg := DefaultSchedule()
	day := date(2025, 11, 20)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{name: "first slot", t: day.Add(9 * time.Hour), want: true},
		{name: "half hour", t: day.Add(10*time.Hour + 30*time.Minute), want: true},
		{name: "last slot", t: day.Add(18*time.Hour + 30*time.Minute), want: true},
		{name: "off-grid minutes", t: day.Add(10*time.Hour + 15*time.Minute), want: false},
		{name: "before opening", t: day.Add(8*time.Hour + 30*time.Minute), want: false},
		{name: "at closing", t: day.Add(19 * time.Hour), want: false},
		{name: "last slot would cross closing", t: day.Add(18*time.Hour + 45*time.Minute), want: false},
		{name: "nonzero seconds", t: day.Add(9*time.Hour + 15*time.Second), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.AlignsToGrid(tt.t))
		})
	}
}

func TestScheduleConfig_SlotEnd(t *testing.T) {
	start := time.Date(2025, 11, 20, 10, 30, 0, 0, time.UTC)

	end := DefaultSchedule().SlotEnd(start)

	assert.Equal(t, time.Date(2025, 11, 20, 11, 0, 0, 0, time.UTC), end)
}
