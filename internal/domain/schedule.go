package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/BatoulDev/babibeauty-booking/pkg/types"
)

var (
	// ErrInvalidSchedule возвращается при некорректной конфигурации расписания
	ErrInvalidSchedule = errors.New("domain: invalid schedule configuration")
)

// ScheduleConfig рабочие часы, шаг сетки и вместимость слота.
// Инжектируется из конфигурации сервиса, а не зашивается в код,
// чтобы тесты могли варьировать окно и вместимость
type ScheduleConfig struct {
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	SlotCapacity        int
}

// DefaultSchedule возвращает расписание по умолчанию:
// 09:00-19:00, слоты по 30 минут, до 3 бронирований на слот
func DefaultSchedule() ScheduleConfig {
	return ScheduleConfig{
		OpenTime:            types.TimeString(DefaultOpenTime),
		CloseTime:           types.TimeString(DefaultCloseTime),
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		SlotCapacity:        DefaultSlotCapacity,
	}
}

// Validate проверяет согласованность конфигурации
func (c ScheduleConfig) Validate() error {
	if err := c.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: openTime: %v", ErrInvalidSchedule, err)
	}
	if err := c.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: closeTime: %v", ErrInvalidSchedule, err)
	}
	if !c.OpenTime.IsBefore(c.CloseTime) {
		return fmt.Errorf("%w: openTime %s must be before closeTime %s", ErrInvalidSchedule, c.OpenTime, c.CloseTime)
	}
	if c.SlotDurationMinutes < MinSlotDurationMinutes || c.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes %d out of range [%d, %d]",
			ErrInvalidSchedule, c.SlotDurationMinutes, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if c.SlotCapacity < MinSlotCapacity || c.SlotCapacity > MaxSlotCapacity {
		return fmt.Errorf("%w: slotCapacity %d out of range [%d, %d]",
			ErrInvalidSchedule, c.SlotCapacity, MinSlotCapacity, MaxSlotCapacity)
	}
	return nil
}

// Slot один слот сетки: фиксированное окно внутри рабочих часов
type Slot struct {
	StartsAt time.Time
	EndsAt   time.Time
}

// Slots генерирует упорядоченную сетку слотов на календарную дату.
// Чистая функция от (date, config): шагаем от открытия с шагом
// SlotDurationMinutes и останавливаемся до слота, конец которого
// вышел бы за время закрытия - усечённые слоты не выдаются.
// Для окна 09:00-19:00 с шагом 30 минут это ровно 20 слотов,
// первый 09:00, последний 18:30
func (c ScheduleConfig) Slots(date time.Time) []Slot {
	slots := make([]Slot, 0)

	current := c.OpenTime
	for current.IsBefore(c.CloseTime) {
		end, err := current.AddMinutes(c.SlotDurationMinutes)
		if err != nil || end.IsAfter(c.CloseTime) {
			break
		}

		slots = append(slots, Slot{
			StartsAt: current.At(date),
			EndsAt:   end.At(date),
		})

		current = end
	}

	return slots
}

// AlignsToGrid проверяет, что t попадает на начало слота:
// смещение от открытия кратно длительности слота, и слот целиком
// помещается в рабочие часы. Для конфигурации по умолчанию это
// эквивалентно минутам {0, 30} внутри [09:00, 18:30]
func (c ScheduleConfig) AlignsToGrid(t time.Time) bool {
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}

	start := types.NewTimeString(t)
	offset := start.Minutes() - c.OpenTime.Minutes()
	if offset < 0 || offset%c.SlotDurationMinutes != 0 {
		return false
	}

	end, err := start.AddMinutes(c.SlotDurationMinutes)
	if err != nil {
		return false
	}
	return !end.IsAfter(c.CloseTime)
}

// SlotEnd возвращает конец слота, начинающегося в t
func (c ScheduleConfig) SlotEnd(t time.Time) time.Time {
	return t.Add(time.Duration(c.SlotDurationMinutes) * time.Minute)
}
