package get_availability

import (
	"context"
	"time"

	"github.com/BatoulDev/babibeauty-booking/internal/integrations/expertservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CountBookedBySlot возвращает занятость слотов эксперта на дату одним
	// агрегированным запросом; ключ - starts_at в формате domain.DateTimeFormat
	CountBookedBySlot(ctx context.Context, expertID int64, date time.Time) (map[string]int, error)
}

// ExpertServiceClient интерфейс клиента справочника экспертов
// Читающий путь использует вариант с graceful degradation: транспортные
// сбои справочника не должны выглядеть как "эксперт не найден"
type ExpertServiceClient interface {
	GetExpertWithGracefulDegradation(ctx context.Context, expertID int64) (*expertservice.Expert, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
