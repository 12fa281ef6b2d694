package create_booking

import (
	"context"
	"time"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	"github.com/BatoulDev/babibeauty-booking/internal/integrations/expertservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountActiveAtSlot(ctx context.Context, expertID int64, startsAt time.Time, excludeID *int64) (int, error)
	CountActiveByCustomerAtSlot(ctx context.Context, customerID, expertID int64, startsAt time.Time, excludeID *int64) (int, error)
}

// ExpertServiceClient интерфейс клиента справочника экспертов
type ExpertServiceClient interface {
	GetExpert(ctx context.Context, expertID int64) (*expertservice.Expert, error)
}

// UserServiceClient интерфейс клиента сервиса пользователей
type UserServiceClient interface {
	Exists(ctx context.Context, userID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
