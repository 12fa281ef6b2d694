package domain

// Default schedule values, used when the [schedule] config section is absent
const (
	DefaultOpenTime            = "09:00"
	DefaultCloseTime           = "19:00"
	DefaultSlotDurationMinutes = 30
	DefaultSlotCapacity        = 3
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 часов
	MinSlotCapacity        = 1
	MaxSlotCapacity        = 100
)

// Time format constants
const (
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04:05" // YYYY-MM-DD HH:MM:SS
)

// ActiveStatuses статусы, занимающие место в слоте
// Используются писателем при проверке вместимости
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses полный список допустимых статусов
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}
