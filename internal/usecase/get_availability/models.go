package get_availability

import "time"

// Request модель запроса занятости слотов
type Request struct {
	ExpertID int64     // ID эксперта
	Date     time.Time // дата без времени
}

// Response занятость всех слотов сетки на дату
type Response struct {
	ExpertID int64
	Date     time.Time
	Slots    []Slot
}

// Slot занятость одного слота
type Slot struct {
	StartsAt    time.Time // начало слота
	EndsAt      time.Time // конец слота
	BookedCount int       // сколько бронирований занимает слот
	Capacity    int       // вместимость слота
	Available   bool      // BookedCount < Capacity
}
