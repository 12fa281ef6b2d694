package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь меняет чужое
	// бронирование без прав администратора
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrExpertNotFound возвращается, когда новый эксперт не найден
	ErrExpertNotFound = errors.New("update_booking: expert not found")

	// ErrExpertInactive возвращается, когда новый эксперт деактивирован
	// в справочнике и не принимает новые записи
	ErrExpertInactive = errors.New("update_booking: expert is not active")

	// ErrInvalidSlot возвращается, когда новое время не попадает на сетку
	// слотов, выходит за рабочие часы или лежит в прошлом
	ErrInvalidSlot = errors.New("update_booking: invalid time slot")

	// ErrSlotFull возвращается, когда вместимость целевого слота исчерпана
	ErrSlotFull = errors.New("update_booking: slot is full")

	// ErrDuplicateBooking возвращается, когда у клиента уже есть активное
	// бронирование на целевой слот
	ErrDuplicateBooking = errors.New("update_booking: duplicate booking for this slot")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	// или попытке перенести завершённое/отменённое бронирование
	ErrInvalidTransition = errors.New("update_booking: invalid status transition")

	// ErrConflict возвращается при транзиентном конфликте транзакций
	ErrConflict = errors.New("update_booking: transient conflict, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
