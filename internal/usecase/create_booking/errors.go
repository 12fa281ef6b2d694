package create_booking

import "errors"

var (
	// ErrExpertNotFound возвращается, когда эксперт не найден
	ErrExpertNotFound = errors.New("create_booking: expert not found")

	// ErrExpertInactive возвращается, когда эксперт деактивирован
	// в справочнике и не принимает новые записи
	ErrExpertInactive = errors.New("create_booking: expert is not active")

	// ErrUserNotFound возвращается, когда клиент не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrInvalidSlot возвращается, когда время не попадает на сетку слотов,
	// выходит за рабочие часы или лежит в прошлом
	ErrInvalidSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotFull возвращается, когда вместимость слота исчерпана
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrDuplicateBooking возвращается при повторной записи клиента
	// к тому же эксперту на то же время
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking for this slot")

	// ErrConflict возвращается при транзиентном конфликте транзакций
	// Безопасно повторить запрос после короткой паузы
	ErrConflict = errors.New("create_booking: transient conflict, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
