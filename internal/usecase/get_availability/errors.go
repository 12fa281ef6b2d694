package get_availability

import "errors"

var (
	// ErrExpertNotFound возвращается, когда эксперт не найден
	ErrExpertNotFound = errors.New("get_availability: expert not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
