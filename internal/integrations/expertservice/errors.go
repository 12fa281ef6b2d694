package expertservice

import "errors"

var (
	// ErrExpertNotFound возвращается, когда эксперт не найден
	ErrExpertNotFound = errors.New("beauty expert not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("expertservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("expertservice client: invalid response")

	// ErrServiceDegraded возвращается при недоступности справочника экспертов
	// Писатель в этом случае отказывает запросу, а не виснет на ретраях
	ErrServiceDegraded = errors.New("expertservice unavailable: graceful degradation applied")
)
