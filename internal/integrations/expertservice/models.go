package expertservice

// Expert модель бьюти-эксперта из справочника
type Expert struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	IsActive  bool     `json:"is_active"`
	BasePrice *float64 `json:"base_price"` // nil - цена не задана
}

// ErrorResponse модель ошибки от справочника экспертов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
