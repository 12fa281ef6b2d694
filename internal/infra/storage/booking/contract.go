package booking

import (
	"github.com/BatoulDev/babibeauty-booking/pkg/dbmetrics"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics:
// репозиторий одинаково работает поверх *sql.DB и обёртки с метриками
type DBExecutor = dbmetrics.DBExecutor
