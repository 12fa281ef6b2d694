package expertservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент справочника бьюти-экспертов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetExpert получает эксперта по ID
// Справочник отдаёт только публичные поля; бронирования профиль эксперта
// дальше по стеку не раскрывают
func (c *Client) GetExpert(ctx context.Context, expertID int64) (*Expert, error) {
	url := fmt.Sprintf("%s/internal/beauty-experts/%d", c.baseURL, expertID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid expert ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrExpertNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var expert Expert
	if err := json.NewDecoder(resp.Body).Decode(&expert); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &expert, nil
}

// GetExpertWithGracefulDegradation получает эксперта с graceful degradation
// Бизнес-ошибка "не найден" пробрасывается как есть; транспортные ошибки
// оборачиваются в ErrServiceDegraded
func (c *Client) GetExpertWithGracefulDegradation(ctx context.Context, expertID int64) (*Expert, error) {
	expert, err := c.GetExpert(ctx, expertID)
	if err != nil {
		if errors.Is(err, ErrExpertNotFound) {
			return nil, err
		}

		c.log.Error("ExpertService unavailable, applying graceful degradation for expert_id=%d: %v", expertID, err)
		return nil, fmt.Errorf("%w: expert_id=%d, error=%v", ErrServiceDegraded, expertID, err)
	}

	return expert, nil
}
