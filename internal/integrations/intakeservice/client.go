package intakeservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// CompleteProgress прогресс, при котором анкета считается заполненной
const CompleteProgress = 100

// Client клиент для работы с IntakeService (анкеты заявителей)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента IntakeService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProgress получает прогресс заполнения анкеты заявителя
func (c *Client) GetProgress(ctx context.Context, requesterID string) (*ApplicationProgress, error) {
	endpoint := fmt.Sprintf("%s/internal/applications/%s/progress", c.baseURL, url.PathEscape(requesterID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrApplicationNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var progress ApplicationProgress
	if err := json.NewDecoder(resp.Body).Decode(&progress); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &progress, nil
}

// IsApplicationComplete сообщает, заполнена ли анкета на 100%.
// Заявитель без анкеты считается не заполнившим её
func (c *Client) IsApplicationComplete(ctx context.Context, requesterID string) (bool, error) {
	progress, err := c.GetProgress(ctx, requesterID)
	if err != nil {
		if errors.Is(err, ErrApplicationNotFound) {
			c.log.Info("No application found for requester=%s", requesterID)
			return false, nil
		}
		c.log.Error("IntakeService unavailable for requester=%s: %v", requesterID, err)
		return false, err
	}

	c.log.Info("Application progress for requester=%s: %d%%", requesterID, progress.Progress)
	return progress.IsComplete(), nil
}

// StaticClient считает анкету любого заявителя заполненной. Используется для локального запуска
type StaticClient struct{}

// NewStaticClient создает клиент статического режима
func NewStaticClient() *StaticClient {
	return &StaticClient{}
}

// IsApplicationComplete всегда возвращает true
func (StaticClient) IsApplicationComplete(ctx context.Context, requesterID string) (bool, error) {
	return true, nil
}
