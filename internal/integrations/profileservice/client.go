package profileservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с ProfileService (профили консультантов)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProfileService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetConsultantProfile получает профиль консультанта по его ID
func (c *Client) GetConsultantProfile(ctx context.Context, consultantID int64) (*Profile, error) {
	url := fmt.Sprintf("%s/internal/consultants/%d/profile", c.baseURL, consultantID)

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
	case http.StatusNotFound:
		return nil, ErrProfileNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &profile, nil
}

// GetConsultantProfileWithGracefulDegradation получает профиль с graceful degradation.
// Профиль — презентационные данные: при недоступности ProfileService возвращаем
// nil без ошибки, представление собирается без полей профиля.
func (c *Client) GetConsultantProfileWithGracefulDegradation(ctx context.Context, consultantID int64) *Profile {
	profile, err := c.GetConsultantProfile(ctx, consultantID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			c.log.Info("No profile found for consultant_id=%d", consultantID)
			return nil
		}
		c.log.Error("ProfileService unavailable, rendering without profile for consultant_id=%d: %v", consultantID, err)
		return nil
	}
	return profile
}
