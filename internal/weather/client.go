package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mixelka/menubot/pkg/models"
)

// ErrLookup is returned for any failed weather lookup
var ErrLookup = errors.New("weather lookup failed")

// Client is an OpenWeatherMap current weather client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	validate   *validator.Validate
}

// Config for weather client
type Config struct {
	BaseURL string // e.g., https://api.openweathermap.org/data/2.5/weather
	APIKey  string
	Timeout time.Duration
}

// apiResponse is the subset of the OpenWeatherMap payload the bot uses.
// Pointers distinguish a missing field from a zero reading.
type apiResponse struct {
	Main *struct {
		Temp      *float64 `json:"temp" validate:"required"`
		FeelsLike *float64 `json:"feels_like" validate:"required"`
		Humidity  *int     `json:"humidity" validate:"required"`
	} `json:"main" validate:"required"`
	Weather []struct {
		Description string `json:"description" validate:"required"`
	} `json:"weather" validate:"required,min=1,dive"`
}

// NewClient creates a new weather client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		validate: validator.New(),
	}
}

// GetWeather returns current weather for a city
func (c *Client) GetWeather(ctx context.Context, city string) (*models.WeatherReport, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	params.Set("lang", "ru")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrLookup, redactURLError(err))
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %v", ErrLookup, redactURLError(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrLookup, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: API error: %s (status %d)", ErrLookup, string(respBody), resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrLookup, err)
	}

	if err := c.validate.Struct(apiResp); err != nil {
		return nil, fmt.Errorf("%w: incomplete response: %v", ErrLookup, err)
	}

	return &models.WeatherReport{
		City:        city,
		TempC:       *apiResp.Main.Temp,
		FeelsLikeC:  *apiResp.Main.FeelsLike,
		HumidityPct: *apiResp.Main.Humidity,
		Description: apiResp.Weather[0].Description,
	}, nil
}

// redactURLError drops the request URL, which carries the API key, from transport errors
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
