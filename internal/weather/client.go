// Package weather fetches current conditions for the watchface from the
// OpenWeatherMap API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// BaseURL is the OpenWeatherMap API root.
const BaseURL = "https://api.openweathermap.org/data/2.5"

// RefreshInterval is how often the watchface refetches the weather.
const RefreshInterval = 30 * time.Minute

// Observation is a current-weather reading. Temperature is kept in Celsius;
// unit conversion happens at display time so a settings change doesn't need
// a refetch.
type Observation struct {
	TempC      int
	Conditions string
	FetchedAt  time.Time
}

// Client is an OpenWeatherMap API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a weather client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    BaseURL,
		apiKey:     apiKey,
	}
}

// currentResponse mirrors the fields we use from the current-weather payload.
type currentResponse struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Current fetches the current conditions at the given coordinates.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Observation, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)

	resp, err := c.get(ctx, "/weather", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var cur currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&cur); err != nil {
		return nil, fmt.Errorf("decoding weather: %w", err)
	}

	obs := &Observation{
		TempC:     int(math.Round(cur.Main.Temp)),
		FetchedAt: time.Now(),
	}
	if len(cur.Weather) > 0 {
		obs.Conditions = cur.Weather[0].Main
	}
	return obs, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("weather API error %d: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
