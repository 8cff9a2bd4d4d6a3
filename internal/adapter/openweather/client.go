package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/couchcryptid/air-quality-comparison/internal/domain"
	"github.com/couchcryptid/air-quality-comparison/internal/observability"
)

// DefaultBaseURL is the public OpenWeatherMap API host.
const DefaultBaseURL = "http://api.openweathermap.org"

// errNoSamples is returned when a 200 response carries an empty "list".
var errNoSamples = errors.New("response contains no samples")

// Client implements domain.Fetcher using the OpenWeatherMap Air Pollution API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an air pollution API client. An empty baseURL selects DefaultBaseURL.
func NewClient(token, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch returns the current concentrations at lat/lon. Coordinates are passed
// through unvalidated. A non-200 status yields a *domain.StatusError.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (domain.Readings, error) {
	params := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"appid": {c.token},
	}
	u := c.baseURL + "/data/2.5/air_pollution?" + params.Encode()

	start := time.Now()
	readings, outcome, err := c.doRequest(ctx, u, lat, lon)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	c.metrics.FetchRequests.WithLabelValues(outcome).Inc()

	if err == nil {
		c.logger.Debug("fetched air pollution", "lat", lat, "lon", lon, "duration", time.Since(start))
	}
	return readings, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string, lat, lon float64) (domain.Readings, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.Readings{}, "transport_error", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Readings{}, "transport_error", fmt.Errorf("air pollution request: %w", redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Readings{}, "status_error", &domain.StatusError{
			Lat:        lat,
			Lon:        lon,
			StatusCode: resp.StatusCode,
			Body:       bodySnippet(body),
		}
	}

	var owmResp response
	if err := json.NewDecoder(resp.Body).Decode(&owmResp); err != nil {
		return domain.Readings{}, "decode_error", fmt.Errorf("decode response: %w", err)
	}
	if len(owmResp.List) == 0 {
		return domain.Readings{}, "decode_error", errNoSamples
	}

	return owmResp.List[0].Components.readings(), "success", nil
}

// maxBodyRunes caps the error body kept on a StatusError.
const maxBodyRunes = 200

// bodySnippet flattens an error body onto one line and truncates it on a rune boundary.
func bodySnippet(body []byte) string {
	s := strings.Join(strings.Fields(strings.ToValidUTF8(string(body), "")), " ")
	if utf8.RuneCountInString(s) <= maxBodyRunes {
		return s
	}
	return string([]rune(s)[:maxBodyRunes]) + "..."
}

// redact strips the query string from URL errors so the API key never reaches logs.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if u, perr := url.Parse(uerr.URL); perr == nil {
			u.RawQuery = ""
			return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
		}
	}
	return err
}

// Air Pollution API response types.

type response struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	List []sample `json:"list"`
}

type sample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		AQI int `json:"aqi"` // 1 (good) to 5 (very poor)
	} `json:"main"`
	Components components `json:"components"`
}

type components struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

func (c components) readings() domain.Readings {
	return domain.Readings{c.PM25, c.PM10, c.CO, c.O3, c.NO2, c.SO2}
}
