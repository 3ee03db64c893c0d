package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"staffclock/internal/model/dto"
)

// Envelope mirrors the server's wire format.
type Envelope struct {
	Status   string              `json:"status"`
	Code     string              `json:"code,omitempty"`
	Message  string              `json:"message,omitempty"`
	History  []dto.DayRecordView `json:"history,omitempty"`
	Duration *float64            `json:"duration,omitempty"`
	Record   json.RawMessage     `json:"record,omitempty"`
}

// APIClient wraps the time-clock HTTP API. No retry and no cancellation; a
// failed request is reported uniformly and the caller decides whether to
// retry by hand.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CheckIn posts a check-in event for the given date/time strings.
func (c *APIClient) CheckIn(dateStr, timeStr, deviceInfo string) (*dto.CheckInResult, string, error) {
	env, err := c.post("/v1/timeclock/checkin", dto.TimeClockRequest{
		Action:     "checkin",
		DateStr:    dateStr,
		TimeStr:    timeStr,
		DeviceInfo: deviceInfo,
	})
	if err != nil {
		return nil, "", err
	}

	var result dto.CheckInResult
	if err := json.Unmarshal(env.Record, &result); err != nil {
		return nil, "", fmt.Errorf("error decoding check-in result: %w", err)
	}
	return &result, env.Message, nil
}

// CheckOut posts a checkout event.
func (c *APIClient) CheckOut(dateStr, timeStr string) (*dto.CheckOutResult, error) {
	env, err := c.post("/v1/timeclock/checkout", dto.TimeClockRequest{
		Action:  "checkout",
		DateStr: dateStr,
		TimeStr: timeStr,
	})
	if err != nil {
		return nil, err
	}

	var result dto.CheckOutResult
	if err := json.Unmarshal(env.Record, &result); err != nil {
		return nil, fmt.Errorf("error decoding checkout result: %w", err)
	}
	return &result, nil
}

// History fetches day records. With month and year both set the listing is
// that month ascending; otherwise the most recent rows, newest first.
func (c *APIClient) History(month, year, limit int) ([]dto.DayRecordView, error) {
	url := fmt.Sprintf("%s/v1/timeclock/history?month=%d&year=%d&limit=%d", c.baseURL, month, year, limit)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.History, nil
}

// Today fetches the current date's record; (nil, nil) when none exists yet.
func (c *APIClient) Today() (*dto.DayRecordView, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/timeclock/today", nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	env, err := decodeEnvelope(res)
	if err != nil {
		return nil, err
	}

	var view dto.DayRecordView
	if err := json.Unmarshal(env.Record, &view); err != nil {
		return nil, fmt.Errorf("error decoding today record: %w", err)
	}
	return &view, nil
}

func (c *APIClient) post(path string, body dto.TimeClockRequest) (*Envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error encoding request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *APIClient) do(req *http.Request) (*Envelope, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer res.Body.Close()

	return decodeEnvelope(res)
}

func decodeEnvelope(res *http.Response) (*Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	if env.Status != "success" {
		if env.Message != "" {
			return nil, fmt.Errorf("%s", env.Message)
		}
		return nil, fmt.Errorf("server returned status %d", res.StatusCode)
	}
	return &env, nil
}

// ParseDuration parses the numeric-looking duration string a history row
// carries, tolerating the empty/non-numeric fallback.
func ParseDuration(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
