package fred

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/fred-insights/internal/domain/series"
	"github.com/yanqian/fred-insights/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.stlouisfed.org/fred"
	defaultTimeout = 30 * time.Second
	providerName   = "fred"
)

// Client fetches series data from the FRED API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Collectors
}

// NewClient builds an API client. An empty key is rejected so a misconfigured
// deployment fails at startup instead of on the first request.
func NewClient(apiKey, baseURL string, timeout time.Duration, collectors *metrics.Collectors) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("FRED_API_KEY environment variable is required")
	}
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: collectors,
	}, nil
}

// Metadata retrieves the description of one series.
func (c *Client) Metadata(ctx context.Context, id string) (series.Metadata, error) {
	var raw seriesResponse
	elapsed, err := c.get(ctx, "series", url.Values{"series_id": {id}}, &raw)
	if err != nil {
		return series.Metadata{}, err
	}
	if len(raw.Seriess) == 0 {
		c.metrics.ObserveUpstream(providerName, "series", metrics.OutcomeNotFound, elapsed)
		return series.Metadata{}, fmt.Errorf("series %q: %w", id, series.ErrNotFound)
	}
	c.metrics.ObserveUpstream(providerName, "series", metrics.OutcomeOK, elapsed)
	return raw.Seriess[0].toMetadata(id), nil
}

// Observations retrieves up to limit observations for one series.
func (c *Client) Observations(ctx context.Context, id string, limit int, order series.SortOrder) ([]series.Observation, error) {
	params := url.Values{
		"series_id":  {id},
		"limit":      {strconv.Itoa(limit)},
		"sort_order": {string(order)},
	}
	var raw observationsResponse
	elapsed, err := c.get(ctx, "series/observations", params, &raw)
	if err != nil {
		return nil, err
	}
	if raw.Observations == nil {
		c.metrics.ObserveUpstream(providerName, "series/observations", metrics.OutcomeError, elapsed)
		return nil, errors.New("invalid response format from fred: observations missing")
	}
	c.metrics.ObserveUpstream(providerName, "series/observations", metrics.OutcomeOK, elapsed)
	return normalizeObservations(raw.Observations), nil
}

// get decodes a successful response into out and reports how long it took.
// Failed requests are recorded here; callers record the outcome of the rest.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) (time.Duration, error) {
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build fred %s request: %w", endpoint, err)
	}

	start := time.Now()
	fail := func(err error) (time.Duration, error) {
		elapsed := time.Since(start)
		c.metrics.ObserveUpstream(providerName, endpoint, metrics.OutcomeError, elapsed)
		return elapsed, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("fred %s request failed: %w", endpoint, redact(err, c.apiKey)))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fail(fmt.Errorf("fred %s request error: status=%d body=%s", endpoint, resp.StatusCode, upstreamMessage(payload)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Errorf("read fred %s response: %w", endpoint, err))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fail(fmt.Errorf("decode fred %s response: %w", endpoint, err))
	}
	return time.Since(start), nil
}

type seriesResponse struct {
	Seriess []seriesRecord `json:"seriess"`
}

type seriesRecord struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Units              string `json:"units"`
	Frequency          string `json:"frequency"`
	SeasonalAdjustment string `json:"seasonal_adjustment"`
}

func (r seriesRecord) toMetadata(requested string) series.Metadata {
	id := r.ID
	if id == "" {
		id = requested
	}
	return series.Metadata{
		ID:                 id,
		Title:              r.Title,
		Units:              optional(r.Units),
		Frequency:          optional(r.Frequency),
		SeasonalAdjustment: optional(r.SeasonalAdjustment),
	}
}

type observationsResponse struct {
	Observations []observationRecord `json:"observations"`
}

type observationRecord struct {
	Date  string          `json:"date"`
	Value json.RawMessage `json:"value"`
}

func normalizeObservations(records []observationRecord) []series.Observation {
	out := make([]series.Observation, 0, len(records))
	for _, rec := range records {
		out = append(out, series.Observation{
			Date:  rec.Date,
			Value: series.ParseValue(rawValue(rec.Value)),
		})
	}
	return out
}

// rawValue accepts both the documented string form and a bare JSON number.
func rawValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// upstreamMessage prefers FRED's error_message field over the raw body.
func upstreamMessage(payload []byte) string {
	var fredErr struct {
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal(payload, &fredErr); err == nil && fredErr.ErrorMessage != "" {
		return fredErr.ErrorMessage
	}
	return string(payload)
}

// redact strips the API key from transport errors, which embed the request URL.
func redact(err error, apiKey string) error {
	msg := err.Error()
	if apiKey == "" || !strings.Contains(msg, apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, apiKey, "***"))
}
