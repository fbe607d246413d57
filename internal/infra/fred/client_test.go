package fred

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/fred-insights/internal/domain/series"
	apperrors "github.com/yanqian/fred-insights/pkg/errors"
	"github.com/yanqian/fred-insights/pkg/metrics"
)

func TestMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/series", r.URL.Path)
		require.Equal(t, "GDP", r.URL.Query().Get("series_id"))
		require.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		require.Equal(t, "json", r.URL.Query().Get("file_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"seriess":[{"id":"GDP","title":"Gross Domestic Product","units":"Billions of Dollars","frequency":"Quarterly","seasonal_adjustment":"Seasonally Adjusted Annual Rate"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	meta, err := client.Metadata(context.Background(), "GDP")
	require.NoError(t, err)
	require.Equal(t, "GDP", meta.ID)
	require.Equal(t, "Gross Domestic Product", meta.Title)
	require.Equal(t, "Billions of Dollars", *meta.Units)
	require.Equal(t, "Quarterly", *meta.Frequency)
	require.Equal(t, "Seasonally Adjusted Annual Rate", *meta.SeasonalAdjustment)
}

func TestMetadataOptionalFieldsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"seriess":[{"title":"Untitled"}]}`))
	}))
	defer srv.Close()

	meta, err := newTestClient(t, srv.URL).Metadata(context.Background(), "XYZ")
	require.NoError(t, err)
	require.Equal(t, "XYZ", meta.ID)
	require.Nil(t, meta.Units)
	require.Nil(t, meta.Frequency)
	require.Nil(t, meta.SeasonalAdjustment)
}

func TestMetadataNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"seriess":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Metadata(context.Background(), "NOPE")
	require.ErrorIs(t, err, series.ErrNotFound)
}

func TestMetadataRecordsOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"seriess":[]}`))
	}))
	defer srv.Close()

	collectors := metrics.NewCollectors()
	client, err := NewClient("test-key", srv.URL, time.Second, collectors)
	require.NoError(t, err)
	_, err = client.Metadata(context.Background(), "NOPE")
	require.Error(t, err)

	rec := httptest.NewRecorder()
	collectors.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, rec.Body.String(), `fred_insights_upstream_requests_total{endpoint="series",outcome="not_found",provider="fred"} 1`)
	require.NotContains(t, rec.Body.String(), `outcome="ok"`)
}

func TestMetadataUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_code":400,"error_message":"Bad Request.  The value for variable api_key is not registered."}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Metadata(context.Background(), "GDP")
	require.Error(t, err)
	require.False(t, errors.Is(err, series.ErrNotFound))
	require.Contains(t, err.Error(), "status=400")
	require.Contains(t, err.Error(), "not registered")
}

func TestObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/series/observations", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		require.Equal(t, "asc", r.URL.Query().Get("sort_order"))
		_, _ = w.Write([]byte(`{"observations":[
			{"date":"2024-01-01","value":"25000.0"},
			{"date":"2023-12-01","value":"."},
			{"date":"2023-11-01","value":"bogus"},
			{"date":"2023-10-01","value":3.5}
		]}`))
	}))
	defer srv.Close()

	obs, err := newTestClient(t, srv.URL).Observations(context.Background(), "GDP", 5, series.SortAsc)
	require.NoError(t, err)
	require.Len(t, obs, 4)
	require.Equal(t, "2024-01-01", obs[0].Date)
	require.Equal(t, 25000.0, *obs[0].Value)
	require.Nil(t, obs[1].Value)
	require.Nil(t, obs[2].Value)
	require.Equal(t, 3.5, *obs[3].Value)
}

func TestObservationsMissingArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Observations(context.Background(), "GDP", 10, series.SortDesc)
	require.ErrorContains(t, err, "observations missing")
}

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"seriess":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient("secret-key", srv.URL, 20*time.Millisecond, nil)
	require.NoError(t, err)

	_, err = client.Metadata(context.Background(), "GDP")
	require.Error(t, err)
	require.NotContains(t, err.Error(), "secret-key")
}

func TestServiceReportsNotFoundWhenObservationsFailFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/series":
			time.Sleep(50 * time.Millisecond)
			_, _ = w.Write([]byte(`{"seriess":[]}`))
		case "/series/observations":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error_code":400,"error_message":"Bad Request.  The series does not exist."}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc := series.NewService(series.Config{}, newTestClient(t, srv.URL), slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := svc.FetchSeries(context.Background(), "NOSUCH", series.FetchOptions{})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound), err.Error())
}

func TestObservationsNonFiniteValuesBecomeNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"observations":[{"date":"2024-01-01","value":"NaN"},{"date":"2023-12-01","value":"Inf"},{"date":"2023-11-01","value":"1.25"}]}`))
	}))
	defer srv.Close()

	obs, err := newTestClient(t, srv.URL).Observations(context.Background(), "GDP", 3, series.SortDesc)
	require.NoError(t, err)
	require.Nil(t, obs[0].Value)
	require.Nil(t, obs[1].Value)
	require.Equal(t, 1.25, *obs[2].Value)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("  ", "", 0, nil)
	require.ErrorContains(t, err, "FRED_API_KEY")
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient("test-key", baseURL, time.Second, metrics.NewCollectors())
	require.NoError(t, err)
	return client
}
