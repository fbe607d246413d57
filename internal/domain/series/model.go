package series

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// MissingValue is the marker FRED uses for an observation without data.
const MissingValue = "."

// ErrNotFound is returned by a Provider when it has no series for an id.
var ErrNotFound = errors.New("series not found")

// Metadata describes a single series.
type Metadata struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Units              *string `json:"units"`
	Frequency          *string `json:"frequency"`
	SeasonalAdjustment *string `json:"seasonal_adjustment"`
}

// Placeholder is the metadata used when a series could not be described.
func Placeholder(id string) Metadata {
	return Metadata{ID: id, Title: id}
}

// Observation is one dated value; Value is nil when the provider has no data.
type Observation struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// Snapshot is the response of a single series fetch.
type Snapshot struct {
	SeriesID         string        `json:"series_id"`
	SeriesInfo       Metadata      `json:"series_info"`
	Observations     []Observation `json:"observations"`
	ObservationCount int           `json:"observation_count"`
}

// NewSnapshot keeps ObservationCount in step with Observations.
func NewSnapshot(id string, meta Metadata, observations []Observation) Snapshot {
	if observations == nil {
		observations = []Observation{}
	}
	return Snapshot{
		SeriesID:         id,
		SeriesInfo:       meta,
		Observations:     observations,
		ObservationCount: len(observations),
	}
}

// ParseValue converts a raw observation value. The missing marker, anything
// that is not a plain decimal number, and non-finite results yield nil.
func ParseValue(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == MissingValue || strings.ContainsAny(raw, "xX_") {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// SortOrder controls the ordering of observations returned by the provider.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FetchOptions bounds an observations request.
type FetchOptions struct {
	Limit int
	Order SortOrder
}

const (
	DefaultLimit = 100
	MaxLimit     = 100000
)

func (o FetchOptions) withDefaults() FetchOptions {
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Order == "" {
		o.Order = SortDesc
	}
	return o
}

func (o FetchOptions) validate() error {
	if o.Limit < 1 || o.Limit > MaxLimit {
		return errors.New("limit must be between 1 and 100000")
	}
	if o.Order != SortAsc && o.Order != SortDesc {
		return errors.New("sort order must be asc or desc")
	}
	return nil
}

// Config tunes the series service.
type Config struct {
	// BatchConcurrency caps in-flight metadata requests per batch; 0 means unbounded.
	BatchConcurrency int
}
