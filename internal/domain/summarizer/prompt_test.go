package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptSeriesShape(t *testing.T) {
	payload := decodePayload(t, `{
		"series_id": "GDP",
		"series_info": {"id": "GDP", "title": "Gross Domestic Product", "units": "Billions of Dollars", "frequency": null},
		"observations": [
			{"date": "2024-01-01", "value": 25000.5},
			{"date": "2023-12-01", "value": null}
		],
		"observation_count": 2
	}`)

	prompt := BuildPrompt(payload)
	require.Contains(t, prompt, "- Title: Gross Domestic Product\n")
	require.Contains(t, prompt, "- Series ID: GDP\n")
	require.Contains(t, prompt, "- Units: Billions of Dollars\n")
	require.Contains(t, prompt, "- Frequency: N/A\n")
	require.Contains(t, prompt, "- Seasonal Adjustment: N/A\n")
	require.Contains(t, prompt, "Recent Observations (showing 2 most recent):")
	require.Contains(t, prompt, "- 2024-01-01: 25000.5\n")
	require.Contains(t, prompt, "- 2023-12-01: No data available\n")
	require.Contains(t, prompt, "2-3 paragraphs maximum")
	require.Contains(t, prompt, "what this economic indicator represents")
}

func TestBuildPromptCapsObservationsAtTen(t *testing.T) {
	observations := make([]any, 0, 19)
	for i := 0; i < 19; i++ {
		observations = append(observations, map[string]any{
			"date":  fmt.Sprintf("2023-%02d-01", 19-i),
			"value": float64(i),
		})
	}
	payload := map[string]any{
		"series_info":  map[string]any{"id": "UNRATE", "title": "Unemployment Rate"},
		"observations": observations,
	}

	prompt := BuildPrompt(payload)
	require.Contains(t, prompt, "showing 10 most recent")
	require.Equal(t, 10, countObservationLines(prompt))
	// Straight prefix of the list as given, no re-sorting.
	require.Contains(t, prompt, "- 2023-19-01: 0.0\n")
	require.Contains(t, prompt, "- 2023-10-01: 9.0\n")
	require.NotContains(t, prompt, "- 2023-09-01:")
}

func TestBuildPromptGeneric(t *testing.T) {
	payload := map[string]any{"headline": "Rates unchanged", "count": 3.0}

	prompt := BuildPrompt(payload)
	require.True(t, strings.HasPrefix(prompt, "Please provide a clear and concise summary of the following data:"))
	require.Contains(t, prompt, `"headline": "Rates unchanged"`)
	require.Contains(t, prompt, "2-3 paragraphs")
	require.NotContains(t, prompt, "Series Information")
}

func TestBuildPromptRequiresBothSeriesKeys(t *testing.T) {
	payload := map[string]any{"series_info": map[string]any{"title": "Only info"}}
	require.NotContains(t, BuildPrompt(payload), "Series Information")

	payload = map[string]any{"series_info": "GDP", "observations": []any{}}
	require.NotContains(t, BuildPrompt(payload), "Series Information")
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "string", in: "Monthly", want: "Monthly"},
		{name: "integral float", in: 4.0, want: "4.0"},
		{name: "observation level", in: 25000.0, want: "25000.0"},
		{name: "negative integral", in: -2.0, want: "-2.0"},
		{name: "zero", in: 0.0, want: "0.0"},
		{name: "fraction", in: 3.25, want: "3.25"},
		{name: "tiny", in: 0.00001, want: "1e-05"},
		{name: "huge", in: 1e16, want: "1e+16"},
		{name: "below exponent threshold", in: 1e15, want: "1000000000000000.0"},
		{name: "bool", in: true, want: "true"},
		{name: "list", in: []any{"a"}, want: `["a"]`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, render(tt.in))
		})
	}
}

func countObservationLines(prompt string) int {
	count := 0
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "- 20") {
			count++
		}
	}
	return count
}

func decodePayload(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}
