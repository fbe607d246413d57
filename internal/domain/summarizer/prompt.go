package summarizer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxPromptObservations caps how many observations are rendered; the first
// entries of the list are used as given.
const maxPromptObservations = 10

const notAvailable = "N/A"

const seriesInstructions = `
Please provide:
1. A brief overview of what this economic indicator represents
2. Key trends or patterns visible in the recent data
3. Any notable observations or insights
4. Keep the summary concise (2-3 paragraphs maximum)
`

// BuildPrompt renders the prompt sent to the generator. Payloads carrying
// series_info and observations get the structured series prompt; anything
// else is embedded as JSON.
func BuildPrompt(payload map[string]any) string {
	info, observations, ok := seriesShape(payload)
	if !ok {
		return genericPrompt(payload)
	}
	return seriesPrompt(info, observations)
}

func seriesShape(payload map[string]any) (map[string]any, []any, bool) {
	info, ok := payload["series_info"].(map[string]any)
	if !ok {
		return nil, nil, false
	}
	observations, ok := payload["observations"].([]any)
	if !ok {
		return nil, nil, false
	}
	return info, observations, true
}

func seriesPrompt(info map[string]any, observations []any) string {
	shown := min(maxPromptObservations, len(observations))

	var b strings.Builder
	b.WriteString("Please provide a clear and concise summary of the following economic data:\n\n")
	b.WriteString("Series Information:\n")
	fmt.Fprintf(&b, "- Title: %s\n", field(info, "title"))
	fmt.Fprintf(&b, "- Series ID: %s\n", field(info, "id"))
	fmt.Fprintf(&b, "- Units: %s\n", field(info, "units"))
	fmt.Fprintf(&b, "- Frequency: %s\n", field(info, "frequency"))
	fmt.Fprintf(&b, "- Seasonal Adjustment: %s\n", field(info, "seasonal_adjustment"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Recent Observations (showing %d most recent):\n", shown)

	for _, raw := range observations[:shown] {
		obs, _ := raw.(map[string]any)
		date := field(obs, "date")
		value, present := obs["value"]
		if !present || value == nil {
			fmt.Fprintf(&b, "- %s: No data available\n", date)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", date, render(value))
	}

	b.WriteString(seriesInstructions)
	return b.String()
}

func genericPrompt(payload map[string]any) string {
	rendered, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		rendered = []byte(fmt.Sprintf("%v", payload))
	}
	return "Please provide a clear and concise summary of the following data:\n\n" +
		string(rendered) +
		"\n\nProvide key insights and trends in 2-3 paragraphs.\n"
}

func field(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return notAvailable
	}
	return render(v)
}

func render(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return formatFloat(val)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		if data, err := json.Marshal(val); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", val)
	}
}

// formatFloat keeps a trailing ".0" on integral values and switches to
// exponent form below 1e-4 and from 1e16 up.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}
