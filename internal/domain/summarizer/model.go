package summarizer

import "github.com/yanqian/fred-insights/pkg/metrics"

// Request represents the incoming summarization payload.
type Request struct {
	Data map[string]any `json:"data" binding:"required"`
}

// Response is returned by the summarize endpoint.
type Response struct {
	Summary string `json:"summary"`
}

// Generation is the raw output of a text generator.
type Generation struct {
	Text     string
	Model    string
	Provider string
	Usage    metrics.TokenUsage
}
