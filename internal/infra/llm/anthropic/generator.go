package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/yanqian/fred-insights/internal/domain/summarizer"
	"github.com/yanqian/fred-insights/pkg/metrics"
)

const (
	providerName     = "anthropic"
	defaultMaxTokens = 1024
)

// Generator implements summarizer.Generator on the Anthropic Messages API.
type Generator struct {
	client      *sdk.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewGenerator builds the adapter. Retries are disabled; the request timeout
// bounds each call.
func NewGenerator(apiKey, baseURL, model string, temperature float32, maxTokens int, timeout time.Duration) (*Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("anthropic api key cannot be empty")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("anthropic model cannot be empty")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithMaxRetries(0),
	}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	client := sdk.NewClient(opts...)
	return &Generator{client: &client, model: model, temperature: temperature, maxTokens: maxTokens}, nil
}

// Generate sends prompt as a single user turn and joins the text blocks.
func (g *Generator) Generate(ctx context.Context, prompt string) (summarizer.Generation, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(g.model),
		MaxTokens: int64(g.maxTokens),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	}
	if g.temperature > 0 {
		params.Temperature = sdk.Float(float64(g.temperature))
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return summarizer.Generation{}, fmt.Errorf("anthropic API error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	usage := metrics.TokenUsage{
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
	}
	usage.TotalTokens = usage.Total()
	return summarizer.Generation{
		Text:     text.String(),
		Model:    string(resp.Model),
		Provider: providerName,
		Usage:    usage,
	}, nil
}

var _ summarizer.Generator = (*Generator)(nil)
