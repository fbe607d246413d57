package chatgpt

import (
	"context"

	"github.com/yanqian/fred-insights/internal/domain/summarizer"
	"github.com/yanqian/fred-insights/pkg/metrics"
)

// Generator adapts the chat client to summarizer.Generator.
type Generator struct {
	client      *Client
	provider    string
	model       string
	temperature float32
	maxTokens   int
}

// NewGenerator constructs the adapter. provider labels metrics and logs.
func NewGenerator(client *Client, provider, model string, temperature float32, maxTokens int) *Generator {
	return &Generator{client: client, provider: provider, model: model, temperature: temperature, maxTokens: maxTokens}
}

// Generate sends prompt as a single user message.
func (g *Generator) Generate(ctx context.Context, prompt string) (summarizer.Generation, error) {
	resp, err := g.client.CreateChatCompletion(ctx, ChatCompletionRequest{
		Model:       g.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return summarizer.Generation{}, err
	}

	out := summarizer.Generation{
		Model:    firstNonEmpty(resp.Model, g.model),
		Provider: g.provider,
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		out.Text = resp.Choices[0].Message.Content
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ summarizer.Generator = (*Generator)(nil)
