package summarizer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/fred-insights/pkg/errors"
	"github.com/yanqian/fred-insights/pkg/metrics"
)

// Service exposes summarization capabilities.
type Service interface {
	Summarize(ctx context.Context, payload map[string]any) (Response, error)
}

// Generator produces text for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Generation, error)
}

type service struct {
	generator Generator
	metrics   *metrics.Collectors
	logger    *slog.Logger
}

// NewService is a wire provider for the summarizer domain.
func NewService(generator Generator, collectors *metrics.Collectors, logger *slog.Logger) Service {
	return &service{
		generator: generator,
		metrics:   collectors,
		logger:    logger.With("component", "summarizer.service"),
	}
}

func (s *service) Summarize(ctx context.Context, payload map[string]any) (Response, error) {
	if len(payload) == 0 {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "data cannot be empty", nil)
	}

	prompt := BuildPrompt(payload)
	s.logger.Debug("summarization prompt built", "keys", len(payload), "prompt_len", len(prompt))

	start := time.Now()
	gen, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeUpstream, "Error generating summary", err)
	}
	s.metrics.ObserveTokens(gen.Provider, gen.Usage)

	text := strings.TrimSpace(gen.Text)
	if text == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeEmptyResult, "Error generating summary: empty response from model", nil)
	}

	s.logger.Info("summary generated",
		"provider", gen.Provider,
		"model", gen.Model,
		"summary_len", len(text),
		"total_tokens", gen.Usage.Total(),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return Response{Summary: text}, nil
}
