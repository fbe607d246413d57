package main

import (
	"fmt"
	"log/slog"

	"github.com/yanqian/fred-insights/internal/domain/catalog"
	"github.com/yanqian/fred-insights/internal/domain/series"
	"github.com/yanqian/fred-insights/internal/domain/summarizer"
	"github.com/yanqian/fred-insights/internal/infra/config"
	"github.com/yanqian/fred-insights/internal/infra/fred"
	"github.com/yanqian/fred-insights/internal/infra/llm/anthropic"
	"github.com/yanqian/fred-insights/internal/infra/llm/chatgpt"
	"github.com/yanqian/fred-insights/pkg/metrics"
)

func provideSeriesConfig(cfg *config.Config) series.Config {
	return series.Config{BatchConcurrency: cfg.FRED.BatchConcurrency}
}

func provideCatalogConfig(cfg *config.Config) catalog.Config {
	return catalog.Config{Path: cfg.Catalog.Path}
}

func provideFREDClient(cfg *config.Config, collectors *metrics.Collectors) (*fred.Client, error) {
	return fred.NewClient(cfg.FRED.APIKey, cfg.FRED.BaseURL, cfg.FRED.Timeout, collectors)
}

// provideGenerator picks the text generator for the configured LLM provider.
// Gemini and OpenAI both speak the chat completions protocol.
func provideGenerator(cfg *config.Config, logger *slog.Logger) (summarizer.Generator, error) {
	llm := cfg.LLM
	logger.Info("llm generator selected", "provider", llm.Provider, "model", llm.Model)

	switch llm.Provider {
	case config.ProviderGemini, config.ProviderOpenAI:
		client, err := chatgpt.NewClient(llm.APIKey, llm.BaseURL, llm.Timeout)
		if err != nil {
			return nil, err
		}
		return chatgpt.NewGenerator(client, llm.Provider, llm.Model, llm.Temperature, llm.MaxTokens), nil
	case config.ProviderAnthropic:
		return anthropic.NewGenerator(llm.APIKey, llm.BaseURL, llm.Model, llm.Temperature, llm.MaxTokens, llm.Timeout)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", llm.Provider)
	}
}
