package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/yanqian/fred-insights/pkg/errors"
)

// LLM providers understood by LLMConfig.Provider.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const geminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	FRED    FREDConfig    `yaml:"fred"`
	LLM     LLMConfig     `yaml:"llm"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// FREDConfig configures the economic data provider.
type FREDConfig struct {
	APIKey           string        `yaml:"apiKey"`
	BaseURL          string        `yaml:"baseUrl"`
	Timeout          time.Duration `yaml:"timeout"`
	BatchConcurrency int           `yaml:"batchConcurrency"`
}

// LLMConfig selects and configures the text generator.
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// CatalogConfig optionally replaces the embedded category table.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	cfg.applyProviderDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfiguration, "invalid config", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		cfg.FRED.APIKey = v
	}
	if v := os.Getenv("FRED_BASE_URL"); v != "" {
		cfg.FRED.BaseURL = v
	}
	if v := os.Getenv("FRED_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.FRED.Timeout = parsed
		}
	}
	if v := os.Getenv("FRED_BATCH_CONCURRENCY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FRED.BatchConcurrency = parsed
		}
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = parsed
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
}

// applyProviderDefaults fills the key, base URL and model that follow from
// the chosen provider when they were not set explicitly.
func (c *Config) applyProviderDefaults() {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		c.LLM.APIKey = os.Getenv(providerKeyEnv(c.LLM.Provider))
	}
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.BaseURL == "" {
			c.LLM.BaseURL = geminiOpenAIBaseURL
		}
		if c.LLM.Model == "" {
			c.LLM.Model = "gemini-2.0-flash"
		}
	case ProviderOpenAI:
		if c.LLM.Model == "" {
			c.LLM.Model = "gpt-4o-mini"
		}
	case ProviderAnthropic:
		if c.LLM.Model == "" {
			c.LLM.Model = "claude-3-5-haiku-latest"
		}
	}
}

func providerKeyEnv(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 90 * time.Second,
			AllowedOrigins: []string{
				"http://localhost:3000",
			},
		},
		FRED: FREDConfig{
			BaseURL: "https://api.stlouisfed.org/fred",
			Timeout: 30 * time.Second,
		},
		LLM: LLMConfig{
			Provider:    ProviderGemini,
			Temperature: 0.2,
			MaxTokens:   1024,
			Timeout:     60 * time.Second,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.FRED.APIKey) == "" {
		return errors.New("FRED_API_KEY environment variable is required")
	}
	if c.FRED.Timeout <= 0 {
		return errors.New("fred.timeout must be positive")
	}
	if c.FRED.BatchConcurrency < 0 {
		return errors.New("fred.batchConcurrency cannot be negative")
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return fmt.Errorf("%s environment variable is required", providerKeyEnv(c.LLM.Provider))
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.MaxTokens < 0 {
		return errors.New("llm.maxTokens cannot be negative")
	}
	return nil
}
