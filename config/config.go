// Package config loads interviewdigest settings from an optional YAML file,
// a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INTERVIEWDIGEST_"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every setting the commands read.
type Config struct {
	LogLevel  string       `yaml:"log_level"`
	OutputDir string       `yaml:"output_dir"`
	Workers   int          `yaml:"workers"`
	Scrape    ScrapeConfig `yaml:"scrape"`
	LLM       LLMConfig    `yaml:"llm"`
	Embed     EmbedConfig  `yaml:"embed"`
	Qdrant    QdrantConfig `yaml:"qdrant"`
	// Topics overrides the report's coding-topic vocabulary.
	Topics []string `yaml:"topics"`
}

// ScrapeConfig configures both listing sites.
type ScrapeConfig struct {
	ListingURL  string        `yaml:"listing_url"`
	IndexURL    string        `yaml:"index_url"`
	Pages       int           `yaml:"pages"`
	SettleDelay time.Duration `yaml:"settle_delay"`
	FetchDelay  time.Duration `yaml:"fetch_delay"`
}

// LLMConfig configures the OpenAI-compatible chat endpoint.
type LLMConfig struct {
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
}

// EmbedConfig configures the Ollama embeddings endpoint.
type EmbedConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	ChunkSize int    `yaml:"chunk_size"`
}

// QdrantConfig configures the vector store.
type QdrantConfig struct {
	URL        string `yaml:"url"`
	Collection string `yaml:"collection"`
	TopK       int    `yaml:"top_k"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Workers:  5,
		Scrape: ScrapeConfig{
			Pages:       1,
			SettleDelay: 5 * time.Second,
			FetchDelay:  2 * time.Second,
		},
		LLM: LLMConfig{
			Temperature: 0.3,
			Timeout:     2 * time.Minute,
			MaxRetries:  2,
		},
		Embed:  EmbedConfig{ChunkSize: 512},
		Qdrant: QdrantConfig{Collection: "interviews", TopK: 5},
	}
}

// Load reads .env from the working directory if present, then the YAML file
// at path if path is non-empty, then environment overrides, and validates
// the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.LogLevel, EnvPrefix+"LOG_LEVEL")
	setString(&c.OutputDir, EnvPrefix+"OUTPUT_DIR")
	setString(&c.Scrape.ListingURL, EnvPrefix+"LISTING_URL")
	setString(&c.Scrape.IndexURL, EnvPrefix+"INDEX_URL")
	setString(&c.LLM.BaseURL, EnvPrefix+"LLM_BASE_URL")
	setString(&c.LLM.Model, EnvPrefix+"LLM_MODEL")
	setString(&c.Embed.BaseURL, EnvPrefix+"OLLAMA_URL")
	setString(&c.Embed.Model, EnvPrefix+"EMBED_MODEL")
	setString(&c.Qdrant.URL, EnvPrefix+"QDRANT_URL")
	setString(&c.Qdrant.Collection, EnvPrefix+"QDRANT_COLLECTION")

	// The first key set wins; provider keys are accepted as they are.
	for _, key := range []string{EnvPrefix + "LLM_API_KEY", "OPENAI_API_KEY", "GOOGLE_API_KEY"} {
		if v := os.Getenv(key); v != "" {
			c.LLM.APIKey = v
			break
		}
	}

	if err := setInt(&c.Workers, EnvPrefix+"WORKERS"); err != nil {
		return err
	}
	if err := setInt(&c.Scrape.Pages, EnvPrefix+"PAGES"); err != nil {
		return err
	}
	if err := setFloat(&c.LLM.Temperature, EnvPrefix+"LLM_TEMPERATURE"); err != nil {
		return err
	}
	return setDuration(&c.Scrape.FetchDelay, EnvPrefix+"FETCH_DELAY")
}

// Validate checks ranges and the log level.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.Scrape.Pages < 1 {
		return fmt.Errorf("%w: scrape.pages must be at least 1, got %d", ErrInvalidConfig, c.Scrape.Pages)
	}
	if c.Scrape.SettleDelay < 0 || c.Scrape.FetchDelay < 0 || c.LLM.Timeout < 0 {
		return fmt.Errorf("%w: delays and timeouts cannot be negative", ErrInvalidConfig)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("%w: llm.temperature must be within [0, 2], got %g", ErrInvalidConfig, c.LLM.Temperature)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("%w: llm.max_retries cannot be negative", ErrInvalidConfig)
	}
	if c.Qdrant.TopK < 1 {
		return fmt.Errorf("%w: qdrant.top_k must be at least 1, got %d", ErrInvalidConfig, c.Qdrant.TopK)
	}
	if c.Qdrant.Collection == "" {
		return fmt.Errorf("%w: qdrant.collection is empty", ErrInvalidConfig)
	}
	return nil
}

// HasLLM reports whether an API key is configured.
func (c *Config) HasLLM() bool {
	return c.LLM.APIKey != ""
}

// Level returns the parsed log level; Validate guarantees it parses.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
	}
	*dst = f
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, v)
	}
	*dst = d
	return nil
}
