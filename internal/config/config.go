package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/AnuroopSrivastava/Verdictify/internal/classifier"
	"github.com/AnuroopSrivastava/Verdictify/internal/corpus"
	"github.com/AnuroopSrivastava/Verdictify/internal/crawler"
	"github.com/AnuroopSrivastava/Verdictify/internal/scoring"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port             string
	SiteHost         string
	LogLevel         string
	BatchConcurrency int

	Scraper crawler.Options
	Tuning  Tuning
}

// Tuning are the business constants of the pipeline. They can be
// overridden by the YAML file named in TUNING_FILE.
type Tuning struct {
	DefaultLimit int                `yaml:"default_limit"`
	MaxLimit     int                `yaml:"max_limit"`
	Corpus       corpus.Options     `yaml:"corpus"`
	Sentiment    classifier.Cutoffs `yaml:"sentiment"`
	Verdict      scoring.Thresholds `yaml:"verdict"`
}

func DefaultTuning() Tuning {
	return Tuning{
		DefaultLimit: 50,
		MaxLimit:     500,
		Corpus:       corpus.DefaultOptions(),
		Sentiment:    classifier.DefaultCutoffs(),
		Verdict:      scoring.DefaultThresholds(),
	}
}

// Load reads the .env file, the environment and the optional tuning file.
// A missing SCRAPER_API_KEY is not an error here; each analysis reports it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		SiteHost:         getEnv("SITE_HOST", "myntra.com"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		BatchConcurrency: getEnvPositive("BATCH_CONCURRENCY", 4),

		Scraper: crawler.Options{
			BaseURL:     getEnv("SCRAPER_BASE_URL", "https://app.scrapingbee.com/api/v1/"),
			APIKey:      os.Getenv("SCRAPER_API_KEY"),
			Timeout:     time.Duration(getEnvPositive("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
			SizeCap:     int64(getEnvPositive("FETCH_SIZE_CAP_BYTES", 10<<20)),
			MaxAttempts: getEnvPositive("FETCH_MAX_ATTEMPTS", 3),
			RetryDelay:  time.Duration(getEnvPositive("FETCH_RETRY_BASE_MS", 500)) * time.Millisecond,
		},
		Tuning: DefaultTuning(),
	}

	if path := os.Getenv("TUNING_FILE"); path != "" {
		t, err := LoadTuning(path)
		if err != nil {
			return nil, err
		}
		cfg.Tuning = t
	}
	return cfg, nil
}

// LoadTuning overlays the YAML file at path on DefaultTuning.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	b, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("config: read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(b, &t); err != nil {
		return t, fmt.Errorf("config: parse tuning file %q: %w", path, err)
	}
	if err := t.validate(); err != nil {
		return t, fmt.Errorf("config: tuning file %q: %w", path, err)
	}
	return t, nil
}

func (t Tuning) validate() error {
	switch {
	case t.DefaultLimit <= 0 || t.MaxLimit < t.DefaultLimit:
		return fmt.Errorf("limits must satisfy 0 < default_limit <= max_limit")
	case t.Corpus.MinSize < 0:
		return fmt.Errorf("corpus.min_size must not be negative")
	case t.Corpus.LowRating < 1 || t.Corpus.HighRating > 5 || t.Corpus.LowRating > t.Corpus.HighRating:
		return fmt.Errorf("corpus ratings must satisfy 1 <= low_rating <= high_rating <= 5")
	case t.Sentiment.NegativeBelow > t.Sentiment.PositiveAbove:
		return fmt.Errorf("sentiment.negative_below must not exceed positive_above")
	case !(t.Verdict.StrongBuy >= t.Verdict.Recommended && t.Verdict.Recommended >= t.Verdict.Caution):
		return fmt.Errorf("verdict thresholds must be descending")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
		log.Printf("[config] Invalid int for %s=%q, using default %d", key, val, fallback)
	}
	return fallback
}

// getEnvPositive is getEnvInt for settings where zero or less would disable a bound.
func getEnvPositive(key string, fallback int) int {
	if n := getEnvInt(key, fallback); n > 0 {
		return n
	}
	log.Printf("[config] %s must be positive, using default %d", key, fallback)
	return fallback
}
