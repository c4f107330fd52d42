package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken string

	DeepSeekApiKey  string
	DeepSeekBaseUrl string
	DeepSeekModel   string
	Temperature     float64
	MaxTokens       int
	RequestTimeout  time.Duration

	DatabaseUrl string
	MetricsAddr string

	SystemPrompt string
	TruncateAt   int

	// Context selection tuning.
	HistoryCap    int
	ContextTarget int
	RecentWindow  int
	AnchorTurns   int
	SampleTurns   int
}

const defaultSystemPrompt = "You are a friendly assistant in a Telegram chat. " +
	"Answer concisely and keep the conversation's earlier context in mind."

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config.Load] no .env file, using process environment")
	}

	c := Config{
		BotToken:        os.Getenv("TELEGRAM_BOT_TOKEN"),
		DeepSeekApiKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekBaseUrl: envOrDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
		DeepSeekModel:   envOrDefault("DEEPSEEK_MODEL", "deepseek-chat"),
		DatabaseUrl:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		MetricsAddr:     envOrDefault("METRICS_ADDR", ":9090"),
		SystemPrompt:    envOrDefault("SYSTEM_PROMPT", defaultSystemPrompt),
	}

	var err error
	if c.RequestTimeout, err = durationFromEnv("REQUEST_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, err
	}
	if c.Temperature, err = floatFromEnv("MODEL_TEMPERATURE", 0.7); err != nil {
		return Config{}, err
	}
	if c.MaxTokens, err = intFromEnv("MODEL_MAX_TOKENS", 2000); err != nil {
		return Config{}, err
	}
	if c.TruncateAt, err = intFromEnv("CONTEXT_TRUNCATE_AT", 500); err != nil {
		return Config{}, err
	}
	if c.HistoryCap, err = intFromEnv("MEMORY_HISTORY_CAP", 80); err != nil {
		return Config{}, err
	}
	if c.ContextTarget, err = intFromEnv("MEMORY_CONTEXT_TARGET", 40); err != nil {
		return Config{}, err
	}
	if c.RecentWindow, err = intFromEnv("MEMORY_RECENT_WINDOW", 30); err != nil {
		return Config{}, err
	}
	if c.AnchorTurns, err = intFromEnv("MEMORY_ANCHOR_TURNS", 5); err != nil {
		return Config{}, err
	}
	if c.SampleTurns, err = intFromEnv("MEMORY_SAMPLE_TURNS", 5); err != nil {
		return Config{}, err
	}

	if c.BotToken == "" {
		return c, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.DeepSeekApiKey == "" {
		return c, fmt.Errorf("DEEPSEEK_API_KEY is required")
	}
	if c.RequestTimeout <= 0 {
		return c, fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.MaxTokens <= 0 {
		return c, fmt.Errorf("MODEL_MAX_TOKENS must be positive")
	}
	if c.TruncateAt <= 0 {
		return c, fmt.Errorf("CONTEXT_TRUNCATE_AT must be positive")
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intFromEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return f, nil
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}
