package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the playground API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	SQLitePath             string
	RedisURL               string
	JWTSecret              string
	AIProvider             string
	OpenAIAPIKey           string
	AnthropicAPIKey        string
	CompletionTimeout      time.Duration
	ExtractionTimeout      time.Duration
	JudgeTimeout           time.Duration
	SnapshotCacheTTL       time.Duration
	SessionIdleTTL         time.Duration
	UploadMaxMB            int
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	NATSURL                string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file. DatabaseURL empty means the embedded sqlite database at
// SQLitePath is used instead of Postgres.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GPTACADEMY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GPT Academy API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("sqlite.path", "gpt-academy.db")
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("completion.timeout", "60s")
	v.SetDefault("extraction.timeout", "30s")
	v.SetDefault("judge.timeout", "45s")
	v.SetDefault("snapshot.cache_ttl", "30s")
	v.SetDefault("session.idle_ttl", "12h")
	v.SetDefault("upload.max_mb", 10)
	v.SetDefault("cloudinary.folder", "gpt-academy/attachments")

	completionTimeout, err := parseDuration(v, "completion.timeout")
	if err != nil {
		return Config{}, err
	}
	extractionTimeout, err := parseDuration(v, "extraction.timeout")
	if err != nil {
		return Config{}, err
	}
	judgeTimeout, err := parseDuration(v, "judge.timeout")
	if err != nil {
		return Config{}, err
	}
	snapshotTTL, err := parseDuration(v, "snapshot.cache_ttl")
	if err != nil {
		return Config{}, err
	}
	idleTTL, err := parseDuration(v, "session.idle_ttl")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		SQLitePath:             v.GetString("sqlite.path"),
		RedisURL:               v.GetString("redis.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		AIProvider:             strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:           v.GetString("openai_api_key"),
		AnthropicAPIKey:        v.GetString("anthropic_api_key"),
		CompletionTimeout:      completionTimeout,
		ExtractionTimeout:      extractionTimeout,
		JudgeTimeout:           judgeTimeout,
		SnapshotCacheTTL:       snapshotTTL,
		SessionIdleTTL:         idleTTL,
		UploadMaxMB:            v.GetInt("upload.max_mb"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		NATSURL:                v.GetString("nats.url"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 10
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
