package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Speech  SpeechConfig
	Session SessionConfig
	Upload  UploadConfig
	Redis   RedisConfig
	Storage StorageConfig
	Log     LogConfig
}

// ServerConfig holds the local control API configuration
type ServerConfig struct {
	Host            string        `default:"127.0.0.1"`
	Port            string        `default:"8090" validate:"required,numeric"`
	Environment     string        `default:"development" validate:"oneof=development staging production"`
	AllowedOrigins  []string      `split_words:"true" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
	// APIToken, when set, is required as a bearer token on /v1 routes.
	APIToken        string        `envconfig:"API_TOKEN"`
}

// BackendConfig points at the remote meeting backend
type BackendConfig struct {
	BaseURL    string        `split_words:"true" default:"http://localhost:8000" validate:"required,url"`
	WSURL      string        `envconfig:"WS_URL" default:"ws://localhost:8000" validate:"required,url"`
	APIKey     string        `split_words:"true"`
	Timeout    time.Duration `default:"30s"`
	MaxRetries int           `split_words:"true" default:"3" validate:"min=0,max=10"`
}

// SpeechConfig selects the speech recognition capability
type SpeechConfig struct {
	// Provider is one of none, assemblyai, realtime-video, meeting.
	Provider         string `default:"none" validate:"oneof=none assemblyai realtime-video meeting"`
	AudioInput       string `split_words:"true"`
	SampleRate       int    `split_words:"true" default:"16000" validate:"min=8000"`
	ChunkBytes       int    `split_words:"true" default:"8192" validate:"min=256"`
	Speaker          string `default:"You"`
	AssemblyAIAPIKey string `envconfig:"ASSEMBLYAI_API_KEY" validate:"required_if=Provider assemblyai"`
}

// SessionConfig holds per-user session behaviour
type SessionConfig struct {
	UserID            string        `split_words:"true"`
	UserName          string        `split_words:"true"`
	UserRole          string        `split_words:"true"`
	NoticeTTL         time.Duration `envconfig:"NOTICE_TTL" default:"3s"`
	EnrichmentTimeout time.Duration `split_words:"true" default:"30s"`
}

// UploadConfig holds media upload limits
type UploadConfig struct {
	MaxBytes int64  `split_words:"true" default:"1073741824" validate:"min=1"`
	Mode     string `default:"stream" validate:"oneof=stream batch"`
	Archive  bool   `default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled       bool   `default:"false"`
	Host          string `default:"localhost"`
	Port          string `default:"6379"`
	Password      string
	DB            int    `default:"0"`
	ChannelPrefix string `split_words:"true" default:"meeting-assistant"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool   `default:"false"`
	Endpoint        string `default:"localhost:9000"`
	AccessKeyID     string `envconfig:"ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"BUCKET" default:"meeting-uploads"`
	UseSSL          bool   `envconfig:"USE_SSL" default:"false"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `default:"info" validate:"oneof=debug info warn error"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Speech.Provider != "none" && c.Speech.Provider != "" && c.Speech.AudioInput == "" {
		log.Printf("Warning: SPEECH_PROVIDER=%s without SPEECH_AUDIO_INPUT, recording will be unavailable", c.Speech.Provider)
	}
	return nil
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the listen address of the control API
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}
