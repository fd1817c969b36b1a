package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "kycgate/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr                   string
	JWTSigningKey          string
	JWTIssuer              string
	JWTAudience            string
	AdminAPIToken          string
	AdminAPITokenHash      string
	LogLevel               string
	DatabaseURL            string
	Redis                  RedisConfig
	Kafka                  KafkaConfig
	Provider               ProviderConfig
	Verification           VerificationConfig
	UserCacheTTL           time.Duration
	WebhookSignatureHeader string
}

// RedisConfig controls the optional Redis connection used for cross-instance
// per-user locks and the user directory cache. Empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig controls status-change event publishing. No brokers disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ProviderConfig holds verification provider credentials and client tuning.
type ProviderConfig struct {
	BaseURL       string
	AppToken      string
	SecretKey     string
	WebhookSecret string
	Timeout       time.Duration
	MaxAttempts   int
}

// VerificationConfig holds defaults applied when initiating verification.
type VerificationConfig struct {
	LevelName      string
	AccessTokenTTL time.Duration
}

const (
	DefaultWebhookSignatureHeader = "X-Payload-Digest"
	DefaultLevelName              = "basic-kyc-level"
	DefaultAccessTokenTTL         = 600 * time.Second
	DefaultProviderTimeout        = 10 * time.Second
	DefaultProviderMaxAttempts    = 3
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("KYC_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:              addr,
		JWTSigningKey:     jwtSigningKey,
		JWTIssuer:         envOr("JWT_ISSUER", "kycgate"),
		JWTAudience:       envOr("JWT_AUDIENCE", "kycgate-api"),
		AdminAPIToken:     os.Getenv("ADMIN_API_TOKEN"),
		AdminAPITokenHash: os.Getenv("ADMIN_API_TOKEN_HASH"),
		LogLevel:          envOr("LOG_LEVEL", "info"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: platformstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KYC_EVENTS_TOPIC", "kyc.status-changed"),
		},
		Provider: ProviderConfig{
			BaseURL:       envOr("KYC_PROVIDER_BASE_URL", "https://api.sumsub.com"),
			AppToken:      os.Getenv("KYC_PROVIDER_APP_TOKEN"),
			SecretKey:     os.Getenv("KYC_PROVIDER_SECRET_KEY"),
			WebhookSecret: os.Getenv("KYC_WEBHOOK_SECRET"),
			Timeout:       envDuration("KYC_PROVIDER_TIMEOUT", DefaultProviderTimeout),
			MaxAttempts:   envInt("KYC_PROVIDER_MAX_ATTEMPTS", DefaultProviderMaxAttempts),
		},
		Verification: VerificationConfig{
			LevelName:      envOr("KYC_LEVEL_NAME", DefaultLevelName),
			AccessTokenTTL: envDuration("KYC_ACCESS_TOKEN_TTL", DefaultAccessTokenTTL),
		},
		UserCacheTTL:           envDuration("KYC_USER_CACHE_TTL", 5*time.Minute),
		WebhookSignatureHeader: envOr("KYC_WEBHOOK_SIGNATURE_HEADER", DefaultWebhookSignatureHeader),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// envDuration accepts Go durations ("10s") or bare seconds ("600").
func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}
