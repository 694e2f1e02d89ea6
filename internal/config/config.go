package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	S3         S3Config
	CORS       CORSConfig
	Queue      QueueConfig
	Email      EmailConfig
	Validation ValidationConfig
}

// ValidationConfig holds rule selection and rule parameters.
type ValidationConfig struct {
	// Rules is the ordered list of rule keys to run. Empty means every builtin rule.
	Rules         []string      `mapstructure:"rules"`
	SentimentMin  float64       `mapstructure:"sentiment_min"`
	SentimentMax  float64       `mapstructure:"sentiment_max"`
	RecordTimeout time.Duration `mapstructure:"record_timeout"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider       string `mapstructure:"provider"`
	Region         string `mapstructure:"region"`
	FromAddress    string `mapstructure:"from_address"`
	FromName       string `mapstructure:"from_name"`
	StewardAddress string `mapstructure:"steward_address"`
}

// QueueConfig holds batch queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int           `mapstructure:"poll_interval_secs"`
	Concurrency      int           `mapstructure:"concurrency"`
	MaxRows          int           `mapstructure:"max_rows"`
	MaxAttempts      int           `mapstructure:"max_attempts"`
	StaleAfter       time.Duration `mapstructure:"stale_after"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Load reads configuration from environment variables with the DQ_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "dataquality")
	v.SetDefault("db.password", "dataquality_secret")
	v.SetDefault("db.name", "dataquality_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "1h")
	v.SetDefault("jwt.issuer", "dataquality")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "dataquality-batches")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 900)

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.concurrency", 2)
	v.SetDefault("queue.max_rows", 10000)
	v.SetDefault("queue.max_attempts", 3)
	v.SetDefault("queue.stale_after", "45m")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@dataquality.local")
	v.SetDefault("email.from_name", "Data Quality Gate")
	v.SetDefault("email.steward_address", "")

	// Validation defaults
	v.SetDefault("validation.rules", "")
	v.SetDefault("validation.sentiment_min", -2.0)
	v.SetDefault("validation.sentiment_max", 2.0)
	v.SetDefault("validation.record_timeout", "10s")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "DQ_SERVER_PORT",
		"server.read_timeout":       "DQ_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "DQ_SERVER_WRITE_TIMEOUT",
		"server.environment":        "DQ_SERVER_ENVIRONMENT",
		"db.host":                   "DQ_DB_HOST",
		"db.port":                   "DQ_DB_PORT",
		"db.user":                   "DQ_DB_USER",
		"db.password":               "DQ_DB_PASSWORD",
		"db.name":                   "DQ_DB_NAME",
		"db.sslmode":                "DQ_DB_SSLMODE",
		"db.max_open":               "DQ_DB_MAX_OPEN",
		"db.max_idle":               "DQ_DB_MAX_IDLE",
		"jwt.secret":                "DQ_JWT_SECRET",
		"jwt.access_expiry":         "DQ_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                "DQ_JWT_ISSUER",
		"s3.region":                 "DQ_S3_REGION",
		"s3.bucket":                 "DQ_S3_BUCKET",
		"s3.endpoint":               "DQ_S3_ENDPOINT",
		"s3.access_key":             "DQ_S3_ACCESS_KEY",
		"s3.secret_key":             "DQ_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "DQ_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "DQ_S3_PRESIGN_EXPIRY",
		"cors.allowed_origins":      "DQ_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":  "DQ_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":         "DQ_QUEUE_CONCURRENCY",
		"queue.max_rows":            "DQ_QUEUE_MAX_ROWS",
		"queue.max_attempts":        "DQ_QUEUE_MAX_ATTEMPTS",
		"queue.stale_after":         "DQ_QUEUE_STALE_AFTER",
		"email.provider":            "DQ_EMAIL_PROVIDER",
		"email.region":              "DQ_EMAIL_REGION",
		"email.from_address":        "DQ_EMAIL_FROM_ADDRESS",
		"email.from_name":           "DQ_EMAIL_FROM_NAME",
		"email.steward_address":     "DQ_EMAIL_STEWARD_ADDRESS",
		"validation.rules":          "DQ_VALIDATION_RULES",
		"validation.sentiment_min":  "DQ_VALIDATION_SENTIMENT_MIN",
		"validation.sentiment_max":  "DQ_VALIDATION_SENTIMENT_MAX",
		"validation.record_timeout": "DQ_VALIDATION_RECORD_TIMEOUT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Platform hosts set a PORT env var. Use it if DQ_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DQ_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: SplitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
		MaxRows:          v.GetInt("queue.max_rows"),
		MaxAttempts:      v.GetInt("queue.max_attempts"),
		StaleAfter:       v.GetDuration("queue.stale_after"),
	}
	cfg.Email = EmailConfig{
		Provider:       v.GetString("email.provider"),
		Region:         v.GetString("email.region"),
		FromAddress:    v.GetString("email.from_address"),
		FromName:       v.GetString("email.from_name"),
		StewardAddress: v.GetString("email.steward_address"),
	}
	cfg.Validation = ValidationConfig{
		Rules:         SplitList(v.GetString("validation.rules")),
		SentimentMin:  v.GetFloat64("validation.sentiment_min"),
		SentimentMax:  v.GetFloat64("validation.sentiment_max"),
		RecordTimeout: v.GetDuration("validation.record_timeout"),
	}

	if cfg.Validation.SentimentMin > cfg.Validation.SentimentMax {
		return nil, fmt.Errorf("validation.sentiment_min (%v) exceeds validation.sentiment_max (%v)",
			cfg.Validation.SentimentMin, cfg.Validation.SentimentMax)
	}
	if cfg.Queue.Concurrency < 1 {
		cfg.Queue.Concurrency = 1
	}

	return cfg, nil
}

// SplitList parses a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
