package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"travel-app/services/chapa"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	AMQP       AMQPConfig
	Chapa      ChapaConfig
	SMTP       SMTPConfig
	Cloudinary CloudinaryConfig
	JWT        JWTConfig
	Log        LogConfig
	Jobs       JobsConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	User     string
	Password string
	DB       int
}

type AMQPConfig struct {
	URL        string
	BufferSize int
}

type ChapaConfig struct {
	SecretKey string
	PublicKey string
	BaseURL   string
	Currency  string
	Timeout   time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

type CloudinaryConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type LogConfig struct {
	Level string
	Dir   string
}

type JobsConfig struct {
	PaymentStaleAfter time.Duration
	StaleSweepSpec    string
}

// LoadEnv nạp biến môi trường từ tệp .env nếu có
func LoadEnv() {
	_ = godotenv.Load()
}

// Load đọc cấu hình từ biến môi trường, thiếu thì dùng giá trị mặc định
func Load() (*Config, error) {
	LoadEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:        GetEnv("PORT", "8083"),
			Env:         GetEnv("ENV", "dev"),
			CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver:   GetEnv("DB_DRIVER", "postgres"),
			URL:      os.Getenv("DATABASE_URL"),
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			User:     os.Getenv("REDIS_USER"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		AMQP: AMQPConfig{
			URL: os.Getenv("RABBITMQ_URL"),
		},
		Chapa: ChapaConfig{
			SecretKey: os.Getenv("CHAPA_SECRET_KEY"),
			PublicKey: os.Getenv("CHAPA_PUBLIC_KEY"),
			BaseURL:   GetEnv("CHAPA_BASE_URL", chapa.DefaultBaseURL),
			Currency:  GetEnv("CHAPA_CURRENCY", "ETB"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     GetEnv("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		Cloudinary: CloudinaryConfig{URL: os.Getenv("CLOUDINARY_URL")},
		JWT:        JWTConfig{Secret: os.Getenv("JWT_SECRET")},
		Log: LogConfig{
			Level: GetEnv("LOG_LEVEL", "info"),
			Dir:   GetEnv("LOG_DIR", "logs"),
		},
		Jobs: JobsConfig{
			StaleSweepSpec: GetEnv("PAYMENT_SWEEP_SPEC", "@every 5m"),
		},
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.AMQP.BufferSize, err = getInt("NOTIFY_BUFFER_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.Chapa.Timeout, err = getDuration("CHAPA_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.JWT.TTL, err = getDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Jobs.PaymentStaleAfter, err = getDuration("PAYMENT_STALE_AFTER", 30*time.Minute); err != nil {
		return nil, err
	}

	switch cfg.Database.Driver {
	case "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}

// Gateway trả về cấu hình cho chapa.Client
func (c ChapaConfig) Gateway() chapa.Config {
	return chapa.Config{
		SecretKey: c.SecretKey,
		PublicKey: c.PublicKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
	}
}

func GetEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
