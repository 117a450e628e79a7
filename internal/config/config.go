package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	WhatsApp  WhatsAppConfig
	Media     MediaConfig
	Dashboard DashboardConfig
	Chat      ChatConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	HistogramTTL time.Duration
	DashboardTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	BatchSize         int
	StreamMaxLen      int64
	PollInterval      time.Duration
	RefreshInterval   time.Duration
}

type WhatsAppConfig struct {
	APIURL         string
	AccessToken    string
	PhoneNumberID  string
	RequestTimeout time.Duration
}

type MediaConfig struct {
	Dir           string
	PublicBaseURL string
	MaxFileSize   int64
}

type DashboardConfig struct {
	Timezone   string
	SampleSize int
}

type ChatConfig struct {
	FeedEnabled       bool
	FeedConsumerGroup string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8000)
	v.SetDefault("API_ENV", "production")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("CACHE_HISTOGRAM_TTL", 600)
	v.SetDefault("CACHE_DASHBOARD_TTL", 300)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_CONSUMER_GROUP", "chat-feed")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 1000)
	v.SetDefault("WORKER_BATCH_SIZE", 50)
	v.SetDefault("WORKER_STREAM_MAX_LEN", 10000)
	v.SetDefault("WORKER_POLL_INTERVAL", 5)
	v.SetDefault("WORKER_REFRESH_INTERVAL", 300)

	v.SetDefault("WHATSAPP_API_URL", "https://graph.facebook.com/v20.0")
	v.SetDefault("WHATSAPP_REQUEST_TIMEOUT", 30)

	v.SetDefault("MEDIA_DIR", "./media")
	v.SetDefault("MEDIA_MAX_FILE_SIZE", 30*1024*1024)

	v.SetDefault("DASHBOARD_TIMEZONE", "America/Lima")
	v.SetDefault("DASHBOARD_SAMPLE_SIZE", 1000)

	v.SetDefault("CHAT_FEED_ENABLED", true)
	v.SetDefault("CHAT_FEED_CONSUMER_GROUP", "chat-feed-api")
}

// Load читает .env (если он есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile - как Load, но с явным путём к файлу
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			HistogramTTL: time.Duration(v.GetInt("CACHE_HISTOGRAM_TTL")) * time.Second,
			DashboardTTL: time.Duration(v.GetInt("CACHE_DASHBOARD_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			BatchSize:         v.GetInt("WORKER_BATCH_SIZE"),
			StreamMaxLen:      v.GetInt64("WORKER_STREAM_MAX_LEN"),
			PollInterval:      time.Duration(v.GetInt("WORKER_POLL_INTERVAL")) * time.Second,
			RefreshInterval:   time.Duration(v.GetInt("WORKER_REFRESH_INTERVAL")) * time.Second,
		},
		WhatsApp: WhatsAppConfig{
			APIURL:         strings.TrimRight(v.GetString("WHATSAPP_API_URL"), "/"),
			AccessToken:    v.GetString("WHATSAPP_ACCESS_TOKEN"),
			PhoneNumberID:  v.GetString("WHATSAPP_PHONE_NUMBER_ID"),
			RequestTimeout: time.Duration(v.GetInt("WHATSAPP_REQUEST_TIMEOUT")) * time.Second,
		},
		Media: MediaConfig{
			Dir:           v.GetString("MEDIA_DIR"),
			PublicBaseURL: strings.TrimRight(v.GetString("MEDIA_PUBLIC_BASE_URL"), "/"),
			MaxFileSize:   v.GetInt64("MEDIA_MAX_FILE_SIZE"),
		},
		Dashboard: DashboardConfig{
			Timezone:   v.GetString("DASHBOARD_TIMEZONE"),
			SampleSize: v.GetInt("DASHBOARD_SAMPLE_SIZE"),
		},
		Chat: ChatConfig{
			FeedEnabled:       v.GetBool("CHAT_FEED_ENABLED"),
			FeedConsumerGroup: v.GetString("CHAT_FEED_CONSUMER_GROUP"),
		},
	}

	if cfg.Media.PublicBaseURL == "" {
		cfg.Media.PublicBaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	if _, err := time.LoadLocation(cfg.Dashboard.Timezone); err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TIMEZONE %q: %w", cfg.Dashboard.Timezone, err)
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - строка подключения в формате libpq, её понимают и pgx, и lib/pq
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Location - часовой пояс дашборда; валидность проверена в Load
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Dashboard.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
