package config

import (
	"time"

	"github.com/spf13/viper"
)

type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory" // In-process cache (default)
	CacheBackendRedis  CacheBackend = "redis"  // Shared Redis cache
)

type (
	Config struct {
		HTTP
		Global
		Database
		Dictionary
		Cache
		Redis
		Auth
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Dictionary struct {
		BaseURL string
		Timeout time.Duration
	}
	Cache struct {
		Backend       CacheBackend
		WordDetailTTL time.Duration // Upstream definitions change rarely
		WordListTTL   time.Duration // Listings reflect DB growth more often
		ListingTTL    time.Duration // Per-user favorites/history listings
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Auth struct {
		BcryptCost int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Upstream dictionary defaults
	v.SetDefault("dictionary_base_url", DefaultDictionaryBaseURL)
	v.SetDefault("dictionary_timeout", "5s")

	// Cache defaults
	v.SetDefault("cache_backend", "memory")
	v.SetDefault("cache_word_detail_ttl", "60m")
	v.SetDefault("cache_word_list_ttl", "30m")
	v.SetDefault("cache_listing_ttl", "60m")

	// Redis defaults (only used when cache_backend=redis)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Auth defaults
	v.SetDefault("auth_bcrypt_cost", 12)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Dictionary: Dictionary{
			BaseURL: v.GetString("DICTIONARY_BASE_URL"),
			Timeout: v.GetDuration("DICTIONARY_TIMEOUT"),
		},
		Cache: Cache{
			Backend:       CacheBackend(v.GetString("CACHE_BACKEND")),
			WordDetailTTL: v.GetDuration("CACHE_WORD_DETAIL_TTL"),
			WordListTTL:   v.GetDuration("CACHE_WORD_LIST_TTL"),
			ListingTTL:    v.GetDuration("CACHE_LISTING_TTL"),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
	}
}
