package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from the file named by envKey+"_FILE".
// A directly set envKey wins.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	filePath := os.Getenv(envKey + "_FILE")
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	os.Setenv(envKey, strings.TrimSpace(string(data)))
}

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Breaker   BreakerConfig
	Redis     RedisConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Posters   PosterConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string
}

type BackendConfig struct {
	BaseURL   string
	Timeout   time.Duration
	LoadMoods bool
}

type BreakerConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type RateLimitConfig struct {
	SearchPerMin  int
	ActionsPerMin int
}

type PosterConfig struct {
	ProbeEnabled bool
	ProbeTimeout time.Duration
	CacheTTL     time.Duration
}

type WorkerConfig struct {
	Concurrency int
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func Load() (*Config, error) {
	readSecret("REDIS_PASSWORD")
	readSecret("SESSION_SECRET")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()

	_ = v.BindEnv("server.port", "SERVER_PORT")
	_ = v.BindEnv("server.env", "SERVER_ENV")
	_ = v.BindEnv("server.log_level", "LOG_LEVEL")
	_ = v.BindEnv("server.log_format", "LOG_FORMAT")
	_ = v.BindEnv("backend.base_url", "BACKEND_BASE_URL")
	_ = v.BindEnv("backend.timeout", "BACKEND_TIMEOUT")
	_ = v.BindEnv("backend.load_moods", "BACKEND_LOAD_MOODS")
	_ = v.BindEnv("breaker.max_requests", "BREAKER_MAX_REQUESTS")
	_ = v.BindEnv("breaker.interval", "BREAKER_INTERVAL")
	_ = v.BindEnv("breaker.timeout", "BREAKER_TIMEOUT")
	_ = v.BindEnv("breaker.min_requests", "BREAKER_MIN_REQUESTS")
	_ = v.BindEnv("breaker.failure_ratio", "BREAKER_FAILURE_RATIO")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")
	_ = v.BindEnv("session.secret", "SESSION_SECRET")
	_ = v.BindEnv("session.cookie_name", "SESSION_COOKIE_NAME")
	_ = v.BindEnv("session.ttl_hours", "SESSION_TTL_HOURS")
	_ = v.BindEnv("session.secure", "SESSION_SECURE")
	_ = v.BindEnv("ratelimit.search_per_min", "RATELIMIT_SEARCH_PER_MIN")
	_ = v.BindEnv("ratelimit.actions_per_min", "RATELIMIT_ACTIONS_PER_MIN")
	_ = v.BindEnv("posters.probe_enabled", "POSTERS_PROBE_ENABLED")
	_ = v.BindEnv("posters.probe_timeout", "POSTERS_PROBE_TIMEOUT")
	_ = v.BindEnv("posters.cache_ttl_minutes", "POSTERS_CACHE_TTL_MINUTES")
	_ = v.BindEnv("worker.concurrency", "WORKER_CONCURRENCY")

	// Defaults
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")
	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.timeout", 10) // seconds
	v.SetDefault("backend.load_moods", true)
	v.SetDefault("breaker.max_requests", 3)
	v.SetDefault("breaker.interval", 60) // seconds
	v.SetDefault("breaker.timeout", 30)  // seconds
	v.SetDefault("breaker.min_requests", 5)
	v.SetDefault("breaker.failure_ratio", 0.6)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.secret", "change-me-in-production")
	v.SetDefault("session.cookie_name", "cinesuggest_session")
	v.SetDefault("session.ttl_hours", 24)
	v.SetDefault("session.secure", false)
	v.SetDefault("ratelimit.search_per_min", 30)
	v.SetDefault("ratelimit.actions_per_min", 120)
	v.SetDefault("posters.probe_enabled", true)
	v.SetDefault("posters.probe_timeout", 5) // seconds
	v.SetDefault("posters.cache_ttl_minutes", 360)
	v.SetDefault("worker.concurrency", 5)

	// Config file is optional
	_ = v.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:      v.GetString("server.port"),
			Env:       v.GetString("server.env"),
			LogLevel:  v.GetString("server.log_level"),
			LogFormat: v.GetString("server.log_format"),
		},
		Backend: BackendConfig{
			BaseURL:   strings.TrimRight(v.GetString("backend.base_url"), "/"),
			Timeout:   time.Duration(v.GetInt("backend.timeout")) * time.Second,
			LoadMoods: v.GetBool("backend.load_moods"),
		},
		Breaker: BreakerConfig{
			MaxRequests:  v.GetUint32("breaker.max_requests"),
			Interval:     time.Duration(v.GetInt("breaker.interval")) * time.Second,
			Timeout:      time.Duration(v.GetInt("breaker.timeout")) * time.Second,
			MinRequests:  v.GetUint32("breaker.min_requests"),
			FailureRatio: v.GetFloat64("breaker.failure_ratio"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("session.secret"),
			CookieName: v.GetString("session.cookie_name"),
			TTL:        time.Duration(v.GetInt("session.ttl_hours")) * time.Hour,
			Secure:     v.GetBool("session.secure"),
		},
		RateLimit: RateLimitConfig{
			SearchPerMin:  v.GetInt("ratelimit.search_per_min"),
			ActionsPerMin: v.GetInt("ratelimit.actions_per_min"),
		},
		Posters: PosterConfig{
			ProbeEnabled: v.GetBool("posters.probe_enabled"),
			ProbeTimeout: time.Duration(v.GetInt("posters.probe_timeout")) * time.Second,
			CacheTTL:     time.Duration(v.GetInt("posters.cache_ttl_minutes")) * time.Minute,
		},
		Worker: WorkerConfig{
			Concurrency: v.GetInt("worker.concurrency"),
		},
	}

	return cfg, nil
}
