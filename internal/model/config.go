package model

import "time"

// Config is the application configuration, layered from defaults, the
// config file (~/.forge/config.yaml), FORGE_* environment variables and
// CLI flags.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Skills      SkillsConfig      `yaml:"skills"`
	Log         LogConfig         `yaml:"log"`
}

// HTTPConfig configures the analysis API server.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// FetchConfig configures outbound fetches to the code-hosting API and
// portfolio pages.
type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout"` // per-candidate external call budget
	UserAgent      string        `yaml:"user_agent"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	HostingBaseURL string        `yaml:"hosting_base_url"`
	HostingToken   string        `yaml:"hosting_token"`
}

// CacheConfig configures the fetch-result cache.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// ConcurrencyConfig bounds batch processing.
type ConcurrencyConfig struct {
	Workers  int `yaml:"workers"`
	MaxBatch int `yaml:"max_batch"` // maximum candidates per request
}

// RateLimitConfig throttles outbound fetches per host.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ScoringConfig carries pool-level scoring policy defaults.
type ScoringConfig struct {
	Tau float64 `yaml:"tau"`
}

// SkillsConfig configures the job-description skill extractor.
// Provider "" selects the built-in heuristic extractor.
type SkillsConfig struct {
	Provider string `yaml:"provider"` // "", "openai"
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Timeout  int    `yaml:"timeout"` // seconds
}

// LogConfig configures structured logging.
type LogConfig struct {
	JSON  bool `yaml:"json"`
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    5 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Fetch: FetchConfig{
			Timeout:        15 * time.Second,
			UserAgent:      "Forge/0.1 (+https://github.com/talentforge/forge)",
			MaxBodyBytes:   2_000_000,
			HostingBaseURL: "https://api.github.com",
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers:  8,
			MaxBatch: 300,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Scoring: ScoringConfig{
			Tau: DefaultTau,
		},
		Skills: SkillsConfig{
			Provider: "",
			Timeout:  30,
		},
		Log: LogConfig{
			JSON:  false,
			Debug: false,
		},
	}
}
