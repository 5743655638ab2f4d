package cli

import (
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentforge/forge/internal/cache"
	"github.com/talentforge/forge/internal/hosting"
	"github.com/talentforge/forge/internal/logger"
	"github.com/talentforge/forge/internal/model"
	"github.com/talentforge/forge/internal/pipeline"
	"github.com/talentforge/forge/internal/portfolio"
	"github.com/talentforge/forge/internal/worker"
)

// loadConfig layers defaults, the config file and environment variables.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	cfg.Log.JSON = viper.GetBool("log.json")
	cfg.Log.Debug = viper.GetBool("log.debug")

	if addr := viper.GetString("http.addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}
	if base := viper.GetString("fetch.hosting_base_url"); base != "" {
		cfg.Fetch.HostingBaseURL = base
	}
	if token := os.Getenv("FORGE_HOSTING_TOKEN"); token != "" {
		cfg.Fetch.HostingToken = token
	}
	if workers := viper.GetInt("concurrency.workers"); workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if maxBatch := viper.GetInt("concurrency.max_batch"); maxBatch > 0 {
		cfg.Concurrency.MaxBatch = maxBatch
	}
	if tau := viper.GetFloat64("scoring.tau"); tau > 0 {
		cfg.Scoring.Tau = tau
	}
	if provider := viper.GetString("skills.provider"); provider != "" {
		cfg.Skills.Provider = provider
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Skills.APIKey = key
	}

	return cfg
}

// buildAnalyzer wires the fetchers, cache, limiter and pipeline from
// configuration.
func buildAnalyzer(cfg *model.Config, log *zap.Logger) *pipeline.Analyzer {
	var fetchCache cache.Cache
	if cfg.Cache.Enabled {
		fetchCache = cache.NewMemory(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	hostingClient := hosting.NewClient(hosting.Options{
		BaseURL:   cfg.Fetch.HostingBaseURL,
		Token:     cfg.Fetch.HostingToken,
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.Fetch.Timeout,
		MaxBytes:  cfg.Fetch.MaxBodyBytes,
		Cache:     fetchCache,
		CacheTTL:  cfg.Cache.TTL,
		Limiter:   limiter,
	})

	portfolioExtractor := portfolio.NewExtractor(portfolio.Options{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.Fetch.Timeout,
		MaxBytes:  cfg.Fetch.MaxBodyBytes,
		Cache:     fetchCache,
		CacheTTL:  cfg.Cache.TTL,
	})

	p := pipeline.New(pipeline.Options{
		Hosting:      hostingClient,
		Portfolio:    portfolioExtractor,
		Logger:       log,
		FetchTimeout: cfg.Fetch.Timeout,
	})

	return pipeline.NewAnalyzer(p, cfg.Concurrency.Workers, cfg.Concurrency.MaxBatch, cfg.Scoring.Tau, log)
}

// newLogger builds the zap logger from config.
func newLogger(cfg *model.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log.JSON, cfg.Log.Debug)
}
