package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"market_scout/internal/domain/entity"
)

// APIKeyEnv overrides coingecko.apiKey when set.
const APIKeyEnv = "COINGECKO_API_KEY"

// DefaultThresholdPercent applies when scanner.thresholdPercent is absent.
const DefaultThresholdPercent = 30.0

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level       string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	Development bool   `yaml:"development"`
}

// CoinGeckoConfig holds CoinGecko API specific configurations.
type CoinGeckoConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	APIKeyHeader         string `yaml:"apiKeyHeader"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	RateLimitPerMinute   int    `yaml:"rateLimitPerMinute"`
	RateLimitBurst       int    `yaml:"rateLimitBurst"`
	MaxPerPage           int    `yaml:"maxPerPage"`
}

// CacheConfig holds configuration for the price cache.
type CacheConfig struct {
	PriceTTLSeconds        int `yaml:"priceTTLSeconds"`
	CleanupIntervalSeconds int `yaml:"cleanupIntervalSeconds"`
}

// ScannerConfig holds the default market scan parameters.
type ScannerConfig struct {
	ThresholdPercent float64 `yaml:"thresholdPercent"`
	Currency         string  `yaml:"currency"`
	PerPage          int     `yaml:"perPage"`
	MaxPages         int     `yaml:"maxPages"`
	TopN             int     `yaml:"topN"`
}

// CLIConfig holds what the command line tool prints by default.
type CLIConfig struct {
	DefaultAsset    string `yaml:"defaultAsset"`
	DefaultCurrency string `yaml:"defaultCurrency"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"max_concurrent_routines"`
}

// FilesConfig points at the wallets and holdings input files.
type FilesConfig struct {
	Wallets  string `yaml:"wallets"`
	Holdings string `yaml:"holdings"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig            `yaml:"server"`
	Logging     LoggingConfig           `yaml:"logging"`
	CoinGecko   CoinGeckoConfig         `yaml:"coingecko"`
	Cache       CacheConfig             `yaml:"cache"`
	Scanner     ScannerConfig           `yaml:"scanner"`
	CLI         CLIConfig               `yaml:"cli"`
	Performance PerformanceConfig       `yaml:"performance"`
	Files       FilesConfig             `yaml:"files"`
	Chains      []entity.ChainSignature `yaml:"chains"`
}

// Load reads the YAML configuration file from the given path, unmarshals it
// and fills in defaults for everything left unset.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Seeded before decoding: 0 is a valid threshold, so only an absent key
	// means "use the default".
	cfg := Config{Scanner: ScannerConfig{ThresholdPercent: DefaultThresholdPercent}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		cfg.CoinGecko.APIKey = key
		logrus.Infof("CoinGecko API key taken from %s", APIKeyEnv)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		logrus.Errorf("Invalid configuration in %s: %v", path, err)
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
		logrus.Infof("CoinGecko.BaseURL not set, defaulting to %s", cfg.CoinGecko.BaseURL)
	}
	cfg.CoinGecko.BaseURL = strings.TrimRight(cfg.CoinGecko.BaseURL, "/")
	if cfg.CoinGecko.APIKeyHeader == "" {
		cfg.CoinGecko.APIKeyHeader = "x-cg-demo-api-key"
	}
	if cfg.CoinGecko.RequestTimeoutMillis <= 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000
		logrus.Infof("CoinGecko.RequestTimeoutMillis not set, defaulting to %d ms", cfg.CoinGecko.RequestTimeoutMillis)
	}
	if cfg.CoinGecko.RateLimitPerMinute < 0 {
		cfg.CoinGecko.RateLimitPerMinute = 0
	}
	if cfg.CoinGecko.RateLimitPerMinute > 0 && cfg.CoinGecko.RateLimitBurst <= 0 {
		cfg.CoinGecko.RateLimitBurst = 1
	}
	if cfg.CoinGecko.MaxPerPage <= 0 {
		cfg.CoinGecko.MaxPerPage = 250
	}

	// Zero TTL is meaningful (cache disabled), only negative values are reset.
	if cfg.Cache.PriceTTLSeconds < 0 {
		cfg.Cache.PriceTTLSeconds = 0
	}
	if cfg.Cache.CleanupIntervalSeconds <= 0 {
		cfg.Cache.CleanupIntervalSeconds = 600
	}

	if cfg.Scanner.Currency == "" {
		cfg.Scanner.Currency = "usd"
	}
	cfg.Scanner.Currency = strings.ToLower(cfg.Scanner.Currency)
	if cfg.Scanner.PerPage <= 0 {
		cfg.Scanner.PerPage = 250
	}
	if cfg.Scanner.MaxPages <= 0 {
		cfg.Scanner.MaxPages = 4
		logrus.Infof("Scanner.MaxPages not set, defaulting to %d", cfg.Scanner.MaxPages)
	}
	if cfg.Scanner.TopN <= 0 {
		cfg.Scanner.TopN = 10
	}

	if cfg.CLI.DefaultAsset == "" {
		cfg.CLI.DefaultAsset = "solana"
	}
	if cfg.CLI.DefaultCurrency == "" {
		cfg.CLI.DefaultCurrency = "eur"
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
		logrus.Infof("Performance.MaxConcurrentRoutines not set, defaulting to %d", cfg.Performance.MaxConcurrentRoutines)
	}

	if cfg.Files.Wallets == "" {
		cfg.Files.Wallets = "data/wallets.txt"
	}
	if cfg.Files.Holdings == "" {
		cfg.Files.Holdings = "data/holdings.json"
	}
}

func validate(cfg *Config) error {
	if cfg.Scanner.ThresholdPercent < 0 {
		return fmt.Errorf("%w: scanner.thresholdPercent must not be negative", entity.ErrInvalidArgument)
	}
	for i, chain := range cfg.Chains {
		if strings.TrimSpace(chain.Name) == "" {
			return fmt.Errorf("%w: chains[%d] has no name", entity.ErrInvalidArgument, i)
		}
		if len(chain.Prefixes) == 0 && len(chain.Lengths) == 0 {
			logrus.Warnf("Chain '%s' has neither prefixes nor lengths and would match every address.", chain.Name)
			return fmt.Errorf("%w: chains[%d] (%s) needs prefixes or lengths", entity.ErrInvalidArgument, i, chain.Name)
		}
	}
	return nil
}
