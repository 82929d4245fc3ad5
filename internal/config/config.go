package config

import (
    "fmt"

    "github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
    Server    ServerConfig    `mapstructure:"server"`
    Basket    BasketConfig    `mapstructure:"basket"`
    Naver     NaverConfig     `mapstructure:"naver"`
    Chart     ChartConfig     `mapstructure:"chart"`
    Portfolio PortfolioConfig `mapstructure:"portfolio"`
}

type ServerConfig struct {
    Port              string `mapstructure:"port"`
    RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
}

// BasketConfig points at the static component file and names the two
// tracked ETFs whose codes are always appended to the polled universe.
type BasketConfig struct {
    File      string `mapstructure:"file"`
    EtfCode   string `mapstructure:"etf_code"`
    TigerCode string `mapstructure:"tiger_code"`
}

type NaverConfig struct {
    PollingURL     string `mapstructure:"polling_url"`
    ChartURL       string `mapstructure:"chart_url"`
    Referer        string `mapstructure:"referer"`
    BatchSize      int    `mapstructure:"batch_size"`
    MaxConcurrency int    `mapstructure:"max_concurrency"`
    TimeoutSec     int    `mapstructure:"timeout_sec"`
}

type ChartConfig struct {
    Count                 int `mapstructure:"count"`
    CacheTTLSeconds       int `mapstructure:"cache_ttl_sec"`
    MaxRequestsPerMinute  int `mapstructure:"max_requests_per_minute"`
    MinRequestIntervalSec int `mapstructure:"min_request_interval_sec"`
    Burst                 int `mapstructure:"burst"`
}

type PortfolioConfig struct {
    DBPath string `mapstructure:"db_path"`
}

// Load reads configuration from path (optional) and ETFBOARD_* env vars.
// A missing file is not an error; defaults cover everything.
func Load(path string) (*Config, error) {
    v := viper.New()
    setDefaults(v)

    v.SetEnvPrefix("ETFBOARD")
    v.AutomaticEnv()

    if path != "" {
        v.SetConfigFile(path)
        if err := v.ReadInConfig(); err != nil {
            return nil, fmt.Errorf("read config file: %w", err)
        }
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return nil, fmt.Errorf("unmarshal config: %w", err)
    }
    return &cfg, nil
}

func setDefaults(v *viper.Viper) {
    v.SetDefault("server.port", "8080")
    v.SetDefault("server.request_timeout_sec", 10)

    v.SetDefault("basket.file", "./data/kodex200.json")
    v.SetDefault("basket.etf_code", "069500")
    v.SetDefault("basket.tiger_code", "102110")

    v.SetDefault("naver.polling_url", "https://polling.finance.naver.com/api/realtime")
    v.SetDefault("naver.chart_url", "https://api.stock.naver.com/chart/domestic/item")
    v.SetDefault("naver.referer", "https://fin.naver.com/")
    v.SetDefault("naver.batch_size", 100)
    v.SetDefault("naver.max_concurrency", 4)
    v.SetDefault("naver.timeout_sec", 7)

    v.SetDefault("chart.count", 100)
    v.SetDefault("chart.cache_ttl_sec", 30)
    v.SetDefault("chart.max_requests_per_minute", 60)
    v.SetDefault("chart.min_request_interval_sec", 0)
    v.SetDefault("chart.burst", 5)

    v.SetDefault("portfolio.db_path", "./data/portfolio.db")
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
    if c.Server.Port == "" {
        return fmt.Errorf("server.port is required")
    }
    if c.Server.RequestTimeoutSec < 1 {
        return fmt.Errorf("server.request_timeout_sec must be at least 1")
    }
    if c.Basket.File == "" {
        return fmt.Errorf("basket.file is required")
    }
    if len(c.Basket.EtfCode) != 6 || len(c.Basket.TigerCode) != 6 {
        return fmt.Errorf("basket etf codes must be 6 digits")
    }
    if c.Naver.PollingURL == "" || c.Naver.ChartURL == "" {
        return fmt.Errorf("naver.polling_url and naver.chart_url are required")
    }
    if c.Naver.BatchSize < 1 || c.Naver.BatchSize > 100 {
        return fmt.Errorf("naver.batch_size must be between 1 and 100")
    }
    if c.Naver.MaxConcurrency < 1 {
        return fmt.Errorf("naver.max_concurrency must be at least 1")
    }
    if c.Chart.Count < 1 {
        return fmt.Errorf("chart.count must be at least 1")
    }
    if c.Portfolio.DBPath == "" {
        return fmt.Errorf("portfolio.db_path is required")
    }
    return nil
}
