package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	GraphQL    GraphQLConfig    `mapstructure:"graphql"`
	Compliance ComplianceConfig `mapstructure:"compliance"`
	Listings   ListingsConfig   `mapstructure:"listings"`
	NATS       NATSConfig       `mapstructure:"nats"`
}

// AppConfig represents application-specific configuration
type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	HTTPPort int    `mapstructure:"http_port"`
}

// GraphQLConfig represents the marketplace indexer endpoint configuration
type GraphQLConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ComplianceConfig represents the screening vendor configuration. APIKey is
// read-only after load and must never be written to logs or responses.
type ComplianceConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Chain   string        `mapstructure:"chain"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ListingsConfig represents active-listing query and refresh configuration
type ListingsConfig struct {
	PageSize        int           `mapstructure:"page_size"`
	OrderBy         []string      `mapstructure:"order_by"`
	StaleAfter      time.Duration `mapstructure:"stale_after"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// NATSConfig represents the screening-audit publisher configuration
type NATSConfig struct {
	URL               string        `mapstructure:"url"`
	SubjectPrefix     string        `mapstructure:"subject_prefix"`
	ConnectTimeout    time.Duration `mapstructure:"connect_timeout"`
	ReconnectAttempts int           `mapstructure:"reconnect_attempts"`
	ReconnectDelay    time.Duration `mapstructure:"reconnect_delay"`
	Enabled           bool          `mapstructure:"enabled"`
}

// Load loads configuration from environment variables and files
func Load() (*Config, error) {
	// Local development secrets live in .env; absence is fine.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/nft-market-gateway")

	// Environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("")

	// Map environment variables to nested config keys
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Default values
	setDefaults()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.http_port", 8080)

	// Indexer defaults
	viper.SetDefault("graphql.endpoint", "http://localhost:3001/graphql")
	viper.SetDefault("graphql.timeout", "15s")

	// Screening vendor defaults. The chain is a fixed operator setting; it is
	// never inferred from the screened address.
	viper.SetDefault("compliance.base_url", "https://api.circle.com")
	viper.SetDefault("compliance.chain", "ETH-SEPOLIA")
	viper.SetDefault("compliance.timeout", "15s")

	// Listings defaults
	viper.SetDefault("listings.page_size", 100)
	viper.SetDefault("listings.order_by", []string{"BLOCK_TIMESTAMP_DESC"})
	viper.SetDefault("listings.stale_after", "30s")
	viper.SetDefault("listings.refresh_interval", "60s")

	// NATS defaults
	viper.SetDefault("nats.url", "nats://localhost:4222")
	viper.SetDefault("nats.subject_prefix", "compliance")
	viper.SetDefault("nats.connect_timeout", "10s")
	viper.SetDefault("nats.reconnect_attempts", 5)
	viper.SetDefault("nats.reconnect_delay", "2s")
	viper.SetDefault("nats.enabled", false)

	// Bind env for the vendor credential and NATS URL
	viper.BindEnv("compliance.api_key", "CIRCLE_API_KEY")
	viper.BindEnv("nats.url", "NATS_URL")
}
