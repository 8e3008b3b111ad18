package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Bun        BunConfig
	Auth       Auth
	Federation Federation
	LoggerMode LoggerMode
}

type Server struct {
	Port        string
	Environment string
	TLSCertFile string
	TLSKeyFile  string
}

type BunConfig struct {
	DSN string
}

type LoggerMode struct {
	Development bool
	Prod        bool
	Level       string
}

type Auth struct {
	// Bearer tokens are opaque; login itself is handled by an external service.
	TokenHashSecret string
}

// TrustMode controls first-contact behavior of the discovery resolver.
type TrustMode string

const (
	TrustModeTOFU   TrustMode = "tofu"
	TrustModeStrict TrustMode = "strict"
)

type Federation struct {
	// Host is this instance's public hostname, the host part of local handles.
	Host string

	TrustMode TrustMode

	// AllowedHosts, when non-empty, is an exact allow-list of remote hosts.
	AllowedHosts []string

	// AllowPrivateNetworks permits outbound federation to private, loopback
	// and link-local addresses.
	AllowPrivateNetworks bool

	KeyFile string

	RequestTimeout    time.Duration
	DiscoveryCacheTTL time.Duration
	KeyCacheTTL       time.Duration
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		slog.Error("Unable to unmarshal config", "err", err)
		return nil, err
	}
	applyDefaults(v, &c)
	return &c, nil
}

func applyDefaults(v *viper.Viper, c *Config) {
	if c.Federation.TrustMode == "" {
		c.Federation.TrustMode = TrustModeTOFU
	}
	if c.Federation.RequestTimeout == 0 {
		c.Federation.RequestTimeout = 10 * time.Second
	}
	if c.Federation.DiscoveryCacheTTL == 0 {
		c.Federation.DiscoveryCacheTTL = 10 * time.Minute
	}
	if c.Federation.KeyCacheTTL == 0 {
		c.Federation.KeyCacheTTL = 5 * time.Minute
	}
	if c.Federation.KeyFile == "" {
		c.Federation.KeyFile = "courier_signing_key.json"
	}
	if keyFile := os.Getenv("COURIER_KEY_FILE"); keyFile != "" {
		c.Federation.KeyFile = keyFile
	}
	// Private targets stay reachable outside production unless pinned down
	// explicitly in the config file.
	if !v.IsSet("federation.allowprivatenetworks") && !c.IsProduction() {
		c.Federation.AllowPrivateNetworks = true
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
