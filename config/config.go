// Package config loads the relay's configuration: a YAML file overridden
// by command-line flags, the same two-layer approach used throughout the
// relay's process wiring (config.NewConfig() / cfg.Parse()).
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/ilp-connector/relay/routing"
)

// RouteConfig is one entry of the routes list (spec §6.4).
type RouteConfig struct {
	Prefix   string `yaml:"prefix"`
	Endpoint string `yaml:"endpoint"`
	Auth     string `yaml:"auth,omitempty"`
}

// Config holds every recognized configuration option.
type Config struct {
	ConfigFile string `yaml:"-"`

	// Relay core (spec §6.4).
	ILPAddress string        `yaml:"ilp-address"`
	AuthTokens []string      `yaml:"auth-tokens"`
	Routes     []RouteConfig `yaml:"routes"`
	MaxTimeout time.Duration `yaml:"max-timeout"`
	BindAddress string       `yaml:"bind-address"`

	// Admin API / SPSP (SPEC_FULL.md).
	AdminBindAddress string `yaml:"admin-bind-address"`

	// Metrics.
	MetricsBindAddress string `yaml:"metrics-bind-address"`

	// Logging.
	LogLevel string `yaml:"log-level"`

	flags *flag.FlagSet
}

// NewConfig returns a Config seeded with defaults, matching the defaults
// named in spec.md §6.4.
func NewConfig() *Config {
	return &Config{
		MaxTimeout:         60 * time.Second,
		BindAddress:        ":7770",
		AdminBindAddress:   ":7771",
		MetricsBindAddress: ":9090",
		LogLevel:           "info",
		flags:              flag.NewFlagSet("ilprelay", flag.ContinueOnError),
	}
}

// Parse reads -config (a YAML file) if given, then applies any
// command-line flag overrides. Flags take precedence over file values,
// which take precedence over the constructor's defaults.
func (c *Config) Parse() error {
	var (
		configFile  string
		bindAddr    string
		adminAddr   string
		metricsAddr string
		address     string
		maxTimeout  time.Duration
		logLevel    string
	)

	c.flags.StringVar(&configFile, "config", "", "path to a YAML config file")
	c.flags.StringVar(&bindAddr, "bind-address", "", "ILP-over-HTTP listen address")
	c.flags.StringVar(&adminAddr, "admin-bind-address", "", "admin API listen address")
	c.flags.StringVar(&metricsAddr, "metrics-bind-address", "", "metrics listen address")
	c.flags.StringVar(&address, "ilp-address", "", "this node's ILP address")
	c.flags.DurationVar(&maxTimeout, "max-timeout", 0, "upper bound on the outgoing deadline")
	c.flags.StringVar(&logLevel, "log-level", "", "logrus level name")

	if err := c.flags.Parse(os.Args[1:]); err != nil {
		return fmt.Errorf("config: parsing flags: %w", err)
	}

	if configFile != "" {
		c.ConfigFile = configFile
		if err := c.loadFile(configFile); err != nil {
			return err
		}
	}

	if bindAddr != "" {
		c.BindAddress = bindAddr
	}
	if adminAddr != "" {
		c.AdminBindAddress = adminAddr
	}
	if metricsAddr != "" {
		c.MetricsBindAddress = metricsAddr
	}
	if address != "" {
		c.ILPAddress = address
	}
	if maxTimeout != 0 {
		c.MaxTimeout = maxTimeout
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}

	return c.validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.ILPAddress == "" {
		return fmt.Errorf("config: ilp-address is required")
	}
	if len(c.AuthTokens) == 0 {
		return fmt.Errorf("config: auth-tokens must have at least one entry")
	}
	return nil
}

// ApplicationLogLevel parses LogLevel into a logrus.Level, defaulting to
// InfoLevel on an unrecognized name.
func (c *Config) ApplicationLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// ToRoutes converts the configured route list into routing.Route values,
// preserving configuration order (spec §3: ordering is authoritative).
func (c *Config) ToRoutes() []routing.Route {
	routes := make([]routing.Route, len(c.Routes))
	for i, rc := range c.Routes {
		routes[i] = routing.Route{
			TargetPrefix: []byte(rc.Prefix),
			NextHop: routing.NextHop{
				Endpoint: rc.Endpoint,
				Auth:     rc.Auth,
			},
		}
	}
	return routes
}
