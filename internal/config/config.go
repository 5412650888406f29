// Package config loads the loopinfo configuration from file, environment and
// command line flags.
package config

import (
	"regexp"
	"strings"

	"github.com/nickng/loopinfo/report"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "LOOPINFO"

// Name of the configuration file looked up in the working directory.
const Name = ".loopinfo"

// Function selection modes.
const (
	AllFuncs       = "all"
	ReachableFuncs = "reachable"
)

var callGraphs = []string{"static", "cha", "rta"}

// ErrInvalid is the error for an invalid configuration value.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the loopinfo configuration.
type Config struct {
	Format  string `mapstructure:"format"`
	Output  string `mapstructure:"output"`
	Log     string `mapstructure:"log"`
	Color   bool   `mapstructure:"color"`
	Summary bool   `mapstructure:"summary"`

	Functions string `mapstructure:"functions"`
	CallGraph string `mapstructure:"callgraph"`
	Filter    string `mapstructure:"filter"`
	Tests     bool   `mapstructure:"tests"`

	Strict         bool     `mapstructure:"strict"`
	Workers        int      `mapstructure:"workers"`
	StartID        int      `mapstructure:"start_id"`
	AtomicPackages []string `mapstructure:"atomic_packages"`
}

// Defaults returns the default configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"format":          report.Text,
		"output":          "",
		"log":             "",
		"color":           false,
		"summary":         false,
		"functions":       AllFuncs,
		"callgraph":       "static",
		"filter":          "",
		"tests":           false,
		"strict":          false,
		"workers":         1,
		"start_id":        0,
		"atomic_packages": []string{},
	}
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration of v. If path is empty, the optional
// configuration file in the working directory is used.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "cannot read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate returns an error for unknown enumeration values, a negative worker
// count or a bad filter.
func (c *Config) Validate() error {
	if !oneOf(c.Format, report.Formats) {
		return errors.Wrapf(ErrInvalid, "format %q", c.Format)
	}
	if !oneOf(c.Functions, []string{AllFuncs, ReachableFuncs}) {
		return errors.Wrapf(ErrInvalid, "functions %q", c.Functions)
	}
	if !oneOf(c.CallGraph, callGraphs) {
		return errors.Wrapf(ErrInvalid, "callgraph %q", c.CallGraph)
	}
	if c.Workers < 1 {
		return errors.Wrapf(ErrInvalid, "workers %d", c.Workers)
	}
	if c.StartID < 0 {
		return errors.Wrapf(ErrInvalid, "start_id %d", c.StartID)
	}
	if _, err := regexp.Compile(c.Filter); err != nil {
		return errors.Wrapf(ErrInvalid, "filter: %v", err)
	}
	return nil
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
