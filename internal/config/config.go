// Package config loads PaperLens settings from defaults, a YAML file, PAPERLENS_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/csheth/paperlens/internal/formatter"
)

const (
	EnvPrefix  = "PAPERLENS"
	configName = "paperlens"
)

// Config holds the complete application configuration
type Config struct {
	Backend  BackendConfig  `mapstructure:"backend" yaml:"backend"`
	Progress ProgressConfig `mapstructure:"progress" yaml:"progress"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Inbox    InboxConfig    `mapstructure:"inbox" yaml:"inbox"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// BackendConfig configures the analysis service connection
type BackendConfig struct {
	URL           string        `mapstructure:"url" yaml:"url"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`               // analysis request timeout
	ReportTimeout time.Duration `mapstructure:"report_timeout" yaml:"report_timeout"` // report download timeout
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// ProgressConfig tunes the simulated progress bar
type ProgressConfig struct {
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
	Step     int           `mapstructure:"step" yaml:"step"`
	Ceiling  int           `mapstructure:"ceiling" yaml:"ceiling"`
}

// OutputConfig configures where exports go and how results look
type OutputConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Format string `mapstructure:"format" yaml:"format"` // text|json|yaml|markdown
	Theme  string `mapstructure:"theme" yaml:"theme"`   // dark|light
}

// InboxConfig configures the watched drop folder
type InboxConfig struct {
	Dir      string        `mapstructure:"dir" yaml:"dir"`
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:           "http://localhost:8000",
			Timeout:       5 * time.Minute,
			ReportTimeout: 2 * time.Minute,
			UserAgent:     "paperlens",
		},
		Progress: ProgressConfig{
			Interval: 500 * time.Millisecond,
			Step:     10,
			Ceiling:  90,
		},
		Output: OutputConfig{
			Dir:    ".",
			Format: "text",
			Theme:  "dark",
		},
		Inbox: InboxConfig{
			Debounce: 400 * time.Millisecond,
		},
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"backend":    "backend.url",
	"timeout":    "backend.timeout",
	"output-dir": "output.dir",
	"format":     "output.format",
	"theme":      "output.theme",
	"inbox":      "inbox.dir",
	"debug-log":  "log.file",
}

// Loader resolves configuration through viper.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a loader with the defaults registered.
func NewLoader() *Loader {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("backend.url", d.Backend.URL)
	v.SetDefault("backend.timeout", d.Backend.Timeout)
	v.SetDefault("backend.report_timeout", d.Backend.ReportTimeout)
	v.SetDefault("backend.user_agent", d.Backend.UserAgent)
	v.SetDefault("progress.interval", d.Progress.Interval)
	v.SetDefault("progress.step", d.Progress.Step)
	v.SetDefault("progress.ceiling", d.Progress.Ceiling)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.theme", d.Output.Theme)
	v.SetDefault("inbox.dir", d.Inbox.Dir)
	v.SetDefault("inbox.debounce", d.Inbox.Debounce)
	v.SetDefault("log.file", d.Log.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// BindFlags lets any of the known flags present in fs override file and env values.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := l.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file and returns the validated result. An explicit path must
// exist; otherwise ./paperlens.yaml and ~/.config/paperlens/config.yaml are tried.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName(configName)
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Output.Dir = expandPath(cfg.Output.Dir)
	cfg.Inbox.Dir = expandPath(cfg.Inbox.Dir)
	cfg.Log.File = expandPath(cfg.Log.File)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FileUsed reports the config file that was read, if any.
func (l *Loader) FileUsed() string {
	return l.v.ConfigFileUsed()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateBackendConfig(); err != nil {
		return err
	}
	if err := c.validateProgressConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if c.Inbox.Debounce < 0 {
		return fmt.Errorf("inbox debounce must be non-negative")
	}
	return nil
}

func (c *Config) validateBackendConfig() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend url: %q (must be an http or https URL)", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be greater than 0")
	}
	if c.Backend.ReportTimeout <= 0 {
		return fmt.Errorf("backend report_timeout must be greater than 0")
	}
	return nil
}

func (c *Config) validateProgressConfig() error {
	p := c.Progress
	if p.Interval <= 0 {
		return fmt.Errorf("progress interval must be greater than 0")
	}
	if p.Step <= 0 || p.Step > p.Ceiling {
		return fmt.Errorf("progress step must be between 1 and the ceiling (%d)", p.Ceiling)
	}
	if p.Ceiling >= 100 {
		return fmt.Errorf("progress ceiling must be below 100")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if _, err := formatter.New(c.Output.Format); err != nil || c.Output.Format == "" {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(formatter.Formats, ", "))
	}
	switch c.Output.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid theme: %s (must be one of: dark, light)", c.Output.Theme)
	}
	return nil
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
