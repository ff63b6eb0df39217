package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
)

// Config represents the optional xlamctl configuration document.
type Config struct {
	AddinsDir     string   `yaml:"addins_dir,omitempty" validate:"omitempty,abs_dir"`
	DefaultQuery  string   `yaml:"default_query,omitempty" validate:"omitempty,max=255"`
	Extension     string   `yaml:"extension,omitempty" validate:"omitempty,file_ext"`
	CaseSensitive bool     `yaml:"case_sensitive,omitempty"`
	MatchField    string   `yaml:"match_field,omitempty" validate:"omitempty,oneof=name full_name"`
	PollInterval  Duration `yaml:"poll_interval,omitempty" validate:"min_duration=10ms,max_duration=10s"`
	PollTimeout   Duration `yaml:"poll_timeout,omitempty" validate:"min_duration=100ms,max_duration=5m"`
	Language      string   `yaml:"language,omitempty" validate:"omitempty,oneof=es en"`
	LogLevel      string   `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error disabled"`
}

// Defaults used when a key is absent.
const (
	DefaultPollInterval = 250 * time.Millisecond
	DefaultPollTimeout  = 5 * time.Second
	DefaultLanguage     = "es"
	DefaultLogLevel     = "warn"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Extension == "" {
		c.Extension = addin.DefaultExtension
	}
	if c.MatchField == "" {
		c.MatchField = string(addin.MatchName)
	}
	if c.PollInterval == 0 {
		c.PollInterval = Duration(DefaultPollInterval)
	}
	if c.PollTimeout == 0 {
		c.PollTimeout = Duration(DefaultPollTimeout)
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// MatchPolicy converts the matching keys into the domain policy.
func (c *Config) MatchPolicy() addin.MatchPolicy {
	return addin.MatchPolicy{
		CaseSensitive: c.CaseSensitive,
		Field:         addin.MatchField(c.MatchField),
		Extension:     c.Extension,
	}
}

// Duration is a time.Duration written as a Go duration string ("250ms", "5s")
// in YAML. Bare integers are read as milliseconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML parses duration strings and integer milliseconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	if value.Tag == "!!int" {
		var ms int64
		if err := value.Decode(&ms); err != nil {
			return err
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", value.Line, value.Value)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration in its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
