package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	xlamerrors "github.com/alexisbeaulieu97/xlamctl/pkg/errors"
)

// AppName names the per-user configuration directory.
const AppName = "xlamctl"

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// DefaultPath returns <UserConfigDir>/xlamctl/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// ParseConfig loads a configuration file from disk, applies defaults,
// validates it, and returns the resulting model.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xlamerrors.NewParseError(path, 0, err)
	}

	cfg, err := decode(data)
	if err != nil {
		return nil, xlamerrors.NewParseError(path, extractLine(err), err)
	}

	cfg.applyDefaults()
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	if err := cfg.expandHome(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decode(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) expandHome() error {
	if !strings.HasPrefix(c.AddinsDir, "~/") {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return xlamerrors.NewValidationError("addins_dir", "cannot expand ~ without a home directory", err)
	}
	c.AddinsDir = filepath.Join(home, strings.TrimPrefix(c.AddinsDir, "~/"))
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
