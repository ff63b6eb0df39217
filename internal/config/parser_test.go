package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
	xlamerrors "github.com/alexisbeaulieu97/xlamctl/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	fullYAML := `addins_dir: /opt/office/addins
default_query: plantilla
extension: .XLAM
case_sensitive: true
match_field: full_name
poll_interval: 100ms
poll_timeout: 2s
language: en
log_level: debug
`

	integerMillis := `poll_interval: 500
poll_timeout: 1500
`

	unknownKey := `language: en
langauge: es
`

	brokenYAML := `poll_interval: [1, 2]
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "all keys are parsed",
			contents: fullYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, "/opt/office/addins", cfg.AddinsDir)
				require.Equal(t, "plantilla", cfg.DefaultQuery)
				require.Equal(t, ".XLAM", cfg.Extension)
				require.True(t, cfg.CaseSensitive)
				require.Equal(t, "full_name", cfg.MatchField)
				require.Equal(t, 100*time.Millisecond, cfg.PollInterval.Std())
				require.Equal(t, 2*time.Second, cfg.PollTimeout.Std())
				require.Equal(t, "en", cfg.Language)
				require.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name:     "empty document yields defaults",
			contents: "",
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, Default(), cfg)
			},
		},
		{
			name:     "integer durations are milliseconds",
			contents: integerMillis,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, 500*time.Millisecond, cfg.PollInterval.Std())
				require.Equal(t, 1500*time.Millisecond, cfg.PollTimeout.Std())
			},
		},
		{
			name:     "unknown keys are rejected with a line",
			contents: unknownKey,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Nil(t, cfg)
				var parseErr *xlamerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Equal(t, 2, parseErr.Line)
				require.Contains(t, parseErr.Message, "langauge")
			},
		},
		{
			name:     "malformed duration returns parse error",
			contents: brokenYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				var parseErr *xlamerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Equal(t, 1, parseErr.Line)
			},
		},
		{
			name:     "unparseable duration string",
			contents: "poll_timeout: soon\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				var parseErr *xlamerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Contains(t, parseErr.Message, "invalid duration")
			},
		},
		{
			name:     "unknown language fails validation",
			contents: "language: fr\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *xlamerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "language", validationErr.Field)
			},
		},
		{
			name:     "extension must start with a dot",
			contents: "extension: xlam\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *xlamerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "extension", validationErr.Field)
			},
		},
		{
			name:     "relative addins_dir is rejected",
			contents: "addins_dir: addins\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *xlamerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "addins_dir", validationErr.Field)
			},
		},
		{
			name:     "poll interval below the minimum",
			contents: "poll_interval: 1ms\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *xlamerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "poll_interval", validationErr.Field)
				require.Contains(t, validationErr.Message, "min_duration=10ms")
			},
		},
		{
			name:     "timeout shorter than interval",
			contents: "poll_interval: 2s\npoll_timeout: 1s\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *xlamerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "poll_timeout", validationErr.Field)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeTempConfig(t, tc.contents)
			cfg, err := ParseConfig(path)
			tc.assert(t, cfg, err)
		})
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.yaml")
	_, err := ParseConfig(path)

	var parseErr *xlamerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, path, parseErr.Path)
}

func TestParseConfigExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeTempConfig(t, "addins_dir: ~/AddIns\n")
	cfg, err := ParseConfig(path)

	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "AddIns"), cfg.AddinsDir)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	require.Equal(t, addin.DefaultExtension, cfg.Extension)
	require.Equal(t, "name", cfg.MatchField)
	require.Equal(t, DefaultPollInterval, cfg.PollInterval.Std())
	require.Equal(t, DefaultPollTimeout, cfg.PollTimeout.Std())
	require.Equal(t, "es", cfg.Language)
	require.Equal(t, "warn", cfg.LogLevel)
	require.NoError(t, ValidateConfig(cfg))
	require.Equal(t, addin.DefaultMatchPolicy(), cfg.MatchPolicy())
}

func TestValidateConfigNil(t *testing.T) {
	t.Parallel()

	var validationErr *xlamerrors.ValidationError
	require.ErrorAs(t, ValidateConfig(nil), &validationErr)
}

func TestDurationMarshalYAML(t *testing.T) {
	t.Parallel()

	out, err := Duration(1500 * time.Millisecond).MarshalYAML()
	require.NoError(t, err)
	require.Equal(t, "1.5s", out)
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
