package config

import (
	"context"
	"errors"
	"os"
	"sort"

	cfgpkg "github.com/alexisbeaulieu97/xlamctl/internal/config"
	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
	apperrors "github.com/alexisbeaulieu97/xlamctl/pkg/errors"
)

// YAMLLoader reads the optional xlamctl configuration file.
type YAMLLoader struct {
	logger      ports.Logger
	defaultPath func() (string, error)
}

// NewYAMLLoader creates a loader resolving the default path from the user
// config directory.
func NewYAMLLoader(logger ports.Logger) *YAMLLoader {
	return &YAMLLoader{logger: logger, defaultPath: cfgpkg.DefaultPath}
}

// Load reads the configuration at path. An empty path selects the default
// location, where a missing file means defaults. A missing explicit file is
// a ConfigurationMissing error.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*cfgpkg.Config, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		resolved, err := l.defaultPath()
		if err != nil {
			l.logDebug(ctx, "no user config directory, using defaults", map[string]interface{}{"error": err.Error()})
			return cfgpkg.Default(), nil
		}
		path = resolved
	}

	l.logDebug(ctx, "loading configuration", map[string]interface{}{"path": path, "explicit": explicit})

	info, err := os.Stat(path)
	switch {
	case err != nil && errors.Is(err, os.ErrNotExist) && !explicit:
		l.logDebug(ctx, "configuration file absent, using defaults", map[string]interface{}{"path": path})
		return cfgpkg.Default(), nil
	case err != nil:
		l.logError(ctx, "configuration path stat failed", err, map[string]interface{}{"path": path})
		return nil, convertError(err, path)
	case info.IsDir():
		return nil, domainError(addin.ErrCodeConfigurationMissing, "configuration path is a directory", nil, map[string]interface{}{"path": path})
	}

	cfg, err := cfgpkg.ParseConfig(path)
	if err != nil {
		l.logError(ctx, "failed to parse configuration", err, map[string]interface{}{"path": path})
		return nil, convertError(err, path)
	}

	l.logDebug(ctx, "configuration loaded", map[string]interface{}{
		"path":          path,
		"addins_dir":    cfg.AddinsDir,
		"match_field":   cfg.MatchField,
		"poll_interval": cfg.PollInterval.Std(),
		"poll_timeout":  cfg.PollTimeout.Std(),
	})
	return cfg, nil
}

func convertError(err error, path string) error {
	if err == nil {
		return nil
	}
	var parseErr *apperrors.ParseError
	if errors.As(err, &parseErr) {
		if errors.Is(parseErr.Err, os.ErrNotExist) {
			return domainError(addin.ErrCodeConfigurationMissing, "configuration not found", parseErr.Err, map[string]interface{}{"path": path})
		}
		return domainError(addin.ErrCodeValidation, "invalid configuration syntax", err, map[string]interface{}{"path": parseErr.Path, "line": parseErr.Line})
	}
	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		context := map[string]interface{}{"path": path}
		if valErr.Field != "" {
			context["field"] = valErr.Field
		}
		return domainError(addin.ErrCodeValidation, valErr.Message, err, context)
	}
	if errors.Is(err, os.ErrNotExist) {
		return domainError(addin.ErrCodeConfigurationMissing, "configuration not found", err, map[string]interface{}{"path": path})
	}
	return domainError(addin.ErrCodeInternal, "configuration load failed", err, map[string]interface{}{"path": path})
}

func contextCheck(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return domainError(addin.ErrCodeCancelled, "operation cancelled", err, nil)
	}
	return nil
}

func domainError(code addin.ErrorCode, message string, cause error, ctx map[string]interface{}) *addin.DomainError {
	return addin.NewError(code, message, cause, ctx)
}

func (l *YAMLLoader) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(ctx, msg, flattenFields(fields)...)
}

func (l *YAMLLoader) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	payload := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["error"] = err
	l.logger.Error(ctx, msg, flattenFields(payload)...)
}

func flattenFields(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}

var _ ports.ConfigLoader = (*YAMLLoader)(nil)
