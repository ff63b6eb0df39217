package ports

import (
	"context"

	"github.com/alexisbeaulieu97/xlamctl/internal/config"
)

// ConfigLoader loads the optional xlamctl configuration. Implementations
// respect context cancellation and translate failures into addin error codes:
//   - an explicit path that does not exist → ErrCodeConfigurationMissing
//   - YAML syntax or schema failures → ErrCodeValidation
//   - context cancellation → ErrCodeCancelled
//
// An empty path selects the per-user default location, where a missing file
// yields the defaults instead of an error.
type ConfigLoader interface {
	Load(ctx context.Context, path string) (*config.Config, error)
}
