// Package automation drives the office application through the host's
// automation channel.
package automation

import (
	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
	"github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
)

// Channel names.
const (
	ChannelCOM         = "com"
	ChannelAppleScript = "applescript"
)

// New selects the automation adapter for platform. Unsupported platforms get
// an ErrCodeUnsupportedPlatform error and no adapter.
func New(platform addin.Platform, logger ports.Logger) (ports.Automation, error) {
	logger = logging.OrNoOp(logger).With("component", "automation")
	switch platform {
	case addin.PlatformWindows:
		return newCOMAutomation(logger)
	case addin.PlatformDarwin:
		return NewAppleScript(OsascriptRunner{}, logger), nil
	default:
		return nil, addin.NewError(addin.ErrCodeUnsupportedPlatform, "no automation channel for platform", nil, map[string]interface{}{"platform": string(platform)})
	}
}
