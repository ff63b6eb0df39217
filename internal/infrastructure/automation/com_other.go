//go:build !windows

package automation

import (
	"errors"

	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
	apperrors "github.com/alexisbeaulieu97/xlamctl/pkg/errors"
)

func newCOMAutomation(ports.Logger) (ports.Automation, error) {
	return nil, apperrors.NewAutomationError(ChannelCOM, "open_session", errors.New("COM automation is only available in windows builds"))
}
