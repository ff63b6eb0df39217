// Package activation coordinates locating add-in files and enabling them in
// the office application.
package activation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
	"github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
)

// Poll defaults used when options leave them unset.
const (
	DefaultPollInterval = 250 * time.Millisecond
	DefaultPollTimeout  = 5 * time.Second
)

// ActivateOptions wires the dependencies of ActivateUseCase.
type ActivateOptions struct {
	Platform     addin.Platform
	Automation   ports.Automation
	Policy       addin.MatchPolicy
	PollInterval time.Duration
	PollTimeout  time.Duration
	Logger       ports.Logger
	Events       ports.EventPublisher
}

// ActivateUseCase ensures an add-in file is registered and installed.
type ActivateUseCase struct {
	platform     addin.Platform
	automation   ports.Automation
	policy       addin.MatchPolicy
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       ports.Logger
	events       ports.EventPublisher
}

// NewActivateUseCase constructs an ActivateUseCase.
func NewActivateUseCase(opts ActivateOptions) *ActivateUseCase {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	timeout := opts.PollTimeout
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	policy := opts.Policy
	if policy.Field == "" {
		policy.Field = addin.MatchName
	}
	return &ActivateUseCase{
		platform:     opts.Platform,
		automation:   opts.Automation,
		policy:       policy,
		pollInterval: interval,
		pollTimeout:  timeout,
		logger:       logging.OrNoOp(opts.Logger),
		events:       opts.Events,
	}
}

// Activate registers the add-in at path if needed, sets its installed flag
// and verifies it. The automation session is closed exactly once on every
// path, including a panic raised by the adapter.
func (u *ActivateUseCase) Activate(ctx context.Context, path string) (result addin.ActivationResult) {
	if !u.platform.Supported() || u.automation == nil {
		u.logger.Warn(ctx, "activation unsupported on this platform", "platform", string(u.platform))
		return addin.ActivationResult{
			Outcome: addin.OutcomeUnsupportedPlatform,
			Path:    path,
			Name:    addin.Candidate{Path: path}.Name(),
			Err:     addin.ErrUnsupportedPlatform,
		}
	}

	if _, err := os.Stat(path); err != nil {
		u.logger.Error(ctx, "add-in file is missing", "path", path, "error", err)
		res := addin.Failed(path, addin.ReasonFileMissing, err)
		publishEvent(ctx, u.events, u.logger, ports.EventActivationFailed, resultPayload(res))
		return res
	}

	logger := u.logger.With("path", path, "channel", u.automation.Channel())
	var session ports.AutomationSession

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "automation panicked", "panic", fmt.Sprint(r))
			result = addin.Failed(path, addin.ReasonAutomationPanicked, fmt.Errorf("automation panic: %v", r))
		}
		if session != nil {
			closeSession(ctx, logger, session)
		}
		if result.Succeeded() {
			logger.Info(ctx, "add-in activated")
			publishEvent(ctx, u.events, logger, ports.EventAddinActivated, resultPayload(result))
			return
		}
		logger.Error(ctx, "add-in activation failed", "reason", result.Reason, "error", result.Err)
		publishEvent(ctx, u.events, logger, ports.EventActivationFailed, resultPayload(result))
	}()

	opened, err := u.automation.Open(ctx)
	if err != nil {
		return failure(path, err)
	}
	session = opened

	logger.Debug(ctx, "automation session opened")
	publishEvent(ctx, u.events, logger, ports.EventActivationStarted, map[string]interface{}{
		"path":    path,
		"channel": u.automation.Channel(),
	})

	return u.activate(ctx, logger, session, path)
}

func (u *ActivateUseCase) activate(ctx context.Context, logger ports.Logger, session ports.AutomationSession, path string) addin.ActivationResult {
	entries, err := session.ListAddins(ctx)
	if err != nil {
		return failure(path, err)
	}

	entry, found := u.policy.FindEntry(entries, path)
	if !found {
		logger.Info(ctx, "add-in not registered, opening file", "registered", len(entries))
		if err := session.OpenFile(ctx, path); err != nil {
			return failure(path, err)
		}
		publishEvent(ctx, u.events, logger, ports.EventAddinRegistered, map[string]interface{}{
			"path": path,
			"name": addin.Candidate{Path: path}.Name(),
		})

		entry, found, err = u.waitForEntry(ctx, session, path)
		if err != nil {
			return failure(path, err)
		}
		if !found {
			return addin.Failed(path, addin.ReasonNotFoundAfterOpen, nil)
		}
	}

	logger.Debug(ctx, "setting installed flag", "name", entry.Name, "was_installed", entry.Installed)
	if err := session.SetInstalled(ctx, entry, true); err != nil {
		return failure(path, err)
	}

	entries, err = session.ListAddins(ctx)
	if err != nil {
		return failure(path, err)
	}
	verified, found := u.policy.FindEntry(entries, path)
	if !found || !verified.Installed {
		return addin.Failed(path, addin.ReasonFlagNotSet, nil)
	}

	return addin.Success(path)
}

// waitForEntry polls the add-in list every pollInterval until the entry
// shows up or pollTimeout elapses.
func (u *ActivateUseCase) waitForEntry(ctx context.Context, session ports.AutomationSession, path string) (addin.Entry, bool, error) {
	deadline := time.Now().Add(u.pollTimeout)
	ticker := time.NewTicker(u.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return addin.Entry{}, false, ctx.Err()
		case <-ticker.C:
		}

		entries, err := session.ListAddins(ctx)
		if err != nil {
			return addin.Entry{}, false, err
		}
		if entry, ok := u.policy.FindEntry(entries, path); ok {
			return entry, true, nil
		}
		if !time.Now().Before(deadline) {
			return addin.Entry{}, false, nil
		}
	}
}

func failure(path string, err error) addin.ActivationResult {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return addin.Failed(path, addin.ReasonCancelled, addin.NewError(addin.ErrCodeCancelled, "activation cancelled", err, nil))
	}
	return addin.Failed(path, err.Error(), addin.NewError(addin.ErrCodeActivationFailed, "automation call failed", err, map[string]interface{}{"path": path}))
}

func closeSession(ctx context.Context, logger ports.Logger, session ports.AutomationSession) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "automation panicked while closing", "panic", fmt.Sprint(r))
		}
	}()
	if err := session.Close(); err != nil {
		logger.Warn(ctx, "failed to close automation session", "error", err)
	}
}
