package activation

import (
	"context"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
	"github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
)

// LocateUseCase finds the add-in file for a query.
type LocateUseCase struct {
	locator ports.AddinLocator
	logger  ports.Logger
	events  ports.EventPublisher
}

// NewLocateUseCase constructs a LocateUseCase.
func NewLocateUseCase(locator ports.AddinLocator, logger ports.Logger, events ports.EventPublisher) *LocateUseCase {
	return &LocateUseCase{
		locator: locator,
		logger:  logging.OrNoOp(logger),
		events:  events,
	}
}

// Locate returns the newest matching add-in file.
func (u *LocateUseCase) Locate(ctx context.Context, query string) (addin.Candidate, error) {
	candidate, err := u.locator.Locate(ctx, query)
	if err != nil {
		u.logger.Info(ctx, "no add-in located", "query", query, "code", string(addin.CodeOf(err)), "error", err)
		return addin.Candidate{}, err
	}

	u.logger.Info(ctx, "add-in located", "query", query, "path", candidate.Path)
	publishEvent(ctx, u.events, u.logger, ports.EventAddinLocated, map[string]interface{}{
		"query":   query,
		"path":    candidate.Path,
		"created": candidate.Created,
	})
	return candidate, nil
}

// Directory returns the directory searched by Locate.
func (u *LocateUseCase) Directory() (string, error) {
	return u.locator.AddinsDirectory()
}

// EnableUseCase runs the full flow: locate, then activate.
type EnableUseCase struct {
	locate   *LocateUseCase
	activate *ActivateUseCase
}

// NewEnableUseCase composes the locate and activate use cases.
func NewEnableUseCase(locate *LocateUseCase, activate *ActivateUseCase) *EnableUseCase {
	return &EnableUseCase{locate: locate, activate: activate}
}

// Enable locates the newest add-in matching query and activates it.
func (u *EnableUseCase) Enable(ctx context.Context, query string) addin.ActivationResult {
	candidate, err := u.locate.Locate(ctx, query)
	if err != nil {
		return addin.ResultFromError(err)
	}
	return u.activate.Activate(ctx, candidate.Path)
}
