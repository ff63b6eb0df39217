package ports

import (
	"context"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
)

// Automation opens sessions against the office application through the
// host's automation channel (COM, AppleScript). One adapter exists per
// supported platform.
type Automation interface {
	// Channel names the mechanism, e.g. "com" or "applescript".
	Channel() string

	// Open launches or attaches to the application as a background process.
	// The returned session must be closed by the caller.
	Open(ctx context.Context) (AutomationSession, error)
}

// AutomationSession is the narrow capability set the activator relies on.
// Implementations translate the application's loosely typed object model
// into these calls and wrap failures in pkg/errors.AutomationError.
type AutomationSession interface {
	// ListAddins returns every add-in currently registered in the application.
	ListAddins(ctx context.Context) ([]addin.Entry, error)

	// SetInstalled flips the installed flag of the add-in identified by entry.
	SetInstalled(ctx context.Context, entry addin.Entry, installed bool) error

	// OpenFile asks the application to open or register the file at path.
	OpenFile(ctx context.Context, path string) error

	// Close releases the session and any application process it started.
	// It is called exactly once.
	Close() error
}

// AddinLocator finds add-in files on disk.
type AddinLocator interface {
	// AddinsDirectory resolves the directory searched by Locate.
	AddinsDirectory() (string, error)

	// Locate returns the newest add-in file whose name contains query. The
	// error carries an addin.ErrorCode explaining an empty result.
	Locate(ctx context.Context, query string) (addin.Candidate, error)
}
