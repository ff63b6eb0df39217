// Package locator finds add-in files in the Office add-ins directory.
package locator

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
	"github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
)

// Options configures a Locator.
type Options struct {
	Env Environment
	// Dir overrides the platform directory when set.
	Dir          string
	Policy       addin.MatchPolicy
	CreationTime CreationTimeFunc
	Logger       ports.Logger
}

// Locator implements ports.AddinLocator on the local filesystem.
type Locator struct {
	env          Environment
	dir          string
	policy       addin.MatchPolicy
	creationTime CreationTimeFunc
	logger       ports.Logger
}

// New constructs a Locator. Zero-valued options fall back to the host
// environment, the default match policy and filesystem creation times.
func New(opts Options) *Locator {
	env := opts.Env
	if env.GOOS == "" {
		env = HostEnvironment()
	}
	policy := opts.Policy
	if policy.Field == "" {
		policy.Field = addin.MatchName
	}
	if policy.Extension == "" {
		policy.Extension = addin.DefaultExtension
	}
	creationTime := opts.CreationTime
	if creationTime == nil {
		creationTime = CreationTime
	}
	return &Locator{
		env:          env,
		dir:          opts.Dir,
		policy:       policy,
		creationTime: creationTime,
		logger:       logging.OrNoOp(opts.Logger).With("component", "locator"),
	}
}

// AddinsDirectory returns the configured override or the platform directory.
func (l *Locator) AddinsDirectory() (string, error) {
	if l.dir != "" {
		return l.dir, nil
	}
	return ResolveAddinsDirectory(l.env)
}

// Locate returns the most recently created add-in file whose name contains
// query. An empty query matches every add-in file.
func (l *Locator) Locate(ctx context.Context, query string) (addin.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return addin.Candidate{}, addin.NewError(addin.ErrCodeCancelled, "locate cancelled", err, nil)
	}

	dir, err := l.AddinsDirectory()
	if err != nil {
		return addin.Candidate{}, err
	}

	l.logger.Debug(ctx, "scanning add-ins directory", "dir", dir, "query", query)

	entries, err := os.ReadDir(dir)
	if err != nil {
		message := "add-ins directory is unreadable"
		if errors.Is(err, fs.ErrNotExist) {
			message = "add-ins directory does not exist"
		}
		l.logger.Debug(ctx, message, "dir", dir, "error", err)
		return addin.Candidate{}, addin.NewError(addin.ErrCodeNotFound, message, err, map[string]interface{}{"dir": dir, "query": query})
	}

	candidates := make([]addin.Candidate, 0, len(entries))
	for _, entry := range entries {
		if !l.policy.MatchesFile(entry.Name(), query) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, ok := regularFileInfo(path, entry)
		if !ok {
			continue
		}
		candidates = append(candidates, addin.Candidate{Path: path, Created: l.creationTime(path, info)})
	}

	best, ok := newest(candidates)
	if !ok {
		return addin.Candidate{}, addin.NewError(addin.ErrCodeNotFound, "no matching add-in", nil, map[string]interface{}{"dir": dir, "query": query})
	}

	l.logger.Debug(ctx, "add-in candidate selected", "path", best.Path, "created", best.Created, "matches", len(candidates))
	return best, nil
}

// FindAddin is Locate without the failure reason.
func (l *Locator) FindAddin(ctx context.Context, query string) (string, bool) {
	candidate, err := l.Locate(ctx, query)
	if err != nil {
		return "", false
	}
	return candidate.Path, true
}

// newest returns the candidate with the greatest creation time. Ties keep
// the earliest candidate.
func newest(candidates []addin.Candidate) (addin.Candidate, bool) {
	if len(candidates) == 0 {
		return addin.Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Created.After(best.Created) {
			best = c
		}
	}
	return best, true
}

func regularFileInfo(path string, entry fs.DirEntry) (fs.FileInfo, bool) {
	info, err := entry.Info()
	if err != nil {
		return nil, false
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
		if err != nil {
			return nil, false
		}
	}
	return info, info.Mode().IsRegular()
}

var _ ports.AddinLocator = (*Locator)(nil)
