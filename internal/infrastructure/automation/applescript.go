package automation

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
	"github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/xlamctl/internal/internalexec"
	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
	apperrors "github.com/alexisbeaulieu97/xlamctl/pkg/errors"
)

// ExcelApplication is the AppleScript name of Excel for Mac.
const ExcelApplication = "Microsoft Excel"

// ScriptRunner executes an AppleScript program and returns what it printed.
type ScriptRunner interface {
	Run(ctx context.Context, script string) (string, error)
}

// OsascriptRunner runs scripts with /usr/bin/osascript, feeding the program
// on stdin.
type OsascriptRunner struct {
	// Path defaults to "osascript".
	Path string
}

// Run implements ScriptRunner.
func (r OsascriptRunner) Run(ctx context.Context, script string) (string, error) {
	path := r.Path
	if path == "" {
		path = "osascript"
	}
	cmd := exec.CommandContext(ctx, path, "-")
	cmd.Stdin = strings.NewReader(script)

	res, err := internalexec.Run(cmd)
	if err != nil {
		msg := "osascript failed"
		if res.ExitCode > 0 {
			msg = fmt.Sprintf("osascript failed (exit code %d)", res.ExitCode)
		}
		if out := internalexec.PrimaryOutput(res); out != "" {
			return res.Stdout, fmt.Errorf("%s: %s: %w", msg, out, err)
		}
		return res.Stdout, fmt.Errorf("%s: %w", msg, err)
	}
	return res.Stdout, nil
}

// AppleScript implements ports.Automation for Excel on macOS.
type AppleScript struct {
	runner ScriptRunner
	app    string
	logger ports.Logger
}

// NewAppleScript creates the macOS adapter.
func NewAppleScript(runner ScriptRunner, logger ports.Logger) *AppleScript {
	return &AppleScript{
		runner: runner,
		app:    ExcelApplication,
		logger: logging.OrNoOp(logger),
	}
}

// Channel implements ports.Automation.
func (a *AppleScript) Channel() string { return ChannelAppleScript }

// Open records whether Excel is already running and launches it in the
// background when it is not.
func (a *AppleScript) Open(ctx context.Context) (ports.AutomationSession, error) {
	out, err := a.runner.Run(ctx, fmt.Sprintf("return application %s is running", quote(a.app)))
	if err != nil {
		return nil, apperrors.NewAutomationError(ChannelAppleScript, "open_session", err)
	}
	running := strings.EqualFold(strings.TrimSpace(out), "true")

	if !running {
		if _, err := a.runner.Run(ctx, fmt.Sprintf("tell application %s to launch", quote(a.app))); err != nil {
			return nil, apperrors.NewAutomationError(ChannelAppleScript, "open_session", err)
		}
	}

	a.logger.Debug(ctx, "applescript session opened", "already_running", running)
	return &appleScriptSession{adapter: a, launched: !running}, nil
}

type appleScriptSession struct {
	adapter  *AppleScript
	launched bool
	closed   bool
}

const listAddinsScript = `tell application %s
	set output to ""
	repeat with a in add ins
		set output to output & (name of a) & tab & (full name of a) & tab & (installed of a as string) & linefeed
	end repeat
	return output
end tell`

func (s *appleScriptSession) ListAddins(ctx context.Context) ([]addin.Entry, error) {
	if err := s.usable(); err != nil {
		return nil, apperrors.NewAutomationError(ChannelAppleScript, "list_addins", err)
	}
	out, err := s.adapter.runner.Run(ctx, fmt.Sprintf(listAddinsScript, quote(s.adapter.app)))
	if err != nil {
		return nil, apperrors.NewAutomationError(ChannelAppleScript, "list_addins", err)
	}
	entries, err := parseAddinList(out)
	if err != nil {
		return nil, apperrors.NewAutomationError(ChannelAppleScript, "list_addins", err)
	}
	return entries, nil
}

func (s *appleScriptSession) SetInstalled(ctx context.Context, entry addin.Entry, installed bool) error {
	if err := s.usable(); err != nil {
		return apperrors.NewAutomationError(ChannelAppleScript, "set_installed", err)
	}
	script := fmt.Sprintf("tell application %s to set installed of %s to %t", quote(s.adapter.app), addinReference(entry), installed)
	if _, err := s.adapter.runner.Run(ctx, script); err != nil {
		return apperrors.NewAutomationError(ChannelAppleScript, "set_installed", err)
	}
	s.adapter.logger.Debug(ctx, "applescript add-in flag set", "addin", entryLabel(entry), "installed", installed)
	return nil
}

// addinReference selects the add-in by full name when known. A by-name
// reference resolves to the first add-in with that name.
func addinReference(entry addin.Entry) string {
	if entry.FullName != "" {
		return fmt.Sprintf("(first add in whose full name is %s)", quote(entry.FullName))
	}
	return "add in " + quote(entry.Name)
}

func (s *appleScriptSession) OpenFile(ctx context.Context, path string) error {
	if err := s.usable(); err != nil {
		return apperrors.NewAutomationError(ChannelAppleScript, "open_file", err)
	}
	script := fmt.Sprintf("tell application %s to open (POSIX file %s)", quote(s.adapter.app), quote(path))
	if _, err := s.adapter.runner.Run(ctx, script); err != nil {
		return apperrors.NewAutomationError(ChannelAppleScript, "open_file", err)
	}
	return nil
}

// quitTimeout bounds the quit script so a stuck osascript cannot hold the
// CLI after the activation finished or was interrupted.
const quitTimeout = 10 * time.Second

// Close quits Excel only when this session launched it.
func (s *appleScriptSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.launched {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), quitTimeout)
	defer cancel()
	script := fmt.Sprintf("tell application %s to quit saving no", quote(s.adapter.app))
	if _, err := s.adapter.runner.Run(ctx, script); err != nil {
		return apperrors.NewAutomationError(ChannelAppleScript, "close_session", err)
	}
	return nil
}

func (s *appleScriptSession) usable() error {
	if s.closed {
		return errSessionClosed
	}
	return nil
}

var errSessionClosed = errors.New("session is closed")

// quote renders s as an AppleScript string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// parseAddinList reads the tab-separated "name, full name, installed" lines
// produced by listAddinsScript.
func parseAddinList(out string) ([]addin.Entry, error) {
	var entries []addin.Entry
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 tab-separated fields, got %d", i+1, len(fields))
		}
		installed, err := parseBool(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		entries = append(entries, addin.Entry{
			Name:      fields[0],
			FullName:  fields[1],
			Installed: installed,
		})
	}
	return entries, nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid installed flag %q", value)
	}
}

var (
	_ ports.Automation        = (*AppleScript)(nil)
	_ ports.AutomationSession = (*appleScriptSession)(nil)
)
