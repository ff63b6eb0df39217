// Package report renders the one-line outcome printed by the CLI.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
)

// Reporter formats activation results in one language. Styling follows the
// color profile of the output it was created for, so redirected output is
// plain text.
type Reporter struct {
	printer      *message.Printer
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	noticeStyle  lipgloss.Style
}

// New creates a Reporter writing for out.
func New(lang language.Tag, out io.Writer) *Reporter {
	renderer := lipgloss.NewRenderer(out)
	return &Reporter{
		printer:      message.NewPrinter(lang, message.Catalog(messages)),
		successStyle: renderer.NewStyle().Foreground(lipgloss.Color("42")),
		failureStyle: renderer.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		noticeStyle:  renderer.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// Render returns the summary line for res. query is echoed when nothing was
// found.
func (r *Reporter) Render(res addin.ActivationResult, query string) string {
	switch res.Outcome {
	case addin.OutcomeSuccess:
		return r.successStyle.Render(r.printer.Sprintf(keySuccess, res.Name))
	case addin.OutcomeNotFound:
		return r.failureStyle.Render(r.printer.Sprintf(keyNotFound, query))
	case addin.OutcomeUnsupportedPlatform:
		return r.failureStyle.Render(r.printer.Sprintf(keyUnsupported, describe(res)))
	case addin.OutcomeConfigurationMissing:
		return r.failureStyle.Render(r.printer.Sprintf(keyConfigMissed, describe(res)))
	default:
		return r.failureStyle.Render(r.printer.Sprintf(keyFailed, res.Name, r.Reason(res.Reason)))
	}
}

// Reason translates the well-known reasons; other text passes through.
func (r *Reporter) Reason(reason string) string {
	switch reason {
	case addin.ReasonFlagNotSet, addin.ReasonNotFoundAfterOpen, addin.ReasonFileMissing,
		addin.ReasonAutomationPanicked, addin.ReasonCancelled:
		return r.printer.Sprintf(message.Key(reason, reason))
	default:
		return reason
	}
}

// Usage is the message printed when no add-in name was given.
func (r *Reporter) Usage() string {
	return r.failureStyle.Render(r.printer.Sprintf(keyUsage))
}

// Registering is the notice shown while Excel registers a new add-in.
func (r *Reporter) Registering(name string) string {
	return r.noticeStyle.Render(r.printer.Sprintf(keyRegistering, name))
}

// Fprintln writes the summary line for res.
func (r *Reporter) Fprintln(w io.Writer, res addin.ActivationResult, query string) error {
	_, err := fmt.Fprintln(w, r.Render(res, query))
	return err
}

func describe(res addin.ActivationResult) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	return res.Reason
}
