package main

import (
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
)

// Exit codes. Every failure is non-zero so scripts can branch on the outcome.
const (
	ExitSuccess          = 0
	ExitActivationFailed = 1
	ExitUsage            = 2
	ExitNotFound         = 3
	ExitUnsupported      = 4
	ExitConfiguration    = 5
)

// exitError carries the process exit code out of a command. When reported
// is true the message was already printed on stdout.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func usageError(err error) error {
	return &exitError{code: ExitUsage, err: err}
}

// exitCodeForOutcome maps an activation outcome to the process exit code.
func exitCodeForOutcome(outcome addin.Outcome) int {
	switch outcome {
	case addin.OutcomeSuccess:
		return ExitSuccess
	case addin.OutcomeNotFound:
		return ExitNotFound
	case addin.OutcomeUnsupportedPlatform:
		return ExitUnsupported
	case addin.OutcomeConfigurationMissing:
		return ExitConfiguration
	default:
		return ExitActivationFailed
	}
}

// exitCodeForError maps a domain error to the process exit code.
func exitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitCodeForOutcome(addin.ResultFromError(err).Outcome)
}

// resultError converts a failed result into an exitError already reported
// on stdout.
func resultError(res addin.ActivationResult) error {
	if res.Succeeded() {
		return nil
	}
	err := res.Err
	if err == nil {
		err = errors.New(res.Reason)
	}
	return &exitError{code: exitCodeForOutcome(res.Outcome), err: err, reported: true}
}
