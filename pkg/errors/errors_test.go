package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("config.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "config.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: config.yaml:12: unexpected token", err.Error())
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("config.yaml", 0, stdErrors.New("no such file"))
	require.Equal(t, "parse error: config.yaml: no such file", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("match_field", "must be one of [name full_name]", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "match_field", validationErr.Field)
	require.Contains(t, err.Error(), "match_field")
	require.Contains(t, validationErr.Message, "must be one of")
}

func TestAutomationErrorIncludesChannelAndOperation(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("Excel is not installed")
	err := NewAutomationError("com", "open_session", underlying)

	var automationErr *AutomationError
	require.ErrorAs(t, err, &automationErr)
	require.Equal(t, "com", automationErr.Channel)
	require.Equal(t, "open_session", automationErr.Operation)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "automation error [com] open_session: Excel is not installed", err.Error())
}

func TestNilErrorsRenderEmpty(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var validationErr *ValidationError
	var automationErr *AutomationError

	require.Empty(t, parseErr.Error())
	require.Empty(t, validationErr.Error())
	require.Empty(t, automationErr.Error())
	require.Nil(t, automationErr.Unwrap())
}
