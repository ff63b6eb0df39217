package addin

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlatformSupported(t *testing.T) {
	t.Parallel()

	require.True(t, PlatformWindows.Supported())
	require.True(t, PlatformDarwin.Supported())
	require.False(t, Platform("linux").Supported())
	require.False(t, Platform("").Supported())
}

func TestMatchPolicyMatchesFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		policy   MatchPolicy
		file     string
		query    string
		expected bool
	}{
		{"substring match", DefaultMatchPolicy(), "plantilla_v1.xlam", "plantilla", true},
		{"case-insensitive query", DefaultMatchPolicy(), "Plantilla_v1.xlam", "PLANTILLA", true},
		{"case-sensitive query rejects", MatchPolicy{CaseSensitive: true}, "Plantilla_v1.xlam", "plantilla", false},
		{"extension compared without case", DefaultMatchPolicy(), "plantilla.XLAM", "plantilla", true},
		{"wrong extension", DefaultMatchPolicy(), "plantilla.xlsm", "plantilla", false},
		{"extension only as substring", DefaultMatchPolicy(), "plantilla.xlam.bak", "plantilla", false},
		{"empty query matches every add-in", DefaultMatchPolicy(), "other.xlam", "", true},
		{"no match", DefaultMatchPolicy(), "other.xlam", "zzz", false},
		{"custom extension", MatchPolicy{Extension: ".xla"}, "legacy.xla", "legacy", true},
		{"query never matches the extension", DefaultMatchPolicy(), "plantilla.xlam", "xlam", false},
		{"query spanning the extension", DefaultMatchPolicy(), "plantilla.xlam", "lla.x", false},
		{"extension-like text inside the stem", DefaultMatchPolicy(), "old.xlam.xlam", "xlam", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, tt.policy.MatchesFile(tt.file, tt.query))
		})
	}
}

func TestMatchPolicyFindEntry(t *testing.T) {
	t.Parallel()

	path := filepath.Join("addins", "Plantilla_v2.xlam")
	entries := []Entry{
		{Name: "Solver.xlam", FullName: filepath.Join("lib", "Solver.xlam")},
		{Name: "plantilla_v2.xlam", FullName: path, Installed: false},
	}

	entry, ok := DefaultMatchPolicy().FindEntry(entries, path)
	require.True(t, ok)
	require.Equal(t, "plantilla_v2.xlam", entry.Name)

	_, ok = MatchPolicy{CaseSensitive: true, Field: MatchName}.FindEntry(entries, path)
	require.False(t, ok)

	entry, ok = MatchPolicy{Field: MatchFullName}.FindEntry(entries, path)
	require.True(t, ok)
	require.Equal(t, path, entry.FullName)
}

func TestMatchFullNameIgnoresEntriesWithoutPath(t *testing.T) {
	t.Parallel()

	policy := MatchPolicy{Field: MatchFullName}
	require.False(t, policy.MatchesEntry(Entry{Name: "a.xlam"}, "a.xlam"))
}

func TestDomainErrorIsMatchesCode(t *testing.T) {
	t.Parallel()

	err := NewError(ErrCodeNotFound, "no add-in matches query", nil, map[string]interface{}{"query": "zzz"})
	wrapped := fmt.Errorf("locate: %w", err)

	require.True(t, errors.Is(wrapped, ErrNotFound))
	require.False(t, errors.Is(wrapped, ErrUnsupportedPlatform))
	require.Equal(t, ErrCodeNotFound, CodeOf(wrapped))
	require.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
}

func TestDomainErrorWithContextMerges(t *testing.T) {
	t.Parallel()

	base := NewError(ErrCodeConfigurationMissing, "APPDATA is not set", nil, map[string]interface{}{"os": "windows"})
	enriched := base.WithContext(map[string]interface{}{"variable": "APPDATA"})

	require.Equal(t, "windows", enriched.Context["os"])
	require.Equal(t, "APPDATA", enriched.Context["variable"])
	require.NotContains(t, base.Context, "variable")
	require.Equal(t, "CONFIGURATION_MISSING: APPDATA is not set", enriched.Error())
}

func TestResultFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     ErrorCode
		expected Outcome
	}{
		{ErrCodeNotFound, OutcomeNotFound},
		{ErrCodeUnsupportedPlatform, OutcomeUnsupportedPlatform},
		{ErrCodeConfigurationMissing, OutcomeConfigurationMissing},
		{ErrCodeValidation, OutcomeConfigurationMissing},
		{ErrCodeInternal, OutcomeActivationFailed},
	}

	for _, tt := range tests {
		res := ResultFromError(NewError(tt.code, "boom", nil, nil))
		require.Equal(t, tt.expected, res.Outcome, string(tt.code))
		require.False(t, res.Succeeded())
		require.Error(t, res.Err)
	}
}

func TestSuccessCarriesBaseName(t *testing.T) {
	t.Parallel()

	res := Success(filepath.Join("dir", "plantilla_v2.xlam"))
	require.True(t, res.Succeeded())
	require.Equal(t, "plantilla_v2.xlam", res.Name)

	failed := Failed("", ReasonNotFoundAfterOpen, nil)
	require.Empty(t, failed.Name)
	require.Equal(t, OutcomeActivationFailed, failed.Outcome)
}
