package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
)

func TestRenderSpanish(t *testing.T) {
	r := New(language.Spanish, &bytes.Buffer{})

	tests := []struct {
		name  string
		res   addin.ActivationResult
		query string
		want  string
	}{
		{
			name: "success",
			res:  addin.Success("/addins/plantilla_v2.xlam"),
			want: "OK: Complemento activado correctamente (plantilla_v2.xlam)",
		},
		{
			name:  "not found echoes the query",
			res:   addin.ActivationResult{Outcome: addin.OutcomeNotFound},
			query: "zzz",
			want:  "ERROR: No se encontró ningún complemento con el nombre 'zzz'",
		},
		{
			name: "known reason is translated",
			res:  addin.Failed("/addins/plantilla.xlam", addin.ReasonFlagNotSet, nil),
			want: "ERROR: No se pudo activar el complemento plantilla.xlam. la marca de instalación no se aplicó",
		},
		{
			name: "automation message passes through",
			res:  addin.Failed("/addins/plantilla.xlam", "automation error [com] list_addins: RPC", nil),
			want: "ERROR: No se pudo activar el complemento plantilla.xlam. automation error [com] list_addins: RPC",
		},
		{
			name: "unsupported platform",
			res:  addin.ActivationResult{Outcome: addin.OutcomeUnsupportedPlatform, Err: errors.New("linux")},
			want: "ERROR: Sistema operativo no compatible: linux",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Render(tt.res, tt.query))
		})
	}
}

func TestRenderEnglish(t *testing.T) {
	r := New(language.English, &bytes.Buffer{})

	assert.Equal(t, "OK: add-in enabled (a.xlam)", r.Render(addin.Success("/x/a.xlam"), ""))
	assert.Equal(t,
		"ERROR: could not enable add-in a.xlam. not found after the install attempt",
		r.Render(addin.Failed("/x/a.xlam", addin.ReasonNotFoundAfterOpen, nil), ""))
	assert.Equal(t,
		"ERROR: incomplete configuration: APPDATA is not set",
		r.Render(addin.ActivationResult{Outcome: addin.OutcomeConfigurationMissing, Reason: "APPDATA is not set"}, ""))
	assert.Equal(t, "ERROR: you must provide the add-in name.", r.Usage())
	assert.Equal(t, "Registering a.xlam with Excel...", r.Registering("a.xlam"))
}

func TestFprintlnWritesOneLine(t *testing.T) {
	var out bytes.Buffer
	r := New(language.Spanish, &out)

	require.NoError(t, r.Fprintln(&out, addin.Success("/x/a.xlam"), "a"))
	assert.Equal(t, "OK: Complemento activado correctamente (a.xlam)\n", out.String())
}

func TestEveryLanguageHasEveryKey(t *testing.T) {
	es := translations[language.Spanish]
	for tag, entries := range translations {
		assert.Len(t, entries, len(es), "language %s", tag)
		for key := range es {
			assert.Contains(t, entries, key, "language %s", tag)
		}
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    language.Tag
		wantErr bool
	}{
		{in: "", want: language.Spanish},
		{in: "es", want: language.Spanish},
		{in: "es-MX", want: language.Spanish},
		{in: "en", want: language.English},
		{in: "en-GB", want: language.English},
		{in: "fr", wantErr: true},
		{in: "not a tag!", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
