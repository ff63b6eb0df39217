package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
)

// Message keys.
const (
	keySuccess      = "activation.success"
	keyNotFound     = "locate.not_found"
	keyFailed       = "activation.failed"
	keyUnsupported  = "platform.unsupported"
	keyConfigMissed = "config.missing"
	keyUsage        = "usage.missing_name"
	keyRegistering  = "activation.registering"
)

var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		keySuccess:      "OK: Complemento activado correctamente (%s)",
		keyNotFound:     "ERROR: No se encontró ningún complemento con el nombre '%s'",
		keyFailed:       "ERROR: No se pudo activar el complemento %s. %s",
		keyUnsupported:  "ERROR: Sistema operativo no compatible: %s",
		keyConfigMissed: "ERROR: Configuración incompleta: %s",
		keyUsage:        "ERROR: Debes proporcionar el nombre del complemento.",
		keyRegistering:  "Registrando %s en Excel...",

		addin.ReasonFlagNotSet:         "la marca de instalación no se aplicó",
		addin.ReasonNotFoundAfterOpen:  "no se encontró tras el intento de instalación",
		addin.ReasonFileMissing:        "archivo no encontrado",
		addin.ReasonAutomationPanicked: "fallo inesperado de automatización",
		addin.ReasonCancelled:          "activación cancelada",
	},
	language.English: {
		keySuccess:      "OK: add-in enabled (%s)",
		keyNotFound:     "ERROR: no add-in found matching '%s'",
		keyFailed:       "ERROR: could not enable add-in %s. %s",
		keyUnsupported:  "ERROR: unsupported operating system: %s",
		keyConfigMissed: "ERROR: incomplete configuration: %s",
		keyUsage:        "ERROR: you must provide the add-in name.",
		keyRegistering:  "Registering %s with Excel...",

		addin.ReasonFlagNotSet:         "the installed flag did not take effect",
		addin.ReasonNotFoundAfterOpen:  "not found after the install attempt",
		addin.ReasonFileMissing:        "file not found",
		addin.ReasonAutomationPanicked: "unexpected automation fault",
		addin.ReasonCancelled:          "activation cancelled",
	},
}

var messages = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("report catalog: %s/%s: %v", tag, key, err))
			}
		}
	}
	return b
}

// ParseLanguage accepts a BCP 47 tag and returns the supported language of
// the same base ("es-MX" is Spanish). Only Spanish and English exist.
func ParseLanguage(value string) (language.Tag, error) {
	if strings.TrimSpace(value) == "" {
		return language.Spanish, nil
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, fmt.Errorf("parse language %q: %w", value, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "es":
		return language.Spanish, nil
	case "en":
		return language.English, nil
	default:
		return language.Und, fmt.Errorf("unsupported language %q (use es or en)", value)
	}
}
