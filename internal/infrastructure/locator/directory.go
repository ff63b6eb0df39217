package locator

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
)

// macOffice is the Office app-group container shared by the sandboxed
// Microsoft apps on macOS.
const macOffice = "UBF8T346G9.Office"

// Environment abstracts the process environment used to resolve the add-ins
// directory.
type Environment struct {
	GOOS    string
	Getenv  func(string) string
	HomeDir func() (string, error)
}

// HostEnvironment returns the environment of the running process.
func HostEnvironment() Environment {
	return Environment{
		GOOS:    runtime.GOOS,
		Getenv:  os.Getenv,
		HomeDir: os.UserHomeDir,
	}
}

// Platform reports the environment's platform.
func (e Environment) Platform() addin.Platform {
	return addin.Platform(e.GOOS)
}

// ResolveAddinsDirectory returns the Office add-ins directory for env.
//
//	windows  %APPDATA%\Microsoft\AddIns
//	darwin   ~/Library/Group Containers/UBF8T346G9.Office/User Content/Add-Ins
//
// Other platforms yield ErrCodeUnsupportedPlatform. The directory is not
// required to exist.
func ResolveAddinsDirectory(env Environment) (string, error) {
	switch env.Platform() {
	case addin.PlatformWindows:
		appData := ""
		if env.Getenv != nil {
			appData = env.Getenv("APPDATA")
		}
		if appData == "" {
			return "", addin.NewError(addin.ErrCodeConfigurationMissing, "APPDATA is not set", nil, map[string]interface{}{"platform": env.GOOS})
		}
		return filepath.Join(appData, "Microsoft", "AddIns"), nil
	case addin.PlatformDarwin:
		if env.HomeDir == nil {
			return "", addin.NewError(addin.ErrCodeConfigurationMissing, "home directory is unknown", nil, map[string]interface{}{"platform": env.GOOS})
		}
		home, err := env.HomeDir()
		if err != nil || home == "" {
			return "", addin.NewError(addin.ErrCodeConfigurationMissing, "home directory is unknown", err, map[string]interface{}{"platform": env.GOOS})
		}
		return filepath.Join(home, "Library", "Group Containers", macOffice, "User Content", "Add-Ins"), nil
	default:
		return "", addin.NewError(addin.ErrCodeUnsupportedPlatform, "no add-ins directory for platform", nil, map[string]interface{}{"platform": env.GOOS})
	}
}
