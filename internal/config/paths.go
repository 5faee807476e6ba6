package config

import "path/filepath"

const (
	// AppName names the application directory and the log file.
	AppName = "DirMaker"

	// vendorDir groups the settings of all office tools of the same vendor.
	vendorDir = ".woffice"

	// settingsFileName is hidden, like the application directory.
	settingsFileName = ".settings.ini"
)

// Paths holds the per-user locations used by the application.
type Paths struct {
	// AppDir is the hidden directory holding the settings and log files.
	AppDir string

	// ConfigFile is the INI settings file.
	ConfigFile string

	// LogFile is rewritten on every start.
	LogFile string
}

// NewPaths derives the application locations from the user's home directory.
func NewPaths(home string) Paths {
	// ~/.woffice/.DirMaker
	appDir := filepath.Join(home, vendorDir, "."+AppName)
	return Paths{
		AppDir:     appDir,
		ConfigFile: filepath.Join(appDir, settingsFileName),
		LogFile:    filepath.Join(appDir, "."+AppName+".log"),
	}
}
