package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PlatformConfigDir returns the conventional config directory for app:
// $XDG_CONFIG_HOME/app or ~/.config/app on unix, %APPDATA%\app on windows.
func PlatformConfigDir(app string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, app)
		}
		return filepath.Join(homeDir, ".config", app)
	case "darwin":
		return filepath.Join(homeDir, ".config", app)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, app)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", app)
	default:
		return filepath.Join(homeDir, "."+app)
	}
}

// ResolveRelativePath anchors a relative path at the executable directory,
// falling back to the working directory when the executable cannot be found.
func ResolveRelativePath(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	if execDir, err := GetExecutableDir(); err == nil {
		candidate := filepath.Join(execDir, relativePath)
		if FileExists(candidate) {
			return candidate
		}
	}
	return GetAbsolutePath(relativePath)
}
