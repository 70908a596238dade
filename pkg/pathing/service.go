package pathing

import (
	"os"
	"path/filepath"
)

const (
	defaultDataDir   = "/var/lib/gws_dashboard"
	defaultConfigDir = "/etc/gws_dashboard"
)

// EnsureDirs creates the data and config directories when they do not exist yet.
// Must be called manually on startup by every service.
func EnsureDirs() error {
	// Directories that must exist:
	dirs := []string{
		GetDataDir(),
		GetConfigDir(),
	}

	// Create all directories
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

func GetArchiveDbPath() string {
	// Join path
	return filepath.Join(GetDataDir(), "gws-archive.db")
}

func GetDefaultDataFile() string {
	return filepath.Join(GetDataDir(), "soilSensorData.csv")
}

// GWS_DATA_DIR overrides the default, mostly for development machines.
func GetDataDir() string {
	if dir := os.Getenv("GWS_DATA_DIR"); dir != "" {
		return dir
	}
	return defaultDataDir
}

func GetConfigDir() string {
	if dir := os.Getenv("GWS_CONFIG_DIR"); dir != "" {
		return dir
	}
	return defaultConfigDir
}
