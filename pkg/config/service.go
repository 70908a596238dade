package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/NotCoffee418/gws_dashboard/pkg/pathing"
)

var ActiveDashboardConfig *DashboardConfig

func DefaultDashboardConfig() *DashboardConfig {
	return &DashboardConfig{
		DataFile:      pathing.GetDefaultDataFile(),
		ListenAddress: "0.0.0.0",
		ListenPort:    8501,
		ArchiveDbPath: pathing.GetArchiveDbPath(),
		ChartWidth:    1024,
		ChartHeight:   400,
		LogLevel:      "info",
	}
}

// LoadDashboardConfig loads dashboard.toml from the config dir into ActiveDashboardConfig.
func LoadDashboardConfig() error {
	cfg, err := LoadDashboardConfigFrom(filepath.Join(pathing.GetConfigDir(), "dashboard.toml"))
	if err != nil {
		return err
	}
	ActiveDashboardConfig = cfg
	return nil
}

// LoadDashboardConfigFrom reads the config at configPath.
// A default config is written to configPath when the file does not exist.
func LoadDashboardConfigFrom(configPath string) (*DashboardConfig, error) {
	// Create default if not exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultDashboardConfig()
		// Create file
		cfgFile, err := os.Create(configPath)
		if err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		defer cfgFile.Close()
		if err := toml.NewEncoder(cfgFile).Encode(cfg); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
		return cfg, nil
	}

	// Load existing config on top of the defaults so missing keys keep a sane value
	config := DefaultDashboardConfig()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", configPath, err)
	}
	if config.ChartWidth <= 0 || config.ChartHeight <= 0 {
		return nil, fmt.Errorf("chart size must be positive, got %dx%d", config.ChartWidth, config.ChartHeight)
	}
	return config, nil
}

func (c *DashboardConfig) ListenerAddress() string {
	return fmt.Sprintf("%s:%d", c.ListenAddress, c.ListenPort)
}
