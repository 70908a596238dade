package config

type DashboardConfig struct {
	// CSV export of the soil sensors.
	DataFile      string `toml:"data_file"`
	ListenAddress string `toml:"listen_address"`
	ListenPort    int    `toml:"listen_port"`
	ArchiveDbPath string `toml:"archive_db_path"`
	// Go time layouts tried in order against "<DateTime> <DateTime2>".
	// Leave empty to use the built-in list.
	DateTimeLayouts []string `toml:"datetime_layouts"`
	ChartWidth      int      `toml:"chart_width"`
	ChartHeight     int      `toml:"chart_height"`
	// debug, info, warn or error
	LogLevel string `toml:"log_level"`
}
