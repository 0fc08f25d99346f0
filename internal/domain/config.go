package domain

// Config is the optional per-user configuration loaded from .geojson-clipping.yaml.
type Config struct {
	Output   OutputConfig
	Warnings WarningsConfig
	Log      LogConfig
}

type OutputConfig struct {
	// Precision is the number of decimals kept in output coordinates; 0 disables rounding.
	Precision int
	// Indent is prepended per nesting level in output JSON; empty writes compact JSON.
	Indent string
}

type WarningsConfig struct {
	Quiet bool
}

type LogConfig struct {
	File  string
	Debug bool
}

// DefaultConfig is used when no config file is found or a field is left out.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Precision: 0,
			Indent:    "",
		},
		Warnings: WarningsConfig{Quiet: false},
	}
}
