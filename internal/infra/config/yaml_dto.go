package config

// yamlConfig mirrors the file layout. Pointer fields tell "unset" apart from zero values.
type yamlConfig struct {
	GeoJSONClipping struct {
		Output struct {
			Precision *int    `yaml:"precision"`
			Indent    *string `yaml:"indent"`
		} `yaml:"output"`

		Warnings struct {
			Quiet *bool `yaml:"quiet"`
		} `yaml:"warnings"`

		Log struct {
			File  string `yaml:"file"`
			Debug *bool  `yaml:"debug"`
		} `yaml:"log"`
	} `yaml:"geojson_clipping"`
}
