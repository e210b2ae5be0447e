package config

// ThemeAuto defers the theme choice to the terminal background.
const ThemeAuto = "auto"

// DefaultPageSize is the number of previews per page when unset.
const DefaultPageSize = 36

// Config represents the bookconnect configuration file.
type Config struct {
	PageSize int       `yaml:"page_size" validate:"min=1,max=500"`
	Theme    string    `yaml:"theme" validate:"theme_mode"`
	DataPath string    `yaml:"data_path,omitempty"`
	Log      LogConfig `yaml:"log"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level" validate:"log_level"`
	// File receives log output while the interactive browser owns the
	// terminal. Empty discards it.
	File  string `yaml:"file,omitempty"`
	Human bool   `yaml:"human"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		PageSize: DefaultPageSize,
		Theme:    ThemeAuto,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Overrides holds command-line values. Zero values leave the file setting
// untouched.
type Overrides struct {
	PageSize int
	Theme    string
	DataPath string
	LogLevel string
	LogFile  string
}

// Apply copies every non-zero override onto c.
func (c *Config) Apply(o Overrides) {
	if o.PageSize != 0 {
		c.PageSize = o.PageSize
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
	if o.DataPath != "" {
		c.DataPath = o.DataPath
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Log.File = o.LogFile
	}
}
