package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/layout-cli/internal/export"
	"github.com/sells-group/layout-cli/internal/layout"
	"github.com/sells-group/layout-cli/internal/model"
)

// Output formats.
const (
	FormatGeoJSON = export.GeoJSONFormat
	FormatShape   = export.ShapeFormat
	FormatXLSX    = export.XLSXFormat
	FormatWKT     = export.WKTFormat
)

// Config holds the full application configuration.
type Config struct {
	Layout model.LayoutParameters `yaml:"layout" mapstructure:"layout"`
	Engine EngineConfig           `yaml:"engine" mapstructure:"engine"`
	Output OutputConfig           `yaml:"output" mapstructure:"output"`
	Server ServerConfig           `yaml:"server" mapstructure:"server"`
	Log    LogConfig              `yaml:"log" mapstructure:"log"`
}

// EngineConfig tunes the layout engine.
type EngineConfig struct {
	Workers int    `yaml:"workers" mapstructure:"workers"`
	Seed    uint64 `yaml:"seed" mapstructure:"seed"` // 0 disables curve jitter
	// Jitter is the maximum organic curve offset as a fraction of site
	// height.
	Jitter float64 `yaml:"jitter" mapstructure:"jitter"`
}

// OutputConfig configures generated files.
type OutputConfig struct {
	Dir     string   `yaml:"dir" mapstructure:"dir"`
	Formats []string `yaml:"formats" mapstructure:"formats"`
	Locale  string   `yaml:"locale" mapstructure:"locale"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"` // layouts per second
	Burst          int      `yaml:"burst" mapstructure:"burst"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads layout.yaml from the working directory (optional) and the
// environment.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from path, or from layout.yaml in the
// working directory when path is empty, then applies LAYOUT_* environment
// overrides.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("layout")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LAYOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setLayoutDefaults(v, model.DefaultParameters())
	v.SetDefault("engine.workers", layout.DefaultWorkers)
	v.SetDefault("engine.seed", 0)
	v.SetDefault("engine.jitter", 0.1)
	v.SetDefault("output.dir", "out")
	v.SetDefault("output.formats", []string{FormatGeoJSON, FormatXLSX})
	v.SetDefault("output.locale", "en")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.burst", 10)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

func setLayoutDefaults(v *viper.Viper, p model.LayoutParameters) {
	v.SetDefault("layout.main_road_width", p.MainRoadWidth)
	v.SetDefault("layout.secondary_road_width", p.SecondaryRoadWidth)
	v.SetDefault("layout.access_road_width", p.AccessRoadWidth)
	v.SetDefault("layout.min_parcel_area", p.MinParcelArea)
	v.SetDefault("layout.max_parcel_area", p.MaxParcelArea)
	v.SetDefault("layout.min_parcel_width", p.MinParcelWidth)
	v.SetDefault("layout.min_parcel_depth", p.MinParcelDepth)
	v.SetDefault("layout.target_parcel_ratio", p.TargetParcelRatio)
	v.SetDefault("layout.subdivision_type", string(p.SubdivisionType))
	v.SetDefault("layout.include_green_spaces", p.IncludeGreenSpaces)
	v.SetDefault("layout.green_space_percentage", p.GreenSpacePercentage)
	v.SetDefault("layout.front_setback", p.FrontSetback)
	v.SetDefault("layout.side_setback", p.SideSetback)
	v.SetDefault("layout.rear_setback", p.RearSetback)
	v.SetDefault("layout.corner_radius", p.CornerRadius)
	v.SetDefault("layout.max_block_length", p.MaxBlockLength)
	v.SetDefault("layout.max_block_width", p.MaxBlockWidth)
	v.SetDefault("layout.plot_width", p.PlotWidth)
	v.SetDefault("layout.plot_depth", p.PlotDepth)
	v.SetDefault("layout.remainder_strategy", string(p.RemainderStrategy))
}

// Validate checks the configuration for the given command mode
// ("generate", "validate" or "serve").
func (c *Config) Validate(mode string) error {
	if err := layout.ValidateParameters(c.Layout); err != nil {
		return eris.Wrap(err, "config: layout")
	}
	if c.Engine.Workers < 1 {
		return eris.New("config: engine.workers must be at least 1")
	}
	if c.Engine.Jitter < 0 || c.Engine.Jitter > 1 {
		return eris.New("config: engine.jitter must be between 0 and 1")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return eris.Wrap(err, "config: log.level")
	}

	switch mode {
	case "generate":
		if c.Output.Dir == "" {
			return eris.New("config: output.dir is required")
		}
		for _, f := range c.Output.Formats {
			switch f {
			case FormatGeoJSON, FormatShape, FormatXLSX, FormatWKT:
			default:
				return eris.Errorf("config: unknown output format %q", f)
			}
		}
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			return eris.Errorf("config: server.port %d out of range", c.Server.Port)
		}
		if c.Server.RateLimit < 0 {
			return eris.New("config: server.rate_limit must not be negative")
		}
	case "validate":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
