package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log     LogConfig
	PokeAPI PokeAPIConfig
	Trace   TraceConfig
	Mirror  MirrorConfig
	Export  ExportConfig
}

type LogConfig struct {
	Level string
}

type PokeAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type TraceConfig struct {
	PalmRejection bool
	MaxSegment    float32
	// Scale multiplies MaxSegment; 0 means use the window's scale factor.
	Scale       float32
	StrokeWidth float32
}

type MirrorConfig struct {
	Enabled   bool
	Port      int
	Advertise bool
}

type ExportConfig struct {
	Dir string
	// Font is a TTF used for non-Latin labels on worksheets.
	Font string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("pokeapi.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("pokeapi.timeout", "10s")
	v.SetDefault("trace.palm_rejection", true)
	v.SetDefault("trace.max_segment", 80)
	v.SetDefault("trace.scale", 1)
	v.SetDefault("trace.stroke_width", 10)
	v.SetDefault("mirror.enabled", false)
	v.SetDefault("mirror.port", 8888)
	v.SetDefault("mirror.advertise", true)
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.font", "")
}

// Load reads traceboard.yaml from the given paths (the working directory and
// $HOME/.traceboard when none are given) and TRACEBOARD_* environment
// variables. A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("traceboard")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "$HOME/.traceboard"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("TRACEBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Log: LogConfig{Level: v.GetString("log.level")},
		PokeAPI: PokeAPIConfig{
			BaseURL: v.GetString("pokeapi.base_url"),
			Timeout: v.GetDuration("pokeapi.timeout"),
		},
		Trace: TraceConfig{
			PalmRejection: v.GetBool("trace.palm_rejection"),
			MaxSegment:    float32(v.GetFloat64("trace.max_segment")),
			Scale:         float32(v.GetFloat64("trace.scale")),
			StrokeWidth:   float32(v.GetFloat64("trace.stroke_width")),
		},
		Mirror: MirrorConfig{
			Enabled:   v.GetBool("mirror.enabled"),
			Port:      v.GetInt("mirror.port"),
			Advertise: v.GetBool("mirror.advertise"),
		},
		Export: ExportConfig{
			Dir:  v.GetString("export.dir"),
			Font: v.GetString("export.font"),
		},
	}
	if cfg.Mirror.Port <= 0 || cfg.Mirror.Port > 65535 {
		return nil, fmt.Errorf("mirror.port %d out of range", cfg.Mirror.Port)
	}
	return cfg, nil
}
