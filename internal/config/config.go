// Package config holds the editor settings. Values come from built-in defaults, an optional
// config/playboard.json and PLAYBOARD_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultDir is the config directory, relative to the working directory.
const DefaultDir = "config"

// EnvPrefix prefixes every environment override, e.g. PLAYBOARD_LOG_LEVEL.
const EnvPrefix = "PLAYBOARD"

const (
	fileName = "playboard"
	fileType = "json"
)

// Storage backends.
const (
	BackendFiles  = "files"
	BackendSQLite = "sqlite"
)

// Config is the full set of settings.
type Config struct {
	Window     WindowConfig     `mapstructure:"window"`
	Camera     CameraConfig     `mapstructure:"camera"`
	Markers    MarkerConfig     `mapstructure:"markers"`
	Strokes    StrokeConfig     `mapstructure:"strokes"`
	Navigation NavigationConfig `mapstructure:"navigation"`
	Court      CourtConfig      `mapstructure:"court"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
	Debug      DebugConfig      `mapstructure:"debug"`
	UI         UIConfig         `mapstructure:"ui"`
}

type WindowConfig struct {
	Width  int32 `mapstructure:"width"`
	Height int32 `mapstructure:"height"`
}

type CameraConfig struct {
	// Fov is the vertical field of view in degrees.
	Fov float32 `mapstructure:"fov"`
}

type MarkerConfig struct {
	PixelSize float32 `mapstructure:"pixelSize"`
}

type StrokeConfig struct {
	MinSegment     float32       `mapstructure:"minSegment"`
	SampleInterval time.Duration `mapstructure:"sampleInterval"`
}

type NavigationConfig struct {
	// Concurrent lets the camera orbit while placing or drawing, as long as no stroke is in progress.
	Concurrent bool `mapstructure:"concurrent"`
}

type CourtConfig struct {
	Path string `mapstructure:"path"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type DebugConfig struct {
	ShowFPS      bool `mapstructure:"showFPS"`
	ShowMemAlloc bool `mapstructure:"showMemAlloc"`
}

type UIConfig struct {
	// Font is a font family looked up under assets/fonts. Empty uses raylib's built-in font.
	Font string `mapstructure:"font"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("camera.fov", 50)
	v.SetDefault("markers.pixelSize", 36)
	v.SetDefault("strokes.minSegment", 0.15)
	v.SetDefault("strokes.sampleInterval", "16ms")
	v.SetDefault("navigation.concurrent", false)
	v.SetDefault("court.path", "assets/court.yaml")
	v.SetDefault("storage.backend", BackendFiles)
	v.SetDefault("storage.path", "plays")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/playboard.log")
	v.SetDefault("debug.showFPS", false)
	v.SetDefault("debug.showMemAlloc", false)
	v.SetDefault("ui.font", "")
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the built-in settings, ignoring files and environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads settings from dir/playboard.json. A missing file is not an error; defaults and environment
// still apply.
func Load(dir string) (Config, error) {
	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Default(), fmt.Errorf("config: read: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Default(), fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Default(), err
	}
	return c, nil
}

// Validate rejects settings the editor cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("config: camera fov %v out of range", c.Camera.Fov)
	case c.Strokes.MinSegment < 0:
		return fmt.Errorf("config: negative stroke min segment")
	case c.Strokes.SampleInterval < 0:
		return fmt.Errorf("config: negative stroke sample interval")
	case c.Storage.Backend != BackendFiles && c.Storage.Backend != BackendSQLite:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// Save writes c to dir/playboard.json, creating dir if needed.
func Save(dir string, c Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	v := viper.New()
	v.Set("window.width", c.Window.Width)
	v.Set("window.height", c.Window.Height)
	v.Set("camera.fov", c.Camera.Fov)
	v.Set("markers.pixelSize", c.Markers.PixelSize)
	v.Set("strokes.minSegment", c.Strokes.MinSegment)
	v.Set("strokes.sampleInterval", c.Strokes.SampleInterval.String())
	v.Set("navigation.concurrent", c.Navigation.Concurrent)
	v.Set("court.path", c.Court.Path)
	v.Set("storage.backend", c.Storage.Backend)
	v.Set("storage.path", c.Storage.Path)
	v.Set("log.level", c.Log.Level)
	v.Set("log.file", c.Log.File)
	v.Set("debug.showFPS", c.Debug.ShowFPS)
	v.Set("debug.showMemAlloc", c.Debug.ShowMemAlloc)
	v.Set("ui.font", c.UI.Font)
	if err := v.WriteConfigAs(filepath.Join(dir, fileName+"."+fileType)); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}
