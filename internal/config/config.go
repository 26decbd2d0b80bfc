package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"citywalk/internal/city"
)

const fileName = "citywalk.cfg.json"

// WindowConfig holds the initial desktop window size.
type WindowConfig struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

// AudioConfig holds cue playback settings.
type AudioConfig struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Volume  float64 `json:"volume" mapstructure:"volume"`
}

// LoaderConfig controls the simulated asset source.
type LoaderConfig struct {
	Latency  time.Duration `json:"latency" mapstructure:"latency"`
	FailRate float64       `json:"failRate" mapstructure:"failRate"`
}

// Settings is the decoded configuration.
type Settings struct {
	LogLevel string       `json:"logLevel" mapstructure:"logLevel"`
	LogFile  string       `json:"logFile" mapstructure:"logFile"`
	Seed     uint64       `json:"seed" mapstructure:"seed"`
	Host     string       `json:"host" mapstructure:"host"`
	Window   WindowConfig `json:"window" mapstructure:"window"`
	Audio    AudioConfig  `json:"audio" mapstructure:"audio"`
	Loader   LoaderConfig `json:"loader" mapstructure:"loader"`
	Tuning   city.Tuning  `json:"tuning" mapstructure:"tuning"`
}

// Load sets default values, binds CITYWALK_* environment overrides and
// reads citywalk.cfg.json from configDir if it exists.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")
	viper.SetDefault("seed", 1)
	viper.SetDefault("host", "gl")

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.volume", 0.6)

	viper.SetDefault("loader.latency", "0s")
	viper.SetDefault("loader.failRate", 0.0)

	for k, v := range tuningDefaults() {
		viper.SetDefault("tuning."+k, v)
	}

	viper.SetEnvPrefix("CITYWALK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(fileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func tuningDefaults() map[string]any {
	d := city.DefaultTuning()
	return map[string]any{
		"groundProbeLift":  d.GroundProbeLift,
		"vehicleClearance": d.VehicleClearance,
		"wallProbeLift":    d.WallProbeLift,
		"wallMargin":       d.WallMargin,
		"ascendRate":       d.AscendRate,
		"gravity":          d.Gravity,
		"terminalFall":     d.TerminalFall,
		"walkSpeed":        d.WalkSpeed,
		"driveSpeed":       d.DriveSpeed,
		"turnRate":         d.TurnRate,
		"boardRadius":      d.BoardRadius,
		"disembarkOffset":  d.DisembarkOffset,
		"camWalkHeight":    d.CamWalkHeight,
		"camWalkDistance":  d.CamWalkDistance,
		"camDriveHeight":   d.CamDriveHeight,
		"camDriveDistance": d.CamDriveDistance,
		"camSmoothing":     d.CamSmoothing,
		"lookAtLift":       d.LookAtLift,
	}
}

// Get decodes the loaded configuration.
func Get() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// Tuning returns only the movement and camera constants.
func Tuning() (city.Tuning, error) {
	s, err := Get()
	if err != nil {
		return city.DefaultTuning(), err
	}
	return s.Tuning, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// Set overrides a value after Load, e.g. from a command-line flag.
func Set(key string, value any) {
	viper.Set(key, value)
}
