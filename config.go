package gaze

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeyboardConfig holds the tunables of the keyboard dwell model. Distances
// are expressed in key sizes, rates in 1/s and durations in seconds.
type KeyboardConfig struct {
	FilterRadius           float64 `yaml:"filterRadius"`
	FilterMinRate          float64 `yaml:"filterMinRate"`
	GazeWeightRadius       float64 `yaml:"gazeWeightRadius"`
	GazeBias               float64 `yaml:"gazeBias"`
	ThresholdGain          float64 `yaml:"thresholdGain"`
	ThresholdDecrease      float64 `yaml:"thresholdDecrease"`
	RefractoryDecrease     float64 `yaml:"refractoryDecrease"`
	PressedKeyFadeDuration float64 `yaml:"pressedKeyFadeDuration"`
	PressedKeyGrowth       float64 `yaml:"pressedKeyGrowth"`
	FocusRadius            float64 `yaml:"focusRadius"`
	KeySpacing             float64 `yaml:"keySpacing"`
}

// Config is the read-only set of tunables a Layout copies at construction.
type Config struct {
	AnimationDuration float64 `yaml:"animationDuration"`

	SensorPenetrationIncreaseDuration  float64 `yaml:"sensorPenetrationIncreaseDuration"`
	SensorPenetrationDecreaseDuration  float64 `yaml:"sensorPenetrationDecreaseDuration"`
	SensorInteractionPenetrationAmount float64 `yaml:"sensorInteractionPenetrationAmount"`

	ButtonThresholdIncreaseDuration float64 `yaml:"buttonThresholdIncreaseDuration"`
	ButtonThresholdDecreaseDuration float64 `yaml:"buttonThresholdDecreaseDuration"`
	ButtonPressingDuration          float64 `yaml:"buttonPressingDuration"`

	Keyboard KeyboardConfig `yaml:"keyboard"`

	AdaptiveScaleFactor float64 `yaml:"adaptiveScaleFactor"`
	DimDuration         float64 `yaml:"dimDuration"`
	ActivityDuration    float64 `yaml:"activityDuration"`
	DropButtonSpace     float64 `yaml:"dropButtonSpace"`
}

var defaultConfig = Config{
	AnimationDuration: 0.3,

	SensorPenetrationIncreaseDuration:  3,
	SensorPenetrationDecreaseDuration:  1.5,
	SensorInteractionPenetrationAmount: 0.5,

	ButtonThresholdIncreaseDuration: 1,
	ButtonThresholdDecreaseDuration: 2,
	ButtonPressingDuration:          0.3,

	Keyboard: KeyboardConfig{
		FilterRadius:           4,
		FilterMinRate:          5,
		GazeWeightRadius:       2,
		GazeBias:               0.8,
		ThresholdGain:          4,
		ThresholdDecrease:      1,
		RefractoryDecrease:     6,
		PressedKeyFadeDuration: 0.5,
		PressedKeyGrowth:       5,
		FocusRadius:            3,
		KeySpacing:             0.1,
	},

	AdaptiveScaleFactor: 0.5,
	DimDuration:         0.5,
	ActivityDuration:    0.5,
	DropButtonSpace:     2,
}

// DefaultConfig returns the default tunables.
func DefaultConfig() Config {
	return defaultConfig
}

// ParseConfig overlays YAML data on the defaults and validates the result.
// Keys missing from data keep their default value.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// Validate reports the first option outside its allowed range.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"animationDuration", c.AnimationDuration},
		{"sensorPenetrationIncreaseDuration", c.SensorPenetrationIncreaseDuration},
		{"sensorPenetrationDecreaseDuration", c.SensorPenetrationDecreaseDuration},
		{"buttonThresholdIncreaseDuration", c.ButtonThresholdIncreaseDuration},
		{"buttonThresholdDecreaseDuration", c.ButtonThresholdDecreaseDuration},
		{"buttonPressingDuration", c.ButtonPressingDuration},
		{"dimDuration", c.DimDuration},
		{"activityDuration", c.ActivityDuration},
		{"keyboard.filterRadius", c.Keyboard.FilterRadius},
		{"keyboard.filterMinRate", c.Keyboard.FilterMinRate},
		{"keyboard.gazeWeightRadius", c.Keyboard.GazeWeightRadius},
		{"keyboard.thresholdGain", c.Keyboard.ThresholdGain},
		{"keyboard.thresholdDecrease", c.Keyboard.ThresholdDecrease},
		{"keyboard.refractoryDecrease", c.Keyboard.RefractoryDecrease},
		{"keyboard.pressedKeyFadeDuration", c.Keyboard.PressedKeyFadeDuration},
		{"keyboard.focusRadius", c.Keyboard.FocusRadius},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.SensorInteractionPenetrationAmount < 0 || c.SensorInteractionPenetrationAmount > 1 {
		return fmt.Errorf("%w: sensorInteractionPenetrationAmount must be in [0, 1], got %g",
			ErrInvalidConfig, c.SensorInteractionPenetrationAmount)
	}
	if c.Keyboard.GazeBias < 0 || c.Keyboard.GazeBias >= 1 {
		return fmt.Errorf("%w: keyboard.gazeBias must be in [0, 1), got %g", ErrInvalidConfig, c.Keyboard.GazeBias)
	}
	if c.Keyboard.KeySpacing < 0 || c.Keyboard.KeySpacing >= 1 {
		return fmt.Errorf("%w: keyboard.keySpacing must be in [0, 1), got %g", ErrInvalidConfig, c.Keyboard.KeySpacing)
	}
	if c.AdaptiveScaleFactor < 0 {
		return fmt.Errorf("%w: adaptiveScaleFactor must be >= 0, got %g", ErrInvalidConfig, c.AdaptiveScaleFactor)
	}
	if c.DropButtonSpace < 0 {
		return fmt.Errorf("%w: dropButtonSpace must be >= 0, got %g", ErrInvalidConfig, c.DropButtonSpace)
	}
	if c.Keyboard.PressedKeyGrowth < 0 {
		return fmt.Errorf("%w: keyboard.pressedKeyGrowth must be >= 0, got %g", ErrInvalidConfig, c.Keyboard.PressedKeyGrowth)
	}
	return nil
}
