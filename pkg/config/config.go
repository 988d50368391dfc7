// Package config provides YAML configuration loading for the spectrometry
// CLI: instrument geometry, detection thresholds, slit parameters, and
// output options, with defaults matching a typical 600 lines/mm classroom
// spectrometer.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration loaded from YAML.
type Config struct {
	// Instrument describes the spectrometer geometry in the units a user
	// would measure them in; the CLI converts to meters.
	Instrument struct {
		// LinesPerMM is the grating line density.
		LinesPerMM float64 `yaml:"linesPerMM"`

		// DistanceLMM is the grating-to-sensor distance in millimeters.
		DistanceLMM float64 `yaml:"distanceLMM"`

		// PixelSizeUM is the sensor pixel pitch in micrometers.
		PixelSizeUM float64 `yaml:"pixelSizeUM"`

		// ZeroOrderIndex is the pixel index of the zero-order line.
		// Overridden when detection.autoZeroOrder is on and a peak is found.
		ZeroOrderIndex int `yaml:"zeroOrderIndex"`

		// DiffractionOrder is m in the grating equation, usually 1.
		DiffractionOrder int `yaml:"diffractionOrder"`
	} `yaml:"instrument"`

	Detection struct {
		// PeakHeight is the minimum averaged intensity for a peak.
		PeakHeight float64 `yaml:"peakHeight"`

		// PeakDistance is the minimum pixel separation between peaks.
		PeakDistance int `yaml:"peakDistance"`

		// AutoZeroOrder selects the tallest detected peak as the
		// zero-order index before computing wavelengths.
		AutoZeroOrder bool `yaml:"autoZeroOrder"`
	} `yaml:"detection"`

	Slit struct {
		// Enabled switches from the whole-image row strategy to the
		// column-wise slit-band strategy.
		Enabled bool `yaml:"enabled"`

		// Rows is how many brightest rows locate the slit center.
		Rows int `yaml:"rows"`

		// BandHeight is the total height of the analysis band.
		BandHeight int `yaml:"bandHeight"`
	} `yaml:"slit"`

	Calibration struct {
		// Enabled runs the pixel-pitch calibration after the first pass
		// and recomputes wavelengths with the inferred pitch.
		Enabled bool `yaml:"enabled"`

		// KnownDistanceMM is the measured on-sensor distance between the
		// zero-order line and the reference peak, in millimeters.
		KnownDistanceMM float64 `yaml:"knownDistanceMM"`

		// ReferencePeakIndex is the pixel index of that reference peak.
		ReferencePeakIndex int `yaml:"referencePeakIndex"`
	} `yaml:"calibration"`

	Output struct {
		// OverlayPath, when set, writes an annotated profile plot JPG.
		OverlayPath string `yaml:"overlayPath"`

		// Verbose prints per-channel detection statistics.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Instrument.LinesPerMM = 600.0
	cfg.Instrument.DistanceLMM = 100.0
	cfg.Instrument.PixelSizeUM = 2.0
	cfg.Instrument.ZeroOrderIndex = 0
	cfg.Instrument.DiffractionOrder = 1

	cfg.Detection.PeakHeight = 2.5
	cfg.Detection.PeakDistance = 200
	cfg.Detection.AutoZeroOrder = true

	cfg.Slit.Enabled = false
	cfg.Slit.Rows = 5
	cfg.Slit.BandHeight = 21

	cfg.Calibration.Enabled = false
	cfg.Calibration.KnownDistanceMM = 5.0
	cfg.Calibration.ReferencePeakIndex = 0

	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
