package main

import (
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/stat"

	"spectrometry/pkg/config"
	sp "spectrometry/pkg/spectrometry"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: spectrometry <image-file> [config.yaml]")
	}
	imagePath := args[0]
	configPath := "spectrometry.yaml"
	if len(args) >= 2 {
		configPath = args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	fmt.Printf("Loading: %s\n", imagePath)
	startTime := time.Now()
	raster, err := loadRaster(imagePath)
	if err != nil {
		return err
	}

	strategy := selectStrategy(cfg)
	geo := geometryFromConfig(cfg)
	params := sp.Params{
		Peaks: sp.PeakParams{
			MinHeight:   cfg.Detection.PeakHeight,
			MinDistance: cfg.Detection.PeakDistance,
		},
		AutoZeroOrder: cfg.Detection.AutoZeroOrder,
	}

	res, err := sp.Analyze(raster, strategy, params, geo)
	if err != nil {
		return err
	}

	if cfg.Calibration.Enabled {
		pitch, err := sp.CalibratePixelPitch(
			cfg.Calibration.KnownDistanceMM/1000.0,
			res.Geometry.ZeroOrderIndex,
			cfg.Calibration.ReferencePeakIndex,
		)
		if err != nil {
			return fmt.Errorf("calibrating pixel pitch: %w", err)
		}
		fmt.Printf("Inferred pixel pitch: %.4f um/px\n", pitch*1e6)

		// Re-run the wavelength pass with the calibrated pitch, pinning
		// the zero-order index found on the first pass.
		geo.PixelPitchM = pitch
		geo.ZeroOrderIndex = res.Geometry.ZeroOrderIndex
		params.AutoZeroOrder = false
		res, err = sp.Analyze(raster, strategy, params, geo)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(startTime)

	fmt.Println()
	fmt.Printf("=== Spectrum Analysis Results (%.2fs) ===\n", elapsed.Seconds())
	fmt.Printf("  Image size:  %d x %d\n", raster.Width(), raster.Height())
	fmt.Printf("  Profile axis: %s (%d samples)\n", res.AxisLabel, len(res.Channels[0].Profile))
	zeroStr := fmt.Sprintf("%d", res.Geometry.ZeroOrderIndex)
	if res.ZeroOrderAutoDetected {
		zeroStr += " (auto-detected)"
	}
	fmt.Printf("  Zero order:  %s\n", zeroStr)
	if !res.Geometry.Complete() {
		fmt.Println("  [GEOMETRY INCOMPLETE - WAVELENGTHS INDETERMINATE]")
	}

	for _, ch := range res.Channels {
		mean := stat.Mean(ch.Profile, nil)
		sd := stat.StdDev(ch.Profile, nil)
		fmt.Println()
		fmt.Printf("  %s channel: mean=%.2f stddev=%.2f, %d peaks\n", ch.Channel, mean, sd, len(ch.Peaks))
		if cfg.Output.Verbose {
			fmt.Printf("    detection: %v\n", ch.Metrics)
		}
		for _, pk := range ch.Peaks {
			if pk.WavelengthOK {
				fmt.Printf("    index %5d  height %6.2f  wavelength %8.2f nm\n", pk.Index, pk.Height, pk.WavelengthNm)
			} else {
				fmt.Printf("    index %5d  height %6.2f  wavelength indeterminate\n", pk.Index, pk.Height)
			}
		}
	}
	fmt.Println("==============================")

	if cfg.Output.OverlayPath != "" {
		if err := sp.RenderProfileOverlay(res, cfg.Output.OverlayPath); err != nil {
			return fmt.Errorf("rendering overlay: %w", err)
		}
		fmt.Printf("Overlay written to %s\n", cfg.Output.OverlayPath)
	}

	return nil
}

func selectStrategy(cfg *config.Config) sp.ExtractionStrategy {
	if cfg.Slit.Enabled {
		return sp.SlitBandStrategy{
			SlitRows:   cfg.Slit.Rows,
			BandHeight: cfg.Slit.BandHeight,
		}
	}
	return sp.RowStrategy{}
}

// geometryFromConfig converts user-facing units to meters. Invalid values
// leave fields at zero; the wavelength pass then reports indeterminate
// results instead of failing.
func geometryFromConfig(cfg *config.Config) sp.InstrumentGeometry {
	geo := sp.InstrumentGeometry{
		ZeroOrderIndex:   cfg.Instrument.ZeroOrderIndex,
		DiffractionOrder: cfg.Instrument.DiffractionOrder,
	}
	if d, ok := sp.GratingSpacingFromLinesPerMM(cfg.Instrument.LinesPerMM); ok {
		geo.GratingSpacingM = d
	}
	if cfg.Instrument.DistanceLMM > 0 {
		geo.SensorDistanceM = cfg.Instrument.DistanceLMM / 1000.0
	}
	if cfg.Instrument.PixelSizeUM > 0 {
		geo.PixelPitchM = cfg.Instrument.PixelSizeUM / 1e6
	}
	return geo
}
