//go:build js && wasm

package main

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"syscall/js"

	sp "spectrometry/pkg/spectrometry"
)

var lastResult *sp.Result

func main() {
	js.Global().Set("analyzeSpectrum", js.FuncOf(analyzeSpectrum))
	js.Global().Set("renderProfileOverlay", js.FuncOf(renderProfileOverlay))
	select {} // block forever
}

func analyzeSpectrum(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("usage: analyzeSpectrum(fileBytes, options)")
	}

	// Extract file bytes
	jsBytes := args[0]
	length := jsBytes.Get("length").Int()
	fileBytes := make([]byte, length)
	js.CopyBytesToGo(fileBytes, jsBytes)

	params := sp.DefaultParams()
	geo := sp.InstrumentGeometry{DiffractionOrder: 1}
	var strategy sp.ExtractionStrategy = sp.RowStrategy{}

	if len(args) >= 2 && args[1].Type() == js.TypeObject {
		opts := args[1]
		if v := opts.Get("minHeight"); v.Type() == js.TypeNumber {
			params.Peaks.MinHeight = v.Float()
		}
		if v := opts.Get("minDistance"); v.Type() == js.TypeNumber {
			params.Peaks.MinDistance = v.Int()
		}
		if v := opts.Get("autoZeroOrder"); v.Type() == js.TypeBoolean {
			params.AutoZeroOrder = v.Bool()
		}
		if v := opts.Get("linesPerMM"); v.Type() == js.TypeNumber {
			if d, ok := sp.GratingSpacingFromLinesPerMM(v.Float()); ok {
				geo.GratingSpacingM = d
			}
		}
		if v := opts.Get("distanceLMM"); v.Type() == js.TypeNumber && v.Float() > 0 {
			geo.SensorDistanceM = v.Float() / 1000.0
		}
		if v := opts.Get("pixelSizeUM"); v.Type() == js.TypeNumber && v.Float() > 0 {
			geo.PixelPitchM = v.Float() / 1e6
		}
		if v := opts.Get("zeroOrderIndex"); v.Type() == js.TypeNumber {
			geo.ZeroOrderIndex = v.Int()
		}
		if v := opts.Get("slitBand"); v.Type() == js.TypeBoolean && v.Bool() {
			slitRows, bandHeight := 5, 21
			if sv := opts.Get("slitRows"); sv.Type() == js.TypeNumber {
				slitRows = sv.Int()
			}
			if bv := opts.Get("bandHeight"); bv.Type() == js.TypeNumber {
				bandHeight = bv.Int()
			}
			strategy = sp.SlitBandStrategy{SlitRows: slitRows, BandHeight: bandHeight}
		}
	}

	// Decode image
	img, _, err := image.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		return errorResult("Decode error: " + err.Error())
	}
	raster, err := sp.NewRasterFromImage(img)
	if err != nil {
		return errorResult("Raster error: " + err.Error())
	}

	result, err := sp.Analyze(raster, strategy, params, geo)
	if err != nil {
		return errorResult("Analysis error: " + err.Error())
	}
	lastResult = result

	// Build JS result
	jsResult := map[string]interface{}{
		"width":         raster.Width(),
		"height":        raster.Height(),
		"axisLabel":     result.AxisLabel,
		"zeroOrder":     result.Geometry.ZeroOrderIndex,
		"zeroOrderAuto": result.ZeroOrderAutoDetected,
	}

	jsChannels := make([]interface{}, len(result.Channels))
	for i, ch := range result.Channels {
		jsPeaks := make([]interface{}, len(ch.Peaks))
		for j, pk := range ch.Peaks {
			jsPeaks[j] = map[string]interface{}{
				"index":        pk.Index,
				"height":       pk.Height,
				"wavelengthNm": pk.WavelengthNm,
				"wavelengthOK": pk.WavelengthOK,
			}
		}
		jsChannels[i] = map[string]interface{}{
			"channel": ch.Channel.String(),
			"peaks":   jsPeaks,
		}
	}
	jsResult["channels"] = jsChannels

	return js.ValueOf(jsResult)
}

func renderProfileOverlay(this js.Value, args []js.Value) interface{} {
	if lastResult == nil {
		return js.Null()
	}

	jpegBytes, err := sp.RenderProfileOverlayBytes(lastResult)
	if err != nil {
		return js.Null()
	}

	// Create Uint8Array and copy bytes
	uint8Array := js.Global().Get("Uint8Array").New(len(jpegBytes))
	js.CopyBytesToJS(uint8Array, jpegBytes)
	return uint8Array
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}
