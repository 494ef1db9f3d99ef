// Package analysis provides the metering and measurement helpers used by
// the lunchbox chain and its command line tools.
//
// Metering:
//   - Three-segment VU/PPM dB mapping onto normalized [0,1] meter values
//   - Gain reduction tracking as the smallest wet/dry ratio of a block
//   - Peak hold ballistics for display
//
// Measurement:
//   - Peak, RMS and DC levels
//   - Lag-zero stereo correlation
//   - One-sided power spectra, impulse magnitude response and band energy
//
// Example usage:
//
//	peak := analysis.PeakOf(left, right)
//	meter := analysis.VuPPM(peak, analysis.LevelRange)
//
//	dbs, err := analysis.MagnitudeResponse(impulse, 44100, []float64{100, 1000, 10000})
package analysis
