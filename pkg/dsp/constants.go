// Package dsp provides the shared numeric vocabulary of the lunchbox stages.
package dsp

// Sample is the set of I/O sample types a stage can be instantiated with.
// Stages always compute internally in float64 and store back to T.
type Sample interface {
	~float32 | ~float64
}

// Common audio constants used throughout the DSP packages.
const (
	// Rate the coefficient constants are tuned at
	ReferenceRate = 44100.0

	// Channel count of the chain
	Stereo = 2

	// Magnitudes below these are treated as denormal
	DenormalFloor   = 1.18e-37
	UnderflowFloor  = 1.18e-23
	UnderflowReseed = 1.18e-17

	// Golden ratio weights used by the slew clamp and the exciter filters
	Phi         = 1.618033988749894848204586
	PhiInverse  = 0.618033988749894848204586
	PhiSquaredI = 0.381966011250105

	HalfPi = 1.5707963267948966
)

// FlushDenormal returns 0 for magnitudes below DenormalFloor.
func FlushDenormal(x float64) float64 {
	if x > -DenormalFloor && x < DenormalFloor {
		return 0
	}
	return x
}
