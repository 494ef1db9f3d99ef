// Package gain provides the trim stages at both ends of the chain and the
// normalized gain mapping they share.
package gain

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
)

// Trim range of the input and output stages in dB
const (
	MinTrimDB = -12.0
	MaxTrimDB = 12.0
)

// NormToDB maps a normalized trim value onto -12..+12 dB.
func NormToDB(norm float64) float64 {
	return (MaxTrimDB-MinTrimDB)*norm + MinTrimDB
}

// DBToNorm is the inverse of NormToDB.
func DBToNorm(db float64) float64 {
	return (db - MinTrimDB) / (MaxTrimDB - MinTrimDB)
}

// NormToGain maps a normalized trim value to a linear gain.
func NormToGain(norm float64) float64 {
	return core.DBToLinear(NormToDB(norm))
}
