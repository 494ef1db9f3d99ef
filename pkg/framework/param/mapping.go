package param

import (
	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
)

// Mapping converts between the normalized and the plain domain of a
// parameter. ToNormalized(ToPlain(n)) must return n.
type Mapping interface {
	ToPlain(normalized float64) float64
	ToNormalized(plain float64) float64
}

// Linear maps [0,1] onto Min..Max
type Linear struct {
	Min float64
	Max float64
}

// ToPlain implements Mapping
func (l Linear) ToPlain(normalized float64) float64 {
	return l.Min + normalized*(l.Max-l.Min)
}

// ToNormalized implements Mapping
func (l Linear) ToNormalized(plain float64) float64 {
	if l.Max <= l.Min {
		return 0
	}
	return (plain - l.Min) / (l.Max - l.Min)
}

// VuPPM is the three-segment meter mapping with a dB plain domain: Mid sits
// at 0.5 and each half is linear in dB.
type VuPPM analysis.MeterRange

// ToPlain implements Mapping
func (v VuPPM) ToPlain(normalized float64) float64 {
	return analysis.MeterRange(v).Plain(normalized)
}

// ToNormalized implements Mapping
func (v VuPPM) ToNormalized(plain float64) float64 {
	return analysis.MeterRange(v).Normalize(plain)
}
