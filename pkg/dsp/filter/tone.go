package filter

import "math"

// Band layout of the tone stage, lowest first
const (
	Band10 = iota
	Band40
	Band160
	Band640
	Band2k5
	Band20k
	NumBands
)

// Design constants of the tone stage
const (
	BandQ          = 0.51763809
	PeakFrequency  = 1200.0
	PeakQ          = 1.5
	PeakRangeDB    = 6.0
	BandpassBoost  = 5.623413
	HighpassBoost  = 7.943282
	ToneOutputGain = 0.398
)

// Corner frequencies per band. The two upper bands are first-order
// highpasses at these corners.
var BandFrequencies = [NumBands]float64{10, 40, 160, 640, 1200, 10500}

// Gain curve constants, held at single precision
var (
	curveNum   = f32(f32(0.5) * f32(56.2))
	curveBase  = f32(5.56)
	curveExpA  = f32(4011.4)
	curveExpK  = f32(-7.4746)
	curveExpC  = f32(0.54573)
	curveSlope = f32(810)
	curveQtr   = f32(0.25)
	curveFloor = f32(curveNum / f32(curveBase+500))
)

func f32(v float64) float64 {
	return float64(float32(v))
}

// ToneControls are the normalized tone settings applied per block
type ToneControls struct {
	Low    float64
	Body   float64
	High   float64
	Air    float64
	Focus  float64
	Lowcut bool
}

// FlatTone is the neutral tone setting
var FlatTone = ToneControls{Low: 0.5, Body: 0.5, High: 0.5, Air: 0.5, Focus: 0.5}

// Tone is a parallel bank of five bands plus a highpass "air" band, summed
// with the dry signal per band, normalized, and followed by a serial
// peaking filter at 1200 Hz.
type Tone struct {
	bands [NumBands]Stereo
	peak  Stereo
	peakK float64

	gain       [NumBands]float64
	pathGain   [NumBands]float64
	globalGain float64
}

// NewTone creates a tone stage designed for sampleRate at flat settings.
func NewTone(sampleRate float64) *Tone {
	t := &Tone{}
	t.SetSampleRate(sampleRate)
	t.SetControls(FlatTone)
	return t
}

// SetSampleRate redesigns the band filters. History is kept.
func (t *Tone) SetSampleRate(sampleRate float64) {
	for b := Band10; b <= Band640; b++ {
		c := Bandpass(BandFrequencies[b]/sampleRate, BandQ)
		t.bands[b].SetCoefficients(c.Scale(BandpassBoost))
	}
	for b := Band2k5; b <= Band20k; b++ {
		c := FirstOrderHighpass(BandFrequencies[b] / sampleRate)
		t.bands[b].SetCoefficients(c.Scale(HighpassBoost))
	}
	t.peakK = math.Tan(math.Pi * PeakFrequency / sampleRate)
	t.peak.SetCoefficients(Peaking(t.peakK, PeakQ, 0))
}

// SetControls recomputes the band gains and the peaking filter.
func (t *Tone) SetControls(c ToneControls) {
	x := [NumBands]float64{0.5, 0.5, c.Low, c.Body, c.High, c.Air}
	if c.Lowcut {
		x[Band10] = 0
		x[Band40] = 0
	}

	for b := Band10; b < Band20k; b++ {
		t.gain[b], t.pathGain[b] = bandGain(x[b])
	}
	t.gain[Band20k], t.pathGain[Band20k] = airGain(x[Band20k]), 1

	sum := 0.0
	for _, g := range t.gain {
		sum += g
	}
	t.globalGain = ToneOutputGain / sum

	t.peak.SetCoefficients(Peaking(t.peakK, PeakQ, 2*PeakRangeDB*c.Focus-PeakRangeDB))
}

// bandGain maps a band control to its dry+band gain and band path gain.
// Below 0.25 the band path fades out.
func bandGain(x float64) (g, pg float64) {
	switch {
	case x > 0.5:
		return curveNum / (curveBase + (curveExpA*math.Exp(curveExpK*x) - curveExpC)), 1
	case x >= 0.25:
		return curveNum / (curveBase + (500 - curveSlope*(x-curveQtr)*2)), 1
	default:
		return curveFloor, x * 4
	}
}

func airGain(x float64) float64 {
	if x > 0.5 {
		return 0.5 * 56.2 / (5.56 + (3258.2*math.Exp(-7.4126*x) - 1.8466))
	}
	return 0.5 * 56.2 / (5.56 + (500.0 - 823.6*x))
}

// GlobalGain returns the current output normalization
func (t *Tone) GlobalGain() float64 {
	return t.globalGain
}

// BandGain returns the dry+band and band path gains of one band
func (t *Tone) BandGain(band int) (g, pg float64) {
	return t.gain[band], t.pathGain[band]
}

// Tick processes one stereo frame.
func (t *Tone) Tick(l, r float64) (float64, float64) {
	var outL, outR float64
	for b := range t.bands {
		yl, yr := t.bands[b].Tick(l, r)
		outL += (yl*t.pathGain[b] + l) * t.gain[b]
		outR += (yr*t.pathGain[b] + r) * t.gain[b]
	}
	return t.peak.Tick(outL*t.globalGain, outR*t.globalGain)
}

// Reset clears all filter histories
func (t *Tone) Reset() {
	for b := range t.bands {
		t.bands[b].Reset()
	}
	t.peak.Reset()
}
