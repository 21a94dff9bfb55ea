package apu

import "math"

// firstOrderFilter is a one-pole IIR filter, used for both the highpass and
// lowpass stages since both the 2A03's output capacitor networks and the
// common DAC-smoothing lowpass reduce to the same difference equation.
type firstOrderFilter struct {
	alpha    float64
	highpass bool
	prevIn   float32
	prevOut  float32
}

func newLowpass(sampleRate int, cutoffHz float64) *firstOrderFilter {
	dt := 1.0 / float64(sampleRate)
	rc := 1.0 / (2 * math.Pi * cutoffHz)
	return &firstOrderFilter{alpha: dt / (rc + dt)}
}

func newHighpass(sampleRate int, cutoffHz float64) *firstOrderFilter {
	dt := 1.0 / float64(sampleRate)
	rc := 1.0 / (2 * math.Pi * cutoffHz)
	return &firstOrderFilter{alpha: rc / (rc + dt), highpass: true}
}

func (f *firstOrderFilter) apply(in float32) float32 {
	var out float32
	if f.highpass {
		out = float32(f.alpha) * (f.prevOut + in - f.prevIn)
	} else {
		out = f.prevOut + float32(f.alpha)*(in-f.prevOut)
	}
	f.prevIn = in
	f.prevOut = out
	return out
}

func (f *firstOrderFilter) reset() {
	f.prevIn = 0
	f.prevOut = 0
}

// FilterChain reproduces the NES's analog output stage: two highpass
// filters (roughly 90Hz and 440Hz, from the audio output capacitors on the
// NES and the RF modulator respectively) followed by a lowpass filter
// (~14kHz) standing in for the RF/AV DAC's smoothing network. Modeled with
// stdlib math rather than a DSP library, since none of the example
// repositories import one for audio filtering.
type FilterChain struct {
	highpass1 *firstOrderFilter
	highpass2 *firstOrderFilter
	lowpass   *firstOrderFilter
}

// NewFilterChain builds the three-stage chain tuned for the given output
// sample rate.
func NewFilterChain(sampleRate int) *FilterChain {
	return &FilterChain{
		highpass1: newHighpass(sampleRate, 90),
		highpass2: newHighpass(sampleRate, 440),
		lowpass:   newLowpass(sampleRate, 14000),
	}
}

// Apply runs one sample through the chain.
func (c *FilterChain) Apply(sample float32) float32 {
	sample = c.lowpass.apply(sample)
	sample = c.highpass1.apply(sample)
	sample = c.highpass2.apply(sample)
	return sample
}

// Reset clears all filter state, used on APU reset to avoid a discontinuity
// carrying over from before power-cycle.
func (c *FilterChain) Reset() {
	c.highpass1.reset()
	c.highpass2.reset()
	c.lowpass.reset()
}
