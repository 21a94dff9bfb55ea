package apu

// Resampler converts a stream of samples at one rate to another via linear
// interpolation. apu.go already produces samples at the host's target rate
// by accumulating CPU cycles directly, so this is a simplification rather
// than a necessity there; it exists for callers (such as a Deck driving a
// host audio API with its own fixed rate, e.g. 48000Hz) that need to adapt
// the APU's configured rate to a different output device without
// reconfiguring the APU itself.
type Resampler struct {
	fromRate, toRate int
	pos              float64
	step             float64
	prev, cur        float32
	havePrev         bool
}

// NewResampler creates a resampler converting fromRate samples/sec to
// toRate samples/sec.
func NewResampler(fromRate, toRate int) *Resampler {
	return &Resampler{
		fromRate: fromRate,
		toRate:   toRate,
		step:     float64(fromRate) / float64(toRate),
	}
}

// Process consumes all of in and appends every output sample produced to
// out, returning the extended slice.
func (r *Resampler) Process(in []float32, out []float32) []float32 {
	for _, sample := range in {
		if !r.havePrev {
			r.prev = sample
			r.cur = sample
			r.havePrev = true
			continue
		}
		r.prev = r.cur
		r.cur = sample

		for r.pos < 1.0 {
			out = append(out, r.prev+(r.cur-r.prev)*float32(r.pos))
			r.pos += r.step
		}
		r.pos -= 1.0
	}
	return out
}

// Reset clears interpolation state, used when audio playback restarts (e.g.
// after a save-state load) to avoid interpolating across a discontinuity.
func (r *Resampler) Reset() {
	r.pos = 0
	r.prev = 0
	r.cur = 0
	r.havePrev = false
}
