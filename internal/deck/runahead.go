package deck

import "nescore/internal/ppu"

// RunAhead executes depth frames of speculative emulation immediately after
// input is sampled for the current frame, then rewinds to the pre-speculation
// snapshot and replays exactly one frame; the PPU's frame buffer is then
// replaced with the one produced by the last speculative frame, while all
// other state stays that of the replayed frame. This hides a configurable
// number of frames of controller-to-display latency at the cost of running
// the core depth+1 times as fast as real time: input read this frame is
// applied depth frames earlier than it otherwise would be displayed.
//
// Depth 0 disables run-ahead entirely and is equivalent to calling
// d.ClockFrame() directly.
func (d *Deck) RunAhead(depth int) error {
	if depth <= 0 {
		return d.ClockFrame()
	}

	checkpoint := d.Snapshot()

	for i := 0; i < depth; i++ {
		if err := d.ClockFrame(); err != nil {
			// Speculative execution hit a jammed CPU; restore the
			// checkpoint and surface the error as if run-ahead were off.
			_ = d.Restore(checkpoint)
			return err
		}
	}

	// The depth speculative frames consumed "future" input state that
	// hasn't actually been read by the host yet for those frames; rather
	// than model per-frame input prediction, run-ahead here only buys back
	// latency for input already latched before RunAhead was called, and
	// the speculative frames simply replay with the same held buttons.
	// Restore to the checkpoint, then run exactly one real frame so the
	// Deck's persistent state (PRG-RAM writes, mapper IRQ counters, audio
	// stream position) advances by only one frame as normal, while the
	// frame buffer displayed is the one produced depth frames ahead.
	ahead := d.Snapshot()
	if err := d.Restore(checkpoint); err != nil {
		return err
	}
	if err := d.ClockFrame(); err != nil {
		return err
	}

	d.PPU.ImportState(mergeDisplayFrame(d.PPU.ExportState(), ahead.PPU.FrameBuffer))
	return nil
}

// mergeDisplayFrame swaps in the run-ahead frame buffer while keeping every
// other field of the real (non-speculative) PPU state, so audio/CPU/mapper
// timing stay anchored to the single real frame that was actually clocked.
func mergeDisplayFrame(real ppu.State, display [256 * 240]uint32) ppu.State {
	real.FrameBuffer = display
	return real
}
