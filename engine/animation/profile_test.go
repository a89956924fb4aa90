package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileSpeedShape(t *testing.T) {
	p := DefaultSlideshowProfile(false)

	// Decelerating: fast at the start, slow drift at the end.
	assert.InDelta(t, p.FastSpeed, p.SpeedAt(0), 1e-4)
	assert.InDelta(t, p.SlowSpeed, p.SpeedAt(p.DecelRatio), 1e-3)
	assert.InDelta(t, p.SlowSpeed, p.SpeedAt(1), 1e-4)
	assert.Greater(t, p.SpeedAt(0.1), p.SpeedAt(0.3))
}

func TestMirroredProfileIsTimeReverse(t *testing.T) {
	fwd := DefaultSlideshowProfile(false)
	mir := DefaultSlideshowProfile(true)

	for _, ts := range []float32{0, 0.1, 0.35, 0.5, 0.8, 1} {
		assert.InDelta(t, fwd.SpeedAt(1-ts), mir.SpeedAt(ts), 1e-4, "t=%v", ts)
	}
}

func TestNormalizationIntegratesToOne(t *testing.T) {
	p := DefaultSlideshowProfile(false)
	k := p.Normalization(0)

	// Re-integrate with a finer grid; k * integral must be ~1.
	const samples = 4096
	dt := float32(1.0 / samples)
	var integral float32
	prev := p.SpeedAt(0)
	for i := 1; i <= samples; i++ {
		cur := p.SpeedAt(float32(i) * dt)
		integral += (prev + cur) / 2 * dt
		prev = cur
	}
	assert.InDelta(t, 1.0, k*integral, 1e-3)
}

func TestIntegratorAccumulatesToOne(t *testing.T) {
	// Simulate 16ms ticks over a 900ms animation.
	pi := NewProfileIntegrator(DefaultSlideshowProfile(false), 0)

	var progress float32
	var prev float32
	for ms := 16; ; ms += 16 {
		ts := float32(ms) / 900.0
		progress = pi.Advance(ts)
		assert.GreaterOrEqual(t, progress, prev, "progress must be monotonic")
		prev = progress
		if ts >= 1 {
			break
		}
	}
	assert.Equal(t, float32(1), progress, "progress lands exactly on 1 at the end")
}

func TestIntegratorIgnoresBackwardTime(t *testing.T) {
	pi := NewProfileIntegrator(DefaultSlideshowProfile(false), 0)
	p1 := pi.Advance(0.5)
	p2 := pi.Advance(0.3)
	assert.Equal(t, p1, p2)
}

func TestIntegratorExactEndDespiteCoarseTicks(t *testing.T) {
	// Very coarse ticks accumulate integration error; the final Advance at
	// t >= 1 must still land exactly on 1.
	pi := NewProfileIntegrator(DefaultSlideshowProfile(true), 0)
	pi.Advance(0.4)
	pi.Advance(0.9)
	assert.Equal(t, float32(1), pi.Advance(1.2))
}
