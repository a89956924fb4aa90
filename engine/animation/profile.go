package animation

import (
	"github.com/Carmen-Shannon/splat-go/common"
)

// DefaultProfileSamples is the sample count used to compute a profile's
// normalization constant. Trapezoidal integration error is bounded by the
// smoothness of the profile; the two-phase profiles here are piecewise
// smooth, for which 240 samples put the error well under the 1e-3 tolerance
// the slideshow timing needs. Playback never samples - it re-evaluates
// SpeedAt directly - so this count is independent of the actual tick rate.
const DefaultProfileSamples = 240

// SpeedProfile is a variable-speed progress curve for the slideshow slide
// mode. Instead of a single named ease, it defines instantaneous speed over
// normalized time: a deceleration phase (fastSpeed easing down to slowSpeed
// over decelRatio of the duration) followed by a slow phase at slowSpeed.
// The mirrored form (slide-out) runs the slow phase first and accelerates
// back up to fastSpeed.
//
// Progress is obtained by integrating speed over time, scaled by a
// normalization constant so accumulated progress reaches exactly 1.0 at the
// end of the duration.
type SpeedProfile struct {
	// FastSpeed is the peak instantaneous speed (arbitrary units; only the
	// ratio to SlowSpeed matters after normalization).
	FastSpeed float32
	// SlowSpeed is the drift speed of the slow phase. Must be > 0.
	SlowSpeed float32
	// DecelRatio is the fraction of the total duration spent in the
	// fast<->slow transition phase, in (0, 1).
	DecelRatio float32
	// Mirrored flips the profile for slide-out: slow phase first, then
	// acceleration up to FastSpeed.
	Mirrored bool
}

// DefaultSlideshowProfile returns the profile used by the slideshow slide
// mode: a strong deceleration into a long slow drift.
//
// Parameters:
//   - mirrored: true for the slide-out (accelerating) variant
//
// Returns:
//   - SpeedProfile: the configured profile
func DefaultSlideshowProfile(mirrored bool) SpeedProfile {
	return SpeedProfile{
		FastSpeed:  6.0,
		SlowSpeed:  0.6,
		DecelRatio: 0.35,
		Mirrored:   mirrored,
	}
}

// SpeedAt evaluates the closed-form instantaneous speed at normalized time
// t in [0, 1].
//
// Parameters:
//   - t: normalized time
//
// Returns:
//   - float32: the instantaneous (un-normalized) speed
func (p SpeedProfile) SpeedAt(t float32) float32 {
	t = common.Clamp01(t)
	if p.Mirrored {
		// Slow drift first, then accelerate: the time-reverse of the
		// decelerating profile.
		t = 1 - t
	}
	if p.DecelRatio <= 0 {
		return p.SlowSpeed
	}
	if t < p.DecelRatio {
		// Ease from fast down to slow across the deceleration phase.
		phase := t / p.DecelRatio
		return common.Lerp(p.FastSpeed, p.SlowSpeed, EaseOutQuad(phase))
	}
	return p.SlowSpeed
}

// Normalization computes the constant k such that the integral of
// k*SpeedAt(t) over t in [0,1] equals 1, using trapezoidal integration with
// the given sample count. The same constant must be used for the whole
// playback of one animation.
//
// Parameters:
//   - samples: number of trapezoid intervals (values < 2 use
//     DefaultProfileSamples)
//
// Returns:
//   - float32: the normalization constant
func (p SpeedProfile) Normalization(samples int) float32 {
	if samples < 2 {
		samples = DefaultProfileSamples
	}
	dt := 1.0 / float32(samples)
	var integral float32
	prev := p.SpeedAt(0)
	for i := 1; i <= samples; i++ {
		cur := p.SpeedAt(float32(i) * dt)
		integral += (prev + cur) / 2 * dt
		prev = cur
	}
	if integral <= 0 {
		return 1
	}
	return 1 / integral
}

// ProfileIntegrator accumulates progress tick-by-tick from a speed profile.
// The driver advances it with the elapsed normalized time of each frame;
// playback re-evaluates the closed-form SpeedAt, only the normalization
// constant was sampled.
type ProfileIntegrator struct {
	profile  SpeedProfile
	norm     float32
	lastT    float32
	progress float32
}

// NewProfileIntegrator creates an integrator with the normalization
// constant precomputed at the given sample count.
//
// Parameters:
//   - profile: the speed profile to integrate
//   - samples: trapezoid sample count for normalization (< 2 uses
//     DefaultProfileSamples)
//
// Returns:
//   - *ProfileIntegrator: the integrator, positioned at t=0, progress=0
func NewProfileIntegrator(profile SpeedProfile, samples int) *ProfileIntegrator {
	return &ProfileIntegrator{
		profile: profile,
		norm:    profile.Normalization(samples),
	}
}

// Advance moves the integrator to normalized time t and returns accumulated
// progress. Uses the trapezoidal rule over the step from the previous call,
// so replaying at any tick rate converges on the normalized integral.
//
// Parameters:
//   - t: normalized time in [0, 1] (must not decrease between calls)
//
// Returns:
//   - float32: accumulated progress, clamped to [0, 1]
func (pi *ProfileIntegrator) Advance(t float32) float32 {
	t = common.Clamp01(t)
	if t > pi.lastT {
		dt := t - pi.lastT
		avg := (pi.profile.SpeedAt(pi.lastT) + pi.profile.SpeedAt(t)) / 2
		pi.progress += avg * pi.norm * dt
		pi.lastT = t
	}
	if t >= 1 {
		// Land exactly on the end state regardless of residual
		// integration error.
		pi.progress = 1
	}
	return common.Clamp01(pi.progress)
}
