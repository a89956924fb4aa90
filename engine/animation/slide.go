package animation

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/splat-go/common"
	"github.com/Carmen-Shannon/splat-go/engine/camera"
)

const (
	defaultSlideDuration  = 900 * time.Millisecond
	defaultSlideAmount    = 0.45
	defaultFadeDelayRatio = 0.7
)

// SlideOptions configures one half of a gallery navigation.
type SlideOptions struct {
	// Duration of this phase. Defaults to 900ms.
	Duration time.Duration
	// Amount is the pan distance as a fraction of the camera-to-target
	// distance. Defaults to 0.45. Ignored by zoom and fade modes.
	Amount float32
	// Mode selects the slide geometry.
	Mode Mode
	// FadeDelayRatio is the fraction of the duration after which
	// OnFadeStart fires. Defaults to 0.7.
	FadeDelayRatio float32
	// Slideshow switches progress from the named ease to the two-phase
	// speed profile (fast sweep into a slow drift).
	Slideshow bool
	// Ease overrides the default easing (slide-out: EaseInQuad, slide-in:
	// EaseOutCubic). Ignored when Slideshow is set.
	Ease Easing
	// OnFadeStart fires once the cross-fade should begin. Not fired when
	// the slide is cancelled before the delay elapses.
	OnFadeStart func()
	// OnComplete fires on natural completion only.
	OnComplete func()
}

// SlideDriver plays the two halves of a gallery transition: slide-out moves
// the camera away from the current asset (accelerating, with a cross-fade
// starting partway through), and slide-in brings it from the mirrored offset
// back to rest on the next asset. For a given direction the out end state
// equals the in start state, so the pair reads as one continuous sweep.
type SlideDriver struct {
	coord *Coordinator
	ctrl  camera.OrbitController

	mu        sync.Mutex
	token     *Token
	fadeTimer *time.Timer
}

// NewSlideDriver creates a slide driver.
//
// Parameters:
//   - coord: the transition coordinator (must not be nil)
//   - ctrl: the orbit controller whose camera is animated
//
// Returns:
//   - *SlideDriver: the newly created driver
func NewSlideDriver(coord *Coordinator, ctrl camera.OrbitController) *SlideDriver {
	return &SlideDriver{coord: coord, ctrl: ctrl}
}

// SlideOut starts the first half of a navigation in the given direction.
//
// Parameters:
//   - dir: navigation direction
//   - opts: slide options
//
// Returns:
//   - <-chan struct{}: closed when this phase completes or is cancelled
func (d *SlideDriver) SlideOut(dir Direction, opts SlideOptions) <-chan struct{} {
	return d.run(KindSlideOut, PhaseSlideOut, dir, opts)
}

// SlideIn starts the second half of a navigation in the given direction.
// The camera jumps to the phase's offset start state on the first tick.
//
// Parameters:
//   - dir: navigation direction
//   - opts: slide options
//
// Returns:
//   - <-chan struct{}: closed when this phase completes or is cancelled
func (d *SlideDriver) SlideIn(dir Direction, opts SlideOptions) <-chan struct{} {
	return d.run(KindSlideIn, PhaseSlideIn, dir, opts)
}

// Cancel revokes the in-flight slide phase, if any. A pending cross-fade
// callback is stopped.
func (d *SlideDriver) Cancel() {
	d.mu.Lock()
	tok := d.token
	d.mu.Unlock()
	d.coord.cancel(tok)
}

func (d *SlideDriver) run(kind Kind, phase Phase, dir Direction, opts SlideOptions) <-chan struct{} {
	closed := make(chan struct{})
	close(closed)
	if d.ctrl == nil {
		return closed
	}

	if opts.Duration <= 0 {
		opts.Duration = defaultSlideDuration
	}
	if opts.Amount == 0 {
		opts.Amount = defaultSlideAmount
	}
	if opts.FadeDelayRatio <= 0 || opts.FadeDelayRatio >= 1 {
		opts.FadeDelayRatio = defaultFadeDelayRatio
	}

	// Progress shaping: slide-out accelerates away, slide-in decelerates
	// into rest. The slideshow variant integrates the speed profile instead
	// (mirrored for slide-out so the slow drift comes first).
	var progressAt func(t float32) float32
	if opts.Slideshow {
		integ := NewProfileIntegrator(DefaultSlideshowProfile(phase == PhaseSlideOut), DefaultProfileSamples)
		progressAt = integ.Advance
	} else {
		ease := opts.Ease
		if ease == nil {
			if phase == PhaseSlideOut {
				ease = EaseInQuad
			} else {
				ease = EaseOutCubic
			}
		}
		progressAt = ease
	}

	tok := newToken(kind, opts.Duration)
	tok.onComplete = opts.OnComplete
	cam := d.ctrl.Camera()

	var tr Trajectory

	capture := func() bool {
		pos := cam.Position()
		target := d.ctrl.Target()
		if opts.Mode != ModeFade && common.Dist3(pos, target) <= minLoadZoomRadius {
			return false
		}
		tr = Solve(pos, target, cam.Up(), opts.Mode, dir, opts.Amount, phase)

		tok.onFinalize = func(cancelled bool) {
			d.mu.Lock()
			if d.token == tok {
				if cancelled && d.fadeTimer != nil {
					d.fadeTimer.Stop()
				}
				d.token = nil
				d.fadeTimer = nil
			}
			d.mu.Unlock()
		}

		d.mu.Lock()
		d.token = tok
		d.fadeTimer = nil
		d.mu.Unlock()
		return true
	}

	var tick func(now time.Duration)
	tick = func(now time.Duration) {
		c := d.coord
		c.mu.Lock()
		if !c.isLiveLocked(tok) {
			c.mu.Unlock()
			return
		}
		if tok.started < 0 {
			tok.started = now
			// The fade delay counts from the animation clock's first tick,
			// so a late first frame cannot make the fade lead the slide.
			if opts.OnFadeStart != nil {
				delay := time.Duration(float64(opts.Duration) * float64(opts.FadeDelayRatio))
				fade := time.AfterFunc(delay, opts.OnFadeStart)
				d.mu.Lock()
				d.fadeTimer = fade
				d.mu.Unlock()
			}
		}
		t := float32(1)
		if tok.duration > 0 {
			t = common.Clamp01(float32(now-tok.started) / float32(tok.duration))
		}
		p := progressAt(t)

		pos := common.Lerp3(tr.StartPosition, tr.EndPosition, p)
		tgt := common.Lerp3(tr.StartTarget, tr.EndTarget, p)

		// Orbit coupling composes on top of the pan: slide-out curves away
		// as progress grows, slide-in uncurls back to zero at rest.
		if tr.OrbitAngle != 0 {
			a := tr.OrbitAngle * p
			if phase == PhaseSlideIn {
				a = tr.OrbitAngle * (1 - p)
			}
			offset := common.Sub3(pos, tgt)
			pos = common.Add3(tgt, common.RotateAround(offset, tr.OrbitAxis, a))
		}

		cam.SetPosition(pos)
		d.ctrl.SetTarget(tgt)

		if t >= 1 {
			onComplete := c.completeLocked(tok)
			c.mu.Unlock()
			c.requestRedraw()
			if onComplete != nil {
				onComplete()
			}
			return
		}
		tok.handle = c.scheduler.Schedule(tick)
		c.mu.Unlock()
		c.requestRedraw()
	}

	if !d.coord.own(tok, capture, tick) {
		return closed
	}
	return tok.Done()
}
