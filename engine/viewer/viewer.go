package viewer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/splat-go/common"
	"github.com/Carmen-Shannon/splat-go/engine/animation"
	"github.com/Carmen-Shannon/splat-go/engine/camera"
	"github.com/Carmen-Shannon/splat-go/engine/immersive"
	"github.com/Carmen-Shannon/splat-go/engine/renderer"
)

// Viewer is the application-facing facade over the camera subsystem. Every
// operation is a silent no-op when the collaborator it needs (controller,
// renderer, asset provider, sensor source) was not wired in, so a host can
// construct the viewer before its scene is ready and call operations
// unconditionally from UI handlers.
type Viewer struct {
	mu sync.Mutex

	coord *animation.Coordinator
	ctrl  camera.OrbitController
	rend  renderer.Renderer

	loadZoom *animation.LoadZoomDriver
	slide    *animation.SlideDriver
	anchor   *animation.AnchorDriver
	reset    *animation.ResetDriver

	dolly           *camera.DollyZoom
	immersive       *immersive.Driver
	immersiveSource immersive.Source

	settings Settings

	home    animation.SavedState
	hasHome bool

	assets   AssetProvider
	prefetch *Prefetcher
	index    int
}

// NewViewer creates a viewer over the given transition coordinator.
//
// Parameters:
//   - coord: the transition coordinator (must not be nil)
//   - options: functional options wiring in collaborators
//
// Returns:
//   - *Viewer: the newly created viewer
func NewViewer(coord *animation.Coordinator, options ...ViewerOption) *Viewer {
	v := &Viewer{
		coord:    coord,
		dolly:    camera.NewDollyZoom(),
		settings: DefaultSettings(),
	}
	for _, option := range options {
		option(v)
	}

	if v.ctrl != nil {
		v.loadZoom = animation.NewLoadZoomDriver(coord, v.ctrl)
		v.slide = animation.NewSlideDriver(coord, v.ctrl)
		v.anchor = animation.NewAnchorDriver(coord, v.ctrl)
		v.reset = animation.NewResetDriver(coord, v.ctrl)

		// Any user gesture cancels an in-flight intro sweep; the controller
		// fires this even while interaction is suppressed.
		v.ctrl.OnInteractionStart(func() {
			v.loadZoom.Cancel()
		})
	}

	if v.immersiveSource != nil && v.ctrl != nil {
		v.immersive = immersive.NewDriver(v.ctrl, v.immersiveSource,
			immersive.WithSensitivity(v.settings.ImmersiveSensitivity))
		coord.AddPauseListener(v.immersive)
	}

	return v
}

// Settings returns the viewer's current configuration.
//
// Returns:
//   - Settings: a copy of the active settings
func (v *Viewer) Settings() Settings {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settings
}

// ApplySettings validates and installs a new configuration. Running
// animations are unaffected; the new values apply from the next operation.
//
// Parameters:
//   - s: the new settings
//
// Returns:
//   - error: non-nil when the settings fail validation
func (v *Viewer) ApplySettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	v.mu.Lock()
	v.settings = s
	imm := v.immersive
	v.mu.Unlock()

	if imm != nil {
		imm.SetSensitivity(s.ImmersiveSensitivity)
	}
	v.dolly.SetEnabled(s.DollyZoom)
	return nil
}

// WatchSettings hot-reloads the given settings file whenever it changes.
// Close the returned watcher to stop.
//
// Parameters:
//   - path: the settings file to watch
//
// Returns:
//   - *SettingsWatcher: the running watcher
//   - error: non-nil when the watcher cannot be created
func (v *Viewer) WatchSettings(path string) (*SettingsWatcher, error) {
	w, err := NewSettingsWatcher(dirOf(path))
	if err != nil {
		return nil, err
	}
	go func() {
		for range w.Events {
			s, err := LoadSettings(path)
			if err != nil {
				log.Printf("viewer: reload settings: %v", err)
				continue
			}
			if err := v.ApplySettings(s); err != nil {
				log.Printf("viewer: apply settings: %v", err)
			}
		}
	}()
	return w, nil
}

// StartLoadZoomAnimation plays the configured intro sweep from the camera's
// current rest framing. No-op when the controller is missing or the sweep
// direction is "none".
func (v *Viewer) StartLoadZoomAnimation() {
	if v.loadZoom == nil {
		return
	}
	v.mu.Lock()
	opts, ok := v.settings.loadZoomOptions()
	v.mu.Unlock()
	if !ok {
		return
	}
	v.loadZoom.Start(opts)
}

// CancelLoadZoomAnimation revokes an in-flight intro sweep.
func (v *Viewer) CancelLoadZoomAnimation() {
	if v.loadZoom != nil {
		v.loadZoom.Cancel()
	}
}

// SlideOut plays the first half of a gallery navigation with the configured
// slide mode. Most hosts use Next/Prev instead; this is the low-level phase
// for callers sequencing the asset swap themselves.
//
// Parameters:
//   - dir: navigation direction
//
// Returns:
//   - <-chan struct{}: closed when the phase completes or is cancelled
func (v *Viewer) SlideOut(dir animation.Direction) <-chan struct{} {
	if v.slide == nil {
		return closedChan()
	}
	v.mu.Lock()
	opts := v.settings.slideOptions()
	v.mu.Unlock()
	opts.OnFadeStart = v.fadeTo(0)
	return v.slide.SlideOut(dir, opts)
}

// SlideIn plays the second half of a gallery navigation.
//
// Parameters:
//   - dir: navigation direction
//
// Returns:
//   - <-chan struct{}: closed when the phase completes or is cancelled
func (v *Viewer) SlideIn(dir animation.Direction) <-chan struct{} {
	if v.slide == nil {
		return closedChan()
	}
	v.mu.Lock()
	opts := v.settings.slideOptions()
	v.mu.Unlock()
	opts.OnFadeStart = v.fadeTo(1)
	return v.slide.SlideIn(dir, opts)
}

// Next navigates to the following gallery asset: slide-out, asset swap at
// completion, then slide-in, with the cross-fade dipping through the swap.
// Fire-and-forget; cancellation leaves the camera where the active phase
// last put it.
func (v *Viewer) Next() {
	v.navigate(animation.DirectionNext)
}

// Prev navigates to the preceding gallery asset.
func (v *Viewer) Prev() {
	v.navigate(animation.DirectionPrev)
}

func (v *Viewer) navigate(dir animation.Direction) {
	if v.slide == nil || v.assets == nil || v.assets.Count() < 2 {
		return
	}

	v.mu.Lock()
	out := v.settings.slideOptions()
	in := v.settings.slideOptions()
	v.mu.Unlock()

	out.OnFadeStart = v.fadeTo(0)
	in.OnFadeStart = v.fadeTo(1)

	// Rest pose the slide-in returns to. Restoring it at the swap (while
	// the cross-fade is at zero) makes the slide-in's offset start coincide
	// with the slide-out's end, so the pair reads as one continuous sweep.
	restPos := v.ctrl.Camera().Position()
	restTarget := v.ctrl.Target()

	out.OnComplete = func() {
		v.mu.Lock()
		count := v.assets.Count()
		if dir == animation.DirectionNext {
			v.index = (v.index + 1) % count
		} else {
			v.index = (v.index - 1 + count) % count
		}
		idx := v.index
		v.mu.Unlock()

		if err := v.assets.Activate(idx); err != nil {
			log.Printf("viewer: activate asset %d: %v", idx, err)
		}
		if v.prefetch != nil {
			v.prefetch.WarmNeighbors(idx)
		}
		v.ctrl.Camera().SetPosition(restPos)
		v.ctrl.SetTarget(restTarget)

		// Re-anchor the dolly compensation on the new asset's framing.
		v.dolly.CaptureBaseline(v.ctrl)

		v.slide.SlideIn(dir, in)
	}

	v.slide.SlideOut(dir, out)
}

// StartAnchorTransition glides the orbit target to a new anchor point. The
// dolly-zoom baseline is recaptured once the glide lands, so later
// field-of-view changes compensate around the new framing.
//
// Parameters:
//   - anchor: the new world-space orbit target
func (v *Viewer) StartAnchorTransition(anchor common.Vec3) {
	if v.anchor == nil {
		return
	}
	v.anchor.Start(anchor, animation.AnchorOptions{
		OnComplete: func() {
			v.dolly.CaptureBaseline(v.ctrl)
		},
	})
}

// CancelAnchorTransition revokes an in-flight anchor glide.
func (v *Viewer) CancelAnchorTransition() {
	if v.anchor != nil {
		v.anchor.Cancel()
	}
}

// CaptureHome snapshots the current camera pose as the home framing the
// reset animation returns to. Typically called once an asset has loaded and
// been framed.
func (v *Viewer) CaptureHome() {
	if v.ctrl == nil {
		return
	}
	state := animation.CaptureState(v.ctrl)
	v.mu.Lock()
	v.home = state
	v.hasHome = true
	v.mu.Unlock()
}

// StartSmoothResetAnimation glides the camera back to the captured home
// pose. No-op when no home framing has been captured.
func (v *Viewer) StartSmoothResetAnimation() {
	if v.reset == nil {
		return
	}
	v.mu.Lock()
	home := v.home
	ok := v.hasHome
	v.mu.Unlock()
	if !ok {
		return
	}
	v.reset.Start(home, animation.ResetOptions{
		OnComplete: func() {
			v.dolly.CaptureBaseline(v.ctrl)
		},
	})
}

// CancelResetAnimation revokes an in-flight home reset.
func (v *Viewer) CancelResetAnimation() {
	if v.reset != nil {
		v.reset.Cancel()
	}
}

// SetOrbitRange maps a range control value onto the controller's azimuth
// and polar limits and rotate sensitivity.
//
// Parameters:
//   - degrees: the range control value in [0, 180]
func (v *Viewer) SetOrbitRange(degrees float32) {
	if v.ctrl == nil {
		return
	}
	camera.ApplyOrbitRange(v.ctrl, degrees)
}

// SetFieldOfView applies a field-of-view control value, with dolly-zoom
// distance compensation when enabled.
//
// Parameters:
//   - degrees: vertical field of view in degrees, clamped to [20, 120]
func (v *Viewer) SetFieldOfView(degrees float32) {
	if v.ctrl == nil {
		return
	}
	camera.ApplyFieldOfView(v.ctrl, v.dolly, degrees)
}

// CaptureDollyZoomBaseline re-anchors the dolly-zoom compensation on the
// current framing.
func (v *Viewer) CaptureDollyZoomBaseline() {
	if v.ctrl == nil {
		return
	}
	v.dolly.CaptureBaseline(v.ctrl)
}

// SetDollyZoomEnabled toggles field-of-view distance compensation.
//
// Parameters:
//   - enabled: the new state
func (v *Viewer) SetDollyZoomEnabled(enabled bool) {
	v.dolly.SetEnabled(enabled)
}

// EnableImmersive turns on device-orientation steering. No-op (nil error)
// when no sensor source was wired in.
//
// Parameters:
//   - ctx: cancellation/timeout for the permission prompt
//
// Returns:
//   - error: non-nil when sensor permission is denied
func (v *Viewer) EnableImmersive(ctx context.Context) error {
	if v.immersive == nil {
		return nil
	}
	return v.immersive.Enable(ctx)
}

// DisableImmersive turns off device-orientation steering.
func (v *Viewer) DisableImmersive() {
	if v.immersive != nil {
		v.immersive.Disable()
	}
}

// ToggleImmersive flips device-orientation steering.
//
// Parameters:
//   - ctx: cancellation/timeout for the permission prompt when enabling
//
// Returns:
//   - bool: the resulting enabled state
//   - error: non-nil when enabling failed
func (v *Viewer) ToggleImmersive(ctx context.Context) (bool, error) {
	if v.immersive == nil {
		return false, nil
	}
	return v.immersive.Toggle(ctx)
}

// RecenterImmersive makes the device's current pose the neutral orientation.
func (v *Viewer) RecenterImmersive() {
	if v.immersive != nil {
		v.immersive.Recenter()
	}
}

// RecenterImmersiveWith suppresses device-orientation steering while fn runs
// a recenter transition, then resumes after duration against the camera's new
// framing. No-op when immersive steering is not wired or not active.
//
// Parameters:
//   - fn: the recenter transition to run while events are suppressed
//   - duration: how long to suppress events before resuming
func (v *Viewer) RecenterImmersiveWith(fn func(), duration time.Duration) {
	if v.immersive != nil {
		v.immersive.RecenterWith(fn, duration)
	}
}

// CancelAllTransitions revokes whatever animation currently owns the camera.
func (v *Viewer) CancelAllTransitions() {
	v.coord.CancelAll()
}

// fadeTo returns a callback setting the renderer's cross-fade opacity, or
// nil when no renderer is wired in.
func (v *Viewer) fadeTo(opacity float32) func() {
	if v.rend == nil {
		return nil
	}
	return func() {
		v.rend.SetFadeOpacity(opacity)
	}
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
