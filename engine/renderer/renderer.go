package renderer

import (
	"fmt"
	"sync"
)

// PresentMode controls how finished frames are delivered to the display.
type PresentMode int

const (
	// PresentModeUncapped presents immediately without waiting for vblank.
	PresentModeUncapped PresentMode = iota
	// PresentModeVSync synchronizes presentation with the display refresh.
	PresentModeVSync
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend

	// fadeOpacity is the cross-fade level driven by the gallery slide
	// transitions: 1 fully visible, 0 fully faded out.
	fadeOpacity float32

	clearColor [4]float64

	pendingPresentMode *PresentMode
}

// Renderer draws the splat scene. The camera subsystem hands it a
// view-projection matrix and a cross-fade opacity each frame; everything
// GPU-specific lives behind the backend so tests can run headless.
type Renderer interface {
	// Resize reconfigures the backend surface for a new pixel size.
	//
	// Parameters:
	//   - width: new surface width in pixels
	//   - height: new surface height in pixels
	Resize(width, height int)

	// SetPresentMode sets how frames are delivered to the display. Takes
	// effect on the next surface configuration.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color the frame is cleared to.
	//
	// Parameters:
	//   - r, g, b, a: color components in [0, 1]
	SetClearColor(r, g, b, a float64)

	// SetFadeOpacity sets the cross-fade level. The gallery slide driver
	// ramps this down after its fade delay and back up during slide-in.
	//
	// Parameters:
	//   - opacity: 1 fully visible, 0 fully faded (clamped)
	SetFadeOpacity(opacity float32)

	// FadeOpacity returns the current cross-fade level.
	//
	// Returns:
	//   - float32: the fade opacity
	FadeOpacity() float32

	// RenderFrame uploads the camera uniforms and runs one full frame:
	// begin, clear, end, present.
	//
	// Parameters:
	//   - viewProj: the camera's combined view-projection matrix
	//
	// Returns:
	//   - error: an error if the frame could not be started
	RenderFrame(viewProj [16]float32) error
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with the provided options. Without a
// backend option the renderer runs headless.
//
// Parameters:
//   - options: functional options for renderer configuration
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		fadeOpacity: 1.0,
		clearColor:  [4]float64{0.0, 0.0, 0.0, 1.0},
	}

	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		r.backend = newHeadlessRendererBackend()
	}
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
		r.pendingPresentMode = nil
	}

	return r
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(red, green, blue, alpha float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = [4]float64{red, green, blue, alpha}
}

func (r *renderer) SetFadeOpacity(opacity float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	r.fadeOpacity = opacity
}

func (r *renderer) FadeOpacity() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fadeOpacity
}

func (r *renderer) RenderFrame(viewProj [16]float32) error {
	r.mu.Lock()
	fade := r.fadeOpacity
	clear := r.clearColor
	backend := r.backend
	r.mu.Unlock()

	backend.UpdateUniforms(viewProj, fade)
	backend.SetClearColor(
		clear[0]*float64(fade),
		clear[1]*float64(fade),
		clear[2]*float64(fade),
		clear[3],
	)

	if err := backend.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	backend.EndFrame()
	backend.Present()
	return nil
}
