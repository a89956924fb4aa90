package renderer

import "sync"

// RendererBackend is the GPU-facing half of the renderer. The wgpu backend
// talks to a real surface; the headless backend records frames for tests and
// server-side use.
type RendererBackend interface {
	// ConfigureSurface (re)configures the render surface for a pixel size.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the frame delivery mode. Applied on the next
	// ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the next frame clears to.
	//
	// Parameters:
	//   - r, g, b, a: color components in [0, 1]
	SetClearColor(r, g, b, a float64)

	// UpdateUniforms uploads the per-frame camera uniforms.
	//
	// Parameters:
	//   - viewProj: the camera's combined view-projection matrix
	//   - fadeOpacity: the cross-fade level in [0, 1]
	UpdateUniforms(viewProj [16]float32, fadeOpacity float32)

	// BeginFrame acquires the frame target and begins the render pass.
	//
	// Returns:
	//   - error: an error if the frame target could not be acquired
	BeginFrame() error

	// EndFrame ends the render pass and submits the frame's commands.
	EndFrame()

	// Present delivers the finished frame to the display.
	Present()
}

// headlessRendererBackend renders nothing but tracks every call, which is
// enough for tests and for running the camera subsystem without a GPU.
type headlessRendererBackend struct {
	mu sync.Mutex

	width, height int
	presentMode   PresentMode
	clearColor    [4]float64

	lastViewProj [16]float32
	lastFade     float32

	inFrame        bool
	framesRendered int
}

var _ RendererBackend = &headlessRendererBackend{}

func newHeadlessRendererBackend() *headlessRendererBackend {
	return &headlessRendererBackend{lastFade: 1.0}
}

func (b *headlessRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width = width
	b.height = height
}

func (b *headlessRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *headlessRendererBackend) SetClearColor(r, g, bl, a float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearColor = [4]float64{r, g, bl, a}
}

func (b *headlessRendererBackend) UpdateUniforms(viewProj [16]float32, fadeOpacity float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastViewProj = viewProj
	b.lastFade = fadeOpacity
}

func (b *headlessRendererBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFrame = true
	return nil
}

func (b *headlessRendererBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inFrame {
		b.framesRendered++
		b.inFrame = false
	}
}

func (b *headlessRendererBackend) Present() {}

// FramesRendered reports how many complete frames have been recorded.
//
// Returns:
//   - int: the frame count
func (b *headlessRendererBackend) FramesRendered() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.framesRendered
}

// LastUniforms returns the most recently uploaded camera uniforms.
//
// Returns:
//   - [16]float32: the view-projection matrix
//   - float32: the fade opacity
func (b *headlessRendererBackend) LastUniforms() ([16]float32, float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastViewProj, b.lastFade
}
