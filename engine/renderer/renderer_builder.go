package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBuilderOption is a functional option for configuring a Renderer.
type RendererBuilderOption func(*renderer)

// WithWGPUBackend creates the wgpu backend against the given platform
// surface descriptor (obtained from the window).
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor
//   - forceFallbackAdapter: if true, forces the software fallback adapter
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = newWGPURendererBackend(surfaceDescriptor, forceFallbackAdapter)
	}
}

// WithHeadlessBackend uses the recording backend, for tests and for running
// the camera subsystem without a GPU.
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithHeadlessBackend() RendererBuilderOption {
	return func(r *renderer) {
		r.backend = newHeadlessRendererBackend()
	}
}

// WithBackend installs a custom backend implementation.
//
// Parameters:
//   - backend: the backend to use
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithBackend(backend RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = backend
	}
}

// WithPresentMode sets the frame delivery mode at construction.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		m := mode
		r.pendingPresentMode = &m
	}
}

// WithClearColor sets the background color at construction.
//
// Parameters:
//   - red, green, blue, alpha: color components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithClearColor(red, green, blue, alpha float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = [4]float64{red, green, blue, alpha}
	}
}
