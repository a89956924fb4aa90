package viewer

import (
	"path/filepath"

	"github.com/Carmen-Shannon/splat-go/engine/camera"
	"github.com/Carmen-Shannon/splat-go/engine/immersive"
	"github.com/Carmen-Shannon/splat-go/engine/renderer"
)

// ViewerOption is a functional option for configuring a Viewer.
type ViewerOption func(*Viewer)

// WithController wires in the orbit controller the transitions animate.
// Without it every camera operation is a silent no-op.
//
// Parameters:
//   - ctrl: the orbit controller
//
// Returns:
//   - ViewerOption: option function to apply
func WithController(ctrl camera.OrbitController) ViewerOption {
	return func(v *Viewer) {
		v.ctrl = ctrl
	}
}

// WithRenderer wires in the renderer whose cross-fade opacity the gallery
// slides drive.
//
// Parameters:
//   - rend: the renderer
//
// Returns:
//   - ViewerOption: option function to apply
func WithRenderer(rend renderer.Renderer) ViewerOption {
	return func(v *Viewer) {
		v.rend = rend
	}
}

// WithAssetProvider wires in the gallery asset store and starts a neighbour
// prefetcher over it.
//
// Parameters:
//   - provider: the asset store
//   - prefetchWorkers: maximum concurrent prefetch workers
//
// Returns:
//   - ViewerOption: option function to apply
func WithAssetProvider(provider AssetProvider, prefetchWorkers int) ViewerOption {
	return func(v *Viewer) {
		v.assets = provider
		if provider != nil {
			v.prefetch = NewPrefetcher(provider, prefetchWorkers)
		}
	}
}

// WithImmersiveSource wires in a device-orientation sensor source; the
// viewer builds the immersive driver over it and registers it for
// transition pauses.
//
// Parameters:
//   - source: the platform sensor source
//
// Returns:
//   - ViewerOption: option function to apply
func WithImmersiveSource(source immersive.Source) ViewerOption {
	return func(v *Viewer) {
		v.immersiveSource = source
	}
}

// WithViewerSettings installs an initial configuration. Invalid settings are
// ignored in favor of the defaults.
//
// Parameters:
//   - s: the settings to install
//
// Returns:
//   - ViewerOption: option function to apply
func WithViewerSettings(s Settings) ViewerOption {
	return func(v *Viewer) {
		if err := s.Validate(); err == nil {
			v.settings = s
		}
	}
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
