// Package viewer ties the camera subsystem together behind the entry points
// the host application calls: transition start/cancel operations, gallery
// navigation, orbit range and field-of-view controls, and the immersive
// device-orientation toggle, all configured from a YAML settings file.
package viewer

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/splat-go/engine/animation"
)

// Intensity names a load-animation preset.
type Intensity string

const (
	IntensitySubtle   Intensity = "subtle"
	IntensityMedium   Intensity = "medium"
	IntensityDramatic Intensity = "dramatic"
	IntensityCustom   Intensity = "custom"
)

// CustomAnimation holds the user-authored load animation used when the
// intensity is "custom".
type CustomAnimation struct {
	// DurationMs is the animation length in milliseconds.
	DurationMs int `yaml:"duration_ms"`
	// Easing is a named easing curve (see animation.EasingByName).
	Easing string `yaml:"easing"`
	// RotationDegrees is the starting angular offset of the sweep.
	RotationDegrees float32 `yaml:"rotation_degrees"`
	// ZoomFactor scales the starting orbit radius.
	ZoomFactor float32 `yaml:"zoom_factor"`
}

// Settings is the viewer's YAML-backed configuration.
type Settings struct {
	// Intensity selects the load animation preset.
	Intensity Intensity `yaml:"intensity"`
	// SweepDirection is "left", "right", "up", "down" or "none" (no load
	// animation).
	SweepDirection string `yaml:"sweep_direction"`
	// SlideMode is "horizontal", "vertical", "zoom" or "fade".
	SlideMode string `yaml:"slide_mode"`
	// SlideDurationMs is the length of each slide phase in milliseconds.
	SlideDurationMs int `yaml:"slide_duration_ms"`
	// Slideshow switches slides to the variable-speed drift profile.
	Slideshow bool `yaml:"slideshow"`
	// DollyZoom enables focal-length compensation on field-of-view changes.
	DollyZoom bool `yaml:"dolly_zoom"`
	// ImmersiveSensitivity is the device-tilt gain in [1, 5].
	ImmersiveSensitivity float32 `yaml:"immersive_sensitivity"`
	// Custom is the user-authored load animation for IntensityCustom.
	Custom CustomAnimation `yaml:"custom"`
}

// DefaultSettings returns the viewer defaults used when no settings file is
// provided.
//
// Returns:
//   - Settings: the default configuration
func DefaultSettings() Settings {
	return Settings{
		Intensity:            IntensityMedium,
		SweepDirection:       "left",
		SlideMode:            "horizontal",
		Slideshow:            false,
		DollyZoom:            false,
		ImmersiveSensitivity: 2.0,
	}
}

// LoadSettings reads and validates a YAML settings file.
//
// Parameters:
//   - path: the settings file path
//
// Returns:
//   - Settings: the parsed configuration
//   - error: non-nil when the file cannot be read, parsed, or validated
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings for values no component can interpret.
//
// Returns:
//   - error: the first invalid field found, or nil
func (s Settings) Validate() error {
	switch s.Intensity {
	case IntensitySubtle, IntensityMedium, IntensityDramatic, IntensityCustom:
	default:
		return fmt.Errorf("settings: unknown intensity %q", s.Intensity)
	}
	switch s.SweepDirection {
	case "left", "right", "up", "down", "none":
	default:
		return fmt.Errorf("settings: unknown sweep direction %q", s.SweepDirection)
	}
	switch s.SlideMode {
	case "horizontal", "vertical", "zoom", "fade":
	default:
		return fmt.Errorf("settings: unknown slide mode %q", s.SlideMode)
	}
	if s.Intensity == IntensityCustom && s.Custom.Easing != "" {
		if _, ok := animation.EasingByName(s.Custom.Easing); !ok {
			return fmt.Errorf("settings: unknown easing %q", s.Custom.Easing)
		}
	}
	return nil
}

// loadZoomOptions translates the settings into load-zoom driver options.
// Returns false when the sweep direction is "none".
func (s Settings) loadZoomOptions() (animation.LoadZoomOptions, bool) {
	if s.SweepDirection == "none" {
		return animation.LoadZoomOptions{}, false
	}

	var opts animation.LoadZoomOptions
	if s.Intensity == IntensityCustom {
		opts = animation.LoadZoomOptions{
			SweepDegrees: s.Custom.RotationDegrees,
			ZoomFactor:   s.Custom.ZoomFactor,
			Duration:     time.Duration(s.Custom.DurationMs) * time.Millisecond,
		}
		if e, ok := animation.EasingByName(s.Custom.Easing); ok {
			opts.Ease = e
		}
	} else {
		opts, _ = animation.LoadZoomPreset(string(s.Intensity))
	}

	switch s.SweepDirection {
	case "right":
		opts.Direction = animation.SweepRight
	case "up":
		opts.Direction = animation.SweepUp
	case "down":
		opts.Direction = animation.SweepDown
	default:
		opts.Direction = animation.SweepLeft
	}
	return opts, true
}

// slideMode translates the settings slide mode name.
func (s Settings) slideMode() animation.Mode {
	switch s.SlideMode {
	case "vertical":
		return animation.ModeVertical
	case "zoom":
		return animation.ModeZoom
	case "fade":
		return animation.ModeFade
	default:
		return animation.ModeHorizontal
	}
}

// slideOptions translates the settings into slide driver options.
func (s Settings) slideOptions() animation.SlideOptions {
	return animation.SlideOptions{
		Duration:  time.Duration(s.SlideDurationMs) * time.Millisecond,
		Mode:      s.slideMode(),
		Slideshow: s.Slideshow,
	}
}
