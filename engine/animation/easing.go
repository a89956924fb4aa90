// Package animation implements the camera transition drivers for the splat
// viewer: the load zoom-sweep, gallery slide-out/slide-in, anchor
// re-targeting, and home reset, coordinated so that exactly one of them owns
// the camera at any instant.
package animation

import (
	"github.com/chewxy/math32"
)

// Easing shapes animation progress: a monotonic [0,1] -> [0,1] curve.
type Easing func(t float32) float32

// Linear returns progress unchanged.
func Linear(t float32) float32 { return t }

// EaseInQuad starts slowly and accelerates.
func EaseInQuad(t float32) float32 { return t * t }

// EaseOutQuad starts quickly and decelerates.
func EaseOutQuad(t float32) float32 { return t * (2 - t) }

// EaseInOutQuad accelerates through the first half and decelerates through
// the second.
func EaseInOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseInCubic starts slowly and accelerates more sharply than EaseInQuad.
func EaseInCubic(t float32) float32 { return t * t * t }

// EaseOutCubic starts quickly and settles gently into the end value.
func EaseOutCubic(t float32) float32 {
	u := t - 1
	return u*u*u + 1
}

// EaseInOutCubic accelerates then decelerates with a steeper middle than
// EaseInOutQuad.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return u*u*u/2 + 1
}

// EaseOutSine decelerates along a quarter sine wave.
func EaseOutSine(t float32) float32 {
	return math32.Sin(t * math32.Pi / 2)
}

// easings maps the names accepted by the custom animation preset.
var easings = map[string]Easing{
	"linear":            Linear,
	"ease-in":           EaseInQuad,
	"ease-out":          EaseOutQuad,
	"ease-in-out":       EaseInOutQuad,
	"ease-in-cubic":     EaseInCubic,
	"ease-out-cubic":    EaseOutCubic,
	"ease-in-out-cubic": EaseInOutCubic,
	"ease-out-sine":     EaseOutSine,
}

// EasingByName looks up a named easing function.
//
// Parameters:
//   - name: the easing name (e.g. "ease-out-cubic")
//
// Returns:
//   - Easing: the easing function
//   - bool: false if the name is unknown
func EasingByName(name string) (Easing, bool) {
	e, ok := easings[name]
	return e, ok
}
