package immersive

// DriverOption configures a Driver at construction.
type DriverOption func(*Driver)

// WithSensitivity sets the tilt-to-view gain. Values are clamped into
// [1, 5] when applied.
//
// Parameters:
//   - sensitivity: the gain multiplier
//
// Returns:
//   - DriverOption: the option to apply
func WithSensitivity(sensitivity float32) DriverOption {
	return func(d *Driver) {
		d.sensitivity = sensitivity
	}
}

// WithExcursionLimit sets the soft limit, in degrees, on how far a tilt can
// push the view away from its baseline framing.
//
// Parameters:
//   - degrees: the soft excursion limit
//
// Returns:
//   - DriverOption: the option to apply
func WithExcursionLimit(degrees float32) DriverOption {
	return func(d *Driver) {
		if degrees > 0 {
			d.limitDegrees = degrees
		}
	}
}

// WithSmoothing sets the per-event exponential smoothing factor in (0, 1].
// Lower values smooth more at the cost of responsiveness.
//
// Parameters:
//   - factor: the smoothing factor
//
// Returns:
//   - DriverOption: the option to apply
func WithSmoothing(factor float32) DriverOption {
	return func(d *Driver) {
		if factor > 0 && factor <= 1 {
			d.smoothing = factor
		}
	}
}
