package interp

type options struct {
	capacity   int
	clampAlpha bool
}

// Option configures a Buffer.
type Option func(*options)

// WithClampedAlpha keeps the interpolation factor within [0, 1], so the
// pose never overshoots the interval it is playing. By default alpha is
// left unclamped and late updates produce brief extrapolation.
func WithClampedAlpha() Option {
	return func(o *options) {
		o.clampAlpha = true
	}
}

// WithCapacity sets the initial number of pending frames the buffer holds
// before it has to grow.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}
