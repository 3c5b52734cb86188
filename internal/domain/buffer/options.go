package buffer

// Option applies a configuration option to the Ring.
type Option func(*Ring)

// WithCapacity sets the maximum number of samples kept in the ring.
func WithCapacity(capacity int) Option {
	return func(r *Ring) {
		if capacity > 0 {
			r.capacity = capacity
		}
	}
}
