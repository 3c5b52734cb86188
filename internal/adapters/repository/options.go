package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithMaxSwings bounds how many swings the session history retains before
// evicting the oldest.
func WithMaxSwings(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.maxSwings = n
		}
	}
}
