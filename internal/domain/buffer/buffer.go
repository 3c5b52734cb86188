// Package buffer provides the bounded sample store feeding swing analysis.
//
// The buffer is a fixed-capacity ring over recent motion samples. Appending
// is O(1); when full, the oldest sample is evicted. Samples must arrive in
// strictly increasing timestamp order; out-of-order or duplicate timestamps
// are rejected so downstream analysis can rely on ordering.
package buffer

import (
	"sync"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// defaultCapacity is roughly four seconds of samples at 50 Hz.
const defaultCapacity = 200

// Ring is a thread-safe fixed-capacity FIFO of motion samples.
type Ring struct {
	mu       sync.RWMutex
	samples  []model.MotionSample
	capacity int
	head     int // index of the oldest sample
	length   int
}

// NewRing creates a ring buffer with configuration options.
func NewRing(opts ...Option) *Ring {
	r := &Ring{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.samples = make([]model.MotionSample, r.capacity)
	return r
}

// Append adds a sample, evicting the oldest when full. It returns false and
// leaves the buffer untouched when the sample's timestamp is not strictly
// newer than the newest buffered sample.
func (r *Ring) Append(s model.MotionSample) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.length > 0 {
		newest := r.samples[(r.head+r.length-1)%r.capacity]
		if s.TimestampMs <= newest.TimestampMs {
			return false
		}
	}

	if r.length == r.capacity {
		// Overwrite the oldest slot.
		r.samples[r.head] = s
		r.head = (r.head + 1) % r.capacity
		return true
	}

	r.samples[(r.head+r.length)%r.capacity] = s
	r.length++
	return true
}

// Len returns the current number of buffered samples.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.length
}

// Capacity returns the fixed capacity of the buffer.
func (r *Ring) Capacity() int {
	return r.capacity
}

// Snapshot copies the buffered samples out in timestamp order.
func (r *Ring) Snapshot() []model.MotionSample {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.MotionSample, r.length)
	for i := 0; i < r.length; i++ {
		out[i] = r.samples[(r.head+i)%r.capacity]
	}
	return out
}

// TruncateToNewest drops everything except the most recent n samples. Used
// after a confirmed detection so the same swing is not found twice.
func (r *Ring) TruncateToNewest(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if r.length <= n {
		return
	}
	drop := r.length - n
	r.head = (r.head + drop) % r.capacity
	r.length = n
}

// Clear empties the buffer.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = 0
	r.length = 0
}
