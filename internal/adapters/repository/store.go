// Package repository defines the session swing-history store interface and
// errors.
package repository

import (
	"context"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// Store provides read/write access to the detected swings of one session.
type Store interface {
	// Add records a detected swing. Returns ErrDuplicateID if a swing with
	// the same ID is already stored.
	Add(ctx context.Context, result model.SwingDetectionResult) error

	// Get returns the swing with the given ID.
	// Returns ErrNotFound if the swing is unknown.
	Get(ctx context.Context, id string) (model.SwingDetectionResult, error)

	// Recent returns up to limit swings, newest first.
	Recent(ctx context.Context, limit int) ([]model.SwingDetectionResult, error)

	// Best returns the highest-confidence swing of the session.
	// Returns ErrNoSwings when nothing has been recorded.
	Best(ctx context.Context) (model.SwingDetectionResult, error)

	// Count returns the number of swings recorded this session.
	Count(ctx context.Context) int

	// Clear drops all recorded swings, e.g. on session reset.
	Clear(ctx context.Context)
}
