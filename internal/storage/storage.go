package storage

import (
	"context"

	"github.com/solpredict/resolver/internal/resolver"
)

// Storage is the interface for recording market resolutions.
type Storage interface {
	// StoreResolution records a completed market resolution.
	StoreResolution(ctx context.Context, res *resolver.Resolution) error

	// Close closes the storage connection.
	Close() error
}
