package service

import (
	"context"

	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/observability"
	"github.com/assessly-platform/assessly-api/internal/repository"
)

// IDAllocator hands out public sequential IDs. It wraps the counter
// repository so every allocation is counted in metrics.
type IDAllocator struct {
	counters repository.CounterRepository
}

// NewIDAllocator constructs the allocator.
func NewIDAllocator(counters repository.CounterRepository) *IDAllocator {
	return &IDAllocator{counters: counters}
}

// Next returns the next ID for the kind.
func (a *IDAllocator) Next(ctx context.Context, kind models.CounterKind) (int64, error) {
	value, err := a.counters.Next(ctx, kind)
	if err != nil {
		return 0, err
	}

	observability.IDsAllocated().WithLabelValues(string(kind)).Inc()
	return value, nil
}
