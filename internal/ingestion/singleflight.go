package ingestion

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/iajcodes/HireC/internal/types"
)

// SingleFlight admits one extraction at a time, mirroring the upload
// surface's busy state: while a request is outstanding, re-submission
// fails fast with ErrUploadInProgress instead of queueing.
type SingleFlight struct {
	inner Extractor
	sem   *semaphore.Weighted
}

// NewSingleFlight wraps an extractor with single-admission semantics.
func NewSingleFlight(inner Extractor) *SingleFlight {
	return &SingleFlight{inner: inner, sem: semaphore.NewWeighted(1)}
}

// Extract delegates to the wrapped extractor unless one is already running.
func (s *SingleFlight) Extract(ctx context.Context, data []byte, mediaType string) (*types.Candidate, error) {
	if !s.sem.TryAcquire(1) {
		return nil, ErrUploadInProgress
	}
	defer s.sem.Release(1)

	return s.inner.Extract(ctx, data, mediaType)
}
