package test

import (
	"context"
	"sync"
	"time"
)

// JanitorStub records sweeper invocations.
type JanitorStub struct {
	Removed int64
	Views   int
	Err     error

	mu         sync.Mutex
	purges     int
	viewSweeps int
	lastNow    time.Time
}

// PurgeExpiredSessions records the call and returns the configured result.
func (j *JanitorStub) PurgeExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.purges++
	j.lastNow = now
	return j.Removed, j.Err
}

// SweepViewState records the call and returns the configured count.
func (j *JanitorStub) SweepViewState() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.viewSweeps++
	return j.Views
}

// Purges returns the number of purge calls.
func (j *JanitorStub) Purges() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.purges
}

// ViewSweeps returns the number of view state sweeps.
func (j *JanitorStub) ViewSweeps() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.viewSweeps
}

// LastNow returns the timestamp passed to the last purge.
func (j *JanitorStub) LastNow() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastNow
}
