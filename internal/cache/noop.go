package cache

import (
	"context"
	"time"
)

// NoopStore is used when caching is disabled. Every lookup misses.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Get(_ context.Context, _ string) ([]byte, error)                  { return nil, ErrMiss }
func (n *NoopStore) Put(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }
func (n *NoopStore) Close() error                                                     { return nil }
