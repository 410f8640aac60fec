package repository

import (
	"context"
	"errors"

	"github.com/gogotex/bridges/internal/bridge"
	"github.com/gogotex/bridges/internal/bridge/pager"
)

var (
	ErrNotFound = errors.New("item not found")
)

// Store is an ordered key/value store partitioned by pk. Inside a partition
// items are ordered by their ID.
type Store interface {
	Get(ctx context.Context, pk, id string) (*bridge.Bridge, error)
	Put(ctx context.Context, pk string, b *bridge.Bridge) error
	Delete(ctx context.Context, pk, id string) error
	// Query scans the partition in ID order (descending when r.Reverse),
	// honouring the exclusive r.GT / r.LT bounds and returning at most
	// r.Limit items.
	Query(ctx context.Context, pk string, r pager.Range) ([]*bridge.Bridge, error)
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
