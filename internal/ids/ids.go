// Package ids produces the sortable unique identifiers used as record keys.
// Every generator yields fixed-width strings so lexicographic order equals
// creation order.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/snowflake"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Generator allocates a new identifier per call.
type Generator interface {
	NewID() string
}

// ObjectID renders MongoDB ObjectIDs as 24-char hex: a 4-byte timestamp
// prefix, a process-unique middle and an incrementing counter.
type ObjectID struct{}

func (ObjectID) NewID() string {
	return primitive.NewObjectID().Hex()
}

// Snowflake wraps a bwmarrin node. IDs are zero-padded to 19 digits.
type Snowflake struct {
	node *snowflake.Node
}

func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &Snowflake{node: n}, nil
}

func (s *Snowflake) NewID() string {
	return fmt.Sprintf("%019d", s.node.Generate().Int64())
}

// Sequence is a deterministic counter for tests and fixtures.
type Sequence struct {
	Prefix string
	n      atomic.Int64
}

func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s%012d", s.Prefix, s.n.Add(1))
}

// New returns the generator named by kind: "objectid" (default) or "snowflake".
func New(kind string, node int64) (Generator, error) {
	switch kind {
	case "", "objectid":
		return ObjectID{}, nil
	case "snowflake":
		return NewSnowflake(node)
	default:
		return nil, fmt.Errorf("unknown id strategy %q", kind)
	}
}
