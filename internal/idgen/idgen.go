// Package idgen issues the identifiers of stored records. Ids are snowflake
// values: time ordered and unique per node.
package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

const maxNode = 1023

// Generator hands out string identifiers
type Generator interface {
	NewID() string
}

// Snowflake generates ids from a snowflake node
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator for nodeID (0-1023)
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNode {
		return nil, fmt.Errorf("snowflake node %d out of range 0-%d", nodeID, maxNode)
	}
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: n}, nil
}

func (s *Snowflake) NewID() string {
	return s.node.Generate().String()
}

// Sequence returns predictable ids with a prefix, for tests and fixtures
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s%d", s.prefix, s.next)
	s.next++
	return id
}
