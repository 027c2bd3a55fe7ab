// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/huangsam/motionchart/schema"
)

// Sentinel errors shared by the engine, the providers and the hosts.
var (
	ErrNoSlices     = errors.New("dataset has no time slices")
	ErrDuplicateKey = errors.New("duplicate time key")
	ErrEngineClosed = errors.New("engine is closed")
)

// DatasetProvider supplies the time-keyed dataset an engine renders.
// Implementations may block on I/O; they must honour ctx cancellation.
// This allows the engine to be tested without touching disk or network.
type DatasetProvider interface {
	// Load returns the decoded dataset. The result is treated as immutable.
	Load(ctx context.Context) (*schema.Dataset, error)

	// Source describes where the data comes from, for messages and summaries.
	Source() string
}
