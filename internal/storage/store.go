// Package storage keeps a registry of runs and the resolved configurations
// they were started from.
package storage

import (
	"context"
	"errors"
)

// ErrNotInitialized is returned when a store is used before Init.
var ErrNotInitialized = errors.New("store is not initialized")

// Store persists run records.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]RunRecord, error)
}
