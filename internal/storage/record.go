package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/sparsecode/internal/params"
)

// CurrentSchemaVersion is written into every record.
const CurrentSchemaVersion = 1

// ErrVersionMismatch is returned when a stored record has another schema version.
var ErrVersionMismatch = errors.New("record version mismatch")

// RunRecord describes one run and its resolved configuration.
type RunRecord struct {
	SchemaVersion int       `json:"schema_version"`
	ID            string    `json:"id"`
	ModelName     string    `json:"model_name"`
	ModelVersion  string    `json:"model_version"`
	ModelType     string    `json:"model_type"`
	Dataset       string    `json:"dataset"`
	CreatedAt     time.Time `json:"created_at"`
	// Config is the YAML snapshot of the finalized parameter set.
	Config []byte `json:"config"`
}

// NewRunRecord snapshots set. The record takes the set's run id, or a fresh
// one when the set has none.
func NewRunRecord(set params.Set, now time.Time) (RunRecord, error) {
	config, err := params.Snapshot(set)
	if err != nil {
		return RunRecord{}, err
	}

	base, shared := set.BaseParams(), set.SharedParams()
	id := base.RunID
	if id == "" {
		id = uuid.NewString()
	}
	return RunRecord{
		SchemaVersion: CurrentSchemaVersion,
		ID:            id,
		ModelName:     shared.ModelName,
		ModelVersion:  shared.Version,
		ModelType:     string(set.Kind()),
		Dataset:       shared.Dataset,
		CreatedAt:     now.UTC(),
		Config:        config,
	}, nil
}

func (r RunRecord) clone() RunRecord {
	r.Config = append([]byte(nil), r.Config...)
	return r
}

func (r RunRecord) validate() error {
	if r.ID == "" {
		return errors.New("run id is required")
	}
	if r.SchemaVersion != CurrentSchemaVersion {
		return fmt.Errorf("%w: run %s has schema %d", ErrVersionMismatch, r.ID, r.SchemaVersion)
	}
	return nil
}

// EncodeRun serializes a record for storage.
func EncodeRun(r RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRun parses a stored record and checks its schema version.
func DecodeRun(data []byte) (RunRecord, error) {
	var r RunRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return RunRecord{}, err
	}
	if r.SchemaVersion != CurrentSchemaVersion {
		return RunRecord{}, ErrVersionMismatch
	}
	return r, nil
}

func sortRuns(runs []RunRecord) {
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.Before(runs[j].CreatedAt)
		}
		return runs[i].ID < runs[j].ID
	})
}
