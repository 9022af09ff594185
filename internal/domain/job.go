package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a job execution.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusRunning Status = "RUNNING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// IsTerminal returns true if the status represents a final state.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// TriggeredBySystem is the triggered_by sentinel for cron-fired executions.
const TriggeredBySystem = "system"

// Result is the structured outcome of a single job invocation. Exactly one
// Result is produced per invocation; once the status is terminal the Result
// is never modified again.
type Result struct {
	JobName     string
	Status      Status
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	Output      any
	Err         error
}

// Failed reports whether the invocation ended in failure.
func (r *Result) Failed() bool {
	return r.Status == StatusFailed
}

// Execution is the durable ledger record of a job run. Rows that reach a
// terminal status are historical facts and are never mutated afterwards.
type Execution struct {
	ID          uuid.UUID  `json:"id"`
	JobName     string     `json:"job_name"`
	Status      Status     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Output      string     `json:"output,omitempty"`
	Error       string     `json:"error,omitempty"`
	TriggeredBy string     `json:"triggered_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// JobInfo describes a registered job for API consumers.
type JobInfo struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule,omitempty"`
	LockTTL  string `json:"lock_ttl,omitempty"`
}

// EncodeOutput serializes an arbitrary job output payload for persistence.
func EncodeOutput(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
