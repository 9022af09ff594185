package domain

import "errors"

var (
	// ErrJobNotFound is returned when no job is registered under a name.
	ErrJobNotFound = errors.New("job not found")

	// ErrExecutionNotFound is returned when an execution record cannot be found by ID.
	ErrExecutionNotFound = errors.New("execution not found")

	// ErrEmptyJobName is returned when a job is registered without a name.
	ErrEmptyJobName = errors.New("job name cannot be empty")

	// ErrDuplicateJob is returned when a job name is registered twice.
	ErrDuplicateJob = errors.New("job name already registered")

	// ErrExecutionFinished is returned on an attempt to update an execution
	// record that already reached a terminal status.
	ErrExecutionFinished = errors.New("execution already reached a terminal status")
)
