package sched

import (
	"context"
	"time"

	"qsched/internal/qjob"
)

// Scheduler produces a schedule and its makespan for one instance.
// The baseline packer implements it; a solver-backed generator would
// plug in here for comparison.
type Scheduler interface {
	Schedule(ctx context.Context, inst *qjob.Instance) (Result, error)
}

type Result struct {
	Makespan    float64
	Records     []qjob.JobRecord
	Bins        int
	Generations int
	Duration    time.Duration
	Meta        map[string]any
}
