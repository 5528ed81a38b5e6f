package makespan

import (
	"errors"
	"fmt"

	"qsched/internal/binpack"
	"qsched/internal/qjob"
)

// ErrMissingCost means a strict scorer hit a (job, machine) or
// (pred, succ, machine) key absent from its time matrix.
var ErrMissingCost = errors.New("missing cost entry")

// ScoreFunc scores a fixed assignment and fills each record's
// CompletionTime. Records must arrive ordered by (generation, machine
// position, in-bin order); the per-machine job sequence is
// reconstructed from that order. Any implementation satisfying the
// finish-time recurrence is substitutable, including an LP solve.
type ScoreFunc func(records []qjob.JobRecord, proc qjob.ProcessTimes, setup qjob.SetupTimes) (float64, error)

// Flatten converts packed bins into schedule records: start time is the
// bin's generation, completion time stays at the sentinel until a
// scorer fills it. Bin order is preserved.
func Flatten(bins []binpack.Bin) []qjob.JobRecord {
	records := make([]qjob.JobRecord, 0, len(bins))
	for _, b := range bins {
		for _, j := range b.Jobs {
			records = append(records, qjob.JobRecord{
				Name:           j.ID,
				Machine:        b.Machine.Name,
				StartTime:      b.Generation,
				CompletionTime: qjob.UnscheduledCompletion,
			})
		}
	}
	return records
}

// Evaluate flattens the bin assignment and scores it, returning the
// overall makespan and the finalized records.
func Evaluate(bins []binpack.Bin, inst *qjob.Instance, score ScoreFunc) (float64, []qjob.JobRecord, error) {
	records := Flatten(bins)
	ms, err := score(records, inst.Proc, inst.Setup)
	if err != nil {
		return 0, nil, err
	}
	return ms, records, nil
}

// Score simulates the finish-time recurrence: on each machine, jobs run
// in record order; a job finishes at its predecessor's finish time (zero
// for the synthetic start) plus the (pred, job, machine) setup time plus
// its own process time. The makespan is the maximum finish time across
// machines. Missing matrix entries count as zero.
func Score(records []qjob.JobRecord, proc qjob.ProcessTimes, setup qjob.SetupTimes) (float64, error) {
	return simulate(records,
		func(job, machine string) (float64, error) {
			return proc.Value(job, machine), nil
		},
		func(pred, succ, machine string) (float64, error) {
			return setup.Value(pred, succ, machine), nil
		},
	)
}

// StrictScore is Score with missing matrix entries reported as errors
// instead of defaulting to zero.
func StrictScore(records []qjob.JobRecord, proc qjob.ProcessTimes, setup qjob.SetupTimes) (float64, error) {
	return simulate(records,
		func(job, machine string) (float64, error) {
			v, ok := proc.Lookup(job, machine)
			if !ok {
				return 0, fmt.Errorf("%w: process time for job %q on machine %q", ErrMissingCost, job, machine)
			}
			return v, nil
		},
		func(pred, succ, machine string) (float64, error) {
			v, ok := setup.Lookup(pred, succ, machine)
			if !ok {
				return 0, fmt.Errorf("%w: setup time for (%q, %q) on machine %q", ErrMissingCost, pred, succ, machine)
			}
			return v, nil
		},
	)
}

func simulate(
	records []qjob.JobRecord,
	procAt func(job, machine string) (float64, error),
	setupAt func(pred, succ, machine string) (float64, error),
) (float64, error) {
	last := make(map[string]string)
	finish := make(map[string]float64)

	makespan := 0.0
	for i := range records {
		r := &records[i]

		pred, ok := last[r.Machine]
		if !ok {
			pred = qjob.NoJob
		}

		st, err := setupAt(pred, r.Name, r.Machine)
		if err != nil {
			return 0, err
		}
		pt, err := procAt(r.Name, r.Machine)
		if err != nil {
			return 0, err
		}

		done := finish[r.Machine] + st + pt
		r.CompletionTime = done
		finish[r.Machine] = done
		last[r.Machine] = r.Name

		if done > makespan {
			makespan = done
		}
	}
	return makespan, nil
}
