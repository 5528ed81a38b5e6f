package binpack

import (
	"errors"
	"fmt"
	"sort"

	"qsched/internal/qjob"
)

// ErrInfeasible means a job's qubit requirement exceeds every machine's
// nominal capacity, so no bin of any generation can ever hold it.
var ErrInfeasible = errors.New("job does not fit onto any machine")

// Bin holds jobs for one machine in one discrete time slot. Capacity is
// the remaining capacity while the bin is open; Generation doubles as
// the slot index in the produced schedule.
type Bin struct {
	Generation int
	MachinePos int
	Machine    qjob.Machine
	Capacity   int
	Jobs       []qjob.Job
	Full       bool
}

// newGeneration stamps one fresh bin per machine, in fleet order. Each
// generation gets its own snapshot of the fleet capacities; bins never
// share state across generations.
func newGeneration(gen int, machines []qjob.Machine) []*Bin {
	bins := make([]*Bin, len(machines))
	for pos, m := range machines {
		bins[pos] = &Bin{
			Generation: gen,
			MachinePos: pos,
			Machine:    m,
			Capacity:   m.Qubits,
		}
	}
	return bins
}

// findFit returns the index of the first bin with enough remaining
// capacity, or -1. First-fit: ties break by encounter order.
func findFit(job qjob.Job, bins []*Bin) int {
	for idx, b := range bins {
		if b.Capacity >= job.Qubits {
			return idx
		}
	}
	return -1
}

// Pack assigns jobs to capacity-respecting bins in a single left-to-right
// pass. When no open bin fits the current job, a whole new generation of
// bins is opened and the search repeats over the new bins only. A bin
// whose remaining capacity hits exactly zero closes immediately; all
// non-empty bins close at the end. Output is sorted by generation, then
// machine position within a generation.
func Pack(jobs []qjob.Job, machines []qjob.Machine) ([]Bin, error) {
	if len(machines) == 0 {
		return nil, errors.New("machine fleet is empty")
	}

	open := newGeneration(0, machines)
	closed := make([]*Bin, 0, len(jobs))
	nextGen := 1

	for _, job := range jobs {
		idx := findFit(job, open)
		if idx < 0 {
			fresh := newGeneration(nextGen, machines)
			nextGen++

			idx = findFit(job, fresh)
			if idx < 0 {
				return nil, fmt.Errorf("job %q requires %d qubits: %w", job.ID, job.Qubits, ErrInfeasible)
			}
			idx += len(open)
			open = append(open, fresh...)
		}

		b := open[idx]
		b.Jobs = append(b.Jobs, job)
		b.Capacity -= job.Qubits

		if b.Capacity == 0 {
			b.Full = true
			closed = append(closed, b)
			open = append(open[:idx], open[idx+1:]...)
		}
	}

	for _, b := range open {
		if len(b.Jobs) > 0 {
			closed = append(closed, b)
		}
	}

	sort.SliceStable(closed, func(i, j int) bool {
		if closed[i].Generation != closed[j].Generation {
			return closed[i].Generation < closed[j].Generation
		}
		return closed[i].MachinePos < closed[j].MachinePos
	})

	out := make([]Bin, len(closed))
	for i, b := range closed {
		out[i] = *b
	}
	return out, nil
}
