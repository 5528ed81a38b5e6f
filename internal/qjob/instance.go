package qjob

import (
	"errors"
	"fmt"
)

// Instance is one complete scheduling problem: the jobs to place, the
// machine fleet, and the two cost matrices the evaluator scores with.
type Instance struct {
	Jobs     []Job
	Machines []Machine
	Proc     ProcessTimes
	Setup    SetupTimes
}

func NewInstance(jobs []Job, machines []Machine, proc ProcessTimes, setup SetupTimes) (*Instance, error) {
	inst := &Instance{Jobs: jobs, Machines: machines, Proc: proc, Setup: setup}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if len(inst.Machines) == 0 {
		return errors.New("machine fleet is empty")
	}

	machineNames := make(map[string]struct{}, len(inst.Machines))
	for i, m := range inst.Machines {
		if m.Name == "" {
			return fmt.Errorf("machine %d has empty name", i)
		}
		if _, dup := machineNames[m.Name]; dup {
			return fmt.Errorf("duplicate machine name %q", m.Name)
		}
		machineNames[m.Name] = struct{}{}
		if m.Qubits <= 0 {
			return fmt.Errorf("machine %q capacity must be > 0 (got %d)", m.Name, m.Qubits)
		}
	}

	jobIDs := make(map[string]struct{}, len(inst.Jobs))
	for i, j := range inst.Jobs {
		if j.ID == "" {
			return fmt.Errorf("job %d has empty id", i)
		}
		if j.ID == NoJob {
			return fmt.Errorf("job id %q is reserved for the setup-time sentinel", NoJob)
		}
		if _, dup := jobIDs[j.ID]; dup {
			return fmt.Errorf("duplicate job id %q", j.ID)
		}
		jobIDs[j.ID] = struct{}{}
		if j.Qubits <= 0 {
			return fmt.Errorf("job %q qubit requirement must be > 0 (got %d)", j.ID, j.Qubits)
		}
		if j.Shots < 0 {
			return fmt.Errorf("job %q shot count must be >= 0 (got %d)", j.ID, j.Shots)
		}
	}

	for k, v := range inst.Proc {
		if v < 0 {
			return fmt.Errorf("process time for (%q, %q) must be >= 0 (got %f)", k.Job, k.Machine, v)
		}
	}
	for k, v := range inst.Setup {
		if v < 0 {
			return fmt.Errorf("setup time for (%q, %q, %q) must be >= 0 (got %f)", k.Pred, k.Succ, k.Machine, v)
		}
	}
	return nil
}

// MaxQubits returns the largest machine capacity in the fleet.
func (inst *Instance) MaxQubits() int {
	maxQ := 0
	for _, m := range inst.Machines {
		if m.Qubits > maxQ {
			maxQ = m.Qubits
		}
	}
	return maxQ
}
