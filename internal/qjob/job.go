package qjob

import "github.com/google/uuid"

// NoJob is the synthetic "no predecessor" identifier used in setup-time
// lookups for the first job on a machine. Real job IDs must not use it.
const NoJob = "0"

// DefaultShots is the shot count jobs are submitted with unless the
// caller says otherwise.
const DefaultShots = 1024

// Job is one unit of work to schedule: a circuit needing Qubits qubits
// for Shots shots. Immutable once created.
type Job struct {
	ID     string
	UUID   uuid.UUID
	Qubits int
	Shots  int
}

// NewJob stamps a job with a fresh UUID and the default shot count.
func NewJob(id string, qubits int) Job {
	return Job{ID: id, UUID: uuid.New(), Qubits: qubits, Shots: DefaultShots}
}

// Machine is one backend of the fleet, identified by name, with a fixed
// qubit capacity. The fleet is an ordered slice: bin-to-machine binding
// follows slice order.
type Machine struct {
	Name   string
	Qubits int
}
