package qjob

import (
	"math/rand"
	"strconv"
)

// backendSizes are the qubit counts the fleet generator draws from,
// matching the small superconducting devices the time matrices are
// estimated for.
var backendSizes = []int{5, 7, 16, 27}

// RandomFleet generates n machines with capacities drawn from
// backendSizes, named qpu0..qpu{n-1}.
func RandomFleet(n int, rng *rand.Rand) []Machine {
	if rng == nil {
		panic("rng is nil")
	}
	if n <= 0 {
		panic("fleet size must be > 0")
	}
	fleet := make([]Machine, n)
	for i := range fleet {
		fleet[i] = Machine{
			Name:   "qpu" + strconv.Itoa(i),
			Qubits: backendSizes[rng.Intn(len(backendSizes))],
		}
	}
	return fleet
}

// RandomInstance generates a feasible instance over the given fleet:
// every job fits the largest machine, process times scale with the
// job's width and shot count against a per-machine shot time, and
// setup times scale with a per-machine reconfiguration penalty.
// Jobs are named "1".."n" so NoJob never collides.
func RandomInstance(jobs int, fleet []Machine, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("rng is nil")
	}
	if len(fleet) == 0 {
		panic("fleet is empty")
	}

	maxQ := 0
	for _, m := range fleet {
		if m.Qubits > maxQ {
			maxQ = m.Qubits
		}
	}

	js := make([]Job, jobs)
	for i := range js {
		js[i] = NewJob(strconv.Itoa(i+1), 1+rng.Intn(maxQ))
	}

	// Per-machine time characteristics, fixed for the instance.
	shotTime := make([]float64, len(fleet))
	reconfTime := make([]float64, len(fleet))
	for i := range fleet {
		shotTime[i] = 0.5 + rng.Float64()
		reconfTime[i] = rng.Float64() * 5
	}

	proc := make(ProcessTimes, len(js)*len(fleet))
	for _, j := range js {
		for mi, m := range fleet {
			perShot := float64(j.Qubits) * (0.9 + 0.2*rng.Float64())
			proc[ProcKey{Job: j.ID, Machine: m.Name}] = perShot * shotTime[mi] * float64(j.Shots) / float64(DefaultShots)
		}
	}

	preds := make([]string, 0, len(js)+1)
	preds = append(preds, NoJob)
	for _, j := range js {
		preds = append(preds, j.ID)
	}
	setup := make(SetupTimes, len(preds)*len(js)*len(fleet))
	for _, pred := range preds {
		for _, j := range js {
			if pred == j.ID {
				continue
			}
			for mi, m := range fleet {
				setup[SetupKey{Pred: pred, Succ: j.ID, Machine: m.Name}] = reconfTime[mi] * (0.5 + rng.Float64())
			}
		}
	}

	inst, err := NewInstance(js, fleet, proc, setup)
	if err != nil {
		panic(err)
	}
	return inst
}
