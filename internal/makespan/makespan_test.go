package makespan

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qsched/internal/binpack"
	"qsched/internal/qjob"
)

func TestScoreSingleMachineRecurrence(t *testing.T) {
	records := []qjob.JobRecord{
		{Name: "1", Machine: "qpu0", StartTime: 0, CompletionTime: qjob.UnscheduledCompletion},
		{Name: "2", Machine: "qpu0", StartTime: 1, CompletionTime: qjob.UnscheduledCompletion},
	}
	proc := qjob.ProcessTimes{
		{Job: "1", Machine: "qpu0"}: 2,
		{Job: "2", Machine: "qpu0"}: 3,
	}
	setup := qjob.SetupTimes{
		{Pred: qjob.NoJob, Succ: "1", Machine: "qpu0"}: 1,
		{Pred: "1", Succ: "2", Machine: "qpu0"}:        0.5,
	}

	ms, err := Score(records, proc, setup)
	require.NoError(t, err)

	// 0 + 1 + 2 = 3, then 3 + 0.5 + 3 = 6.5.
	assert.InDelta(t, 6.5, ms, 1e-9)
	assert.InDelta(t, 3.0, records[0].CompletionTime, 1e-9)
	assert.InDelta(t, 6.5, records[1].CompletionTime, 1e-9)
}

func TestScoreMakespanIsMaxOverMachines(t *testing.T) {
	records := []qjob.JobRecord{
		{Name: "1", Machine: "qpu0"},
		{Name: "2", Machine: "qpu1"},
	}
	proc := qjob.ProcessTimes{
		{Job: "1", Machine: "qpu0"}: 4,
		{Job: "2", Machine: "qpu1"}: 9,
	}

	ms, err := Score(records, proc, qjob.SetupTimes{})
	require.NoError(t, err)
	assert.InDelta(t, 9.0, ms, 1e-9)
}

func TestScoreMissingEntriesDefaultToZero(t *testing.T) {
	records := []qjob.JobRecord{
		{Name: "1", Machine: "qpu0"},
		{Name: "2", Machine: "qpu0"},
	}
	proc := qjob.ProcessTimes{
		{Job: "1", Machine: "qpu0"}: 2,
		{Job: "2", Machine: "qpu0"}: 3,
	}

	// No setup entries at all: every lookup quietly costs zero.
	ms, err := Score(records, proc, qjob.SetupTimes{})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, ms, 1e-9)
}

func TestScoreEmptySchedule(t *testing.T) {
	ms, err := Score(nil, qjob.ProcessTimes{}, qjob.SetupTimes{})
	require.NoError(t, err)
	assert.Zero(t, ms)
}

func TestStrictScoreMissingProcessTime(t *testing.T) {
	records := []qjob.JobRecord{{Name: "1", Machine: "qpu0"}}
	setup := qjob.SetupTimes{
		{Pred: qjob.NoJob, Succ: "1", Machine: "qpu0"}: 0,
	}

	_, err := StrictScore(records, qjob.ProcessTimes{}, setup)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCost)
}

func TestStrictScoreMissingSetupTime(t *testing.T) {
	records := []qjob.JobRecord{{Name: "1", Machine: "qpu0"}}
	proc := qjob.ProcessTimes{
		{Job: "1", Machine: "qpu0"}: 1,
	}

	_, err := StrictScore(records, proc, qjob.SetupTimes{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCost)
}

func TestFlattenSetsSentinelAndStartTimes(t *testing.T) {
	bins := []binpack.Bin{
		{
			Generation: 0,
			Machine:    qjob.Machine{Name: "qpu0", Qubits: 4},
			Jobs:       []qjob.Job{{ID: "1", Qubits: 2}, {ID: "2", Qubits: 2}},
		},
		{
			Generation: 1,
			Machine:    qjob.Machine{Name: "qpu0", Qubits: 4},
			Jobs:       []qjob.Job{{ID: "3", Qubits: 3}},
		},
	}

	records := Flatten(bins)
	require.Len(t, records, 3)

	assert.Equal(t, qjob.JobRecord{Name: "1", Machine: "qpu0", StartTime: 0, CompletionTime: qjob.UnscheduledCompletion}, records[0])
	assert.Equal(t, qjob.JobRecord{Name: "2", Machine: "qpu0", StartTime: 0, CompletionTime: qjob.UnscheduledCompletion}, records[1])
	assert.Equal(t, qjob.JobRecord{Name: "3", Machine: "qpu0", StartTime: 1, CompletionTime: qjob.UnscheduledCompletion}, records[2])
}

func TestEvaluateLowerBound(t *testing.T) {
	// Setup times are nonnegative, so each machine's process-time sum
	// bounds the makespan from below.
	rng := rand.New(rand.NewSource(5))
	fl := qjob.RandomFleet(3, rng)
	inst := qjob.RandomInstance(30, fl, rng)

	bins, err := binpack.Pack(inst.Jobs, inst.Machines)
	require.NoError(t, err)

	ms, records, err := Evaluate(bins, inst, Score)
	require.NoError(t, err)
	require.Len(t, records, len(inst.Jobs))

	perMachine := make(map[string]float64)
	for _, r := range records {
		perMachine[r.Machine] += inst.Proc.Value(r.Name, r.Machine)
		assert.GreaterOrEqual(t, r.CompletionTime, 0.0)
	}
	for machine, sum := range perMachine {
		assert.GreaterOrEqual(t, ms, sum-1e-9, "machine %s", machine)
	}
}
