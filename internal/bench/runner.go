package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"qsched/internal/qjob"
	"qsched/internal/sched"
)

type Algorithm struct {
	Name string
	// Factory builds a fresh scheduler per run. The baseline ignores
	// the seed; stochastic schedulers consume it.
	Factory func(seed int64) sched.Scheduler
}

type Case struct {
	Jobs         int
	Machines     int
	InstanceSeed int64
	// Fleet overrides the randomly generated fleet when non-empty;
	// Machines is ignored then.
	Fleet []qjob.Machine
}

type Record struct {
	Algo     string
	Jobs     int
	Machines int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest float64
	MakespanMean float64
	MakespanStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
	Log           zerolog.Logger
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	instRng := randForSeed(c.InstanceSeed)

	fleet := c.Fleet
	if len(fleet) == 0 {
		fleet = qjob.RandomFleet(c.Machines, instRng)
	}
	inst := qjob.RandomInstance(c.Jobs, fleet, instRng)

	makespans := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		sc := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := sc.Schedule(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: schedule error: %w", i, err)
		}
		if len(res.Records) != len(inst.Jobs) {
			return Record{}, fmt.Errorf("run %d: schedule has %d records (want %d)", i, len(res.Records), len(inst.Jobs))
		}

		r.Log.Debug().
			Str("algo", algo.Name).
			Int("run", i).
			Float64("makespan", res.Makespan).
			Int("bins", res.Bins).
			Int("generations", res.Generations).
			Dur("took", dur).
			Msg("run finished")

		makespans = append(makespans, res.Makespan)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	msStats := CalcFloatStats(makespans)
	tStats := CalcFloatStats(timesMs)

	r.Log.Info().
		Str("algo", algo.Name).
		Int("jobs", c.Jobs).
		Int("machines", len(fleet)).
		Int("runs", r.Runs).
		Float64("makespan_best", msStats.Best).
		Float64("makespan_mean", msStats.Mean).
		Float64("time_mean_ms", tStats.Mean).
		Msg("case finished")

	return Record{
		Algo:     algo.Name,
		Jobs:     c.Jobs,
		Machines: len(fleet),
		Runs:     r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,
	}, nil
}
