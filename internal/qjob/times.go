package qjob

// ProcKey indexes the process-time matrix.
type ProcKey struct {
	Job     string
	Machine string
}

// SetupKey indexes the setup-time matrix. Pred may be NoJob for the
// first job on a machine.
type SetupKey struct {
	Pred    string
	Succ    string
	Machine string
}

// ProcessTimes maps (job, machine) to the processing time of that job
// on that machine, as supplied by the estimator.
type ProcessTimes map[ProcKey]float64

// Value returns the process time for (job, machine). Missing entries
// count as zero, matching the baseline cost model.
func (p ProcessTimes) Value(job, machine string) float64 {
	return p[ProcKey{Job: job, Machine: machine}]
}

// Lookup reports whether an entry exists, for strict-mode callers.
func (p ProcessTimes) Lookup(job, machine string) (float64, bool) {
	v, ok := p[ProcKey{Job: job, Machine: machine}]
	return v, ok
}

// SetupTimes maps (predecessor, successor, machine) to the extra time
// incurred when successor runs right after predecessor on machine.
type SetupTimes map[SetupKey]float64

// Value returns the setup time for (pred, succ, machine). Missing
// entries count as zero, matching the baseline cost model.
func (s SetupTimes) Value(pred, succ, machine string) float64 {
	return s[SetupKey{Pred: pred, Succ: succ, Machine: machine}]
}

// Lookup reports whether an entry exists, for strict-mode callers.
func (s SetupTimes) Lookup(pred, succ, machine string) (float64, bool) {
	v, ok := s[SetupKey{Pred: pred, Succ: succ, Machine: machine}]
	return v, ok
}
