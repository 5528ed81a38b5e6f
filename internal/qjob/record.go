package qjob

// UnscheduledCompletion marks a record whose completion time has not
// been filled in by the makespan evaluator yet.
const UnscheduledCompletion = -1.0

// JobRecord is one finalized schedule entry. StartTime is the discrete
// slot (the bin's generation index); CompletionTime stays at
// UnscheduledCompletion until the evaluator fills it.
type JobRecord struct {
	Name           string
	Machine        string
	StartTime      int
	CompletionTime float64
}
