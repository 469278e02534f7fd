package domain

// IterationResult is the terminal state of one build iteration. Exactly one
// of Artifacts or Err is set.
type IterationResult struct {
	Key Key
	// Artifacts are the staged file paths on success.
	Artifacts []string
	// Err is the failure that abandoned the iteration.
	Err error
}

// Succeeded reports whether the iteration staged its artifacts.
func (r IterationResult) Succeeded() bool {
	return r.Err == nil
}

// RunReport aggregates per-iteration results. The driver never raises past
// iteration boundaries; it records and continues.
type RunReport struct {
	Results []IterationResult
}

// Add appends a result to the report.
func (r *RunReport) Add(res IterationResult) {
	r.Results = append(r.Results, res)
}

// Failed returns the results of all abandoned iterations.
func (r *RunReport) Failed() []IterationResult {
	var failed []IterationResult
	for _, res := range r.Results {
		if !res.Succeeded() {
			failed = append(failed, res)
		}
	}
	return failed
}

// AllFailed reports whether every attempted iteration was abandoned.
func (r *RunReport) AllFailed() bool {
	return len(r.Results) > 0 && len(r.Failed()) == len(r.Results)
}
