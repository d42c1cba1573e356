package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Operation names used as the "operation" label.
const (
	OperationGenerate = "generate"
	OperationBuild    = "build"
)

// Recorder defines observability hooks for generate/build operations and their stages.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveOperationDuration(operation string, d time.Duration)
	IncOutcome(operation string, result ResultLabel)
	ObserveFiles(operation string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)     {}
func (NoopRecorder) IncStageResult(string, ResultLabel)             {}
func (NoopRecorder) ObserveOperationDuration(string, time.Duration) {}
func (NoopRecorder) IncOutcome(string, ResultLabel)                 {}
func (NoopRecorder) ObserveFiles(string, int)                       {}

// ResultFor maps an error to its result label.
func ResultFor(err error) ResultLabel {
	if err != nil {
		return ResultFailed
	}
	return ResultSuccess
}
