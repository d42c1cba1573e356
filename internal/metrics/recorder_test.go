package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
	opDurations    map[string]int
	outcomes       map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		stageResults:   map[string]map[ResultLabel]int{},
		opDurations:    map[string]int{},
		outcomes:       map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}

func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}

func (t *testRecorder) ObserveOperationDuration(op string, _ time.Duration) { t.opDurations[op]++ }
func (t *testRecorder) IncOutcome(op string, r ResultLabel)                { t.outcomes[op+":"+string(r)]++ }
func (t *testRecorder) ObserveFiles(string, int)                           {}

func TestRecorderInterfaceSatisfied(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = (*PrometheusRecorder)(nil)
	var r Recorder = newTestRecorder()
	r.ObserveStageDuration("render", time.Millisecond)
	r.IncStageResult("render", ResultSuccess)
	r.IncOutcome(OperationGenerate, ResultSuccess)

	tr := r.(*testRecorder)
	if tr.stageDurations["render"] != 1 || tr.stageResults["render"][ResultSuccess] != 1 {
		t.Fatalf("unexpected stage counts: %+v %+v", tr.stageDurations, tr.stageResults)
	}
	if tr.outcomes["generate:success"] != 1 {
		t.Fatalf("unexpected outcomes: %+v", tr.outcomes)
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.ObserveStageDuration("x", time.Second)
	p.IncStageResult("x", ResultFailed)
	p.ObserveOperationDuration("x", time.Second)
	p.IncOutcome("x", ResultFailed)
	p.ObserveFiles("x", 1)
}
