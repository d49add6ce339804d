package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// SlowThreshold is the run time above which a StageTimer logs a warning.
const SlowThreshold = 5 * time.Second

// Stage is the measured duration of one named step.
type Stage struct {
	Name     string
	Duration time.Duration
}

// StageTimer measures consecutive steps of one operation.
//
// Usage:
//
//	timer := utils.NewStageTimer("analysis", log)
//	normalize()
//	timer.Mark("normalize")
//	match()
//	timer.Mark("match")
//	timer.Done()
type StageTimer struct {
	operation string
	start     time.Time
	last      time.Time
	stages    []Stage
	now       func() time.Time
	log       zerolog.Logger
}

// NewStageTimer starts timing operation.
func NewStageTimer(operation string, log zerolog.Logger) *StageTimer {
	return newStageTimer(operation, log, time.Now)
}

func newStageTimer(operation string, log zerolog.Logger, now func() time.Time) *StageTimer {
	start := now()
	return &StageTimer{
		operation: operation,
		start:     start,
		last:      start,
		now:       now,
		log:       log,
	}
}

// Mark closes the current stage under name and starts the next one.
func (t *StageTimer) Mark(name string) {
	at := t.now()
	t.stages = append(t.stages, Stage{Name: name, Duration: at.Sub(t.last)})
	t.last = at
}

// Stages returns the stages marked so far.
func (t *StageTimer) Stages() []Stage {
	return append([]Stage(nil), t.stages...)
}

// Done logs every stage at debug level and returns the total duration.
// Runs slower than SlowThreshold are also logged as a warning.
func (t *StageTimer) Done() time.Duration {
	total := t.now().Sub(t.start)

	event := t.log.Debug().
		Str("operation", t.operation).
		Dur("duration_ms", total)
	for _, s := range t.stages {
		event = event.Dur(s.Name+"_ms", s.Duration)
	}
	event.Msg("Performance measurement")

	if total > SlowThreshold {
		t.log.Warn().
			Str("operation", t.operation).
			Dur("duration", total).
			Msg("Slow operation detected")
	}

	return total
}
