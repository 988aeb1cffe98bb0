// Package common provides timing helpers shared by the frame path.
package common

import "time"

// StageTimer measures consecutive named stages of one operation. Each Mark
// closes the stage that started at the previous Mark.
type StageTimer struct {
	start  time.Time
	last   time.Time
	stages []Stage
}

// Stage is one measured step.
type Stage struct {
	Name     string
	Duration time.Duration
}

// NewStageTimer starts a timer.
func NewStageTimer() *StageTimer {
	now := time.Now()
	return &StageTimer{start: now, last: now}
}

// Mark ends the current stage under name and returns its duration.
func (t *StageTimer) Mark(name string) time.Duration {
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now
	t.stages = append(t.stages, Stage{Name: name, Duration: d})
	return d
}

// Stages returns the marked stages in order.
func (t *StageTimer) Stages() []Stage {
	return append([]Stage(nil), t.stages...)
}

// Total returns the time from start to the last Mark.
func (t *StageTimer) Total() time.Duration {
	return t.last.Sub(t.start)
}

// LogAttrs flattens the stages into slog key/value pairs ("decode_ms", 1.2).
func (t *StageTimer) LogAttrs() []any {
	attrs := make([]any, 0, 2*len(t.stages))
	for _, s := range t.stages {
		attrs = append(attrs, s.Name+"_ms", float64(s.Duration.Microseconds())/1000)
	}
	return attrs
}
