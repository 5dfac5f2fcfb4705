package wizard

import "github.com/mkovalenko/avatara/internal/domain"

// StepScore is one step's evaluated completeness.
type StepScore struct {
	Step     Step
	Score    int
	Complete bool
}

// Progress is the evaluated completeness of the whole flow.
type Progress struct {
	Steps   []StepScore
	Overall int
}

// Evaluate scores every step against the persona. Overall is the rounded
// unweighted mean of per-step scores and is always in [0,100]: 0 for a
// fully-empty persona, 100 only when every step is fully satisfied.
func Evaluate(p *domain.Persona, materialCount int) Progress {
	steps := Steps()
	out := Progress{Steps: make([]StepScore, 0, len(steps))}

	sum := 0
	for _, step := range steps {
		score := step.Score(p, materialCount)
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		sum += score
		out.Steps = append(out.Steps, StepScore{
			Step:     step,
			Score:    score,
			Complete: score >= CompleteThreshold,
		})
	}

	// Round half up to the nearest integer.
	out.Overall = (sum + len(steps)/2) / len(steps)
	return out
}

// Tracker addresses steps by index. Forward and back always succeed; the
// tracker never locks a step, whatever its score.
type Tracker struct {
	steps []Step
	index int
}

// NewTracker creates a tracker positioned at the first step.
func NewTracker() *Tracker {
	return &Tracker{steps: Steps()}
}

// Current returns the step at the cursor.
func (t *Tracker) Current() Step { return t.steps[t.index] }

// Index returns the cursor position.
func (t *Tracker) Index() int { return t.index }

// Len returns the number of steps.
func (t *Tracker) Len() int { return len(t.steps) }

// Next advances the cursor, saturating at the last step. It reports
// whether the cursor moved.
func (t *Tracker) Next() bool {
	if t.index >= len(t.steps)-1 {
		return false
	}
	t.index++
	return true
}

// Back retreats the cursor, saturating at the first step.
func (t *Tracker) Back() bool {
	if t.index <= 0 {
		return false
	}
	t.index--
	return true
}

// Goto jumps to the step at index i, clamped into range.
func (t *Tracker) Goto(i int) {
	if i < 0 {
		i = 0
	}
	if i > len(t.steps)-1 {
		i = len(t.steps) - 1
	}
	t.index = i
}
