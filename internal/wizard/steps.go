// Package wizard defines the onboarding step sequence, its completeness
// scoring, and the debounced autosave buffer for step fragments. The
// tracker only informs presentation: no step ever blocks navigation.
package wizard

import (
	"strings"

	"github.com/mkovalenko/avatara/internal/domain"
)

// Step is one unit of the onboarding flow. Each step owns a subset of
// persona fields and scores its own completeness in [0,100].
type Step struct {
	ID       string
	Title    string
	Optional bool

	// Score computes completeness from the fields this step owns.
	// materialCount is the number of training materials on record; only
	// the materials step reads it. A nil persona scores 0.
	Score func(p *domain.Persona, materialCount int) int
}

// CompleteThreshold is the per-step score at which a step counts as done.
const CompleteThreshold = 80

// Free-text length thresholds: half credit for a started answer, full
// credit for a substantive one.
const (
	freeTextHalf = 20
	freeTextFull = 120
)

// Steps returns the fixed ordered step list.
func Steps() []Step {
	return []Step{
		{ID: "identity", Title: "Basic Identity", Score: scoreIdentity},
		{ID: "tone", Title: "Tone of Voice", Score: scoreTone},
		{ID: "approach", Title: "Coaching Approach", Score: scoreApproach},
		{ID: "how-you-work", Title: "How You Work", Score: scoreHowYouWork},
		{ID: "boundaries", Title: "Boundaries", Score: scoreBoundaries},
		{ID: "materials", Title: "Training Materials", Optional: true, Score: scoreMaterials},
		{ID: "review", Title: "Review & Publish", Score: scoreReview},
	}
}

func scoreIdentity(p *domain.Persona, _ int) int {
	if p == nil {
		return 0
	}
	have := 0
	if strings.TrimSpace(p.Name) != "" {
		have++
	}
	if strings.TrimSpace(p.Headline) != "" {
		have++
	}
	if p.Certification != "" {
		have++
	}
	return have * 100 / 3
}

func scoreTone(p *domain.Persona, _ int) int {
	if p == nil {
		return 0
	}
	styleScore := freeTextScore(p.CommunicationStyle)

	sliderScore := 0
	if p.ToneWarmth != domain.ToneNeutral ||
		p.ToneFormality != domain.ToneNeutral ||
		p.TonePlayfulness != domain.ToneNeutral ||
		p.ToneEmpathy != domain.ToneNeutral {
		sliderScore = 100
	}

	if sliderScore > styleScore {
		return sliderScore
	}
	return styleScore
}

func scoreApproach(p *domain.Persona, _ int) int {
	if p == nil {
		return 0
	}
	return freeTextScore(p.CoachingApproach)
}

func scoreHowYouWork(p *domain.Persona, _ int) int {
	if p == nil {
		return 0
	}
	have := 0
	if strings.TrimSpace(p.ConversationFlow) != "" {
		have++
	}
	if strings.TrimSpace(p.KeyMoments) != "" {
		have++
	}
	return have * 100 / 2
}

func scoreBoundaries(p *domain.Persona, _ int) int {
	if p == nil {
		return 0
	}
	score := 0
	if len(p.AllowedTopics) > 0 || len(p.BlockedTopics) > 0 {
		score += 50
	}
	if strings.TrimSpace(p.CrisisResponse) != "" {
		score += 25
	}
	if strings.TrimSpace(p.OutOfScopeResponse) != "" {
		score += 25
	}
	return score
}

func scoreMaterials(p *domain.Persona, materialCount int) int {
	if p == nil {
		return 0
	}
	if materialCount > 0 {
		return 100
	}
	return 0
}

func scoreReview(p *domain.Persona, _ int) int {
	if p == nil {
		return 0
	}
	if strings.TrimSpace(p.Name) == "" {
		return 0
	}
	if p.IsPublished {
		return 100
	}
	return CompleteThreshold
}

func freeTextScore(s string) int {
	n := len(strings.TrimSpace(s))
	switch {
	case n >= freeTextFull:
		return 100
	case n >= freeTextHalf:
		return 50
	default:
		return 0
	}
}
