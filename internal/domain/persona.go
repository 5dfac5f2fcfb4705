package domain

import (
	"strings"
	"time"
)

// ToneNeutral is the resting value for every tone slider. A slider at this
// value contributes nothing to the compiled instruction.
const ToneNeutral = 50

// Persona is the full configuration of one coaching avatar. All fields are
// owned by exactly one wizard step and merged in via PersonaPatch; untouched
// fields are never overwritten.
type Persona struct {
	ID      string
	CoachID string

	// Identity
	Name          string
	Headline      string
	PhotoURL      string
	Certification CertificationStatus
	Affiliations  []string
	LinkedIn      string
	Instagram     string
	Website       string

	// Tone sliders, each in [0,100]. Use SetTone to keep them clamped.
	ToneWarmth      int
	ToneFormality   int
	TonePlayfulness int
	ToneEmpathy     int

	CommunicationStyle string

	// Approach
	CoachingApproach string
	ConversationFlow string
	KeyMoments       string

	// Boundaries. AllowedTopics and BlockedTopics are kept disjoint by
	// AllowTopic/BlockTopic.
	AllowedTopics      []string
	BlockedTopics      []string
	CrisisResponse     string
	OutOfScopeResponse string

	IsPublished   bool
	CompletionPct int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Default boundary content seeded on first use, matching the onboarding
// defaults shown to every new coach.
var (
	DefaultAllowedTopics = []string{
		"Goal clarity",
		"Accountability",
		"Leadership challenges",
		"Career transitions",
		"Work-life balance",
	}
	DefaultBlockedTopics = []string{
		"Clinical mental health",
		"Legal issues",
		"Medical decisions",
		"Acute crisis",
		"Financial advice",
	}
)

const (
	DefaultCrisisResponse = "I hear that you're going through something really difficult right now. " +
		"Your safety and wellbeing are the priority. I'd encourage you to reach out to a crisis " +
		"helpline or mental health professional who can provide immediate support. " +
		"Would you like me to share some resources?"

	DefaultOutOfScopeResponse = "I appreciate you sharing that with me. This topic falls outside " +
		"my area of expertise as a coaching avatar. I'd recommend speaking with a qualified " +
		"professional who specializes in this area. Is there something else I can help you with today?"
)

// NewPersona returns a persona with all defaults for a coach's first use:
// neutral tone sliders, the default topic boundaries, and the default canned
// responses.
func NewPersona(coachID string) *Persona {
	now := time.Now().UTC()
	return &Persona{
		CoachID:            coachID,
		Certification:      CertNone,
		ToneWarmth:         ToneNeutral,
		ToneFormality:      ToneNeutral,
		TonePlayfulness:    ToneNeutral,
		ToneEmpathy:        ToneNeutral,
		AllowedTopics:      append([]string(nil), DefaultAllowedTopics...),
		BlockedTopics:      append([]string(nil), DefaultBlockedTopics...),
		CrisisResponse:     DefaultCrisisResponse,
		OutOfScopeResponse: DefaultOutOfScopeResponse,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// ClampTone forces a slider value into [0,100]. Out-of-range input is
// clamped, never rejected, so a form can apply slider values verbatim.
func ClampTone(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SetTones writes all four sliders, clamping each to [0,100].
func (p *Persona) SetTones(warmth, formality, playfulness, empathy int) {
	p.ToneWarmth = ClampTone(warmth)
	p.ToneFormality = ClampTone(formality)
	p.TonePlayfulness = ClampTone(playfulness)
	p.ToneEmpathy = ClampTone(empathy)
}

// AllowTopic adds a topic to the allowed set, removing it from the blocked
// set if present. The two sets never intersect.
func (p *Persona) AllowTopic(topic string) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return
	}
	p.BlockedTopics = removeTopic(p.BlockedTopics, topic)
	if !containsTopic(p.AllowedTopics, topic) {
		p.AllowedTopics = append(p.AllowedTopics, topic)
	}
}

// BlockTopic adds a topic to the blocked set, removing it from the allowed
// set if present.
func (p *Persona) BlockTopic(topic string) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return
	}
	p.AllowedTopics = removeTopic(p.AllowedTopics, topic)
	if !containsTopic(p.BlockedTopics, topic) {
		p.BlockedTopics = append(p.BlockedTopics, topic)
	}
}

func containsTopic(topics []string, topic string) bool {
	for _, t := range topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}

func removeTopic(topics []string, topic string) []string {
	out := topics[:0]
	for _, t := range topics {
		if !strings.EqualFold(t, topic) {
			out = append(out, t)
		}
	}
	return out
}

// DisplayName returns the best short identifier for display.
func (p *Persona) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
