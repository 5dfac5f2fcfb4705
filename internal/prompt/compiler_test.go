package prompt

import (
	"strings"
	"testing"

	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullPersona() *domain.Persona {
	p := domain.NewPersona("coach-1")
	p.Name = "Coach Ana"
	p.Headline = "Executive leadership coach"
	p.Certification = domain.CertCertified
	p.Affiliations = []string{"ICF", "EMCC"}
	p.SetTones(80, 30, 50, 90)
	p.CommunicationStyle = "Short sentences, lots of questions."
	p.CoachingApproach = "Solution-focused coaching."
	p.ConversationFlow = "Open with a check-in, close with commitments."
	p.KeyMoments = "Celebrate small wins."
	return p
}

func TestCompile_Deterministic(t *testing.T) {
	p := fullPersona()
	assert.Equal(t, Compile(p), Compile(p))
}

func TestCompile_StartsWithLanguageDirective(t *testing.T) {
	assert.True(t, strings.HasPrefix(Compile(fullPersona()), "LANGUAGE:"))
	assert.True(t, strings.HasPrefix(Compile(nil), "LANGUAGE:"))
}

func TestCompile_EndsWithClosingGuidance(t *testing.T) {
	assert.True(t, strings.HasSuffix(Compile(fullPersona()), closingGuidance))
	assert.True(t, strings.HasSuffix(Compile(nil), closingGuidance))
}

func TestCompile_NilPersona_GenericFallback(t *testing.T) {
	got := Compile(nil)
	want := strings.Join([]string{languageDirective, genericIdentity, closingGuidance}, "\n\n")
	assert.Equal(t, want, got)
}

func TestCompile_ZeroPersona_SameAsNil(t *testing.T) {
	p := &domain.Persona{
		ToneWarmth:      domain.ToneNeutral,
		ToneFormality:   domain.ToneNeutral,
		TonePlayfulness: domain.ToneNeutral,
		ToneEmpathy:     domain.ToneNeutral,
	}
	assert.Equal(t, Compile(nil), Compile(p))
}

func TestCompile_IdentityWithHeadline(t *testing.T) {
	got := Compile(fullPersona())
	assert.Contains(t, got, "You are Coach Ana, Executive leadership coach.")
}

func TestCompile_IdentityDeduplication(t *testing.T) {
	p := fullPersona()
	p.Headline = "  coach ana "

	got := Compile(p)
	assert.Contains(t, got, "You are Coach Ana, an AI coaching assistant.")
	assert.NotContains(t, got, "Coach Ana, coach ana")
}

func TestCompile_NeutralTones_NoToneSentence(t *testing.T) {
	p := fullPersona()
	p.SetTones(50, 50, 50, 50)

	assert.NotContains(t, Compile(p), "Your communication style:")
}

func TestCompile_ToneThresholds(t *testing.T) {
	p := fullPersona()
	p.SetTones(80, 30, 50, 90)

	got := Compile(p)
	assert.Contains(t, got, "Your communication style: warm and friendly, relaxed and approachable, deeply empathetic.")
	assert.NotContains(t, got, "witty")
	assert.NotContains(t, got, "serious and focused")
}

func TestCompile_CertificationClauses(t *testing.T) {
	p := fullPersona()
	assert.Contains(t, Compile(p), "You are a certified coach, affiliated with ICF, EMCC.")

	p.Affiliations = nil
	assert.Contains(t, Compile(p), "You are a certified coach.")

	p.Certification = domain.CertInProcess
	assert.Contains(t, Compile(p), "certification process")

	p.Certification = domain.CertNone
	assert.NotContains(t, Compile(p), "certified")
}

func TestCompile_TopicClauses(t *testing.T) {
	p := fullPersona()
	got := Compile(p)

	assert.Contains(t, got, "Topics you can discuss: Goal clarity, Accountability,")
	assert.Contains(t, got, "Topics you must NOT discuss or give advice on: Clinical mental health,")
	assert.Contains(t, got, "politely redirect")
}

func TestCompile_CannedResponsesQuoted(t *testing.T) {
	p := fullPersona()
	p.CrisisResponse = "Please reach out to a crisis line."
	p.OutOfScopeResponse = "That is outside my expertise."

	got := Compile(p)
	assert.Contains(t, got, `respond with: "Please reach out to a crisis line."`)
	assert.Contains(t, got, `respond with: "That is outside my expertise."`)
}

func TestCompile_ScenarioDuplicateNameWarmOnly(t *testing.T) {
	p := &domain.Persona{
		Name:            "Coach Ana",
		Headline:        "Coach Ana",
		ToneWarmth:      80,
		ToneFormality:   domain.ToneNeutral,
		TonePlayfulness: domain.ToneNeutral,
		ToneEmpathy:     domain.ToneNeutral,
	}
	got := Compile(p)

	require.Equal(t, 1, strings.Count(got, "You are Coach Ana"))
	assert.Contains(t, got, "You are Coach Ana, an AI coaching assistant.")
	assert.NotContains(t, got, "Coach Ana, Coach Ana")

	assert.Equal(t, 1, strings.Count(got, "Your communication style:"))
	assert.Contains(t, got, "Your communication style: warm and friendly.")

	assert.NotContains(t, got, "Topics you can discuss")
	assert.NotContains(t, got, "Topics you must NOT")
	assert.True(t, strings.HasSuffix(got, closingGuidance))
}

func TestGreeting_WithHeadline(t *testing.T) {
	p := fullPersona()
	assert.Equal(t, "Hi! I'm Coach Ana, Executive leadership coach. How can I help you today?", Greeting(p))
}

func TestGreeting_Deduplication(t *testing.T) {
	p := fullPersona()
	p.Headline = "Coach Ana"
	got := Greeting(p)

	assert.Equal(t, "Hi! I'm Coach Ana, your coaching avatar. How can I help you today?", got)
	assert.Equal(t, 1, strings.Count(got, "Coach Ana"))
}

func TestGreeting_NilPersona(t *testing.T) {
	assert.Equal(t, "Hi! I'm your coaching assistant, your coaching avatar. How can I help you today?", Greeting(nil))
}
