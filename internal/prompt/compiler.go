// Package prompt renders a persona configuration into the system
// instruction consumed by the completion client. Compilation is a pure
// function: the same persona always yields byte-identical output.
package prompt

import (
	"fmt"
	"strings"

	"github.com/mkovalenko/avatara/internal/domain"
)

// languageDirective is always the first clause. Language matching is
// delegated to the model; the pair named here is only the default hint.
const languageDirective = `LANGUAGE: Reply in the language the user writes in. ` +
	`If the user writes in Ukrainian, reply in Ukrainian; if in English, reply in English. ` +
	`If the user asks to switch languages, switch to the requested language. ` +
	`Primary languages: Ukrainian and English.`

// genericIdentity is used when no persona is configured at all.
const genericIdentity = `You are a helpful AI coaching assistant. ` +
	`You support people and help them achieve their goals.`

// genericDescriptor replaces the headline when it would repeat the name.
const genericDescriptor = "an AI coaching assistant"

// closingGuidance is always the last clause.
const closingGuidance = `Remember:
- Reply in the language the user writes in (Ukrainian or English)
- Ask powerful, open questions to help the person gain clarity
- Listen actively and reflect back what you hear
- Encourage the person to find their own answers
- Be supportive, but also challenge limiting beliefs when appropriate
- Respect the boundaries that have been set
- Keep replies conversational and not overly long unless asked for detail`

// toneDescriptors maps each slider to its high/low phrasing, in slider
// declaration order: warmth, formality, playfulness, empathy.
var toneDescriptors = []struct {
	value func(*domain.Persona) int
	high  string
	low   string
}{
	{func(p *domain.Persona) int { return p.ToneWarmth }, "warm and friendly", "professional and direct"},
	{func(p *domain.Persona) int { return p.ToneFormality }, "formal", "relaxed and approachable"},
	{func(p *domain.Persona) int { return p.TonePlayfulness }, "witty and humorous", "serious and focused"},
	{func(p *domain.Persona) int { return p.ToneEmpathy }, "deeply empathetic", "objective and analytical"},
}

// Compile renders p into the system instruction. Clause order is fixed;
// a field at its default contributes nothing. Compile is total: it accepts
// nil and degrades to a generic assistant persona.
func Compile(p *domain.Persona) string {
	parts := []string{languageDirective}

	if isBlank(p) {
		parts = append(parts, genericIdentity, closingGuidance)
		return strings.Join(parts, "\n\n")
	}

	parts = append(parts, identityClause(p))

	if c := certificationClause(p); c != "" {
		parts = append(parts, c)
	}
	if c := toneClause(p); c != "" {
		parts = append(parts, c)
	}

	freeText := []struct {
		label string
		value string
	}{
		{"Additional notes on your style", p.CommunicationStyle},
		{"Your coaching approach", p.CoachingApproach},
		{"How you structure conversations", p.ConversationFlow},
		{"Key moments you focus on", p.KeyMoments},
	}
	for _, ft := range freeText {
		if v := strings.TrimSpace(ft.value); v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", ft.label, v))
		}
	}

	if len(p.AllowedTopics) > 0 {
		parts = append(parts, fmt.Sprintf("Topics you can discuss: %s.",
			strings.Join(p.AllowedTopics, ", ")))
	}
	if len(p.BlockedTopics) > 0 {
		parts = append(parts, fmt.Sprintf("Topics you must NOT discuss or give advice on: %s. "+
			"If asked about these topics, politely redirect the conversation.",
			strings.Join(p.BlockedTopics, ", ")))
	}

	if v := strings.TrimSpace(p.CrisisResponse); v != "" {
		parts = append(parts, fmt.Sprintf(
			"If someone appears to be in crisis or mentions self-harm, respond with: %q", v))
	}
	if v := strings.TrimSpace(p.OutOfScopeResponse); v != "" {
		parts = append(parts, fmt.Sprintf(
			"When asked about topics outside your expertise, respond with: %q", v))
	}

	parts = append(parts, closingGuidance)
	return strings.Join(parts, "\n\n")
}

// Greeting produces the short presentation-only opening line for a chat.
// It shares the identity de-duplication rule with Compile and is never
// sent upstream.
func Greeting(p *domain.Persona) string {
	name := "your coaching assistant"
	headline := ""
	if p != nil {
		if n := strings.TrimSpace(p.Name); n != "" {
			name = n
		}
		headline = strings.TrimSpace(p.Headline)
	}
	if headline != "" && !strings.EqualFold(headline, name) {
		return fmt.Sprintf("Hi! I'm %s, %s. How can I help you today?", name, headline)
	}
	return fmt.Sprintf("Hi! I'm %s, your coaching avatar. How can I help you today?", name)
}

// isBlank reports whether no identity has been configured at all, in which
// case the whole persona degrades to the generic assistant.
func isBlank(p *domain.Persona) bool {
	if p == nil {
		return true
	}
	return strings.TrimSpace(p.Name) == "" &&
		strings.TrimSpace(p.Headline) == "" &&
		p.Certification == "" &&
		strings.TrimSpace(p.CommunicationStyle) == "" &&
		strings.TrimSpace(p.CoachingApproach) == "" &&
		strings.TrimSpace(p.ConversationFlow) == "" &&
		strings.TrimSpace(p.KeyMoments) == "" &&
		len(p.AllowedTopics) == 0 &&
		len(p.BlockedTopics) == 0 &&
		strings.TrimSpace(p.CrisisResponse) == "" &&
		strings.TrimSpace(p.OutOfScopeResponse) == "" &&
		p.ToneWarmth == domain.ToneNeutral &&
		p.ToneFormality == domain.ToneNeutral &&
		p.TonePlayfulness == domain.ToneNeutral &&
		p.ToneEmpathy == domain.ToneNeutral
}

func identityClause(p *domain.Persona) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "a coaching avatar"
	}
	headline := strings.TrimSpace(p.Headline)

	// Suppress the headline when it merely repeats the name.
	if headline != "" && !strings.EqualFold(headline, name) {
		return fmt.Sprintf("You are %s, %s.", name, headline)
	}
	return fmt.Sprintf("You are %s, %s.", name, genericDescriptor)
}

func certificationClause(p *domain.Persona) string {
	switch p.Certification {
	case domain.CertCertified:
		if len(p.Affiliations) > 0 {
			return fmt.Sprintf("You are a certified coach, affiliated with %s.",
				strings.Join(p.Affiliations, ", "))
		}
		return "You are a certified coach."
	case domain.CertInProcess:
		return "You are currently going through your coach certification process."
	default:
		return ""
	}
}

func toneClause(p *domain.Persona) string {
	var descriptors []string
	for _, td := range toneDescriptors {
		v := td.value(p)
		switch {
		case v > domain.ToneNeutral:
			descriptors = append(descriptors, td.high)
		case v < domain.ToneNeutral:
			descriptors = append(descriptors, td.low)
		}
	}
	if len(descriptors) == 0 {
		return ""
	}
	return fmt.Sprintf("Your communication style: %s.", strings.Join(descriptors, ", "))
}
