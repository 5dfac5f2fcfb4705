package domain

// PersonaPatch is a partial update produced by one wizard step. Nil fields
// are left untouched by Apply; set fields overwrite. Each step only fills
// the fields it owns, so fragments from different steps compose without
// clobbering each other.
type PersonaPatch struct {
	Name          *string
	Headline      *string
	PhotoURL      *string
	Certification *CertificationStatus
	Affiliations  []string
	LinkedIn      *string
	Instagram     *string
	Website       *string

	ToneWarmth      *int
	ToneFormality   *int
	TonePlayfulness *int
	ToneEmpathy     *int

	CommunicationStyle *string

	CoachingApproach *string
	ConversationFlow *string
	KeyMoments       *string

	AllowedTopics      []string
	BlockedTopics      []string
	CrisisResponse     *string
	OutOfScopeResponse *string

	IsPublished *bool
}

// Apply merges the patch into p. Tone values are clamped on write; topic
// lists replace wholesale and are then re-reconciled so the allowed and
// blocked sets stay disjoint (blocked wins when a topic appears in both,
// since blocking is the more protective intent).
func (patch *PersonaPatch) Apply(p *Persona) {
	setString(&p.Name, patch.Name)
	setString(&p.Headline, patch.Headline)
	setString(&p.PhotoURL, patch.PhotoURL)
	if patch.Certification != nil {
		p.Certification = *patch.Certification
	}
	if patch.Affiliations != nil {
		p.Affiliations = append([]string(nil), patch.Affiliations...)
	}
	setString(&p.LinkedIn, patch.LinkedIn)
	setString(&p.Instagram, patch.Instagram)
	setString(&p.Website, patch.Website)

	setTone(&p.ToneWarmth, patch.ToneWarmth)
	setTone(&p.ToneFormality, patch.ToneFormality)
	setTone(&p.TonePlayfulness, patch.TonePlayfulness)
	setTone(&p.ToneEmpathy, patch.ToneEmpathy)

	setString(&p.CommunicationStyle, patch.CommunicationStyle)
	setString(&p.CoachingApproach, patch.CoachingApproach)
	setString(&p.ConversationFlow, patch.ConversationFlow)
	setString(&p.KeyMoments, patch.KeyMoments)

	if patch.AllowedTopics != nil {
		p.AllowedTopics = append([]string(nil), patch.AllowedTopics...)
	}
	if patch.BlockedTopics != nil {
		p.BlockedTopics = append([]string(nil), patch.BlockedTopics...)
	}
	if patch.AllowedTopics != nil || patch.BlockedTopics != nil {
		for _, t := range p.BlockedTopics {
			p.AllowedTopics = removeTopic(p.AllowedTopics, t)
		}
	}

	setString(&p.CrisisResponse, patch.CrisisResponse)
	setString(&p.OutOfScopeResponse, patch.OutOfScopeResponse)

	if patch.IsPublished != nil {
		p.IsPublished = *patch.IsPublished
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setTone(dst *int, src *int) {
	if src != nil {
		*dst = ClampTone(*src)
	}
}

// Helpers for building patches in form code.

func StrPtr(s string) *string                           { return &s }
func IntPtr(n int) *int                                 { return &n }
func BoolPtr(b bool) *bool                              { return &b }
func CertPtr(c CertificationStatus) *CertificationStatus { return &c }
