package formatter

import (
	"fmt"
	"strings"

	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/wizard"
)

// FormatPersonaShow renders the persona profile for `persona show`.
func FormatPersonaShow(p *domain.Persona, materialCount int) string {
	var b strings.Builder

	name := p.Name
	if name == "" {
		name = Dim("(unnamed)")
	} else {
		name = Bold(name)
	}
	b.WriteString(Header("Coach Avatar"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", name, TruncID(p.ID)))
	if p.Headline != "" {
		b.WriteString(fmt.Sprintf("  %s\n", StyleFg.Render(p.Headline)))
	}
	b.WriteString(fmt.Sprintf("  %s   %s\n", CertBadge(p.Certification), PublishPill(p.IsPublished)))
	if len(p.Affiliations) > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("Affiliations:"), strings.Join(p.Affiliations, ", ")))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s\n", Dim("Tone")))
	b.WriteString(fmt.Sprintf("    Warmth      %s\n", RenderProgress(float64(p.ToneWarmth)/100, 20)))
	b.WriteString(fmt.Sprintf("    Formality   %s\n", RenderProgress(float64(p.ToneFormality)/100, 20)))
	b.WriteString(fmt.Sprintf("    Playfulness %s\n", RenderProgress(float64(p.TonePlayfulness)/100, 20)))
	b.WriteString(fmt.Sprintf("    Empathy     %s\n", RenderProgress(float64(p.ToneEmpathy)/100, 20)))

	if len(p.AllowedTopics) > 0 {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", Dim("Allowed topics:"), strings.Join(p.AllowedTopics, ", ")))
	}
	if len(p.BlockedTopics) > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("Blocked topics:"), strings.Join(p.BlockedTopics, ", ")))
	}

	b.WriteString(fmt.Sprintf("\n  %s %d\n", Dim("Training materials:"), materialCount))
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim("Setup progress:"), RenderProgress(float64(p.CompletionPct)/100, 20)))

	return b.String()
}

// FormatProgress renders per-step completeness bars for `status`.
func FormatProgress(prog wizard.Progress) string {
	var b strings.Builder
	b.WriteString(Header("Setup Progress"))
	b.WriteString("\n\n")

	width := 0
	for _, s := range prog.Steps {
		if len(s.Step.Title) > width {
			width = len(s.Step.Title)
		}
	}

	for _, s := range prog.Steps {
		mark := StyleDim.Render("○")
		if s.Complete {
			mark = StyleGreen.Render("●")
		}
		title := s.Step.Title
		if s.Step.Optional {
			title += " " + Dim("(optional)")
		}
		pad := strings.Repeat(" ", width-len(s.Step.Title))
		b.WriteString(fmt.Sprintf("  %s %s%s  %s\n", mark, title, pad, RenderProgress(float64(s.Score)/100, 20)))
	}

	b.WriteString(fmt.Sprintf("\n  %s %s\n", Bold("Overall"), RenderProgress(float64(prog.Overall)/100, 20)))
	if prog.Overall >= wizard.CompleteThreshold {
		b.WriteString("  " + StyleGreen.Render("Your avatar is ready to publish.") + "\n")
	} else {
		b.WriteString("  " + Dim(fmt.Sprintf("Reach %d%% to get the most out of your avatar.", wizard.CompleteThreshold)) + "\n")
	}
	return b.String()
}

// FormatMaterials renders the training material list as a table.
func FormatMaterials(materials []*domain.TrainingMaterial) string {
	if len(materials) == 0 {
		return Dim("No training materials yet. Add one with `avatara material add-link` or `add-file`.")
	}

	rows := make([][]string, 0, len(materials))
	for _, m := range materials {
		location := m.URL
		if m.Type != domain.MaterialLink {
			location = m.Path
		}
		size := ""
		if m.SizeBytes > 0 {
			size = FormatBytes(m.SizeBytes)
		}
		rows = append(rows, []string{
			TruncID(m.ID),
			string(m.Type),
			m.Title,
			location,
			size,
			HumanTimestamp(m.CreatedAt),
		})
	}
	return RenderTable([]string{"ID", "Type", "Title", "Location", "Size", "Added"}, rows)
}
