package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mkovalenko/avatara/internal/cli/formatter"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/wizard"
	"github.com/spf13/cobra"
)

func newWizardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Set up your avatar step by step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := currentPersona(cmd.Context(), app)
			if err != nil {
				return err
			}
			flow := newWizardFlow(app, p.ID)
			return flow.run(cmd.Context())
		},
	}
}

// stepAction is what the coach chose to do after finishing a step.
type stepAction int

const (
	actionNext stepAction = iota
	actionBack
	actionExit
)

// wizardFlow drives the onboarding steps. Edits are buffered through the
// autosave debouncer and flushed on exit, so closing mid-flow loses nothing.
type wizardFlow struct {
	app       *App
	personaID string
	tracker   *wizard.Tracker
	autosave  *wizard.Autosave
}

func newWizardFlow(app *App, personaID string) *wizardFlow {
	w := &wizardFlow{
		app:       app,
		personaID: personaID,
		tracker:   wizard.NewTracker(),
	}
	w.autosave = wizard.NewAutosave(wizard.DefaultQuietWindow, func(ctx context.Context, patch domain.PersonaPatch) error {
		_, err := app.Personas.Update(ctx, personaID, &patch)
		return err
	})
	return w
}

func (w *wizardFlow) run(ctx context.Context) error {
	defer func() {
		_ = w.autosave.Flush(context.Background())
	}()

	for {
		// Reload each step so scores and prefills reflect flushed edits.
		_ = w.autosave.Flush(ctx)
		p, err := w.app.Personas.GetByID(ctx, w.personaID)
		if err != nil {
			return err
		}

		step := w.tracker.Current()
		fmt.Printf("\n%s %s\n\n",
			formatter.Dim(fmt.Sprintf("Step %d/%d", w.tracker.Index()+1, w.tracker.Len())),
			formatter.Bold(step.Title))

		action, err := w.runStep(ctx, step.ID, p)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch action {
		case actionBack:
			w.tracker.Back()
		case actionExit:
			return nil
		default:
			if !w.tracker.Next() {
				return w.finish(ctx)
			}
		}
	}
}

func (w *wizardFlow) runStep(ctx context.Context, stepID string, p *domain.Persona) (stepAction, error) {
	switch stepID {
	case "identity":
		return w.stepIdentity(p)
	case "tone":
		return w.stepTone(p)
	case "approach":
		return w.stepApproach(p)
	case "how-you-work":
		return w.stepHowYouWork(p)
	case "boundaries":
		return w.stepBoundaries(p)
	case "materials":
		return w.stepMaterials(ctx, p)
	case "review":
		return w.stepReview(ctx, p)
	}
	return actionNext, nil
}

func (w *wizardFlow) stepIdentity(p *domain.Persona) (stepAction, error) {
	name := p.Name
	headline := p.Headline
	cert := p.Certification
	if cert == "" {
		cert = domain.CertNone
	}
	affiliations := strings.Join(p.Affiliations, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Avatar name").
				Description("How should your avatar introduce itself?").
				Placeholder("Coach Ana").
				Value(&name),
			huh.NewInput().
				Title("Professional headline").
				Placeholder("Leadership coach for first-time managers").
				Value(&headline),
			huh.NewSelect[domain.CertificationStatus]().
				Title("Certification").
				Options(
					huh.NewOption("Not certified", domain.CertNone),
					huh.NewOption("Certification in process", domain.CertInProcess),
					huh.NewOption("Certified", domain.CertCertified),
				).
				Value(&cert),
			huh.NewInput().
				Title("Affiliations").
				Description("Comma-separated, e.g. ICF, EMCC").
				Value(&affiliations),
		),
	).WithTheme(avataraHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return actionNext, err
	}

	w.autosave.Write(domain.PersonaPatch{
		Name:          domain.StrPtr(strings.TrimSpace(name)),
		Headline:      domain.StrPtr(strings.TrimSpace(headline)),
		Certification: domain.CertPtr(cert),
		Affiliations:  splitList(affiliations),
	})
	return w.navigate()
}

func (w *wizardFlow) stepTone(p *domain.Persona) (stepAction, error) {
	warmth := strconv.Itoa(p.ToneWarmth)
	formality := strconv.Itoa(p.ToneFormality)
	playfulness := strconv.Itoa(p.TonePlayfulness)
	empathy := strconv.Itoa(p.ToneEmpathy)
	style := p.CommunicationStyle

	form := huh.NewForm(
		huh.NewGroup(
			toneInput("Warmth", "0 = professional and direct, 100 = warm and friendly", &warmth),
			toneInput("Formality", "0 = relaxed, 100 = formal", &formality),
			toneInput("Playfulness", "0 = serious, 100 = witty and humorous", &playfulness),
			toneInput("Empathy", "0 = objective and analytical, 100 = deeply empathetic", &empathy),
			huh.NewText().
				Title("Anything else about your style?").
				Placeholder("I like short answers with one concrete next step...").
				Value(&style),
		),
	).WithTheme(avataraHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return actionNext, err
	}

	w.autosave.Write(domain.PersonaPatch{
		ToneWarmth:         domain.IntPtr(parseTone(warmth, p.ToneWarmth)),
		ToneFormality:      domain.IntPtr(parseTone(formality, p.ToneFormality)),
		TonePlayfulness:    domain.IntPtr(parseTone(playfulness, p.TonePlayfulness)),
		ToneEmpathy:        domain.IntPtr(parseTone(empathy, p.ToneEmpathy)),
		CommunicationStyle: domain.StrPtr(style),
	})
	return w.navigate()
}

func (w *wizardFlow) stepApproach(p *domain.Persona) (stepAction, error) {
	approach := p.CoachingApproach

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Describe your coaching approach").
				Description("Methods, frameworks, what a client can expect from you.").
				Value(&approach),
		),
	).WithTheme(avataraHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return actionNext, err
	}

	w.autosave.Write(domain.PersonaPatch{
		CoachingApproach: domain.StrPtr(approach),
	})
	return w.navigate()
}

func (w *wizardFlow) stepHowYouWork(p *domain.Persona) (stepAction, error) {
	flow := p.ConversationFlow
	moments := p.KeyMoments

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("How do you structure a conversation?").
				Placeholder("Check in, set a focus, explore, agree on an action...").
				Value(&flow),
			huh.NewText().
				Title("Key moments you pay attention to").
				Placeholder("When a client minimizes a win, when energy drops...").
				Value(&moments),
		),
	).WithTheme(avataraHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return actionNext, err
	}

	w.autosave.Write(domain.PersonaPatch{
		ConversationFlow: domain.StrPtr(flow),
		KeyMoments:       domain.StrPtr(moments),
	})
	return w.navigate()
}

func (w *wizardFlow) stepBoundaries(p *domain.Persona) (stepAction, error) {
	allowed := strings.Join(p.AllowedTopics, ", ")
	blocked := strings.Join(p.BlockedTopics, ", ")
	crisis := p.CrisisResponse
	outOfScope := p.OutOfScopeResponse

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Topics your avatar may discuss").
				Description("Comma-separated").
				Value(&allowed),
			huh.NewInput().
				Title("Topics your avatar must avoid").
				Description("Comma-separated; wins over the allowed list").
				Value(&blocked),
			huh.NewText().
				Title("Crisis response").
				Description("Sent when a client appears to be in crisis.").
				Value(&crisis),
			huh.NewText().
				Title("Out-of-scope response").
				Description("Sent when a client asks about a blocked topic.").
				Value(&outOfScope),
		),
	).WithTheme(avataraHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return actionNext, err
	}

	w.autosave.Write(domain.PersonaPatch{
		AllowedTopics:      splitList(allowed),
		BlockedTopics:      splitList(blocked),
		CrisisResponse:     domain.StrPtr(crisis),
		OutOfScopeResponse: domain.StrPtr(outOfScope),
	})
	return w.navigate()
}

func (w *wizardFlow) stepMaterials(ctx context.Context, p *domain.Persona) (stepAction, error) {
	materials, err := w.app.Materials.List(ctx, p.ID)
	if err != nil {
		return actionNext, err
	}
	fmt.Println(formatter.FormatMaterials(materials))
	fmt.Println(formatter.Dim("Add more anytime with `avatara material add-link <url>` or `add-file <path>`."))
	return w.navigate()
}

func (w *wizardFlow) stepReview(ctx context.Context, p *domain.Persona) (stepAction, error) {
	prog, err := w.app.Personas.Progress(ctx, p.ID)
	if err != nil {
		return actionNext, err
	}
	fmt.Println(formatter.FormatProgress(prog))

	publish := p.IsPublished
	form := wizardConfirm("Publish your avatar now?", &publish)
	if err := form.Run(); err != nil {
		return actionNext, err
	}

	w.autosave.Write(domain.PersonaPatch{
		IsPublished: domain.BoolPtr(publish),
	})
	return w.navigate()
}

// navigate asks where to go next. Every step allows moving on regardless
// of how complete it is.
func (w *wizardFlow) navigate() (stepAction, error) {
	last := w.tracker.Index() == w.tracker.Len()-1

	continueLabel := "Continue"
	if last {
		continueLabel = "Finish"
	}
	options := []huh.Option[stepAction]{
		huh.NewOption(continueLabel, actionNext),
	}
	if w.tracker.Index() > 0 {
		options = append(options, huh.NewOption("Back", actionBack))
	}
	options = append(options, huh.NewOption("Save & exit", actionExit))

	action := actionNext
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[stepAction]().
				Title("What next?").
				Options(options...).
				Value(&action),
		),
	).WithTheme(avataraHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return actionNext, err
	}
	return action, nil
}

func (w *wizardFlow) finish(ctx context.Context) error {
	if err := w.autosave.Flush(ctx); err != nil {
		return err
	}
	p, err := w.app.Personas.GetByID(ctx, w.personaID)
	if err != nil {
		return err
	}
	fmt.Println(formatter.RenderBox("All set",
		fmt.Sprintf("%s Setup saved for %s.\n%s",
			formatter.StyleGreen.Render("✔"),
			formatter.Bold(p.DisplayName()),
			formatter.Dim("Talk to your avatar with `avatara chat`."))))
	return nil
}
