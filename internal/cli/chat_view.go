package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkovalenko/avatara/internal/chat"
	"github.com/mkovalenko/avatara/internal/cli/formatter"
	"github.com/mkovalenko/avatara/internal/domain"
)

// replyMsg is delivered when the completion call finishes.
type replyMsg struct {
	err error
}

// chatView renders one conversation with the avatar. The session enforces
// the single-outstanding-request rule; the view mirrors it with a spinner
// and a disabled prompt while a reply is in flight.
type chatView struct {
	app     *App
	persona *domain.Persona
	session *chat.Session

	input   textinput.Model
	spin    spinner.Model
	waiting bool
	notice  string
}

func newChatView(app *App, persona *domain.Persona, session *chat.Session) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorPurple)

	return &chatView{
		app:     app,
		persona: persona,
		session: session,
		input:   ti,
		spin:    sp,
	}
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return v, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if text == "" {
				return v, nil
			}
			return v.handleInput(text)
		}

	case replyMsg:
		// A superseded reply was already discarded by the session; either
		// way the request is over and the prompt comes back.
		v.waiting = false
		return v, nil

	case spinner.TickMsg:
		if v.waiting {
			var cmd tea.Cmd
			v.spin, cmd = v.spin.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) handleInput(text string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(text) {
	case "/quit", "/exit":
		return v, tea.Quit
	case "/reset":
		v.session.Reset()
		v.session.Greet()
		v.notice = "Conversation reset."
		return v, nil
	case "/clear":
		if err := v.app.History.Clear(context.Background(), v.persona.ID); err != nil {
			v.notice = "Could not clear saved history: " + err.Error()
			return v, nil
		}
		v.session.Reset()
		v.session.Greet()
		v.notice = "Conversation and saved history cleared."
		return v, nil
	}

	if v.waiting {
		v.notice = "Still waiting for a reply..."
		return v, nil
	}

	v.notice = ""
	v.waiting = true
	submit := func() tea.Msg {
		_, err := v.session.Submit(context.Background(), text)
		return replyMsg{err: err}
	}
	return v, tea.Batch(submit, v.spin.Tick)
}

func (v *chatView) View() string {
	var b strings.Builder

	name := v.persona.DisplayName()
	b.WriteString(formatter.Header("Chat with " + name))
	b.WriteString("\n\n")

	for _, turn := range v.session.Turns() {
		if turn.Role == domain.RoleUser {
			b.WriteString(formatter.Dim("You: ") + turn.Text)
		} else {
			b.WriteString(formatter.StyleBlue.Render(name+": ") + turn.Text)
		}
		b.WriteString("\n")
	}

	if lastErr := v.session.LastError(); lastErr != "" {
		b.WriteString(formatter.StyleRed.Render("  last error: "+lastErr) + "\n")
	}
	if v.notice != "" {
		b.WriteString(formatter.Dim(v.notice) + "\n")
	}

	b.WriteString("\n")
	if v.waiting {
		b.WriteString(v.spin.View() + formatter.Dim(" thinking..."))
	} else {
		prompt := formatter.StylePurple.Render("you") + formatter.Dim("> ")
		b.WriteString(prompt + v.input.View())
	}
	b.WriteString("\n" + formatter.Dim("enter send · /reset restart · /clear wipe history · esc quit"))

	return b.String()
}
