// Package form is the interactive entry form: a kind selector with
// kind-conditional fields, plus actions to log the draft, view today's
// summary and resume the last session.
package form

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ganot/worklog/internal/model"
	"github.com/ganot/worklog/internal/session"
	"github.com/ganot/worklog/internal/summary"
)

// kinds in selector order.
var kinds = []model.Kind{model.KindTicket, model.KindQA, model.KindAdHoc}

var kindLabels = map[model.Kind]string{
	model.KindTicket: "Ticket",
	model.KindQA:     "QA",
	model.KindAdHoc:  "Ad Hoc",
}

var fieldLabels = map[string]string{
	session.FieldUserName:     "Your name",
	session.FieldTicketNumber: "Ticket #",
	session.FieldQAName:       "QA name",
	session.FieldDescription:  "Description",
}

// submitDoneMsg reports the outcome of logging the draft.
type submitDoneMsg struct {
	when time.Time
	err  error
}

// summaryMsg carries the loaded summary rows back to the model.
type summaryMsg struct {
	rows []summary.Row
	err  error
}

// resumeMsg carries the resumed draft back to the model; a nil draft
// means there was nothing to resume.
type resumeMsg struct {
	draft *session.Draft
	err   error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14)

	activeKindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	summaryLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("62")).
				Width(13)
)

// Model is the bubbletea model for the entry form. Focus 0 is the kind
// selector; 1..n the visible fields of the current kind.
type Model struct {
	store       session.Store
	draft       *session.Draft
	requireUser bool
	loc         *time.Location // non-nil: hosted fixed-template summaries

	focus       int
	showSummary bool
	rows        []summary.Row
	status      string
	err         error
}

// New builds a form over the given store. requireUser enables the user
// name field and the blank-user submission check; loc selects the hosted
// summary template when non-nil.
func New(st session.Store, userName string, requireUser bool, loc *time.Location) Model {
	d := session.NewDraft()
	d.UserName = userName
	return Model{store: st, draft: d, requireUser: requireUser, loc: loc}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// fields lists the visible field names for the current kind. Values for
// hidden fields stay in the draft untouched.
func (m Model) fields() []string {
	var f []string
	if m.requireUser {
		f = append(f, session.FieldUserName)
	}
	switch m.draft.Kind {
	case model.KindQA:
		f = append(f, session.FieldQAName, session.FieldTicketNumber)
	case model.KindAdHoc:
		f = append(f, session.FieldDescription)
	default:
		f = append(f, session.FieldTicketNumber)
	}
	return f
}

func (m Model) value(name string) string {
	switch name {
	case session.FieldUserName:
		return m.draft.UserName
	case session.FieldQAName:
		return m.draft.QAName
	case session.FieldDescription:
		return m.draft.Description
	default:
		return m.draft.TicketNumber
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Logged at %s.", msg.when.Format("15:04:05"))
		return m, nil

	case summaryMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.rows = msg.rows
		m.showSummary = true
		return m, nil

	case resumeMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.draft == nil {
			m.status = "Nothing to resume."
			return m, nil
		}
		m.draft = msg.draft
		m.status = "Resumed last session."
		m.clampFocus()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showSummary {
		// Any key returns to the form.
		m.showSummary = false
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "down":
		m.focus = (m.focus + 1) % (len(m.fields()) + 1)
	case "shift+tab", "up":
		n := len(m.fields()) + 1
		m.focus = (m.focus - 1 + n) % n
	case "left":
		if m.focus == 0 {
			m.cycleKind(-1)
		}
	case "right":
		if m.focus == 0 {
			m.cycleKind(1)
		}
	case "enter", "ctrl+s":
		m.status = ""
		return m, m.submit()
	case "ctrl+o":
		m.status = ""
		return m, m.loadSummary()
	case "ctrl+r":
		if m.requireUser {
			m.status = ""
			return m, m.resume()
		}
	case "backspace":
		if m.focus > 0 {
			name := m.fields()[m.focus-1]
			if v := []rune(m.value(name)); len(v) > 0 {
				_ = m.draft.SetField(name, string(v[:len(v)-1]))
			}
		}
	default:
		if m.focus > 0 && (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) {
			name := m.fields()[m.focus-1]
			_ = m.draft.SetField(name, m.value(name)+msg.String())
		}
	}

	return m, nil
}

// cycleKind moves the selector by dir. The draft keeps values entered for
// other kinds; only visibility changes.
func (m *Model) cycleKind(dir int) {
	i := 0
	for j, k := range kinds {
		if k == m.draft.Kind {
			i = j
		}
	}
	m.draft.SetKind(kinds[(i+dir+len(kinds))%len(kinds)])
	m.clampFocus()
}

// clampFocus keeps focus in range after the visible field set shrinks.
func (m *Model) clampFocus() {
	if n := len(m.fields()); m.focus > n {
		m.focus = n
	}
}

func (m Model) submit() tea.Cmd {
	draft, st, requireUser := m.draft, m.store, m.requireUser
	return func() tea.Msg {
		now := time.Now()
		rec, err := draft.ToRecord(now, requireUser)
		if err != nil {
			return submitDoneMsg{err: err}
		}
		if err := st.Append(context.Background(), rec); err != nil {
			return submitDoneMsg{err: err}
		}
		return submitDoneMsg{when: now}
	}
}

func (m Model) loadSummary() tea.Cmd {
	st, user, loc := m.store, m.draft.UserName, m.loc
	return func() tea.Msg {
		recs, err := st.Query(context.Background(), user)
		if err != nil {
			return summaryMsg{err: err}
		}
		now := time.Now()
		if loc != nil {
			return summaryMsg{rows: summary.DailyTemplate(recs, now, loc)}
		}
		return summaryMsg{rows: summary.Daily(recs, now)}
	}
}

func (m Model) resume() tea.Cmd {
	st, user := m.store, m.draft.UserName
	return func() tea.Msg {
		d, err := session.Resume(context.Background(), st, user)
		return resumeMsg{draft: d, err: err}
	}
}

func (m Model) View() string {
	if m.showSummary {
		return m.summaryView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(" Work Logger "))
	b.WriteString("\n\n")

	selector := make([]string, len(kinds))
	for i, k := range kinds {
		if k == m.draft.Kind {
			selector[i] = activeKindStyle.Render(kindLabels[k])
		} else {
			selector[i] = kindStyle.Render(kindLabels[k])
		}
	}
	b.WriteString(cursor(m.focus == 0) + strings.Join(selector, " "))
	b.WriteString("\n\n")

	for i, name := range m.fields() {
		focused := m.focus == i+1
		line := cursor(focused) + labelStyle.Render(fieldLabels[name]) + m.value(name)
		if focused {
			line += "█"
		}
		b.WriteString(line + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	help := "←/→: type | tab: field | enter: log | ctrl+o: summary"
	if m.requireUser {
		help += " | ctrl+r: resume"
	}
	help += " | esc: quit"
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}

func (m Model) summaryView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Today's Summary "))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString("  No entries logged today.\n")
	}
	for _, r := range m.rows {
		b.WriteString("  " + summaryLabelStyle.Render(r.Label) + r.Text + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("any key: back | ctrl+c: quit"))
	return b.String()
}

func cursor(focused bool) string {
	if focused {
		return "> "
	}
	return "  "
}
