package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	invoicer "github.com/xraph/invoicer"
	"github.com/xraph/invoicer/invoice"
	"github.com/xraph/invoicer/lineitem"
	"github.com/xraph/invoicer/render"
)

var (
	primaryColor = lipgloss.Color("#7D56F4")
	errorColor   = lipgloss.Color("#FF5F87")
	mutedColor   = lipgloss.Color("#626262")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	labelStyle    = lipgloss.NewStyle().Width(18)
	totalStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	helpStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	errStyle      = lipgloss.NewStyle().Foreground(errorColor)
)

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel edit")),
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit row")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

func formAction(c *cli.Context) (err error) {
	// Logs would corrupt the alt screen, so they go to stderr.
	rt, err := newRuntime(c, c.App.ErrWriter)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.close(c); err == nil {
			err = cerr
		}
	}()

	p := tea.NewProgram(newFormModel(c.Context, rt.session), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// formModel shows one input per editable field above the ledger. Focus
// moves through the inputs and then onto the ledger, where a row can
// be picked for editing.
type formModel struct {
	ctx     context.Context
	session *invoicer.Session

	fields  []lineitem.Field
	inputs  []textinput.Model
	focus   int // len(inputs) means the ledger has focus
	cursor  int
	records []*invoice.Record
	status  string
	err     error
}

func newFormModel(ctx context.Context, s *invoicer.Session) *formModel {
	m := &formModel{
		ctx:     ctx,
		session: s,
		fields:  lineitem.Fields(),
	}
	for range m.fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = "0"
		in.CharLimit = 32
		in.Width = 16
		m.inputs = append(m.inputs, in)
	}
	m.inputs[0].Focus()
	m.refresh()
	return m
}

func (m *formModel) Init() tea.Cmd { return textinput.Blink }

func (m *formModel) ledgerFocused() bool { return m.focus == len(m.inputs) }

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInput(msg)
	}

	switch {
	case key.Matches(km, keys.Quit):
		return m, tea.Quit
	case key.Matches(km, keys.Cancel):
		m.session.CancelEdit(m.ctx)
		m.status = ""
		m.syncInputs(-1)
		return m, nil
	}

	if m.ledgerFocused() {
		return m, m.updateLedger(km)
	}

	switch {
	case key.Matches(km, keys.Next):
		return m, m.setFocus(m.focus + 1)
	case key.Matches(km, keys.Prev):
		return m, m.setFocus(m.focus - 1)
	case key.Matches(km, keys.Submit):
		m.submit()
		return m, nil
	}

	return m, m.updateInput(msg)
}

// updateInput feeds msg to the focused input and reconciles the draft
// when its text changed.
func (m *formModel) updateInput(msg tea.Msg) tea.Cmd {
	if m.ledgerFocused() {
		return nil
	}

	in := &m.inputs[m.focus]
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)

	if in.Value() != before {
		m.session.SetField(m.ctx, m.fields[m.focus], lineitem.Coerce(in.Value()))
		m.syncInputs(m.focus)
	}
	return cmd
}

func (m *formModel) updateLedger(km tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			return nil
		}
		return m.setFocus(m.focus - 1)
	case key.Matches(km, keys.Down):
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Next):
		return m.setFocus(0)
	case key.Matches(km, keys.Prev):
		return m.setFocus(m.focus - 1)
	case key.Matches(km, keys.Edit):
		if len(m.records) == 0 {
			return nil
		}
		rec := m.records[m.cursor]
		m.session.OnStartEdit(m.ctx, rec)
		m.status = "editing " + rec.ID.String()
		m.syncInputs(-1)
		return m.setFocus(0)
	}
	return nil
}

func (m *formModel) setFocus(i int) tea.Cmd {
	n := len(m.inputs) + 1
	m.focus = ((i % n) + n) % n

	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return cmd
}

func (m *formModel) submit() {
	m.err = nil
	rec, err := m.session.OnSubmit(m.ctx)
	switch {
	case err != nil:
		m.err = err
		return
	case rec == nil:
		m.status = "edited invoice no longer exists"
	default:
		m.status = "saved " + rec.ID.String()
	}
	m.syncInputs(-1)
	m.refresh()
}

// syncInputs copies the draft into every input except skip, which keeps
// the text the user is typing.
func (m *formModel) syncInputs(skip int) {
	d := m.session.Draft()
	for i, f := range m.fields {
		if i == skip {
			continue
		}
		m.inputs[i].SetValue(formatInput(d.Get(f)))
	}
}

func (m *formModel) refresh() {
	records, err := m.session.List(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.records = records
	if m.cursor >= len(records) {
		m.cursor = max(len(records)-1, 0)
	}
}

func formatInput(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m *formModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.session.Mode().String()) + "\n\n")

	for i, f := range m.fields {
		b.WriteString("  " + labelStyle.Render(f.Label()) + m.inputs[i].View() + "\n")
	}
	b.WriteString("  " + labelStyle.Render(lineitem.FieldTotal.Label()) +
		totalStyle.Render(render.FormatAmount(m.session.Draft().Total)) + "\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	} else if m.status != "" {
		b.WriteString(helpStyle.Render("  "+m.status) + "\n\n")
	}

	var table strings.Builder
	_ = render.WriteTable(&table, m.records)
	for i, line := range strings.Split(strings.TrimRight(table.String(), "\n"), "\n") {
		row := i - 1
		if m.ledgerFocused() && row == m.cursor && row >= 0 {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("  tab: next field  enter: submit  e: edit selected row  esc: cancel edit  ctrl+c: quit"))
	return b.String()
}
