// Package tui is the single-screen terminal front end. It renders the store,
// keeps the transient per-row edit state and turns key presses into store
// calls.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// Options tune the screen.
type Options struct {
	Labels    ui.Labels
	CharLimit int
	Logger    *log.Logger
}

type Model struct {
	store       *store.Store
	rows        *rows
	unsubscribe func()

	list  list.Model
	input textinput.Model
	focus focus
	keys  keyMap

	labels    ui.Labels
	charLimit int
	logger    *log.Logger

	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

// New builds a screen over st and subscribes to its changes. Call Close when
// the screen is done.
func New(st *store.Store, opts Options) Model {
	if opts.Labels == (ui.Labels{}) {
		opts.Labels, _ = ui.LabelsByName("en")
	}
	if opts.CharLimit <= 0 {
		opts.CharLimit = 200
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	r := newRows(st.List())
	m := Model{
		store:     st,
		rows:      r,
		keys:      defaultKeyMap(),
		labels:    opts.Labels,
		charLimit: opts.CharLimit,
		logger:    opts.Logger,
	}
	m.unsubscribe = st.Subscribe(r.apply)

	l := list.New(r.listItems(), itemDelegate{rows: r, labels: opts.Labels}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	// quitting goes through m.quit so the session end is recorded
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.AdditionalShortHelpKeys = m.keys.listHelp
	l.AdditionalFullHelpKeys = m.keys.listHelp
	m.list = l

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = opts.Labels.Prompt
	m.input.CharLimit = opts.CharLimit
	m.input.Focus()

	m.resize(defaultWidth, defaultHeight)
	m.sync()
	return m
}

// Close detaches the screen from the store.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		if m.focus == focusInput {
			m, cmd = m.updateInput(msg)
		} else {
			m, cmd = m.updateList(msg)
		}
		if m.quitting {
			return m, cmd
		}
		m.sync()
		return m, cmd
	}

	// cursor blink and the like
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if d := m.selectedDraft(); d != nil {
		*d, cmd = d.Update(msg)
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return m, nil
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Cancel):
		m.setFocus(focusList)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() {
	it, err := m.store.Add(m.input.Value())
	if err != nil {
		m.fail(err)
		return
	}
	m.input.SetValue("")
	m.sync()
	m.list.Select(len(m.list.Items()) - 1)
	m.logger.Info("added", "key", it.Key)
	m.ok(fmt.Sprintf("added #%d", it.Key))
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	it, ok := m.selected()
	if ok && m.rows.editing(it.Key) {
		return m.updateDraft(msg, it)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Cancel):
		// nothing to discard
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.setFocus(focusInput)
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		if ok {
			m.apply(m.store.Toggle(it.Key, !it.Done), "toggled", it.Key)
		}
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		if ok {
			m.startEdit(it)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if ok {
			m.apply(m.store.Delete(it.Key), "deleted", it.Key)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.focusDrafts()
	return m, cmd
}

// updateDraft routes keys while the selected row is in edit mode. The arrow
// keys still move the cursor and leave the draft in place.
func (m Model) updateDraft(msg tea.KeyMsg, it model.Item) (Model, tea.Cmd) {
	d := m.rows.drafts[it.Key]
	switch {
	case key.Matches(msg, m.keys.Submit):
		if err := m.store.Edit(it.Key, d.Value()); err != nil {
			m.fail(err)
			return m, nil
		}
		delete(m.rows.drafts, it.Key)
		m.rows.dirty = true
		m.apply(nil, "edited", it.Key)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		delete(m.rows.drafts, it.Key)
		m.rows.dirty = true
		m.ok(fmt.Sprintf("discarded edit of #%d", it.Key))
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.setFocus(focusInput)
		return m, nil
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m.focusDrafts()
		return m, cmd
	}
	var cmd tea.Cmd
	*d, cmd = d.Update(msg)
	m.rows.dirty = true
	return m, cmd
}

func (m *Model) startEdit(it model.Item) {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = m.charLimit
	ti.SetValue(it.Text)
	ti.CursorEnd()
	m.rows.drafts[it.Key] = &ti
	m.rows.dirty = true
	m.focusDrafts()
}

// focusDrafts gives keyboard focus to the draft under the cursor only.
func (m *Model) focusDrafts() {
	sel, ok := m.selected()
	for k, d := range m.rows.drafts {
		if ok && k == sel.Key && m.focus == focusList {
			d.Focus()
		} else {
			d.Blur()
		}
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.focusDrafts()
}

func (m Model) selected() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return li.Item, true
}

func (m Model) selectedDraft() *textinput.Model {
	it, ok := m.selected()
	if !ok {
		return nil
	}
	return m.rows.drafts[it.Key]
}

func (m *Model) apply(err error, verb string, k int) {
	if err != nil {
		m.fail(err)
		return
	}
	m.logger.Info(verb, "key", k)
	m.ok(fmt.Sprintf("%s #%d", verb, k))
}

func (m *Model) ok(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) fail(err error) {
	m.logger.Error("store call failed", "err", err)
	m.status, m.statusErr = err.Error(), true
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	d, p := model.Stats(m.store.List())
	m.logger.Info("session ended", "done", d, "pending", p)
	return m, tea.Quit
}

// sync pushes pending row changes into the list and refreshes the header.
func (m *Model) sync() {
	if !m.rows.dirty {
		return
	}
	idx := m.list.Index()
	m.list.SetItems(m.rows.listItems())
	if n := len(m.rows.items); idx >= n && n > 0 {
		m.list.Select(n - 1)
	}
	m.rows.dirty = false

	t := ui.Current()
	d, p := model.Stats(m.rows.items)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(m.rows.items),
	)
	m.focusDrafts()
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	// border, padding, progress, input row, status
	m.list.SetSize(max(w-4, 20), max(h-7, 3))
}

// Items is the list as currently rendered.
func (m Model) Items() []model.Item {
	out := make([]model.Item, len(m.rows.items))
	copy(out, m.rows.items)
	return out
}

// Editing reports whether the row with key is in edit mode.
func (m Model) Editing(key int) bool { return m.rows.editing(key) }

// Draft returns the uncommitted text of a row in edit mode.
func (m Model) Draft(key int) (string, bool) {
	d, ok := m.rows.drafts[key]
	if !ok {
		return "", false
	}
	return d.Value(), true
}

func (m Model) Status() string { return m.status }

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	t := ui.Current()
	d, p := model.Stats(m.rows.items)

	submit := t.Accent.Render("[" + m.labels.Submit + "]")
	inputRow := m.input.View() + "  " + submit
	if m.focus == focusInput {
		inputRow = t.Title.Render(inputRow)
	}

	status := t.Muted.Render(m.status)
	if m.statusErr {
		status = t.Error.Render(m.status)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		t.Muted.Render(ui.ProgressBar(d, d+p, 28)),
		inputRow,
		"",
		m.list.View(),
		status,
	)
	return ui.PanelString(content)
}

// Run starts the program on the alternate screen and blocks until the user
// quits.
func Run(st *store.Store, opts Options) error {
	m := New(st, opts)
	defer m.Close()

	m.logger.Info("session started", "items", st.Len(), "keys", st.Policy())
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
