package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolist/internal/ui"
)

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	rows   *rows
	labels ui.Labels
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}

	if draft, editing := d.rows.drafts[it.Key]; editing {
		fmt.Fprint(w, prefix+draft.View()+"  "+t.Accent.Render("["+d.labels.Confirm+"]"))
		return
	}

	text := ui.Truncate(it.Text, ui.MaxTextWidth)
	box := t.Muted.Render(t.BoxUnchecked)
	if it.Done {
		box = t.Success.Render(t.BoxChecked)
		text = t.DoneText.Render(text)
	}
	actions := t.Muted.Render(fmt.Sprintf("[%s] [%s]", d.labels.Edit, d.labels.Delete))
	fmt.Fprintf(w, "%s%s  %s %s  %s", prefix, text, t.Muted.Render(d.labels.Done), box, actions)
}
