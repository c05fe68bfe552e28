package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
)

// rows is the render-side mirror of the store. It is fed by store change
// notifications and carries the per-item edit drafts, which never reach the
// store unless confirmed.
type rows struct {
	items  []model.Item
	drafts map[int]*textinput.Model
	dirty  bool
}

func newRows(items []model.Item) *rows {
	return &rows{
		items:  items,
		drafts: map[int]*textinput.Model{},
		dirty:  true,
	}
}

func (r *rows) apply(c store.Change) {
	switch c.Op {
	case store.OpAdded:
		i := min(max(c.Index, 0), len(r.items))
		r.items = append(r.items, model.Item{})
		copy(r.items[i+1:], r.items[i:])
		r.items[i] = c.Item
	case store.OpUpdated:
		if i := r.find(c.Item.Key); i >= 0 {
			r.items[i] = c.Item
		}
	case store.OpRemoved:
		if i := r.find(c.Item.Key); i >= 0 {
			r.items = append(r.items[:i], r.items[i+1:]...)
		}
		delete(r.drafts, c.Item.Key)
	}
	r.dirty = true
}

func (r *rows) find(key int) int {
	for i, it := range r.items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

func (r *rows) editing(key int) bool {
	_, ok := r.drafts[key]
	return ok
}

func (r *rows) listItems() []list.Item {
	out := make([]list.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, listItem{Item: it})
	}
	return out
}

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) FilterValue() string { return i.Text }
