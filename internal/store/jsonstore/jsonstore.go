package jsonstore

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/idilsaglam/todolist/internal/model"
)

// JSON snapshot of a session's list. Write-only: nothing is read back,
// the list lives in memory for the lifetime of the process.

type snapshot struct {
	Total int          `json:"total"`
	Done  int          `json:"done"`
	Items []model.Item `json:"items"`
}

// Write encodes items as an indented JSON document.
func Write(w io.Writer, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	d, _ := model.Stats(items)
	b, err := json.MarshalIndent(snapshot{Total: len(items), Done: d, Items: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
