package ui

import (
	"fmt"
	"strings"
)

// Labels are the literal strings shown next to the input and on each row.
type Labels struct {
	Submit  string
	Done    string
	Edit    string
	Delete  string
	Confirm string
	Prompt  string
}

// LabelsByName returns a label set: "en" or "ko".
func LabelsByName(name string) (Labels, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "en":
		return Labels{
			Submit:  "Add",
			Done:    "Done",
			Edit:    "Edit",
			Delete:  "Delete",
			Confirm: "Save",
			Prompt:  "What needs doing?",
		}, nil
	case "ko":
		return Labels{
			Submit:  "입력",
			Done:    "완료",
			Edit:    "수정",
			Delete:  "삭제",
			Confirm: "완료",
			Prompt:  "할 일을 입력하세요",
		}, nil
	}
	return Labels{}, fmt.Errorf("ui: unknown label set %q", name)
}
