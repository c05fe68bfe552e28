package model

// Item is the domain model for a todo entry.
// Key is assigned by the store and never changes afterwards.
type Item struct {
	Key  int    `json:"key"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Stats counts done and pending items.
func Stats(items []Item) (done, pending int) {
	for _, it := range items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
