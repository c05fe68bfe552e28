// Package store holds the canonical, ordered list of todo items for one
// session. It is memory-only and meant to be driven from a single event loop.
package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrEmptyText = errors.New("empty text")
)

// KeyPolicy decides how Add picks the key of a new item.
type KeyPolicy string

const (
	// KeyCounter hands out keys from a counter that only grows, so a key is
	// never reused within a session.
	KeyCounter KeyPolicy = "counter"
	// KeyLastPlusOne derives the key from the last item in the list. Removing
	// the tail and adding again yields the removed key once more.
	KeyLastPlusOne KeyPolicy = "last"
)

func (p KeyPolicy) IsValid() bool {
	switch p {
	case KeyCounter, KeyLastPlusOne:
		return true
	default:
		return false
	}
}

// ParseKeyPolicy maps a config or flag value to a KeyPolicy.
func ParseKeyPolicy(s string) (KeyPolicy, error) {
	p := KeyPolicy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("store: invalid key policy %q (want counter or last)", s)
	}
	return p, nil
}

// Op identifies the kind of mutation carried by a Change.
type Op int

const (
	OpAdded Op = iota
	OpUpdated
	OpRemoved
)

func (o Op) String() string {
	switch o {
	case OpAdded:
		return "added"
	case OpUpdated:
		return "updated"
	case OpRemoved:
		return "removed"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Change describes one applied mutation. Item is the item after the change
// (or the removed item for OpRemoved); Index is its position in the list
// before removal or after insertion/update.
type Change struct {
	Op    Op
	Item  model.Item
	Index int
}

// Option configures a Store.
type Option func(*Store)

func WithKeyPolicy(p KeyPolicy) Option {
	return func(s *Store) { s.policy = p }
}

// WithRejectEmpty makes Add refuse the empty string. Whitespace-only text is
// still accepted.
func WithRejectEmpty() Option {
	return func(s *Store) { s.rejectEmpty = true }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

type subscriber struct {
	id int
	fn func(Change)
}

// Store is the ordered collection of items plus the operations that mutate it.
// Every mutation is complete before its listeners run.
type Store struct {
	items       []model.Item
	policy      KeyPolicy
	lastKey     int
	rejectEmpty bool
	logger      *log.Logger

	subs   []subscriber
	nextID int
}

// New returns an empty store. The default key policy is KeyCounter.
func New(opts ...Option) *Store {
	s := &Store{
		policy: KeyCounter,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy reports the key policy in effect.
func (s *Store) Policy() KeyPolicy { return s.policy }

// Add appends a new pending item and returns it.
func (s *Store) Add(text string) (model.Item, error) {
	if s.rejectEmpty && text == "" {
		return model.Item{}, fmt.Errorf("store: add: %w", ErrEmptyText)
	}
	it := model.Item{Key: s.nextKey(), Text: text}
	s.items = append(s.items, it)
	s.logger.Debug("item added", "key", it.Key, "len", len(s.items))
	s.notify(Change{Op: OpAdded, Item: it, Index: len(s.items) - 1})
	return it, nil
}

func (s *Store) nextKey() int {
	switch s.policy {
	case KeyLastPlusOne:
		if n := len(s.items); n > 0 {
			return s.items[n-1].Key + 1
		}
		return 1
	default:
		s.lastKey++
		return s.lastKey
	}
}

// Toggle sets the done flag of the item with the given key.
func (s *Store) Toggle(key int, done bool) error {
	i := s.indexOf(key)
	if i < 0 {
		return notFound("toggle", key)
	}
	s.items[i].Done = done
	s.logger.Debug("item toggled", "key", key, "done", done)
	s.notify(Change{Op: OpUpdated, Item: s.items[i], Index: i})
	return nil
}

// Edit replaces the text of the item with the given key.
func (s *Store) Edit(key int, text string) error {
	i := s.indexOf(key)
	if i < 0 {
		return notFound("edit", key)
	}
	s.items[i].Text = text
	s.logger.Debug("item edited", "key", key)
	s.notify(Change{Op: OpUpdated, Item: s.items[i], Index: i})
	return nil
}

// Delete removes the item with the given key, keeping the order of the rest.
func (s *Store) Delete(key int) error {
	i := s.indexOf(key)
	if i < 0 {
		return notFound("delete", key)
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.logger.Debug("item deleted", "key", key, "len", len(s.items))
	s.notify(Change{Op: OpRemoved, Item: removed, Index: i})
	return nil
}

// List returns a copy of the items in insertion order.
func (s *Store) List() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given key.
func (s *Store) Get(key int) (model.Item, bool) {
	i := s.indexOf(key)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

func (s *Store) Len() int { return len(s.items) }

// Subscribe registers fn to be called after every successful mutation.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(c Change) {
	for _, sub := range s.subs {
		sub.fn(c)
	}
}

// first match wins; keys are unique so it is also the only match
func (s *Store) indexOf(key int) int {
	for i, it := range s.items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

func notFound(op string, key int) error {
	return fmt.Errorf("store: %s key %d: %w", op, key, ErrNotFound)
}
