// Package store implements the ordered multimap that backs every container:
// per-name dense ordinal slots plus an injective side index from
// caller-supplied UIDs to ordinals. Reading a name that was never written
// behaves as an empty sequence; the registry-aware layers above decide when
// an unknown name is an error.
package store

import "fmt"

// DuplicateUIDError reports an attempt to bind a UID that is already bound
// for the same name, regardless of the target ordinal.
type DuplicateUIDError struct {
	Name string
	UID  string
}

func (e *DuplicateUIDError) Error() string {
	return fmt.Sprintf("store: uid %q already assigned for item %q", e.UID, e.Name)
}

// UnknownUIDError reports a lookup of a UID that was never assigned for the
// given name.
type UnknownUIDError struct {
	Name string
	UID  string
}

func (e *UnknownUIDError) Error() string {
	return fmt.Sprintf("store: unknown uid %q for item %q", e.UID, e.Name)
}

// Item pairs one stored value with its ordinal and, when assigned, its UID.
type Item struct {
	Ordinal int
	UID     string
	Value   any
}

type slot struct {
	values   []any
	uidToOrd map[string]int
	ordToUID map[int]string
}

// Store is an ordered multimap keyed by item name. Values stored under one
// name occupy dense ordinals starting at zero, in insertion order.
type Store struct {
	slots map[string]*slot
}

// New constructs an empty store.
func New() *Store {
	return &Store{slots: make(map[string]*slot)}
}

func (s *Store) slot(name string) *slot {
	sl, ok := s.slots[name]
	if !ok {
		sl = &slot{
			uidToOrd: make(map[string]int),
			ordToUID: make(map[int]string),
		}
		s.slots[name] = sl
	}
	return sl
}

// Append inserts value at the next free ordinal for name and returns the
// assigned ordinal.
func (s *Store) Append(name string, value any) int {
	sl := s.slot(name)
	sl.values = append(sl.values, value)
	return len(sl.values) - 1
}

// Overwrite clears all prior entries for name, including UID bindings, and
// stores value at ordinal zero.
func (s *Store) Overwrite(name string, value any) {
	sl := s.slot(name)
	sl.values = sl.values[:0]
	sl.values = append(sl.values, value)
	clear(sl.uidToOrd)
	clear(sl.ordToUID)
}

// LastOrdinal directs AssignUID at the most recently appended ordinal.
const LastOrdinal = -1

// AssignUID binds uid to the given ordinal for name. Passing LastOrdinal
// targets the most recently appended value. A UID can be bound at most once
// per name; re-binding fails even against the same ordinal.
func (s *Store) AssignUID(name, uid string, ordinal int) error {
	sl := s.slot(name)
	if ordinal == LastOrdinal {
		ordinal = len(sl.values) - 1
	}
	if ordinal < 0 || ordinal >= len(sl.values) {
		return fmt.Errorf("store: ordinal %d out of range for item %q (%d stored)", ordinal, name, len(sl.values))
	}
	if _, exists := sl.uidToOrd[uid]; exists {
		return &DuplicateUIDError{Name: name, UID: uid}
	}
	sl.uidToOrd[uid] = ordinal
	sl.ordToUID[ordinal] = uid
	return nil
}

// HasUID reports whether uid is already bound for name.
func (s *Store) HasUID(name, uid string) bool {
	sl, ok := s.slots[name]
	if !ok {
		return false
	}
	_, bound := sl.uidToOrd[uid]
	return bound
}

// GetByUID returns the value bound to uid for name.
func (s *Store) GetByUID(name, uid string) (any, error) {
	sl, ok := s.slots[name]
	if !ok {
		return nil, &UnknownUIDError{Name: name, UID: uid}
	}
	ordinal, ok := sl.uidToOrd[uid]
	if !ok {
		return nil, &UnknownUIDError{Name: name, UID: uid}
	}
	return sl.values[ordinal], nil
}

// Count returns the number of values stored under name, zero if unseen.
func (s *Store) Count(name string) int {
	sl, ok := s.slots[name]
	if !ok {
		return 0
	}
	return len(sl.values)
}

// Values returns the stored values for name in ascending ordinal order. The
// returned slice is a copy; mutating it does not affect the store.
func (s *Store) Values(name string) []any {
	sl, ok := s.slots[name]
	if !ok || len(sl.values) == 0 {
		return nil
	}
	out := make([]any, len(sl.values))
	copy(out, sl.values)
	return out
}

// Items returns the stored values for name in ascending ordinal order, each
// paired with its ordinal and any assigned UID.
func (s *Store) Items(name string) []Item {
	sl, ok := s.slots[name]
	if !ok || len(sl.values) == 0 {
		return nil
	}
	out := make([]Item, len(sl.values))
	for ordinal, value := range sl.values {
		out[ordinal] = Item{
			Ordinal: ordinal,
			UID:     sl.ordToUID[ordinal],
			Value:   value,
		}
	}
	return out
}

// UIDs returns the uid → ordinal bindings for name, nil when none exist.
func (s *Store) UIDs(name string) map[string]int {
	sl, ok := s.slots[name]
	if !ok || len(sl.uidToOrd) == 0 {
		return nil
	}
	out := make(map[string]int, len(sl.uidToOrd))
	for uid, ordinal := range sl.uidToOrd {
		out[uid] = ordinal
	}
	return out
}
