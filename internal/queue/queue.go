// Package queue implements the ordered playback queue with a current-index
// cursor and the advance policies (sequential, shuffle, repeat-all,
// repeat-one). All operations are synchronous state transforms; the
// manager is owned by the UI event loop and never shared across
// goroutines.
package queue

import (
	"math/rand"

	"ntsync/internal/domain"
)

// RepeatMode controls what Advance does at the end of the queue.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns a human-readable mode name
func (m RepeatMode) String() string {
	switch m {
	case RepeatAll:
		return "repeat all"
	case RepeatOne:
		return "repeat one"
	default:
		return "off"
	}
}

// Manager is the mutable playback queue. The cursor invariant holds after
// every operation: 0 <= current < len(entries) whenever the queue is
// non-empty, and current == -1 when it is empty.
type Manager struct {
	entries []domain.VideoEntry
	current int
	shuffle bool
	repeat  RepeatMode

	rng *rand.Rand
}

// New creates an empty queue. rng drives shuffle selection; pass nil to
// use a time-seeded source.
func New(rng *rand.Rand) *Manager {
	return &Manager{current: -1, rng: rng}
}

// Load replaces the queue contents with a batch (an upload batch or a
// stored playlist) and points the cursor at the first entry.
func (m *Manager) Load(entries []domain.VideoEntry) {
	m.entries = append([]domain.VideoEntry(nil), entries...)
	if len(m.entries) == 0 {
		m.current = -1
		return
	}
	m.current = 0
}

// Add appends an entry. Duplicates by id are allowed. The first entry
// added to an empty queue becomes current.
func (m *Manager) Add(entry domain.VideoEntry) {
	m.entries = append(m.entries, entry)
	if m.current < 0 {
		m.current = 0
	}
}

// Remove splices out the entry at index. When the current entry is
// removed, the entry that shifted into its position becomes current (or
// the new last entry when the tail was removed); removing the only entry
// empties the queue. Returns false for an out-of-range index.
func (m *Manager) Remove(index int) bool {
	if index < 0 || index >= len(m.entries) {
		return false
	}
	m.entries = append(m.entries[:index], m.entries[index+1:]...)

	switch {
	case len(m.entries) == 0:
		m.current = -1
	case index == m.current:
		if m.current >= len(m.entries) {
			m.current = len(m.entries) - 1
		}
	case index < m.current:
		m.current--
	}
	return true
}

// MoveUp swaps the entry at index with its predecessor, keeping the
// cursor on the same logical entry.
func (m *Manager) MoveUp(index int) bool {
	if index <= 0 || index >= len(m.entries) {
		return false
	}
	m.entries[index], m.entries[index-1] = m.entries[index-1], m.entries[index]
	if m.current == index {
		m.current = index - 1
	} else if m.current == index-1 {
		m.current = index
	}
	return true
}

// MoveDown swaps the entry at index with its successor, keeping the
// cursor on the same logical entry.
func (m *Manager) MoveDown(index int) bool {
	if index < 0 || index >= len(m.entries)-1 {
		return false
	}
	m.entries[index], m.entries[index+1] = m.entries[index+1], m.entries[index]
	if m.current == index {
		m.current = index + 1
	} else if m.current == index+1 {
		m.current = index
	}
	return true
}

// Clear empties the queue and resets policies-independent cursor state.
func (m *Manager) Clear() {
	m.entries = nil
	m.current = -1
}

// Advance selects the next entry after the current one ends.
// Precedence: repeat-one returns the same entry without moving the
// cursor; shuffle picks a uniformly random index (an immediate repeat of
// the same index is allowed); otherwise the cursor increments, wrapping
// to 0 under repeat-all. Returns nil when the queue is exhausted or empty.
func (m *Manager) Advance() *domain.VideoEntry {
	if len(m.entries) == 0 || m.current < 0 {
		return nil
	}

	if m.repeat == RepeatOne {
		entry := m.entries[m.current]
		return &entry
	}

	if m.shuffle {
		m.current = m.randIndex()
		entry := m.entries[m.current]
		return &entry
	}

	next := m.current + 1
	if next >= len(m.entries) {
		if m.repeat != RepeatAll {
			return nil
		}
		next = 0
	}
	m.current = next
	entry := m.entries[m.current]
	return &entry
}

// Previous moves the cursor back one entry, wrapping to the tail only
// under repeat-all and clamping to 0 otherwise. Returns nil on an empty
// queue.
func (m *Manager) Previous() *domain.VideoEntry {
	if len(m.entries) == 0 || m.current < 0 {
		return nil
	}

	prev := m.current - 1
	if prev < 0 {
		if m.repeat == RepeatAll {
			prev = len(m.entries) - 1
		} else {
			prev = 0
		}
	}
	m.current = prev
	entry := m.entries[m.current]
	return &entry
}

// PlayAt jumps the cursor to index and returns that entry. The index must
// be in range; callers own that contract.
func (m *Manager) PlayAt(index int) domain.VideoEntry {
	m.current = index
	return m.entries[index]
}

// Current returns the entry under the cursor, or nil for an empty queue.
func (m *Manager) Current() *domain.VideoEntry {
	if m.current < 0 || m.current >= len(m.entries) {
		return nil
	}
	entry := m.entries[m.current]
	return &entry
}

// CurrentIndex returns the cursor position, -1 when empty.
func (m *Manager) CurrentIndex() int { return m.current }

// Len returns the number of queued entries.
func (m *Manager) Len() int { return len(m.entries) }

// Entries returns a copy of the queue contents in order.
func (m *Manager) Entries() []domain.VideoEntry {
	return append([]domain.VideoEntry(nil), m.entries...)
}

// At returns the entry at index; the index must be in range.
func (m *Manager) At(index int) domain.VideoEntry { return m.entries[index] }

// SetShuffle toggles random advance selection.
func (m *Manager) SetShuffle(on bool) { m.shuffle = on }

// Shuffle reports whether shuffle is enabled.
func (m *Manager) Shuffle() bool { return m.shuffle }

// SetRepeat sets the repeat policy.
func (m *Manager) SetRepeat(mode RepeatMode) { m.repeat = mode }

// Repeat returns the active repeat policy.
func (m *Manager) Repeat() RepeatMode { return m.repeat }

// CycleRepeat steps none -> all -> one -> none, for a single toggle key.
func (m *Manager) CycleRepeat() RepeatMode {
	switch m.repeat {
	case RepeatNone:
		m.repeat = RepeatAll
	case RepeatAll:
		m.repeat = RepeatOne
	default:
		m.repeat = RepeatNone
	}
	return m.repeat
}

func (m *Manager) randIndex() int {
	if m.rng != nil {
		return m.rng.Intn(len(m.entries))
	}
	return rand.Intn(len(m.entries))
}
