// Package transcript owns the ordered chat transcript and the
// reconciliation between optimistically displayed local sends and the
// server-confirmed history delivered by polling.
package transcript

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// State tracks a message through its send lifecycle. Remote and system
// messages are born Confirmed; only local optimistic sends pass through
// Pending.
type State int

const (
	StatePending State = iota
	StateConfirmed
	StateFailed
)

// Message is a single transcript entry. Timestamp is the server-assigned
// logical timestamp and stays 0 while a local send is unconfirmed; the
// client never invents one. LocalTime is the wall-clock arrival used for
// display.
type Message struct {
	ID        uuid.UUID
	Role      Role
	Text      string
	Timestamp int64
	LocalTime time.Time
	State     State
}

// Incoming is a server-reported message handed to Merge.
type Incoming struct {
	Role      Role
	Text      string
	Timestamp int64
}

// Store holds the transcript and the high-water-mark of server timestamps
// observed so far. It is not safe for concurrent use; all mutation happens
// on the UI event loop.
type Store struct {
	msgs      []Message
	highWater int64

	// Clock is the time source, overridable in tests.
	Clock func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Clock: time.Now}
}

// Messages returns the transcript in display order.
func (s *Store) Messages() []Message { return s.msgs }

// Len returns the number of transcript entries.
func (s *Store) Len() int { return len(s.msgs) }

// HighWater returns the greatest server timestamp confirmed so far.
func (s *Store) HighWater() int64 { return s.highWater }

// AppendLocal appends an optimistic pending user message and returns its
// correlation id.
func (s *Store) AppendLocal(text string) uuid.UUID {
	id := uuid.New()
	s.msgs = append(s.msgs, Message{
		ID:        id,
		Role:      RoleUser,
		Text:      text,
		LocalTime: s.Clock(),
		State:     StatePending,
	})
	return id
}

// AppendSystem appends a local informational entry. System entries never
// round-trip through the server and carry no server timestamp.
func (s *Store) AppendSystem(text string) {
	s.msgs = append(s.msgs, Message{
		ID:        uuid.New(),
		Role:      RoleSystem,
		Text:      text,
		LocalTime: s.Clock(),
		State:     StateConfirmed,
	})
}

// Confirm transitions a pending local send to Confirmed once the server
// has accepted it. The send endpoint never reports the echo's server
// timestamp, so the entry keeps Timestamp 0; merging the reply advances
// the high-water-mark past the echo, which a since-filtering server will
// therefore never resend. Returns false if the id is unknown or the
// message already left the pending state.
func (s *Store) Confirm(id uuid.UUID) bool {
	for i := range s.msgs {
		if s.msgs[i].ID == id && s.msgs[i].State == StatePending {
			s.msgs[i].State = StateConfirmed
			return true
		}
	}
	return false
}

// MarkFailed transitions a pending local send to Failed. Returns false if
// the id is unknown or the message already left the pending state.
func (s *Store) MarkFailed(id uuid.UUID) bool {
	for i := range s.msgs {
		if s.msgs[i].ID == id && s.msgs[i].State == StatePending {
			s.msgs[i].State = StateFailed
			return true
		}
	}
	return false
}

// Merge applies a fetch batch. It is idempotent: messages whose
// (timestamp, role) pair is already known are skipped, so replaying a
// batch is a no-op. A server echo of a still-pending local send confirms
// the existing entry in place instead of appending a duplicate. The
// high-water-mark only ever advances. Returns the number of entries
// added or confirmed.
func (s *Store) Merge(batch []Incoming) int {
	if len(batch) == 0 {
		return 0
	}
	sorted := make([]Incoming, len(batch))
	copy(sorted, batch)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	changed := 0
	for _, in := range sorted {
		if s.observe(in.Timestamp); s.known(in) {
			continue
		}
		if in.Role == RoleUser && s.confirmPending(in) {
			changed++
			continue
		}
		s.msgs = append(s.msgs, Message{
			ID:        uuid.New(),
			Role:      in.Role,
			Text:      in.Text,
			Timestamp: in.Timestamp,
			LocalTime: s.Clock(),
			State:     StateConfirmed,
		})
		changed++
	}
	return changed
}

// Clear empties the transcript and resets the high-water-mark so the next
// poll repopulates from the server's actual state. This is the recovery
// path when an optimistic remote clear fails.
func (s *Store) Clear() {
	s.msgs = nil
	s.highWater = 0
}

// LoadSaved seeds the store with persisted history. Entries are trusted
// as confirmed; the high-water-mark advances to the newest stored
// timestamp so polling resumes where the previous session left off.
func (s *Store) LoadSaved(msgs []Message) {
	for _, m := range msgs {
		m.State = StateConfirmed
		s.msgs = append(s.msgs, m)
		s.observe(m.Timestamp)
	}
}

func (s *Store) observe(ts int64) {
	if ts > s.highWater {
		s.highWater = ts
	}
}

func (s *Store) known(in Incoming) bool {
	for i := range s.msgs {
		if s.msgs[i].Timestamp == in.Timestamp && s.msgs[i].Role == in.Role && s.msgs[i].Timestamp != 0 {
			return true
		}
	}
	return false
}

// confirmPending matches a server echo against the oldest local send that
// has no server timestamp yet, either still pending or already confirmed
// by the send response, and adopts the echo's timestamp in place. Without
// the confirmed case a fetch dispatched before the send completed would
// append the echo as a duplicate.
func (s *Store) confirmPending(in Incoming) bool {
	for i := range s.msgs {
		m := &s.msgs[i]
		if m.Role != in.Role || m.Text != in.Text || m.Timestamp != 0 {
			continue
		}
		if m.State == StatePending || m.State == StateConfirmed {
			m.State = StateConfirmed
			m.Timestamp = in.Timestamp
			return true
		}
	}
	return false
}
