package journal

import (
	"sync"

	"github.com/darwinia-network/darwinia-bridge-substrate/build"
)

// MemJournal is a Journal that keeps entries in memory. Intended for tests.
type MemJournal struct {
	EventTypeRegistry

	lk      sync.Mutex
	entries []*Event
}

var _ Journal = (*MemJournal)(nil)

func NewMemoryJournal(disabled DisabledEvents) *MemJournal {
	return &MemJournal{
		EventTypeRegistry: NewEventTypeRegistry(disabled),
	}
}

func (m *MemJournal) RecordEvent(evtType EventType, supplier func() interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("recovered from panic while recording journal event; type=%s, err=%v", evtType, r)
		}
	}()

	if !evtType.Enabled() {
		return
	}

	evt := &Event{
		EventType: evtType,
		Timestamp: build.Clock.Now(),
		Data:      supplier(),
	}

	m.lk.Lock()
	m.entries = append(m.entries, evt)
	m.lk.Unlock()
}

// Entries returns a snapshot of all recorded entries.
func (m *MemJournal) Entries() []*Event {
	m.lk.Lock()
	defer m.lk.Unlock()
	return append([]*Event(nil), m.entries...)
}

// EntriesFor returns recorded entries of the given type.
func (m *MemJournal) EntriesFor(system, event string) []*Event {
	m.lk.Lock()
	defer m.lk.Unlock()

	var out []*Event
	for _, e := range m.entries {
		if e.System == system && e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func (m *MemJournal) Close() error {
	return nil
}
