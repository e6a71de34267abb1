package session

import "sync"

// Step is the position of a user inside a multi-step conversation flow.
type Step int

const (
	StepNone Step = iota
	StepAwaitingName
	StepAwaitingTime
	StepAdvisoryChat
)

// State is the transient conversation state of one user. PendingName is set
// only while awaiting the time input, carried over from the name step.
type State struct {
	Step        Step
	PendingName string
}

// Store keeps per-user conversation state. Implementations must be safe for
// concurrent use; state is transient and may be lost on restart.
type Store interface {
	Get(userID int64) State
	Set(userID int64, st State)
	Clear(userID int64)
}

type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int64]State)}
}

// Get returns the user's state, or the zero state (StepNone) if none is set.
func (m *MemoryStore) Get(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.states[userID]
}

func (m *MemoryStore) Set(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = st
}

func (m *MemoryStore) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
}
