package routines

import "errors"

var ErrConflict = errors.New("time conflict with an existing routine")

// Routine is a named recurring time interval. Start and End are minutes
// since midnight; End is stored rolled past 1440 for overnight intervals,
// so End > Start always holds.
type Routine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// UserRecord holds one user's routines and their per-day completion marks.
// History maps an ISO date to routine id to done.
type UserRecord struct {
	Routines []Routine                  `json:"routines"`
	History  map[string]map[string]bool `json:"history"`
}

func NewUserRecord() *UserRecord {
	return &UserRecord{
		Routines: []Routine{},
		History:  make(map[string]map[string]bool),
	}
}

// Document is the whole durable store, keyed by user id.
type Document map[string]*UserRecord

// Clone returns a deep copy of the record, safe to hand out for rendering.
func (u *UserRecord) Clone() UserRecord {
	out := UserRecord{
		Routines: make([]Routine, len(u.Routines)),
		History:  make(map[string]map[string]bool, len(u.History)),
	}
	copy(out.Routines, u.Routines)
	for date, entries := range u.History {
		day := make(map[string]bool, len(entries))
		for id, done := range entries {
			day[id] = done
		}
		out.History[date] = day
	}
	return out
}
