package routines

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"routine-bot/internal/timeslot"
)

// Service owns every mutation of the durable document. Each operation is a
// full load→mutate→save and all of them are serialized by one mutex, so two
// concurrent updates can never silently drop each other's writes.
type Service struct {
	repo Repository
	mu   sync.Mutex
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Today returns the current ISO date used as a history key.
func (s *Service) Today() string {
	return s.now().Format("2006-01-02")
}

func ensureUser(doc Document, uid string) *UserRecord {
	rec, ok := doc[uid]
	if !ok {
		rec = NewUserRecord()
		doc[uid] = rec
	}
	if rec.History == nil {
		rec.History = make(map[string]map[string]bool)
	}
	return rec
}

// EnsureUser inserts an empty record for the user if absent. Idempotent.
func (s *Service) EnsureUser(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	ensureUser(doc, uid)
	return s.repo.Save(doc)
}

// Add appends a routine after checking its interval against every existing
// one for the user. On conflict it returns ErrConflict and mutates nothing.
// The new routine's id is the decimal routine count at creation time, and
// today's history entry for it is seeded to false.
func (s *Service) Add(uid, name string, start, end int) (Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.repo.Load()
	if err != nil {
		return Routine{}, fmt.Errorf("load: %w", err)
	}
	rec := ensureUser(doc, uid)
	for _, r := range rec.Routines {
		if timeslot.OverlapsWrapped(start, end, r.Start, r.End) {
			return Routine{}, ErrConflict
		}
	}
	r := Routine{
		ID:    strconv.Itoa(len(rec.Routines)),
		Name:  name,
		Start: start,
		End:   end,
	}
	rec.Routines = append(rec.Routines, r)
	today := s.Today()
	if rec.History[today] == nil {
		rec.History[today] = make(map[string]bool)
	}
	rec.History[today][r.ID] = false
	if err := s.repo.Save(doc); err != nil {
		return Routine{}, fmt.Errorf("save: %w", err)
	}
	return r, nil
}

// Toggle flips the completion mark for a routine on a date, creating the
// date bucket and the entry lazily. An absent entry counts as false.
func (s *Service) Toggle(uid, date, routineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	rec := ensureUser(doc, uid)
	if rec.History[date] == nil {
		rec.History[date] = make(map[string]bool)
	}
	rec.History[date][routineID] = !rec.History[date][routineID]
	return s.repo.Save(doc)
}

// SeedToday makes sure the user exists and today's history bucket is present,
// so the day shows up even before any routine is toggled.
func (s *Service) SeedToday(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	rec := ensureUser(doc, uid)
	today := s.Today()
	if rec.History[today] == nil {
		rec.History[today] = make(map[string]bool)
	}
	return s.repo.Save(doc)
}

// Snapshot returns a read-only copy of the user's record.
func (s *Service) Snapshot(uid string) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.repo.Load()
	if err != nil {
		return UserRecord{}, fmt.Errorf("load: %w", err)
	}
	rec, ok := doc[uid]
	if !ok {
		return *NewUserRecord(), nil
	}
	return rec.Clone(), nil
}

// AllUsers lists every known user id in stable order.
func (s *Service) AllUsers() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	uids := make([]string, 0, len(doc))
	for uid := range doc {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids, nil
}
