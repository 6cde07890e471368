package store

import (
	"sort"

	"shortlink/pkg/core/domain"
)

// EntryStore is the in-memory authoritative mapping of id->entry and
// code->id. It is the source of truth during a session; the two indexes are
// updated together so no caller can observe one without the other.
//
// The store itself is not synchronized; the engine serializes access.
type EntryStore struct {
	byID   map[string]*domain.Entry
	byCode map[string]string
}

// NewEntryStore creates an empty store.
func NewEntryStore() *EntryStore {
	return &EntryStore{
		byID:   make(map[string]*domain.Entry),
		byCode: make(map[string]string),
	}
}

// Insert adds both mappings for the entry. Duplicates indicate a consistency
// bug upstream: validation checks the code before insertion.
func (s *EntryStore) Insert(e *domain.Entry) error {
	if _, exists := s.byID[e.ID]; exists {
		return domain.ErrDuplicateID
	}
	if _, exists := s.byCode[e.ShortCode]; exists {
		return domain.ErrDuplicateCode
	}
	s.byID[e.ID] = e
	s.byCode[e.ShortCode] = e.ID
	return nil
}

// GetByID returns the entry for an id, or absence.
func (s *EntryStore) GetByID(id string) (*domain.Entry, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// GetByCode returns the entry owning a short code, or absence.
func (s *EntryStore) GetByCode(code string) (*domain.Entry, bool) {
	id, ok := s.byCode[code]
	if !ok {
		return nil, false
	}
	return s.byID[id], true
}

// CodeInUse reports whether a short code currently maps to an entry.
func (s *EntryStore) CodeInUse(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// Remove drops both mappings for the entry.
func (s *EntryStore) Remove(id string) error {
	e, ok := s.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byCode, e.ShortCode)
	return nil
}

// Len returns the number of stored entries.
func (s *EntryStore) Len() int {
	return len(s.byID)
}

// All returns a snapshot of every entry ordered by CreatedAt descending.
// Entries are cloned so callers cannot mutate stored state.
func (s *EntryStore) All() []*domain.Entry {
	entries := make([]*domain.Entry, 0, len(s.byID))
	for _, e := range s.byID {
		entries = append(entries, e.Clone())
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries
}

// CodeIndex returns a copy of the code->id index.
func (s *EntryStore) CodeIndex() map[string]string {
	idx := make(map[string]string, len(s.byCode))
	for code, id := range s.byCode {
		idx[code] = id
	}
	return idx
}

// Reset replaces the store contents, used to restore persisted state at
// startup. Entries carrying a duplicate id or code are skipped.
func (s *EntryStore) Reset(entries []*domain.Entry) {
	s.byID = make(map[string]*domain.Entry, len(entries))
	s.byCode = make(map[string]string, len(entries))
	for _, e := range entries {
		if _, exists := s.byID[e.ID]; exists {
			continue
		}
		if _, exists := s.byCode[e.ShortCode]; exists {
			continue
		}
		s.byID[e.ID] = e.Clone()
		s.byCode[e.ShortCode] = e.ID
	}
}
