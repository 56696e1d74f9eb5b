// Package memory is an in-process Store, guarded by a single mutex like the
// teacher's in-memory store: fine for a single coordinator process, and what
// tests run against without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/store"
)

type Store struct {
	mu      sync.Mutex
	records map[string]model.PersistedRecord
}

func NewStore() *Store {
	return &Store{records: make(map[string]model.PersistedRecord)}
}

func (s *Store) CreateRecord(_ context.Context, rec model.PersistedRecord) (model.PersistedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.RecordID == "" {
		rec.RecordID = newID()
	}
	if rec.Status == "" {
		rec.Status = model.RecordPending
	}
	s.records[rec.RecordID] = rec
	return rec, nil
}

func (s *Store) GetRecord(_ context.Context, recordID string) (*model.PersistedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[recordID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &rec, nil
}

func (s *Store) ListRecords(_ context.Context, f store.RecordFilter) ([]model.PersistedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.PersistedRecord, 0, len(s.records))
	for _, rec := range s.records {
		if f.VisitorID != 0 && rec.VisitorID != f.VisitorID {
			continue
		}
		if f.InviterID != 0 && rec.InviterID != f.InviterID {
			continue
		}
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) UpdateRecordStatus(_ context.Context, recordID string, status model.RecordStatus) (model.PersistedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[recordID]
	if !ok {
		return model.PersistedRecord{}, store.ErrNotFound
	}
	rec.Status = status
	s.records[recordID] = rec
	return rec, nil
}

func (s *Store) PurgeExpiredBefore(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, rec := range s.records {
		if rec.Status == model.RecordRevoked {
			continue
		}
		if rec.EndTime.Before(cutoff) {
			delete(s.records, id)
			removed++
		}
	}
	return removed, nil
}
