package record

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tourshield/internal/sentinel"
	"tourshield/internal/tourist/models"
	id "tourshield/pkg/domain"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested entity does not exist
// - Return sentinel.ErrAlreadyUsed (wrapped) when a record already exists for the user
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	// Search matches name, country, or city, case-insensitively.
	Search string
	// SafetyStatus keeps only records with this status.
	SafetyStatus models.SafetyStatus
	// Country keeps only records from this country.
	Country string
}

func (f ListFilter) matches(r *models.TouristRecord) bool {
	if f.SafetyStatus != "" && r.SafetyStatus != f.SafetyStatus {
		return false
	}
	if f.Country != "" && !strings.EqualFold(r.Country, f.Country) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystack := strings.ToLower(r.FullName + " " + r.Country + " " + r.City)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

// InMemoryRecordStore stores tourist records in memory for tests and
// development.
type InMemoryRecordStore struct {
	mu      sync.RWMutex
	records map[id.UserID]*models.TouristRecord
}

// New constructs an empty in-memory record store.
func New() *InMemoryRecordStore {
	return &InMemoryRecordStore{records: make(map[id.UserID]*models.TouristRecord)}
}

func (s *InMemoryRecordStore) Create(_ context.Context, record *models.TouristRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.UserID]; ok {
		return fmt.Errorf("tourist record exists: %w", sentinel.ErrAlreadyUsed)
	}
	s.records[record.UserID] = record
	return nil
}

func (s *InMemoryRecordStore) FindByUserID(_ context.Context, userID id.UserID) (*models.TouristRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[userID]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("tourist record not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryRecordStore) Update(_ context.Context, record *models.TouristRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.UserID]; !ok {
		return fmt.Errorf("tourist record not found: %w", sentinel.ErrNotFound)
	}
	s.records[record.UserID] = record
	return nil
}

// List returns matching records ordered by registration date, newest first.
func (s *InMemoryRecordStore) List(_ context.Context, filter ListFilter) ([]*models.TouristRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.TouristRecord, 0, len(s.records))
	for _, record := range s.records {
		if filter.matches(record) {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RegistrationDate.After(result[j].RegistrationDate)
	})
	return result, nil
}

func (s *InMemoryRecordStore) Delete(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[userID]; !ok {
		return fmt.Errorf("tourist record not found: %w", sentinel.ErrNotFound)
	}
	delete(s.records, userID)
	return nil
}
