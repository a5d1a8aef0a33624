package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tourshield/internal/alert/models"
	"tourshield/internal/sentinel"
	id "tourshield/pkg/domain"
)

// InMemoryAlertStore keeps alerts in process memory. Used in tests and when
// no database is configured.
type InMemoryAlertStore struct {
	mu     sync.RWMutex
	alerts map[id.AlertID]*models.Alert
}

func New() *InMemoryAlertStore {
	return &InMemoryAlertStore{
		alerts: make(map[id.AlertID]*models.Alert),
	}
}

func (s *InMemoryAlertStore) Create(_ context.Context, alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.alerts[alert.ID]; exists {
		return fmt.Errorf("alert %s: %w", alert.ID, sentinel.ErrAlreadyUsed)
	}

	copied := *alert
	s.alerts[alert.ID] = &copied
	return nil
}

func (s *InMemoryAlertStore) FindByID(_ context.Context, alertID id.AlertID) (*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alert, exists := s.alerts[alertID]
	if !exists {
		return nil, fmt.Errorf("alert %s: %w", alertID, sentinel.ErrNotFound)
	}

	copied := *alert
	return &copied, nil
}

// ListRecent returns the newest alerts first, at most limit of them.
func (s *InMemoryAlertStore) ListRecent(_ context.Context, limit int) ([]*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*models.Alert, 0, len(s.alerts))
	for _, alert := range s.alerts {
		copied := *alert
		results = append(results, &copied)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *InMemoryAlertStore) ListByTourist(_ context.Context, touristID id.UserID) ([]*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*models.Alert
	for _, alert := range s.alerts {
		if alert.TouristID == touristID {
			copied := *alert
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}
