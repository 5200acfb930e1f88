package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"mailtriage/internal/models"
)

// MemoryStorage keeps emails in a map guarded by a RWMutex. It exists so
// the service runs without a database in tests and local setups.
type MemoryStorage struct {
	mu     sync.RWMutex
	emails map[int64]*models.Email
	nextID int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		emails: make(map[int64]*models.Email),
		nextID: 1,
	}
}

func (s *MemoryStorage) Save(ctx context.Context, email *models.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if email.ID == 0 {
		email.ID = s.nextID
		s.nextID++
		email.CreatedAt = now
		email.UpdatedAt = now
	} else {
		existing, exists := s.emails[email.ID]
		if !exists {
			return ErrNotFound
		}
		email.CreatedAt = existing.CreatedAt
		email.UpdatedAt = now
	}

	stored := *email
	s.emails[email.ID] = &stored
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, id int64) (*models.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email, exists := s.emails[id]
	if !exists {
		return nil, ErrNotFound
	}

	copied := *email
	return &copied, nil
}

func (s *MemoryStorage) List(ctx context.Context) ([]*models.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emails := make([]*models.Email, 0, len(s.emails))
	for _, email := range s.emails {
		copied := *email
		emails = append(emails, &copied)
	}

	sort.Slice(emails, func(i, j int) bool {
		if emails[i].CreatedAt.Equal(emails[j].CreatedAt) {
			return emails[i].ID > emails[j].ID
		}
		return emails[i].CreatedAt.After(emails[j].CreatedAt)
	})

	return emails, nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
