package session

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/domain/events"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/logger"
	log "github.com/sirupsen/logrus"
	"sync"
)

// StorageKey is where the signed-in user is persisted.
const StorageKey = "jobTracker_user"

type storage interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// Store holds the identity of the signed-in user and mirrors it to durable storage.
type Store struct {
	storage storage
	bus     EventBus.Bus

	mu   sync.RWMutex
	user *models.User
}

func NewStore(storage storage, bus EventBus.Bus) *Store {
	return &Store{storage: storage, bus: bus}
}

// Restore reads the persisted identity. Missing or corrupt data leaves the store anonymous.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil

	data, err := s.storage.Load(ctx, StorageKey)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSession).
			Warnf("failed to load saved session: %v", err)
		return
	}
	if len(data) == 0 {
		return
	}

	var user models.User
	if err = json.Unmarshal(data, &user); err != nil || !user.IsValid() {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSession).
			Warnf("ignoring malformed saved session")
		return
	}

	s.user = &user
}

func (s *Store) Login(ctx context.Context, user models.User) error {
	if !user.IsValid() {
		return fmt.Errorf("user must have an id and a username")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err = s.storage.Save(ctx, StorageKey, data); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.user = &user
	s.mu.Unlock()

	s.publish(events.SessionStartedTopic, events.SessionStarted{User: user})
	return nil
}

func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	userID := ""
	if s.user != nil {
		userID = s.user.ID
	}
	s.user = nil
	err := s.storage.Remove(ctx, StorageKey)
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.publish(events.SessionEndedTopic, events.SessionEnded{UserID: userID})
	return nil
}

func (s *Store) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *Store) publish(topic string, event any) {
	if s.bus != nil {
		s.bus.Publish(topic, event)
	}
}
