package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
)

const (
	UsersKey          = "jobTracker_users"
	SingleUserJobsKey = "jobTracker_jobs"
)

func JobsKey(userID string) string {
	if userID == "" {
		return SingleUserJobsKey
	}
	return "jobs_" + userID
}

type keyValueStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// LocalStore keeps users and jobs as JSON arrays in a key/value store.
// Jobs are partitioned per owner; jobs without an owner share SingleUserJobsKey.
type LocalStore struct {
	storage keyValueStore
	now     func() time.Time
	mu      sync.Mutex
}

func NewLocalStore(storage keyValueStore) *LocalStore {
	return &LocalStore{storage: storage, now: time.Now}
}

func (s *LocalStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *LocalStore) ListJobs(ctx context.Context, userID string) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readArray[models.Job](ctx, s.storage, JobsKey(userID))
}

func (s *LocalStore) GetJob(ctx context.Context, id string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, jobs, index, err := s.locateJob(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &jobs.items[index], nil
}

func (s *LocalStore) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := JobsKey(job.UserID)
	jobs, err := readBucket[models.Job](ctx, s.storage, key)
	if err != nil {
		return models.Job{}, err
	}

	taken := func(id string) bool {
		return lo.ContainsBy(jobs.items, func(j models.Job) bool { return j.ID == id })
	}
	if job.ID == "" {
		job.ID = models.NewID(s.now(), taken)
	} else if taken(job.ID) {
		return models.Job{}, fmt.Errorf("job %s: %w", job.ID, ErrConflict)
	}
	if job.Status == "" {
		job.Status = models.Applied
	}

	jobs.items = append(jobs.items, job)
	if err = writeBucket(ctx, s.storage, key, jobs); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

func (s *LocalStore) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, jobs, index, err := s.locateJob(ctx, id)
	if err != nil {
		return models.Job{}, err
	}

	jobs.items[index] = patch.Apply(jobs.items[index])
	if err = writeBucket(ctx, s.storage, key, jobs); err != nil {
		return models.Job{}, err
	}
	return jobs.items[index], nil
}

func (s *LocalStore) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, jobs, index, err := s.locateJob(ctx, id)
	if err != nil {
		return err
	}

	jobs.items = append(jobs.items[:index], jobs.items[index+1:]...)
	return writeBucket(ctx, s.storage, key, jobs)
}

func (s *LocalStore) FindUser(ctx context.Context, username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readArray[models.User](ctx, s.storage, UsersKey)
	if err != nil {
		return nil, err
	}

	user, found := lo.Find(users, func(u models.User) bool {
		return u.Username == username && u.Password == password
	})
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (s *LocalStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readArray[models.User](ctx, s.storage, UsersKey)
	if err != nil {
		return false, err
	}
	return lo.ContainsBy(users, func(u models.User) bool { return u.Username == username }), nil
}

func (s *LocalStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readBucket[models.User](ctx, s.storage, UsersKey)
	if err != nil {
		return models.User{}, err
	}

	taken := func(id string) bool {
		return lo.ContainsBy(users.items, func(u models.User) bool { return u.ID == id })
	}
	if user.ID == "" {
		user.ID = models.NewID(s.now(), taken)
	} else if taken(user.ID) {
		return models.User{}, fmt.Errorf("user %s: %w", user.ID, ErrConflict)
	}

	users.items = append(users.items, user)
	if err = writeBucket(ctx, s.storage, UsersKey, users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// locateJob searches the shared bucket and then every known user's bucket.
func (s *LocalStore) locateJob(ctx context.Context, id string) (string, bucket[models.Job], int, error) {
	users, err := readArray[models.User](ctx, s.storage, UsersKey)
	if err != nil {
		return "", bucket[models.Job]{}, -1, err
	}

	keys := append([]string{SingleUserJobsKey}, lo.Map(users, func(u models.User, _ int) string {
		return JobsKey(u.ID)
	})...)

	for _, key := range lo.Uniq(keys) {
		jobs, err := readBucket[models.Job](ctx, s.storage, key)
		if err != nil {
			return "", bucket[models.Job]{}, -1, err
		}
		if _, index, found := lo.FindIndexOf(jobs.items, func(j models.Job) bool { return j.ID == id }); found {
			return key, jobs, index, nil
		}
	}
	return "", bucket[models.Job]{}, -1, fmt.Errorf("job %s: %w", id, ErrNotFound)
}

// bucket is a decoded JSON array. Elements that do not decode are kept verbatim
// in unreadable so writing the bucket back never drops them.
type bucket[T any] struct {
	items      []T
	unreadable []json.RawMessage
}

// readArray never fails on malformed data, it reads as an empty collection.
func readArray[T any](ctx context.Context, storage keyValueStore, key string) ([]T, error) {
	b, err := readBucket[T](ctx, storage, key)
	if err != nil {
		return nil, err
	}
	return b.items, nil
}

func readBucket[T any](ctx context.Context, storage keyValueStore, key string) (bucket[T], error) {
	data, err := storage.Load(ctx, key)
	if err != nil {
		return bucket[T]{}, fmt.Errorf("failed to load %s: %w", key, err)
	}

	b := bucket[T]{items: []T{}}
	if len(data) == 0 {
		return b, nil
	}

	var elements []json.RawMessage
	if err = json.Unmarshal(data, &elements); err != nil {
		log.Debugf("malformed data under %s treated as empty: %v", key, err)
		return b, nil
	}

	for _, element := range elements {
		var item T
		if err = json.Unmarshal(element, &item); err != nil {
			log.Debugf("unreadable record under %s skipped: %v", key, err)
			b.unreadable = append(b.unreadable, element)
			continue
		}
		b.items = append(b.items, item)
	}
	return b, nil
}

func writeBucket[T any](ctx context.Context, storage keyValueStore, key string, b bucket[T]) error {
	elements := make([]json.RawMessage, 0, len(b.items)+len(b.unreadable))
	for _, item := range b.items {
		element, err := json.Marshal(item)
		if err != nil {
			return err
		}
		elements = append(elements, element)
	}
	elements = append(elements, b.unreadable...)

	data, err := json.Marshal(elements)
	if err != nil {
		return err
	}
	if err = storage.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
