package repositories

import (
	"context"
	"errors"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStore() (*LocalStore, *MemoryData) {
	data := NewMemoryData()
	store := NewLocalStore(data)
	store.SetClock(func() time.Time { return fixedNow })
	return store, data
}

type failingStorage struct {
	MemoryData
}

func (failingStorage) Load(_ context.Context, _ string) ([]byte, error) {
	return nil, errors.New("disk is gone")
}

func Test_LocalStore_WhenDataIsMalformed_ShouldReturnEmptyList(t *testing.T) {
	ctx := context.Background()
	store, data := newTestStore()
	require.NoError(t, data.Save(ctx, JobsKey("u1"), []byte("{not json")))

	jobs, err := store.ListJobs(ctx, "u1")

	assert.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func Test_LocalStore_WhenBucketHasUnreadableRecord_ShouldKeepItAcrossWrites(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store, data := newTestStore()
	seeded := `[{"id":"1","companyName":"Acme","role":"Dev","status":"Applied","dateApplied":"2024-03-01"},` +
		`{"id":"2","companyName":"Globex","role":"QA","status":"applied","dateApplied":"2024-03-02"}]`
	require.NoError(t, data.Save(ctx, JobsKey("u1"), []byte(seeded)))

	jobs, err := store.ListJobs(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal("Acme", jobs[0].CompanyName)

	created, err := store.CreateJob(ctx, models.Job{CompanyName: "Initech", Role: "Ops", UserID: "u1"})
	require.NoError(t, err)

	jobs, err = store.ListJobs(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal([]string{"1", created.ID}, []string{jobs[0].ID, jobs[1].ID})

	require.NoError(t, store.DeleteJob(ctx, "1"))

	raw, err := data.Load(ctx, JobsKey("u1"))
	require.NoError(t, err)
	assert.Contains(string(raw), `"companyName":"Globex"`)
	assert.Contains(string(raw), `"status":"applied"`)
	assert.Contains(string(raw), `"companyName":"Initech"`)
	assert.NotContains(string(raw), `"companyName":"Acme"`)
}

func Test_LocalStore_WhenStorageFails_ShouldReturnError(t *testing.T) {
	store := NewLocalStore(&failingStorage{MemoryData: *NewMemoryData()})

	_, err := store.ListJobs(context.Background(), "u1")

	assert.Error(t, err)
}

func Test_LocalStore_CreateJob_ShouldAssignIDAndPersist(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store, _ := newTestStore()

	first, err := store.CreateJob(ctx, models.Job{CompanyName: "Acme", Role: "Dev", UserID: "u1"})
	require.NoError(t, err)
	second, err := store.CreateJob(ctx, models.Job{CompanyName: "Globex", Role: "QA", UserID: "u1"})
	require.NoError(t, err)

	assert.Equal("1710072000000", first.ID)
	assert.Equal("1710072000001", second.ID)
	assert.Equal(models.Applied, first.Status)

	jobs, err := store.ListJobs(ctx, "u1")
	assert.NoError(err)
	assert.Equal([]models.Job{first, second}, jobs)
}

func Test_LocalStore_WhenIDTaken_ShouldReturnConflict(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	_, err := store.CreateJob(ctx, models.Job{ID: "1", CompanyName: "Acme", Role: "Dev"})
	require.NoError(t, err)
	_, err = store.CreateJob(ctx, models.Job{ID: "1", CompanyName: "Acme", Role: "Dev"})

	assert.ErrorIs(t, err, ErrConflict)
}

func Test_LocalStore_ShouldIsolateUserBuckets(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store, _ := newTestStore()

	_, err := store.CreateJob(ctx, models.Job{CompanyName: "Acme", Role: "Dev", UserID: "u1"})
	require.NoError(t, err)
	_, err = store.CreateJob(ctx, models.Job{CompanyName: "Solo", Role: "Ops"})
	require.NoError(t, err)

	u1, _ := store.ListJobs(ctx, "u1")
	u2, _ := store.ListJobs(ctx, "u2")
	single, _ := store.ListJobs(ctx, "")

	assert.Len(u1, 1)
	assert.Empty(u2)
	assert.Len(single, 1)
	assert.Equal("Solo", single[0].CompanyName)
}

func Test_LocalStore_UpdateAndDelete_ShouldFindJobInUserBucket(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store, _ := newTestStore()

	user, err := store.CreateUser(ctx, models.User{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	job, err := store.CreateJob(ctx, models.Job{CompanyName: "Acme", Role: "Dev", UserID: user.ID})
	require.NoError(t, err)

	updated, err := store.UpdateJob(ctx, job.ID, models.StatusPatch(models.Pending))
	assert.NoError(err)
	assert.Equal(models.Pending, updated.Status)
	assert.Equal("Acme", updated.CompanyName)

	got, err := store.GetJob(ctx, job.ID)
	assert.NoError(err)
	require.NotNil(t, got)
	assert.Equal(models.Pending, got.Status)

	assert.NoError(store.DeleteJob(ctx, job.ID))
	jobs, _ := store.ListJobs(ctx, user.ID)
	assert.Empty(jobs)
}

func Test_LocalStore_WhenJobUnknown_ShouldReturnNotFound(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store, _ := newTestStore()

	job, err := store.GetJob(ctx, "missing")
	assert.NoError(err)
	assert.Nil(job)

	_, err = store.UpdateJob(ctx, "missing", models.StatusPatch(models.Pending))
	assert.ErrorIs(err, ErrNotFound)
	assert.ErrorIs(store.DeleteJob(ctx, "missing"), ErrNotFound)
}

func Test_LocalStore_Users(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store, _ := newTestStore()

	exists, err := store.UsernameExists(ctx, "alice")
	assert.NoError(err)
	assert.False(exists)

	created, err := store.CreateUser(ctx, models.User{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(created.ID)

	exists, _ = store.UsernameExists(ctx, "alice")
	assert.True(exists)

	found, err := store.FindUser(ctx, "alice", "secret1")
	assert.NoError(err)
	assert.Equal(&created, found)

	found, err = store.FindUser(ctx, "alice", "wrong")
	assert.NoError(err)
	assert.Nil(found)
}
