package repositories

import (
	"context"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func newTestDb(t *testing.T) *DbContext {
	dbCtx, err := NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.MigrateStorage())
	require.NoError(t, dbCtx.MigrateServer())
	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func Test_Data_ShouldSaveLoadAndRemove(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	data := NewDataRepository(newTestDb(t).DB)

	value, err := data.Load(ctx, "missing")
	assert.NoError(err)
	assert.Nil(value)

	assert.NoError(data.Save(ctx, "key", []byte("first")))
	assert.NoError(data.Save(ctx, "key", []byte("second")))

	value, err = data.Load(ctx, "key")
	assert.NoError(err)
	assert.Equal([]byte("second"), value)

	assert.NoError(data.Remove(ctx, "key"))
	value, _ = data.Load(ctx, "key")
	assert.Nil(value)
}

func Test_LocalStore_WhenBackedByDatabase_ShouldSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tracker.db")

	dbCtx, err := NewDbContext(path)
	require.NoError(t, err)
	require.NoError(t, dbCtx.MigrateStorage())
	job, err := NewLocalStore(NewDataRepository(dbCtx.DB)).
		CreateJob(ctx, models.Job{CompanyName: "Acme", Role: "Dev", UserID: "u1"})
	require.NoError(t, err)
	require.NoError(t, dbCtx.Close())

	dbCtx, err = NewDbContext(path)
	require.NoError(t, err)
	defer dbCtx.Close()

	jobs, err := NewLocalStore(NewDataRepository(dbCtx.DB)).ListJobs(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, []models.Job{job}, jobs)
}

func Test_Jobs_Repository(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	jobs := NewJobsRepository(newTestDb(t).DB)

	require.NoError(t, jobs.Create(ctx, models.Job{ID: "1", CompanyName: "Acme", Role: "Dev",
		Status: models.Applied, DateApplied: "2024-01-01", UserID: "u1"}))
	require.NoError(t, jobs.Create(ctx, models.Job{ID: "2", CompanyName: "Globex", Role: "QA",
		Status: models.Applied, DateApplied: "2024-01-02", UserID: "u2"}))
	assert.ErrorIs(jobs.Create(ctx, models.Job{ID: "1"}), ErrConflict)

	owner := "u1"
	found, err := jobs.Find(ctx, &owner)
	assert.NoError(err)
	assert.Len(found, 1)

	all, _ := jobs.Find(ctx, nil)
	assert.Len(all, 2)

	notes := "call back"
	patch := models.StatusPatch(models.Rejected)
	patch.Notes = &notes
	updated, err := jobs.Update(ctx, "1", patch)
	assert.NoError(err)
	require.NotNil(t, updated)
	assert.Equal(models.Rejected, updated.Status)
	assert.Equal("call back", updated.Notes)
	assert.Equal("Acme", updated.CompanyName)

	missing, err := jobs.Update(ctx, "404", patch)
	assert.NoError(err)
	assert.Nil(missing)

	deleted, err := jobs.Delete(ctx, "1")
	assert.NoError(err)
	assert.True(deleted)
	deleted, _ = jobs.Delete(ctx, "1")
	assert.False(deleted)
}

func Test_Users_Repository(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	users := NewUsersRepository(newTestDb(t).DB)

	require.NoError(t, users.Create(ctx, models.User{ID: "1", Username: "alice", Password: "secret1"}))
	assert.ErrorIs(users.Create(ctx, models.User{ID: "1", Username: "bob"}), ErrConflict)

	username, password := "alice", "secret1"
	found, err := users.Find(ctx, &username, &password)
	assert.NoError(err)
	assert.Len(found, 1)

	wrong := "nope"
	found, _ = users.Find(ctx, &username, &wrong)
	assert.Empty(found)

	user, err := users.GetByID(ctx, "1")
	assert.NoError(err)
	assert.Equal("alice", user.Username)
}
