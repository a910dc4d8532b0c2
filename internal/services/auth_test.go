package services

import (
	"context"
	"errors"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/repositories"
	"github.com/maxaizer/job-tracker/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newTestAuth() (*Auth, *session.Store, *repositories.MemoryData) {
	data := repositories.NewMemoryData()
	sessions := session.NewStore(data, nil)
	return NewAuth(repositories.NewLocalStore(data), sessions), sessions, data
}

func register(t *testing.T, auth *Auth, username, password string) models.User {
	user, err := auth.Register(context.Background(), models.RegisterForm{
		Username: username, Password: password, ConfirmPassword: password,
	})
	require.NoError(t, err)
	return user
}

func Test_Auth_RegisterLoginAndReload(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	auth, sessions, data := newTestAuth()

	registered := register(t, auth, "alice", "secret1")
	require.NoError(t, auth.Logout(ctx))

	user, err := auth.Login(ctx, models.LoginForm{Username: "alice", Password: "secret1"})
	assert.NoError(err)
	assert.Equal(registered, user)
	assert.True(sessions.IsAuthenticated())

	reloaded := session.NewStore(data, nil)
	reloaded.Restore(ctx)
	current, ok := reloaded.Current()
	assert.True(ok)
	assert.Equal("alice", current.Username)
}

func Test_Auth_WhenPasswordWrong_ShouldNotCreateSession(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	auth, sessions, data := newTestAuth()
	register(t, auth, "alice", "secret1")
	require.NoError(t, auth.Logout(ctx))

	_, err := auth.Login(ctx, models.LoginForm{Username: "alice", Password: "wrong"})

	assert.ErrorIs(err, ErrInvalidCredentials)
	assert.Equal("Invalid username or password", DescribeError(err))
	assert.False(sessions.IsAuthenticated())

	reloaded := session.NewStore(data, nil)
	reloaded.Restore(ctx)
	assert.False(reloaded.IsAuthenticated())
}

func Test_Auth_WhenUsernameTaken_ShouldFail(t *testing.T) {
	auth, _, _ := newTestAuth()
	register(t, auth, "alice", "secret1")

	_, err := auth.Register(context.Background(), models.RegisterForm{
		Username: "alice", Password: "another1", ConfirmPassword: "another1",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, "Username already exists", DescribeError(err))
}

func Test_Auth_Register_ShouldValidateForm(t *testing.T) {
	auth, sessions, _ := newTestAuth()

	_, err := auth.Register(context.Background(), models.RegisterForm{
		Username: "al", Password: "short", ConfirmPassword: "other",
	})

	var fieldErrors models.FieldErrors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Equal(t, "Username must be at least 3 characters long", fieldErrors["username"])
	assert.Equal(t, "Password must be at least 6 characters long", fieldErrors["password"])
	assert.Equal(t, "Passwords do not match", fieldErrors["confirmPassword"])
	assert.False(t, sessions.IsAuthenticated())
}

func Test_Auth_JobsSurviveReload(t *testing.T) {
	ctx := context.Background()
	auth, _, data := newTestAuth()
	user := register(t, auth, "alice", "secret1")

	store := repositories.NewLocalStore(data)
	collection := NewJobCollection(store, nil, user.ID)
	require.NoError(t, collection.Load(ctx))
	added := addJob(t, collection, "Acme", "Dev", "")

	reloaded := NewJobCollection(repositories.NewLocalStore(data), nil, user.ID)
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, []models.Job{added}, reloaded.Jobs())
}

func Test_DescribeError(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", DescribeError(nil))
	assert.Equal("Company name is required", DescribeError(models.FieldErrors{"companyName": "Company name is required"}))
	assert.Equal("Error: disk full", DescribeError(errors.New("disk full")))
}
