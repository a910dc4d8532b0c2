package cli

import (
	"bytes"
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/repositories"
	"github.com/maxaizer/job-tracker/internal/routes"
	"github.com/maxaizer/job-tracker/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

var now = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

type testApp struct {
	*App
	out   *bytes.Buffer
	data  *repositories.MemoryData
	store *repositories.LocalStore
}

func newTestApp(t *testing.T, data *repositories.MemoryData) testApp {
	store := repositories.NewLocalStore(data)
	out := &bytes.Buffer{}
	app, err := newAppOver(out, data)
	require.NoError(t, err)
	app.SetClock(func() time.Time { return now })
	app.Start(context.Background())
	return testApp{App: app, out: out, data: data, store: store}
}

func newAppOver(out *bytes.Buffer, data *repositories.MemoryData) (*App, error) {
	bus := EventBus.New()
	return NewApp(out, repositories.NewLocalStore(data), session.NewStore(data, bus), bus)
}

func (a testApp) input(lines ...string) string {
	a.out.Reset()
	for _, line := range lines {
		a.HandleLine(line)
	}
	return a.out.String()
}

func registerAlice(t *testing.T, app testApp) {
	app.input("register", "alice", "secret1", "secret1")
	require.Equal(t, routes.Home, app.Page())
}

var addAcme = []string{"add", "Acme", "Backend Developer", "", "2024-05-08", "Build APIs", "", "", "", "", ""}

func Test_App_WhenAnonymous_ShouldRedirectToLogin(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp(t, repositories.NewMemoryData())

	output := app.input("list")

	assert.Contains(output, "Please log in to continue.")
	assert.Contains(output, "Username:")
	assert.Equal(routes.Login, app.Page())
	assert.False(app.ExpectsSecret())

	app.HandleLine("alice")
	assert.True(app.ExpectsSecret())
}

func Test_App_RegisterAddAndReload(t *testing.T) {
	assert := assert.New(t)
	data := repositories.NewMemoryData()
	app := newTestApp(t, data)
	registerAlice(t, app)

	output := app.input(addAcme...)
	assert.Contains(output, "Job application added: Acme - Backend Developer")

	output = app.input("list")
	assert.Contains(output, "1. Acme - Backend Developer [Applied]")
	assert.Contains(output, "Applied: 2 days ago")
	assert.Contains(output, "Description: Build APIs")

	reloaded := newTestApp(t, data)
	assert.Equal(routes.Home, reloaded.Page())
	assert.Contains(reloaded.input("list"), "1. Acme - Backend Developer [Applied]")
}

func Test_App_Login_WhenPasswordWrong_ShouldStayAnonymous(t *testing.T) {
	assert := assert.New(t)
	data := repositories.NewMemoryData()
	app := newTestApp(t, data)
	registerAlice(t, app)
	app.input("logout")
	assert.Equal(routes.Landing, app.Page())

	output := app.input("login", "alice", "wrong")

	assert.Contains(output, "Invalid username or password")
	assert.False(app.sessions.IsAuthenticated())

	output = app.input("login", "alice", "secret1")
	assert.Contains(output, "Welcome back, alice!")
	assert.Equal(routes.Home, app.Page())
}

func Test_App_Register_WhenInvalid_ShouldShowMessages(t *testing.T) {
	app := newTestApp(t, repositories.NewMemoryData())

	output := app.input("register", "al", "secret1", "secret2")

	assert.Contains(t, output, "Username must be at least 3 characters long")
	assert.Contains(t, output, "Passwords do not match")
	assert.False(t, app.sessions.IsAuthenticated())
}

func Test_App_WhenLoggedIn_LoginShouldRedirectHome(t *testing.T) {
	app := newTestApp(t, repositories.NewMemoryData())
	registerAlice(t, app)

	output := app.input("login")

	assert.Contains(t, output, "You are already logged in as alice.")
	assert.Equal(t, routes.Home, app.Page())
}

func Test_App_StatusCycle(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp(t, repositories.NewMemoryData())
	registerAlice(t, app)
	app.input(addAcme...)

	assert.Contains(app.input("status 1"), "Applied -> Pending")
	assert.Contains(app.input("status 1"), "Pending -> Rejected")
	assert.Contains(app.input("status 1"), "Rejected -> Applied")
	assert.Contains(app.input("status 7"), "Enter the number of an application from the list.")
}

func Test_App_Delete_ShouldAskForConfirmation(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp(t, repositories.NewMemoryData())
	registerAlice(t, app)
	app.input(addAcme...)
	user, _ := app.sessions.Current()

	output := app.input("delete 1", "maybe", "n")
	assert.Contains(output, "Please answer y or n")
	assert.Contains(output, "Deletion cancelled.")
	stored, _ := app.store.ListJobs(context.Background(), user.ID)
	assert.Len(stored, 1)

	output = app.input("delete 1", "y")
	assert.Contains(output, "Job application deleted.")
	stored, _ = app.store.ListJobs(context.Background(), user.ID)
	assert.Empty(stored)
	assert.Contains(app.input("list"), "No job applications yet.")
}

func Test_App_Edit_ShouldOnlySendChangedFields(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp(t, repositories.NewMemoryData())
	registerAlice(t, app)
	app.input(addAcme...)

	output := app.input("edit 1", "", "Senior Developer", "interviewed", "", "-", "", "", "", "", "Call on Monday")

	assert.Contains(output, "Job application updated: Acme - Senior Developer")
	job := app.jobs.Jobs()[0]
	assert.Equal(models.Interviewed, job.Status)
	assert.Equal("", job.Description)
	assert.Equal("Call on Monday", job.Notes)
	assert.Equal("2024-05-08", job.DateApplied)

	assert.Contains(app.input("edit 1", "", "", "", "", "", "", "", "", "", ""), "Nothing changed.")
}

func Test_App_SearchFilterSort(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp(t, repositories.NewMemoryData())
	registerAlice(t, app)
	app.input("add", "Acme", "Dev", "", "2024-01-01", "", "", "", "", "", "")
	app.input("add", "Globex", "QA", "pending", "2024-03-01", "", "", "", "", "", "")
	app.input("add", "Initech", "Ops", "", "2024-02-01", "", "", "", "", "", "")

	output := app.input("search glob")
	assert.Contains(output, "1. Globex - QA [Pending]")
	assert.NotContains(output, "Acme")

	app.input("search")
	output = app.input("filter applied")
	assert.Contains(output, "Acme")
	assert.NotContains(output, "Globex")

	app.input("filter all")
	output = app.input("sort date desc")
	assert.Less(strings.Index(output, "Globex"), strings.Index(output, "Initech"))
	assert.Less(strings.Index(output, "Initech"), strings.Index(output, "Acme"))

	assert.Contains(app.input("sort salary"), "Sort by one of")
	assert.Contains(app.input("stats"), "Total: 3  Applied: 2  Pending: 1  Rejected: 0  Interviewed: 0")
}

func Test_App_ShowAndOpen(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp(t, repositories.NewMemoryData())
	registerAlice(t, app)
	app.input(addAcme...)
	job := app.jobs.Jobs()[0]

	output := app.input("show 1")
	assert.Contains(output, "Status: Applied")
	assert.Equal(routes.JobPath(job.ID), app.Page())

	assert.Contains(app.input("open /job/unknown"), "Job application not found.")
	assert.Contains(app.input("open /settings"), "Page not found.")
	assert.Equal(routes.NotFound, app.Page())
}

func Test_App_Back_ShouldCancelCommand(t *testing.T) {
	assert := assert.New(t)
	app := newTestApp(t, repositories.NewMemoryData())
	registerAlice(t, app)

	output := app.input("add", "Acme", "back")

	assert.Contains(output, "Cancelled.")
	assert.Empty(app.jobs.Jobs())
	assert.Contains(app.input("help"), "Commands:")
}

func Test_App_Run_ShouldStopOnQuitOrEOF(t *testing.T) {
	data := repositories.NewMemoryData()
	out := &bytes.Buffer{}
	app, err := newAppOver(out, data)
	require.NoError(t, err)

	err = app.Run(context.Background(), NewReader(strings.NewReader("register\nbob\npassword\npassword\nquit\nlist\n")))

	assert.NoError(t, err)
	assert.True(t, app.Done())
	assert.Contains(t, out.String(), "Account created. Welcome, bob!")

	other, err := newAppOver(&bytes.Buffer{}, data)
	require.NoError(t, err)
	assert.NoError(t, other.Run(context.Background(), NewReader(strings.NewReader("list\n"))))
	assert.False(t, other.Done())
}

func Test_NewApp_WhenDependencyMissing_ShouldFail(t *testing.T) {
	data := repositories.NewMemoryData()

	_, err := NewApp(&bytes.Buffer{}, repositories.NewLocalStore(data), session.NewStore(data, nil), nil)

	assert.Error(t, err)
}
