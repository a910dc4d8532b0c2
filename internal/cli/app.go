package cli

import (
	"context"
	"errors"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/domain/events"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/routes"
	"github.com/maxaizer/job-tracker/internal/services"
	"github.com/maxaizer/job-tracker/internal/session"
	log "github.com/sirupsen/logrus"
	"io"
	"strconv"
	"strings"
	"time"
)

const backCommandName = "back"

// App is the interactive front end. It renders pages, runs one command at a time and
// gates protected pages on the session.
type App struct {
	ctx      context.Context
	out      console
	storage  services.Storage
	sessions *session.Store
	auth     *services.Auth
	bus      EventBus.Bus

	jobs  *services.JobCollection
	query services.ViewQuery
	page  string

	curCommand command
	now        func() time.Time
	done       bool
}

func NewApp(out io.Writer, storage services.Storage, sessions *session.Store, bus EventBus.Bus) (*App, error) {

	if storage == nil {
		return nil, errors.New("storage is nil")
	}

	if sessions == nil {
		return nil, errors.New("session store is nil")
	}

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	app := &App{
		ctx:      context.Background(),
		out:      console{w: out},
		storage:  storage,
		sessions: sessions,
		auth:     services.NewAuth(storage, sessions),
		bus:      bus,
		query:    services.ViewQuery{Status: services.AllStatuses},
		page:     routes.Landing,
		now:      time.Now,
	}

	if err := bus.Subscribe(events.SessionStartedTopic, app.onSessionStarted); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.SessionEndedTopic, app.onSessionEnded); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

// Start restores a saved session and shows the first page.
func (a *App) Start(ctx context.Context) {
	a.ctx = ctx
	a.sessions.Restore(ctx)

	if user, ok := a.sessions.Current(); ok {
		log.Infof("restored session of %s", user.Username)
		a.mountJobs(user)
		a.out.Sendf("Welcome back, %s!", user.Username)
		a.navigate(routes.Home)
		return
	}
	a.navigate(routes.Landing)
}

// Run reads lines until quit, end of input or ctx is done.
func (a *App) Run(ctx context.Context, reader lineReader) error {
	a.Start(ctx)

	for !a.done && ctx.Err() == nil {
		a.out.Prompt(a.promptLabel())

		line, err := reader.ReadLine(a.ExpectsSecret())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		a.HandleLine(line)
	}
	return nil
}

func (a *App) Done() bool {
	return a.done
}

func (a *App) Page() string {
	return a.page
}

func (a *App) ExpectsSecret() bool {
	return a.curCommand != nil && a.curCommand.ExpectsSecret()
}

func (a *App) HandleLine(line string) {

	if a.curCommand != nil {
		if strings.EqualFold(strings.TrimSpace(line), backCommandName) {
			a.curCommand = nil
			a.out.Send("Cancelled.")
			return
		}
		a.curCommand.OnUserInput(line)
		return
	}

	name, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(name) {
	case "":
	case "help":
		a.out.Send(helpText)
	case "quit", "exit":
		a.done = true
	case backCommandName:
		a.navigate(routes.Landing)
	case "open":
		a.navigate(args)
	case "login":
		a.navigate(routes.Login)
	case "register":
		a.navigate(routes.Register)
	case "list":
		a.navigate(routes.Home)
	case "show":
		if job, ok := a.jobByNumber(args); ok {
			a.navigate(routes.JobPath(job.ID))
		}
	case "logout", "add", "edit", "status", "delete", "search", "filter", "sort", "stats", "reload":
		if a.requireSession() {
			a.handleJobCommand(strings.ToLower(name), args)
		}
	default:
		a.out.Sendf("Unknown command %q. Type 'help' to see the commands.", name)
	}
}

func (a *App) handleJobCommand(name, args string) {
	switch name {
	case "logout":
		if err := a.auth.Logout(a.ctx); err != nil {
			a.out.Send(services.DescribeError(err))
		}
	case "add":
		a.runCommand(newAddJobCommand(a.ctx, a.out, a.jobs))
	case "edit":
		if job, ok := a.jobByNumber(args); ok {
			a.runCommand(newEditJobCommand(a.ctx, a.out, a.jobs, job))
		}
	case "delete":
		if job, ok := a.jobByNumber(args); ok {
			a.runCommand(newRemoveJobCommand(a.ctx, a.out, a.jobs, job))
		}
	case "status":
		if job, ok := a.jobByNumber(args); ok {
			updated, err := a.jobs.CycleStatus(a.ctx, job.ID)
			if err != nil {
				a.out.Send(services.DescribeError(err))
				return
			}
			a.out.Sendf("%s - %s: %s -> %s", updated.CompanyName, updated.Role, job.Status, updated.Status)
		}
	case "search":
		a.query.Search = args
		a.showList()
	case "filter":
		a.setStatusFilter(args)
	case "sort":
		a.setSort(args)
	case "stats":
		a.out.Send(statsLine(a.jobs.Stats()))
	case "reload":
		a.loadJobs()
		a.showList()
	}
}

// requireSession sends anonymous users to the login page.
func (a *App) requireSession() bool {
	if routes.Resolve(routes.Home, a.sessions.IsAuthenticated()).Redirect == "" && a.jobs != nil {
		return true
	}
	a.navigate(routes.Home)
	return false
}

func (a *App) navigate(path string) {
	authenticated := a.sessions.IsAuthenticated()
	decision := routes.Resolve(path, authenticated)

	switch decision.Redirect {
	case routes.Login:
		a.out.Send("Please log in to continue.")
	case routes.Home:
		if user, ok := a.sessions.Current(); ok {
			a.out.Sendf("You are already logged in as %s.", user.Username)
		}
	}

	a.page = decision.Target()
	switch {
	case a.page == routes.Landing:
		a.showLanding()
	case a.page == routes.Login:
		a.runCommand(newLoginCommand(a.ctx, a.out, a.auth))
	case a.page == routes.Register:
		a.runCommand(newRegisterCommand(a.ctx, a.out, a.auth))
	case a.page == routes.Home:
		a.showList()
	case decision.JobID != "":
		a.showJob(decision.JobID)
	default:
		a.out.Send("Page not found. Type 'help' to see the commands.")
	}
}

func (a *App) showLanding() {
	if user, ok := a.sessions.Current(); ok {
		a.out.Sendf("Job Tracker. Logged in as %s, type 'list' to see your applications.", user.Username)
		return
	}
	a.out.Send("Job Tracker. Keep every job application in one place.\n" +
		"Type 'register' to create an account or 'login' to sign in. 'help' lists all commands.")
}

func (a *App) showList() {
	if a.jobs == nil {
		return
	}

	if state, message := a.jobs.State(); state == services.StateError {
		a.out.Send(message)
	}

	visible := a.jobs.View(a.query)
	if description := describeQuery(a.query); description != "" {
		a.out.Sendf("Showing %d of %d applications (%s)", len(visible), len(a.jobs.Jobs()), description)
	}
	if len(visible) == 0 {
		if len(a.jobs.Jobs()) == 0 {
			a.out.Send("No job applications yet. Type 'add' to create one.")
		} else {
			a.out.Send("No job applications match the current filters.")
		}
		return
	}

	now := a.now()
	for i, job := range visible {
		a.out.Send(jobCard(i+1, job, now))
	}
}

func (a *App) showJob(id string) {
	job, found := a.jobs.Get(id)
	if !found {
		a.page = routes.NotFound
		a.out.Send("Job application not found.")
		return
	}
	a.out.Send(jobDetails(job, a.now()))
}

func (a *App) setStatusFilter(args string) {
	switch {
	case args == "" || strings.EqualFold(args, services.AllStatuses):
		a.query.Status = services.AllStatuses
	default:
		status, err := models.ParseStatusFold(args)
		if err != nil {
			a.out.Send("Status must be one of: All, Applied, Pending, Rejected, Interviewed")
			return
		}
		a.query.Status = string(status)
	}
	a.showList()
}

func (a *App) setSort(args string) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		a.query.SortBy, a.query.Order = "", ""
		a.showList()
		return
	}

	field, err := services.ParseSortField(fields[0])
	if err != nil {
		a.out.Send("Sort by one of: date, company, role, status")
		return
	}

	order := services.Ascending
	if len(fields) > 1 {
		if order, err = services.ParseSortOrder(fields[1]); err != nil {
			a.out.Send("Sort order must be asc or desc")
			return
		}
	}

	a.query.SortBy, a.query.Order = field, order
	a.showList()
}

// jobByNumber resolves the position shown by the last listing.
func (a *App) jobByNumber(args string) (models.Job, bool) {
	if !a.requireSession() {
		return models.Job{}, false
	}

	number, err := strconv.Atoi(strings.TrimSpace(args))
	visible := a.jobs.View(a.query)
	if err != nil || number < 1 || number > len(visible) {
		a.out.Send("Enter the number of an application from the list.")
		return models.Job{}, false
	}
	return visible[number-1], true
}

func (a *App) runCommand(cmd command) {
	a.curCommand = cmd
	cmd.WithFinishCallback(func() {
		if a.curCommand == cmd {
			a.curCommand = nil
		}
	})
	cmd.Run()
}

func (a *App) mountJobs(user models.User) {
	a.jobs = services.NewJobCollection(a.storage, a.bus, user.ID)
	a.jobs.SetClock(a.now)
	a.query = services.ViewQuery{Status: services.AllStatuses}
	a.loadJobs()
}

func (a *App) loadJobs() {
	if err := a.jobs.Load(a.ctx); err != nil {
		log.Warnf("jobs were not loaded: %v", err)
	}
}

func (a *App) onSessionStarted(event events.SessionStarted) {
	a.mountJobs(event.User)
	a.navigate(routes.Home)
}

func (a *App) onSessionEnded(_ events.SessionEnded) {
	a.jobs = nil
	a.out.Send("You have been logged out.")
	a.navigate(routes.AfterLogout)
}

func (a *App) promptLabel() string {
	if a.curCommand != nil {
		return "> "
	}
	if user, ok := a.sessions.Current(); ok {
		return fmt.Sprintf("%s@%s> ", user.Username, a.page)
	}
	return a.page + "> "
}
