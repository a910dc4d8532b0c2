package routes

import (
	"strings"
)

const (
	Landing  = "/"
	Login    = "/login"
	Register = "/register"
	Home     = "/home"
	NotFound = "/404"
	jobPage  = "/job/"
)

// AfterLogout is where the front end goes once the session is cleared.
const AfterLogout = Landing

func JobPath(id string) string {
	return jobPage + id
}

type access int

const (
	public access = iota
	guestOnly
	protected
)

// Decision tells the front end which page to render. Redirect is empty when Path can be shown as is.
type Decision struct {
	Path     string
	Redirect string
	// JobID is set for /job/:id pages.
	JobID string
}

func (d Decision) Target() string {
	if d.Redirect != "" {
		return d.Redirect
	}
	return d.Path
}

func Resolve(path string, authenticated bool) Decision {
	path = normalize(path)

	rule, jobID, known := match(path)
	if !known {
		return Decision{Path: path, Redirect: NotFound}
	}

	switch {
	case rule == protected && !authenticated:
		return Decision{Path: path, Redirect: Login}
	case rule == guestOnly && authenticated:
		return Decision{Path: path, Redirect: Home}
	}
	return Decision{Path: path, JobID: jobID}
}

func match(path string) (access, string, bool) {
	switch path {
	case Landing, NotFound:
		return public, "", true
	case Login, Register:
		return guestOnly, "", true
	case Home:
		return protected, "", true
	}

	if id, ok := strings.CutPrefix(path, jobPage); ok && id != "" && !strings.Contains(id, "/") {
		return protected, id, true
	}
	return public, "", false
}

func normalize(path string) string {
	if path == "" {
		return Landing
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
