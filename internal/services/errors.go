package services

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrJobNotFound        = errors.New("job not found")
)

var errorMessages = map[error]string{
	ErrInvalidCredentials: "Invalid username or password",
	ErrUsernameTaken:      "Username already exists",
	ErrJobNotFound:        "Job not found",
}

type userMessenger interface {
	UserMessage() string
}

// DescribeError turns any error into text fit for showing to the user.
func DescribeError(err error) string {
	if err == nil {
		return ""
	}

	var messenger userMessenger
	if errors.As(err, &messenger) {
		return messenger.UserMessage()
	}

	for known, message := range errorMessages {
		if errors.Is(err, known) {
			return message
		}
	}

	return "Error: " + err.Error()
}
