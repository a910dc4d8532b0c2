package cli

import (
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"strings"
	"time"
)

type validation struct {
	function     func(input string) bool
	errorMessage string
}

type textInput struct {
	prompt      func() string
	onFinish    func(input string)
	validations []validation
	secret      bool
}

func newTextInput(prompt string, onFinish func(input string)) *textInput {
	return &textInput{prompt: func() string { return prompt }, onFinish: onFinish}
}

func newSecretInput(prompt string, onFinish func(input string)) *textInput {
	input := newTextInput(prompt, onFinish)
	input.secret = true
	return input
}

func (t *textInput) AddValidation(validation validation) {
	t.validations = append(t.validations, validation)
}

func (t *textInput) Prompt() string {
	return t.prompt()
}

func (t *textInput) Secret() bool {
	return t.secret
}

func (t *textInput) HandleInput(input string) string {
	for _, v := range t.validations {
		if !v.function(input) {
			return v.errorMessage
		}
	}

	t.onFinish(input)
	return ""
}

func required(message string) validation {
	return validation{
		function:     func(input string) bool { return strings.TrimSpace(input) != "" },
		errorMessage: message,
	}
}

func optionalStatus() validation {
	return validation{
		function: func(input string) bool {
			if strings.TrimSpace(input) == "" {
				return true
			}
			_, err := models.ParseStatusFold(input)
			return err == nil
		},
		errorMessage: "Status must be one of: Applied, Pending, Rejected, Interviewed",
	}
}

func optionalDate() validation {
	return validation{
		function: func(input string) bool {
			input = strings.TrimSpace(input)
			if input == "" {
				return true
			}
			_, err := time.Parse(models.DateLayout, input)
			return err == nil
		},
		errorMessage: "Date must be in YYYY-MM-DD format",
	}
}

func yesNo() validation {
	return validation{
		function: func(input string) bool {
			_, ok := parseYesNo(input)
			return ok
		},
		errorMessage: "Please answer y or n",
	}
}

func parseYesNo(input string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
