package models

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"reflect"
	"sort"
	"strings"
	"time"
)

// FieldErrors maps a form field (json name) to a human-readable message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e FieldErrors) UserMessage() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, e[field])
	}
	return strings.Join(messages, "\n")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		_, err := ParseStatus(fl.Field().String())
		return err == nil
	})
	return v
}

type messageFunc func(err validator.FieldError) string

func toFieldErrors(err error, messages map[string]messageFunc) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	result := FieldErrors{}
	for _, fieldErr := range validationErrors {
		if message, found := messages[fieldErr.Field()+"."+fieldErr.Tag()]; found {
			result[fieldErr.Field()] = message(fieldErr)
		} else {
			result[fieldErr.Field()] = fmt.Sprintf("%s is invalid", fieldErr.Field())
		}
	}
	return result
}

func fixed(text string) messageFunc {
	return func(validator.FieldError) string { return text }
}

// JobForm is the add-job form. Every field is free text until Validate.
type JobForm struct {
	CompanyName    string `json:"companyName" validate:"required"`
	Role           string `json:"role" validate:"required"`
	Status         string `json:"status" validate:"omitempty,status"`
	DateApplied    string `json:"dateApplied" validate:"omitempty,isodate"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	Duties         string `json:"duties"`
	ContactDetails string `json:"contactDetails"`
	Address        string `json:"address"`
	Notes          string `json:"notes"`
}

var jobFormMessages = map[string]messageFunc{
	"companyName.required": fixed("Company name is required"),
	"role.required":        fixed("Role is required"),
	"status.status":        fixed("Unknown status"),
	"dateApplied.isodate":  fixed("Date must be in YYYY-MM-DD format"),
}

func (f JobForm) trimmed() JobForm {
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.Role = strings.TrimSpace(f.Role)
	f.Status = strings.TrimSpace(f.Status)
	f.DateApplied = strings.TrimSpace(f.DateApplied)
	return f
}

// Validate checks the form and builds a job without id and owner.
// Status defaults to Applied and the date to today.
func (f JobForm) Validate(today time.Time) (Job, error) {
	f = f.trimmed()
	if err := validate.Struct(f); err != nil {
		return Job{}, toFieldErrors(err, jobFormMessages)
	}

	status := Applied
	if f.Status != "" {
		status = Status(f.Status)
	}

	date := f.DateApplied
	if date == "" {
		date = today.Format(DateLayout)
	}

	return Job{
		CompanyName:    f.CompanyName,
		Role:           f.Role,
		Status:         status,
		DateApplied:    date,
		Description:    f.Description,
		Requirements:   f.Requirements,
		Duties:         f.Duties,
		ContactDetails: f.ContactDetails,
		Address:        f.Address,
		Notes:          f.Notes,
	}, nil
}

type RegisterForm struct {
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

var registerFormMessages = map[string]messageFunc{
	"username.required":       fixed("Username is required"),
	"username.min":            fixed("Username must be at least 3 characters long"),
	"password.required":       fixed("Password is required"),
	"password.min":            fixed("Password must be at least 6 characters long"),
	"confirmPassword.eqfield": fixed("Passwords do not match"),
}

func (f RegisterForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	if err := validate.Struct(f); err != nil {
		return toFieldErrors(err, registerFormMessages)
	}
	return nil
}

type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var loginFormMessages = map[string]messageFunc{
	"username.required": fixed("Username is required"),
	"password.required": fixed("Password is required"),
}

func (f LoginForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	if err := validate.Struct(f); err != nil {
		return toFieldErrors(err, loginFormMessages)
	}
	return nil
}
