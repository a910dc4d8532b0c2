package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	Applied     Status = "Applied"
	Pending     Status = "Pending"
	Rejected    Status = "Rejected"
	Interviewed Status = "Interviewed"
)

var Statuses = []Status{Applied, Pending, Rejected, Interviewed}

// DateLayout is the format of Job.DateApplied.
const DateLayout = "2006-01-02"

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Applied, Pending, Rejected, Interviewed:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid status: %q", s)
	}
}

// ParseStatusFold is like ParseStatus but ignores case and surrounding spaces.
func ParseStatusFold(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, status := range Statuses {
		if strings.EqualFold(string(status), s) {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid status: %q", s)
}

// Next returns the status a click on the status badge moves to.
// Applied -> Pending -> Rejected -> Applied; anything else restarts at Applied.
func (s Status) Next() Status {
	switch s {
	case Applied:
		return Pending
	case Pending:
		return Rejected
	default:
		return Applied
	}
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}

	if str == "" {
		*s = Applied
		return nil
	}

	status, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

type Job struct {
	ID             string `json:"id" gorm:"primaryKey"`
	CompanyName    string `json:"companyName"`
	Role           string `json:"role"`
	Status         Status `json:"status"`
	DateApplied    string `json:"dateApplied"`
	Description    string `json:"description,omitempty"`
	Requirements   string `json:"requirements,omitempty"`
	Duties         string `json:"duties,omitempty"`
	ContactDetails string `json:"contactDetails,omitempty"`
	Address        string `json:"address,omitempty"`
	Notes          string `json:"notes,omitempty"`
	UserID         string `json:"userId,omitempty" gorm:"index"`
}

// AppliedAt parses DateApplied. Full RFC3339 timestamps are accepted as well,
// zero time is returned for anything unparseable.
func (j Job) AppliedAt() time.Time {
	if t, err := time.Parse(DateLayout, j.DateApplied); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, j.DateApplied); err == nil {
		return t
	}
	return time.Time{}
}

// JobPatch holds the changed fields of a partial update, nil fields are left untouched.
type JobPatch struct {
	CompanyName    *string `json:"companyName,omitempty"`
	Role           *string `json:"role,omitempty"`
	Status         *Status `json:"status,omitempty"`
	DateApplied    *string `json:"dateApplied,omitempty"`
	Description    *string `json:"description,omitempty"`
	Requirements   *string `json:"requirements,omitempty"`
	Duties         *string `json:"duties,omitempty"`
	ContactDetails *string `json:"contactDetails,omitempty"`
	Address        *string `json:"address,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func StatusPatch(status Status) JobPatch {
	return JobPatch{Status: &status}
}

func (p JobPatch) IsEmpty() bool {
	return p == JobPatch{}
}

func (p JobPatch) Validate() error {
	errs := FieldErrors{}

	if p.CompanyName != nil && strings.TrimSpace(*p.CompanyName) == "" {
		errs["companyName"] = "Company name is required"
	}
	if p.Role != nil && strings.TrimSpace(*p.Role) == "" {
		errs["role"] = "Role is required"
	}
	if p.Status != nil {
		if _, err := ParseStatus(string(*p.Status)); err != nil {
			errs["status"] = "Unknown status"
		}
	}
	if p.DateApplied != nil {
		if _, err := time.Parse(DateLayout, *p.DateApplied); err != nil {
			errs["dateApplied"] = "Date must be in YYYY-MM-DD format"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply returns a copy of job with the patch fields set.
func (p JobPatch) Apply(job Job) Job {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&job.CompanyName, p.CompanyName)
	set(&job.Role, p.Role)
	set(&job.DateApplied, p.DateApplied)
	set(&job.Description, p.Description)
	set(&job.Requirements, p.Requirements)
	set(&job.Duties, p.Duties)
	set(&job.ContactDetails, p.ContactDetails)
	set(&job.Address, p.Address)
	set(&job.Notes, p.Notes)
	if p.Status != nil {
		job.Status = *p.Status
	}
	return job
}

// Columns maps set fields to their database column names.
func (p JobPatch) Columns() map[string]any {
	columns := map[string]any{}
	add := func(name string, value *string) {
		if value != nil {
			columns[name] = *value
		}
	}
	add("company_name", p.CompanyName)
	add("role", p.Role)
	add("date_applied", p.DateApplied)
	add("description", p.Description)
	add("requirements", p.Requirements)
	add("duties", p.Duties)
	add("contact_details", p.ContactDetails)
	add("address", p.Address)
	add("notes", p.Notes)
	if p.Status != nil {
		columns["status"] = string(*p.Status)
	}
	return columns
}
