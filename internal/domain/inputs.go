package domain

import (
	"strconv"
	"strings"
)

// Request payloads. Struct tags drive pkg/validation; the json names are the
// wire names and also the keys reported in field errors.

type JobPostingInput struct {
	Title           string `json:"title" validate:"required,min=1"`
	Company         string `json:"company" validate:"required,min=1"`
	Location        string `json:"location" validate:"required,min=1"`
	Description     string `json:"description" validate:"required,min=10"`
	Salary          string `json:"salary" validate:"omitempty,non_negative_number"`
	JobType         string `json:"job_type" validate:"required,job_type"`
	ExperienceLevel string `json:"experience_level" validate:"required,experience_level"`
	// Requirements is one requirement per line.
	Requirements string `json:"requirements" validate:"required,min=1"`
}

// RequirementList splits Requirements on newlines, trimming each entry and
// dropping blank lines. Order is preserved.
func (in JobPostingInput) RequirementList() StringList {
	lines := strings.Split(in.Requirements, "\n")
	out := make(StringList, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// SalaryValue returns nil when no salary was given.
func (in JobPostingInput) SalaryValue() (*float64, error) {
	raw := strings.TrimSpace(in.Salary)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type ApplyInput struct {
	CoverLetter string `json:"cover_letter" validate:"required,min=50"`
}

type ProfileInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Bio      string `json:"bio" validate:"max=500"`
	Location string `json:"location"`
	Phone    string `json:"phone" validate:"omitempty,valid_phone"`
	Website  string `json:"website" validate:"omitempty,url"`
}

type SkillInput struct {
	Name  string `json:"name" validate:"required,min=1"`
	Level string `json:"level" validate:"required,skill_level"`
}

type EducationInput struct {
	Institution  string `json:"institution" validate:"required,min=1"`
	Degree       string `json:"degree" validate:"required,min=1"`
	FieldOfStudy string `json:"field_of_study" validate:"required,min=1"`
	StartDate    string `json:"start_date" validate:"required,iso_date"`
	EndDate      string `json:"end_date" validate:"omitempty,iso_date,date_after=StartDate"`
	Description  string `json:"description"`
}

type ExperienceInput struct {
	JobTitle    string `json:"job_title" validate:"required,min=1"`
	Company     string `json:"company" validate:"required,min=1"`
	StartDate   string `json:"start_date" validate:"required,iso_date"`
	EndDate     string `json:"end_date" validate:"omitempty,iso_date,date_after=StartDate"`
	Description string `json:"description" validate:"required,min=10"`
}

type ProjectInput struct {
	Title       string `json:"title" validate:"required,min=1"`
	Description string `json:"description" validate:"required,min=10"`
	URL         string `json:"url" validate:"omitempty,url"`
	StartDate   string `json:"start_date" validate:"required,iso_date"`
	EndDate     string `json:"end_date" validate:"omitempty,iso_date,date_after=StartDate"`
}

type RoleInput struct {
	Role string `json:"role" validate:"required,user_role"`
}

type StatusInput struct {
	Status string `json:"status" validate:"required,settable_status"`
}
