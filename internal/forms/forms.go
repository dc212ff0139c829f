package forms

import (
	"strings"

	"github.com/sonar-libras/sonar/pkg/models"
)

// RegisterForm is the sign-up form
type RegisterForm struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	Category        string `json:"type" validate:"required,category"`
}

// JobForm is the job publication form. Tags is a comma separated list.
type JobForm struct {
	Company          string `json:"company" validate:"required"`
	Site             string `json:"site" validate:"omitempty,url"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone"`
	Title            string `json:"title" validate:"required"`
	Location         string `json:"location" validate:"required"`
	Type             string `json:"type" validate:"required,employment"`
	Mode             string `json:"mode" validate:"required,workmode"`
	Seniority        string `json:"seniority"`
	Salary           string `json:"salary"`
	Summary          string `json:"summary" validate:"required"`
	Description      string `json:"description" validate:"required"`
	Responsibilities string `json:"responsibilities"`
	Requirements     string `json:"requirements"`
	Benefits         string `json:"benefits"`
	Deadline         string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	ApplyURL         string `json:"applyUrl" validate:"omitempty,url"`
	Tags             string `json:"tags"`
	Highlight        bool   `json:"highlight"`
	AcceptRemote     bool   `json:"acceptRemote"`
	ReceiveEmail     bool   `json:"receiveEmail"`
	AcceptTerms      bool   `json:"terms" validate:"required"`
}

// Fields converts a validated form into job posting fields
func (f JobForm) Fields() models.JobFields {
	return models.JobFields{
		Company:          strings.TrimSpace(f.Company),
		Site:             f.Site,
		Email:            f.Email,
		Phone:            f.Phone,
		Title:            strings.TrimSpace(f.Title),
		Location:         strings.TrimSpace(f.Location),
		Type:             models.EmploymentType(f.Type),
		Mode:             models.WorkMode(f.Mode),
		Seniority:        f.Seniority,
		Salary:           f.Salary,
		Summary:          f.Summary,
		Description:      f.Description,
		Responsibilities: f.Responsibilities,
		Requirements:     f.Requirements,
		Benefits:         f.Benefits,
		Deadline:         f.Deadline,
		ApplyURL:         f.ApplyURL,
		Tags:             ParseTags(f.Tags),
		Highlight:        f.Highlight,
		AcceptRemote:     f.AcceptRemote,
		ReceiveEmail:     f.ReceiveEmail,
	}
}

// FormFromJob fills a form with the fields of an existing posting, for editing
func FormFromJob(j models.JobFields) JobForm {
	return JobForm{
		Company:          j.Company,
		Site:             j.Site,
		Email:            j.Email,
		Phone:            j.Phone,
		Title:            j.Title,
		Location:         j.Location,
		Type:             string(j.Type),
		Mode:             string(j.Mode),
		Seniority:        j.Seniority,
		Salary:           j.Salary,
		Summary:          j.Summary,
		Description:      j.Description,
		Responsibilities: j.Responsibilities,
		Requirements:     j.Requirements,
		Benefits:         j.Benefits,
		Deadline:         j.Deadline,
		ApplyURL:         j.ApplyURL,
		Tags:             strings.Join(j.Tags, ", "),
		Highlight:        j.Highlight,
		AcceptRemote:     j.AcceptRemote,
		ReceiveEmail:     j.ReceiveEmail,
		AcceptTerms:      true,
	}
}

// ParseTags splits a comma separated tag list, dropping blanks
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
