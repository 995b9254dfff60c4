package course

import (
	"strings"
	"time"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/competency"
	"github.com/talenthub/talent-hub/internal/core/datamodel/types"
)

const dateLayout = "2006-01-02"

type CreateCourseDTO struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Cost         float64  `json:"cost"`
	Departments  []string `json:"departments"`
	Competencies []string `json:"competencies"`
	Photo        *string  `json:"photo"`
	Link         *string  `json:"link"`
}

func (d CreateCourseDTO) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return internal.NewValidationFieldError("title", "title is required", internal.ErrCodeValidationFailed)
	}
	if d.Cost < 0 {
		return internal.NewValidationFieldError("cost", "cost cannot be negative", internal.ErrCodeValidationFailed)
	}
	if _, err := parseDate(d.StartDate, true); err != nil {
		return internal.NewValidationFieldError("start_date", "start_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	if _, err := parseDate(d.EndDate, true); err != nil {
		return internal.NewValidationFieldError("end_date", "end_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return nil
}

func (d CreateCourseDTO) ToModel() *Course {
	start, _ := parseDate(d.StartDate, true)
	end, _ := parseDate(d.EndDate, true)
	return &Course{
		Title:        d.Title,
		Description:  d.Description,
		StartDate:    start,
		EndDate:      end,
		Cost:         d.Cost,
		Departments:  types.StringList(d.Departments),
		Competencies: competency.NewSet(d.Competencies...),
		Photo:        d.Photo,
		Link:         d.Link,
	}
}

// UpdateCourseDTO carries a partial update. Nil fields are left untouched.
type UpdateCourseDTO struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	StartDate    *string   `json:"start_date"`
	EndDate      *string   `json:"end_date"`
	Cost         *float64  `json:"cost"`
	Departments  *[]string `json:"departments"`
	Competencies *[]string `json:"competencies"`
	Photo        *string   `json:"photo"`
	Link         *string   `json:"link"`
}

func (d UpdateCourseDTO) Validate() error {
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return internal.NewValidationFieldError("title", "title cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Cost != nil && *d.Cost < 0 {
		return internal.NewValidationFieldError("cost", "cost cannot be negative", internal.ErrCodeValidationFailed)
	}
	if d.StartDate != nil {
		if _, err := parseDate(*d.StartDate, true); err != nil {
			return internal.NewValidationFieldError("start_date", "start_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	if d.EndDate != nil {
		if _, err := parseDate(*d.EndDate, true); err != nil {
			return internal.NewValidationFieldError("end_date", "end_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

func (d UpdateCourseDTO) Apply(course *Course) {
	if d.Title != nil {
		course.Title = *d.Title
	}
	if d.Description != nil {
		course.Description = *d.Description
	}
	if d.StartDate != nil {
		course.StartDate, _ = parseDate(*d.StartDate, true)
	}
	if d.EndDate != nil {
		course.EndDate, _ = parseDate(*d.EndDate, true)
	}
	if d.Cost != nil {
		course.Cost = *d.Cost
	}
	if d.Departments != nil {
		course.Departments = types.StringList(*d.Departments)
	}
	if d.Competencies != nil {
		course.Competencies = competency.NewSet(*d.Competencies...)
	}
	if d.Photo != nil {
		course.Photo = d.Photo
	}
	if d.Link != nil {
		course.Link = d.Link
	}
}

func parseDate(value string, optional bool) (*time.Time, error) {
	if value == "" {
		if optional {
			return nil, nil
		}
		return nil, internal.NewValidationError("date is required", internal.ErrCodeValidationFailed)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
