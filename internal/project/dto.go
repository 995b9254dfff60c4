package project

import (
	"strings"
	"time"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/core/datamodel/types"
)

const dateLayout = "2006-01-02"

type CreateProjectDTO struct {
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Departments          []string            `json:"departments"`
	PositionsRequired    map[string]int      `json:"positions_required"`
	CompetenciesRequired map[string][]string `json:"competencies_required"`
	Photo                *string             `json:"photo"`
	StartDate            string              `json:"start_date"`
	ManagerID            int64               `json:"manager_id"`
}

func (d CreateProjectDTO) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return internal.NewValidationFieldError("title", "title is required", internal.ErrCodeValidationFailed)
	}
	if d.ManagerID <= 0 {
		return internal.NewValidationFieldError("manager_id", "manager_id is required", internal.ErrCodeValidationFailed)
	}
	if _, err := time.Parse(dateLayout, d.StartDate); err != nil {
		return internal.NewValidationFieldError("start_date", "start_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	for position, count := range d.PositionsRequired {
		if count < 0 {
			return internal.NewValidationFieldError("positions_required",
				"position count for "+position+" cannot be negative", internal.ErrCodeValidationFailed)
		}
	}
	return checkPositionKeys(d.PositionsRequired, d.CompetenciesRequired)
}

func (d CreateProjectDTO) ToModel() *Project {
	start, _ := time.Parse(dateLayout, d.StartDate)
	return &Project{
		Title:                d.Title,
		Description:          d.Description,
		Departments:          types.StringList(d.Departments),
		PositionsRequired:    types.PositionCount(d.PositionsRequired),
		CompetenciesRequired: types.PositionTags(d.CompetenciesRequired),
		Photo:                d.Photo,
		StartDate:            start,
		ManagerID:            d.ManagerID,
	}
}

// UpdateProjectDTO carries a partial update. Nil fields are left untouched.
type UpdateProjectDTO struct {
	Title                *string              `json:"title"`
	Description          *string              `json:"description"`
	Departments          *[]string            `json:"departments"`
	PositionsRequired    *map[string]int      `json:"positions_required"`
	CompetenciesRequired *map[string][]string `json:"competencies_required"`
	Photo                *string              `json:"photo"`
	StartDate            *string              `json:"start_date"`
	ManagerID            *int64               `json:"manager_id"`
}

func (d UpdateProjectDTO) Validate() error {
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return internal.NewValidationFieldError("title", "title cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.ManagerID != nil && *d.ManagerID <= 0 {
		return internal.NewValidationFieldError("manager_id", "manager_id must be positive", internal.ErrCodeValidationFailed)
	}
	if d.StartDate != nil {
		if _, err := time.Parse(dateLayout, *d.StartDate); err != nil {
			return internal.NewValidationFieldError("start_date", "start_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

// Apply merges the update into the project. Key consistency between the two
// position maps is re-checked on the merged result, since either side may
// change independently.
func (d UpdateProjectDTO) Apply(project *Project) error {
	if d.Title != nil {
		project.Title = *d.Title
	}
	if d.Description != nil {
		project.Description = *d.Description
	}
	if d.Departments != nil {
		project.Departments = types.StringList(*d.Departments)
	}
	if d.PositionsRequired != nil {
		project.PositionsRequired = types.PositionCount(*d.PositionsRequired)
	}
	if d.CompetenciesRequired != nil {
		project.CompetenciesRequired = types.PositionTags(*d.CompetenciesRequired)
	}
	if d.Photo != nil {
		project.Photo = d.Photo
	}
	if d.StartDate != nil {
		project.StartDate, _ = time.Parse(dateLayout, *d.StartDate)
	}
	if d.ManagerID != nil {
		project.ManagerID = *d.ManagerID
	}
	return checkPositionKeys(project.PositionsRequired, project.CompetenciesRequired)
}

// checkPositionKeys rejects competency requirements for positions the project
// does not actually staff. A mismatched key would make the position silently
// unmatchable for every candidate.
func checkPositionKeys(positions map[string]int, competencies map[string][]string) error {
	for position := range competencies {
		if _, ok := positions[position]; !ok {
			return internal.NewValidationFieldError("competencies_required",
				"competencies listed for unknown position "+position, internal.ErrCodePositionKeys)
		}
	}
	return nil
}
