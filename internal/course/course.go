// Package course manages the training catalog: admin-curated course entries
// with department targeting and the competencies a course grants on
// completion.
package course

import (
	"time"

	courseModel "github.com/talenthub/talent-hub/internal/core/datamodel/course"
)

type Course = courseModel.Course

// Repository is the persistence contract for the course catalog.
type Repository interface {
	Create(course *Course) error
	GetByID(id int64) (*Course, error)
	Update(course *Course) error
	Delete(id int64) error
	// ListAll returns every course ordered by start date.
	ListAll() ([]Course, error)
	// ListForDepartment returns courses targeted at the given department
	// whose start date is strictly after the cutoff, ordered by start date.
	ListForDepartment(department string, after time.Time) ([]Course, error)
}
