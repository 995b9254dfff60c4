package course

import (
	"time"

	"github.com/talenthub/talent-hub/internal/competency"
	"github.com/talenthub/talent-hub/internal/core/datamodel/types"
)

type Course struct {
	ID           int64            `json:"id" gorm:"primaryKey"`
	Title        string           `json:"title" gorm:"not null"`
	Description  string           `json:"description"`
	StartDate    *time.Time       `json:"start_date,omitempty" gorm:"column:start_date;type:date"`
	EndDate      *time.Time       `json:"end_date,omitempty" gorm:"column:end_date;type:date"`
	Cost         float64          `json:"cost"`
	Departments  types.StringList `json:"departments" gorm:"type:text;not null;default:'[]'"`
	Competencies competency.Set   `json:"competencies" gorm:"type:text;not null;default:'[]'"`
	Photo        *string          `json:"photo,omitempty"`
	Link         *string          `json:"link,omitempty"`
	CreatedAt    time.Time        `json:"created_at" gorm:"default:now()"`
	UpdatedAt    time.Time        `json:"updated_at" gorm:"default:now()"`
}

func (Course) TableName() string {
	return "courses"
}
