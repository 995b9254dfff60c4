package project

import (
	"time"

	"github.com/talenthub/talent-hub/internal/core/datamodel/types"
)

type Project struct {
	ID                    int64               `json:"id" gorm:"primaryKey"`
	Title                 string              `json:"title" gorm:"not null"`
	Description           string              `json:"description" gorm:"not null"`
	Departments           types.StringList    `json:"departments" gorm:"type:text;not null;default:'[]'"`
	PositionsRequired     types.PositionCount `json:"positions_required" gorm:"column:positions_required;type:text;not null;default:'{}'"`
	CompetenciesRequired  types.PositionTags  `json:"competencies_required" gorm:"column:competencies_required;type:text;not null;default:'{}'"`
	Photo                 *string             `json:"photo,omitempty"`
	StartDate             time.Time           `json:"start_date" gorm:"column:start_date;type:date;not null"`
	ManagerID             int64               `json:"manager_id" gorm:"column:manager_id;not null"`
	CreatedAt             time.Time           `json:"created_at" gorm:"default:now()"`
	UpdatedAt             time.Time           `json:"updated_at" gorm:"default:now()"`
}

func (Project) TableName() string {
	return "projects"
}
