package certificate

import "time"

type Certificate struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"column:user_id;not null"`
	CourseID   *int64    `json:"course_id,omitempty" gorm:"column:course_id"`
	FilePath   string    `json:"file_path" gorm:"column:file_path;not null"`
	IsVerified bool      `json:"is_verified" gorm:"column:is_verified;not null;default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"default:now()"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"default:now()"`
}

func (Certificate) TableName() string {
	return "certificates"
}
