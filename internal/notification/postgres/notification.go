package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/talenthub/talent-hub/internal"
	userModel "github.com/talenthub/talent-hub/internal/core/datamodel/user"
	"github.com/talenthub/talent-hub/internal/notification"
)

// NotificationRepository implements notification.Repository using GORM.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notification.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) ListByUser(userID int64) ([]*notification.Notification, error) {
	var notifications []*notification.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) GetByID(id int64) (*notification.Notification, error) {
	var n notification.Notification
	err := r.db.Where("id = ?", id).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrNotificationNotFound
		}
		return nil, internal.NewStorageError("failed to load notification", err)
	}
	return &n, nil
}

func (r *NotificationRepository) MarkRead(id int64) error {
	return r.db.Model(&notification.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}

func (r *NotificationRepository) RecipientsByRole(role, department string) ([]notification.Recipient, error) {
	q := r.db.Model(&userModel.User{}).Where("role = ?", role)
	if department != "" {
		q = q.Where("department = ?", department)
	}

	var users []userModel.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}

	recipients := make([]notification.Recipient, len(users))
	for i, u := range users {
		recipients[i] = notification.Recipient{
			ID:         u.ID,
			Role:       u.Role,
			Department: u.Department,
		}
	}
	return recipients, nil
}
