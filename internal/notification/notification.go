package notification

import (
	notifModel "github.com/talenthub/talent-hub/internal/core/datamodel/notification"
)

// DefaultTitle is used when a caller does not supply one.
const DefaultTitle = "Notification"

// Notification is re-exported for handler and service signatures.
type Notification = notifModel.Notification

// Recipient is the slice of a user the dispatcher needs for cohort fan-out.
type Recipient struct {
	ID         int64
	Role       string
	Department string
}

// Repository persists notifications and resolves cohort recipients.
type Repository interface {
	Create(n *Notification) error
	ListByUser(userID int64) ([]*Notification, error)
	GetByID(id int64) (*Notification, error)
	MarkRead(id int64) error
	RecipientsByRole(role, department string) ([]Recipient, error)
}
