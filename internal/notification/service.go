package notification

import (
	"log/slog"

	"github.com/talenthub/talent-hub/internal"
)

// Service covers the read side: a user's own backlog and mark-read.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListForUser returns the user's notifications, newest first. Disconnected
// clients use this to catch up on what push never reached.
func (s *Service) ListForUser(userID int64) ([]*Notification, error) {
	notifications, err := s.repo.ListByUser(userID)
	if err != nil {
		s.logger.Error("failed to list notifications", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("failed to list notifications", err)
	}
	return notifications, nil
}

// MarkRead flips the read flag; only the owner may do so.
func (s *Service) MarkRead(notificationID, userID int64) error {
	n, err := s.repo.GetByID(notificationID)
	if err != nil {
		return err
	}

	if n.UserID != userID {
		s.logger.Warn("mark-read denied: not the owner",
			"notification_id", notificationID,
			"user_id", userID,
			"owner_id", n.UserID)
		return internal.ErrForbidden
	}

	if err := s.repo.MarkRead(notificationID); err != nil {
		s.logger.Error("failed to mark notification read", "error", err, "notification_id", notificationID)
		return internal.NewStorageError("failed to mark notification read", err)
	}

	return nil
}
