package notification

import (
	"context"
	"log/slog"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/realtime"
)

// Pusher is the live delivery channel. The hub satisfies it; tests inject
// fakes. A nil pusher disables push entirely.
type Pusher interface {
	Push(userID int64, payload realtime.PushPayload) error
}

// Dispatcher persists notifications and then attempts best-effort push
// delivery. Persistence is the system of record: a failed push is logged
// and swallowed, a failed insert is returned to the caller.
type Dispatcher struct {
	repo   Repository
	pusher Pusher
	logger *slog.Logger
}

func NewDispatcher(repo Repository, pusher Pusher, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		pusher: pusher,
		logger: logger,
	}
}

// Message carries the optional parts of a notification.
type Message struct {
	Title string
	Body  string
	Link  string
}

func (m Message) title() string {
	if m.Title == "" {
		return DefaultTitle
	}
	return m.Title
}

// NotifyUser stores one notification for the user and pushes it if a live
// channel exists. Identical calls store identical rows; nothing deduplicates.
func (d *Dispatcher) NotifyUser(ctx context.Context, userID int64, msg Message) error {
	n := &Notification{
		UserID:  userID,
		Title:   msg.title(),
		Message: msg.Body,
	}
	if msg.Link != "" {
		link := msg.Link
		n.Link = &link
	}

	if err := d.repo.Create(n); err != nil {
		d.logger.Error("failed to persist notification", "error", err, "user_id", userID)
		return internal.NewStorageError("failed to persist notification", err)
	}

	d.push(userID, n)
	return nil
}

// NotifyRole stores and pushes one notification per user matching the role,
// optionally narrowed to a department. A push failure for one recipient does
// not stop the rest; only persistence failures abort.
func (d *Dispatcher) NotifyRole(ctx context.Context, role, department string, msg Message) error {
	recipients, err := d.repo.RecipientsByRole(role, department)
	if err != nil {
		d.logger.Error("failed to resolve cohort", "error", err, "role", role, "department", department)
		return internal.NewStorageError("failed to resolve notification cohort", err)
	}

	for _, rec := range recipients {
		if err := d.NotifyUser(ctx, rec.ID, msg); err != nil {
			return err
		}
	}

	d.logger.Info("cohort notified",
		"role", role,
		"department", department,
		"recipients", len(recipients))

	return nil
}

func (d *Dispatcher) push(userID int64, n *Notification) {
	if d.pusher == nil {
		return
	}

	payload := realtime.PushPayload{
		ID:      n.ID,
		Title:   n.Title,
		Message: n.Message,
	}
	if n.Link != nil {
		payload.Link = *n.Link
	}

	if err := d.pusher.Push(userID, payload); err != nil {
		// delivery is a side channel, never a hard failure
		d.logger.Warn("push delivery failed", "error", err, "user_id", userID, "notification_id", n.ID)
	}
}
