package certificate

import (
	"context"
	"log/slog"
	"mime/multipart"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/auth"
	"github.com/talenthub/talent-hub/internal/core/common/filestore"
	"github.com/talenthub/talent-hub/internal/notification"
	userModel "github.com/talenthub/talent-hub/internal/core/datamodel/user"
)

const uploadFolder = "certificates"

var allowedTypes = []string{"application/pdf"}

type Service struct {
	repo     Repository
	files    filestore.Store
	notifier Notifier
	logger   *slog.Logger
	maxSize  int64
}

func NewService(repo Repository, files filestore.Store, notifier Notifier, logger *slog.Logger, maxSize int64) *Service {
	return &Service{
		repo:     repo,
		files:    files,
		notifier: notifier,
		logger:   logger,
		maxSize:  maxSize,
	}
}

// Upload stores a PDF certificate for the user and records it as unverified.
func (s *Service) Upload(ctx context.Context, user *auth.User, header *multipart.FileHeader) (*Certificate, error) {
	if err := filestore.CheckUpload(header, allowedTypes, s.maxSize); err != nil {
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, internal.NewStorageError("failed to open uploaded file", err)
	}
	defer f.Close()

	path, err := s.files.Save(uploadFolder, header.Filename, f)
	if err != nil {
		return nil, err
	}

	cert := &Certificate{
		UserID:   user.ID,
		FilePath: path,
	}
	if err := s.repo.Create(cert); err != nil {
		return nil, err
	}

	s.logger.Info("certificate uploaded", "certificate_id", cert.ID, "user_id", user.ID)

	s.notify(ctx, user.ID, notification.Message{
		Title: "Certificate uploaded",
		Body:  "Your certificate was uploaded and is awaiting verification.",
	})
	s.notifyRole(ctx, userModel.RoleManager, user.Department, notification.Message{
		Title: "Certificate pending verification",
		Body:  user.Name + " uploaded a certificate that needs verification.",
	})

	return cert, nil
}

// ListOwn returns the caller's certificates.
func (s *Service) ListOwn(ctx context.Context, user *auth.User) ([]Certificate, error) {
	return s.repo.ListByUser(user.ID)
}

// ListPending returns unverified certificates visible to the approver:
// admins see all of them, managers those of their own department.
func (s *Service) ListPending(ctx context.Context, actor *auth.User) ([]*CertificateDetail, error) {
	switch {
	case actor.IsAdmin():
		return s.repo.ListPending("")
	case actor.IsManager():
		return s.repo.ListPending(actor.Department)
	default:
		return nil, internal.ErrForbidden
	}
}

// Verify binds the certificate to a course and grants the course's
// competencies to the owner in a single transaction.
func (s *Service) Verify(ctx context.Context, actor *auth.User, certID, courseID int64) (*CertificateDetail, error) {
	detail, err := s.repo.GetDetail(certID)
	if err != nil {
		return nil, err
	}

	if !actor.ManagesDepartment(detail.OwnerDepartment) {
		return nil, internal.ErrForbidden
	}
	if detail.IsVerified {
		return nil, internal.NewConflictError("certificate is already verified", internal.ErrCodeRequestTerminal)
	}

	if err := s.repo.VerifyAndGrant(certID, courseID); err != nil {
		return nil, err
	}

	s.logger.Info("certificate verified",
		"certificate_id", certID,
		"course_id", courseID,
		"owner_id", detail.UserID,
		"verified_by", actor.ID,
	)

	s.notify(ctx, detail.UserID, notification.Message{
		Title: "Certificate verified",
		Body:  "Your certificate was verified and your competencies were updated.",
	})

	return s.repo.GetDetail(certID)
}

func (s *Service) notify(ctx context.Context, userID int64, msg notification.Message) {
	if err := s.notifier.NotifyUser(ctx, userID, msg); err != nil {
		s.logger.Warn("notification dispatch failed", "error", err, "user_id", userID)
	}
}

func (s *Service) notifyRole(ctx context.Context, role, department string, msg notification.Message) {
	if err := s.notifier.NotifyRole(ctx, role, department, msg); err != nil {
		s.logger.Warn("cohort notification dispatch failed", "error", err, "role", role)
	}
}
