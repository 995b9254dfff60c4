package user

import (
	"context"
	"log/slog"
	"mime/multipart"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/auth"
	"github.com/talenthub/talent-hub/internal/core/common/filestore"
)

const photoFolder = "photos"

var allowedPhotoTypes = []string{"image/jpeg", "image/png", "image/webp"}

type Service struct {
	repo         Repository
	files        filestore.Store
	logger       *slog.Logger
	maxPhotoSize int64
}

func NewService(repo Repository, files filestore.Store, logger *slog.Logger, maxPhotoSize int64) *Service {
	return &Service{
		repo:         repo,
		files:        files,
		logger:       logger,
		maxPhotoSize: maxPhotoSize,
	}
}

func (s *Service) GetProfile(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) UpdateProfile(ctx context.Context, actor *auth.User, dto UpdateProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(actor.ID)
	if err != nil {
		return nil, err
	}

	dto.Apply(u)
	if err := s.repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePhoto stores a new profile photo and records its path on the user.
func (s *Service) UpdatePhoto(ctx context.Context, actor *auth.User, header *multipart.FileHeader) (*User, error) {
	if err := filestore.CheckUpload(header, allowedPhotoTypes, s.maxPhotoSize); err != nil {
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, internal.NewStorageError("failed to open uploaded file", err)
	}
	defer f.Close()

	path, err := s.files.Save(photoFolder, header.Filename, f)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(actor.ID)
	if err != nil {
		return nil, err
	}

	u.Photo = &path
	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	s.logger.Info("profile photo updated", "user_id", u.ID)
	return u, nil
}

func (s *Service) List(ctx context.Context, actor *auth.User) ([]User, error) {
	if !actor.IsAdmin() {
		return nil, internal.ErrForbidden
	}
	return s.repo.ListAll()
}

// AssignRole changes a user's role and/or department. Admin only.
func (s *Service) AssignRole(ctx context.Context, actor *auth.User, userID int64, dto AssignRoleDTO) (*User, error) {
	if !actor.IsAdmin() {
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.Department != nil {
		u.Department = *dto.Department
	}
	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	s.logger.Info("user role assigned",
		"user_id", u.ID,
		"role", u.Role,
		"department", u.Department,
		"assigned_by", actor.ID,
	)
	return u, nil
}
