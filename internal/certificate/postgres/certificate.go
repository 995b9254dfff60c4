package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/certificate"
	courseModel "github.com/talenthub/talent-hub/internal/core/datamodel/course"
	userModel "github.com/talenthub/talent-hub/internal/core/datamodel/user"
)

// CertificateRepository implements certificate.Repository using GORM.
type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) certificate.Repository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Create(cert *certificate.Certificate) error {
	if err := r.db.Create(cert).Error; err != nil {
		return internal.NewStorageError("failed to create certificate", err)
	}
	return nil
}

func (r *CertificateRepository) GetDetail(id int64) (*certificate.CertificateDetail, error) {
	var detail certificate.CertificateDetail
	err := r.db.Table("certificates").
		Select(`certificates.*,
			users.name AS owner_name,
			users.department AS owner_department,
			courses.title AS course_title`).
		Joins("JOIN users ON users.id = certificates.user_id").
		Joins("LEFT JOIN courses ON courses.id = certificates.course_id").
		Where("certificates.id = ?", id).
		Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCertificateNotFound
		}
		return nil, internal.NewStorageError("failed to get certificate", err)
	}
	return &detail, nil
}

func (r *CertificateRepository) ListByUser(userID int64) ([]certificate.Certificate, error) {
	var certs []certificate.Certificate
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&certs).Error
	if err != nil {
		return nil, internal.NewStorageError("failed to list certificates", err)
	}
	return certs, nil
}

func (r *CertificateRepository) ListPending(department string) ([]*certificate.CertificateDetail, error) {
	query := r.db.Table("certificates").
		Select(`certificates.*,
			users.name AS owner_name,
			users.department AS owner_department,
			courses.title AS course_title`).
		Joins("JOIN users ON users.id = certificates.user_id").
		Joins("LEFT JOIN courses ON courses.id = certificates.course_id").
		Where("certificates.is_verified = ?", false).
		Order("certificates.created_at DESC")
	if department != "" {
		query = query.Where("users.department = ?", department)
	}

	var details []*certificate.CertificateDetail
	if err := query.Find(&details).Error; err != nil {
		return nil, internal.NewStorageError("failed to list pending certificates", err)
	}
	return details, nil
}

// VerifyAndGrant runs the verification and the competency grant in one
// transaction so a failure cannot leave a verified certificate without the
// granted competencies, or the reverse.
func (r *CertificateRepository) VerifyAndGrant(certID, courseID int64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var cert certificate.Certificate
		if err := tx.First(&cert, certID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrCertificateNotFound
			}
			return err
		}

		var course courseModel.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrCourseNotFound
			}
			return err
		}

		var owner userModel.User
		if err := tx.First(&owner, cert.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrUserNotFound
			}
			return err
		}

		cert.CourseID = &courseID
		cert.IsVerified = true
		if err := tx.Save(&cert).Error; err != nil {
			return err
		}

		owner.Competencies = owner.Competencies.Union(course.Competencies)
		return tx.Model(&owner).Update("competencies", owner.Competencies).Error
	})
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		return internal.NewStorageError("failed to verify certificate", err)
	}
	return nil
}
