// Package certificate handles uploaded training certificates and their
// verification, which is how employees earn competencies from completed
// courses.
package certificate

import (
	"context"

	certModel "github.com/talenthub/talent-hub/internal/core/datamodel/certificate"
	"github.com/talenthub/talent-hub/internal/notification"
)

type Certificate = certModel.Certificate

// CertificateDetail joins the certificate with its owner, for authorization
// decisions and approver-facing listings.
type CertificateDetail struct {
	Certificate
	OwnerName       string  `json:"owner_name" gorm:"column:owner_name"`
	OwnerDepartment string  `json:"owner_department" gorm:"column:owner_department"`
	CourseTitle     *string `json:"course_title,omitempty" gorm:"column:course_title"`
}

// Repository is the persistence contract for certificates.
type Repository interface {
	Create(cert *Certificate) error
	GetDetail(id int64) (*CertificateDetail, error)
	ListByUser(userID int64) ([]Certificate, error)
	// ListPending returns unverified certificates, newest first. An empty
	// department means no department filter.
	ListPending(department string) ([]*CertificateDetail, error)
	// VerifyAndGrant binds the certificate to the course, marks it verified
	// and unions the course's competencies into the owner's set, atomically.
	VerifyAndGrant(certID, courseID int64) error
}

// Notifier delivers workflow notifications.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, msg notification.Message) error
	NotifyRole(ctx context.Context, role, department string, msg notification.Message) error
}
