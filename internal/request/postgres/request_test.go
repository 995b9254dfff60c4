package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/talenthub/talent-hub/internal"
	requestModel "github.com/talenthub/talent-hub/internal/core/datamodel/request"
	"github.com/talenthub/talent-hub/internal/request"
)

func TestRequestRepositories(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RequestRepositories Suite")
}

// SQLite-compatible shadows of the stored tables, since the real models carry
// postgres-only column defaults.
type SQLiteUser struct {
	ID         int64  `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	Email      string `gorm:"uniqueIndex;not null"`
	Department string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (SQLiteUser) TableName() string { return "users" }

type SQLiteCourse struct {
	ID        int64  `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Link      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SQLiteCourse) TableName() string { return "courses" }

type SQLiteProject struct {
	ID        int64  `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	ManagerID int64  `gorm:"column:manager_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SQLiteProject) TableName() string { return "projects" }

type SQLiteCourseRequest struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"column:user_id;not null;uniqueIndex:idx_course_requests_user_course"`
	CourseID  int64  `gorm:"column:course_id;not null;uniqueIndex:idx_course_requests_user_course"`
	Status    string `gorm:"not null;default:pending"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SQLiteCourseRequest) TableName() string { return "course_requests" }

type SQLiteProjectRequest struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"column:user_id;not null;uniqueIndex:idx_project_requests_user_project"`
	ProjectID int64  `gorm:"column:project_id;not null;uniqueIndex:idx_project_requests_user_project"`
	Status    string `gorm:"not null;default:pending"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SQLiteProjectRequest) TableName() string { return "project_requests" }

var _ = Describe("CourseRequestRepository", func() {
	var (
		db   *gorm.DB
		repo request.CourseRequestRepository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteCourse{}, &SQLiteCourseRequest{})
		Expect(err).NotTo(HaveOccurred())

		link := "https://example.com/go"
		Expect(db.Create(&SQLiteUser{ID: 10, Name: "Eve", Email: "eve@x.io", Department: "Engineering"}).Error).To(Succeed())
		Expect(db.Create(&SQLiteUser{ID: 11, Name: "Hal", Email: "hal@x.io", Department: "HR"}).Error).To(Succeed())
		Expect(db.Create(&SQLiteCourse{ID: 1, Title: "Advanced Go", Link: &link}).Error).To(Succeed())

		repo = NewCourseRequestRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Create", func() {
		It("should create a pending request", func() {
			req := &request.CourseRequest{UserID: 10, CourseID: 1, Status: requestModel.StatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
			Expect(repo.Create(req)).To(Succeed())
			Expect(req.ID).To(BeNumerically(">", 0))
		})

		It("should reject a second request for the same pair with the duplicate conflict", func() {
			first := &request.CourseRequest{UserID: 10, CourseID: 1, Status: requestModel.StatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
			Expect(repo.Create(first)).To(Succeed())

			second := &request.CourseRequest{UserID: 10, CourseID: 1, Status: requestModel.StatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
			Expect(repo.Create(second)).To(MatchError(internal.ErrDuplicateRequest))
		})

		It("should keep rejecting after the first request turned terminal", func() {
			first := &request.CourseRequest{UserID: 10, CourseID: 1, Status: requestModel.StatusApproved, CreatedAt: time.Now(), UpdatedAt: time.Now()}
			Expect(repo.Create(first)).To(Succeed())

			second := &request.CourseRequest{UserID: 10, CourseID: 1, Status: requestModel.StatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
			Expect(repo.Create(second)).To(MatchError(internal.ErrDuplicateRequest))
		})
	})

	Describe("GetDetail", func() {
		It("should join requester and course attributes", func() {
			req := &request.CourseRequest{UserID: 10, CourseID: 1, Status: requestModel.StatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
			Expect(repo.Create(req)).To(Succeed())

			detail, err := repo.GetDetail(req.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.UserName).To(Equal("Eve"))
			Expect(detail.UserDepartment).To(Equal("Engineering"))
			Expect(detail.CourseTitle).To(Equal("Advanced Go"))
			Expect(*detail.CourseLink).To(Equal("https://example.com/go"))
		})

		It("should return not found for an unknown id", func() {
			_, err := repo.GetDetail(99)
			Expect(err).To(MatchError(internal.ErrRequestNotFound))
		})
	})

	Describe("ListByDepartment", func() {
		It("should return only the department's requests, newest first", func() {
			now := time.Now()

			older := &request.CourseRequest{UserID: 10, CourseID: 1, Status: requestModel.StatusPending, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour)}
			Expect(repo.Create(older)).To(Succeed())

			other := &request.CourseRequest{UserID: 11, CourseID: 1, Status: requestModel.StatusPending, CreatedAt: now, UpdatedAt: now}
			Expect(repo.Create(other)).To(Succeed())

			Expect(db.Create(&SQLiteCourse{ID: 2, Title: "SQL Basics"}).Error).To(Succeed())
			newer := &request.CourseRequest{UserID: 10, CourseID: 2, Status: requestModel.StatusPending, CreatedAt: now, UpdatedAt: now}
			Expect(repo.Create(newer)).To(Succeed())

			list, err := repo.ListByDepartment("Engineering")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(newer.ID))
			Expect(list[1].ID).To(Equal(older.ID))
		})
	})

	Describe("UpdateStatus", func() {
		It("should persist the new status", func() {
			req := &request.CourseRequest{UserID: 10, CourseID: 1, Status: requestModel.StatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
			Expect(repo.Create(req)).To(Succeed())

			Expect(repo.UpdateStatus(req.ID, requestModel.StatusApproved, time.Now())).To(Succeed())

			detail, err := repo.GetDetail(req.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Status).To(Equal(requestModel.StatusApproved))
		})
	})
})

var _ = Describe("ProjectRequestRepository", func() {
	var (
		db   *gorm.DB
		repo request.ProjectRequestRepository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteProject{}, &SQLiteProjectRequest{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&SQLiteUser{ID: 10, Name: "Eve", Email: "eve@x.io", Department: "Engineering"}).Error).To(Succeed())
		Expect(db.Create(&SQLiteProject{ID: 7, Title: "Platform Rebuild", ManagerID: 20}).Error).To(Succeed())

		repo = NewProjectRequestRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("should enforce one request per user and project", func() {
		first := &request.ProjectRequest{UserID: 10, ProjectID: 7, Status: requestModel.StatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		Expect(repo.Create(first)).To(Succeed())

		second := &request.ProjectRequest{UserID: 10, ProjectID: 7, Status: requestModel.StatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		Expect(repo.Create(second)).To(MatchError(internal.ErrDuplicateRequest))
	})

	It("should expose the project's manager in the detail view", func() {
		req := &request.ProjectRequest{UserID: 10, ProjectID: 7, Status: requestModel.StatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		Expect(repo.Create(req)).To(Succeed())

		detail, err := repo.GetDetail(req.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(detail.ManagerID).To(Equal(int64(20)))
		Expect(detail.ProjectTitle).To(Equal("Platform Rebuild"))
		Expect(detail.UserDepartment).To(Equal("Engineering"))
	})
})
