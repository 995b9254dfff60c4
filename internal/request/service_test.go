package request_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/auth"
	"github.com/talenthub/talent-hub/internal/competency"
	courseModel "github.com/talenthub/talent-hub/internal/core/datamodel/course"
	projectModel "github.com/talenthub/talent-hub/internal/core/datamodel/project"
	requestModel "github.com/talenthub/talent-hub/internal/core/datamodel/request"
	"github.com/talenthub/talent-hub/internal/core/datamodel/types"
	"github.com/talenthub/talent-hub/internal/notification"
	"github.com/talenthub/talent-hub/internal/request"
)

func TestRequestService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RequestService Suite")
}

type mockCourseRequestRepo struct {
	created     []*request.CourseRequest
	details     map[int64]*request.CourseRequestDetail
	byDept      map[string][]*request.CourseRequestDetail
	createError error
	updated     map[int64]string
	nextID      int64
}

func newMockCourseRequestRepo() *mockCourseRequestRepo {
	return &mockCourseRequestRepo{
		details: make(map[int64]*request.CourseRequestDetail),
		byDept:  make(map[string][]*request.CourseRequestDetail),
		updated: make(map[int64]string),
		nextID:  1,
	}
}

func (m *mockCourseRequestRepo) Create(req *request.CourseRequest) error {
	if m.createError != nil {
		return m.createError
	}
	req.ID = m.nextID
	m.nextID++
	req.CreatedAt = time.Now()
	m.created = append(m.created, req)
	return nil
}

func (m *mockCourseRequestRepo) GetDetail(id int64) (*request.CourseRequestDetail, error) {
	detail, ok := m.details[id]
	if !ok {
		return nil, internal.ErrRequestNotFound
	}
	return detail, nil
}

func (m *mockCourseRequestRepo) ListByDepartment(department string) ([]*request.CourseRequestDetail, error) {
	return m.byDept[department], nil
}

func (m *mockCourseRequestRepo) UpdateStatus(id int64, status string, updatedAt time.Time) error {
	m.updated[id] = status
	return nil
}

type mockProjectRequestRepo struct {
	created     []*request.ProjectRequest
	details     map[int64]*request.ProjectRequestDetail
	byDept      map[string][]*request.ProjectRequestDetail
	createError error
	updated     map[int64]string
	nextID      int64
}

func newMockProjectRequestRepo() *mockProjectRequestRepo {
	return &mockProjectRequestRepo{
		details: make(map[int64]*request.ProjectRequestDetail),
		byDept:  make(map[string][]*request.ProjectRequestDetail),
		updated: make(map[int64]string),
		nextID:  1,
	}
}

func (m *mockProjectRequestRepo) Create(req *request.ProjectRequest) error {
	if m.createError != nil {
		return m.createError
	}
	req.ID = m.nextID
	m.nextID++
	m.created = append(m.created, req)
	return nil
}

func (m *mockProjectRequestRepo) GetDetail(id int64) (*request.ProjectRequestDetail, error) {
	detail, ok := m.details[id]
	if !ok {
		return nil, internal.ErrRequestNotFound
	}
	return detail, nil
}

func (m *mockProjectRequestRepo) ListByDepartment(department string) ([]*request.ProjectRequestDetail, error) {
	return m.byDept[department], nil
}

func (m *mockProjectRequestRepo) UpdateStatus(id int64, status string, updatedAt time.Time) error {
	m.updated[id] = status
	return nil
}

type mockCourseFinder struct {
	courses map[int64]*courseModel.Course
}

func (m *mockCourseFinder) GetCourse(id int64) (*courseModel.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, internal.ErrCourseNotFound
	}
	return c, nil
}

type mockProjectFinder struct {
	projects map[int64]*projectModel.Project
}

func (m *mockProjectFinder) GetProject(id int64) (*projectModel.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, internal.ErrProjectNotFound
	}
	return p, nil
}

type sentNotification struct {
	userID     int64
	role       string
	department string
	msg        notification.Message
}

type mockNotifier struct {
	sent     []sentNotification
	failUser error
	failRole error
}

func (m *mockNotifier) NotifyUser(ctx context.Context, userID int64, msg notification.Message) error {
	if m.failUser != nil {
		return m.failUser
	}
	m.sent = append(m.sent, sentNotification{userID: userID, msg: msg})
	return nil
}

func (m *mockNotifier) NotifyRole(ctx context.Context, role, department string, msg notification.Message) error {
	if m.failRole != nil {
		return m.failRole
	}
	m.sent = append(m.sent, sentNotification{role: role, department: department, msg: msg})
	return nil
}

var _ = Describe("RequestService", func() {
	var (
		courseRepo  *mockCourseRequestRepo
		projectRepo *mockProjectRequestRepo
		courses     *mockCourseFinder
		projects    *mockProjectFinder
		notifier    *mockNotifier
		service     *request.Service
		ctx         context.Context

		employee *auth.User
		manager  *auth.User
		admin    *auth.User
	)

	BeforeEach(func() {
		courseRepo = newMockCourseRequestRepo()
		projectRepo = newMockProjectRequestRepo()
		courses = &mockCourseFinder{courses: make(map[int64]*courseModel.Course)}
		projects = &mockProjectFinder{projects: make(map[int64]*projectModel.Project)}
		notifier = &mockNotifier{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		service = request.NewService(courseRepo, projectRepo, courses, projects, notifier, logger)
		ctx = context.Background()

		employee = &auth.User{
			ID:           10,
			Name:         "Eve Employee",
			Role:         "employee",
			Department:   "Engineering",
			Position:     "Backend Developer",
			Competencies: competency.NewSet("go", "sql"),
		}
		manager = &auth.User{
			ID:         20,
			Name:       "Mark Manager",
			Role:       "manager",
			Department: "Engineering",
		}
		admin = &auth.User{
			ID:   30,
			Name: "Anna Admin",
			Role: "admin",
		}

		courses.courses[1] = &courseModel.Course{ID: 1, Title: "Advanced Go"}
	})

	Describe("ApplyToCourse", func() {
		Context("when the course exists", func() {
			It("should create a pending request", func() {
				req, err := service.ApplyToCourse(ctx, employee, 1)
				Expect(err).NotTo(HaveOccurred())
				Expect(req.Status).To(Equal(requestModel.StatusPending))
				Expect(req.UserID).To(Equal(employee.ID))
				Expect(req.CourseID).To(Equal(int64(1)))
			})

			It("should notify the requester and the manager cohort", func() {
				_, err := service.ApplyToCourse(ctx, employee, 1)
				Expect(err).NotTo(HaveOccurred())
				Expect(notifier.sent).To(HaveLen(2))
				Expect(notifier.sent[0].userID).To(Equal(employee.ID))
				Expect(notifier.sent[1].role).To(Equal("manager"))
				Expect(notifier.sent[1].department).To(Equal("Engineering"))
			})
		})

		Context("when the course does not exist", func() {
			It("should return not found and write nothing", func() {
				_, err := service.ApplyToCourse(ctx, employee, 99)
				Expect(err).To(MatchError(internal.ErrCourseNotFound))
				Expect(courseRepo.created).To(BeEmpty())
			})
		})

		Context("when a request already exists for the pair", func() {
			It("should surface the duplicate conflict", func() {
				courseRepo.createError = internal.ErrDuplicateRequest
				_, err := service.ApplyToCourse(ctx, employee, 1)
				Expect(err).To(MatchError(internal.ErrDuplicateRequest))
			})
		})

		Context("when notification delivery fails", func() {
			It("should still report the created request", func() {
				notifier.failUser = errors.New("broker down")
				req, err := service.ApplyToCourse(ctx, employee, 1)
				Expect(err).NotTo(HaveOccurred())
				Expect(req).NotTo(BeNil())
			})
		})
	})

	Describe("ApproveCourseRequest", func() {
		BeforeEach(func() {
			courseRepo.details[5] = &request.CourseRequestDetail{
				CourseRequest: request.CourseRequest{
					ID:       5,
					UserID:   employee.ID,
					CourseID: 1,
					Status:   requestModel.StatusPending,
				},
				UserName:       employee.Name,
				UserDepartment: "Engineering",
				CourseTitle:    "Advanced Go",
			}
		})

		Context("when acted on by the department's manager", func() {
			It("should approve the request", func() {
				detail, err := service.ApproveCourseRequest(ctx, manager, 5)
				Expect(err).NotTo(HaveOccurred())
				Expect(detail.Status).To(Equal(requestModel.StatusApproved))
				Expect(courseRepo.updated[5]).To(Equal(requestModel.StatusApproved))
			})

			It("should notify the requester", func() {
				_, err := service.ApproveCourseRequest(ctx, manager, 5)
				Expect(err).NotTo(HaveOccurred())
				Expect(notifier.sent).To(HaveLen(1))
				Expect(notifier.sent[0].userID).To(Equal(employee.ID))
			})
		})

		Context("when acted on by an admin", func() {
			It("should approve regardless of department", func() {
				_, err := service.ApproveCourseRequest(ctx, admin, 5)
				Expect(err).NotTo(HaveOccurred())
			})
		})

		Context("when acted on by a manager of another department", func() {
			It("should deny access", func() {
				other := &auth.User{ID: 21, Role: "manager", Department: "HR"}
				_, err := service.ApproveCourseRequest(ctx, other, 5)
				Expect(err).To(MatchError(internal.ErrForbidden))
				Expect(courseRepo.updated).To(BeEmpty())
			})
		})

		Context("when the request is already terminal", func() {
			It("should refuse a second resolution", func() {
				courseRepo.details[5].Status = requestModel.StatusApproved
				_, err := service.RejectCourseRequest(ctx, manager, 5)
				Expect(err).To(MatchError(internal.ErrRequestTerminal))
				Expect(courseRepo.updated).To(BeEmpty())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
				Expect(appErr.StatusCode).To(Equal(http.StatusConflict))
			})
		})

		Context("when the request does not exist", func() {
			It("should return not found", func() {
				_, err := service.ApproveCourseRequest(ctx, manager, 404)
				Expect(err).To(MatchError(internal.ErrRequestNotFound))
			})
		})
	})

	Describe("ListCourseRequestsForApprover", func() {
		BeforeEach(func() {
			courseRepo.byDept["Engineering"] = []*request.CourseRequestDetail{
				{CourseRequest: request.CourseRequest{ID: 2}},
				{CourseRequest: request.CourseRequest{ID: 1}},
			}
		})

		It("should return the manager's department requests", func() {
			list, err := service.ListCourseRequestsForApprover(manager)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(int64(2)))
		})

		It("should deny employees", func() {
			_, err := service.ListCourseRequestsForApprover(employee)
			Expect(err).To(MatchError(internal.ErrForbidden))
		})

		It("should deny admins, who use their own views", func() {
			_, err := service.ListCourseRequestsForApprover(admin)
			Expect(err).To(MatchError(internal.ErrForbidden))
		})
	})

	Describe("RequestProjectRole", func() {
		BeforeEach(func() {
			projects.projects[7] = &projectModel.Project{
				ID:    7,
				Title: "Platform Rebuild",
				PositionsRequired: types.PositionCount{
					"Backend Developer": 2,
				},
				CompetenciesRequired: types.PositionTags{
					"Backend Developer": {"go", "sql"},
				},
				ManagerID: manager.ID,
			}
		})

		Context("when the candidate is eligible", func() {
			It("should create a pending request", func() {
				req, err := service.RequestProjectRole(ctx, employee, 7)
				Expect(err).NotTo(HaveOccurred())
				Expect(req.Status).To(Equal(requestModel.StatusPending))
				Expect(req.ProjectID).To(Equal(int64(7)))
			})

			It("should notify the requester and the project's manager", func() {
				_, err := service.RequestProjectRole(ctx, employee, 7)
				Expect(err).NotTo(HaveOccurred())
				Expect(notifier.sent).To(HaveLen(2))
				Expect(notifier.sent[0].userID).To(Equal(employee.ID))
				Expect(notifier.sent[1].userID).To(Equal(manager.ID))
			})
		})

		Context("when competencies are missing", func() {
			It("should refuse with the missing list and write nothing", func() {
				employee.Competencies = competency.NewSet("go")
				_, err := service.RequestProjectRole(ctx, employee, 7)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeMissingCompetencies))

				details, ok := appErr.Details.(internal.EligibilityDetails)
				Expect(ok).To(BeTrue())
				Expect(details.MissingCompetencies).To(Equal([]string{"sql"}))

				Expect(projectRepo.created).To(BeEmpty())
				Expect(notifier.sent).To(BeEmpty())
			})
		})

		Context("when the project has no opening for the position", func() {
			It("should refuse with no-open-position and write nothing", func() {
				employee.Position = "Frontend Developer"
				_, err := service.RequestProjectRole(ctx, employee, 7)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeNoOpenPosition))
				Expect(projectRepo.created).To(BeEmpty())
			})
		})

		Context("when a request already exists for the pair", func() {
			It("should surface the duplicate conflict", func() {
				projectRepo.createError = internal.ErrDuplicateRequest
				_, err := service.RequestProjectRole(ctx, employee, 7)
				Expect(err).To(MatchError(internal.ErrDuplicateRequest))
			})
		})
	})

	Describe("ApproveProjectRequest", func() {
		BeforeEach(func() {
			projectRepo.details[9] = &request.ProjectRequestDetail{
				ProjectRequest: request.ProjectRequest{
					ID:        9,
					UserID:    employee.ID,
					ProjectID: 7,
					Status:    requestModel.StatusPending,
				},
				UserName:       employee.Name,
				UserDepartment: "Engineering",
				ProjectTitle:   "Platform Rebuild",
				ManagerID:      manager.ID,
			}
		})

		Context("when acted on by the project's manager", func() {
			It("should approve and notify the requester", func() {
				detail, err := service.ApproveProjectRequest(ctx, manager, 9)
				Expect(err).NotTo(HaveOccurred())
				Expect(detail.Status).To(Equal(requestModel.StatusApproved))
				Expect(notifier.sent).To(HaveLen(1))
				Expect(notifier.sent[0].userID).To(Equal(employee.ID))
			})
		})

		Context("when acted on by anyone else", func() {
			It("should deny even admins: only the exact manager may resolve", func() {
				_, err := service.ApproveProjectRequest(ctx, admin, 9)
				Expect(err).To(MatchError(internal.ErrForbidden))
			})
		})

		Context("when the request is already terminal", func() {
			It("should refuse a second resolution", func() {
				projectRepo.details[9].Status = requestModel.StatusRejected
				_, err := service.ApproveProjectRequest(ctx, manager, 9)
				Expect(err).To(MatchError(internal.ErrRequestTerminal))
			})
		})
	})
})
