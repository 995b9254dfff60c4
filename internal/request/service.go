package request

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/auth"
	requestModel "github.com/talenthub/talent-hub/internal/core/datamodel/request"
	userModel "github.com/talenthub/talent-hub/internal/core/datamodel/user"
	"github.com/talenthub/talent-hub/internal/notification"
)

// Service is the request ledger: creation with idempotency, the
// pending-to-terminal state machine, and approver-scoped queries, for both
// course enrollment and project staffing requests.
type Service struct {
	courseRequests  CourseRequestRepository
	projectRequests ProjectRequestRepository
	courses         CourseFinder
	projects        ProjectFinder
	notifier        Notifier
	logger          *slog.Logger
}

func NewService(
	courseRequests CourseRequestRepository,
	projectRequests ProjectRequestRepository,
	courses CourseFinder,
	projects ProjectFinder,
	notifier Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		courseRequests:  courseRequests,
		projectRequests: projectRequests,
		courses:         courses,
		projects:        projects,
		notifier:        notifier,
		logger:          logger,
	}
}

// ApplyToCourse creates a pending enrollment request. The storage uniqueness
// constraint rejects a second request for the same (user, course) pair in
// any status.
func (s *Service) ApplyToCourse(ctx context.Context, user *auth.User, courseID int64) (*CourseRequest, error) {
	course, err := s.courses.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	req := &CourseRequest{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   requestModel.StatusPending,
	}

	if err := s.courseRequests.Create(req); err != nil {
		s.logger.Warn("course request creation failed",
			"error", err,
			"user_id", user.ID,
			"course_id", courseID)
		return nil, err
	}

	s.logger.Info("course request created",
		"request_id", req.ID,
		"user_id", user.ID,
		"course_id", courseID)

	s.notify(ctx, user.ID, notification.Message{
		Title: "Course application",
		Body:  fmt.Sprintf("You applied for the course %q. Status: under review.", course.Title),
	})
	s.notifyRole(ctx, userModel.RoleManager, user.Department, notification.Message{
		Body: fmt.Sprintf("Employee %s applied for the course %q. Please review.", user.Name, course.Title),
	})

	return req, nil
}

// ApproveCourseRequest transitions pending to approved. The acting user must
// manage the requester's department.
func (s *Service) ApproveCourseRequest(ctx context.Context, actor *auth.User, requestID int64) (*CourseRequestDetail, error) {
	return s.resolveCourseRequest(ctx, actor, requestID, requestModel.StatusApproved)
}

// RejectCourseRequest transitions pending to rejected, symmetric to approval.
func (s *Service) RejectCourseRequest(ctx context.Context, actor *auth.User, requestID int64) (*CourseRequestDetail, error) {
	return s.resolveCourseRequest(ctx, actor, requestID, requestModel.StatusRejected)
}

func (s *Service) resolveCourseRequest(ctx context.Context, actor *auth.User, requestID int64, status string) (*CourseRequestDetail, error) {
	detail, err := s.courseRequests.GetDetail(requestID)
	if err != nil {
		return nil, err
	}

	if !actor.ManagesDepartment(detail.UserDepartment) {
		s.logger.Warn("course request resolution denied",
			"request_id", requestID,
			"actor_id", actor.ID,
			"actor_role", actor.Role)
		return nil, internal.ErrForbidden
	}

	if requestModel.IsTerminal(detail.Status) {
		return nil, internal.ErrRequestTerminal
	}

	now := time.Now()
	if err := s.courseRequests.UpdateStatus(requestID, status, now); err != nil {
		s.logger.Error("failed to update course request status",
			"error", err,
			"request_id", requestID,
			"status", status)
		return nil, internal.NewStorageError("failed to update request status", err)
	}
	detail.Status = status
	detail.UpdatedAt = now

	s.logger.Info("course request resolved",
		"request_id", requestID,
		"status", status,
		"actor_id", actor.ID)

	msg := notification.Message{
		Title: "Application approved",
		Body:  fmt.Sprintf("Your application for the course %q was approved.", detail.CourseTitle),
	}
	if detail.CourseLink != nil {
		msg.Link = *detail.CourseLink
	}
	if status == requestModel.StatusRejected {
		msg.Title = "Application rejected"
		msg.Body = fmt.Sprintf("Your application for the course %q was rejected.", detail.CourseTitle)
		msg.Link = ""
	}
	s.notify(ctx, detail.UserID, msg)

	return detail, nil
}

// ListCourseRequestsForApprover returns requests from the manager's own
// department, newest first. Only managers use this path.
func (s *Service) ListCourseRequestsForApprover(actor *auth.User) ([]*CourseRequestDetail, error) {
	if !actor.IsManager() {
		return nil, internal.ErrForbidden
	}
	requests, err := s.courseRequests.ListByDepartment(actor.Department)
	if err != nil {
		s.logger.Error("failed to list course requests", "error", err, "department", actor.Department)
		return nil, internal.NewStorageError("failed to list requests", err)
	}
	return requests, nil
}

func (s *Service) notify(ctx context.Context, userID int64, msg notification.Message) {
	if err := s.notifier.NotifyUser(ctx, userID, msg); err != nil {
		// the request state change already committed; delivery trouble is
		// logged, not surfaced
		s.logger.Warn("notification dispatch failed", "error", err, "user_id", userID)
	}
}

func (s *Service) notifyRole(ctx context.Context, role, department string, msg notification.Message) {
	if err := s.notifier.NotifyRole(ctx, role, department, msg); err != nil {
		s.logger.Warn("cohort notification dispatch failed",
			"error", err,
			"role", role,
			"department", department)
	}
}
