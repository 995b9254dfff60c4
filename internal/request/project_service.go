package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/talenthub/talent-hub/internal"
	"github.com/talenthub/talent-hub/internal/auth"
	"github.com/talenthub/talent-hub/internal/competency"
	requestModel "github.com/talenthub/talent-hub/internal/core/datamodel/request"
	"github.com/talenthub/talent-hub/internal/notification"
)

// RequestProjectRole creates a pending staffing request after the positional
// eligibility check. Nothing is written when the candidate is ineligible.
func (s *Service) RequestProjectRole(ctx context.Context, user *auth.User, projectID int64) (*ProjectRequest, error) {
	project, err := s.projects.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	missing, err := competency.MatchPosition(project.CompetenciesRequired, user.Position, user.Competencies)
	if err != nil {
		if errors.Is(err, competency.ErrNoOpenPosition) {
			s.logger.Info("project request refused: no open position",
				"user_id", user.ID,
				"project_id", projectID,
				"position", user.Position)
			return nil, internal.NewIneligibleError(
				fmt.Sprintf("no open role for position %q in this project", user.Position),
				internal.ErrCodeNoOpenPosition,
				internal.EligibilityDetails{Position: user.Position, NoOpenPosition: true},
			)
		}
		return nil, err
	}
	if len(missing) > 0 {
		s.logger.Info("project request refused: missing competencies",
			"user_id", user.ID,
			"project_id", projectID,
			"missing", missing)
		return nil, internal.NewIneligibleError(
			fmt.Sprintf("missing competencies for your position: %s", strings.Join(missing, ", ")),
			internal.ErrCodeMissingCompetencies,
			internal.EligibilityDetails{Position: user.Position, MissingCompetencies: missing},
		)
	}

	req := &ProjectRequest{
		UserID:    user.ID,
		ProjectID: project.ID,
		Status:    requestModel.StatusPending,
	}

	if err := s.projectRequests.Create(req); err != nil {
		s.logger.Warn("project request creation failed",
			"error", err,
			"user_id", user.ID,
			"project_id", projectID)
		return nil, err
	}

	s.logger.Info("project request created",
		"request_id", req.ID,
		"user_id", user.ID,
		"project_id", projectID)

	s.notify(ctx, user.ID, notification.Message{
		Body: fmt.Sprintf("You applied to join the project %q.", project.Title),
	})
	s.notify(ctx, project.ManagerID, notification.Message{
		Body: fmt.Sprintf("Employee %s applied for the project %q.", user.Name, project.Title),
	})

	return req, nil
}

// ApproveProjectRequest transitions pending to approved. Only the project's
// manager may resolve its requests.
func (s *Service) ApproveProjectRequest(ctx context.Context, actor *auth.User, requestID int64) (*ProjectRequestDetail, error) {
	return s.resolveProjectRequest(ctx, actor, requestID, requestModel.StatusApproved)
}

// RejectProjectRequest transitions pending to rejected.
func (s *Service) RejectProjectRequest(ctx context.Context, actor *auth.User, requestID int64) (*ProjectRequestDetail, error) {
	return s.resolveProjectRequest(ctx, actor, requestID, requestModel.StatusRejected)
}

func (s *Service) resolveProjectRequest(ctx context.Context, actor *auth.User, requestID int64, status string) (*ProjectRequestDetail, error) {
	detail, err := s.projectRequests.GetDetail(requestID)
	if err != nil {
		return nil, err
	}

	if detail.ManagerID != actor.ID {
		s.logger.Warn("project request resolution denied: not the project manager",
			"request_id", requestID,
			"actor_id", actor.ID,
			"manager_id", detail.ManagerID)
		return nil, internal.ErrForbidden
	}

	if requestModel.IsTerminal(detail.Status) {
		return nil, internal.ErrRequestTerminal
	}

	now := time.Now()
	if err := s.projectRequests.UpdateStatus(requestID, status, now); err != nil {
		s.logger.Error("failed to update project request status",
			"error", err,
			"request_id", requestID,
			"status", status)
		return nil, internal.NewStorageError("failed to update request status", err)
	}
	detail.Status = status
	detail.UpdatedAt = now

	s.logger.Info("project request resolved",
		"request_id", requestID,
		"status", status,
		"actor_id", actor.ID)

	body := fmt.Sprintf("Your application for the project %q was approved.", detail.ProjectTitle)
	if status == requestModel.StatusRejected {
		body = fmt.Sprintf("Your application for the project %q was rejected.", detail.ProjectTitle)
	}
	s.notify(ctx, detail.UserID, notification.Message{Body: body})

	return detail, nil
}

// ListProjectRequestsForApprover returns staffing requests from the
// manager's department, newest first.
func (s *Service) ListProjectRequestsForApprover(actor *auth.User) ([]*ProjectRequestDetail, error) {
	if !actor.IsManager() {
		return nil, internal.ErrForbidden
	}
	requests, err := s.projectRequests.ListByDepartment(actor.Department)
	if err != nil {
		s.logger.Error("failed to list project requests", "error", err, "department", actor.Department)
		return nil, internal.NewStorageError("failed to list requests", err)
	}
	return requests, nil
}
