package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/intake/internal/core/application"
	"github.com/example/intake/internal/core/review"
	"github.com/example/intake/internal/models"
	"github.com/example/intake/internal/ports/primary"
	"github.com/example/intake/internal/ports/secondary"
)

// ReviewServiceImpl implements the ReviewService interface: staff decisions
// over submitted applications.
type ReviewServiceImpl struct {
	applications secondary.ApplicationRepository
	positions    secondary.PositionRepository
	guild        secondary.GuildDirectory
	notifier     *Notifier
	logger       zerolog.Logger
	// unflagTarget is the status a flagged application returns to.
	unflagTarget string
}

// NewReviewService creates a new ReviewService with injected dependencies.
// unflagTarget may be empty to use the default pending-review status.
func NewReviewService(
	applications secondary.ApplicationRepository,
	positions secondary.PositionRepository,
	guild secondary.GuildDirectory,
	notifier *Notifier,
	logger zerolog.Logger,
	unflagTarget string,
) *ReviewServiceImpl {
	if unflagTarget == "" {
		unflagTarget = models.AppStatusSubmitted
	}
	return &ReviewServiceImpl{
		applications: applications,
		positions:    positions,
		guild:        guild,
		notifier:     notifier,
		logger:       logger,
		unflagTarget: unflagTarget,
	}
}

// Approve marks an application accepted, grants the position's outcome roles,
// and notifies the applicant. The status commit happens first: role and
// notification failures degrade the summary, never the decision.
func (s *ReviewServiceImpl) Approve(ctx context.Context, id int64, staffID string) (*primary.DecisionSummary, error) {
	app, err := s.decidable(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := s.applications.SetStatus(ctx, id, models.AppStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to accept application: %w", err)
	}
	if !changed {
		return nil, ErrAlreadyProcessed
	}

	position := s.lookupPosition(ctx, app.PositionID)
	positionName := fmt.Sprintf("position %d", app.PositionID)
	if position != nil {
		positionName = position.Name
	}

	summary := &primary.DecisionSummary{
		ApplicationID: id,
		UserID:        app.UserID,
		PositionName:  positionName,
	}

	if position != nil {
		summary.RolesGranted, summary.RolesFailed = s.grantRoles(ctx, app.UserID, position.RolesGiven)
	}

	dm := secondary.Message{
		Title: fmt.Sprintf("Application Accepted: %s", positionName),
		Body:  "Congratulations, your application has been accepted!",
	}
	if position != nil && position.AcceptanceMessage != "" {
		dm.Body = position.AcceptanceMessage
	}
	fallback := secondary.Message{
		Title: "Application Accepted",
		Body:  fmt.Sprintf("Application %d for %s was accepted, but the applicant could not be reached by DM.", id, positionName),
	}
	outcome := s.notifier.NotifyUser(ctx, app.UserID, dm, fallback, fmt.Sprintf("<@%s>", app.UserID))
	summary.DMSent = outcome.DMSent
	summary.DMError = outcome.DMError
	summary.FallbackPosted = outcome.FallbackPosted

	s.logger.Info().
		Int64("application_id", id).
		Str("staff_id", staffID).
		Int("roles_granted", len(summary.RolesGranted)).
		Int("roles_failed", len(summary.RolesFailed)).
		Msg("application accepted")
	return summary, nil
}

// Reject marks an application rejected and notifies the applicant. Message
// precedence: the staff reason, then the position's rejection template, then
// a generic line.
func (s *ReviewServiceImpl) Reject(ctx context.Context, id int64, staffID, reason string) (*primary.DecisionSummary, error) {
	app, err := s.decidable(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := s.applications.SetStatus(ctx, id, models.AppStatusRejected)
	if err != nil {
		return nil, fmt.Errorf("failed to reject application: %w", err)
	}
	if !changed {
		return nil, ErrAlreadyProcessed
	}

	position := s.lookupPosition(ctx, app.PositionID)
	positionName := fmt.Sprintf("position %d", app.PositionID)
	if position != nil {
		positionName = position.Name
	}

	body := "Unfortunately, your application was not successful this time."
	switch {
	case reason != "":
		body = reason
	case position != nil && position.RejectionMessage != "":
		body = position.RejectionMessage
	}

	dm := secondary.Message{
		Title: fmt.Sprintf("Application Rejected: %s", positionName),
		Body:  body,
	}
	fallback := secondary.Message{
		Title: "Application Rejected",
		Body:  fmt.Sprintf("Application %d for %s was rejected: %s", id, positionName, body),
	}
	outcome := s.notifier.NotifyUser(ctx, app.UserID, dm, fallback, fmt.Sprintf("<@%s>", app.UserID))

	s.logger.Info().
		Int64("application_id", id).
		Str("staff_id", staffID).
		Msg("application rejected")
	return &primary.DecisionSummary{
		ApplicationID:  id,
		UserID:         app.UserID,
		PositionName:   positionName,
		DMSent:         outcome.DMSent,
		DMError:        outcome.DMError,
		FallbackPosted: outcome.FallbackPosted,
	}, nil
}

// Relabel maps a human status label to its canonical status and commits it.
func (s *ReviewServiceImpl) Relabel(ctx context.Context, id int64, staffID, label string) (string, error) {
	status, ok := application.ParseLabel(label)
	if !ok {
		return "", fmt.Errorf("%q (expected one of: %s): %w", label, application.Labels(), ErrInvalidLabel)
	}

	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to look up application: %w", err)
	}
	if app == nil {
		return "", fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	if app.Status == status {
		return "", ErrNoChange
	}
	if guard := application.CanTransition(app.Status, status); !guard.Allowed {
		return "", fmt.Errorf("%s: %w", guard.Reason, ErrAlreadyProcessed)
	}

	changed, err := s.applications.SetStatus(ctx, id, status)
	if err != nil {
		return "", fmt.Errorf("failed to set status: %w", err)
	}
	if !changed {
		return "", ErrNoChange
	}

	if status == models.AppStatusOnHold {
		s.notifier.PostToReview(ctx, "", secondary.Message{
			Body: fmt.Sprintf("Application %d has been placed on hold by %s.", id, staffID),
		})
	}

	s.logger.Info().
		Int64("application_id", id).
		Str("staff_id", staffID).
		Str("status", status).
		Msg("application relabeled")
	return status, nil
}

// Flag freezes an application until unflagged.
func (s *ReviewServiceImpl) Flag(ctx context.Context, id int64) error {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up application: %w", err)
	}
	if app == nil {
		return fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	if app.Status == models.AppStatusFlagged {
		return ErrAlreadyFlagged
	}
	if guard := application.CanFlag(app.Status); !guard.Allowed {
		return fmt.Errorf("%s: %w", guard.Reason, ErrAlreadyProcessed)
	}

	if _, err := s.applications.SetStatus(ctx, id, models.AppStatusFlagged); err != nil {
		return fmt.Errorf("failed to flag application: %w", err)
	}
	s.logger.Info().Int64("application_id", id).Msg("application flagged")
	return nil
}

// Unflag returns a flagged application to the pending-review state.
func (s *ReviewServiceImpl) Unflag(ctx context.Context, id int64) error {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up application: %w", err)
	}
	if app == nil {
		return fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	if guard := application.CanUnflag(app.Status); !guard.Allowed {
		return ErrNotFlagged
	}

	if _, err := s.applications.SetStatus(ctx, id, s.unflagTarget); err != nil {
		return fmt.Errorf("failed to unflag application: %w", err)
	}
	s.logger.Info().Int64("application_id", id).Str("status", s.unflagTarget).Msg("application unflagged")
	return nil
}

// decidable fetches an application and checks it is still open to an
// approve/reject decision.
func (s *ReviewServiceImpl) decidable(ctx context.Context, id int64) (*models.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}
	if app == nil {
		return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	if guard := application.CanDecide(app.Status); !guard.Allowed {
		return nil, fmt.Errorf("%s: %w", guard.Reason, ErrAlreadyProcessed)
	}
	return app, nil
}

// lookupPosition fetches a position, tolerating deletion: decisions on
// applications for removed positions still go through.
func (s *ReviewServiceImpl) lookupPosition(ctx context.Context, id int64) *models.Position {
	position, err := s.positions.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("position_id", id).Msg("failed to look up position")
		return nil
	}
	return position
}

// grantRoles checks each outcome role against the directory, grants the
// assignable ones, and records a typed failure for the rest.
func (s *ReviewServiceImpl) grantRoles(ctx context.Context, userID string, roleIDs []string) ([]string, []review.GrantFailure) {
	facts := make([]review.RoleFact, 0, len(roleIDs))
	var failed []review.GrantFailure
	for _, roleID := range roleIDs {
		exists, err := s.guild.RoleExists(ctx, roleID)
		if err != nil {
			// Unknown directory state counts as a generic failure, not a
			// missing role.
			s.logger.Error().Err(err).Str("role_id", roleID).Msg("failed to check role")
			failed = append(failed, review.GrantFailure{RoleID: roleID, Reason: review.GrantFailOther})
			continue
		}
		fact := review.RoleFact{RoleID: roleID, Exists: exists}
		if exists {
			outranks, err := s.guild.RoleOutranksBot(ctx, roleID)
			if err != nil {
				s.logger.Error().Err(err).Str("role_id", roleID).Msg("failed to check role rank")
				failed = append(failed, review.GrantFailure{RoleID: roleID, Reason: review.GrantFailOther})
				continue
			}
			fact.OutranksBot = outranks
		}
		facts = append(facts, fact)
	}

	plan := review.PlanGrants(facts)
	granted := make([]string, 0, len(plan.Assignable))
	failed = append(failed, plan.Failed...)
	for _, roleID := range plan.Assignable {
		err := s.guild.GrantRole(ctx, userID, roleID)
		if err == nil {
			granted = append(granted, roleID)
			continue
		}
		reason := review.GrantFailOther
		switch {
		case errors.Is(err, secondary.ErrRoleForbidden):
			reason = review.GrantFailForbidden
		case errors.Is(err, secondary.ErrRoleNotFound):
			reason = review.GrantFailRoleNotFound
		}
		s.logger.Warn().Err(err).Str("role_id", roleID).Str("user_id", userID).Msg("role grant failed")
		failed = append(failed, review.GrantFailure{RoleID: roleID, Reason: reason})
	}
	return granted, failed
}

// Ensure ReviewServiceImpl implements the interface
var _ primary.ReviewService = (*ReviewServiceImpl)(nil)
