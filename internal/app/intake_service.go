package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/intake/internal/core/application"
	"github.com/example/intake/internal/core/review"
	"github.com/example/intake/internal/models"
	"github.com/example/intake/internal/ports/primary"
	"github.com/example/intake/internal/ports/secondary"
)

// ManageCapability names the permission capability whose roles are pinged
// when a flagged user submits.
const ManageCapability = "manage_applications"

// answerDisplayLimit caps each answer rendered in the review summary so the
// transport's message limits are never hit.
const answerDisplayLimit = 1900

// IntakeServiceImpl implements the IntakeService interface: the
// one-question-at-a-time applicant conversation from start to submission.
type IntakeServiceImpl struct {
	applications secondary.ApplicationRepository
	positions    secondary.PositionRepository
	standing     secondary.StandingRepository
	messenger    secondary.Messenger
	guild        secondary.GuildDirectory
	perms        secondary.PermissionDirectory
	notifier     *Notifier
	logger       zerolog.Logger
	now          func() time.Time
	locks        *userLocks
}

// NewIntakeService creates a new IntakeService with injected dependencies.
func NewIntakeService(
	applications secondary.ApplicationRepository,
	positions secondary.PositionRepository,
	standing secondary.StandingRepository,
	messenger secondary.Messenger,
	guild secondary.GuildDirectory,
	perms secondary.PermissionDirectory,
	notifier *Notifier,
	logger zerolog.Logger,
) *IntakeServiceImpl {
	return &IntakeServiceImpl{
		applications: applications,
		positions:    positions,
		standing:     standing,
		messenger:    messenger,
		guild:        guild,
		perms:        perms,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
		locks:        newUserLocks(),
	}
}

// Start begins an intake for the user against a position resolved by name.
// Any previous in-progress application for the user is replaced. The first
// question must be delivered for the intake to count as started.
func (s *IntakeServiceImpl) Start(ctx context.Context, userID, positionName string) (*primary.StartResult, error) {
	unlock := s.locks.acquire(userID)
	defer unlock()

	blocked, err := s.standing.IsBlacklisted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if blocked {
		return nil, ErrBlocked
	}

	matches, err := s.positions.FindByName(ctx, positionName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up position: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("position %q: %w", positionName, ErrNotFound)
	}
	// Duplicate names resolve to the oldest definition.
	position := matches[0]
	if !position.Open {
		return nil, fmt.Errorf("position %q: %w", position.Name, ErrClosed)
	}

	appID, err := s.applications.StartInProgress(ctx, userID, position.ID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to start application: %w", err)
	}

	result := &primary.StartResult{ApplicationID: appID, Position: position}

	var prompt secondary.Message
	if len(position.Questions) == 0 {
		prompt = secondary.Message{
			Title: fmt.Sprintf("Application Started: %s", position.Name),
			Body:  "This position has no questions. A staff member will follow up with you directly.",
		}
	} else {
		result.FirstQuestion = position.Questions[0]
		prompt = secondary.Message{
			Title: fmt.Sprintf("Application Started: %s", position.Name),
			Body: fmt.Sprintf("Answer each question in this channel, one message at a time. You have %s to finish.\n\nQuestion 1 of %d: %s",
				formatTTL(application.InProgressTTL), len(position.Questions), position.Questions[0]),
		}
	}

	if err := s.messenger.SendDirect(ctx, userID, prompt); err != nil {
		// The conversation happens over DM; without it there is nothing to
		// resume, so roll the row back rather than strand the applicant.
		if delErr := s.applications.Delete(ctx, appID); delErr != nil {
			s.logger.Error().Err(delErr).Int64("application_id", appID).Msg("failed to clean up unstartable application")
		}
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int64("application_id", appID).
		Int64("position_id", position.ID).
		Msg("intake started")
	return result, nil
}

// Answer records the user's next answer and either sends the next question
// or submits the completed application.
func (s *IntakeServiceImpl) Answer(ctx context.Context, userID, text string) (*primary.AnswerResult, error) {
	unlock := s.locks.acquire(userID)
	defer unlock()

	app, err := s.applications.GetInProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up in-progress application: %w", err)
	}
	if app == nil {
		return nil, ErrNoInProgress
	}
	if application.Expired(app.CreatedAt, s.now().UTC()) {
		if delErr := s.applications.Delete(ctx, app.ID); delErr != nil {
			s.logger.Error().Err(delErr).Int64("application_id", app.ID).Msg("failed to discard expired application")
		}
		return nil, ErrExpired
	}

	// Resolve the position before touching the answer list so a lookup
	// fault leaves nothing behind and the retry appends exactly once.
	position, err := s.positions.GetByID(ctx, app.PositionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up position: %w", err)
	}
	// Position deleted mid-intake: nothing left to ask, submit what we have.
	var questions []string
	if position != nil {
		questions = position.Questions
	}

	if err := s.applications.AppendAnswer(ctx, app.ID, text); err != nil {
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}

	answered := len(app.Answers) + 1
	if answered < len(questions) {
		next := questions[answered]
		number := answered + 1
		prompt := secondary.Message{
			Body: fmt.Sprintf("Question %d of %d: %s", number, len(questions), next),
		}
		if err := s.messenger.SendDirect(ctx, userID, prompt); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("next question not delivered")
		}
		return &primary.AnswerResult{
			ApplicationID:  app.ID,
			NextQuestion:   next,
			QuestionNumber: number,
		}, nil
	}

	if err := s.applications.Submit(ctx, app.ID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}
	app.Answers = append(app.Answers, text)
	app.Status = models.AppStatusSubmitted

	routed := s.routeSubmission(ctx, app, position)

	s.logger.Info().
		Str("user_id", userID).
		Int64("application_id", app.ID).
		Bool("routed", routed).
		Msg("application submitted")
	return &primary.AnswerResult{ApplicationID: app.ID, Submitted: true, Routed: routed}, nil
}

// HandleInbound feeds a transport message event into the intake flow.
func (s *IntakeServiceImpl) HandleInbound(ctx context.Context, msg secondary.InboundMessage) (*primary.AnswerResult, error) {
	if !msg.IsDirect || msg.IsBot {
		return &primary.AnswerResult{Ignored: true}, nil
	}

	text := msg.Text
	if len(msg.AttachmentURLs) > 0 {
		text = text + "\n\nAttachments:\n" + strings.Join(msg.AttachmentURLs, "\n")
	}

	result, err := s.Answer(ctx, msg.SenderID, text)
	if err != nil {
		// A DM from someone who is not mid-intake is ordinary chatter.
		if errors.Is(err, ErrNoInProgress) {
			return &primary.AnswerResult{Ignored: true}, nil
		}
		return nil, err
	}
	return result, nil
}

// Withdraw marks an application withdrawn. With id 0, the user's latest
// submitted application is targeted.
func (s *IntakeServiceImpl) Withdraw(ctx context.Context, userID string, id int64) (*models.Application, error) {
	app, err := s.resolveOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if guard := application.CanWithdraw(app.Status); !guard.Allowed {
		return nil, fmt.Errorf("%s: %w", guard.Reason, ErrAlreadyProcessed)
	}

	changed, err := s.applications.SetStatus(ctx, app.ID, models.AppStatusWithdrawn)
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw application: %w", err)
	}
	if !changed {
		return nil, ErrAlreadyProcessed
	}
	app.Status = models.AppStatusWithdrawn

	s.notifier.PostToReview(ctx, "", secondary.Message{
		Title: "Application Withdrawn",
		Body:  fmt.Sprintf("Application %d was withdrawn by the applicant.", app.ID),
	})

	s.logger.Info().Str("user_id", userID).Int64("application_id", app.ID).Msg("application withdrawn")
	return app, nil
}

// Status returns an application for status display. With id 0, the user's
// latest submitted application is targeted.
func (s *IntakeServiceImpl) Status(ctx context.Context, userID string, id int64) (*models.Application, error) {
	return s.resolveOwned(ctx, userID, id)
}

// resolveOwned fetches an application and enforces ownership. id 0 targets
// the user's latest submitted application.
func (s *IntakeServiceImpl) resolveOwned(ctx context.Context, userID string, id int64) (*models.Application, error) {
	if id == 0 {
		app, err := s.applications.GetLatestByUserAndStatus(ctx, userID, models.AppStatusSubmitted)
		if err != nil {
			return nil, fmt.Errorf("failed to look up application: %w", err)
		}
		if app == nil {
			return nil, fmt.Errorf("no submitted application: %w", ErrNotFound)
		}
		return app, nil
	}

	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}
	if app == nil {
		return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	if app.UserID != userID {
		return nil, ErrNotOwner
	}
	return app, nil
}

// routeSubmission posts the completed application to the review channel and
// confirms to the applicant. Routing failures never unwind the submission.
func (s *IntakeServiceImpl) routeSubmission(ctx context.Context, app *models.Application, position *models.Position) bool {
	mention := s.escalationMention(ctx, app.UserID)

	positionName := fmt.Sprintf("position %d", app.PositionID)
	var questions []string
	if position != nil {
		positionName = position.Name
		questions = position.Questions
	}

	summary := secondary.Message{
		Title: fmt.Sprintf("New Application: %s", positionName),
		Fields: []secondary.MessageField{
			{Name: "Applicant", Value: fmt.Sprintf("<@%s> (%s)", app.UserID, app.UserID)},
			{Name: "Application ID", Value: fmt.Sprintf("%d", app.ID)},
		},
	}
	for i, answer := range app.Answers {
		name := fmt.Sprintf("Answer %d", i+1)
		if i < len(questions) {
			name = questions[i]
		}
		summary.Fields = append(summary.Fields, secondary.MessageField{
			Name:  name,
			Value: truncate(answer, answerDisplayLimit),
		})
	}

	routed := s.notifier.PostToReview(ctx, mention, summary)

	confirmation := secondary.Message{
		Title: "Application Submitted",
		Body:  fmt.Sprintf("Your application for %s has been submitted for review.", positionName),
	}
	if !routed {
		confirmation.Body = fmt.Sprintf(
			"Your application for %s has been saved, but no review channel is configured yet. Staff will pick it up once one is set.",
			positionName)
	}
	if err := s.messenger.SendDirect(ctx, app.UserID, confirmation); err != nil {
		s.logger.Warn().Err(err).Str("user_id", app.UserID).Msg("submission confirmation not delivered")
	}
	return routed
}

// escalationMention returns the staff mention line when the applicant is
// flagged, or "" for applicants in good standing. Lookup faults degrade to
// no mention rather than blocking the submission.
func (s *IntakeServiceImpl) escalationMention(ctx context.Context, userID string) string {
	communityID, err := s.guild.CommunityID(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve community")
		communityID = ""
	}
	flagged, err := s.standing.IsFlagged(ctx, userID, communityID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to check flag")
		return ""
	}
	if !flagged {
		return ""
	}

	capabilityRoles, err := s.perms.RolesForCapability(ManageCapability)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve capability roles")
		return review.StaffFallbackMention
	}
	guildRoles, err := s.guild.ListRoles(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list guild roles")
		return review.StaffFallbackMention
	}
	return review.MentionLine(capabilityRoles, guildRoles)
}

// truncate cuts a string to at most max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// formatTTL renders the in-progress window for applicant-facing prompts.
func formatTTL(d time.Duration) string {
	hours := int(d.Hours())
	if hours%24 == 0 && hours >= 24 {
		days := hours / 24
		if days == 1 {
			return "24 hours"
		}
		return fmt.Sprintf("%d days", days)
	}
	return fmt.Sprintf("%d hours", hours)
}

// Ensure IntakeServiceImpl implements the interface
var _ primary.IntakeService = (*IntakeServiceImpl)(nil)
