package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/rankforge/audit-service/internal/access"
	"github.com/rankforge/audit-service/internal/entity"
)

// SubmitIntake validates and normalizes an intake submission and persists it
// in draft.
func (s *Service) SubmitIntake(ctx context.Context, sub entity.IntakeSubmission) (entity.AuditIntake, error) {
	identity, err := entity.IdentityFromCtx(ctx)
	if err != nil {
		return entity.AuditIntake{}, err
	}

	err = validateSubmission(sub)
	if err != nil {
		return entity.AuditIntake{}, err
	}

	target, err := s.repo.ClientOwnership(ctx, sub.ClientID)
	if err != nil {
		return entity.AuditIntake{}, fmt.Errorf("get client %s ownership: %w", sub.ClientID, err)
	}

	err = s.authorize(identity, access.ActionSubmitIntake, target)
	if err != nil {
		return entity.AuditIntake{}, err
	}

	intake := buildIntake(sub, identity.UserID, time.Now())

	err = s.repo.CreateIntake(ctx, intake)
	if err != nil {
		return entity.AuditIntake{}, fmt.Errorf("create intake: %w", err)
	}

	slog.InfoContext(ctx, "intake created", "intake_id", intake.ID, "client_id", intake.ClientID)

	return intake, nil
}

// MarkIntakeSubmitted moves a draft intake to submitted.
func (s *Service) MarkIntakeSubmitted(ctx context.Context, intakeID uuid.UUID) (entity.AuditIntake, error) {
	return s.transitionIntake(ctx, intakeID, entity.IntakeStatusSubmitted, access.ActionSubmitIntake)
}

// ApproveIntake moves a draft or submitted intake to approved. Requires
// agency-level authority or above.
func (s *Service) ApproveIntake(ctx context.Context, intakeID uuid.UUID) (entity.AuditIntake, error) {
	return s.transitionIntake(ctx, intakeID, entity.IntakeStatusApproved, access.ActionApproveIntake)
}

func (s *Service) transitionIntake(
	ctx context.Context,
	intakeID uuid.UUID,
	to entity.IntakeStatus,
	action access.Action,
) (entity.AuditIntake, error) {
	identity, err := entity.IdentityFromCtx(ctx)
	if err != nil {
		return entity.AuditIntake{}, err
	}

	intake, err := s.repo.IntakeByID(ctx, intakeID)
	if err != nil {
		return entity.AuditIntake{}, fmt.Errorf("get intake %s: %w", intakeID, err)
	}

	target, err := s.repo.ClientOwnership(ctx, intake.ClientID)
	if err != nil {
		return entity.AuditIntake{}, fmt.Errorf("get client %s ownership: %w", intake.ClientID, err)
	}

	err = s.authorize(identity, action, target)
	if err != nil {
		return entity.AuditIntake{}, err
	}

	if !intake.Status.CanTransitionTo(to) {
		return entity.AuditIntake{}, fmt.Errorf("%w: intake %s is %s", entity.ErrInvalidTransition, intakeID, intake.Status)
	}

	now := time.Now()

	err = s.repo.UpdateIntakeStatus(ctx, intakeID, intake.Status, to, now)
	if err != nil {
		// The conditional update matched no row: the intake moved under us.
		if isNotFound(err) {
			return entity.AuditIntake{}, fmt.Errorf("%w: intake %s changed concurrently", entity.ErrInvalidTransition, intakeID)
		}

		return entity.AuditIntake{}, fmt.Errorf("update intake %s status to %s: %w", intakeID, to, err)
	}

	slog.InfoContext(ctx, "intake status changed", "intake_id", intakeID, "from", intake.Status, "to", to)

	intake.Status = to
	intake.UpdatedAt = now

	return intake, nil
}

func buildIntake(sub entity.IntakeSubmission, requestedBy uuid.UUID, now time.Time) entity.AuditIntake {
	intake := entity.AuditIntake{
		ID:          uuid.Must(uuid.NewV4()),
		ClientID:    sub.ClientID,
		RequestedBy: requestedBy,

		ContactName:  strings.TrimSpace(sub.ContactName),
		ContactEmail: strings.ToLower(strings.TrimSpace(sub.ContactEmail)),
		ContactPhone: strings.TrimSpace(sub.ContactPhone),

		WebsiteURL:      strings.TrimSpace(sub.WebsiteURL),
		StagingURL:      strings.TrimSpace(sub.StagingURL),
		Subdomains:      sub.Subdomains,
		CMS:             entity.CMS(strings.ToLower(strings.TrimSpace(sub.CMS))),
		CMSVersion:      strings.TrimSpace(sub.CMSVersion),
		HostingProvider: strings.TrimSpace(sub.HostingProvider),

		HasGoogleAnalytics: sub.HasGoogleAnalytics,
		HasSearchConsole:   sub.HasSearchConsole,
		HasBusinessProfile: sub.HasBusinessProfile,
		HasTagManager:      sub.HasTagManager,

		Markets:         sub.Markets,
		PrimaryServices: sub.PrimaryServices,
		Notes:           sub.Notes,

		Status: entity.IntakeStatusDraft,

		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, g := range sub.Goals {
		intake.Goals = append(intake.Goals, entity.ConversionGoal{
			ID:          uuid.Must(uuid.NewV4()),
			Name:        strings.TrimSpace(g.Name),
			Description: g.Description,
		})
	}

	for _, c := range sub.Competitors {
		normalized, _ := NormalizeWebsiteURL(c.WebsiteURL) // validated above

		intake.Competitors = append(intake.Competitors, entity.IntakeCompetitor{
			ID:         uuid.Must(uuid.NewV4()),
			Name:       strings.TrimSpace(c.Name),
			WebsiteURL: normalized,
		})
	}

	for _, kw := range sub.Keywords {
		intake.Keywords = append(intake.Keywords, entity.IntakeKeyword{
			ID:     uuid.Must(uuid.NewV4()),
			Phrase: strings.TrimSpace(kw.Phrase),
			Intent: entity.KeywordIntent(strings.ToLower(strings.TrimSpace(kw.Intent))),
		})
	}

	return intake
}
