package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-landing-page/internal/domain"
	"go-landing-page/pkg/audit"
	"go-landing-page/pkg/email"
	"go-landing-page/pkg/logger"
	"go-landing-page/pkg/validation"

	"github.com/google/uuid"
)

// unknownSite labels submissions that arrive without a domainName
const unknownSite = "Unknown Site"

// ContactMailer delivers the two emails of an accepted submission
type ContactMailer interface {
	IsConfigured() bool
	SendOwnerNotification(ctx context.Context, data email.ContactEmailData) error
	SendAcknowledgement(ctx context.Context, data email.ContactEmailData) error
}

type contactUsecase struct {
	mailer    ContactMailer
	repo      domain.SubmissionRepository
	validator *validation.FieldValidator
	audit     *audit.Logger
	now       func() time.Time
}

// NewContactUsecase creates the relay usecase. repo may be nil when no archive is configured.
func NewContactUsecase(mailer ContactMailer, repo domain.SubmissionRepository, auditLog *audit.Logger) domain.ContactUsecase {
	return &contactUsecase{
		mailer:    mailer,
		repo:      repo,
		validator: validation.NewFieldValidator(nil, validation.WithAnyInterest()),
		audit:     auditLog,
		now:       time.Now,
	}
}

// SendContactMessage validates the contact request, archives it and sends the emails
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest, meta domain.RequestMeta) error {
	req = normalize(req)

	siteID := req.DomainName
	if siteID == "" {
		siteID = unknownSite
	}
	event := audit.Event{
		SiteID:    siteID,
		Email:     req.Email,
		IP:        meta.ClientIP,
		UserAgent: meta.UserAgent,
		RequestID: meta.RequestID,
	}

	if errs := uc.validator.Validate(req.Draft()); len(errs) > 0 {
		event.Event = audit.EventSubmissionRejected
		event.Details = map[string]interface{}{"fields": errs}
		uc.audit.Log(ctx, event)
		return &domain.FieldValidationError{Fields: errs}
	}

	// Check if email service is configured
	if uc.mailer == nil || !uc.mailer.IsConfigured() {
		return domain.ErrMailerNotConfigured
	}

	submission := &domain.ContactSubmission{
		ID:        uuid.NewString(),
		SiteID:    siteID,
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Interest:  req.Interest,
		Message:   req.Message,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		CreatedAt: uc.now().UTC(),
	}

	// The archive is best effort; mail is the delivery that matters
	if uc.repo != nil {
		if err := uc.repo.Create(ctx, submission); err != nil {
			logger.Log.Warn("Failed to archive contact submission", "id", submission.ID, "error", err)
		}
	}

	data := email.ContactEmailData{
		SiteID:      siteID,
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Company:     req.Company,
		Interest:    req.Interest,
		Message:     req.Message,
	}

	if err := uc.mailer.SendOwnerNotification(ctx, data); err != nil {
		return uc.failed(ctx, event, fmt.Errorf("failed to send contact email: %w", err))
	}
	if err := uc.mailer.SendAcknowledgement(ctx, data); err != nil {
		return uc.failed(ctx, event, fmt.Errorf("failed to send contact email: %w", err))
	}

	event.Event = audit.EventSubmissionAccepted
	event.Details = map[string]interface{}{"submission_id": submission.ID, "interest": req.Interest}
	uc.audit.Log(ctx, event)
	return nil
}

func (uc *contactUsecase) failed(ctx context.Context, event audit.Event, err error) error {
	event.Event = audit.EventSubmissionFailed
	event.Details = map[string]interface{}{"error": err.Error()}
	uc.audit.Log(ctx, event)
	return err
}

func normalize(req *domain.ContactRequest) *domain.ContactRequest {
	out := *req
	out.Name = strings.TrimSpace(out.Name)
	out.Email = strings.TrimSpace(out.Email)
	out.Company = strings.TrimSpace(out.Company)
	out.Interest = strings.TrimSpace(out.Interest)
	out.Message = strings.TrimSpace(out.Message)
	out.DomainName = strings.TrimSpace(out.DomainName)
	return &out
}
