package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-landing-page/internal/domain"
	"go-landing-page/pkg/logger"
	"go-landing-page/pkg/validation"

	"github.com/google/uuid"
)

// DefaultSubmitTimeout bounds one submission request
const DefaultSubmitTimeout = 15 * time.Second

// ContactFormController owns the lifecycle of one contact form instance:
// draft edits, validation, the single in-flight submission and its outcome.
//
// Status moves idle -> pending -> succeeded|failed and only this type moves it.
// While pending, further submits are rejected with domain.ErrSubmissionInFlight,
// so at most one request per instance is ever outstanding.
type ContactFormController struct {
	id        string
	endpoint  string
	siteID    string
	options   []string
	validator *validation.FieldValidator
	submitter domain.Submitter
	timeout   time.Duration
	onSuccess func(domain.ContactDraft)

	// ctx is cancelled by Close and aborts any in-flight request
	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	draft       domain.ContactDraft
	status      domain.SubmissionStatus
	reason      string
	fieldErrors domain.FieldErrors
	submitted   bool
	closed      bool
}

// ContactFormOption configures a ContactFormController
type ContactFormOption func(*ContactFormController)

// WithFormID overrides the generated instance id
func WithFormID(id string) ContactFormOption {
	return func(c *ContactFormController) {
		if id != "" {
			c.id = id
		}
	}
}

// WithSubmitTimeout bounds each submission request
func WithSubmitTimeout(d time.Duration) ContactFormOption {
	return func(c *ContactFormController) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSuccessCallback registers fn to run once per successful submission,
// with the draft that was sent. It runs outside the controller's lock.
func WithSuccessCallback(fn func(domain.ContactDraft)) ContactFormOption {
	return func(c *ContactFormController) {
		c.onSuccess = fn
	}
}

// NewContactFormController mounts a form bound to the site configuration.
// The configuration is read, never modified.
func NewContactFormController(cfg *domain.SiteConfig, submitter domain.Submitter, opts ...ContactFormOption) *ContactFormController {
	ctx, cancel := context.WithCancel(context.Background())
	options := cfg.InterestOptions()

	c := &ContactFormController{
		id:        uuid.NewString(),
		endpoint:  cfg.ContactFormLambdaURL,
		siteID:    cfg.DomainName,
		options:   options,
		validator: validation.NewFieldValidator(options),
		submitter: submitter,
		timeout:   DefaultSubmitTimeout,
		ctx:       ctx,
		cancel:    cancel,
		status:    domain.StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the form instance id
func (c *ContactFormController) ID() string {
	return c.id
}

// Set edits one draft field by its wire name.
// The draft is frozen while a submission is pending.
func (c *ContactFormController) Set(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return err
	}

	switch field {
	case domain.FieldName:
		c.draft.Name = value
	case domain.FieldEmail:
		c.draft.Email = value
	case domain.FieldCompany:
		c.draft.Company = value
	case domain.FieldInterest:
		c.draft.Interest = value
	case domain.FieldMessage:
		c.draft.Message = value
	default:
		return domain.ErrUnknownField
	}
	return nil
}

// Update replaces the whole draft. Like Set, it is rejected while pending.
func (c *ContactFormController) Update(draft domain.ContactDraft) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return err
	}
	c.draft = draft
	return nil
}

func (c *ContactFormController) editableLocked() error {
	if c.closed {
		return domain.ErrFormClosed
	}
	if c.status == domain.StatusPending {
		return domain.ErrSubmissionInFlight
	}
	return nil
}

// Reset starts a fresh draft and returns to idle. It is a no-op while pending.
func (c *ContactFormController) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.ErrFormClosed
	}
	if c.status == domain.StatusPending {
		return domain.ErrSubmissionInFlight
	}
	c.draft = domain.ContactDraft{}
	c.fieldErrors = nil
	c.status = domain.StatusIdle
	c.reason = ""
	c.submitted = false
	return nil
}

// State returns a snapshot for the view
func (c *ContactFormController) State() domain.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Submit validates the current draft and, if it is clean, sends it.
//
// Validation failures and submission failures are reported in the returned state,
// never as errors. The only errors are the rejections ErrSubmissionInFlight and
// ErrFormClosed, which leave the state untouched and issue no request.
func (c *ContactFormController) Submit(ctx context.Context) (domain.FormState, error) {
	c.mu.Lock()
	if c.closed {
		st := c.stateLocked()
		c.mu.Unlock()
		return st, domain.ErrFormClosed
	}
	if c.status == domain.StatusPending {
		st := c.stateLocked()
		c.mu.Unlock()
		return st, domain.ErrSubmissionInFlight
	}

	c.fieldErrors = c.validator.Validate(c.draft)
	if len(c.fieldErrors) > 0 {
		c.status = domain.StatusIdle
		c.reason = ""
		st := c.stateLocked()
		c.mu.Unlock()
		return st, nil
	}

	sent := c.draft
	payload := domain.NewSubmissionPayload(sent, c.siteID)
	c.status = domain.StatusPending
	c.reason = ""
	c.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	_, err := c.submitter.Submit(reqCtx, c.endpoint, payload)

	c.mu.Lock()
	if c.closed {
		// The instance went away mid-flight; its state is no longer observed
		st := c.stateLocked()
		c.mu.Unlock()
		return st, domain.ErrFormClosed
	}

	succeeded := err == nil
	if succeeded {
		c.status = domain.StatusSucceeded
		c.draft = domain.ContactDraft{}
		c.submitted = true
	} else {
		c.status = domain.StatusFailed
		c.reason = failureReason(err)
		logger.Log.Warn("contact form submission failed",
			"form_id", c.id,
			"site", c.siteID,
			"error", err,
		)
	}
	st := c.stateLocked()
	onSuccess := c.onSuccess
	c.mu.Unlock()

	if succeeded && onSuccess != nil {
		onSuccess(sent)
	}
	return st, nil
}

// Close unmounts the form: an in-flight request is aborted and its outcome discarded.
// Close is idempotent.
func (c *ContactFormController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.status == domain.StatusPending {
		c.status = domain.StatusIdle
	}
	c.cancel()
}

// Closed reports whether Close has run
func (c *ContactFormController) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *ContactFormController) pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status == domain.StatusPending
}

func (c *ContactFormController) stateLocked() domain.FormState {
	var errs domain.FieldErrors
	if len(c.fieldErrors) > 0 {
		errs = make(domain.FieldErrors, len(c.fieldErrors))
		for k, v := range c.fieldErrors {
			errs[k] = v
		}
	}
	return domain.FormState{
		ID:          c.id,
		Status:      c.status,
		Reason:      c.reason,
		Draft:       c.draft,
		FieldErrors: errs,
		Options:     append([]string(nil), c.options...),
		CanSubmit:   !c.closed && c.status != domain.StatusPending,
		Submitted:   c.submitted,
	}
}

// failureReason maps a submitter error to the single message shown to the user
func failureReason(err error) string {
	var subErr *domain.SubmissionError
	if errors.As(err, &subErr) && subErr.Kind == domain.SubmissionServerRejected {
		if subErr.Reason != "" {
			return subErr.Reason
		}
		return domain.GenericSubmissionFailure
	}
	return domain.TransportFailureMessage
}
