package domain

import (
	"context"
	"errors"
	"time"
)

// Contact form field names, shared by the form markup, the validator and the wire payload
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldCompany  = "company"
	FieldInterest = "interest"
	FieldMessage  = "message"
)

// ContactDraft is the in-progress input of one contact form instance
type ContactDraft struct {
	Name     string `json:"name" validate:"not_blank"`
	Email    string `json:"email" validate:"not_blank,email_shape"`
	Company  string `json:"company"`
	Interest string `json:"interest" validate:"interest_option"`
	Message  string `json:"message" validate:"not_blank"`
}

// IsEmpty reports whether the draft is in its initial shape
func (d ContactDraft) IsEmpty() bool {
	return d == ContactDraft{}
}

// FieldErrors maps a draft field name to a human readable message.
// An empty set means the draft can be submitted.
type FieldErrors map[string]string

// SubmissionStatus is the lifecycle state of one contact form instance
type SubmissionStatus string

const (
	StatusIdle      SubmissionStatus = "idle"
	StatusPending   SubmissionStatus = "pending"
	StatusSucceeded SubmissionStatus = "succeeded"
	StatusFailed    SubmissionStatus = "failed"
)

// Messages surfaced on a failed submission
const (
	GenericSubmissionFailure = "form submission failed"
	TransportFailureMessage  = "An error occurred while submitting the form. Please try again."
)

var (
	// ErrSubmissionInFlight rejects a submit while the same form is pending
	ErrSubmissionInFlight = errors.New("contact form submission already in flight")
	// ErrFormClosed rejects use of a form whose instance has gone away
	ErrFormClosed = errors.New("contact form is closed")
	// ErrUnknownField rejects edits of a field the draft does not have
	ErrUnknownField = errors.New("unknown contact form field")
)

// FormState is a read-only snapshot of a contact form instance for the view
type FormState struct {
	ID          string           `json:"id"`
	Status      SubmissionStatus `json:"status"`
	Reason      string           `json:"reason,omitempty"`
	Draft       ContactDraft     `json:"draft"`
	FieldErrors FieldErrors      `json:"fieldErrors,omitempty"`
	Options     []string         `json:"options"`
	CanSubmit   bool             `json:"canSubmit"`
	Submitted   bool             `json:"submitted"`
}

// SubmissionPayload is the JSON body posted to the submission endpoint
type SubmissionPayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Company    string `json:"company"`
	Interest   string `json:"interest"`
	Message    string `json:"message"`
	DomainName string `json:"domainName"`
}

// NewSubmissionPayload stamps a draft with the site identifier
func NewSubmissionPayload(d ContactDraft, domainName string) SubmissionPayload {
	return SubmissionPayload{
		Name:       d.Name,
		Email:      d.Email,
		Company:    d.Company,
		Interest:   d.Interest,
		Message:    d.Message,
		DomainName: domainName,
	}
}

// SubmissionResponse is the JSON body returned by the submission endpoint
type SubmissionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SubmissionSucceeded is the only response status treated as success
const SubmissionSucceeded = "success"

// SubmissionErrorKind classifies a failed submission
type SubmissionErrorKind string

const (
	SubmissionServerRejected SubmissionErrorKind = "server_rejected"
	SubmissionTransport      SubmissionErrorKind = "transport"
)

// SubmissionError is returned by a Submitter when the submission did not succeed
type SubmissionError struct {
	Kind       SubmissionErrorKind
	StatusCode int
	Reason     string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Reason + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Reason
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Submitter sends one contact form payload to a submission endpoint
type Submitter interface {
	Submit(ctx context.Context, endpoint string, payload SubmissionPayload) (*SubmissionResponse, error)
}

// ContactRequest is the body accepted by the relay endpoint
type ContactRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Company    string `json:"company"`
	Interest   string `json:"interest"`
	Message    string `json:"message"`
	DomainName string `json:"domainName"`
}

// Draft converts the relay request into the shape the validator checks
func (r ContactRequest) Draft() ContactDraft {
	return ContactDraft{
		Name:     r.Name,
		Email:    r.Email,
		Company:  r.Company,
		Interest: r.Interest,
		Message:  r.Message,
	}
}

// RequestMeta carries request details the relay records alongside a submission
type RequestMeta struct {
	RequestID string
	ClientIP  string
	UserAgent string
}

// ContactSubmission is an archived relay submission
type ContactSubmission struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"siteId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Interest  string    `json:"interest"`
	Message   string    `json:"message"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmissionRepository archives relay submissions
type SubmissionRepository interface {
	Create(ctx context.Context, s *ContactSubmission) error
}

// FieldValidationError is returned by the relay when the request fails validation
type FieldValidationError struct {
	Fields FieldErrors
}

func (e *FieldValidationError) Error() string {
	return "contact request failed validation"
}

// ErrMailerNotConfigured signals that the relay cannot deliver mail
var ErrMailerNotConfigured = errors.New("email service is not configured")

// ContactUsecase defines the relay side of contact form processing
type ContactUsecase interface {
	// SendContactMessage validates, archives and mails a contact submission
	SendContactMessage(ctx context.Context, req *ContactRequest, meta RequestMeta) error
}
