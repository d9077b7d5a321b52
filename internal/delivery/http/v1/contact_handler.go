package v1

import (
	"errors"
	"net/http"

	"go-landing-page/internal/delivery/http/middleware"
	"go-landing-page/internal/delivery/http/response"
	"go-landing-page/internal/domain"
	"go-landing-page/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the submission relay. It answers the wire format
// form clients expect ({"status": ..., "message": ...}) rather than the
// envelope of the other API routes.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, handlers ...gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", append(handlers, handler.SubmitContact)...)
}

// SubmitContact validates and relays one contact form submission
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Submission(c, http.StatusBadRequest, statusError, "Invalid request body", nil)
		return
	}

	meta := domain.RequestMeta{
		RequestID: middleware.GetRequestID(c),
		ClientIP:  c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}

	err := h.contactUC.SendContactMessage(c.Request.Context(), &req, meta)

	var fieldErr *domain.FieldValidationError
	switch {
	case err == nil:
		response.Submission(c, http.StatusOK, statusSuccess, "Form submitted successfully", nil)
	case errors.As(err, &fieldErr):
		response.Submission(c, http.StatusBadRequest, statusError, "Please correct the highlighted fields", fieldErr.Fields)
	case errors.Is(err, domain.ErrMailerNotConfigured):
		response.Submission(c, http.StatusServiceUnavailable, statusError, "Contact service temporarily unavailable", nil)
	default:
		logger.Log.Error("Contact relay failed", "request_id", meta.RequestID, "error", err)
		response.Submission(c, http.StatusInternalServerError, statusError, "Error submitting form", nil)
	}
}
