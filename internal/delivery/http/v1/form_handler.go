package v1

import (
	"errors"
	"net/http"

	"go-landing-page/internal/delivery/http/response"
	"go-landing-page/internal/domain"
	"go-landing-page/internal/usecase"
	"go-landing-page/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	site  SiteProvider
	forms *usecase.FormSessions
}

// NewFormHandler registers the JSON form-instance routes used by script clients
func NewFormHandler(public *gin.RouterGroup, site SiteProvider, forms *usecase.FormSessions) {
	handler := &FormHandler{
		site:  site,
		forms: forms,
	}

	public.POST("/forms", handler.Open)
	public.GET("/forms/:id", handler.Get)
	public.POST("/forms/:id", handler.Submit)
	public.DELETE("/forms/:id", handler.Close)
}

// Open mounts a new form instance
func (h *FormHandler) Open(c *gin.Context) {
	st := h.site.State()
	if st.Loading {
		c.Error(apperror.Unavailable("Site configuration is still loading", nil))
		return
	}
	if st.Err != nil {
		c.Error(apperror.Unavailable("Site configuration failed to load", st.Err))
		return
	}

	ctrl := h.forms.Open(st.Config)
	response.Success(c, http.StatusCreated, "Form opened", ctrl.State())
}

// Get returns the current state of a form instance
func (h *FormHandler) Get(c *gin.Context) {
	ctrl, ok := h.forms.Get(c.Param("id"))
	if !ok {
		c.Error(apperror.NotFound("Form not found"))
		return
	}
	response.Success(c, http.StatusOK, "Form state", ctrl.State())
}

// Submit replaces the draft with the JSON body and submits it
func (h *FormHandler) Submit(c *gin.Context) {
	ctrl, ok := h.forms.Get(c.Param("id"))
	if !ok {
		c.Error(apperror.NotFound("Form not found"))
		return
	}

	var draft domain.ContactDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	var state domain.FormState
	err := ctrl.Update(draft)
	if err == nil {
		state, err = ctrl.Submit(c.Request.Context())
	} else {
		state = ctrl.State()
	}
	switch {
	case errors.Is(err, domain.ErrSubmissionInFlight):
		c.Error(apperror.Conflict("A submission is already in progress", nil).WithDetails(state))
		return
	case errors.Is(err, domain.ErrFormClosed):
		c.Error(apperror.New(http.StatusGone, "Form is closed", err))
		return
	}

	response.Success(c, http.StatusOK, "Form submitted", state)
}

// Close unmounts a form instance, aborting an in-flight submission
func (h *FormHandler) Close(c *gin.Context) {
	h.forms.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}
