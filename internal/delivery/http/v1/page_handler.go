package v1

import (
	"errors"
	"net/http"

	"go-landing-page/internal/delivery/http/middleware"
	"go-landing-page/internal/delivery/http/response"
	"go-landing-page/internal/domain"
	"go-landing-page/internal/usecase"
	"go-landing-page/internal/view"

	"github.com/gin-gonic/gin"
)

// SiteProvider exposes the result of the startup configuration load
type SiteProvider interface {
	State() usecase.SiteState
}

const (
	pageLanding = "landing"
	pageContact = "contact"

	// loadingRetrySeconds is sent as Retry-After on the loading placeholder
	loadingRetrySeconds = "2"
)

type PageHandler struct {
	site   SiteProvider
	forms  *usecase.FormSessions
	binder *view.Binder
}

// NewPageHandler registers the server-rendered pages.
// The contact page lives at the configured contactPageLink, which is only
// known after the configuration loads, so it is served from NoRoute.
func NewPageHandler(r *gin.Engine, site SiteProvider, forms *usecase.FormSessions, binder *view.Binder) {
	handler := &PageHandler{
		site:   site,
		forms:  forms,
		binder: binder,
	}

	r.GET("/", handler.Landing)
	r.POST("/forms/:id", handler.SubmitForm)
	r.NoRoute(handler.Fallback)
}

// Landing renders every landing section with a freshly mounted contact form
func (h *PageHandler) Landing(c *gin.Context) {
	cfg, ok := h.config(c)
	if !ok {
		return
	}
	ctrl := h.forms.Open(cfg)
	h.render(c, http.StatusOK, cfg, pageLanding, ctrl.State())
}

// Contact renders the standalone contact page
func (h *PageHandler) Contact(c *gin.Context) {
	cfg, ok := h.config(c)
	if !ok {
		return
	}
	ctrl := h.forms.Open(cfg)
	h.render(c, http.StatusOK, cfg, pageContact, ctrl.State())
}

// SubmitForm handles the HTML form post of one form instance and re-renders
// the page it came from with the resulting state.
func (h *PageHandler) SubmitForm(c *gin.Context) {
	cfg, ok := h.config(c)
	if !ok {
		return
	}

	draft := domain.ContactDraft{
		Name:     c.PostForm(domain.FieldName),
		Email:    c.PostForm(domain.FieldEmail),
		Company:  c.PostForm(domain.FieldCompany),
		Interest: c.PostForm(domain.FieldInterest),
		Message:  c.PostForm(domain.FieldMessage),
	}

	ctrl, found := h.forms.Get(c.Param("id"))
	if !found {
		// The instance expired; carry the posted draft over to a new one
		ctrl = h.forms.Open(cfg)
	}

	state, err := h.submit(c, cfg, ctrl, draft)
	code := http.StatusOK
	switch {
	case errors.Is(err, domain.ErrSubmissionInFlight):
		code = http.StatusConflict
	case errors.Is(err, domain.ErrFormClosed):
		code = http.StatusGone
	}

	page := pageLanding
	if c.Query("page") == pageContact {
		page = pageContact
	}
	h.render(c, code, cfg, page, state)
}

// submit applies the posted draft and submits it. A draft posted while the
// instance is pending is dropped and the pending state is returned as is.
func (h *PageHandler) submit(c *gin.Context, cfg *domain.SiteConfig, ctrl *usecase.ContactFormController, draft domain.ContactDraft) (domain.FormState, error) {
	err := ctrl.Update(draft)
	if errors.Is(err, domain.ErrFormClosed) {
		ctrl = h.forms.Open(cfg)
		err = ctrl.Update(draft)
	}
	if err != nil {
		return ctrl.State(), err
	}
	return ctrl.Submit(c.Request.Context())
}

// Fallback serves the contact page link and answers 404 for everything else
func (h *PageHandler) Fallback(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		st := h.site.State()
		if st.Loading || st.Err != nil || c.Request.URL.Path == st.Config.ContactLink() {
			h.Contact(c)
			return
		}
	}
	response.Error(c, http.StatusNotFound, "Not found", nil)
}

// config returns the loaded configuration, or renders the loading placeholder
// or the fatal error view and reports false.
func (h *PageHandler) config(c *gin.Context) (*domain.SiteConfig, bool) {
	st := h.site.State()
	switch {
	case st.Loading:
		c.Header("Retry-After", loadingRetrySeconds)
		c.HTML(http.StatusServiceUnavailable, view.TemplateLoading, nil)
		return nil, false
	case st.Err != nil:
		c.HTML(http.StatusServiceUnavailable, view.TemplateError, view.NewErrorPage(st.Err))
		return nil, false
	}
	return st.Config, true
}

func (h *PageHandler) render(c *gin.Context, code int, cfg *domain.SiteConfig, page string, state domain.FormState) {
	form := view.NewFormView(state, middleware.CSRFToken(c))

	if page == pageContact {
		form.Action += "?page=" + pageContact
		c.HTML(code, view.TemplatePage, view.ContactPage(cfg, h.binder.BindContactPage(cfg, form)))
		return
	}
	c.HTML(code, view.TemplatePage, view.LandingPage(cfg, h.binder.Bind(cfg, form)))
}
