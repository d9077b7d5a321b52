package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go-landing-page/config"
	"go-landing-page/internal/delivery/http/middleware"
	v1 "go-landing-page/internal/delivery/http/v1"
	"go-landing-page/internal/domain"
	"go-landing-page/internal/usecase"
	"go-landing-page/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Mocks

type fakeSite struct {
	state usecase.SiteState
}

func (f fakeSite) State() usecase.SiteState {
	return f.state
}

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, endpoint string, payload domain.SubmissionPayload) (*domain.SubmissionResponse, error) {
	args := m.Called(ctx, endpoint, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionResponse), args.Error(1)
}

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest, meta domain.RequestMeta) error {
	return m.Called(ctx, req, meta).Error(0)
}

// Fixtures

func siteConfig() *domain.SiteConfig {
	return &domain.SiteConfig{
		Header:               "Acme Staffing",
		Title:                "Automate sourcing",
		ButtonText:           "Book a call",
		Painpoints:           []string{"Slow follow-up"},
		FAQItems:             []domain.FAQItem{{Question: "Q", Answer: "A"}},
		ContactFormOptions:   []string{"Sourcing", "Other"},
		ContactFormLambdaURL: "https://forms.example.com/submit",
		DomainName:           "example.com",
		ContactPageTitle:     "Contact",
		FooterText:           "Footer",
	}
}

type testServer struct {
	router    *gin.Engine
	forms     *usecase.FormSessions
	submitter *MockSubmitter
	contactUC *MockContactUsecase
}

func newServer(t *testing.T, state usecase.SiteState) *testServer {
	t.Helper()

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	sub := new(MockSubmitter)
	forms := usecase.NewFormSessions(sub, time.Minute, time.Second)
	contactUC := new(MockContactUsecase)

	router := v1.NewRouter(v1.RouterDeps{
		Site:      fakeSite{state: state},
		Forms:     forms,
		Binder:    view.NewBinder(nil),
		Renderer:  renderer,
		ContactUC: contactUC,
		Config: &config.Config{
			AllowedOrigins:            []string{"*"},
			RateLimitWindowSeconds:    60,
			RateLimitGlobalThreshold:  1000,
			RateLimitContactThreshold: 100,
		},
	})
	return &testServer{router: router, forms: forms, submitter: sub, contactUC: contactUC}
}

func ready() usecase.SiteState {
	return usecase.SiteState{Config: siteConfig()}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// csrf performs a GET to obtain the double-submit cookie
func (s *testServer) csrf(t *testing.T) *http.Cookie {
	t.Helper()
	w := s.do(httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CSRFTokenCookieName {
			return c
		}
	}
	t.Fatal("no csrf cookie issued")
	return nil
}

func (s *testServer) postForm(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	cookie := s.csrf(t)
	values.Set(middleware.CSRFTokenFormField, cookie.Value)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	return s.do(req)
}

func (s *testServer) openForm(t *testing.T) string {
	t.Helper()
	ctrl := s.forms.Open(siteConfig())
	return ctrl.ID()
}

// Pages

func TestPagesBeforeConfigIsReady(t *testing.T) {
	t.Run("Config 404 renders the fatal view with no sections", func(t *testing.T) {
		loadErr := &domain.ConfigError{Kind: domain.ConfigNotFound, Location: "https://cdn.example.com/config.json", Detail: "HTTP 404"}
		s := newServer(t, usecase.SiteState{Err: loadErr})

		for _, path := range []string{"/", "/contact"} {
			w := s.do(httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
			assert.Contains(t, w.Body.String(), "Error loading configuration")
			assert.Contains(t, w.Body.String(), "HTTP 404")
			assert.NotContains(t, w.Body.String(), "data-section")
		}
		assert.Equal(t, 0, s.forms.Len(), "no form is mounted on a failed page")
	})

	t.Run("Loading renders the placeholder", func(t *testing.T) {
		s := newServer(t, usecase.SiteState{Loading: true, Err: domain.ErrConfigNotLoaded})

		w := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "Loading...")
		assert.NotContains(t, w.Body.String(), "data-section")
	})
}

func TestLandingPage(t *testing.T) {
	s := newServer(t, ready())

	w := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	for _, name := range view.LandingOrder {
		assert.Contains(t, body, `data-section="`+string(name)+`"`)
	}
	assert.Contains(t, body, "Automate sourcing")
	assert.Equal(t, 1, s.forms.Len(), "the page mounts one form instance")
}

func TestContactPageRoute(t *testing.T) {
	t.Run("Default link serves the contact page", func(t *testing.T) {
		s := newServer(t, ready())
		w := s.do(httptest.NewRequest(http.MethodGet, "/contact", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `data-section="contact"`)
		assert.Contains(t, w.Body.String(), `action="/forms/`)
	})

	t.Run("Configured link replaces the default", func(t *testing.T) {
		cfg := siteConfig()
		cfg.ContactPageLink = "/talk-to-us"
		s := newServer(t, usecase.SiteState{Config: cfg})

		w := s.do(httptest.NewRequest(http.MethodGet, "/talk-to-us", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = s.do(httptest.NewRequest(http.MethodGet, "/contact", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSubmitHTMLForm(t *testing.T) {
	valid := url.Values{
		"name":     {"Jo"},
		"email":    {"jo@example.com"},
		"company":  {"Acme"},
		"interest": {"Sourcing"},
		"message":  {"hi"},
	}

	t.Run("Invalid draft re-renders with field errors and sends nothing", func(t *testing.T) {
		s := newServer(t, ready())
		id := s.openForm(t)

		values := url.Values{"email": {"not-an-email"}, "interest": {"Sourcing"}, "message": {"hi"}}
		w := s.postForm(t, "/forms/"+id, values)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Name is required")
		assert.Contains(t, w.Body.String(), "Invalid email address")
		s.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Valid draft is submitted once and the form resets", func(t *testing.T) {
		s := newServer(t, ready())
		id := s.openForm(t)

		s.submitter.On("Submit", mock.Anything, "https://forms.example.com/submit", domain.SubmissionPayload{
			Name: "Jo", Email: "jo@example.com", Company: "Acme", Interest: "Sourcing", Message: "hi", DomainName: "example.com",
		}).Return(&domain.SubmissionResponse{Status: "success"}, nil).Once()

		w := s.postForm(t, "/forms/"+id, valid)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Form submitted successfully!")
		s.submitter.AssertExpectations(t)

		ctrl, ok := s.forms.Get(id)
		require.True(t, ok)
		assert.True(t, ctrl.State().Draft.IsEmpty())
	})

	t.Run("Failure keeps the draft and shows the reason", func(t *testing.T) {
		s := newServer(t, ready())
		id := s.openForm(t)
		s.submitter.On("Submit", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &domain.SubmissionError{Kind: domain.SubmissionTransport}).Once()

		w := s.postForm(t, "/forms/"+id+"?page=contact", valid)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "An error occurred while submitting the form. Please try again.")
		assert.Contains(t, w.Body.String(), `value="jo@example.com"`)
		assert.Contains(t, w.Body.String(), `data-section="contact"`)
	})

	t.Run("Missing CSRF token is rejected", func(t *testing.T) {
		s := newServer(t, ready())
		id := s.openForm(t)

		req := httptest.NewRequest(http.MethodPost, "/forms/"+id, strings.NewReader(valid.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := s.do(req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		s.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})
}

// JSON form API

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    domain.FormState `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestFormAPI(t *testing.T) {
	s := newServer(t, ready())
	cookie := s.csrf(t)

	jsonReq := func(method, path, body string) *http.Request {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.CSRFTokenHeaderName, cookie.Value)
		req.AddCookie(cookie)
		return req
	}

	w := s.do(jsonReq(http.MethodPost, "/v1/forms", ""))
	require.Equal(t, http.StatusCreated, w.Code)
	opened := decode(t, w).Data
	require.NotEmpty(t, opened.ID)
	assert.Equal(t, domain.StatusIdle, opened.Status)
	assert.Equal(t, []string{"Sourcing", "Other"}, opened.Options)

	t.Run("Get returns the state", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/v1/forms/"+opened.ID, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, opened.ID, decode(t, w).Data.ID)
	})

	t.Run("Submit reports field errors", func(t *testing.T) {
		w := s.do(jsonReq(http.MethodPost, "/v1/forms/"+opened.ID, `{"name":"Jo","email":"jo@example.com","interest":"nope","message":"hi"}`))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.FieldErrors{"interest": "Please select an option"}, decode(t, w).Data.FieldErrors)
	})

	t.Run("Submit reports server rejection", func(t *testing.T) {
		s.submitter.On("Submit", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &domain.SubmissionError{Kind: domain.SubmissionServerRejected, StatusCode: 500, Reason: "Error submitting form"}).Once()

		w := s.do(jsonReq(http.MethodPost, "/v1/forms/"+opened.ID, `{"name":"Jo","email":"jo@example.com","interest":"Other","message":"hi"}`))
		assert.Equal(t, http.StatusOK, w.Code)
		st := decode(t, w).Data
		assert.Equal(t, domain.StatusFailed, st.Status)
		assert.Equal(t, "Error submitting form", st.Reason)
	})

	t.Run("Unknown form is 404", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/v1/forms/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Delete unmounts the form", func(t *testing.T) {
		w := s.do(jsonReq(http.MethodDelete, "/v1/forms/"+opened.ID, ""))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		_, ok := s.forms.Get(opened.ID)
		assert.False(t, ok)
	})
}

func TestFormAPIKeepsPendingDraft(t *testing.T) {
	s := newServer(t, ready())
	cookie := s.csrf(t)
	jsonReq := func(method, path, body string) *http.Request {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.CSRFTokenHeaderName, cookie.Value)
		req.AddCookie(cookie)
		return req
	}

	started := make(chan struct{})
	release := make(chan struct{})
	s.submitter.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, errors.New("offline")).Once()

	w := s.do(jsonReq(http.MethodPost, "/v1/forms", ""))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w).Data.ID

	first := `{"name":"Jo","email":"jo@example.com","interest":"Other","message":"hi"}`
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- s.do(jsonReq(http.MethodPost, "/v1/forms/"+id, first))
	}()
	<-started

	w = s.do(jsonReq(http.MethodPost, "/v1/forms/"+id, `{"name":"Other","email":"o@example.com","interest":"Other","message":"later"}`))
	assert.Equal(t, http.StatusConflict, w.Code)

	close(release)
	w = <-done
	require.Equal(t, http.StatusOK, w.Code)
	st := decode(t, w).Data
	assert.Equal(t, domain.StatusFailed, st.Status)
	assert.Equal(t, "Jo", st.Draft.Name)
	assert.Equal(t, "hi", st.Draft.Message)
	s.submitter.AssertNumberOfCalls(t, "Submit", 1)
}

// Relay

func TestContactRelay(t *testing.T) {
	body := `{"name":"Jo","email":"jo@example.com","company":"Acme","interest":"Sourcing","message":"hi","domainName":"example.com"}`

	post := func(s *testServer) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return s.do(req)
	}

	t.Run("Success answers the form client wire format", func(t *testing.T) {
		s := newServer(t, ready())
		s.contactUC.On("SendContactMessage", mock.Anything, mock.MatchedBy(func(r *domain.ContactRequest) bool {
			return r.Email == "jo@example.com" && r.DomainName == "example.com"
		}), mock.Anything).Return(nil).Once()

		w := post(s)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"success","message":"Form submitted successfully"}`, w.Body.String())
	})

	t.Run("Validation failure lists the fields", func(t *testing.T) {
		s := newServer(t, ready())
		s.contactUC.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.FieldValidationError{Fields: domain.FieldErrors{"name": "Name is required"}})

		w := post(s)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"status":"error","message":"Please correct the highlighted fields","errors":{"name":"Name is required"}}`, w.Body.String())
	})

	t.Run("Unconfigured mail is 503", func(t *testing.T) {
		s := newServer(t, ready())
		s.contactUC.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrMailerNotConfigured)

		assert.Equal(t, http.StatusServiceUnavailable, post(s).Code)
	})

	t.Run("Mail failure is 500", func(t *testing.T) {
		s := newServer(t, ready())
		s.contactUC.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses down"))

		w := post(s)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"status":"error","message":"Error submitting form"}`, w.Body.String())
	})

	t.Run("Malformed body is 400", func(t *testing.T) {
		s := newServer(t, ready())
		req := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := s.do(req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		s.contactUC.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHealth(t *testing.T) {
	s := newServer(t, ready())
	w := s.do(httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"config":"loaded"`)
}
