package view

import (
	"html/template"

	"go-landing-page/internal/domain"
)

// SectionName identifies one region of a page
type SectionName string

const (
	SectionHeader       SectionName = "header"
	SectionHero         SectionName = "hero"
	SectionPainPoints   SectionName = "pain-points"
	SectionResults      SectionName = "results-showcase"
	SectionHowItWorks   SectionName = "how-it-works"
	SectionSocialProof  SectionName = "social-proof"
	SectionFAQ          SectionName = "faq"
	SectionSecondaryCTA SectionName = "secondary-cta"
	SectionFooter       SectionName = "footer"
	SectionContact      SectionName = "contact"
)

// LandingOrder is the fixed top-to-bottom order of the landing page
var LandingOrder = []SectionName{
	SectionHeader,
	SectionHero,
	SectionPainPoints,
	SectionResults,
	SectionHowItWorks,
	SectionSocialProof,
	SectionFAQ,
	SectionSecondaryCTA,
	SectionFooter,
}

// ContactOrder is the order of the standalone contact page
var ContactOrder = []SectionName{
	SectionHeader,
	SectionContact,
	SectionFooter,
}

// Section is one bound page region. Data holds the section's own view model
// (HeaderData, HeroData, ...) and nothing from any other section.
type Section struct {
	Name SectionName
	Data interface{}
}

type HeaderData struct {
	Header string
	Icon   string
}

type HeroData struct {
	Title       template.HTML
	Description template.HTML
	ButtonText  string
	ButtonLink  string
	UserReviews template.HTML
	VideoURL    string
	ImageURL    string
}

type PainPointsData struct {
	Title          template.HTML
	Points         []template.HTML
	ShortParagraph template.HTML
	Form           FormView
}

type ResultsData struct {
	Title template.HTML
	Text  template.HTML
	Image string
}

type HowItWorksData struct {
	Title       template.HTML
	Description template.HTML
	Steps       []template.HTML
}

type SocialProofData struct {
	Title template.HTML
	Text  template.HTML
}

type FAQEntry struct {
	Question template.HTML
	Answer   template.HTML
}

type FAQData struct {
	Title template.HTML
	Items []FAQEntry
}

type SecondaryCTAData struct {
	Title       template.HTML
	Testimonial template.HTML
	ButtonText  template.HTML
	ButtonLink  string
	Users       []domain.Person
}

type FooterData struct {
	Text template.HTML
}

type ContactData struct {
	Title             string
	Blurb             string
	FormTitle         string
	ScheduleCallTitle string
	CalendlyURL       string
	Form              FormView
}

// FormView is what a template needs to draw one contact form instance
type FormView struct {
	ID        string
	Action    string
	CSRFToken string
	State     domain.FormState
}

// NewFormView wraps a controller snapshot for rendering
func NewFormView(state domain.FormState, csrfToken string) FormView {
	return FormView{
		ID:        state.ID,
		Action:    "/forms/" + state.ID,
		CSRFToken: csrfToken,
		State:     state,
	}
}

// Pending reports whether the submit control should be disabled
func (f FormView) Pending() bool {
	return f.State.Status == domain.StatusPending
}

// Failed reports whether the last submission failed
func (f FormView) Failed() bool {
	return f.State.Status == domain.StatusFailed
}

// Succeeded reports whether the last submission went through
func (f FormView) Succeeded() bool {
	return f.State.Status == domain.StatusSucceeded
}

// FieldError returns the message for one field, or ""
func (f FormView) FieldError(field string) string {
	return f.State.FieldErrors[field]
}
