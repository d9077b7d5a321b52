package domain

import (
	"errors"
	"fmt"
)

// DefaultContactPageLink is used when the document does not name a contact page
const DefaultContactPageLink = "/contact"

// FAQItem is one question/answer pair of the FAQ section
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Person is a small avatar record shown next to the secondary call-to-action
type Person struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// SiteConfig is the single document that drives every section of the page.
// Once loaded it is never mutated; slice accessors hand out copies.
type SiteConfig struct {
	// Header bar
	Header string `json:"header"`
	Icon   string `json:"icon"`

	// Hero
	Title          string `json:"title"`
	Description    string `json:"description"`
	ButtonText     string `json:"buttonText"`
	HeroButtonLink string `json:"heroButtonLink"`
	UserReviews    string `json:"userReviews"`
	VideoURL       string `json:"videoUrl"`
	ImageURL       string `json:"imageUrl"`

	// Pain points + embedded contact form
	PainpointsTitle string   `json:"painpointsTitle"`
	Painpoints      []string `json:"painpoints"`
	ShortParagraph  string   `json:"shortParagraph"`

	// Results showcase
	ResultsTitle string `json:"theAutomationSpeaksTitle"`
	ResultsText  string `json:"theAutomationSpeaksText"`
	ResultsImage string `json:"theAutomationSpeaksImage"`

	// How it works
	HowItWorksTitle       string   `json:"howItWorksTitle"`
	HowItWorksDescription string   `json:"howItWorksDescription"`
	HowItWorksSteps       []string `json:"howItWorksSteps"`

	// Social proof
	SocialValidationTitle string `json:"socialValidationTitle"`
	SocialValidationText  string `json:"socialValidationText"`

	// FAQ
	FAQTitle string    `json:"faqTitle"`
	FAQItems []FAQItem `json:"faqItems"`

	// Secondary call-to-action
	SecondCTATitle       string   `json:"secondCtaTitle"`
	SecondCTATestimonial string   `json:"secondCtaTestimonial"`
	SecondCTAButtonText  string   `json:"secondCtaButtonText"`
	SecondCTAButtonLink  string   `json:"secondCtaButtonLink"`
	SecondCTAUsers       []Person `json:"secondCtaUsers"`

	// Contact form
	ContactFormOptions   []string `json:"contactFormOptions"`
	ContactFormLambdaURL string   `json:"contactFormLambdaURL"`
	DomainName           string   `json:"domainName"`

	// Contact page
	ContactPageLink   string `json:"contactPageLink"`
	ContactPageTitle  string `json:"contactPageTitle"`
	ContactPageBlurb  string `json:"contactPageBlurb"`
	ContactFormTitle  string `json:"contactFormTitle"`
	ScheduleCallTitle string `json:"scheduleCallTitle"`
	CalendlyURL       string `json:"calendlyUrl"`

	// Footer
	FooterText string `json:"footerText"`

	// Document head
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
}

// MissingFields lists the required-by-convention fields that are absent.
// A missing field renders as empty; the list only feeds a startup warning.
func (c *SiteConfig) MissingFields() []string {
	var missing []string
	check := func(name string, empty bool) {
		if empty {
			missing = append(missing, name)
		}
	}
	check("header", c.Header == "")
	check("title", c.Title == "")
	check("description", c.Description == "")
	check("buttonText", c.ButtonText == "")
	check("painpoints", len(c.Painpoints) == 0)
	check("faqItems", len(c.FAQItems) == 0)
	check("contactFormOptions", len(c.ContactFormOptions) == 0)
	check("contactFormLambdaURL", c.ContactFormLambdaURL == "")
	check("domainName", c.DomainName == "")
	check("footerText", c.FooterText == "")
	return missing
}

// InterestOptions returns a copy of the allowed contact form interests
func (c *SiteConfig) InterestOptions() []string {
	return append([]string(nil), c.ContactFormOptions...)
}

// ContactLink returns the path of the standalone contact page
func (c *SiteConfig) ContactLink() string {
	if c.ContactPageLink != "" {
		return c.ContactPageLink
	}
	return DefaultContactPageLink
}

// ConfigErrorKind classifies a failed configuration load
type ConfigErrorKind string

const (
	ConfigNotFound    ConfigErrorKind = "not_found"
	ConfigMalformed   ConfigErrorKind = "malformed"
	ConfigUnavailable ConfigErrorKind = "unavailable"
)

// ErrConfigNotLoaded is returned while the startup load is still running
var ErrConfigNotLoaded = errors.New("site configuration is still loading")

// ConfigError is fatal to the page: it is rendered as a full-page error and never retried.
type ConfigError struct {
	Kind     ConfigErrorKind
	Location string
	Detail   string
	Err      error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("site config %s (%s)", e.Kind, e.Location)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is a ConfigError of the given kind
func IsConfigError(err error, kind ConfigErrorKind) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr) && cfgErr.Kind == kind
}
