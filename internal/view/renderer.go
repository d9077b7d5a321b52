package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"go-landing-page/internal/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Template names understood by Renderer and by gin's HTML renderer
const (
	TemplatePage    = "page"
	TemplateError   = "error"
	TemplateLoading = "loading"
)

// Page is a full HTML document built from bound sections
type Page struct {
	Title       string
	Description string
	Sections    []Section
}

// ErrorPage is the fatal view shown when the configuration cannot be loaded.
// It never carries sections.
type ErrorPage struct {
	Message string
}

// Renderer holds the parsed page templates
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates once
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Templates exposes the template set for gin's SetHTMLTemplate
func (r *Renderer) Templates() *template.Template {
	return r.templates
}

func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	return r.templates.ExecuteTemplate(w, TemplatePage, page)
}

func (r *Renderer) RenderError(w io.Writer, page ErrorPage) error {
	return r.templates.ExecuteTemplate(w, TemplateError, page)
}

func (r *Renderer) RenderLoading(w io.Writer) error {
	return r.templates.ExecuteTemplate(w, TemplateLoading, nil)
}

// LandingPage assembles the document for the landing page
func LandingPage(cfg *domain.SiteConfig, sections []Section) Page {
	return Page{
		Title:       cfg.SEOTitle,
		Description: cfg.SEODescription,
		Sections:    sections,
	}
}

// ContactPage assembles the document for the standalone contact page
func ContactPage(cfg *domain.SiteConfig, sections []Section) Page {
	title := cfg.ContactPageTitle
	if cfg.SEOTitle != "" {
		title = fmt.Sprintf("%s | %s", cfg.ContactPageTitle, cfg.SEOTitle)
	}
	return Page{
		Title:       title,
		Description: cfg.ContactPageBlurb,
		Sections:    sections,
	}
}

// NewErrorPage describes a load failure for the fatal view
func NewErrorPage(err error) ErrorPage {
	if err == nil {
		return ErrorPage{Message: "unknown error"}
	}
	return ErrorPage{Message: err.Error()}
}
