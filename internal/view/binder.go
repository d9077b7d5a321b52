package view

import (
	"html/template"

	"go-landing-page/internal/domain"
)

// Binder maps a site configuration to ordered page sections.
// Every section builder reads only its own slice of the configuration.
type Binder struct {
	markup MarkupPolicy
}

// NewBinder creates a binder; a nil policy means TrustedMarkup
func NewBinder(markup MarkupPolicy) *Binder {
	if markup == nil {
		markup = TrustedMarkup{}
	}
	return &Binder{markup: markup}
}

// Bind returns the landing page sections in LandingOrder.
// form is the live contact form embedded in the pain-points section.
func (b *Binder) Bind(cfg *domain.SiteConfig, form FormView) []Section {
	return []Section{
		{Name: SectionHeader, Data: b.header(cfg)},
		{Name: SectionHero, Data: b.hero(cfg)},
		{Name: SectionPainPoints, Data: b.painPoints(cfg, form)},
		{Name: SectionResults, Data: b.results(cfg)},
		{Name: SectionHowItWorks, Data: b.howItWorks(cfg)},
		{Name: SectionSocialProof, Data: b.socialProof(cfg)},
		{Name: SectionFAQ, Data: b.faq(cfg)},
		{Name: SectionSecondaryCTA, Data: b.secondaryCTA(cfg)},
		{Name: SectionFooter, Data: b.footer(cfg)},
	}
}

// BindContactPage returns the sections of the standalone contact page
func (b *Binder) BindContactPage(cfg *domain.SiteConfig, form FormView) []Section {
	return []Section{
		{Name: SectionHeader, Data: b.header(cfg)},
		{Name: SectionContact, Data: b.contact(cfg, form)},
		{Name: SectionFooter, Data: b.footer(cfg)},
	}
}

func (b *Binder) header(cfg *domain.SiteConfig) HeaderData {
	return HeaderData{Header: cfg.Header, Icon: cfg.Icon}
}

func (b *Binder) hero(cfg *domain.SiteConfig) HeroData {
	link := cfg.HeroButtonLink
	if link == "" {
		link = cfg.ContactLink()
	}
	return HeroData{
		Title:       b.markup.HTML(cfg.Title),
		Description: b.markup.HTML(cfg.Description),
		ButtonText:  cfg.ButtonText,
		ButtonLink:  link,
		UserReviews: b.markup.HTML(cfg.UserReviews),
		VideoURL:    cfg.VideoURL,
		ImageURL:    cfg.ImageURL,
	}
}

func (b *Binder) painPoints(cfg *domain.SiteConfig, form FormView) PainPointsData {
	return PainPointsData{
		Title:          b.markup.HTML(cfg.PainpointsTitle),
		Points:         b.fragments(cfg.Painpoints),
		ShortParagraph: b.markup.HTML(cfg.ShortParagraph),
		Form:           form,
	}
}

func (b *Binder) results(cfg *domain.SiteConfig) ResultsData {
	return ResultsData{
		Title: b.markup.HTML(cfg.ResultsTitle),
		Text:  b.markup.HTML(cfg.ResultsText),
		Image: cfg.ResultsImage,
	}
}

func (b *Binder) howItWorks(cfg *domain.SiteConfig) HowItWorksData {
	return HowItWorksData{
		Title:       b.markup.HTML(cfg.HowItWorksTitle),
		Description: b.markup.HTML(cfg.HowItWorksDescription),
		Steps:       b.fragments(cfg.HowItWorksSteps),
	}
}

func (b *Binder) socialProof(cfg *domain.SiteConfig) SocialProofData {
	return SocialProofData{
		Title: b.markup.HTML(cfg.SocialValidationTitle),
		Text:  b.markup.HTML(cfg.SocialValidationText),
	}
}

func (b *Binder) faq(cfg *domain.SiteConfig) FAQData {
	items := make([]FAQEntry, 0, len(cfg.FAQItems))
	for _, item := range cfg.FAQItems {
		items = append(items, FAQEntry{
			Question: b.markup.HTML(item.Question),
			Answer:   b.markup.HTML(item.Answer),
		})
	}
	return FAQData{Title: b.markup.HTML(cfg.FAQTitle), Items: items}
}

func (b *Binder) secondaryCTA(cfg *domain.SiteConfig) SecondaryCTAData {
	link := cfg.SecondCTAButtonLink
	if link == "" {
		link = cfg.ContactLink()
	}
	return SecondaryCTAData{
		Title:       b.markup.HTML(cfg.SecondCTATitle),
		Testimonial: b.markup.HTML(cfg.SecondCTATestimonial),
		ButtonText:  b.markup.HTML(cfg.SecondCTAButtonText),
		ButtonLink:  link,
		Users:       append([]domain.Person(nil), cfg.SecondCTAUsers...),
	}
}

func (b *Binder) footer(cfg *domain.SiteConfig) FooterData {
	return FooterData{Text: b.markup.HTML(cfg.FooterText)}
}

func (b *Binder) contact(cfg *domain.SiteConfig, form FormView) ContactData {
	return ContactData{
		Title:             cfg.ContactPageTitle,
		Blurb:             cfg.ContactPageBlurb,
		FormTitle:         cfg.ContactFormTitle,
		ScheduleCallTitle: cfg.ScheduleCallTitle,
		CalendlyURL:       cfg.CalendlyURL,
		Form:              form,
	}
}

func (b *Binder) fragments(raw []string) []template.HTML {
	out := make([]template.HTML, 0, len(raw))
	for _, r := range raw {
		out = append(out, b.markup.HTML(r))
	}
	return out
}
