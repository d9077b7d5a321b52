package view

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// MarkupPolicy turns a configuration content field into an HTML fragment
type MarkupPolicy interface {
	HTML(raw string) template.HTML
}

// TrustedMarkup emits content fields verbatim. The configuration document is
// operator-authored and its inline markup is rendered as-is.
type TrustedMarkup struct{}

func (TrustedMarkup) HTML(raw string) template.HTML {
	return template.HTML(raw)
}

// SanitizedMarkup runs content fields through a bluemonday UGC policy first
type SanitizedMarkup struct{}

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

func (SanitizedMarkup) HTML(raw string) template.HTML {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return template.HTML(markupSanitizer().Sanitize(trimmed))
}

func markupSanitizer() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		ugcPolicy = policy
	})
	return ugcPolicy
}

// PolicyFor picks the policy from the SANITIZE_MARKUP setting
func PolicyFor(sanitize bool) MarkupPolicy {
	if sanitize {
		return SanitizedMarkup{}
	}
	return TrustedMarkup{}
}
