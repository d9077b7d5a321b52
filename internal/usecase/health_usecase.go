package usecase

import (
	"context"
	"strconv"
)

// HealthCheck tests one dependency; nil means healthy
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// SiteStater is satisfied by *Site
type SiteStater interface {
	State() SiteState
}

type healthUsecase struct {
	site   SiteStater
	forms  *FormSessions
	checks map[string]HealthCheck
}

// NewHealthUsecase reports the configuration load, the mounted forms and any
// optional dependency checks (redis, database).
func NewHealthUsecase(site SiteStater, forms *FormSessions, checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{site: site, forms: forms, checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	result := map[string]string{
		"status": "ok",
	}

	st := u.site.State()
	switch {
	case st.Loading:
		result["config"] = "loading"
	case st.Err != nil:
		result["config"] = "failed"
		result["status"] = "degraded"
	default:
		result["config"] = "loaded"
	}

	if u.forms != nil {
		result["open_forms"] = strconv.Itoa(u.forms.Len())
	}

	for name, check := range u.checks {
		if err := check(ctx); err != nil {
			result[name] = err.Error()
			result["status"] = "degraded"
			continue
		}
		result[name] = "ok"
	}
	return result
}
