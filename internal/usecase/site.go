package usecase

import (
	"context"
	"sync"

	"go-landing-page/internal/domain"
	"go-landing-page/pkg/logger"
)

// ConfigLoader fetches the site configuration document
type ConfigLoader interface {
	Load(ctx context.Context, location string) (*domain.SiteConfig, error)
}

// SiteState is what a page handler sees of the configuration
type SiteState struct {
	Loading bool
	Config  *domain.SiteConfig
	Err     error
}

// Site is the page shell: it performs the single configuration load and holds
// the result for the life of the process. A failed load is terminal.
type Site struct {
	loader   ConfigLoader
	location string

	once sync.Once
	done chan struct{}

	mu     sync.RWMutex
	config *domain.SiteConfig
	err    error
}

// NewSite creates a shell that will load from location
func NewSite(loader ConfigLoader, location string) *Site {
	return &Site{
		loader:   loader,
		location: location,
		done:     make(chan struct{}),
	}
}

// Start runs the load in the background; pages render a loading placeholder until it finishes
func (s *Site) Start(ctx context.Context) {
	go func() {
		_ = s.Load(ctx)
	}()
}

// Load performs the load synchronously. Only the first call fetches; later
// calls wait for and return the first result.
func (s *Site) Load(ctx context.Context) error {
	s.once.Do(func() {
		cfg, err := s.loader.Load(ctx, s.location)

		s.mu.Lock()
		s.config, s.err = cfg, err
		s.mu.Unlock()

		if err != nil {
			logger.Log.Error("Failed to load site configuration", "location", s.location, "error", err)
		} else {
			if missing := cfg.MissingFields(); len(missing) > 0 {
				logger.Log.Warn("Site configuration is missing fields; they will render empty", "fields", missing)
			}
			logger.Log.Info("Site configuration loaded", "location", s.location, "site", cfg.DomainName)
		}
		close(s.done)
	})

	<-s.done
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Done is closed once the load has finished
func (s *Site) Done() <-chan struct{} {
	return s.done
}

// State returns the current shell state
func (s *Site) State() SiteState {
	select {
	case <-s.done:
	default:
		return SiteState{Loading: true, Err: domain.ErrConfigNotLoaded}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return SiteState{Config: s.config, Err: s.err}
}
