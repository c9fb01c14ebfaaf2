package list

import (
	"context"
	"fmt"

	"github.com/deckgen/deckgen/internal/api"
	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
)

// ServiceConfig is the configuration for the template listing service.
type ServiceConfig struct {
	Client api.Client
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("api client is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.List"})
	return nil
}

// Service lists the templates known to the remote service.
type Service struct {
	client api.Client
	logger log.Logger
}

// NewService creates a new template listing service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		logger: cfg.Logger,
	}, nil
}

// Run returns the remote templates. An empty account yields an empty slice,
// not an error.
func (s *Service) Run(ctx context.Context) ([]model.Template, error) {
	templates, err := s.client.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list templates: %w", err)
	}

	s.logger.Debugf("Listed %d templates", len(templates))

	return templates, nil
}
