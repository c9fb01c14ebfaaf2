package history

import (
	"context"
	"fmt"

	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/storage"
)

// ServiceConfig is the configuration for the history service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.History"})
	return nil
}

// Service reads the local history of uploads and generations. It never talks
// to the remote service.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new history service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request are the history request parameters.
type Request struct {
	// TemplateID, when set, restricts the template history to that single
	// template.
	TemplateID string
}

// Response is the local history.
type Response struct {
	Templates   []model.TemplateRecord
	Generations []model.GenerationRecord
}

// Run returns the local history, most recent first.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if req.TemplateID != "" {
		tpl, err := s.repo.GetTemplate(ctx, req.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("could not get template %s from history: %w", req.TemplateID, err)
		}
		return &Response{Templates: []model.TemplateRecord{*tpl}}, nil
	}

	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list template history: %w", err)
	}

	generations, err := s.repo.ListGenerations(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list generation history: %w", err)
	}

	s.logger.Debugf("History: %d templates, %d generations", len(templates), len(generations))

	return &Response{
		Templates:   templates,
		Generations: generations,
	}, nil
}
