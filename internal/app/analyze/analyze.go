package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/deckgen/deckgen/internal/api"
	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/operation"
	"github.com/deckgen/deckgen/internal/storage"
)

// ServiceConfig is the configuration for the analysis service.
type ServiceConfig struct {
	Client     api.Client
	Repository storage.Repository
	Poll       operation.Config
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("api client is required")
	}
	if c.Repository == nil {
		c.Repository = storage.Noop
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Analyze"})
	if c.Poll.Logger == nil {
		c.Poll.Logger = c.Logger
	}
	return nil
}

// Service starts template analysis and polls until it reaches a terminal
// state.
type Service struct {
	client api.Client
	repo   storage.Repository
	poll   operation.Config
	logger log.Logger
}

// NewService creates a new analysis service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		repo:   cfg.Repository,
		poll:   cfg.Poll,
		logger: cfg.Logger,
	}, nil
}

// Request are the analysis request parameters.
type Request struct {
	// TemplateID selects the template to analyze. When empty the most
	// recently uploaded template from the local history is used.
	TemplateID string
	Options    model.AnalysisOptions
}

// Run starts the analysis and waits for the result. Partial and failed
// analyses are returned as data, only transport and timeout problems are
// errors.
func (s *Service) Run(ctx context.Context, req Request) (*model.TemplateAnalysis, error) {
	if req.TemplateID == "" {
		latest, err := s.repo.GetLatestTemplate(ctx)
		if err != nil {
			return nil, fmt.Errorf("no template ID given and no previous upload found: %w", err)
		}
		req.TemplateID = latest.TemplateID
		s.logger.Infof("No template ID given, using latest upload %s", req.TemplateID)
	}

	logger := s.logger.WithValues(log.Kv{"template-id": req.TemplateID})
	logger.Infof("Starting template analysis")

	if err := s.client.StartAnalysis(ctx, req.TemplateID, req.Options); err != nil {
		return nil, fmt.Errorf("could not start analysis: %w", err)
	}

	analysis, err := operation.WaitUntilDone(ctx, s.poll, func(ctx context.Context) (*model.TemplateAnalysis, error) {
		return s.client.GetAnalysis(ctx, req.TemplateID)
	})
	if err != nil {
		return nil, fmt.Errorf("analysis did not finish: %w", err)
	}

	logger.Infof("Analysis finished with status %q (%d slides)", analysis.Status.State, len(analysis.Slides))

	if analysis.Status.State == model.OperationStateCompleted {
		err := s.repo.MarkTemplateAnalyzed(ctx, req.TemplateID, time.Now().UTC(), len(analysis.Slides))
		if err != nil {
			logger.Warningf("Could not record analysis in history: %s", err)
		}
	}

	return analysis, nil
}
