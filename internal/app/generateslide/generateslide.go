package generateslide

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/deckgen/deckgen/internal/api"
	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/storage"
)

// ServiceConfig is the configuration for the single slide generation service.
type ServiceConfig struct {
	Client     api.Client
	Repository storage.Repository
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.GenerateSlide"})
	return nil
}

// Service generates a single slide synchronously and optionally downloads the
// resulting file.
type Service struct {
	client api.Client
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new slide generation service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request are the slide generation request parameters.
type Request struct {
	Slide model.SlideRequest
	// OutputPath is where the generated file is written. Empty skips the
	// download.
	OutputPath string
}

// Run generates the slide and, when an output path is given, downloads the
// result to it.
func (s *Service) Run(ctx context.Context, req Request) (*model.Generation, error) {
	if err := req.Slide.Validate(); err != nil {
		return nil, fmt.Errorf("invalid slide request: %w", err)
	}

	s.logger.Infof("Generating slide from template slide %s", req.Slide.TemplateSlideID)

	gen, err := s.client.GenerateSlide(ctx, req.Slide)
	if err != nil {
		return nil, fmt.Errorf("could not generate slide: %w", err)
	}

	logger := s.logger.WithValues(log.Kv{"generation-id": gen.ID})
	logger.Infof("Slide generated with status %q", gen.Status.State)

	if err := s.repo.SaveGeneration(ctx, model.GenerationRecord{
		GenerationID: gen.ID,
		Kind:         model.GenerationKindSlide,
		SlideCount:   1,
		State:        gen.Status.State,
		TotalPages:   gen.TotalPages,
		OutputPath:   req.OutputPath,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		logger.Warningf("Could not record generation in history: %s", err)
	}

	if req.OutputPath == "" || gen.Status.State != model.OperationStateCompleted {
		return gen, nil
	}

	if err := s.download(ctx, gen, req.OutputPath); err != nil {
		return nil, fmt.Errorf("could not download generated slide: %w", err)
	}
	logger.Infof("Generated slide written to %s", req.OutputPath)

	return gen, nil
}

func (s *Service) download(ctx context.Context, gen *model.Generation, path string) error {
	body, err := s.client.DownloadGeneration(ctx, gen.ID)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	_, err = io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
