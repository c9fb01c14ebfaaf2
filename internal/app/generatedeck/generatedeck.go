package generatedeck

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

// ServiceConfig is the configuration for the deck generation service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.GenerateDeck"})
	if c.Poll.Logger == nil {
		c.Poll.Logger = c.Logger
	}
	return nil
}

// Service starts an asynchronous deck generation and polls until it reaches a
// terminal state.
type Service struct {
	client api.Client
	repo   storage.Repository
	poll   operation.Config
	logger log.Logger
}

// NewService creates a new deck generation service.
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

// Request are the deck generation request parameters.
type Request struct {
	Deck model.DeckRequest
	// Wait polls the generation until it finishes. When false the generation
	// is only started and returned in its ongoing state.
	Wait bool
	// OutputPath is recorded in history for later download bookkeeping.
	OutputPath string
}

// Run starts the deck generation and, when waiting, returns the terminal
// result. Partial and failed generations are returned as data so the caller
// can inspect per-slide results.
func (s *Service) Run(ctx context.Context, req Request) (*model.Generation, error) {
	if err := req.Deck.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck request: %w", err)
	}

	s.logger.Infof("Starting deck generation (%d slides)", len(req.Deck.Slides))

	generationID, err := s.client.GenerateDeck(ctx, req.Deck)
	if err != nil {
		return nil, fmt.Errorf("could not start deck generation: %w", err)
	}

	logger := s.logger.WithValues(log.Kv{"generation-id": generationID})
	logger.Debugf("Deck generation started")

	if err := s.repo.SaveGeneration(ctx, model.GenerationRecord{
		GenerationID: generationID,
		Kind:         model.GenerationKindDeck,
		SlideCount:   len(req.Deck.Slides),
		State:        model.OperationStateOngoing,
		OutputPath:   req.OutputPath,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		logger.Warningf("Could not record generation in history: %s", err)
	}

	if !req.Wait {
		return &model.Generation{
			ID:     generationID,
			Status: model.OperationStatus{State: model.OperationStateOngoing, CurrentStep: model.DefaultCurrentStep},
		}, nil
	}

	gen, err := operation.WaitUntilDone(ctx, s.poll, func(ctx context.Context) (*model.Generation, error) {
		return s.client.GetGenerationStatus(ctx, generationID)
	})
	if err != nil {
		return nil, fmt.Errorf("deck generation did not finish: %w", err)
	}

	logger.Infof("Deck generation finished with status %q (%d pages)", gen.Status.State, gen.TotalPages)

	err = s.repo.UpdateGenerationResult(ctx, generationID, gen.Status.State, gen.TotalPages)
	if err != nil {
		logger.Warningf("Could not record generation result in history: %s", err)
	}

	return gen, nil
}

// Status returns the current state of a previously started generation,
// without polling. Terminal results are recorded in history.
func (s *Service) Status(ctx context.Context, generationID string) (*model.Generation, error) {
	if generationID == "" {
		return nil, fmt.Errorf("generation ID is required: %w", model.ErrNotValid)
	}

	gen, err := s.client.GetGenerationStatus(ctx, generationID)
	if err != nil {
		return nil, fmt.Errorf("could not get generation status: %w", err)
	}

	if gen.Status.State.Terminal() {
		err := s.repo.UpdateGenerationResult(ctx, generationID, gen.Status.State, gen.TotalPages)
		if err != nil {
			s.logger.Warningf("Could not record generation result in history: %s", err)
		}
	}

	return gen, nil
}
