package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository, used in
// tests.
type Repository struct {
	templates   map[string]model.TemplateRecord
	generations map[string]model.GenerationRecord
	mu          sync.RWMutex
	logger      log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		templates:   make(map[string]model.TemplateRecord),
		generations: make(map[string]model.GenerationRecord),
		logger:      cfg.Logger,
	}, nil
}

// SaveTemplate records a template upload.
func (r *Repository) SaveTemplate(ctx context.Context, t model.TemplateRecord) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid template record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.templates[t.TemplateID]; ok {
		return fmt.Errorf("template %s already recorded: %w", t.TemplateID, model.ErrNotValid)
	}

	r.templates[t.TemplateID] = t
	r.logger.Debugf("Recorded template upload: %s", t.TemplateID)

	return nil
}

// GetTemplate retrieves a template record by ID.
func (r *Repository) GetTemplate(ctx context.Context, templateID string) (*model.TemplateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.templates[templateID]
	if !ok {
		return nil, fmt.Errorf("template %s: %w", templateID, model.ErrNotFound)
	}

	recordCopy := record
	return &recordCopy, nil
}

// GetLatestTemplate retrieves the most recently uploaded template record.
func (r *Repository) GetLatestTemplate(ctx context.Context) (*model.TemplateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.TemplateRecord
	for _, record := range r.templates {
		if latest == nil || record.UploadedAt.After(latest.UploadedAt) {
			recordCopy := record
			latest = &recordCopy
		}
	}

	if latest == nil {
		return nil, fmt.Errorf("no templates recorded: %w", model.ErrNotFound)
	}

	return latest, nil
}

// ListTemplates returns all template records, most recent first.
func (r *Repository) ListTemplates(ctx context.Context) ([]model.TemplateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]model.TemplateRecord, 0, len(r.templates))
	for _, record := range r.templates {
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadedAt.After(records[j].UploadedAt)
	})

	return records, nil
}

// MarkTemplateAnalyzed records template analysis completion.
func (r *Repository) MarkTemplateAnalyzed(ctx context.Context, templateID string, analyzedAt time.Time, slideCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.templates[templateID]
	if !ok {
		return fmt.Errorf("template %s: %w", templateID, model.ErrNotFound)
	}

	record.AnalyzedAt = &analyzedAt
	record.SlideCount = slideCount
	r.templates[templateID] = record

	return nil
}

// SaveGeneration records a generation request.
func (r *Repository) SaveGeneration(ctx context.Context, g model.GenerationRecord) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("invalid generation record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.generations[g.GenerationID]; ok {
		return fmt.Errorf("generation %s already recorded: %w", g.GenerationID, model.ErrNotValid)
	}

	r.generations[g.GenerationID] = g
	r.logger.Debugf("Recorded generation: %s", g.GenerationID)

	return nil
}

// UpdateGenerationResult records the terminal outcome of a generation.
func (r *Repository) UpdateGenerationResult(ctx context.Context, generationID string, state model.OperationState, totalPages int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.generations[generationID]
	if !ok {
		return fmt.Errorf("generation %s: %w", generationID, model.ErrNotFound)
	}

	record.State = state
	record.TotalPages = totalPages
	r.generations[generationID] = record

	return nil
}

// ListGenerations returns all generation records, most recent first.
func (r *Repository) ListGenerations(ctx context.Context) ([]model.GenerationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]model.GenerationRecord, 0, len(r.generations))
	for _, record := range r.generations {
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}
