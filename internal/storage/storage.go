package storage

import (
	"context"
	"time"

	"github.com/deckgen/deckgen/internal/model"
)

// Repository is the interface for the local upload/generation history.
// The remote service stays the source of truth, this is client-side
// convenience state only.
type Repository interface {
	SaveTemplate(ctx context.Context, t model.TemplateRecord) error
	GetTemplate(ctx context.Context, templateID string) (*model.TemplateRecord, error)
	// GetLatestTemplate returns the most recently uploaded template,
	// model.ErrNotFound when history is empty.
	GetLatestTemplate(ctx context.Context) (*model.TemplateRecord, error)
	ListTemplates(ctx context.Context) ([]model.TemplateRecord, error)
	MarkTemplateAnalyzed(ctx context.Context, templateID string, analyzedAt time.Time, slideCount int) error

	SaveGeneration(ctx context.Context, g model.GenerationRecord) error
	UpdateGenerationResult(ctx context.Context, generationID string, state model.OperationState, totalPages int) error
	ListGenerations(ctx context.Context) ([]model.GenerationRecord, error)
}

// Noop is a Repository that records nothing, used when history is disabled.
const Noop = noop(0)

type noop int

var _ Repository = Noop

func (noop) SaveTemplate(context.Context, model.TemplateRecord) error { return nil }
func (noop) GetTemplate(ctx context.Context, templateID string) (*model.TemplateRecord, error) {
	return nil, model.ErrNotFound
}
func (noop) GetLatestTemplate(context.Context) (*model.TemplateRecord, error) {
	return nil, model.ErrNotFound
}
func (noop) ListTemplates(context.Context) ([]model.TemplateRecord, error) { return nil, nil }
func (noop) MarkTemplateAnalyzed(context.Context, string, time.Time, int) error {
	return nil
}
func (noop) SaveGeneration(context.Context, model.GenerationRecord) error { return nil }
func (noop) UpdateGenerationResult(context.Context, string, model.OperationState, int) error {
	return nil
}
func (noop) ListGenerations(context.Context) ([]model.GenerationRecord, error) { return nil, nil }
