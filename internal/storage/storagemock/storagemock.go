// Package storagemock provides a testify mock of the storage.Repository
// interface.
package storagemock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/storage"
)

// MockRepository is a mock implementation of storage.Repository.
type MockRepository struct {
	mock.Mock
}

var _ storage.Repository = (*MockRepository)(nil)

func (m *MockRepository) SaveTemplate(ctx context.Context, t model.TemplateRecord) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRepository) GetTemplate(ctx context.Context, templateID string) (*model.TemplateRecord, error) {
	args := m.Called(ctx, templateID)
	var record *model.TemplateRecord
	if v := args.Get(0); v != nil {
		record = v.(*model.TemplateRecord)
	}
	return record, args.Error(1)
}

func (m *MockRepository) GetLatestTemplate(ctx context.Context) (*model.TemplateRecord, error) {
	args := m.Called(ctx)
	var record *model.TemplateRecord
	if v := args.Get(0); v != nil {
		record = v.(*model.TemplateRecord)
	}
	return record, args.Error(1)
}

func (m *MockRepository) ListTemplates(ctx context.Context) ([]model.TemplateRecord, error) {
	args := m.Called(ctx)
	var records []model.TemplateRecord
	if v := args.Get(0); v != nil {
		records = v.([]model.TemplateRecord)
	}
	return records, args.Error(1)
}

func (m *MockRepository) MarkTemplateAnalyzed(ctx context.Context, templateID string, analyzedAt time.Time, slideCount int) error {
	args := m.Called(ctx, templateID, analyzedAt, slideCount)
	return args.Error(0)
}

func (m *MockRepository) SaveGeneration(ctx context.Context, g model.GenerationRecord) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockRepository) UpdateGenerationResult(ctx context.Context, generationID string, state model.OperationState, totalPages int) error {
	args := m.Called(ctx, generationID, state, totalPages)
	return args.Error(0)
}

func (m *MockRepository) ListGenerations(ctx context.Context) ([]model.GenerationRecord, error) {
	args := m.Called(ctx)
	var records []model.GenerationRecord
	if v := args.Get(0); v != nil {
		records = v.([]model.GenerationRecord)
	}
	return records, args.Error(1)
}
