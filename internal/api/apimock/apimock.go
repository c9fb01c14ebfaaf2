// Package apimock provides a testify mock of the api.Client interface.
package apimock

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/deckgen/deckgen/internal/api"
	"github.com/deckgen/deckgen/internal/model"
)

// MockClient is a mock implementation of api.Client.
type MockClient struct {
	mock.Mock
}

var _ api.Client = (*MockClient)(nil)

func (m *MockClient) CreateTemplate(ctx context.Context, req api.CreateTemplateRequest) (*model.TemplateUpload, error) {
	args := m.Called(ctx, req)
	var upload *model.TemplateUpload
	if v := args.Get(0); v != nil {
		upload = v.(*model.TemplateUpload)
	}
	return upload, args.Error(1)
}

func (m *MockClient) UploadToSignedURL(ctx context.Context, url string, contentType string, size int64, body io.Reader) error {
	args := m.Called(ctx, url, contentType, size, body)
	return args.Error(0)
}

func (m *MockClient) ConfirmUpload(ctx context.Context, templateID string) error {
	args := m.Called(ctx, templateID)
	return args.Error(0)
}

func (m *MockClient) StartAnalysis(ctx context.Context, templateID string, opts model.AnalysisOptions) error {
	args := m.Called(ctx, templateID, opts)
	return args.Error(0)
}

func (m *MockClient) GetAnalysis(ctx context.Context, templateID string) (*model.TemplateAnalysis, error) {
	args := m.Called(ctx, templateID)
	var analysis *model.TemplateAnalysis
	if v := args.Get(0); v != nil {
		analysis = v.(*model.TemplateAnalysis)
	}
	return analysis, args.Error(1)
}

func (m *MockClient) ListTemplates(ctx context.Context) ([]model.Template, error) {
	args := m.Called(ctx)
	var templates []model.Template
	if v := args.Get(0); v != nil {
		templates = v.([]model.Template)
	}
	return templates, args.Error(1)
}

func (m *MockClient) GenerateSlide(ctx context.Context, req model.SlideRequest) (*model.Generation, error) {
	args := m.Called(ctx, req)
	var gen *model.Generation
	if v := args.Get(0); v != nil {
		gen = v.(*model.Generation)
	}
	return gen, args.Error(1)
}

func (m *MockClient) GenerateDeck(ctx context.Context, req model.DeckRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockClient) GetGenerationStatus(ctx context.Context, generationID string) (*model.Generation, error) {
	args := m.Called(ctx, generationID)
	var gen *model.Generation
	if v := args.Get(0); v != nil {
		gen = v.(*model.Generation)
	}
	return gen, args.Error(1)
}

func (m *MockClient) DownloadGeneration(ctx context.Context, generationID string) (io.ReadCloser, error) {
	args := m.Called(ctx, generationID)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Error(1)
}

func (m *MockClient) DownloadFromURL(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Error(1)
}
