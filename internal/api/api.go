package api

import (
	"context"
	"io"

	"github.com/deckgen/deckgen/internal/model"
)

// CreateTemplateRequest initiates a template upload.
type CreateTemplateRequest struct {
	Filename  string
	SizeBytes int64
	Metadata  model.TemplateMetadata
}

// Client is the interface for the remote presentation-generation service.
// Every call is scoped to one organization by the API credential, callers
// never state an organization explicitly. Calls fail fast on any non-2xx
// response, retrying is the caller's responsibility.
type Client interface {
	// CreateTemplate registers a new template record and returns the template
	// ID plus a signed URL for the raw byte transfer.
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*model.TemplateUpload, error)
	// UploadToSignedURL PUTs the template bytes directly to storage, outside
	// the API host.
	UploadToSignedURL(ctx context.Context, url string, contentType string, size int64, body io.Reader) error
	// ConfirmUpload tells the service the signed-URL transfer finished so it
	// can validate the stored file.
	ConfirmUpload(ctx context.Context, templateID string) error
	// StartAnalysis kicks off asynchronous template analysis.
	StartAnalysis(ctx context.Context, templateID string, opts model.AnalysisOptions) error
	// GetAnalysis returns the current analysis status and, once completed,
	// the discovered slides.
	GetAnalysis(ctx context.Context, templateID string) (*model.TemplateAnalysis, error)
	// ListTemplates returns all templates of the caller's organization.
	ListTemplates(ctx context.Context) ([]model.Template, error)
	// GenerateSlide generates a single slide synchronously.
	GenerateSlide(ctx context.Context, req model.SlideRequest) (*model.Generation, error)
	// GenerateDeck starts an asynchronous deck generation and returns the
	// generation ID to poll.
	GenerateDeck(ctx context.Context, req model.DeckRequest) (string, error)
	// GetGenerationStatus returns the current deck generation status.
	GetGenerationStatus(ctx context.Context, generationID string) (*model.Generation, error)
	// DownloadGeneration streams the generated presentation binary by ID.
	// The caller must close the returned reader.
	DownloadGeneration(ctx context.Context, generationID string) (io.ReadCloser, error)
	// DownloadFromURL streams a binary from a signed download URL, outside
	// the API host. The caller must close the returned reader.
	DownloadFromURL(ctx context.Context, url string) (io.ReadCloser, error)
}
