package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/deckgen/deckgen/internal/api"
	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/storage"
)

// pptxContentType is the MIME type for PowerPoint files, used when sniffing
// the local file yields nothing more specific.
const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// ServiceConfig is the configuration for the upload service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Upload"})
	return nil
}

// Service uploads template files through the service's three-step handshake:
// create the template record (which returns a signed URL), transfer the raw
// bytes directly to storage, and confirm the upload.
type Service struct {
	client api.Client
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new upload service.
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

// Request are the upload request parameters.
type Request struct {
	// Path is the local template file to upload.
	Path string
	// Metadata is attached to the created template record.
	Metadata model.TemplateMetadata
}

// Run uploads the template and returns the new template's identifiers.
// A confirmed upload is not rolled back when a later step fails.
func (s *Service) Run(ctx context.Context, req Request) (*model.TemplateUpload, error) {
	// Local preconditions first, before any network call.
	info, err := os.Stat(req.Path)
	if err != nil {
		return nil, fmt.Errorf("template file %s: %w", req.Path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("template path %s is a directory: %w", req.Path, model.ErrNotValid)
	}

	filename := filepath.Base(req.Path)
	contentType := detectContentType(req.Path)
	s.logger.Infof("Uploading template %s (%d bytes)", filename, info.Size())

	// Step 1: create the template record, getting back the signed URL.
	upload, err := s.client.CreateTemplate(ctx, api.CreateTemplateRequest{
		Filename:  filename,
		SizeBytes: info.Size(),
		Metadata:  req.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create template record: %w", err)
	}
	s.logger.Debugf("Created template record: %s", upload.TemplateID)

	// Step 2: transfer the bytes directly to storage.
	f, err := os.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open template file: %w", err)
	}
	err = s.client.UploadToSignedURL(ctx, upload.UploadURL, contentType, info.Size(), f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("could not upload template bytes: %w", err)
	}

	// Step 3: confirm so the service validates the stored file.
	if err := s.client.ConfirmUpload(ctx, upload.TemplateID); err != nil {
		return nil, fmt.Errorf("could not confirm upload: %w", err)
	}

	if err := s.repo.SaveTemplate(ctx, model.TemplateRecord{
		TemplateID: upload.TemplateID,
		Filename:   filename,
		SizeBytes:  info.Size(),
		UploadedAt: time.Now().UTC(),
	}); err != nil {
		// History is convenience state, a failed record doesn't undo a
		// successful upload.
		s.logger.Warningf("Could not record upload in history: %s", err)
	}

	s.logger.Infof("Uploaded template: %s", upload.TemplateID)

	return upload, nil
}

// detectContentType sniffs the file content, falling back to the pptx MIME
// type when detection is inconclusive (pptx files are zip containers, so a
// generic zip detection is treated as pptx).
func detectContentType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return pptxContentType
	}
	if mtype.Is("application/zip") || mtype.Is("application/octet-stream") {
		return pptxContentType
	}
	return mtype.String()
}
