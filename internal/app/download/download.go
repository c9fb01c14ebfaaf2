package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deckgen/deckgen/internal/api"
	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
)

// ServiceConfig is the configuration for the download service.
type ServiceConfig struct {
	Client api.Client
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("api client is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Download"})
	return nil
}

// Service downloads generated files, either by generation ID through the API
// or straight from a download URL.
type Service struct {
	client api.Client
	logger log.Logger
}

// NewService creates a new download service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		logger: cfg.Logger,
	}, nil
}

// Request are the download request parameters.
type Request struct {
	// Source is a generation ID or a full download URL. URLs are recognized
	// by their http(s) scheme.
	Source string
	// OutputPath is the local file the download is written to.
	OutputPath string
	// StatusWriter, when set, receives a live progress line while the
	// download streams.
	StatusWriter io.Writer
}

// Result is the outcome of a download.
type Result struct {
	Path      string
	SizeBytes int64
}

// Run downloads the file to the requested path. The file bytes are streamed
// to disk untouched.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Source == "" {
		return nil, fmt.Errorf("download source is required: %w", model.ErrNotValid)
	}
	if req.OutputPath == "" {
		return nil, fmt.Errorf("output path is required: %w", model.ErrNotValid)
	}

	var body io.ReadCloser
	var err error
	if strings.HasPrefix(req.Source, "http") {
		s.logger.Debugf("Downloading from URL")
		body, err = s.client.DownloadFromURL(ctx, req.Source)
	} else {
		s.logger.Debugf("Downloading generation %s", req.Source)
		body, err = s.client.DownloadGeneration(ctx, req.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("could not download: %w", err)
	}
	defer body.Close()

	f, err := os.Create(req.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("could not create output file: %w", err)
	}

	var dst io.Writer = f
	var pw *progressWriter
	if req.StatusWriter != nil {
		pw = newProgressWriter(f, req.StatusWriter, 0)
		dst = pw
	}

	n, err := io.Copy(dst, body)
	if pw != nil {
		pw.Finish()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("could not write output file: %w", err)
	}

	s.logger.Infof("Downloaded %d bytes to %s", n, req.OutputPath)

	return &Result{Path: req.OutputPath, SizeBytes: n}, nil
}
