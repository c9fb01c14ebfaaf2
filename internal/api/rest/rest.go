// Package rest implements the api.Client interface against the remote
// presentation-generation HTTP service.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/deckgen/deckgen/internal/api"
	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
)

// maxErrorBodySize limits how much of an error response body we read for
// error messages.
const maxErrorBodySize = 4096

// ClientConfig is the configuration for the REST client.
type ClientConfig struct {
	// BaseURL is the API base (e.g. "https://api.example.com/api/v1").
	BaseURL string
	// APIKey is the credential sent on every API call. It determines the
	// caller's organization, all resources are scoped to it server-side.
	APIKey string
	// HTTPClient is the HTTP client for API and signed-URL requests.
	HTTPClient *http.Client
	// Logger for logging.
	Logger log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "api.REST"})
	return nil
}

// Client is the HTTP implementation of api.Client. It fails fast on any
// non-2xx response and never retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     log.Logger
}

var _ api.Client = (*Client)(nil)

// NewClient creates a new REST API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

// CreateTemplate registers a template record and returns the upload target.
func (c *Client) CreateTemplate(ctx context.Context, req api.CreateTemplateRequest) (*model.TemplateUpload, error) {
	body := createTemplateJSON{
		Filename: req.Filename,
		FileSize: req.SizeBytes,
		Metadata: metadataJSON{
			Category:    req.Metadata.Category,
			Tags:        req.Metadata.Tags,
			Description: req.Metadata.Description,
		},
	}

	var resp templateUploadJSON
	if err := c.do(ctx, http.MethodPost, "/templates", body, &resp); err != nil {
		return nil, fmt.Errorf("creating template record: %w", err)
	}

	upload := &model.TemplateUpload{
		TemplateID: resp.TemplateID,
		UploadURL:  resp.UploadURL,
	}
	if err := upload.Validate(); err != nil {
		return nil, fmt.Errorf("invalid upload response: %w", err)
	}

	return upload, nil
}

// UploadToSignedURL transfers the raw bytes directly to storage. The signed
// URL is pre-authorized, so no API credential is attached.
func (c *Client) UploadToSignedURL(ctx context.Context, url string, contentType string, size int64, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	c.logger.Debugf("Uploaded %d bytes to signed URL", size)
	return nil
}

// ConfirmUpload tells the service the upload finished.
func (c *Client) ConfirmUpload(ctx context.Context, templateID string) error {
	path := fmt.Sprintf("/templates/%s/upload/confirm", templateID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("confirming upload: %w", err)
	}
	return nil
}

// StartAnalysis starts asynchronous template analysis.
func (c *Client) StartAnalysis(ctx context.Context, templateID string, opts model.AnalysisOptions) error {
	body := startAnalysisJSON{Options: analysisOptionsJSON{
		ParseMasterTemplateLayout:   opts.ParseMasterTemplateLayout,
		ParseSlides:                 opts.ParseSlides,
		IncludePlaceholderPositions: opts.IncludePlaceholderPositions,
		IncludeTableDetails:         opts.IncludeTableDetails,
	}}

	path := fmt.Sprintf("/templates/%s/analysis", templateID)
	if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("starting analysis: %w", err)
	}
	return nil
}

// GetAnalysis returns the current analysis state.
func (c *Client) GetAnalysis(ctx context.Context, templateID string) (*model.TemplateAnalysis, error) {
	path := fmt.Sprintf("/templates/%s/analysis", templateID)

	var resp analysisJSON
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("getting analysis: %w", err)
	}

	return resp.toModel(templateID), nil
}

// ListTemplates returns all templates of the caller's organization.
func (c *Client) ListTemplates(ctx context.Context) ([]model.Template, error) {
	var resp listTemplatesJSON
	if err := c.do(ctx, http.MethodGet, "/templates", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	templates := make([]model.Template, 0, len(resp.Templates))
	for _, t := range resp.Templates {
		templates = append(templates, t.toModel())
	}

	return templates, nil
}

// GenerateSlide generates a single slide synchronously.
func (c *Client) GenerateSlide(ctx context.Context, req model.SlideRequest) (*model.Generation, error) {
	var resp generationJSON
	if err := c.do(ctx, http.MethodPost, "/presentations/generate", slideRequestToWire(req), &resp); err != nil {
		return nil, fmt.Errorf("generating slide: %w", err)
	}

	return resp.toModel(), nil
}

// GenerateDeck starts an asynchronous deck generation.
func (c *Client) GenerateDeck(ctx context.Context, req model.DeckRequest) (string, error) {
	body := deckRequestJSON{
		Slides:  make([]slideRequestJSON, 0, len(req.Slides)),
		Options: generateOptionsToWire(req.Options),
	}
	for _, s := range req.Slides {
		body.Slides = append(body.Slides, slideRequestToWire(s))
	}

	var resp generationJSON
	if err := c.do(ctx, http.MethodPost, "/presentations/generate-deck", body, &resp); err != nil {
		return "", fmt.Errorf("starting deck generation: %w", err)
	}
	if resp.GenerationID == "" {
		return "", fmt.Errorf("response is missing the generation id: %w", model.ErrNotValid)
	}

	return resp.GenerationID, nil
}

// GetGenerationStatus returns the current deck generation state.
func (c *Client) GetGenerationStatus(ctx context.Context, generationID string) (*model.Generation, error) {
	path := fmt.Sprintf("/presentations/%s/status", generationID)

	var resp generationJSON
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("getting generation status: %w", err)
	}

	gen := resp.toModel()
	if gen.ID == "" {
		gen.ID = generationID
	}

	return gen, nil
}

// DownloadGeneration streams the generated presentation binary.
func (c *Client) DownloadGeneration(ctx context.Context, generationID string) (io.ReadCloser, error) {
	path := fmt.Sprintf("/presentations/%s/download", generationID)
	return c.doStream(ctx, path)
}

// DownloadFromURL streams a binary from a signed URL, without credentials.
func (c *Client) DownloadFromURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}

// --- Internal helpers ---

// do performs an authenticated JSON API request. A nil body sends no payload,
// a nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", url, err)
	}

	return nil
}

// doStream performs an authenticated API request and returns the live
// response body for large binary downloads.
func (c *Client) doStream(ctx context.Context, path string) (io.ReadCloser, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", ulid.Make().String())
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	return fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, resp.Request.URL, bytes.TrimSpace(body))
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
