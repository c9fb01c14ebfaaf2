package model

import (
	"fmt"
	"time"
)

// TemplateMetadata is the optional user metadata attached to a template at
// upload time.
type TemplateMetadata struct {
	Category    string
	Tags        []string
	Description string
}

// Template represents an uploaded template as reported by the remote service.
type Template struct {
	ID        string
	Filename  string
	Status    string
	SizeBytes int64
	Metadata  TemplateMetadata
	CreatedAt time.Time
}

// TemplateUpload is the result of initiating a template upload: the new
// template ID plus a time-limited signed URL for the raw byte transfer.
type TemplateUpload struct {
	TemplateID string
	UploadURL  string
}

// Validate validates the upload initiation response.
func (t *TemplateUpload) Validate() error {
	if t.TemplateID == "" {
		return fmt.Errorf("template id is required: %w", ErrNotValid)
	}
	if t.UploadURL == "" {
		return fmt.Errorf("upload url is required: %w", ErrNotValid)
	}
	return nil
}

// AnalysisOptions control how much detail template analysis extracts.
type AnalysisOptions struct {
	ParseMasterTemplateLayout   bool
	ParseSlides                 bool
	IncludePlaceholderPositions bool
	IncludeTableDetails         bool
}

// FullAnalysisOptions returns analysis options with every detail enabled.
func FullAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		ParseMasterTemplateLayout:   true,
		ParseSlides:                 true,
		IncludePlaceholderPositions: true,
		IncludeTableDetails:         true,
	}
}

// TemplateAnalysis is the (possibly still ongoing) result of analyzing a
// template.
type TemplateAnalysis struct {
	TemplateID string
	Status     OperationStatus
	Slides     []TemplateSlide
}

// OperationStatus implements StatusReporter.
func (a *TemplateAnalysis) OperationStatus() OperationStatus { return a.Status }

// TemplateSlide is a slide discovered by template analysis. Its ID is what
// generation requests reference.
type TemplateSlide struct {
	SlideID      string
	SlideNumber  int
	Name         string
	Placeholders []Placeholder
}

// Placeholder is a named region in a template slide that receives content.
type Placeholder struct {
	Name     string
	Type     string
	Position *PlaceholderPosition
	Table    *TableDimensions
}

// PlaceholderPosition is the placeholder location on the slide, present only
// when the analysis requested positions.
type PlaceholderPosition struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// TableDimensions are the dimensions of a table placeholder, present only
// when the analysis requested table details.
type TableDimensions struct {
	Rows    int
	Columns int
}
