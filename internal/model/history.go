package model

import (
	"fmt"
	"time"
)

// TemplateRecord is the local history entry of a template upload.
type TemplateRecord struct {
	TemplateID string
	Filename   string
	SizeBytes  int64
	UploadedAt time.Time
	AnalyzedAt *time.Time
	// SlideCount is the number of slides found by analysis, 0 until analyzed.
	SlideCount int
}

// Validate validates the template record.
func (r *TemplateRecord) Validate() error {
	if r.TemplateID == "" {
		return fmt.Errorf("template id is required: %w", ErrNotValid)
	}
	if r.Filename == "" {
		return fmt.Errorf("filename is required: %w", ErrNotValid)
	}
	if r.UploadedAt.IsZero() {
		return fmt.Errorf("uploaded at is required: %w", ErrNotValid)
	}
	return nil
}

// GenerationKind discriminates local generation history entries.
type GenerationKind string

const (
	// GenerationKindSlide is a synchronous single-slide generation.
	GenerationKindSlide GenerationKind = "slide"
	// GenerationKindDeck is an asynchronous full-deck generation.
	GenerationKindDeck GenerationKind = "deck"
)

// GenerationRecord is the local history entry of a generation request.
type GenerationRecord struct {
	GenerationID string
	Kind         GenerationKind
	SlideCount   int
	State        OperationState
	TotalPages   int
	OutputPath   string
	CreatedAt    time.Time
}

// Validate validates the generation record.
func (r *GenerationRecord) Validate() error {
	if r.GenerationID == "" {
		return fmt.Errorf("generation id is required: %w", ErrNotValid)
	}
	if r.Kind != GenerationKindSlide && r.Kind != GenerationKindDeck {
		return fmt.Errorf("unknown generation kind %q: %w", r.Kind, ErrNotValid)
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("created at is required: %w", ErrNotValid)
	}
	return nil
}
