package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/deckgen/deckgen/internal/model"
)

// JSONPrinter prints deck generation information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// templateItem represents a template in the list output (subset of fields).
type templateItem struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// uploadOutput represents the template upload output.
type uploadOutput struct {
	TemplateID string `json:"template_id"`
}

// analysisOutput represents the full template analysis output.
type analysisOutput struct {
	TemplateID string        `json:"template_id"`
	Status     string        `json:"status"`
	Slides     []slideOutput `json:"slides"`
}

// slideOutput represents an analyzed template slide.
type slideOutput struct {
	SlideID      string `json:"slide_id"`
	SlideNumber  int    `json:"slide_number"`
	Name         string `json:"name,omitempty"`
	Placeholders int    `json:"placeholders"`
}

// generationOutput represents the full generation status output.
type generationOutput struct {
	ID          string              `json:"id"`
	Status      string              `json:"status"`
	Progress    int                 `json:"progress,omitempty"`
	CurrentStep string              `json:"current_step,omitempty"`
	TotalPages  int                 `json:"total_pages,omitempty"`
	DownloadURL string              `json:"download_url,omitempty"`
	Slides      []slideResultOutput `json:"slides,omitempty"`
}

// slideResultOutput represents a per-slide generation result.
type slideResultOutput struct {
	SlideIndex     int    `json:"slide_index"`
	Status         string `json:"status"`
	PagesGenerated int    `json:"pages_generated"`
	Error          string `json:"error,omitempty"`
}

// historyOutput represents the local history output.
type historyOutput struct {
	Templates   []templateRecordOutput   `json:"templates"`
	Generations []generationRecordOutput `json:"generations"`
}

type templateRecordOutput struct {
	TemplateID string     `json:"template_id"`
	Filename   string     `json:"filename"`
	SizeBytes  int64      `json:"size_bytes"`
	SlideCount int        `json:"slide_count,omitempty"`
	UploadedAt time.Time  `json:"uploaded_at"`
	AnalyzedAt *time.Time `json:"analyzed_at,omitempty"`
}

type generationRecordOutput struct {
	GenerationID string    `json:"generation_id"`
	Kind         string    `json:"kind"`
	SlideCount   int       `json:"slide_count"`
	Status       string    `json:"status"`
	TotalPages   int       `json:"total_pages,omitempty"`
	OutputPath   string    `json:"output_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintTemplateList prints templates in JSON format with a subset of fields.
func (j *JSONPrinter) PrintTemplateList(templates []model.Template) error {
	items := make([]templateItem, len(templates))
	for i, tpl := range templates {
		items[i] = templateItem{
			ID:        tpl.ID,
			Filename:  tpl.Filename,
			Status:    tpl.Status,
			SizeBytes: tpl.SizeBytes,
			CreatedAt: tpl.CreatedAt.UTC(),
		}
	}

	return j.encode(items)
}

// PrintUpload prints the template upload result in JSON format.
func (j *JSONPrinter) PrintUpload(upload model.TemplateUpload) error {
	return j.encode(uploadOutput{TemplateID: upload.TemplateID})
}

// PrintAnalysis prints the template analysis in JSON format.
func (j *JSONPrinter) PrintAnalysis(analysis model.TemplateAnalysis) error {
	output := analysisOutput{
		TemplateID: analysis.TemplateID,
		Status:     string(analysis.Status.State),
		Slides:     make([]slideOutput, len(analysis.Slides)),
	}
	for i, s := range analysis.Slides {
		output.Slides[i] = slideOutput{
			SlideID:      s.SlideID,
			SlideNumber:  s.SlideNumber,
			Name:         s.Name,
			Placeholders: len(s.Placeholders),
		}
	}

	return j.encode(output)
}

// PrintGeneration prints the generation status in JSON format.
func (j *JSONPrinter) PrintGeneration(gen model.Generation) error {
	output := generationOutput{
		ID:          gen.ID,
		Status:      string(gen.Status.State),
		TotalPages:  gen.TotalPages,
		DownloadURL: gen.DownloadURL,
	}
	if !gen.Status.State.Terminal() {
		output.Progress = gen.Status.Progress
		output.CurrentStep = gen.Status.CurrentStep
	}
	for _, r := range gen.SlideResult {
		output.Slides = append(output.Slides, slideResultOutput{
			SlideIndex:     r.SlideIndex,
			Status:         string(r.State),
			PagesGenerated: r.PagesGenerated,
			Error:          r.Error,
		})
	}

	return j.encode(output)
}

// PrintHistory prints the local history in JSON format.
func (j *JSONPrinter) PrintHistory(templates []model.TemplateRecord, generations []model.GenerationRecord) error {
	output := historyOutput{
		Templates:   make([]templateRecordOutput, len(templates)),
		Generations: make([]generationRecordOutput, len(generations)),
	}
	for i, r := range templates {
		output.Templates[i] = templateRecordOutput{
			TemplateID: r.TemplateID,
			Filename:   r.Filename,
			SizeBytes:  r.SizeBytes,
			SlideCount: r.SlideCount,
			UploadedAt: r.UploadedAt.UTC(),
		}
		if r.AnalyzedAt != nil {
			utcTime := r.AnalyzedAt.UTC()
			output.Templates[i].AnalyzedAt = &utcTime
		}
	}
	for i, r := range generations {
		output.Generations[i] = generationRecordOutput{
			GenerationID: r.GenerationID,
			Kind:         string(r.Kind),
			SlideCount:   r.SlideCount,
			Status:       string(r.State),
			TotalPages:   r.TotalPages,
			OutputPath:   r.OutputPath,
			CreatedAt:    r.CreatedAt.UTC(),
		}
	}

	return j.encode(output)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
