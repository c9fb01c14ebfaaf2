package model

import "fmt"

// SlideData is the content used to populate a template slide.
type SlideData struct {
	Title    string
	Subtitle string
	Content  *SlideContent
}

// SlideContent holds the ordered content blocks of a slide.
type SlideContent struct {
	Blocks []ContentBlock
}

// Content block types.
const (
	BlockTypeText  = "text"
	BlockTypeTable = "table"
)

// ContentBlock is a single content unit on a slide, either text or a table.
type ContentBlock struct {
	Type  string
	Text  *TextContent
	Table *TableContent
}

// Validate validates the content block.
func (b *ContentBlock) Validate() error {
	switch b.Type {
	case BlockTypeText:
		if b.Text == nil {
			return fmt.Errorf("text block requires text content: %w", ErrNotValid)
		}
	case BlockTypeTable:
		if b.Table == nil {
			return fmt.Errorf("table block requires table content: %w", ErrNotValid)
		}
	default:
		return fmt.Errorf("unknown block type %q: %w", b.Type, ErrNotValid)
	}
	return nil
}

// TextContent is a text block with an optional header and bullet items.
type TextContent struct {
	Header  string
	Bullets []string
}

// TableContent is a table block: data rows plus formatting.
type TableContent struct {
	Format          *TableFormat
	FormatTemplates map[string]FormatTemplate
	ColumnConfigs   []ColumnConfig
	Rows            []TableRow
}

// TableFormat holds the base cell styles of a table.
type TableFormat struct {
	Default      *CellStyle
	HeaderRow    *CellStyle
	HeaderColumn *CellStyle
}

// CellStyle styles a table cell: text attributes and cell fill.
type CellStyle struct {
	Text *TextStyle
	Cell *CellFill
}

// TextStyle holds text formatting attributes.
type TextStyle struct {
	FontName string
	FontSize int
	Bold     bool
	Color    string
}

// CellFill holds cell-level formatting attributes.
type CellFill struct {
	BackgroundColor string
}

// FormatTemplate is a named set of conditional formatting rules, referenced
// by column configs.
type FormatTemplate struct {
	Rules []FormatRule
}

// FormatRule applies a cell style when its condition matches the cell value.
type FormatRule struct {
	Condition FormatCondition
	Cell      *CellFill
	Text      *TextStyle
}

// FormatCondition is the predicate of a conditional formatting rule,
// evaluated server-side.
type FormatCondition struct {
	Field    string
	Operator string
	Value    string
}

// ColumnConfig configures a single table column.
type ColumnConfig struct {
	ColumnIndex    int
	IsHeader       bool
	FormatTemplate string
}

// TableRow is a row of table cells.
type TableRow struct {
	IsHeader bool
	Cells    []TableCell
}

// TableCell is a single table cell value.
type TableCell struct {
	Value string
}

// GenerateOptions tune server-side generation behavior.
type GenerateOptions struct {
	AutoPaginateTables     bool
	TableMinFontSize       int
	AllowTextboxReposition bool
}

// SlideRequest asks for one slide generated from a template slide.
type SlideRequest struct {
	TemplateSlideID string
	SlideData       SlideData
	// Options override deck-level options for this slide.
	Options *GenerateOptions
}

// Validate validates the slide request.
func (r *SlideRequest) Validate() error {
	if r.TemplateSlideID == "" {
		return fmt.Errorf("template slide id is required: %w", ErrNotValid)
	}
	if r.SlideData.Content != nil {
		for i, b := range r.SlideData.Content.Blocks {
			if err := b.Validate(); err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
		}
	}
	return nil
}

// DeckRequest asks for a full presentation deck.
type DeckRequest struct {
	Slides  []SlideRequest
	Options *GenerateOptions
}

// Validate validates the deck request. Every slide must already reference a
// template slide, this is checked before any network call.
func (r *DeckRequest) Validate() error {
	if len(r.Slides) == 0 {
		return fmt.Errorf("at least one slide is required: %w", ErrNotValid)
	}
	for i, s := range r.Slides {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
	}
	return nil
}

// Generation represents a presentation generation job as reported by the
// remote service. For the synchronous single-slide path it is already
// terminal on creation; for decks it is observed through status polling.
type Generation struct {
	ID          string
	Status      OperationStatus
	TotalPages  int
	SlideResult []SlideResult
	DownloadURL string
}

// OperationStatus implements StatusReporter.
func (g *Generation) OperationStatus() OperationStatus { return g.Status }

// SlideResult is the per-slide outcome of a deck generation.
type SlideResult struct {
	SlideIndex     int
	State          OperationState
	PagesGenerated int
	Error          string
}
