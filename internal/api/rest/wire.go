package rest

import (
	"github.com/deckgen/deckgen/internal/model"
)

// --- JSON wire types (private, decoded once at the API boundary) ---

type createTemplateJSON struct {
	Filename string       `json:"filename"`
	FileSize int64        `json:"file_size"`
	Metadata metadataJSON `json:"metadata"`
}

type metadataJSON struct {
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
}

type templateUploadJSON struct {
	TemplateID string `json:"template_id"`
	UploadURL  string `json:"upload_url"`
}

type startAnalysisJSON struct {
	Options analysisOptionsJSON `json:"options"`
}

type analysisOptionsJSON struct {
	ParseMasterTemplateLayout   bool `json:"parse_master_template_layout"`
	ParseSlides                 bool `json:"parse_slides"`
	IncludePlaceholderPositions bool `json:"include_placeholder_positions"`
	IncludeTableDetails         bool `json:"include_table_details"`
}

type analysisJSON struct {
	Status      string               `json:"status"`
	Progress    int                  `json:"progress"`
	CurrentStep string               `json:"current_step"`
	Results     *analysisResultsJSON `json:"results"`
}

type analysisResultsJSON struct {
	Slides []templateSlideJSON `json:"slides"`
}

// The analysis results use camelCase slide keys, unlike the rest of the API.
type templateSlideJSON struct {
	SlideID      string            `json:"slideId"`
	SlideNumber  int               `json:"slideNumber"`
	Name         string            `json:"name"`
	Placeholders []placeholderJSON `json:"placeholders"`
}

type placeholderJSON struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Position *positionJSON  `json:"position"`
	Table    *tableDimsJSON `json:"table"`
}

type positionJSON struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type tableDimsJSON struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

type listTemplatesJSON struct {
	Templates []templateJSON `json:"templates"`
}

type templateJSON struct {
	TemplateID string       `json:"template_id"`
	Filename   string       `json:"filename"`
	Status     string       `json:"status"`
	FileSize   int64        `json:"file_size"`
	Metadata   metadataJSON `json:"metadata"`
	CreatedAt  string       `json:"created_at"`
}

type slideRequestJSON struct {
	TemplateSlideID string               `json:"template_slide_id"`
	SlideData       slideDataJSON        `json:"slide_data"`
	Options         *generateOptionsJSON `json:"options,omitempty"`
}

type deckRequestJSON struct {
	Slides  []slideRequestJSON   `json:"slides"`
	Options *generateOptionsJSON `json:"options,omitempty"`
}

type slideDataJSON struct {
	Title    string            `json:"title,omitempty"`
	Subtitle string            `json:"subtitle,omitempty"`
	Content  *slideContentJSON `json:"content,omitempty"`
}

type slideContentJSON struct {
	Blocks []contentBlockJSON `json:"blocks"`
}

type contentBlockJSON struct {
	Type  string           `json:"type"`
	Text  *textContentJSON `json:"text,omitempty"`
	Table *tableOuterJSON  `json:"table,omitempty"`
}

type textContentJSON struct {
	Header  string   `json:"header,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// The wire contract nests the table payload one level deeper than the block:
// {"type": "table", "table": {"table": {...}}}.
type tableOuterJSON struct {
	Table tableContentJSON `json:"table"`
}

type tableContentJSON struct {
	TableFormat     *tableFormatJSON              `json:"table_format,omitempty"`
	FormatTemplates map[string]formatTemplateJSON `json:"format_templates,omitempty"`
	ColumnConfigs   []columnConfigJSON            `json:"column_configs,omitempty"`
	Rows            []tableRowJSON                `json:"rows"`
}

type tableFormatJSON struct {
	Default      *cellStyleJSON `json:"default,omitempty"`
	HeaderRow    *cellStyleJSON `json:"header_row,omitempty"`
	HeaderColumn *cellStyleJSON `json:"header_column,omitempty"`
}

type cellStyleJSON struct {
	Text *textStyleJSON `json:"text,omitempty"`
	Cell *cellFillJSON  `json:"cell,omitempty"`
}

type textStyleJSON struct {
	FontName string `json:"font_name,omitempty"`
	FontSize int    `json:"font_size,omitempty"`
	Bold     bool   `json:"bold,omitempty"`
	Color    string `json:"color,omitempty"`
}

type cellFillJSON struct {
	BackgroundColor string `json:"background_color,omitempty"`
}

type formatTemplateJSON struct {
	Rules []formatRuleJSON `json:"rules"`
}

type formatRuleJSON struct {
	Condition formatConditionJSON `json:"condition"`
	Cell      *cellFillJSON       `json:"cell,omitempty"`
	Text      *textStyleJSON      `json:"text,omitempty"`
}

type formatConditionJSON struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type columnConfigJSON struct {
	ColumnIndex    int    `json:"column_index"`
	IsHeader       bool   `json:"is_header,omitempty"`
	FormatTemplate string `json:"format_template,omitempty"`
}

type tableRowJSON struct {
	IsHeader bool            `json:"is_header,omitempty"`
	Cells    []tableCellJSON `json:"cells"`
}

type tableCellJSON struct {
	Value string `json:"value"`
}

type generateOptionsJSON struct {
	AutoPaginateTables     bool `json:"auto_paginate_tables,omitempty"`
	TableMinFontSize       int  `json:"table_min_font_size,omitempty"`
	AllowTextboxReposition bool `json:"allow_textbox_reposition,omitempty"`
}

type generationJSON struct {
	GenerationID        string            `json:"generation_id"`
	Status              string            `json:"status"`
	Progress            int               `json:"progress"`
	CurrentStep         string            `json:"current_step"`
	PagesGenerated      int               `json:"pages_generated"`
	TotalPagesGenerated int               `json:"total_pages_generated"`
	SlideResults        []slideResultJSON `json:"slide_results"`
	DownloadURL         string            `json:"download_url"`
}

type slideResultJSON struct {
	SlideIndex     int    `json:"slide_index"`
	Status         string `json:"status"`
	PagesGenerated int    `json:"pages_generated"`
	Error          string `json:"error"`
}

// --- Wire to model conversion ---

func statusToModel(status string, progress int, currentStep string) model.OperationStatus {
	if currentStep == "" {
		currentStep = model.DefaultCurrentStep
	}
	return model.OperationStatus{
		State:       model.ParseOperationState(status),
		Progress:    progress,
		CurrentStep: currentStep,
	}
}

func (a *analysisJSON) toModel(templateID string) *model.TemplateAnalysis {
	analysis := &model.TemplateAnalysis{
		TemplateID: templateID,
		Status:     statusToModel(a.Status, a.Progress, a.CurrentStep),
	}

	if a.Results == nil {
		return analysis
	}

	analysis.Slides = make([]model.TemplateSlide, 0, len(a.Results.Slides))
	for _, s := range a.Results.Slides {
		slide := model.TemplateSlide{
			SlideID:     s.SlideID,
			SlideNumber: s.SlideNumber,
			Name:        s.Name,
		}
		for _, p := range s.Placeholders {
			placeholder := model.Placeholder{Name: p.Name, Type: p.Type}
			if p.Position != nil {
				placeholder.Position = &model.PlaceholderPosition{
					X: p.Position.X, Y: p.Position.Y,
					Width: p.Position.Width, Height: p.Position.Height,
				}
			}
			if p.Table != nil {
				placeholder.Table = &model.TableDimensions{Rows: p.Table.Rows, Columns: p.Table.Columns}
			}
			slide.Placeholders = append(slide.Placeholders, placeholder)
		}
		analysis.Slides = append(analysis.Slides, slide)
	}

	return analysis
}

func (t *templateJSON) toModel() model.Template {
	return model.Template{
		ID:        t.TemplateID,
		Filename:  t.Filename,
		Status:    t.Status,
		SizeBytes: t.FileSize,
		Metadata: model.TemplateMetadata{
			Category:    t.Metadata.Category,
			Tags:        t.Metadata.Tags,
			Description: t.Metadata.Description,
		},
		CreatedAt: parseTimestamp(t.CreatedAt),
	}
}

func (g *generationJSON) toModel() *model.Generation {
	totalPages := g.TotalPagesGenerated
	if totalPages == 0 {
		totalPages = g.PagesGenerated
	}

	gen := &model.Generation{
		ID:          g.GenerationID,
		Status:      statusToModel(g.Status, g.Progress, g.CurrentStep),
		TotalPages:  totalPages,
		DownloadURL: g.DownloadURL,
	}

	for _, sr := range g.SlideResults {
		gen.SlideResult = append(gen.SlideResult, model.SlideResult{
			SlideIndex:     sr.SlideIndex,
			State:          model.ParseOperationState(sr.Status),
			PagesGenerated: sr.PagesGenerated,
			Error:          sr.Error,
		})
	}

	return gen
}

// --- Model to wire conversion ---

func slideRequestToWire(r model.SlideRequest) slideRequestJSON {
	return slideRequestJSON{
		TemplateSlideID: r.TemplateSlideID,
		SlideData:       slideDataToWire(r.SlideData),
		Options:         generateOptionsToWire(r.Options),
	}
}

func slideDataToWire(d model.SlideData) slideDataJSON {
	wire := slideDataJSON{Title: d.Title, Subtitle: d.Subtitle}
	if d.Content == nil {
		return wire
	}

	content := &slideContentJSON{Blocks: make([]contentBlockJSON, 0, len(d.Content.Blocks))}
	for _, b := range d.Content.Blocks {
		block := contentBlockJSON{Type: b.Type}
		if b.Text != nil {
			block.Text = &textContentJSON{Header: b.Text.Header, Bullets: b.Text.Bullets}
		}
		if b.Table != nil {
			block.Table = &tableOuterJSON{Table: tableContentToWire(b.Table)}
		}
		content.Blocks = append(content.Blocks, block)
	}
	wire.Content = content

	return wire
}

func tableContentToWire(t *model.TableContent) tableContentJSON {
	wire := tableContentJSON{}

	if t.Format != nil {
		wire.TableFormat = &tableFormatJSON{
			Default:      cellStyleToWire(t.Format.Default),
			HeaderRow:    cellStyleToWire(t.Format.HeaderRow),
			HeaderColumn: cellStyleToWire(t.Format.HeaderColumn),
		}
	}

	if len(t.FormatTemplates) > 0 {
		wire.FormatTemplates = make(map[string]formatTemplateJSON, len(t.FormatTemplates))
		for name, ft := range t.FormatTemplates {
			rules := make([]formatRuleJSON, 0, len(ft.Rules))
			for _, r := range ft.Rules {
				rules = append(rules, formatRuleJSON{
					Condition: formatConditionJSON{
						Field:    r.Condition.Field,
						Operator: r.Condition.Operator,
						Value:    r.Condition.Value,
					},
					Cell: cellFillToWire(r.Cell),
					Text: textStyleToWire(r.Text),
				})
			}
			wire.FormatTemplates[name] = formatTemplateJSON{Rules: rules}
		}
	}

	for _, cc := range t.ColumnConfigs {
		wire.ColumnConfigs = append(wire.ColumnConfigs, columnConfigJSON{
			ColumnIndex:    cc.ColumnIndex,
			IsHeader:       cc.IsHeader,
			FormatTemplate: cc.FormatTemplate,
		})
	}

	for _, row := range t.Rows {
		wireRow := tableRowJSON{IsHeader: row.IsHeader, Cells: make([]tableCellJSON, 0, len(row.Cells))}
		for _, cell := range row.Cells {
			wireRow.Cells = append(wireRow.Cells, tableCellJSON{Value: cell.Value})
		}
		wire.Rows = append(wire.Rows, wireRow)
	}

	return wire
}

func cellStyleToWire(s *model.CellStyle) *cellStyleJSON {
	if s == nil {
		return nil
	}
	return &cellStyleJSON{
		Text: textStyleToWire(s.Text),
		Cell: cellFillToWire(s.Cell),
	}
}

func textStyleToWire(s *model.TextStyle) *textStyleJSON {
	if s == nil {
		return nil
	}
	return &textStyleJSON{FontName: s.FontName, FontSize: s.FontSize, Bold: s.Bold, Color: s.Color}
}

func cellFillToWire(f *model.CellFill) *cellFillJSON {
	if f == nil {
		return nil
	}
	return &cellFillJSON{BackgroundColor: f.BackgroundColor}
}

func generateOptionsToWire(o *model.GenerateOptions) *generateOptionsJSON {
	if o == nil {
		return nil
	}
	return &generateOptionsJSON{
		AutoPaginateTables:     o.AutoPaginateTables,
		TableMinFontSize:       o.TableMinFontSize,
		AllowTextboxReposition: o.AllowTextboxReposition,
	}
}
