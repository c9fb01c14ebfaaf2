// Package deckfile loads deck generation requests from user-authored files.
// JSON and YAML are supported, selected by file extension.
package deckfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/deckgen/deckgen/internal/model"
)

// Load reads the deck request from the file at path. `.yaml` and `.yml`
// files are parsed as YAML, anything else as JSON. The request is validated
// before being returned.
func Load(path string) (*model.DeckRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read deck file %s: %w", path, err)
	}

	var file deckFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("could not parse deck file %s: %w: %s", path, model.ErrNotValid, err)
	}

	req := file.toModel()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("deck file %s: %w", path, err)
	}

	return req, nil
}

type deckFile struct {
	Slides  []slideFile  `json:"slides" yaml:"slides"`
	Options *optionsFile `json:"options,omitempty" yaml:"options,omitempty"`
}

type slideFile struct {
	TemplateSlideID string       `json:"template_slide_id" yaml:"template_slide_id"`
	Title           string       `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle        string       `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Blocks          []blockFile  `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Options         *optionsFile `json:"options,omitempty" yaml:"options,omitempty"`
}

type blockFile struct {
	Type  string     `json:"type" yaml:"type"`
	Text  *textFile  `json:"text,omitempty" yaml:"text,omitempty"`
	Table *tableFile `json:"table,omitempty" yaml:"table,omitempty"`
}

type textFile struct {
	Header  string   `json:"header,omitempty" yaml:"header,omitempty"`
	Bullets []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
}

type tableFile struct {
	Format          *tableFormatFile              `json:"table_format,omitempty" yaml:"table_format,omitempty"`
	FormatTemplates map[string]formatTemplateFile `json:"format_templates,omitempty" yaml:"format_templates,omitempty"`
	ColumnConfigs   []columnConfigFile            `json:"column_configs,omitempty" yaml:"column_configs,omitempty"`
	Rows            []rowFile                     `json:"rows" yaml:"rows"`
}

type tableFormatFile struct {
	Default      *cellStyleFile `json:"default,omitempty" yaml:"default,omitempty"`
	HeaderRow    *cellStyleFile `json:"header_row,omitempty" yaml:"header_row,omitempty"`
	HeaderColumn *cellStyleFile `json:"header_column,omitempty" yaml:"header_column,omitempty"`
}

type cellStyleFile struct {
	Text *textStyleFile `json:"text,omitempty" yaml:"text,omitempty"`
	Cell *cellFillFile  `json:"cell,omitempty" yaml:"cell,omitempty"`
}

type textStyleFile struct {
	FontName string `json:"font_name,omitempty" yaml:"font_name,omitempty"`
	FontSize int    `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	Bold     bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
}

type cellFillFile struct {
	BackgroundColor string `json:"background_color,omitempty" yaml:"background_color,omitempty"`
}

type formatTemplateFile struct {
	Rules []formatRuleFile `json:"rules" yaml:"rules"`
}

type formatRuleFile struct {
	Condition formatConditionFile `json:"condition" yaml:"condition"`
	Cell      *cellFillFile       `json:"cell,omitempty" yaml:"cell,omitempty"`
	Text      *textStyleFile      `json:"text,omitempty" yaml:"text,omitempty"`
}

type formatConditionFile struct {
	Field    string `json:"field" yaml:"field"`
	Operator string `json:"operator" yaml:"operator"`
	Value    string `json:"value" yaml:"value"`
}

type columnConfigFile struct {
	ColumnIndex    int    `json:"column_index" yaml:"column_index"`
	IsHeader       bool   `json:"is_header,omitempty" yaml:"is_header,omitempty"`
	FormatTemplate string `json:"format_template,omitempty" yaml:"format_template,omitempty"`
}

type rowFile struct {
	IsHeader bool     `json:"is_header,omitempty" yaml:"is_header,omitempty"`
	Cells    []string `json:"cells" yaml:"cells"`
}

type optionsFile struct {
	AutoPaginateTables     bool `json:"auto_paginate_tables,omitempty" yaml:"auto_paginate_tables,omitempty"`
	TableMinFontSize       int  `json:"table_min_font_size,omitempty" yaml:"table_min_font_size,omitempty"`
	AllowTextboxReposition bool `json:"allow_textbox_reposition,omitempty" yaml:"allow_textbox_reposition,omitempty"`
}

func (f deckFile) toModel() *model.DeckRequest {
	req := &model.DeckRequest{
		Slides:  make([]model.SlideRequest, 0, len(f.Slides)),
		Options: f.Options.toModel(),
	}
	for _, s := range f.Slides {
		req.Slides = append(req.Slides, s.toModel())
	}
	return req
}

func (f slideFile) toModel() model.SlideRequest {
	req := model.SlideRequest{
		TemplateSlideID: f.TemplateSlideID,
		SlideData: model.SlideData{
			Title:    f.Title,
			Subtitle: f.Subtitle,
		},
		Options: f.Options.toModel(),
	}
	if len(f.Blocks) > 0 {
		content := &model.SlideContent{Blocks: make([]model.ContentBlock, 0, len(f.Blocks))}
		for _, b := range f.Blocks {
			content.Blocks = append(content.Blocks, b.toModel())
		}
		req.SlideData.Content = content
	}
	return req
}

func (f blockFile) toModel() model.ContentBlock {
	block := model.ContentBlock{Type: f.Type}
	if f.Text != nil {
		block.Text = &model.TextContent{Header: f.Text.Header, Bullets: f.Text.Bullets}
	}
	if f.Table != nil {
		block.Table = f.Table.toModel()
	}
	return block
}

func (f *tableFile) toModel() *model.TableContent {
	table := &model.TableContent{
		Format: f.Format.toModel(),
		Rows:   make([]model.TableRow, 0, len(f.Rows)),
	}
	if len(f.FormatTemplates) > 0 {
		table.FormatTemplates = make(map[string]model.FormatTemplate, len(f.FormatTemplates))
		for name, tpl := range f.FormatTemplates {
			table.FormatTemplates[name] = tpl.toModel()
		}
	}
	for _, c := range f.ColumnConfigs {
		table.ColumnConfigs = append(table.ColumnConfigs, model.ColumnConfig{
			ColumnIndex:    c.ColumnIndex,
			IsHeader:       c.IsHeader,
			FormatTemplate: c.FormatTemplate,
		})
	}
	for _, r := range f.Rows {
		row := model.TableRow{IsHeader: r.IsHeader}
		for _, v := range r.Cells {
			row.Cells = append(row.Cells, model.TableCell{Value: v})
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func (f *tableFormatFile) toModel() *model.TableFormat {
	if f == nil {
		return nil
	}
	return &model.TableFormat{
		Default:      f.Default.toModel(),
		HeaderRow:    f.HeaderRow.toModel(),
		HeaderColumn: f.HeaderColumn.toModel(),
	}
}

func (f *cellStyleFile) toModel() *model.CellStyle {
	if f == nil {
		return nil
	}
	return &model.CellStyle{
		Text: f.Text.toModel(),
		Cell: f.Cell.toModel(),
	}
}

func (f *textStyleFile) toModel() *model.TextStyle {
	if f == nil {
		return nil
	}
	return &model.TextStyle{
		FontName: f.FontName,
		FontSize: f.FontSize,
		Bold:     f.Bold,
		Color:    f.Color,
	}
}

func (f *cellFillFile) toModel() *model.CellFill {
	if f == nil {
		return nil
	}
	return &model.CellFill{BackgroundColor: f.BackgroundColor}
}

func (f formatTemplateFile) toModel() model.FormatTemplate {
	tpl := model.FormatTemplate{Rules: make([]model.FormatRule, 0, len(f.Rules))}
	for _, r := range f.Rules {
		tpl.Rules = append(tpl.Rules, model.FormatRule{
			Condition: model.FormatCondition{
				Field:    r.Condition.Field,
				Operator: r.Condition.Operator,
				Value:    r.Condition.Value,
			},
			Cell: r.Cell.toModel(),
			Text: r.Text.toModel(),
		})
	}
	return tpl
}

func (f *optionsFile) toModel() *model.GenerateOptions {
	if f == nil {
		return nil
	}
	return &model.GenerateOptions{
		AutoPaginateTables:     f.AutoPaginateTables,
		TableMinFontSize:       f.TableMinFontSize,
		AllowTextboxReposition: f.AllowTextboxReposition,
	}
}
