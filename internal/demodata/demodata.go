// Package demodata holds the built-in sample content used by the end-to-end
// demo: a two-slide deck exercising tables, conditional styling and bullet
// text blocks.
package demodata

import (
	"fmt"

	"github.com/deckgen/deckgen/internal/model"
)

// TemplateMetadata is the metadata attached to the demo template upload.
func TemplateMetadata() model.TemplateMetadata {
	return model.TemplateMetadata{
		Category:    "demo",
		Tags:        []string{"tables", "example"},
		Description: "Demo template with table layouts",
	}
}

// DeckRequest returns the sample deck request. The template slide IDs are
// left empty, AssignTemplateSlides fills them in after analysis.
func DeckRequest() *model.DeckRequest {
	return &model.DeckRequest{
		Slides: []model.SlideRequest{
			satisfactionSlide(),
			renewalSlide(),
		},
		Options: &model.GenerateOptions{
			AutoPaginateTables: true,
			TableMinFontSize:   10,
		},
	}
}

// AssignTemplateSlides maps the demo slides onto the analyzed template
// slides. The satisfaction slide carries a text block next to its table, so
// it goes on the second template slide (table plus bullet layout) and the
// renewal slide on the first (table only layout). With a single-slide
// template everything goes on that slide.
func AssignTemplateSlides(req *model.DeckRequest, slides []model.TemplateSlide) error {
	if len(slides) == 0 {
		return fmt.Errorf("template has no slides: %w", model.ErrNotValid)
	}

	first := slides[0].SlideID
	second := first
	if len(slides) > 1 {
		second = slides[1].SlideID
	}

	if len(req.Slides) >= 2 {
		req.Slides[0].TemplateSlideID = second
		req.Slides[1].TemplateSlideID = first
		return nil
	}
	for i := range req.Slides {
		req.Slides[i].TemplateSlideID = first
	}
	return nil
}

func satisfactionSlide() model.SlideRequest {
	return model.SlideRequest{
		SlideData: model.SlideData{
			Title:    "Customer Satisfaction by Segment",
			Subtitle: "Q4 survey results",
			Content: &model.SlideContent{
				Blocks: []model.ContentBlock{
					{
						Type: model.BlockTypeTable,
						Table: &model.TableContent{
							Format:          tableFormat(),
							FormatTemplates: growthTemplates(),
							ColumnConfigs: []model.ColumnConfig{
								{ColumnIndex: 0, IsHeader: true},
								{ColumnIndex: 3, FormatTemplate: "growth_status"},
							},
							Rows: []model.TableRow{
								headerRow("Segment", "Score", "Responses", "Trend"),
								dataRow("Enterprise", "8.7", "412", "+4%"),
								dataRow("Mid-market", "8.1", "1,203", "+2%"),
								dataRow("SMB", "7.4", "3,877", "-3%"),
							},
						},
					},
					{
						Type: model.BlockTypeText,
						Text: &model.TextContent{
							Header: "Key Takeaways",
							Bullets: []string{
								"Enterprise satisfaction at an all-time high",
								"SMB decline driven by onboarding friction",
								"Support response times improved across all segments",
							},
						},
					},
				},
			},
		},
	}
}

func renewalSlide() model.SlideRequest {
	return model.SlideRequest{
		SlideData: model.SlideData{
			Title: "Renewal Outlook by Region",
			Content: &model.SlideContent{
				Blocks: []model.ContentBlock{
					{
						Type: model.BlockTypeTable,
						Table: &model.TableContent{
							Format:          tableFormat(),
							FormatTemplates: growthTemplates(),
							ColumnConfigs: []model.ColumnConfig{
								{ColumnIndex: 0, IsHeader: true},
								{ColumnIndex: 3, FormatTemplate: "growth_status"},
							},
							Rows: []model.TableRow{
								headerRow("Region", "Revenue", "Target", "Growth"),
								dataRow("North America", "$4.2M", "$4.0M", "+5%"),
								dataRow("Europe", "$2.8M", "$3.0M", "-7%"),
								dataRow("Asia Pacific", "$1.9M", "$1.5M", "+27%"),
							},
						},
					},
				},
			},
		},
	}
}

func tableFormat() *model.TableFormat {
	return &model.TableFormat{
		Default: &model.CellStyle{
			Text: &model.TextStyle{FontName: "Arial", FontSize: 10},
		},
		HeaderRow: &model.CellStyle{
			Text: &model.TextStyle{Bold: true, Color: "#FFFFFF"},
			Cell: &model.CellFill{BackgroundColor: "#2E75B6"},
		},
		HeaderColumn: &model.CellStyle{
			Text: &model.TextStyle{Bold: true},
		},
	}
}

func growthTemplates() map[string]model.FormatTemplate {
	return map[string]model.FormatTemplate{
		"growth_status": {
			Rules: []model.FormatRule{
				{
					Condition: model.FormatCondition{Field: "value", Operator: "contains", Value: "+"},
					Cell:      &model.CellFill{BackgroundColor: "#C6EFCE"},
				},
				{
					Condition: model.FormatCondition{Field: "value", Operator: "contains", Value: "-"},
					Cell:      &model.CellFill{BackgroundColor: "#FFC7CE"},
				},
			},
		},
	}
}

func headerRow(values ...string) model.TableRow {
	row := model.TableRow{IsHeader: true}
	for _, v := range values {
		row.Cells = append(row.Cells, model.TableCell{Value: v})
	}
	return row
}

func dataRow(values ...string) model.TableRow {
	row := model.TableRow{}
	for _, v := range values {
		row.Cells = append(row.Cells, model.TableCell{Value: v})
	}
	return row
}
