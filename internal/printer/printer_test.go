package printer_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/printer"
)

func analysisFixture() model.TemplateAnalysis {
	return model.TemplateAnalysis{
		TemplateID: "tpl-1",
		Status:     model.OperationStatus{State: model.OperationStateCompleted, Progress: 100},
		Slides: []model.TemplateSlide{
			{SlideID: "s-0", SlideNumber: 1, Name: "Table layout", Placeholders: []model.Placeholder{{Name: "title"}, {Name: "table"}}},
			{SlideID: "s-1", SlideNumber: 2, Name: "Table and bullets", Placeholders: []model.Placeholder{{Name: "title"}}},
		},
	}
}

func generationFixture() model.Generation {
	return model.Generation{
		ID:         "gen-1",
		Status:     model.OperationStatus{State: model.OperationStatePartial},
		TotalPages: 2,
		SlideResult: []model.SlideResult{
			{SlideIndex: 0, State: model.OperationStateCompleted, PagesGenerated: 2},
			{SlideIndex: 1, State: model.OperationStateFailed, Error: "placeholder mismatch"},
		},
	}
}

func TestTablePrinterPrintTemplateList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTemplateList([]model.Template{
		{ID: "tpl-1", Filename: "q4.pptx", Status: "ready", SizeBytes: 2048, CreatedAt: time.Now().UTC()},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "tpl-1")
	assert.Contains(t, out, "q4.pptx")
	assert.Contains(t, out, "2.0 KB")
}

func TestTablePrinterPrintTemplateListEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTemplateList(nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestTablePrinterPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintAnalysis(analysisFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Template:  tpl-1")
	assert.Contains(t, out, "Status:    completed")
	assert.Contains(t, out, "s-0")
	assert.Contains(t, out, "Table and bullets")
}

func TestTablePrinterPrintGeneration(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintGeneration(generationFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Generation:  gen-1")
	assert.Contains(t, out, "Status:      partial")
	assert.Contains(t, out, "placeholder mismatch")
	// Terminal generations have no progress line.
	assert.NotContains(t, out, "Progress:")
}

func TestTablePrinterPrintGenerationOngoing(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintGeneration(model.Generation{
		ID:     "gen-1",
		Status: model.OperationStatus{State: model.OperationStateOngoing, Progress: 40, CurrentStep: "Generating slide 1"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Progress:    40%")
	assert.Contains(t, out, "Step:        Generating slide 1")
}

func TestTablePrinterPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	analyzedAt := time.Now().UTC()
	err := p.PrintHistory(
		[]model.TemplateRecord{
			{TemplateID: "tpl-1", Filename: "q4.pptx", SizeBytes: 1024, UploadedAt: time.Now().UTC(), AnalyzedAt: &analyzedAt, SlideCount: 4},
			{TemplateID: "tpl-2", Filename: "draft.pptx", SizeBytes: 512, UploadedAt: time.Now().UTC()},
		},
		[]model.GenerationRecord{
			{GenerationID: "gen-1", Kind: model.GenerationKindDeck, SlideCount: 2, State: model.OperationStateCompleted, TotalPages: 3, CreatedAt: time.Now().UTC()},
		},
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Templates:")
	assert.Contains(t, out, "Generations:")
	assert.Contains(t, out, "tpl-1")
	assert.Contains(t, out, "gen-1")
	// Unanalyzed templates show a dash instead of a slide count.
	lines := strings.Split(out, "\n")
	var draftLine string
	for _, l := range lines {
		if strings.Contains(l, "draft.pptx") {
			draftLine = l
		}
	}
	assert.Contains(t, draftLine, "-")
}

func TestJSONPrinterPrintTemplateList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintTemplateList([]model.Template{
		{ID: "tpl-1", Filename: "q4.pptx", Status: "ready", SizeBytes: 2048},
	})
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "tpl-1", items[0]["id"])
	assert.Equal(t, "q4.pptx", items[0]["filename"])
}

func TestJSONPrinterPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintAnalysis(analysisFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"template_id": "tpl-1"`)
	assert.Contains(t, out, `"status": "completed"`)
	assert.Contains(t, out, `"slide_id": "s-0"`)
	assert.Contains(t, out, `"placeholders": 2`)
}

func TestJSONPrinterPrintGeneration(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintGeneration(generationFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"status": "partial"`)
	assert.Contains(t, out, `"error": "placeholder mismatch"`)
}

func TestJSONPrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintMessage("Downloaded deck.pptx")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "Downloaded deck.pptx"}`, buf.String())
}

func TestFormatBytes(t *testing.T) {
	tests := map[string]struct {
		bytes int64
		exp   string
	}{
		"Negative bytes should clamp to zero.":  {bytes: -5, exp: "0 B"},
		"Bytes below 1 KB should stay bytes.":   {bytes: 512, exp: "512 B"},
		"Kilobytes should use one decimal.":     {bytes: 1536, exp: "1.5 KB"},
		"Megabytes should use one decimal.":     {bytes: 3 * 1024 * 1024, exp: "3.0 MB"},
		"Gigabytes should use one decimal.":     {bytes: 10 * 1024 * 1024 * 1024, exp: "10.0 GB"},
		"Terabytes should be the top unit.":     {bytes: 2 * 1024 * 1024 * 1024 * 1024, exp: "2.0 TB"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, printer.FormatBytes(test.bytes))
		})
	}
}

func TestTimeAgo(t *testing.T) {
	tests := map[string]struct {
		t   time.Time
		exp string
	}{
		"A time seconds ago should print seconds.": {t: time.Now().Add(-5 * time.Second), exp: "seconds ago (UTC)"},
		"A time minutes ago should print minutes.": {t: time.Now().Add(-2 * time.Minute), exp: "minutes ago (UTC)"},
		"A time hours ago should print hours.":     {t: time.Now().Add(-3 * time.Hour), exp: "hours ago (UTC)"},
		"A time days ago should print days.":       {t: time.Now().Add(-48 * time.Hour), exp: "days ago (UTC)"},
		"A future time should say so.":             {t: time.Now().Add(time.Hour), exp: "in the future (UTC)"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, printer.TimeAgo(test.t), test.exp)
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 1, 30, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-30 10:30:00 UTC", printer.FormatTimestamp(ts))
}
