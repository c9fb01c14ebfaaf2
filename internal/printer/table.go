package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/deckgen/deckgen/internal/model"
)

// TablePrinter prints deck generation information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTemplateList prints remote templates in a table format.
func (t *TablePrinter) PrintTemplateList(templates []model.Template) error {
	if len(templates) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "ID\tFILENAME\tSTATUS\tSIZE\tCREATED")

	// Print rows.
	for _, tpl := range templates {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			tpl.ID,
			tpl.Filename,
			tpl.Status,
			FormatBytes(tpl.SizeBytes),
			TimeAgo(tpl.CreatedAt),
		)
	}

	return nil
}

// PrintUpload prints the result of a template upload.
func (t *TablePrinter) PrintUpload(upload model.TemplateUpload) error {
	fmt.Fprintf(t.writer, "Template ID:  %s\n", upload.TemplateID)
	return nil
}

// PrintAnalysis prints the template analysis with its discovered slides.
func (t *TablePrinter) PrintAnalysis(analysis model.TemplateAnalysis) error {
	fmt.Fprintf(t.writer, "Template:  %s\n", analysis.TemplateID)
	fmt.Fprintf(t.writer, "Status:    %s\n", analysis.Status.State)
	fmt.Fprintf(t.writer, "Slides:    %d\n", len(analysis.Slides))

	if len(analysis.Slides) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer)
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "SLIDE ID\tNUMBER\tNAME\tPLACEHOLDERS")
	for _, s := range analysis.Slides {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", s.SlideID, s.SlideNumber, s.Name, len(s.Placeholders))
	}

	return nil
}

// PrintGeneration prints detailed generation status, including per-slide
// results when present.
func (t *TablePrinter) PrintGeneration(gen model.Generation) error {
	fmt.Fprintf(t.writer, "Generation:  %s\n", gen.ID)
	fmt.Fprintf(t.writer, "Status:      %s\n", gen.Status.State)
	if !gen.Status.State.Terminal() {
		fmt.Fprintf(t.writer, "Progress:    %d%%\n", gen.Status.Progress)
		fmt.Fprintf(t.writer, "Step:        %s\n", gen.Status.CurrentStep)
	}
	if gen.TotalPages > 0 {
		fmt.Fprintf(t.writer, "Pages:       %d\n", gen.TotalPages)
	}
	if gen.DownloadURL != "" {
		fmt.Fprintf(t.writer, "Download:    %s\n", gen.DownloadURL)
	}

	if len(gen.SlideResult) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer)
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "SLIDE\tSTATUS\tPAGES\tERROR")
	for _, r := range gen.SlideResult {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", r.SlideIndex, r.State, r.PagesGenerated, r.Error)
	}

	return nil
}

// PrintHistory prints the local upload and generation history.
func (t *TablePrinter) PrintHistory(templates []model.TemplateRecord, generations []model.GenerationRecord) error {
	if len(templates) > 0 {
		fmt.Fprintln(t.writer, "Templates:")
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tFILENAME\tSIZE\tSLIDES\tUPLOADED")
		for _, r := range templates {
			slides := "-"
			if r.AnalyzedAt != nil {
				slides = fmt.Sprintf("%d", r.SlideCount)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				r.TemplateID,
				r.Filename,
				FormatBytes(r.SizeBytes),
				slides,
				TimeAgo(r.UploadedAt),
			)
		}
		tw.Flush()
	}

	if len(generations) > 0 {
		if len(templates) > 0 {
			fmt.Fprintln(t.writer)
		}
		fmt.Fprintln(t.writer, "Generations:")
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tKIND\tSLIDES\tSTATUS\tPAGES\tCREATED")
		for _, r := range generations {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%s\n",
				r.GenerationID,
				r.Kind,
				r.SlideCount,
				r.State,
				r.TotalPages,
				TimeAgo(r.CreatedAt),
			)
		}
		tw.Flush()
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
