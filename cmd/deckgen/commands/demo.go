package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/deckgen/deckgen/internal/app/analyze"
	"github.com/deckgen/deckgen/internal/app/download"
	"github.com/deckgen/deckgen/internal/app/generatedeck"
	"github.com/deckgen/deckgen/internal/app/upload"
	"github.com/deckgen/deckgen/internal/demodata"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/operation"
)

type DemoCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	file         string
	output       string
	pollInterval time.Duration
	maxAttempts  int
}

// NewDemoCommand returns the demo command: an end-to-end run of upload,
// analysis, deck generation and download using the built-in sample deck.
func NewDemoCommand(rootCmd *RootCommand, app *kingpin.Application) *DemoCommand {
	c := &DemoCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("demo", "Run the full upload, analyze, generate and download flow with sample content.")
	c.Cmd.Arg("file", "Path to a template file to use for the demo.").Required().StringVar(&c.file)
	c.Cmd.Flag("output", "Download the generated deck to this path.").Short('o').Default("demo_output.pptx").StringVar(&c.output)
	c.Cmd.Flag("poll-interval", "Wait between status polls.").Default("3s").DurationVar(&c.pollInterval)
	c.Cmd.Flag("max-attempts", "Maximum number of status polls.").Default("60").IntVar(&c.maxAttempts)

	return c
}

func (c DemoCommand) Name() string { return c.Cmd.FullCommand() }

func (c DemoCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.newAPIClient()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	poll := operation.Config{
		Interval:    c.pollInterval,
		MaxAttempts: c.maxAttempts,
		Notify: func(status model.OperationStatus) {
			fmt.Fprintf(c.rootCmd.Stderr, "  [%3d%%] %s\n", status.Progress, status.CurrentStep)
		},
	}

	// Step 1: upload the template.
	fmt.Fprintln(c.rootCmd.Stdout, "[1/4] Uploading template...")
	uploadSvc, err := upload.NewService(upload.ServiceConfig{
		Client:     client,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	uploaded, err := uploadSvc.Run(ctx, upload.Request{
		Path:     c.file,
		Metadata: demodata.TemplateMetadata(),
	})
	if err != nil {
		return fmt.Errorf("could not upload template: %w", err)
	}
	fmt.Fprintf(c.rootCmd.Stdout, "  Template: %s\n", uploaded.TemplateID)

	// Step 2: analyze it to discover its slide IDs.
	fmt.Fprintln(c.rootCmd.Stdout, "[2/4] Analyzing template...")
	analyzeSvc, err := analyze.NewService(analyze.ServiceConfig{
		Client:     client,
		Repository: repo,
		Poll:       poll,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	analysis, err := analyzeSvc.Run(ctx, analyze.Request{
		TemplateID: uploaded.TemplateID,
		Options:    model.FullAnalysisOptions(),
	})
	if err != nil {
		return fmt.Errorf("could not analyze template: %w", err)
	}
	if analysis.Status.State != model.OperationStateCompleted {
		return fmt.Errorf("template analysis finished with status %q", analysis.Status.State)
	}
	fmt.Fprintf(c.rootCmd.Stdout, "  Found %d slides\n", len(analysis.Slides))

	// Step 3: map the sample deck onto the analyzed slides.
	fmt.Fprintln(c.rootCmd.Stdout, "[3/4] Generating deck from sample content...")
	deckReq := demodata.DeckRequest()
	if err := demodata.AssignTemplateSlides(deckReq, analysis.Slides); err != nil {
		return fmt.Errorf("could not assign template slides: %w", err)
	}

	deckSvc, err := generatedeck.NewService(generatedeck.ServiceConfig{
		Client:     client,
		Repository: repo,
		Poll:       poll,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	gen, err := deckSvc.Run(ctx, generatedeck.Request{
		Deck:       *deckReq,
		Wait:       true,
		OutputPath: c.output,
	})
	if err != nil {
		return fmt.Errorf("could not generate deck: %w", err)
	}
	if gen.Status.State == model.OperationStateFailed {
		return fmt.Errorf("deck generation failed")
	}
	fmt.Fprintf(c.rootCmd.Stdout, "  Generation %s finished with status %q (%d pages)\n", gen.ID, gen.Status.State, gen.TotalPages)

	// Step 4: download the result.
	fmt.Fprintln(c.rootCmd.Stdout, "[4/4] Downloading deck...")
	dlSvc, err := download.NewService(download.ServiceConfig{
		Client: client,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	source := gen.DownloadURL
	if source == "" {
		source = gen.ID
	}
	result, err := dlSvc.Run(ctx, download.Request{
		Source:       source,
		OutputPath:   c.output,
		StatusWriter: c.rootCmd.Stderr,
	})
	if err != nil {
		return fmt.Errorf("could not download deck: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "\nDemo complete: %s\n", result.Path)

	return nil
}
