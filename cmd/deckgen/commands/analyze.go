package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/deckgen/deckgen/internal/app/analyze"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/operation"
)

type AnalyzeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	templateID   string
	pollInterval time.Duration
	maxAttempts  int
	format       string
}

// NewAnalyzeCommand returns the analyze command.
func NewAnalyzeCommand(rootCmd *RootCommand, app *kingpin.Application) *AnalyzeCommand {
	c := &AnalyzeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("analyze", "Analyze an uploaded template and list its slides.")
	c.Cmd.Arg("template-id", "ID of the template to analyze. Defaults to the latest upload.").StringVar(&c.templateID)
	c.Cmd.Flag("poll-interval", "Wait between status polls.").Default("3s").DurationVar(&c.pollInterval)
	c.Cmd.Flag("max-attempts", "Maximum number of status polls.").Default("60").IntVar(&c.maxAttempts)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c AnalyzeCommand) Name() string { return c.Cmd.FullCommand() }

func (c AnalyzeCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.newAPIClient()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := analyze.NewService(analyze.ServiceConfig{
		Client:     client,
		Repository: repo,
		Poll: operation.Config{
			Interval:    c.pollInterval,
			MaxAttempts: c.maxAttempts,
			Notify: func(status model.OperationStatus) {
				fmt.Fprintf(c.rootCmd.Stderr, "  [%3d%%] %s\n", status.Progress, status.CurrentStep)
			},
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	analysis, err := svc.Run(ctx, analyze.Request{
		TemplateID: c.templateID,
		Options:    model.FullAnalysisOptions(),
	})
	if err != nil {
		return fmt.Errorf("could not analyze template: %w", err)
	}

	p := c.rootCmd.newPrinter(c.format)
	if err := p.PrintAnalysis(*analysis); err != nil {
		return fmt.Errorf("could not print analysis: %w", err)
	}

	return nil
}
