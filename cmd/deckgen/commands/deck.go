package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/deckgen/deckgen/internal/app/download"
	"github.com/deckgen/deckgen/internal/app/generatedeck"
	"github.com/deckgen/deckgen/internal/deckfile"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/operation"
)

// NewDeckCommand returns the deck parent command, subcommands hang from it.
func NewDeckCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("deck", "Manage full deck generations.")
}

type DeckGenerateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	file         string
	output       string
	noWait       bool
	pollInterval time.Duration
	maxAttempts  int
	format       string
}

// NewDeckGenerateCommand returns the deck generate command.
func NewDeckGenerateCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *DeckGenerateCommand {
	c := &DeckGenerateCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("generate", "Generate a deck from a deck file.")
	c.Cmd.Arg("file", "Deck file (JSON or YAML) describing the slides.").Required().StringVar(&c.file)
	c.Cmd.Flag("output", "Download the generated deck to this path.").Short('o').StringVar(&c.output)
	c.Cmd.Flag("no-wait", "Start the generation without waiting for it to finish.").BoolVar(&c.noWait)
	c.Cmd.Flag("poll-interval", "Wait between status polls.").Default("3s").DurationVar(&c.pollInterval)
	c.Cmd.Flag("max-attempts", "Maximum number of status polls.").Default("60").IntVar(&c.maxAttempts)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c DeckGenerateCommand) Name() string { return c.Cmd.FullCommand() }

func (c DeckGenerateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	req, err := deckfile.Load(c.file)
	if err != nil {
		return err
	}

	client, err := c.rootCmd.newAPIClient()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := generatedeck.NewService(generatedeck.ServiceConfig{
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

	gen, err := svc.Run(ctx, generatedeck.Request{
		Deck:       *req,
		Wait:       !c.noWait,
		OutputPath: c.output,
	})
	if err != nil {
		return fmt.Errorf("could not generate deck: %w", err)
	}

	p := c.rootCmd.newPrinter(c.format)

	// Download when the generation produced something and an output was
	// requested. Partial decks still contain the successful slides.
	if c.output != "" && !c.noWait && gen.Status.State != model.OperationStateFailed {
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
			Source:     source,
			OutputPath: c.output,
		})
		if err != nil {
			return fmt.Errorf("could not download deck: %w", err)
		}
		if err := p.PrintMessage(fmt.Sprintf("Downloaded %s", result.Path)); err != nil {
			return fmt.Errorf("could not print message: %w", err)
		}
	}

	if err := p.PrintGeneration(*gen); err != nil {
		return fmt.Errorf("could not print generation: %w", err)
	}

	return nil
}

type DeckStatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	generationID string
	format       string
}

// NewDeckStatusCommand returns the deck status command.
func NewDeckStatusCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *DeckStatusCommand {
	c := &DeckStatusCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("status", "Show the status of a deck generation.")
	c.Cmd.Arg("generation-id", "ID of the generation.").Required().StringVar(&c.generationID)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c DeckStatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c DeckStatusCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.newAPIClient()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := generatedeck.NewService(generatedeck.ServiceConfig{
		Client:     client,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	gen, err := svc.Status(ctx, c.generationID)
	if err != nil {
		return fmt.Errorf("could not get generation status: %w", err)
	}

	p := c.rootCmd.newPrinter(c.format)
	if err := p.PrintGeneration(*gen); err != nil {
		return fmt.Errorf("could not print generation: %w", err)
	}

	return nil
}

type DeckDownloadCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	source string
	output string
	format string
}

// NewDeckDownloadCommand returns the deck download command.
func NewDeckDownloadCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *DeckDownloadCommand {
	c := &DeckDownloadCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("download", "Download a generated deck.")
	c.Cmd.Arg("source", "Generation ID or download URL.").Required().StringVar(&c.source)
	c.Cmd.Flag("output", "Write the deck to this path.").Short('o').Required().StringVar(&c.output)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c DeckDownloadCommand) Name() string { return c.Cmd.FullCommand() }

func (c DeckDownloadCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.newAPIClient()
	if err != nil {
		return err
	}

	svc, err := download.NewService(download.ServiceConfig{
		Client: client,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, download.Request{
		Source:       c.source,
		OutputPath:   c.output,
		StatusWriter: c.rootCmd.Stderr,
	})
	if err != nil {
		return fmt.Errorf("could not download deck: %w", err)
	}

	p := c.rootCmd.newPrinter(c.format)
	if err := p.PrintMessage(fmt.Sprintf("Downloaded %s", result.Path)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
