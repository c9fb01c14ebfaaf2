package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/deckgen/deckgen/internal/app/upload"
	"github.com/deckgen/deckgen/internal/model"
)

type UploadCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	file        string
	category    string
	tags        []string
	description string
	format      string
}

// NewUploadCommand returns the upload command.
func NewUploadCommand(rootCmd *RootCommand, app *kingpin.Application) *UploadCommand {
	c := &UploadCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("upload", "Upload a template file.")
	c.Cmd.Arg("file", "Path to the template file.").Required().StringVar(&c.file)
	c.Cmd.Flag("category", "Template category metadata.").StringVar(&c.category)
	c.Cmd.Flag("tag", "Template tag metadata (repeatable).").StringsVar(&c.tags)
	c.Cmd.Flag("description", "Template description metadata.").StringVar(&c.description)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c UploadCommand) Name() string { return c.Cmd.FullCommand() }

func (c UploadCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.newAPIClient()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := upload.NewService(upload.ServiceConfig{
		Client:     client,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, upload.Request{
		Path: c.file,
		Metadata: model.TemplateMetadata{
			Category:    c.category,
			Tags:        c.tags,
			Description: c.description,
		},
	})
	if err != nil {
		return fmt.Errorf("could not upload template: %w", err)
	}

	p := c.rootCmd.newPrinter(c.format)
	if err := p.PrintUpload(*result); err != nil {
		return fmt.Errorf("could not print upload result: %w", err)
	}

	return nil
}
