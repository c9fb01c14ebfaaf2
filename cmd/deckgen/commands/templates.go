package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/deckgen/deckgen/internal/app/list"
)

type TemplatesCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewTemplatesCommand returns the templates command.
func NewTemplatesCommand(rootCmd *RootCommand, app *kingpin.Application) *TemplatesCommand {
	c := &TemplatesCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("templates", "List the remote templates.")
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c TemplatesCommand) Name() string { return c.Cmd.FullCommand() }

func (c TemplatesCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.newAPIClient()
	if err != nil {
		return err
	}

	svc, err := list.NewService(list.ServiceConfig{
		Client: client,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	templates, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("could not list templates: %w", err)
	}

	p := c.rootCmd.newPrinter(c.format)
	if err := p.PrintTemplateList(templates); err != nil {
		return fmt.Errorf("could not print templates: %w", err)
	}

	return nil
}
