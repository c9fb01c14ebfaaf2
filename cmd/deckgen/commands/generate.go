package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/deckgen/deckgen/internal/app/generateslide"
	"github.com/deckgen/deckgen/internal/model"
)

type GenerateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	templateSlideID string
	title           string
	subtitle        string
	header          string
	bullets         []string
	output          string
	format          string
}

// NewGenerateCommand returns the generate command for a single slide.
func NewGenerateCommand(rootCmd *RootCommand, app *kingpin.Application) *GenerateCommand {
	c := &GenerateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("generate", "Generate a single slide from a template slide.")
	c.Cmd.Arg("template-slide-id", "ID of the template slide to populate.").Required().StringVar(&c.templateSlideID)
	c.Cmd.Flag("title", "Slide title.").StringVar(&c.title)
	c.Cmd.Flag("subtitle", "Slide subtitle.").StringVar(&c.subtitle)
	c.Cmd.Flag("header", "Header of the text block.").StringVar(&c.header)
	c.Cmd.Flag("bullet", "Bullet item of the text block (repeatable).").StringsVar(&c.bullets)
	c.Cmd.Flag("output", "Write the generated file to this path.").Short('o').StringVar(&c.output)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c GenerateCommand) Name() string { return c.Cmd.FullCommand() }

func (c GenerateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.newAPIClient()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := generateslide.NewService(generateslide.ServiceConfig{
		Client:     client,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	slideData := model.SlideData{
		Title:    c.title,
		Subtitle: c.subtitle,
	}
	if c.header != "" || len(c.bullets) > 0 {
		slideData.Content = &model.SlideContent{
			Blocks: []model.ContentBlock{{
				Type: model.BlockTypeText,
				Text: &model.TextContent{Header: c.header, Bullets: c.bullets},
			}},
		}
	}

	gen, err := svc.Run(ctx, generateslide.Request{
		Slide: model.SlideRequest{
			TemplateSlideID: c.templateSlideID,
			SlideData:       slideData,
		},
		OutputPath: c.output,
	})
	if err != nil {
		return fmt.Errorf("could not generate slide: %w", err)
	}

	p := c.rootCmd.newPrinter(c.format)
	if err := p.PrintGeneration(*gen); err != nil {
		return fmt.Errorf("could not print generation: %w", err)
	}

	return nil
}
