package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/deckgen/deckgen/internal/api"
	"github.com/deckgen/deckgen/internal/api/rest"
	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/printer"
	"github.com/deckgen/deckgen/internal/storage"
	"github.com/deckgen/deckgen/internal/storage/sqlite"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	APIURL     string
	APIKey     string
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DBPath     string
	NoHistory  bool

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	// Not marked required so local-only commands (e.g. history) work without
	// API credentials, the client validates them on first use.
	app.Flag("api-url", "Base URL of the presentation generation API.").Envar("DECKGEN_API_URL").StringVar(&c.APIURL)
	app.Flag("api-key", "API key used to authenticate every API call.").Envar("DECKGEN_API_KEY").StringVar(&c.APIKey)
	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultDBPath := filepath.Join(homedir.HomeDir(), ".deckgen", "deckgen.db")
	app.Flag("db-path", "Path to the SQLite history database file.").Envar("DECKGEN_DB_PATH").Default(defaultDBPath).StringVar(&c.DBPath)
	app.Flag("no-history", "Disable the local history database.").BoolVar(&c.NoHistory)

	return c
}

// newAPIClient creates the REST API client from the root configuration.
func (c *RootCommand) newAPIClient() (api.Client, error) {
	client, err := rest.NewClient(rest.ClientConfig{
		BaseURL: c.APIURL,
		APIKey:  c.APIKey,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create API client: %w", err)
	}
	return client, nil
}

// newRepository creates the history repository from the root configuration.
// With history disabled a no-op repository is returned.
func (c *RootCommand) newRepository(ctx context.Context) (storage.Repository, error) {
	if c.NoHistory {
		return storage.Noop, nil
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.DBPath,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}
	return repo, nil
}

// newPrinter creates the output printer for the selected format.
func (c *RootCommand) newPrinter(format string) printer.Printer {
	switch format {
	case formatJSON:
		return printer.NewJSONPrinter(c.Stdout)
	default:
		return printer.NewTablePrinter(c.Stdout)
	}
}
