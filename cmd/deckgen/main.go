package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/deckgen/deckgen/cmd/deckgen/commands"
	"github.com/deckgen/deckgen/internal/log"
	loglogrus "github.com/deckgen/deckgen/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("deckgen", "Client for the remote presentation generation service.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	uploadCmd := commands.NewUploadCommand(rootCmd, app)
	analyzeCmd := commands.NewAnalyzeCommand(rootCmd, app)
	templatesCmd := commands.NewTemplatesCommand(rootCmd, app)
	generateCmd := commands.NewGenerateCommand(rootCmd, app)
	historyCmd := commands.NewHistoryCommand(rootCmd, app)
	demoCmd := commands.NewDemoCommand(rootCmd, app)

	// Deck subcommands share a parent command.
	deckCmd := commands.NewDeckCommand(app)
	deckGenerateCmd := commands.NewDeckGenerateCommand(rootCmd, deckCmd)
	deckStatusCmd := commands.NewDeckStatusCommand(rootCmd, deckCmd)
	deckDownloadCmd := commands.NewDeckDownloadCommand(rootCmd, deckCmd)

	cmds := map[string]commands.Command{
		uploadCmd.Name():       uploadCmd,
		analyzeCmd.Name():      analyzeCmd,
		templatesCmd.Name():    templatesCmd,
		generateCmd.Name():     generateCmd,
		historyCmd.Name():      historyCmd,
		demoCmd.Name():         demoCmd,
		deckGenerateCmd.Name(): deckGenerateCmd,
		deckStatusCmd.Name():   deckStatusCmd,
		deckDownloadCmd.Name(): deckDownloadCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Auto-suppress logging for commands that produce structured output (table/JSON)
	// to prevent log noise from mixing with printer output in the terminal.
	// Users can still enable logging with --debug.
	printerCommands := map[string]bool{
		"templates":   true,
		"history":     true,
		"deck status": true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
