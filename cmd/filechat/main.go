package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/fwojciec/filechat"
	"github.com/fwojciec/filechat/chat"
	"github.com/fwojciec/filechat/fs"
	"github.com/fwojciec/filechat/gocache"
	"github.com/fwojciec/filechat/mimetype"
	"github.com/fwojciec/filechat/openai"
	"github.com/fwojciec/filechat/session"
	fcslog "github.com/fwojciec/filechat/slog"
	"github.com/fwojciec/filechat/sqlite"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx := context.Background()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	m := NewMain()

	// Commands report their own errors to stderr.
	err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	m.Close()
	if err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the cache, when selected.
	DB *sqlite.DB

	// Services for end-to-end testing. Nil services are built from flags.
	Cache      filechat.Cache
	Discoverer filechat.Discoverer
	Indexes    filechat.IndexService
	Assistants filechat.AssistantService
	Threads    filechat.ThreadService
	Files      filechat.FileService

	logFile io.Closer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.logFile != nil {
		m.logFile.Close()
		m.logFile = nil
	}
	if m.DB != nil {
		err := m.DB.Close()
		m.DB = nil
		return err
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("filechat"),
		kong.Description("Chat with the documents on your computer."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = m.openLogger(cli.LogFile, cli.Verbose, stderr)

	if m.Cache == nil {
		cache, err := m.openCache(cli.Config)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", err)
			fmt.Fprintf(stderr, "Hint: Set OPENAI_CONFIG_CACHE to use a different cache path\n")
			return fmt.Errorf("failed to open cache at %q: %w", cli.Config, err)
		}
		m.Cache = cache
	}
	if err := m.Cache.Load(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return fmt.Errorf("failed to load cache: %w", err)
	}
	deps.Cache = m.Cache

	// status only reads the cache.
	if cmd == "status" {
		return kongCtx.Run(deps)
	}

	if err := m.openServices(cli, deps.Logger); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", filechat.ErrorMessage(err))
		return err
	}

	instructions := cli.Instructions
	if instructions == "" {
		instructions = filechat.DefaultInstructions
	}
	deps.Sessions = &session.Orchestrator{
		Cache:      m.Cache,
		Discoverer: m.Discoverer,
		Indexes:    m.Indexes,
		Assistants: m.Assistants,
		Threads:    m.Threads,
		Files:      m.Files,
		Settings: session.Settings{
			Roots:         filechat.ParseRoots(cli.Paths),
			Extensions:    cli.Extensions,
			IndexName:     cli.IndexName,
			AssistantName: cli.AssistantName,
			Instructions:  instructions,
			Model:         cli.Model,
		},
		Logger: deps.Logger,
		Stdout: stdout,
	}

	noColor := color.NoColor || stdout != io.Writer(os.Stdout)
	deps.Loop = &chat.Loop{
		Sessions: deps.Sessions,
		Threads:  m.Threads,
		Renderer: &chat.Renderer{
			Files:   m.Files,
			Stdout:  stdout,
			Logger:  deps.Logger,
			NoColor: noColor,
		},
		Progress: chat.NewProgress(stdout, 0),
		Stdin:    stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		Prompt:   cli.Prompt,
		Logger:   deps.Logger,
		NoColor:  noColor,
	}

	deps.Logger.Info("command started", "command", cmd, "roots", cli.Paths, "model", cli.Model)
	return kongCtx.Run(deps)
}

// openLogger returns a text logger writing to a rotating log file, or to
// stderr when path is "-".
func (m *Main) openLogger(path string, verbose bool, stderr io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	var w io.Writer = stderr
	if path != "-" {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		m.logFile = lj
		w = lj
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openCache selects the cache backend from the path extension.
func (m *Main) openCache(path string) (filechat.Cache, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			return nil, err
		}
		return sqlite.NewCache(m.DB), nil
	default:
		return fs.NewCache(path), nil
	}
}

// openServices builds the remote services missing from m, wrapped with
// logging. File lookups are additionally cached in memory.
func (m *Main) openServices(cli *CLI, logger *slog.Logger) error {
	if m.Discoverer == nil {
		m.Discoverer = mimetype.NewDiscoverer()
	}

	if m.Indexes == nil || m.Assistants == nil || m.Threads == nil || m.Files == nil {
		if cli.APIKey == "" {
			return filechat.Errorf(filechat.EUNAUTHORIZED, "OPENAI_API_KEY not set. Create a key at https://platform.openai.com/api-keys")
		}
		client := openai.NewClient(cli.APIKey, openai.WithBaseURL(cli.BaseURL))
		if m.Indexes == nil {
			m.Indexes = openai.NewIndexService(client)
		}
		if m.Assistants == nil {
			m.Assistants = openai.NewAssistantService(client)
		}
		if m.Threads == nil {
			m.Threads = openai.NewThreadService(client)
		}
		if m.Files == nil {
			m.Files = openai.NewFileService(client)
		}
	}

	m.Indexes = fcslog.NewLoggingIndexService(m.Indexes, logger)
	m.Assistants = fcslog.NewLoggingAssistantService(m.Assistants, logger)
	m.Threads = fcslog.NewLoggingThreadService(m.Threads, logger)
	m.Files = gocache.NewFileService(fcslog.NewLoggingFileService(m.Files, logger), gocache.DefaultTTL)
	return nil
}
