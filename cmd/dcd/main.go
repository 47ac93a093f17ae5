package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"github.com/lmh17ever/dongchedi-parser/dict"
	"github.com/lmh17ever/dongchedi-parser/gemini"
	dcdquery "github.com/lmh17ever/dongchedi-parser/goquery"
	"github.com/lmh17ever/dongchedi-parser/markdown"
	"github.com/lmh17ever/dongchedi-parser/normalize"
	"github.com/lmh17ever/dongchedi-parser/parse"
	"github.com/lmh17ever/dongchedi-parser/rod"
	"github.com/lmh17ever/dongchedi-parser/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Output directory for saved records and images.
	OutDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RecordService dongchedi.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		OutDir: defaultOutDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		OutDir: m.OutDir,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dcd"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'dcd --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DCD_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RecordService = sqlite.NewRecordService(m.DB)
	deps.DB = m.DB
	deps.Records = m.RecordService
	deps.Renderer = markdown.NewRenderer()

	deps.Dict, err = loadDict()
	if err != nil {
		return fmt.Errorf("failed to load label dictionary: %w", err)
	}

	// The parse command is the only one that needs a browser and the
	// translation service.
	if cmd == "parse" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		manager := rod.NewBrowserManager()
		defer manager.Close()

		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		fetcher := rod.NewLoggingFetcher(rod.NewFetcher(manager), logger)

		records := m.RecordService
		if cli.Parse.NoStore {
			records = nil
		}

		deps.Parser = &parse.Parser{
			Fetcher:    fetcher,
			Extractor:  dcdquery.NewExtractor(),
			Normalizer: normalize.New(deps.Dict),
			Translator: gemini.NewTranslator(client, gemini.WithTargetLanguage(cli.Parse.Lang)),
			Ready:      dcdquery.ReadySelector,
			Records:    records,
		}
	}

	return kongCtx.Run(deps)
}

// loadDict loads the embedded label dictionary, merged with the user's
// override file when DCD_DICT points at one.
func loadDict() (*dict.Table, error) {
	if path := os.Getenv("DCD_DICT"); path != "" {
		return dict.LoadFile(path)
	}
	return dict.Load()
}

func defaultDBPath() string {
	if path := os.Getenv("DCD_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "dcd.db"
	}
	dir := filepath.Join(home, ".dcd")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "dcd.db")
}

func defaultOutDir() string {
	if path := os.Getenv("DCD_OUT"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "dcd-records"
	}
	return filepath.Join(home, ".dcd", "records")
}
