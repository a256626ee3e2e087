package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sitesignal/sitesignal"
	"github.com/sitesignal/sitesignal/gemini"
	"github.com/sitesignal/sitesignal/goquery"
	"github.com/sitesignal/sitesignal/htmltomarkdown"
	sshttp "github.com/sitesignal/sitesignal/http"
	"github.com/sitesignal/sitesignal/nominatim"
	"github.com/sitesignal/sitesignal/pipeline"
	"github.com/sitesignal/sitesignal/prose"
	ssslog "github.com/sitesignal/sitesignal/slog"
	"github.com/sitesignal/sitesignal/sqlite"
	"github.com/sitesignal/sitesignal/trafilatura"
	"google.golang.org/genai"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitesignal"),
		kong.Description("Derive business signals from a company homepage"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps, err := wireDependencies(ctx, cli, logger)
	if err != nil {
		return err
	}
	deps.Stdout = stdout
	deps.Stderr = stderr
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Warn("shutdown", "err", err)
		}
	}()

	switch kctx.Command() {
	case "serve":
		return runServe(ctx, cli, deps, logger)
	case "scrape <url>":
		return runScrape(ctx, cli.Scrape.URL, deps)
	default:
		return fmt.Errorf("unknown command %q", kctx.Command())
	}
}

// wireDependencies assembles the fetcher and the pipeline behind it:
// nominatim geocoder wrapped in the sqlite cache and logging, trafilatura
// refinement, and prose or Gemini entity recognition.
func wireDependencies(ctx context.Context, cli *CLI, logger *slog.Logger) (*Dependencies, error) {
	db := sqlite.NewDB(cli.CachePath)
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("geocode cache: %w", err)
	}

	geocoder := ssslog.NewLoggingGeocoder(
		sqlite.NewGeocoderCache(db,
			nominatim.NewGeocoder(nominatim.WithBaseURL(cli.GeocoderURL)),
		),
		logger,
	)

	var recognizer sitesignal.Recognizer
	if cli.Gemini {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			db.Close()
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		recognizer = gemini.NewRecognizer(client)
	} else {
		recognizer = prose.NewRecognizer()
	}

	fetcher := ssslog.NewLoggingFetcher(
		sshttp.NewFetcher(sshttp.WithTimeout(cli.Timeout)),
		logger,
	)

	scraper := &pipeline.Pipeline{
		Normalizer: goquery.NewNormalizer(goquery.WithMaxTextLen(cli.TextLimit)),
		Recognizer: recognizer,
		Geocoder:   geocoder,
		Extractor:  trafilatura.NewExtractor(),
		Converter:  htmltomarkdown.NewConverter(),
		MaxLookups: cli.MaxLookups,
		Logger:     logger,
	}

	return &Dependencies{
		Ctx:     ctx,
		Fetcher: fetcher,
		Scraper: scraper,
		Close: func() error {
			err := geocoder.Close()
			if dbErr := db.Close(); err == nil {
				err = dbErr
			}
			return errors.Join(err, fetcher.Close())
		},
	}, nil
}

// runServe blocks until the context is canceled or the listener fails.
func runServe(ctx context.Context, cli *CLI, deps *Dependencies, logger *slog.Logger) error {
	if cli.Serve.Secret == "" {
		return fmt.Errorf("a shared secret is required: set --secret or SITESIGNAL_SECRET")
	}

	srv := &sshttp.Server{
		Secret:  cli.Serve.Secret,
		Fetcher: deps.Fetcher,
		Scraper: deps.Scraper,
		Logger:  logger,
	}

	httpServer := &http.Server{
		Addr:    cli.Serve.Addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	logger.Info("listening", "addr", cli.Serve.Addr)

	select {
	case <-ctx.Done():
		return httpServer.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// runScrape fetches one page, runs the pipeline, and prints the result.
func runScrape(ctx context.Context, url string, deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	result, err := deps.Scraper.Scrape(ctx, &sitesignal.RawPage{URL: url, HTML: html})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
