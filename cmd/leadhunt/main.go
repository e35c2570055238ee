package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hyperifyio/leadhunt/internal/aggregate"
	"github.com/hyperifyio/leadhunt/internal/api"
	"github.com/hyperifyio/leadhunt/internal/app"
	"github.com/hyperifyio/leadhunt/internal/export"
	"github.com/hyperifyio/leadhunt/internal/search"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout).Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("run failed")
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode maps usage and configuration problems to 2, anything else to 1.
func exitCode(err error) int {
	var ce *search.ConfigError
	if errors.Is(err, aggregate.ErrInvalidQuery) || errors.As(err, &ce) || errors.Is(err, errUsage) {
		return 2
	}
	return 1
}

var errUsage = errors.New("usage")

func newRootCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "leadhunt",
		Usage:   "Aggregate web, news and social search results",
		Version: app.BuildVersion,
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to a YAML, JSON or TOML config file"},
			&cli.StringSliceFlag{Name: "env-file", Usage: "Dotenv file to load (repeatable, later files win)"},
			&cli.BoolFlag{Name: "verbose", Usage: "Verbose logging"},
			&cli.StringFlag{Name: "api-key", Usage: "searchapi.io API key"},
			&cli.StringFlag{Name: "base-url", Usage: "Search API endpoint"},
			&cli.BoolFlag{Name: "simulate", Usage: "Serve deterministic offline results instead of calling the API"},
			&cli.DurationFlag{Name: "timeout", Usage: "Per-request upstream timeout"},
			&cli.BoolFlag{Name: "insecure", Usage: "Skip TLS verification for the search API (self-signed upstreams)"},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			searchCommand(),
			probeCommand(),
			versionCommand(),
		},
	}
}

// resolveConfig applies file, then env, then explicit flags.
func resolveConfig(c *cli.Command) (app.Config, error) {
	var cfg app.Config
	if err := app.LoadEnvFiles(c.StringSlice("env-file")...); err != nil {
		return cfg, fmt.Errorf("env files: %w", err)
	}
	if path := strings.TrimSpace(c.String("config")); path != "" {
		fc, err := app.LoadConfigFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	if c.IsSet("api-key") { cfg.APIKey = c.String("api-key") }
	if c.IsSet("base-url") { cfg.BaseURL = c.String("base-url") }
	if c.IsSet("simulate") { cfg.Simulate = c.Bool("simulate") }
	if c.IsSet("timeout") { cfg.Timeout = c.Duration("timeout") }
	if c.IsSet("insecure") { cfg.InsecureSkipVerify = c.Bool("insecure") }
	if c.IsSet("verbose") { cfg.Verbose = c.Bool("verbose") }
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address (default " + app.DefaultListenAddr + ")"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := resolveConfig(c)
			if err != nil {
				return err
			}
			if c.IsSet("addr") {
				cfg.ListenAddr = c.String("addr")
			}
			a, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}
			defer a.Close()

			if !a.Config().Verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			srv := api.NewServer(api.Options{
				Searcher:       a,
				Metrics:        a.Metrics(),
				MetricsHandler: a.Metrics().Handler(),
			})
			log.Info().Strs("platforms", a.Platforms()).Bool("simulate", a.Config().Simulate).Msg("serving search API")
			return srv.ListenAndServe(ctx, a.Config().ListenAddr)
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run one aggregated search and print or save the page",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "platform", Aliases: []string{"p"}, Usage: "Platform to query (repeatable or comma-separated; default google)"},
			&cli.IntFlag{Name: "page", Value: 1, Usage: "1-based page number"},
			&cli.IntFlag{Name: "per-page", Value: 10, Usage: "Results per page per platform (1-50)"},
			&cli.StringFlag{Name: "sort", Value: string(aggregate.SortRelevance), Usage: "relevance or newest"},
			&cli.BoolFlag{Name: "only-accounts", Usage: "Keep only profile-root URLs from site-scoped platforms"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: string(export.FormatJSON), Usage: "json, markdown or pdf"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to this file instead of stdout"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.Join(c.Args().Slice(), " ")
			if query == "" {
				return fmt.Errorf("%w: search requires a QUERY argument", errUsage)
			}
			format, err := export.ParseFormat(c.String("format"))
			if err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			output := strings.TrimSpace(c.String("output"))
			if format == export.FormatPDF && output == "" {
				return fmt.Errorf("%w: --format pdf requires --output", errUsage)
			}
			sortMode, err := aggregate.ParseSortMode(c.String("sort"))
			if err != nil {
				return err
			}

			cfg, err := resolveConfig(c)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}
			defer a.Close()

			q := aggregate.Query{
				Text:         query,
				Platforms:    splitPlatforms(c.StringSlice("platform")),
				Page:         int(c.Int("page")),
				PerPage:      int(c.Int("per-page")),
				Sort:         sortMode,
				OnlyAccounts: c.Bool("only-accounts"),
			}
			res, err := a.Search(ctx, q)
			if err != nil {
				return err
			}
			page := export.NewPage(q.Text, q.Page, q.PerPage, res.Total, res.Items)

			if output == "" {
				return export.Write(c.Root().Writer, format, page)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := export.Write(f, format, page); err != nil {
				_ = f.Close()
				return fmt.Errorf("write %s: %w", format, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			log.Info().Str("path", output).Int("items", page.Count).Int("total", page.Total).Msg("wrote results")
			return nil
		},
	}
}

// splitPlatforms accepts repeated and comma-separated values; google when empty.
func splitPlatforms(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				out = append(out, p)
			}
		}
	}
	if len(out) == 0 {
		out = []string{"google"}
	}
	return out
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(ctx context.Context, c *cli.Command) error {
			_, err := fmt.Fprintf(c.Root().Writer, "leadhunt %s (commit %s, built %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
			return err
		},
	}
}
