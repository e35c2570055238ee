package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hyperifyio/leadhunt/internal/app"
	"github.com/hyperifyio/leadhunt/internal/search"
)

// probeCommand queries one provider and prints its raw normalized page.
// Without a query it lists the registered platforms.
func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Query a single platform without dedup, filtering or sorting",
		ArgsUsage: "[QUERY]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "platform", Aliases: []string{"p"}, Value: "google", Usage: "Platform to query"},
			&cli.IntFlag{Name: "page", Value: 1, Usage: "1-based page number"},
			&cli.IntFlag{Name: "per-page", Value: 5, Usage: "Results per page"},
			&cli.BoolFlag{Name: "only-accounts", Usage: "Keep only profile-root URLs"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := resolveConfig(c)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}
			defer a.Close()

			w := c.Root().Writer
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				for _, name := range a.Platforms() {
					fmt.Fprintln(w, name)
				}
				return nil
			}

			platform := strings.ToLower(strings.TrimSpace(c.String("platform")))
			resp, err := a.Probe(ctx, platform, search.Request{
				Query:        query,
				Page:         int(c.Int("page")),
				PerPage:      int(c.Int("per-page")),
				OnlyAccounts: c.Bool("only-accounts"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s: %d records, total %d\n", platform, len(resp.Records), resp.Total)
			for i, r := range resp.Records {
				fmt.Fprintf(w, "%d. %s | %s\n", i+1, r.Title, r.URL)
			}
			return nil
		},
	}
}
