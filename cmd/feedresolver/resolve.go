// ABOUTME: resolve command turns page or feed URLs into parsed feeds
// ABOUTME: URLs resolve concurrently and results print in the order given

package main

import (
	"errors"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	feedresolver "feeder-resolver"
)

var errResolveFailed = errors.New("one or more URLs could not be resolved")

type resolveResult struct {
	URL   string             `json:"url"`
	Feed  *feedresolver.Feed `json:"feed,omitempty"`
	Error string             `json:"error,omitempty"`
}

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve page or feed URLs into parsed feeds",
		ArgsUsage: "URL [URL...]",
		Description: `Fetches each URL. A page that advertises feeds resolves to its
Atom feed when it has one, otherwise to its first advertised feed. A URL
that advertises nothing is parsed as a feed itself.

URLs are resolved concurrently and printed in the order given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "feed",
				Usage: "Treat every URL as a feed and skip page discovery",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: 4,
				Usage: "How many URLs to resolve at once",
			},
		},
		Action: func(ctx *cli.Context) error {
			urls := ctx.Args().Slice()
			if len(urls) == 0 {
				return errors.New("at least one URL is required")
			}

			client, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			resolve := client.ResolveURL
			if ctx.Bool("feed") {
				resolve = client.ResolveFeed
			}

			results := make([]resolveResult, len(urls))

			g, gctx := errgroup.WithContext(ctx.Context)
			g.SetLimit(max(ctx.Int("concurrency"), 1))
			for i, u := range urls {
				i, u := i, u
				g.Go(func() error {
					feed, err := resolve(gctx, u)
					results[i] = resolveResult{URL: u, Feed: feed, Error: errorString(err)}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if err := writeJSON(ctx.App.Writer, results); err != nil {
				return err
			}

			for _, r := range results {
				if r.Error != "" {
					return errResolveFailed
				}
			}
			return nil
		},
	}
}
