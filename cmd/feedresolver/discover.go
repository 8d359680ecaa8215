// ABOUTME: discover and links commands list the feeds a page advertises
// ABOUTME: discover fetches the page, links reads a local HTML file

package main

import (
	"errors"
	"strings"

	"github.com/urfave/cli/v2"

	feedresolver "feeder-resolver"
)

type linksOutput struct {
	Links []feedresolver.FeedLink `json:"links"`
	Best  string                  `json:"best,omitempty"`
}

func discoverCmd() *cli.Command {
	return &cli.Command{
		Name:      "discover",
		Usage:     "List the feeds a page advertises",
		ArgsUsage: "URL",
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return errors.New("exactly one URL is required")
			}

			client, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			links := client.FetchFeedLinksAtURL(ctx.Context, ctx.Args().First())
			return writeJSON(ctx.App.Writer, linksOutput{Links: links})
		},
	}
}

func linksCmd() *cli.Command {
	return &cli.Command{
		Name:      "links",
		Usage:     "Extract advertised feeds from a local HTML file",
		ArgsUsage: "FILE|-",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "base",
				Usage: "URL the document was served from, used to resolve relative links",
			},
			&cli.StringFlag{
				Name:  "prefer",
				Value: "atom",
				Usage: "Feed type to pick as best (atom, rss, json)",
			},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return errors.New("exactly one file is required")
			}

			prefs, err := parsePreference(ctx.String("prefer"))
			if err != nil {
				return err
			}

			data, err := readInput(ctx, ctx.Args().First())
			if err != nil {
				return err
			}

			client, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			html := string(data)
			base := ctx.String("base")

			out := linksOutput{Links: client.DiscoverFeedLinks(html, base)}
			if best := client.SelectBestFeedURL(html, base, prefs); best != nil {
				out.Best = best.String()
			}

			return writeJSON(ctx.App.Writer, out)
		},
	}
}

func parsePreference(s string) (feedresolver.Preference, error) {
	switch strings.ToLower(s) {
	case "atom":
		return feedresolver.PreferAtom, nil
	case "rss":
		return feedresolver.PreferRSS, nil
	case "json":
		return feedresolver.PreferJSON, nil
	case "", "none":
		return feedresolver.Preference{}, nil
	default:
		return feedresolver.Preference{}, errors.New("prefer must be atom, rss, json or none")
	}
}
