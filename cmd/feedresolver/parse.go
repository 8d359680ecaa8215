// ABOUTME: parse command decodes a local feed file
// ABOUTME: The content type picks JSON Feed or RSS/Atom, as it would for a fetched response

package main

import (
	"errors"

	"github.com/urfave/cli/v2"
)

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a local feed file",
		ArgsUsage: "FILE|-",
		Description: `Parses the file as JSON Feed when the content type mentions json,
and as RSS or Atom otherwise. Relative links are resolved against --url.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "content-type",
				Value: "application/xml",
				Usage: "Content-Type the feed was served with",
			},
			&cli.StringFlag{
				Name:     "url",
				Required: true,
				Usage:    "URL the feed was fetched from",
			},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return errors.New("exactly one file is required")
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

			feed, err := client.ParseResponseBody(ctx.String("content-type"), data, ctx.String("url"))
			if err != nil {
				return err
			}

			return writeJSON(ctx.App.Writer, feed)
		},
	}
}
