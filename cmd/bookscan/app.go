package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"bookscan/internal/catalog"
	"bookscan/internal/config"
	"bookscan/internal/lookup"
	"bookscan/internal/platform/logger"
	"bookscan/internal/recommend"
	"bookscan/internal/scan"

	cli "github.com/urfave/cli/v3"
)

type app struct {
	in       io.Reader
	out      io.Writer
	log      logger.Logger
	resolver lookup.Resolver
	scanner  scan.Scanner
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:            "bookscan",
		Usage:           "look up books by ISBN and score them against your taste",
		HideHelpCommand: true,
		Writer:          a.out,
		Before:          a.prepare,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log catalog requests to stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:      "lookup",
				Usage:     "Resolves an ISBN and prints the book with its recommendation",
				ArgsUsage: "ISBN",
				Flags:     []cli.Flag{genreFlag()},
				Action:    a.lookup,
			},
			{
				Name:      "validate",
				Usage:     "Normalizes and validates an ISBN without any network call",
				ArgsUsage: "ISBN",
				Action:    a.validate,
			},
			{
				Name:  "scan",
				Usage: "Reads one code from a barcode reader on stdin, then looks it up",
				Flags: []cli.Flag{
					genreFlag(),
					&cli.BoolFlag{Name: "demo", Usage: "pick a random sample ISBN instead of reading stdin"},
				},
				Action: a.scan,
			},
		},
	}
}

func genreFlag() cli.Flag {
	return &cli.StringSliceFlag{Name: "genre", Aliases: []string{"g"}, Usage: "favorite `GENRE` used for scoring (repeatable)"}
}

func (a *app) prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if a.log == nil {
		level := "error"
		if cmd.Bool("verbose") {
			level = "debug"
		}
		log, err := logger.New(logger.Config{Level: level, OutputPaths: []string{"stderr"}})
		if err != nil {
			return ctx, err
		}
		a.log = log
	}
	return ctx, nil
}

// catalogResolver is built on first use so validate works without catalog
// configuration.
func (a *app) catalogResolver() (lookup.Resolver, error) {
	if a.resolver != nil {
		return a.resolver, nil
	}
	cfg, err := config.LoadCatalog()
	if err != nil {
		return nil, err
	}
	a.resolver = catalog.NewDefaultResolver(cfg, a.log)
	return a.resolver, nil
}

func (a *app) lookup(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.Args().First()
	if raw == "" {
		return errors.New("ISBN argument is required")
	}
	return a.resolveAndPrint(ctx, raw, cmd.StringSlice("genre"))
}

func (a *app) validate(_ context.Context, cmd *cli.Command) error {
	raw := cmd.Args().First()
	if raw == "" {
		return errors.New("ISBN argument is required")
	}
	id := lookup.Inspect(raw)
	if err := a.print(id); err != nil {
		return err
	}
	if !id.Valid {
		return fmt.Errorf("%q is not a valid ISBN", raw)
	}
	return nil
}

func (a *app) scan(ctx context.Context, cmd *cli.Command) error {
	scanner := a.scanner
	if scanner == nil {
		if cmd.Bool("demo") {
			scanner = scan.NewDemoScanner()
		} else {
			ls := scan.NewLineScanner(a.in)
			defer ls.Close()
			scanner = ls
		}
	}

	code, err := scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	a.log.Debug("code scanned", logger.String("code", code))
	return a.resolveAndPrint(ctx, code, cmd.StringSlice("genre"))
}

func (a *app) resolveAndPrint(ctx context.Context, raw string, genres []string) error {
	resolver, err := a.catalogResolver()
	if err != nil {
		return err
	}

	var prefs *recommend.Preferences
	if genres = cleanGenres(genres); len(genres) > 0 {
		prefs = &recommend.Preferences{FavoriteGenres: genres}
	}

	res, err := lookup.NewService(resolver).Lookup(ctx, raw, prefs)
	if err != nil {
		return err
	}
	return a.print(res)
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// cleanGenres trims the --genre values and drops blank ones, the way saved
// profiles are cleaned before they reach the scorer.
func cleanGenres(in []string) []string {
	out := make([]string, 0, len(in))
	for _, g := range in {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
