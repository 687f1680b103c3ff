package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/leofalp/recall/core/studyapi"
	"github.com/leofalp/recall/internal/utils"
)

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "inspect the local deck cache",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "list cached decks, newest first",
				ArgsUsage: "[flashcards|quiz]",
				Action:    cacheListAction,
			},
			{
				Name:      "show",
				Usage:     "print a cached deck",
				ArgsUsage: "flashcards|quiz id",
				Action:    cacheShowAction,
			},
			{
				Name:      "delete",
				Usage:     "remove a cached deck",
				ArgsUsage: "flashcards|quiz id",
				Action:    cacheDeleteAction,
			},
		},
	}
}

func cacheListAction(c *cli.Context) error {
	var kind studyapi.Kind
	if c.Args().Present() {
		parsed, err := studyapi.ParseKind(c.Args().First())
		if err != nil {
			return err
		}
		kind = parsed
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	decks, err := store.List(c.Context, kind)
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}

	if len(decks) == 0 {
		fmt.Fprintln(c.App.Writer, "No decks cached")
		return nil
	}

	fmt.Fprintf(c.App.Writer, "%-12s %-38s %-6s %-16s %s\n", "KIND", "ID", "SIZE", "STRATEGY", "TITLE")
	fmt.Fprintln(c.App.Writer, strings.Repeat("-", 90))
	for _, d := range decks {
		fmt.Fprintf(c.App.Writer, "%-12s %-38s %-6d %-16s %s\n", d.Kind, d.ID, d.Size(), d.Strategy, d.Title)
	}
	fmt.Fprintf(c.App.Writer, "\nTotal: %d decks\n", len(decks))
	return nil
}

func kindAndID(c *cli.Context) (studyapi.Kind, string, error) {
	if c.NArg() != 2 {
		return "", "", fmt.Errorf("expected kind and id, got %d arguments", c.NArg())
	}
	kind, err := studyapi.ParseKind(c.Args().Get(0))
	if err != nil {
		return "", "", err
	}
	return kind, c.Args().Get(1), nil
}

func cacheShowAction(c *cli.Context) error {
	kind, id, err := kindAndID(c)
	if err != nil {
		return err
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	deck, err := store.Get(c.Context, kind, id)
	if err != nil {
		return fmt.Errorf("%s %s: %w", kind, id, err)
	}
	fmt.Fprintln(c.App.Writer, utils.JSONToString(deck, true))
	return nil
}

func cacheDeleteAction(c *cli.Context) error {
	kind, id, err := kindAndID(c)
	if err != nil {
		return err
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(c.Context, kind, id); err != nil {
		return fmt.Errorf("%s %s: %w", kind, id, err)
	}
	fmt.Fprintf(c.App.Writer, "Deleted %s %s\n", kind, id)
	return nil
}
