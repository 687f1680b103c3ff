package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/leofalp/recall/core/extract"
	"github.com/leofalp/recall/core/studyapi"
	"github.com/leofalp/recall/internal/utils"
	"github.com/leofalp/recall/providers/observability"
)

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "extract records from a file or stdin",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "schema",
				Usage: "built-in schema: flashcard or quiz",
				Value: "flashcard",
			},
			&cli.StringFlag{
				Name:  "schema-file",
				Usage: "YAML or JSON schema file, overrides --schema",
			},
		},
		Action: extractAction,
	}
}

func extractAction(c *cli.Context) error {
	schema, err := schemaFromFlags(c)
	if err != nil {
		return err
	}

	raw, err := readInput(c)
	if err != nil {
		return err
	}

	result := extract.New(schema, extract.WithObserver(observer(c))).Extract(c.Context, raw)
	fmt.Fprintln(c.App.Writer, utils.JSONToString(result, true))
	return nil
}

func schemaFromFlags(c *cli.Context) (*extract.Schema, error) {
	if path := c.String("schema-file"); path != "" {
		return extract.LoadSchema(path)
	}
	switch strings.ToLower(c.String("schema")) {
	case "flashcard", "flashcards":
		return extract.FlashcardSchema(), nil
	case "quiz":
		return extract.QuizSchema(), nil
	}
	return nil, fmt.Errorf("unknown schema %q (expected flashcard or quiz)", c.String("schema"))
}

func readInput(c *cli.Context) (string, error) {
	if path := c.Args().First(); path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}

	reader := c.App.Reader
	if reader == nil {
		reader = os.Stdin
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "user",
		Usage:    "user id sent to the backend",
		EnvVars:  []string{envUserID},
		Required: true,
	}
}

func saveFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "save",
		Usage: "store the deck in the local cache",
	}
}

// kindSubcommands returns one subcommand per deck kind so flags can follow
// the kind on the command line.
func kindSubcommands(flags func() []cli.Flag, action func(*cli.Context, studyapi.Kind) error) []*cli.Command {
	var commands []*cli.Command
	for _, kind := range []studyapi.Kind{studyapi.KindFlashcards, studyapi.KindQuiz} {
		commands = append(commands, &cli.Command{
			Name:   string(kind),
			Usage:  "work with a " + string(kind) + " deck",
			Flags:  flags(),
			Action: func(c *cli.Context) error { return action(c, kind) },
		})
	}
	return commands
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "generate a deck from an image of study notes",
		Subcommands: kindSubcommands(func() []cli.Flag {
			return []cli.Flag{
				&cli.StringFlag{
					Name:     "image",
					Usage:    "path of the image to upload",
					Required: true,
				},
				userFlag(),
				saveFlag(),
			}
		}, generateAction),
	}
}

func generateAction(c *cli.Context, kind studyapi.Kind) error {
	upload, err := studyapi.UploadFromFile(c.String("image"))
	if err != nil {
		return err
	}

	client := newClient(c)
	var deck *studyapi.Deck
	if kind == studyapi.KindQuiz {
		deck, err = client.GenerateQuiz(c.Context, upload, c.String("user"))
	} else {
		deck, err = client.GenerateFlashcards(c.Context, upload, c.String("user"))
	}
	if err != nil {
		return err
	}

	return finishDeck(c, deck)
}

func openCommand() *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "fetch a stored deck from the backend",
		Subcommands: kindSubcommands(func() []cli.Flag {
			return []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Usage:    "flashcard set or quiz id",
					Required: true,
				},
				userFlag(),
				saveFlag(),
			}
		}, openAction),
	}
}

func openAction(c *cli.Context, kind studyapi.Kind) error {
	client := newClient(c)

	var deck *studyapi.Deck
	var err error
	if kind == studyapi.KindQuiz {
		deck, err = client.GetQuiz(c.Context, c.String("user"), c.String("id"))
	} else {
		deck, err = client.GetFlashcardSet(c.Context, c.String("user"), c.String("id"))
	}
	if err != nil {
		return err
	}

	return finishDeck(c, deck)
}

// finishDeck prints deck and saves it when --save is set. A deck that fell
// back to the sentinel is printed but never cached.
func finishDeck(c *cli.Context, deck *studyapi.Deck) error {
	if deck.Failed() {
		observer(c).Warn(c.Context, "No records recovered from the backend payload",
			observability.String(observability.AttrDeckKind, string(deck.Kind)),
			observability.String(observability.AttrDeckID, deck.ID),
		)
	}

	fmt.Fprintln(c.App.Writer, utils.JSONToString(deck, true))

	if !c.Bool("save") || deck.Failed() {
		return nil
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(c.Context, deck); err != nil {
		return err
	}
	observer(c).Info(c.Context, "Deck saved",
		observability.String(observability.AttrDeckKind, string(deck.Kind)),
		observability.String(observability.AttrDeckID, deck.ID),
		observability.Int(observability.AttrDeckSize, deck.Size()),
	)
	return nil
}
