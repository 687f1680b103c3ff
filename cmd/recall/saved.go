package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/leofalp/recall/core/extract"
	"github.com/leofalp/recall/core/studyapi"
	"github.com/leofalp/recall/providers/deckstore"
	"github.com/leofalp/recall/providers/observability"
)

func savedCommand() *cli.Command {
	return &cli.Command{
		Name:  "saved",
		Usage: "manage the sets saved on the backend",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list saved sets of a kind",
				Subcommands: kindSubcommands(func() []cli.Flag {
					return []cli.Flag{userFlag()}
				}, savedListAction),
			},
			{
				Name:  "delete",
				Usage: "delete a saved set",
				Subcommands: kindSubcommands(func() []cli.Flag {
					return []cli.Flag{
						&cli.StringFlag{
							Name:     "id",
							Usage:    "flashcard set or quiz id",
							Required: true,
						},
						userFlag(),
						&cli.BoolFlag{
							Name:  "uncache",
							Usage: "also remove the deck from the local cache",
						},
					}
				}, savedDeleteAction),
			},
		},
	}
}

func savedListAction(c *cli.Context, kind studyapi.Kind) error {
	client := newClient(c)

	var sets []studyapi.SetSummary
	var err error
	if kind == studyapi.KindQuiz {
		sets, err = client.ListQuizzes(c.Context, c.String("user"))
	} else {
		sets, err = client.ListFlashcardSets(c.Context, c.String("user"))
	}
	if err != nil {
		return err
	}

	if len(sets) == 0 {
		fmt.Fprintf(c.App.Writer, "No saved %s\n", kind)
		return nil
	}

	fmt.Fprintf(c.App.Writer, "%-38s %-26s %-8s %s\n", "ID", "CREATED", "SCORE", "TITLE")
	fmt.Fprintln(c.App.Writer, strings.Repeat("-", 90))
	for _, s := range sets {
		score := "-"
		if s.Completed {
			score = fmt.Sprintf("%d/%d", s.Score, s.TotalQuestions)
		}
		fmt.Fprintf(c.App.Writer, "%-38s %-26s %-8s %s\n", s.ID, s.CreatedAt, score, s.Title)
	}
	fmt.Fprintf(c.App.Writer, "\nTotal: %d %s\n", len(sets), kind)
	return nil
}

func savedDeleteAction(c *cli.Context, kind studyapi.Kind) error {
	client := newClient(c)
	id := c.String("id")

	var err error
	if kind == studyapi.KindQuiz {
		err = client.DeleteQuiz(c.Context, c.String("user"), id)
	} else {
		err = client.DeleteFlashcardSet(c.Context, c.String("user"), id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Deleted %s %s\n", kind, id)

	if !c.Bool("uncache") {
		return nil
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(c.Context, kind, id); err != nil && !errors.Is(err, deckstore.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, err)
	}
	return nil
}

func submitCommand() *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "grade answers to a saved quiz and record the score",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "quiz id",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "answers",
				Usage:    "comma-separated option indexes or letters, one per question",
				Required: true,
			},
			userFlag(),
			saveFlag(),
		},
		Action: submitAction,
	}
}

func submitAction(c *cli.Context) error {
	answers, err := parseAnswers(c.String("answers"))
	if err != nil {
		return err
	}

	client := newClient(c)
	userID, quizID := c.String("user"), c.String("id")

	deck, err := client.GetQuiz(c.Context, userID, quizID)
	if err != nil {
		return err
	}
	if deck.Failed() {
		return fmt.Errorf("quiz %s has no recoverable questions", quizID)
	}
	if len(answers) > len(deck.Questions) {
		return fmt.Errorf("got %d answers for %d questions", len(answers), len(deck.Questions))
	}

	score := extract.Score(deck.Questions, answers)
	if err := client.SubmitQuiz(c.Context, userID, quizID, answers, score); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Score: %d/%d\n", score, len(deck.Questions))

	if !c.Bool("save") {
		return nil
	}

	encoded, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	deck.Completed = true
	deck.Score = score
	deck.UserAnswers = encoded

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

// parseAnswers reads "1,0,2" or "B,A,C". Letters map to option indexes, A is 0.
func parseAnswers(s string) ([]int, error) {
	var answers []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil && n >= 0 {
			answers = append(answers, n)
			continue
		}
		if len(part) == 1 {
			if ch := part[0] | 0x20; ch >= 'a' && ch <= 'z' {
				answers = append(answers, int(ch-'a'))
				continue
			}
		}
		return nil, fmt.Errorf("invalid answer %q (expected an option index or letter)", part)
	}
	if len(answers) == 0 {
		return nil, errors.New("no answers given")
	}
	return answers, nil
}
