// Command recall recovers flashcards and quizzes from generative-model output.
//
// It extracts records from a file or stdin, calls the study backend to
// generate or reopen decks, and keeps a local SQLite cache of decks.
// Configuration is read from flags, the environment and a .env file in the
// working directory.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "recall:", err)
		os.Exit(1)
	}
}
