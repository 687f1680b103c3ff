package extract

// Flashcard is the typed view of a flashcard record.
type Flashcard struct {
	Topic       string `json:"topic"`
	Explanation string `json:"explanation"`
}

// QuizQuestion is the typed view of a quiz record. CorrectAnswer is the
// zero-based index into Options, -1 on the sentinel question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Flashcards converts records extracted with FlashcardSchema.
func Flashcards(records []Record) []Flashcard {
	cards := make([]Flashcard, 0, len(records))
	for _, r := range records {
		cards = append(cards, Flashcard{
			Topic:       r.String("topic"),
			Explanation: r.String("explanation"),
		})
	}
	return cards
}

// QuizQuestions converts records extracted with QuizSchema.
func QuizQuestions(records []Record) []QuizQuestion {
	questions := make([]QuizQuestion, 0, len(records))
	for _, r := range records {
		options := r.List("options")
		if options == nil {
			options = []string{}
		}
		questions = append(questions, QuizQuestion{
			Question:      r.String("question"),
			Options:       options,
			CorrectAnswer: r.Int("correct_answer"),
		})
	}
	return questions
}

// ExtractFlashcards extracts flashcards from raw. The result is never empty:
// on failure it holds the error card.
func ExtractFlashcards(raw string) []Flashcard {
	return Flashcards(Extract(raw, FlashcardSchema()).Records)
}

// ExtractQuiz extracts quiz questions from raw. The result is never empty:
// on failure it holds the error question.
func ExtractQuiz(raw string) []QuizQuestion {
	return QuizQuestions(Extract(raw, QuizSchema()).Records)
}

// Score counts the answers that pick the question's correct option. answers[i]
// answers questions[i]; answers past the last question are ignored and a
// question without an answer counts as wrong.
func Score(questions []QuizQuestion, answers []int) int {
	score := 0
	for i, answer := range answers {
		if i >= len(questions) {
			break
		}
		if q := questions[i]; q.CorrectAnswer >= 0 && answer == q.CorrectAnswer {
			score++
		}
	}
	return score
}
