package game

import (
	"errors"
	"strings"
	"time"
)

// OptionCount is the fixed number of choices in every daily game.
const OptionCount = 4

// Status tracks a student's progress through a daily game.
// IDLE and PLAYING are transient; WON and LOST are the grading outcomes;
// DONE is re-derived from the recorded attempt on the next load.
type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusPlaying Status = "PLAYING"
	StatusWon     Status = "WON"
	StatusLost    Status = "LOST"
	StatusDone    Status = "DONE"
)

// Domain errors
var (
	ErrEmptyTopic       = errors.New("topic cannot be empty")
	ErrEmptyQuestion    = errors.New("question text cannot be empty")
	ErrEmptyOption      = errors.New("all four options are required")
	ErrDuplicateOption  = errors.New("options must be distinct")
	ErrAnswerNotOption  = errors.New("answer must be one of the options")
	ErrInvalidReward    = errors.New("reward must be positive")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidAnswerKey = errors.New("answer key must be A, B, C or D")
	ErrEmptySelection   = errors.New("an option must be selected")
)

// Question is the multiple-choice payload of a daily game. Answer holds the
// literal text of the correct option, not an index.
type Question struct {
	Text    string             `json:"question"`
	Options [OptionCount]string `json:"options"`
	Answer  string             `json:"answer"`
}

// Game is a single multiple-choice question with an associated cash reward.
// Games are immutable once published.
type Game struct {
	ID        string
	Date      string // YYYY-MM-DD
	Topic     string
	Reward    int
	Question  Question
	CreatedBy string
	CreatedAt time.Time
}

// Attempt is the server-recorded play record. At most one attempt exists per
// (StudentID, GameID) pair; the storage layer enforces the uniqueness.
type Attempt struct {
	ID        string
	StudentID string
	GameID    string
	Selected  string
	Correct   bool
	CreatedAt time.Time
}

// Validate checks if the Game has valid data.
// PRE: Game struct is populated
// POST: Returns nil if valid, error otherwise
func (g *Game) Validate() error {
	if strings.TrimSpace(g.Topic) == "" {
		return ErrEmptyTopic
	}
	if strings.TrimSpace(g.Question.Text) == "" {
		return ErrEmptyQuestion
	}
	if _, err := time.Parse("2006-01-02", g.Date); err != nil {
		return ErrInvalidDate
	}
	if g.Reward <= 0 {
		return ErrInvalidReward
	}
	seen := make(map[string]bool, OptionCount)
	for _, opt := range g.Question.Options {
		if strings.TrimSpace(opt) == "" {
			return ErrEmptyOption
		}
		if seen[opt] {
			return ErrDuplicateOption
		}
		seen[opt] = true
	}
	if !seen[g.Question.Answer] {
		return ErrAnswerNotOption
	}
	return nil
}

// Grade decides the outcome of a submitted option by exact string equality
// with the recorded answer.
// PRE: selected is non-empty
// POST: Returns WON or LOST; the game is not mutated
func (g *Game) Grade(selected string) (Status, error) {
	if selected == "" {
		return StatusIdle, ErrEmptySelection
	}
	if selected == g.Question.Answer {
		return StatusWon, nil
	}
	return StatusLost, nil
}

// AnswerFromKey maps an answer key letter (A-D) to the option text at that
// position. Authoring forms submit the letter; the stored answer is the text.
// PRE: options are populated
// POST: Returns the option text for the key, or an error for an unknown key
func AnswerFromKey(key string, options [OptionCount]string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(key)) {
	case "A":
		return options[0], nil
	case "B":
		return options[1], nil
	case "C":
		return options[2], nil
	case "D":
		return options[3], nil
	}
	return "", ErrInvalidAnswerKey
}
