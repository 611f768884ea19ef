package game_test

import (
	"testing"

	"bafs/internal/domain/game"
)

func validGame() game.Game {
	return game.Game{
		ID:     "g-1",
		Date:   "2026-03-02",
		Topic:  "Introduction to Accounting",
		Reward: 5000,
		Question: game.Question{
			Text:    "Which statement reports assets, liabilities and equity?",
			Options: [4]string{"Income statement", "Balance sheet", "Cash flow statement", "Trial balance"},
			Answer:  "Balance sheet",
		},
	}
}

// TestGame_Validate tests validation of Game.
func TestGame_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*game.Game)
		wantErr error
	}{
		{name: "valid game", mutate: func(g *game.Game) {}, wantErr: nil},
		{name: "empty topic", mutate: func(g *game.Game) { g.Topic = " " }, wantErr: game.ErrEmptyTopic},
		{name: "empty question", mutate: func(g *game.Game) { g.Question.Text = "" }, wantErr: game.ErrEmptyQuestion},
		{name: "bad date", mutate: func(g *game.Game) { g.Date = "02/03/2026" }, wantErr: game.ErrInvalidDate},
		{name: "zero reward", mutate: func(g *game.Game) { g.Reward = 0 }, wantErr: game.ErrInvalidReward},
		{name: "negative reward", mutate: func(g *game.Game) { g.Reward = -100 }, wantErr: game.ErrInvalidReward},
		{name: "blank option", mutate: func(g *game.Game) { g.Question.Options[2] = "  " }, wantErr: game.ErrEmptyOption},
		{name: "duplicate options", mutate: func(g *game.Game) { g.Question.Options[3] = g.Question.Options[0] }, wantErr: game.ErrDuplicateOption},
		{name: "answer not an option", mutate: func(g *game.Game) { g.Question.Answer = "Ledger" }, wantErr: game.ErrAnswerNotOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGame()
			tt.mutate(&g)
			if err := g.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestGame_Grade tests outcome decision by exact string equality.
func TestGame_Grade(t *testing.T) {
	g := validGame()

	status, err := g.Grade("Balance sheet")
	if err != nil || status != game.StatusWon {
		t.Errorf("Grade(correct) = %v, %v; want WON", status, err)
	}

	status, err = g.Grade("Income statement")
	if err != nil || status != game.StatusLost {
		t.Errorf("Grade(wrong) = %v, %v; want LOST", status, err)
	}

	// Equality is exact and case-sensitive.
	status, err = g.Grade("balance sheet")
	if err != nil || status != game.StatusLost {
		t.Errorf("Grade(case mismatch) = %v, %v; want LOST", status, err)
	}

	if _, err := g.Grade(""); err != game.ErrEmptySelection {
		t.Errorf("Grade(empty) error = %v, want ErrEmptySelection", err)
	}
}

// TestAnswerFromKey tests the authoring letter-to-option lookup.
func TestAnswerFromKey(t *testing.T) {
	options := [4]string{"Alpha", "Bravo", "Charlie", "Delta"}

	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "A", want: "Alpha"},
		{key: "B", want: "Bravo"},
		{key: "C", want: "Charlie"},
		{key: "D", want: "Delta"},
		{key: "d", want: "Delta"},
		{key: " b ", want: "Bravo"},
		{key: "E", wantErr: true},
		{key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("key_"+tt.key, func(t *testing.T) {
			got, err := game.AnswerFromKey(tt.key, options)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AnswerFromKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("AnswerFromKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
