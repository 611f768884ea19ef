package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bafs/internal/adapters/email"
	"bafs/internal/domain/audit"
	gameDomain "bafs/internal/domain/game"
)

// GameStoreForPublish defines the store interface needed by PublishGame.
type GameStoreForPublish interface {
	Save(ctx context.Context, g gameDomain.Game) error
}

// PublishGameInput carries input for the publish-game orchestrator.
// Answer is the literal option text; AnswerKey is the A-D shorthand and
// wins when both are set.
type PublishGameInput struct {
	ActorID   string
	Date      string // YYYY-MM-DD; empty means today
	Topic     string
	Reward    int
	Question  string
	Options   [gameDomain.OptionCount]string
	Answer    string
	AnswerKey string
}

// PublishGameDeps holds dependencies for PublishGame.
type PublishGameDeps struct {
	GameStore    GameStoreForPublish
	ProfileStore ProfileStoreForSubmit
	AuditStore   AuditStoreForOrchestrator // optional: nil skips audit logging
	Sender       email.Sender              // optional: nil skips notification
	NotifyEmail  string                    // recipient for publish notifications
	GenerateID   func() string
	Now          func() time.Time
}

// ErrNotAuthorized is returned when a student tries an authoring operation.
var ErrNotAuthorized = errors.New("only teachers and admins can do this")

// DefaultReward is the payout when the author leaves the reward blank.
const DefaultReward = 5000

// ExecutePublishGame validates and stores a new daily game. The actor's
// role is checked against the stored profile, not the request, and the
// published game immediately becomes the current one for every student.
// PRE: ActorID identifies a teacher or admin profile
// POST: Game persisted with a generated ID; students see it on next load
func ExecutePublishGame(ctx context.Context, input PublishGameInput, deps PublishGameDeps) (gameDomain.Game, error) {
	actor, err := deps.ProfileStore.GetByStudentID(ctx, input.ActorID)
	if err != nil {
		return gameDomain.Game{}, err
	}
	if !actor.IsTeacherOrAdmin() {
		slog.Info("auth_event", "event", "publish_denied", "student_id", input.ActorID, "role", actor.Role)
		return gameDomain.Game{}, ErrNotAuthorized
	}

	answer := input.Answer
	if input.AnswerKey != "" {
		answer, err = gameDomain.AnswerFromKey(input.AnswerKey, input.Options)
		if err != nil {
			return gameDomain.Game{}, err
		}
	}

	date := input.Date
	if date == "" {
		date = deps.Now().Format("2006-01-02")
	}
	reward := input.Reward
	if reward == 0 {
		reward = DefaultReward
	}

	g := gameDomain.Game{
		ID:     deps.GenerateID(),
		Date:   date,
		Topic:  input.Topic,
		Reward: reward,
		Question: gameDomain.Question{
			Text:    input.Question,
			Options: input.Options,
			Answer:  answer,
		},
		CreatedBy: actor.StudentID,
		CreatedAt: deps.Now(),
	}
	if err := g.Validate(); err != nil {
		return gameDomain.Game{}, err
	}

	if err := deps.GameStore.Save(ctx, g); err != nil {
		return gameDomain.Game{}, err
	}

	slog.Info("event", "action", "game_published", "game_id", g.ID, "date", g.Date, "topic", g.Topic, "created_by", actor.StudentID)

	if deps.AuditStore != nil {
		e := audit.NewEvent(deps.GenerateID(), actor.StudentID, actor.Role, audit.CategoryGame, audit.ActionPublish).
			WithResource("game", g.ID).
			WithDescription("daily game published for " + g.Date)
		_ = deps.AuditStore.Save(ctx, e)
	}

	if deps.Sender != nil && deps.NotifyEmail != "" {
		req := email.SendRequest{
			To:      []string{deps.NotifyEmail},
			Subject: fmt.Sprintf("Daily game published for %s", g.Date),
			HTML:    fmt.Sprintf("<p>%s published a new daily game on <strong>%s</strong> (reward %d).</p>", actor.Name, g.Topic, g.Reward),
		}
		if _, err := deps.Sender.Send(ctx, req); err != nil {
			slog.Warn("event", "action", "publish_notify_failed", "game_id", g.ID, "error", err)
		}
	}

	return g, nil
}
