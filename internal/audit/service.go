package audit

import (
	"context"
	"time"
	"unicode/utf8"

	"localbite-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder appends admin actions to the audit log. Called inside the
// transaction of the action it records, so a failed write undoes the action.
type Recorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action Action, target TargetType, targetID uuid.UUID, note string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Recorder {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Record(
	ctx context.Context,
	actorID uuid.UUID,
	action Action,
	target TargetType,
	targetID uuid.UUID,
	note string,
) error {
	if utf8.RuneCountInString(note) > maxNoteLength {
		note = string([]rune(note)[:maxNoteLength])
	}

	e := &Entry{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		TargetType: target,
		TargetID:   targetID,
		Note:       note,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		logger.FromCtx(ctx).Error("failed to record audit log",
			zap.String("action", string(action)),
			zap.String("target_id", targetID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
