package audit

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionVerifyUser    Action = "verify_user"
	ActionUnverifyUser  Action = "unverify_user"
	ActionTakeDownMeal  Action = "take_down_meal"
	ActionRestoreMeal   Action = "restore_meal"
	ActionHideReview    Action = "hide_review"
	ActionRestoreReview Action = "restore_review"
	ActionAssignReport  Action = "assign_report"
	ActionResolveReport Action = "resolve_report"
	ActionRejectReport  Action = "reject_report"
)

type TargetType string

const (
	TargetUser   TargetType = "user"
	TargetMeal   TargetType = "meal"
	TargetReview TargetType = "review"
	TargetReport TargetType = "report"
)

const maxNoteLength = 1200

type Entry struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	Action     Action
	TargetType TargetType
	TargetID   uuid.UUID
	Note       string
	CreatedAt  time.Time
}
