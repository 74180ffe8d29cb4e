package report

import (
	"time"

	"github.com/google/uuid"
)

type TargetType string

const (
	TargetMeal   TargetType = "meal"
	TargetReview TargetType = "review"
	TargetUser   TargetType = "user"
)

func (t TargetType) Valid() bool {
	switch t {
	case TargetMeal, TargetReview, TargetUser:
		return true
	}
	return false
}

type Category string

const (
	CategoryInappropriate Category = "inappropriate"
	CategoryUnsafeFood    Category = "unsafe_food"
	CategoryScam          Category = "scam"
	CategoryHarassment    Category = "harassment"
	CategorySpam          Category = "spam"
	CategoryOther         Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryInappropriate, CategoryUnsafeFood, CategoryScam,
		CategoryHarassment, CategorySpam, CategoryOther:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen        Status = "open"
	StatusUnderReview Status = "under_review"
	StatusResolved    Status = "resolved"
	StatusRejected    Status = "rejected"
)

// Closed reports whether no further admin step applies.
func (s Status) Closed() bool {
	return s == StatusResolved || s == StatusRejected
}

// Action is the moderation outcome recorded when a report is resolved.
type Action string

const (
	ActionNone         Action = "none"
	ActionHideReview   Action = "hide_review"
	ActionTakeDownMeal Action = "take_down_meal"
	ActionSuspendUser  Action = "suspend_user"
	ActionWarnUser     Action = "warn_user"
)

func (a Action) Valid() bool {
	switch a {
	case ActionNone, ActionHideReview, ActionTakeDownMeal, ActionSuspendUser, ActionWarnUser:
		return true
	}
	return false
}

// target is the kind of object the action operates on; empty means any.
func (a Action) target() TargetType {
	switch a {
	case ActionHideReview:
		return TargetReview
	case ActionTakeDownMeal:
		return TargetMeal
	case ActionSuspendUser, ActionWarnUser:
		return TargetUser
	}
	return ""
}

type Report struct {
	ID             uuid.UUID
	ReporterID     uuid.UUID
	TargetType     TargetType
	TargetID       uuid.UUID
	Category       Category
	Description    string
	Status         Status
	AssignedTo     *uuid.UUID
	ActionTaken    Action
	ResolutionNote string
	ResolvedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateInput struct {
	TargetType  TargetType
	TargetID    uuid.UUID
	Category    Category
	Description string
}

type ResolveInput struct {
	Action Action
	Note   string
}

const (
	listLimit            = 200
	maxDescriptionLength = 1200
	maxNoteLength        = 800
)
