package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"localbite-be/internal/audit"
	"localbite-be/internal/auth"
	"localbite-be/internal/db"
	"localbite-be/internal/logger"
	"localbite-be/internal/meal"
	"localbite-be/internal/review"
	"localbite-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewModerator hides reviews when a report is resolved with hide_review.
type ReviewModerator interface {
	Hide(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*review.Review, error)
}

// MealModerator takes meals down when a report is resolved with take_down_meal.
type MealModerator interface {
	TakeDown(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*meal.Meal, error)
}

type Service interface {
	Create(ctx context.Context, p auth.Principal, in CreateInput) (*Report, error)
	List(ctx context.Context, p auth.Principal) ([]*Report, error)
	Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*Report, error)
	Assign(ctx context.Context, p auth.Principal, id uuid.UUID) (*Report, error)
	Resolve(ctx context.Context, p auth.Principal, id uuid.UUID, in ResolveInput) (*Report, error)
	Reject(ctx context.Context, p auth.Principal, id uuid.UUID, note string) (*Report, error)
}

type service struct {
	repo    Repository
	tx      db.Transactor
	reviews ReviewModerator
	meals   MealModerator
	audit   audit.Recorder
	now     func() time.Time
}

func NewService(
	repo Repository,
	tx db.Transactor,
	reviews ReviewModerator,
	meals MealModerator,
	recorder audit.Recorder,
) Service {
	return &service{
		repo:    repo,
		tx:      tx,
		reviews: reviews,
		meals:   meals,
		audit:   recorder,
		now:     time.Now,
	}
}

func (s *service) Create(ctx context.Context, p auth.Principal, in CreateInput) (*Report, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	if !in.TargetType.Valid() {
		return nil, ErrInvalidTarget
	}
	if in.TargetID == uuid.Nil {
		return nil, ErrMissingTarget
	}
	if !in.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	desc := strings.TrimSpace(in.Description)
	if err := utils.MaxLen("description", desc, maxDescriptionLength); err != nil {
		return nil, err
	}

	rep := &Report{
		ID:          uuid.New(),
		ReporterID:  p.UserID,
		TargetType:  in.TargetType,
		TargetID:    in.TargetID,
		Category:    in.Category,
		Description: desc,
		Status:      StatusOpen,
		ActionTaken: ActionNone,
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}

	log.Info("report created",
		zap.String("report_id", rep.ID.String()),
		zap.String("target_type", string(rep.TargetType)),
		zap.String("category", string(rep.Category)),
	)
	return rep, nil
}

func (s *service) List(ctx context.Context, p auth.Principal) ([]*Report, error) {
	if !p.IsAdmin() {
		return nil, ErrAdminOnly
	}
	return s.repo.List(ctx)
}

// Get returns a report to an admin or to the user who filed it.
func (s *service) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*Report, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}

	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && !p.Is(rep.ReporterID) {
		return nil, ErrNotReporter
	}
	return rep, nil
}

func (s *service) Assign(ctx context.Context, p auth.Principal, id uuid.UUID) (*Report, error) {
	return s.adminStep(ctx, "Assign", p, id, func(ctx context.Context, _ *Report) error {
		if err := s.repo.Assign(ctx, id, p.UserID); err != nil {
			return err
		}
		return s.audit.Record(ctx, p.UserID, audit.ActionAssignReport, audit.TargetReport, id, "")
	})
}

// Resolve closes the report and applies its moderation action in the same
// transaction. suspend_user and warn_user are recorded only.
func (s *service) Resolve(ctx context.Context, p auth.Principal, id uuid.UUID, in ResolveInput) (*Report, error) {
	if in.Action == "" {
		in.Action = ActionNone
	}
	if !in.Action.Valid() {
		return nil, ErrInvalidAction
	}
	note := strings.TrimSpace(in.Note)
	if err := utils.MaxLen("note", note, maxNoteLength); err != nil {
		return nil, err
	}

	return s.adminStep(ctx, "Resolve", p, id, func(ctx context.Context, rep *Report) error {
		if t := in.Action.target(); t != "" && t != rep.TargetType {
			return ErrActionMismatch
		}

		if err := s.repo.Close(ctx, id, StatusResolved, in.Action, note, s.now()); err != nil {
			return err
		}
		if err := s.applyAction(ctx, p, rep, in.Action, note); err != nil {
			return err
		}
		return s.audit.Record(ctx, p.UserID, audit.ActionResolveReport, audit.TargetReport, id,
			fmt.Sprintf("%s: %s", in.Action, note))
	})
}

func (s *service) applyAction(ctx context.Context, p auth.Principal, rep *Report, action Action, note string) error {
	reason := note
	if reason == "" {
		reason = fmt.Sprintf("Reported: %s", rep.Category)
	}

	switch action {
	case ActionHideReview:
		_, err := s.reviews.Hide(ctx, p, rep.TargetID, reason)
		return err
	case ActionTakeDownMeal:
		_, err := s.meals.TakeDown(ctx, p, rep.TargetID, reason)
		return err
	}
	return nil
}

func (s *service) Reject(ctx context.Context, p auth.Principal, id uuid.UUID, note string) (*Report, error) {
	note = strings.TrimSpace(note)
	if err := utils.MaxLen("note", note, maxNoteLength); err != nil {
		return nil, err
	}

	return s.adminStep(ctx, "Reject", p, id, func(ctx context.Context, _ *Report) error {
		if err := s.repo.Close(ctx, id, StatusRejected, ActionNone, note, s.now()); err != nil {
			return err
		}
		return s.audit.Record(ctx, p.UserID, audit.ActionRejectReport, audit.TargetReport, id, note)
	})
}

// adminStep loads the report inside a transaction, rejects closed reports,
// runs fn and returns the updated report.
func (s *service) adminStep(
	ctx context.Context,
	method string,
	p auth.Principal,
	id uuid.UUID,
	fn func(ctx context.Context, rep *Report) error,
) (*Report, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
		zap.String("report_id", id.String()),
	)

	if !p.IsAdmin() {
		log.Warn("non-admin tried to handle a report")
		return nil, ErrAdminOnly
	}

	var out *Report
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rep, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rep.Status.Closed() {
			return ErrReportClosed
		}
		if err := fn(ctx, rep); err != nil {
			return err
		}

		out, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		log.Warn("report step failed", zap.Error(err))
		return nil, err
	}

	log.Info("report updated", zap.String("status", string(out.Status)))
	return out, nil
}
