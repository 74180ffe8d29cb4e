package review

import (
	"context"
	"strings"

	"localbite-be/internal/audit"
	"localbite-be/internal/auth"
	"localbite-be/internal/db"
	"localbite-be/internal/logger"
	"localbite-be/internal/order"
	"localbite-be/internal/rating"
	"localbite-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderStore is the part of the order lifecycle a review touches.
type OrderStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	MarkReviewed(ctx context.Context, id uuid.UUID) error
}

type Service interface {
	Submit(ctx context.Context, p auth.Principal, in SubmitInput) (*Review, error)
	Update(ctx context.Context, p auth.Principal, id uuid.UUID, in UpdateInput) (*Review, error)
	Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error
	Hide(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*Review, error)
	Unhide(ctx context.Context, p auth.Principal, id uuid.UUID) (*Review, error)
	ListByMeal(ctx context.Context, mealID uuid.UUID) ([]*Review, error)
	ListByCook(ctx context.Context, cookID uuid.UUID) ([]*Review, error)
}

type service struct {
	repo    Repository
	orders  OrderStore
	tx      db.Transactor
	ratings rating.Aggregator
	audit   audit.Recorder
}

func NewService(
	repo Repository,
	orders OrderStore,
	tx db.Transactor,
	ratings rating.Aggregator,
	recorder audit.Recorder,
) Service {
	return &service{
		repo:    repo,
		orders:  orders,
		tx:      tx,
		ratings: ratings,
		audit:   recorder,
	}
}

func validRating(r int) bool {
	return r >= minRating && r <= maxRating
}

// Submit records the foodie's review of a completed order. The review
// insert, the has_review flag and both rating recalculations commit
// together or not at all.
func (s *service) Submit(ctx context.Context, p auth.Principal, in SubmitInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Submit"),
		zap.String("order_id", in.OrderID.String()),
	)

	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	if in.OrderID == uuid.Nil {
		return nil, ErrMissingOrder
	}
	if !validRating(in.Rating) {
		return nil, ErrInvalidRating
	}
	if err := utils.MaxLen("comment", in.Comment, maxCommentLength); err != nil {
		return nil, err
	}

	var out *Review
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if !p.Is(o.FoodieID) {
			return ErrNotOrderFoodie
		}
		if o.Status != order.StatusCompleted {
			return ErrOrderNotCompleted
		}
		if o.HasReview {
			return ErrAlreadyReviewed
		}

		rv := &Review{
			ID:       uuid.New(),
			OrderID:  o.ID,
			MealID:   o.MealID,
			CookID:   o.CookID,
			FoodieID: p.UserID,
			Rating:   in.Rating,
			Comment:  in.Comment,
		}
		if err := s.repo.Create(ctx, rv); err != nil {
			return err
		}
		if err := s.orders.MarkReviewed(ctx, o.ID); err != nil {
			return err
		}
		if err := s.ratings.RecalcForReview(ctx, rv.CookID, rv.MealID); err != nil {
			return err
		}

		out, err = s.repo.GetByID(ctx, rv.ID)
		return err
	})
	if err != nil {
		log.Warn("review submission failed", zap.Error(err))
		return nil, err
	}

	log.Info("review submitted",
		zap.String("review_id", out.ID.String()),
		zap.Int("rating", out.Rating),
	)
	return out, nil
}

// ownReview loads a review inside the current transaction and checks that p wrote it.
func (s *service) ownReview(ctx context.Context, p auth.Principal, id uuid.UUID) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Is(rv.FoodieID) {
		return nil, ErrNotReviewer
	}
	return rv, nil
}

func (s *service) Update(ctx context.Context, p auth.Principal, id uuid.UUID, in UpdateInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("review_id", id.String()),
	)

	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	if in.Rating == nil && in.Comment == nil {
		return nil, ErrNothingToApply
	}
	if in.Rating != nil && !validRating(*in.Rating) {
		return nil, ErrInvalidRating
	}
	if err := utils.MaxLen("comment", utils.PtrString(in.Comment), maxCommentLength); err != nil {
		return nil, err
	}

	var out *Review
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rv, err := s.ownReview(ctx, p, id)
		if err != nil {
			return err
		}

		newRating, comment := rv.Rating, rv.Comment
		if in.Rating != nil {
			newRating = *in.Rating
		}
		if in.Comment != nil {
			comment = *in.Comment
		}

		if err := s.repo.Update(ctx, id, newRating, comment); err != nil {
			return err
		}
		if err := s.ratings.RecalcForReview(ctx, rv.CookID, rv.MealID); err != nil {
			return err
		}

		out, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		log.Warn("review update failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// Delete removes the review. The order keeps has_review set, so it cannot
// be reviewed again.
func (s *service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("review_id", id.String()),
	)

	if !p.Authenticated() {
		return ErrUnauthorized
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rv, err := s.ownReview(ctx, p, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		return s.ratings.RecalcForReview(ctx, rv.CookID, rv.MealID)
	})
	if err != nil {
		log.Warn("review delete failed", zap.Error(err))
		return err
	}

	log.Info("review deleted")
	return nil
}

func (s *service) Hide(ctx context.Context, p auth.Principal, id uuid.UUID, reason string) (*Review, error) {
	reason = strings.TrimSpace(reason)
	if err := utils.MaxLen("reason", reason, maxReasonLength); err != nil {
		return nil, err
	}
	return s.setHidden(ctx, "Hide", p, id, true, reason)
}

func (s *service) Unhide(ctx context.Context, p auth.Principal, id uuid.UUID) (*Review, error) {
	return s.setHidden(ctx, "Unhide", p, id, false, "")
}

func (s *service) setHidden(ctx context.Context, method string, p auth.Principal, id uuid.UUID, hidden bool, reason string) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
		zap.String("review_id", id.String()),
	)

	if !p.IsAdmin() {
		log.Warn("non-admin tried to moderate a review")
		return nil, ErrAdminOnly
	}

	action := audit.ActionHideReview
	var by *uuid.UUID
	if hidden {
		by = &p.UserID
	} else {
		action = audit.ActionRestoreReview
	}

	var out *Review
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rv, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.SetHidden(ctx, id, hidden, reason, by); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, p.UserID, action, audit.TargetReview, id, reason); err != nil {
			return err
		}
		if err := s.ratings.RecalcForReview(ctx, rv.CookID, rv.MealID); err != nil {
			return err
		}

		out, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		log.Error("failed to change review visibility", zap.Error(err))
		return nil, err
	}

	log.Info("review visibility changed", zap.Bool("hidden", hidden))
	return out, nil
}

func (s *service) ListByMeal(ctx context.Context, mealID uuid.UUID) ([]*Review, error) {
	return s.repo.ListVisible(ctx, ListFilter{MealID: &mealID})
}

func (s *service) ListByCook(ctx context.Context, cookID uuid.UUID) ([]*Review, error) {
	return s.repo.ListVisible(ctx, ListFilter{CookID: &cookID})
}
