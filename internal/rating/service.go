package rating

import (
	"context"

	"localbite-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Aggregator keeps the cached rating summaries on users and meals equal to
// the mean of their currently visible reviews. Every call recomputes from
// scratch; nothing is updated incrementally.
type Aggregator interface {
	RecalcForCook(ctx context.Context, cookID uuid.UUID) (Summary, error)
	RecalcForMeal(ctx context.Context, mealID uuid.UUID) (Summary, error)
	RecalcForReview(ctx context.Context, cookID, mealID uuid.UUID) error
}

type aggregator struct {
	repo Repository
}

func NewAggregator(repo Repository) Aggregator {
	return &aggregator{repo: repo}
}

func (a *aggregator) RecalcForCook(ctx context.Context, cookID uuid.UUID) (Summary, error) {
	ratings, err := a.repo.VisibleRatingsForCook(ctx, cookID)
	if err != nil {
		return Summary{}, err
	}

	s := Summarize(ratings)
	if err := a.repo.SaveCookSummary(ctx, cookID, s); err != nil {
		return Summary{}, err
	}
	return s, nil
}

func (a *aggregator) RecalcForMeal(ctx context.Context, mealID uuid.UUID) (Summary, error) {
	ratings, err := a.repo.VisibleRatingsForMeal(ctx, mealID)
	if err != nil {
		return Summary{}, err
	}

	s := Summarize(ratings)
	if err := a.repo.SaveMealSummary(ctx, mealID, s); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// RecalcForReview refreshes both aggregates touched by a review event.
func (a *aggregator) RecalcForReview(ctx context.Context, cookID, mealID uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RecalcForReview"),
		zap.String("cook_id", cookID.String()),
		zap.String("meal_id", mealID.String()),
	)

	cook, err := a.RecalcForCook(ctx, cookID)
	if err != nil {
		log.Error("failed to recalc cook rating", zap.Error(err))
		return err
	}

	meal, err := a.RecalcForMeal(ctx, mealID)
	if err != nil {
		log.Error("failed to recalc meal rating", zap.Error(err))
		return err
	}

	log.Debug("ratings recalculated",
		zap.Float64("avg_cook_rating", cook.Average),
		zap.Int("cook_rating_count", cook.Count),
		zap.Float64("avg_meal_rating", meal.Average),
		zap.Int("meal_rating_count", meal.Count),
	)
	return nil
}
