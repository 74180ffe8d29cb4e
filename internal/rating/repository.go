package rating

import (
	"context"
	"database/sql"
	"fmt"

	"localbite-be/internal/db"

	"github.com/google/uuid"
)

type Repository interface {
	VisibleRatingsForCook(ctx context.Context, cookID uuid.UUID) ([]int, error)
	VisibleRatingsForMeal(ctx context.Context, mealID uuid.UUID) ([]int, error)
	SaveCookSummary(ctx context.Context, cookID uuid.UUID, s Summary) error
	SaveMealSummary(ctx context.Context, mealID uuid.UUID, s Summary) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) VisibleRatingsForCook(ctx context.Context, cookID uuid.UUID) ([]int, error) {
	return r.visibleRatings(ctx, `
		SELECT rating FROM reviews
		WHERE cook_id = $1 AND is_hidden = FALSE
	`, cookID)
}

func (r *repository) VisibleRatingsForMeal(ctx context.Context, mealID uuid.UUID) ([]int, error) {
	return r.visibleRatings(ctx, `
		SELECT rating FROM reviews
		WHERE meal_id = $1 AND is_hidden = FALSE
	`, mealID)
}

func (r *repository) visibleRatings(ctx context.Context, query string, id uuid.UUID) ([]int, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]int, 0)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

func (r *repository) SaveCookSummary(ctx context.Context, cookID uuid.UUID, s Summary) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE users
		SET avg_cook_rating = $2, cook_rating_count = $3, updated_at = NOW()
		WHERE id = $1
	`, cookID, s.Average, s.Count)
	if err != nil {
		return fmt.Errorf("save cook rating: %w", err)
	}
	return expectOneRow(res, ErrCookNotFound)
}

func (r *repository) SaveMealSummary(ctx context.Context, mealID uuid.UUID, s Summary) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE meals
		SET avg_meal_rating = $2, meal_rating_count = $3, updated_at = NOW()
		WHERE id = $1
	`, mealID, s.Average, s.Count)
	if err != nil {
		return fmt.Errorf("save meal rating: %w", err)
	}
	return expectOneRow(res, ErrMealNotFound)
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
