package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"localbite-be/internal/db"
	"localbite-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	Update(ctx context.Context, id uuid.UUID, rating int, comment string) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool, reason string, by *uuid.UUID) error
	ListVisible(ctx context.Context, f ListFilter) ([]*Review, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const reviewSelect = `
	SELECT
		r.id, r.order_id, r.meal_id, r.cook_id, r.foodie_id,
		r.rating, r.comment, r.is_hidden, r.hidden_reason, r.hidden_by,
		r.created_at, r.updated_at,
		COALESCE(f.full_name, ''), COALESCE(f.avatar, ''),
		COALESCE(c.full_name, ''),
		m.name, m.cover_photo_url
	FROM reviews r
	JOIN users f ON f.id = r.foodie_id
	JOIN users c ON c.id = r.cook_id
	JOIN meals m ON m.id = r.meal_id
`

func scanReview(row interface{ Scan(...any) error }) (*Review, error) {
	var (
		rv     Review
		foodie UserRef
		cook   UserRef
		meal   MealRef
	)
	err := row.Scan(
		&rv.ID, &rv.OrderID, &rv.MealID, &rv.CookID, &rv.FoodieID,
		&rv.Rating, &rv.Comment, &rv.IsHidden, &rv.HiddenReason, &rv.HiddenBy,
		&rv.CreatedAt, &rv.UpdatedAt,
		&foodie.FullName, &foodie.Avatar,
		&cook.FullName,
		&meal.Name, &meal.CoverPhotoURL,
	)
	if err != nil {
		return nil, err
	}

	foodie.ID, cook.ID, meal.ID = rv.FoodieID, rv.CookID, rv.MealID
	rv.Foodie, rv.Cook, rv.Meal = &foodie, &cook, &meal
	return &rv, nil
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_id", rv.OrderID.String()),
	)

	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO reviews (id, order_id, meal_id, cook_id, foodie_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`,
		rv.ID, rv.OrderID, rv.MealID, rv.CookID, rv.FoodieID, rv.Rating, rv.Comment,
	).Scan(&rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "reviews_order_id_key") {
			log.Warn("duplicate review for order")
			return ErrDuplicateReview
		}
		log.Error("failed to insert review", zap.Error(err))
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	rv, err := scanReview(db.Conn(ctx, r.db).QueryRowContext(ctx, reviewSelect+" WHERE r.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, rating int, comment string) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $1
	`, id, rating, comment)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return expectOne(res)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return expectOne(res)
}

func (r *repository) SetHidden(ctx context.Context, id uuid.UUID, hidden bool, reason string, by *uuid.UUID) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE reviews
		SET is_hidden = $2, hidden_reason = $3, hidden_by = $4, updated_at = NOW()
		WHERE id = $1
	`, id, hidden, reason, by)
	if err != nil {
		return fmt.Errorf("set review hidden: %w", err)
	}
	return expectOne(res)
}

func (r *repository) ListVisible(ctx context.Context, f ListFilter) ([]*Review, error) {
	where := []string{"r.is_hidden = FALSE"}
	args := []interface{}{}

	if f.MealID != nil {
		where = append(where, fmt.Sprintf("r.meal_id = $%d", len(args)+1))
		args = append(args, *f.MealID)
	}
	if f.CookID != nil {
		where = append(where, fmt.Sprintf("r.cook_id = $%d", len(args)+1))
		args = append(args, *f.CookID)
	}

	query := reviewSelect + " WHERE " + strings.Join(where, " AND ") + " ORDER BY r.created_at DESC"

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
