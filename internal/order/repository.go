package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"localbite-be/internal/db"
	"localbite-be/internal/logger"
	"localbite-be/internal/meal"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, f ListFilter) ([]*Order, error)
	ListExpirable(ctx context.Context, before time.Time, limit int) ([]*Order, error)
	// Transition persists next only if the stored status still equals prev.
	Transition(ctx context.Context, prev Status, next *Order) error
	// MarkReviewed flips has_review from false to true on a completed order.
	MarkReviewed(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderSelect = `
	SELECT
		o.id, o.code, o.meal_id, o.cook_id, o.foodie_id,
		o.meal_name, o.meal_unit_label, o.meal_price, o.meal_currency, o.meal_cover_photo_url,
		o.quantity, o.fulfillment_type,
		o.pickup_time, o.pickup_note, o.delivery_address_label, o.delivery_address_text, o.delivery_note,
		o.status,
		o.cook_decision_state, o.cook_decided_at, o.cook_decision_note,
		o.foodie_decision_state, o.foodie_decided_at, o.foodie_decision_note,
		o.requested_at, o.confirmed_at, o.completed_at, o.cancelled_at, o.cancelled_by, o.cancel_reason,
		o.has_review, o.created_at, o.updated_at,
		m.name, m.cover_photo_url,
		COALESCE(c.full_name, ''), c.is_verified,
		COALESCE(f.full_name, ''), f.is_verified
	FROM orders o
	JOIN meals m ON m.id = o.meal_id
	JOIN users c ON c.id = o.cook_id
	JOIN users f ON f.id = o.foodie_id
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var (
		o            Order
		pickup       PickupDetails
		delivery     DeliveryDetails
		cancelledBy  sql.NullString
		cancelReason string
		mealRef      MealRef
		cook         UserRef
		foodie       UserRef
	)

	err := row.Scan(
		&o.ID, &o.Code, &o.MealID, &o.CookID, &o.FoodieID,
		&o.MealSnapshot.Name, &o.MealSnapshot.UnitLabel, &o.MealSnapshot.Price,
		&o.MealSnapshot.Currency, &o.MealSnapshot.CoverPhotoURL,
		&o.Quantity, &o.FulfillmentType,
		&pickup.PickupTime, &pickup.PickupNote,
		&delivery.AddressLabel, &delivery.AddressText, &delivery.DeliveryNote,
		&o.Status,
		&o.CookDecision.State, &o.CookDecision.DecidedAt, &o.CookDecision.Note,
		&o.FoodieDecision.State, &o.FoodieDecision.DecidedAt, &o.FoodieDecision.Note,
		&o.RequestedAt, &o.ConfirmedAt, &o.CompletedAt, &o.CancelledAt, &cancelledBy, &cancelReason,
		&o.HasReview, &o.CreatedAt, &o.UpdatedAt,
		&mealRef.Name, &mealRef.CoverPhotoURL,
		&cook.FullName, &cook.IsVerified,
		&foodie.FullName, &foodie.IsVerified,
	)
	if err != nil {
		return nil, err
	}

	switch o.FulfillmentType {
	case FulfillmentPickup:
		o.Pickup = &pickup
	case FulfillmentDelivery:
		o.Delivery = &delivery
	}
	if cancelledBy.Valid {
		o.CancelInfo = &CancelInfo{CancelledBy: Party(cancelledBy.String), Reason: cancelReason}
	}

	mealRef.ID = o.MealID
	cook.ID = o.CookID
	foodie.ID = o.FoodieID
	o.Meal, o.Cook, o.Foodie = &mealRef, &cook, &foodie

	return &o, nil
}

// fulfillmentArgs returns the columns for the details matching the type only.
func fulfillmentArgs(o *Order) (pickupTime *time.Time, pickupNote, label, text, deliveryNote string) {
	switch {
	case o.FulfillmentType == FulfillmentPickup && o.Pickup != nil:
		return o.Pickup.PickupTime, o.Pickup.PickupNote, "", "", ""
	case o.FulfillmentType == FulfillmentDelivery && o.Delivery != nil:
		return nil, "", o.Delivery.AddressLabel, o.Delivery.AddressText, o.Delivery.DeliveryNote
	}
	return nil, "", "", "", ""
}

func cancelArgs(o *Order) (by *string, reason string) {
	if o.CancelInfo == nil {
		return nil, ""
	}
	p := string(o.CancelInfo.CancelledBy)
	return &p, o.CancelInfo.Reason
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_code", o.Code),
	)

	pickupTime, pickupNote, label, text, deliveryNote := fulfillmentArgs(o)

	query := `
		INSERT INTO orders (
			id, code, meal_id, cook_id, foodie_id,
			meal_name, meal_unit_label, meal_price, meal_currency, meal_cover_photo_url,
			quantity, fulfillment_type,
			pickup_time, pickup_note, delivery_address_label, delivery_address_text, delivery_note,
			status, cook_decision_state, foodie_decision_state, requested_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING created_at, updated_at
	`

	err := db.Conn(ctx, r.db).QueryRowContext(ctx, query,
		o.ID, o.Code, o.MealID, o.CookID, o.FoodieID,
		o.MealSnapshot.Name, o.MealSnapshot.UnitLabel, o.MealSnapshot.Price,
		o.MealSnapshot.Currency, o.MealSnapshot.CoverPhotoURL,
		o.Quantity, o.FulfillmentType,
		pickupTime, pickupNote, label, text, deliveryNote,
		o.Status, o.CookDecision.State, o.FoodieDecision.State, o.RequestedAt,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "orders_code_key") {
			log.Warn("order code collision")
			return ErrCodeTaken
		}
		if db.IsForeignKeyViolation(err, "orders_cook_id_fkey", "orders_foodie_id_fkey") {
			log.Warn("order party has no user profile", zap.Error(err))
			return ErrProfileMissing
		}
		if db.IsForeignKeyViolation(err, "orders_meal_id_fkey") {
			log.Warn("order meal vanished", zap.Error(err))
			return meal.ErrMealNotFound
		}
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(db.Conn(ctx, r.db).QueryRowContext(ctx, orderSelect+" WHERE o.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Order, error) {
	where := []string{}
	args := []interface{}{}

	if f.FoodieID != nil {
		where = append(where, fmt.Sprintf("o.foodie_id = $%d", len(args)+1))
		args = append(args, *f.FoodieID)
	}
	if f.CookID != nil {
		where = append(where, fmt.Sprintf("o.cook_id = $%d", len(args)+1))
		args = append(args, *f.CookID)
	}

	query := orderSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY o.requested_at DESC LIMIT %d", listLimit)

	return r.query(ctx, query, args...)
}

func (r *repository) ListExpirable(ctx context.Context, before time.Time, limit int) ([]*Order, error) {
	query := orderSelect + `
		WHERE o.status IN ('requested', 'cook_confirmed', 'foodie_confirmed')
		AND o.requested_at < $1
		ORDER BY o.requested_at ASC
		LIMIT $2
	`
	return r.query(ctx, query, before, limit)
}

func (r *repository) query(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func (r *repository) Transition(ctx context.Context, prev Status, next *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Transition"),
		zap.String("order_id", next.ID.String()),
		zap.String("from", string(prev)),
		zap.String("to", string(next.Status)),
	)

	cancelledBy, cancelReason := cancelArgs(next)

	query := `
		UPDATE orders
		SET status = $3,
			cook_decision_state = $4,
			cook_decided_at = $5,
			cook_decision_note = $6,
			foodie_decision_state = $7,
			foodie_decided_at = $8,
			foodie_decision_note = $9,
			confirmed_at = $10,
			completed_at = $11,
			cancelled_at = $12,
			cancelled_by = $13,
			cancel_reason = $14,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query,
		next.ID, prev, next.Status,
		next.CookDecision.State, next.CookDecision.DecidedAt, next.CookDecision.Note,
		next.FoodieDecision.State, next.FoodieDecision.DecidedAt, next.FoodieDecision.Note,
		next.ConfirmedAt, next.CompletedAt, next.CancelledAt,
		cancelledBy, cancelReason,
	)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return fmt.Errorf("transition order: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		log.Warn("order status changed concurrently")
		return ErrInvalidTransition
	}
	return nil
}

func (r *repository) MarkReviewed(ctx context.Context, id uuid.UUID) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE orders
		SET has_review = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = 'completed' AND has_review = FALSE
	`, id)
	if err != nil {
		return fmt.Errorf("mark order reviewed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrAlreadyReviewed
	}
	return nil
}
