package meal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"localbite-be/internal/db"
	"localbite-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]*Meal, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Meal, error)
	FindIncludingDeleted(ctx context.Context, id uuid.UUID) (*Meal, error)
	Create(ctx context.Context, m *Meal) (*Meal, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateParams) error
	UpdateAvailability(ctx context.Context, id uuid.UUID, p AvailabilityParams) error
	SoftDelete(ctx context.Context, id uuid.UUID, by *uuid.UUID, reason string) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// rating columns are read here but written only by the rating aggregator
const mealSelect = `
	SELECT
		m.id, m.cook_id, m.name, m.short_description, m.description, m.cover_photo_url,
		m.ingredients, m.allergens, m.tags,
		m.is_free, m.price, m.currency, m.unit_label,
		m.diet_type, m.cuisine, m.availability_status, m.available_portions, m.ready_in_minutes,
		m.location_label, m.offers_pickup, m.offers_delivery,
		m.avg_meal_rating, m.meal_rating_count,
		m.is_deleted, m.deleted_at, m.deleted_by, m.delete_reason,
		m.created_at, m.updated_at,
		COALESCE(u.full_name, ''), COALESCE(u.avatar, ''), u.is_verified, COALESCE(u.location_label, ''), u.avg_cook_rating, u.cook_rating_count
	FROM meals m
	JOIN users u ON u.id = m.cook_id
`

func scanMeal(row interface{ Scan(...any) error }) (*Meal, error) {
	var m Meal
	var c CookSummary
	err := row.Scan(
		&m.ID, &m.CookID, &m.Name, &m.ShortDescription, &m.Description, &m.CoverPhotoURL,
		pq.Array(&m.Ingredients), pq.Array(&m.Allergens), pq.Array(&m.Tags),
		&m.IsFree, &m.Price, &m.Currency, &m.UnitLabel,
		&m.DietType, &m.Cuisine, &m.Availability, &m.AvailablePortions, &m.ReadyInMinutes,
		&m.LocationLabel, &m.Fulfillment.Pickup, &m.Fulfillment.Delivery,
		&m.Rating.Average, &m.Rating.Count,
		&m.IsDeleted, &m.DeletedAt, &m.DeletedBy, &m.DeleteReason,
		&m.CreatedAt, &m.UpdatedAt,
		&c.FullName, &c.Avatar, &c.IsVerified, &c.LocationLabel, &c.Rating.Average, &c.Rating.Count,
	)
	if err != nil {
		return nil, err
	}
	c.ID = m.CookID
	m.Cook = &c
	return &m, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]*Meal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	where := []string{"m.is_deleted = FALSE"}
	args := []interface{}{}

	if f.Search != "" {
		where = append(where, fmt.Sprintf(
			"to_tsvector('simple', m.name || ' ' || m.short_description || ' ' || m.description || ' ' || m.cuisine || ' ' || array_to_string(m.tags, ' ')) @@ plainto_tsquery('simple', $%d)",
			len(args)+1))
		args = append(args, f.Search)
	}
	if f.DietType != "" {
		where = append(where, fmt.Sprintf("m.diet_type = $%d", len(args)+1))
		args = append(args, f.DietType)
	}
	if f.Availability != "" {
		where = append(where, fmt.Sprintf("m.availability_status = $%d", len(args)+1))
		args = append(args, f.Availability)
	}
	if f.CookID != nil {
		where = append(where, fmt.Sprintf("m.cook_id = $%d", len(args)+1))
		args = append(args, *f.CookID)
	}
	if f.Tag != "" {
		where = append(where, fmt.Sprintf("$%d = ANY(m.tags)", len(args)+1))
		args = append(args, f.Tag)
	}
	if f.IsFree != nil {
		where = append(where, fmt.Sprintf("m.is_free = $%d", len(args)+1))
		args = append(args, *f.IsFree)
	}

	query := mealSelect + " WHERE " + strings.Join(where, " AND ") +
		fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT %d", listLimit)

	log.Debug("executing meal list query", zap.Any("args", args))

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list meals", zap.Error(err))
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]*Meal, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			log.Error("failed to scan meal", zap.Error(err))
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return meals, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Meal, error) {
	return r.find(ctx, mealSelect+" WHERE m.id = $1 AND m.is_deleted = FALSE", id)
}

func (r *repository) FindIncludingDeleted(ctx context.Context, id uuid.UUID) (*Meal, error) {
	return r.find(ctx, mealSelect+" WHERE m.id = $1", id)
}

func (r *repository) find(ctx context.Context, query string, id uuid.UUID) (*Meal, error) {
	m, err := scanMeal(db.Conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find meal: %w", err)
	}
	return m, nil
}

func (r *repository) Create(ctx context.Context, m *Meal) (*Meal, error) {
	query := `
		INSERT INTO meals (
			id, cook_id, name, short_description, description, cover_photo_url,
			ingredients, allergens, tags, is_free, price, currency, unit_label,
			diet_type, cuisine, availability_status, available_portions, ready_in_minutes,
			location_label, offers_pickup, offers_delivery
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING created_at, updated_at
	`

	err := db.Conn(ctx, r.db).QueryRowContext(ctx, query,
		m.ID, m.CookID, m.Name, m.ShortDescription, m.Description, m.CoverPhotoURL,
		pq.Array(m.Ingredients), pq.Array(m.Allergens), pq.Array(m.Tags),
		m.IsFree, m.Price, m.Currency, m.UnitLabel,
		m.DietType, m.Cuisine, m.Availability, m.AvailablePortions, m.ReadyInMinutes,
		m.LocationLabel, m.Fulfillment.Pickup, m.Fulfillment.Delivery,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert meal: %w", err)
	}
	return m, nil
}

func optionalArray(v *[]string) interface{} {
	if v == nil {
		return nil
	}
	return pq.Array(*v)
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) error {
	// COALESCE keeps the stored value for nil fields
	query := `
		UPDATE meals
		SET name = COALESCE($2, name),
			short_description = COALESCE($3, short_description),
			description = COALESCE($4, description),
			cover_photo_url = COALESCE($5, cover_photo_url),
			ingredients = COALESCE($6, ingredients),
			allergens = COALESCE($7, allergens),
			tags = COALESCE($8, tags),
			is_free = COALESCE($9, is_free),
			price = COALESCE($10, price),
			currency = COALESCE($11, currency),
			unit_label = COALESCE($12, unit_label),
			diet_type = COALESCE($13, diet_type),
			cuisine = COALESCE($14, cuisine),
			ready_in_minutes = COALESCE($15, ready_in_minutes),
			location_label = COALESCE($16, location_label),
			offers_pickup = COALESCE($17, offers_pickup),
			offers_delivery = COALESCE($18, offers_delivery),
			updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query, id,
		p.Name, p.ShortDescription, p.Description, p.CoverPhotoURL,
		optionalArray(p.Ingredients), optionalArray(p.Allergens), optionalArray(p.Tags),
		p.IsFree, p.Price, p.Currency, p.UnitLabel,
		p.DietType, p.Cuisine, p.ReadyInMinutes, p.LocationLabel,
		p.Pickup, p.Delivery,
	)
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	return expectOne(res)
}

func (r *repository) UpdateAvailability(ctx context.Context, id uuid.UUID, p AvailabilityParams) error {
	query := `
		UPDATE meals
		SET availability_status = COALESCE($2, availability_status),
			available_portions = COALESCE($3, available_portions),
			updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query, id, p.Status, p.Portions)
	if err != nil {
		return fmt.Errorf("update meal availability: %w", err)
	}
	return expectOne(res)
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID, by *uuid.UUID, reason string) error {
	query := `
		UPDATE meals
		SET is_deleted = TRUE,
			deleted_at = NOW(),
			deleted_by = $2,
			delete_reason = $3,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query, id, by, reason)
	if err != nil {
		return fmt.Errorf("soft delete meal: %w", err)
	}
	return expectOne(res)
}

func (r *repository) Restore(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE meals
		SET is_deleted = FALSE,
			deleted_at = NULL,
			deleted_by = NULL,
			delete_reason = '',
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("restore meal: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrMealNotFound
	}
	return nil
}
