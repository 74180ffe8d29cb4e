package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"localbite-be/internal/db"
	"localbite-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Upsert(ctx context.Context, u *User) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p UpdateProfileParams) (*User, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// rating columns are read here but written only by the rating aggregator
const userColumns = `id, uid, full_name, email, role, avatar, location_label, is_verified,
	avg_cook_rating, cook_rating_count, is_deleted, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.UID,
		&u.FullName,
		&u.Email,
		&u.Role,
		&u.Avatar,
		&u.LocationLabel,
		&u.IsVerified,
		&u.CookRating.Average,
		&u.CookRating.Count,
		&u.IsDeleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := db.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND is_deleted = FALSE`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *repository) Upsert(ctx context.Context, u *User) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Upsert"),
		zap.String("user_id", u.ID.String()),
	)

	query := `
		INSERT INTO users (id, uid, full_name, email, role, avatar, location_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			uid = EXCLUDED.uid,
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			avatar = EXCLUDED.avatar,
			location_label = EXCLUDED.location_label,
			updated_at = NOW()
		RETURNING ` + userColumns

	row := db.Conn(ctx, r.db).QueryRowContext(ctx, query,
		u.ID, u.UID, u.FullName, u.Email, u.Role, u.Avatar, u.LocationLabel,
	)

	saved, err := scanUser(row)
	if err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			log.Warn("email already in use")
			return nil, ErrEmailExists
		}
		log.Error("failed to upsert user", zap.Error(err))
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return saved, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, p UpdateProfileParams) (*User, error) {
	// COALESCE keeps the stored value for nil fields
	query := `
		UPDATE users
		SET full_name = COALESCE($2, full_name),
			location_label = COALESCE($3, location_label),
			avatar = COALESCE($4, avatar),
			updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + userColumns

	row := db.Conn(ctx, r.db).QueryRowContext(ctx, query, id, p.FullName, p.LocationLabel, p.Avatar)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user profile: %w", err)
	}
	return u, nil
}

func (r *repository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*User, error) {
	query := `
		UPDATE users
		SET is_verified = $2, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + userColumns

	u, err := scanUser(db.Conn(ctx, r.db).QueryRowContext(ctx, query, id, verified))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set user verified: %w", err)
	}
	return u, nil
}
