package audit

import (
	"context"
	"database/sql"
	"fmt"

	"localbite-be/internal/db"
)

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, e *Entry) error {
	_, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO audit_logs (id, actor_id, action, target_type, target_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		e.ID,
		e.ActorID,
		e.Action,
		e.TargetType,
		e.TargetID,
		e.Note,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
