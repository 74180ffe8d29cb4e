package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"localbite-be/internal/db"
	"localbite-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	List(ctx context.Context) ([]*Report, error)
	// Assign and Close only touch reports that are still open or under review.
	Assign(ctx context.Context, id, adminID uuid.UUID) error
	Close(ctx context.Context, id uuid.UUID, status Status, action Action, note string, at time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const reportSelect = `
	SELECT
		id, reporter_id, target_type, target_id, category, description,
		status, assigned_to, action_taken, resolution_note, resolved_at,
		created_at, updated_at
	FROM reports
`

func scanReport(row interface{ Scan(...any) error }) (*Report, error) {
	var r Report
	err := row.Scan(
		&r.ID, &r.ReporterID, &r.TargetType, &r.TargetID, &r.Category, &r.Description,
		&r.Status, &r.AssignedTo, &r.ActionTaken, &r.ResolutionNote, &r.ResolvedAt,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *repository) Create(ctx context.Context, rep *Report) error {
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO reports (id, reporter_id, target_type, target_id, category, description, status, action_taken)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`,
		rep.ID, rep.ReporterID, rep.TargetType, rep.TargetID,
		rep.Category, rep.Description, rep.Status, rep.ActionTaken,
	).Scan(&rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert report",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	rep, err := scanReport(db.Conn(ctx, r.db).QueryRowContext(ctx, reportSelect+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

func (r *repository) List(ctx context.Context) ([]*Report, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx,
		reportSelect+" ORDER BY status, created_at DESC LIMIT $1", listLimit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func (r *repository) Assign(ctx context.Context, id, adminID uuid.UUID) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE reports
		SET status = 'under_review', assigned_to = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('open', 'under_review')
	`, id, adminID)
	if err != nil {
		return fmt.Errorf("assign report: %w", err)
	}
	return expectOne(res)
}

func (r *repository) Close(ctx context.Context, id uuid.UUID, status Status, action Action, note string, at time.Time) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE reports
		SET status = $2, action_taken = $3, resolution_note = $4, resolved_at = $5, updated_at = NOW()
		WHERE id = $1 AND status IN ('open', 'under_review')
	`, id, status, action, note, at)
	if err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrReportClosed
	}
	return nil
}
