package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceLogRepository struct {
	db *database.DB
}

func NewAttendanceLogRepository(db *database.DB) attendance.LogRepository {
	return &attendanceLogRepository{db: db}
}

// Create implements attendance.LogRepository.
func (a *attendanceLogRepository) Create(ctx context.Context, log attendance.Log) (attendance.Log, error) {
	q := GetQuerier(ctx, a.db)

	id := log.ID
	if id == "" {
		generated, err := uuid.NewV7()
		if err != nil {
			return attendance.Log{}, fmt.Errorf("failed to generate log id: %w", err)
		}
		id = generated.String()
	}

	query := `
		INSERT INTO attendance_logs (id, employee_id, direction, source, recorded_by, comment, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, direction, source, recorded_by, comment, occurred_at, created_at, updated_at
	`

	var created attendance.Log
	err := q.QueryRow(ctx, query,
		id, log.EmployeeID, log.Direction, log.Source, log.RecordedBy, log.Comment, log.OccurredAt,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Direction, &created.Source, &created.RecordedBy,
		&created.Comment, &created.OccurredAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isConstraintViolation(err, pgForeignKeyViolation, "") {
			return attendance.Log{}, attendance.ErrEmployeeNotFound
		}
		return attendance.Log{}, err
	}

	return created, nil
}

// GetByID implements attendance.LogRepository.
func (a *attendanceLogRepository) GetByID(ctx context.Context, id string) (attendance.Log, error) {
	if _, err := uuid.Parse(id); err != nil {
		return attendance.Log{}, attendance.ErrLogNotFound
	}

	q := GetQuerier(ctx, a.db)

	query := `
		SELECT l.id, l.employee_id, l.direction, l.source, l.recorded_by, l.comment,
			l.occurred_at, l.created_at, l.updated_at, u.full_name
		FROM attendance_logs l
		LEFT JOIN users u ON u.id = l.employee_id
		WHERE l.id = $1
	`

	var l attendance.Log
	err := q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.EmployeeID, &l.Direction, &l.Source, &l.RecordedBy, &l.Comment,
		&l.OccurredAt, &l.CreatedAt, &l.UpdatedAt, &l.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Log{}, attendance.ErrLogNotFound
		}
		return attendance.Log{}, err
	}

	return l, nil
}

// UpdateComment implements attendance.LogRepository.
func (a *attendanceLogRepository) UpdateComment(ctx context.Context, id string, comment string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE attendance_logs SET comment = $1, updated_at = NOW() WHERE id = $2`,
		comment, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrLogNotFound
	}

	return nil
}

// List implements attendance.LogRepository.
func (a *attendanceLogRepository) List(ctx context.Context, filter attendance.LogFilter) ([]attendance.Log, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		if _, err := uuid.Parse(*filter.EmployeeID); err != nil {
			return nil, 0, nil
		}
		baseWhere += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.From != nil {
		baseWhere += fmt.Sprintf(" AND l.occurred_at >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseWhere += fmt.Sprintf(" AND l.occurred_at < $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	if filter.Direction != nil && *filter.Direction != "" {
		baseWhere += fmt.Sprintf(" AND l.direction = $%d", argIdx)
		args = append(args, *filter.Direction)
		argIdx++
	}

	countQuery := `SELECT COUNT(*) FROM attendance_logs l WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance logs: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT l.id, l.employee_id, l.direction, l.source, l.recorded_by, l.comment,
			l.occurred_at, l.created_at, l.updated_at, u.full_name
		FROM attendance_logs l
		LEFT JOIN users u ON u.id = l.employee_id
		WHERE %s
		ORDER BY l.occurred_at DESC, l.id DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.Log
	for rows.Next() {
		var l attendance.Log
		err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.Direction, &l.Source, &l.RecordedBy, &l.Comment,
			&l.OccurredAt, &l.CreatedAt, &l.UpdatedAt, &l.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, total, rows.Err()
}
