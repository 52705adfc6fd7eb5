package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `
	u.id, u.username, u.password_hash, u.full_name, u.position, u.employee_code,
	u.department_id, u.level, u.role, u.photo_url,
	u.attendance_status, u.first_check_in_time, u.last_check_in_time, u.last_check_out_time,
	u.last_comment, u.last_log_id, u.created_at, u.updated_at,
	d.name AS department_name`

const userFrom = `
	FROM users u
	LEFT JOIN departments d ON d.id = u.department_id`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Position, &u.EmployeeCode,
		&u.DepartmentID, &u.Level, &u.Role, &u.PhotoURL,
		&u.AttendanceStatus, &u.FirstCheckInTime, &u.LastCheckInTime, &u.LastCheckOutTime,
		&u.LastComment, &u.LastLogID, &u.CreatedAt, &u.UpdatedAt,
		&u.DepartmentName,
	)
	return u, err
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + userFrom + ` WHERE ` + where
	u, err := scanUser(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrUserNotFound
	}
	return r.getOne(ctx, "u.id = $1", id)
}

// GetByUsername implements user.UserRepository.
func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.getOne(ctx, "u.username = $1", username)
}

// GetByEmployeeCode implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	return r.getOne(ctx, "u.employee_code = $1", code)
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListUsersFilter) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (u.full_name ILIKE $%d OR u.username ILIKE $%d OR u.employee_code ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		baseWhere += fmt.Sprintf(" AND u.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}

	if filter.Role != nil && *filter.Role != "" {
		baseWhere += fmt.Sprintf(" AND u.role = $%d", argIdx)
		args = append(args, *filter.Role)
	}

	query := `SELECT ` + userColumns + userFrom + `
		WHERE ` + baseWhere + `
		ORDER BY u.level ASC NULLS LAST, u.full_name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// CountByDepartment implements user.UserRepository.
func (r *userRepositoryImpl) CountByDepartment(ctx context.Context, departmentID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE department_id = $1`, departmentID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	query := `
		INSERT INTO users (
			id, username, password_hash, full_name, position, employee_code,
			department_id, level, role, photo_url, attendance_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = q.Exec(ctx, query,
		id.String(), newUser.Username, newUser.PasswordHash, newUser.FullName, newUser.Position,
		newUser.EmployeeCode, newUser.DepartmentID, newUser.Level, newUser.Role, newUser.PhotoURL,
		newUser.AttendanceStatus,
	)
	if err != nil {
		switch {
		case isConstraintViolation(err, pgUniqueViolation, "users_username_key"):
			return user.User{}, user.ErrUsernameExists
		case isConstraintViolation(err, pgUniqueViolation, "users_employee_code_key"):
			return user.User{}, user.ErrEmployeeCodeExists
		}
		return user.User{}, err
	}

	return r.GetByID(ctx, id.String())
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	set := func(column string, value any) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.FullName != nil {
		set("full_name", *req.FullName)
	}
	if req.Position != nil {
		set("position", *req.Position)
	}
	if req.EmployeeCode != nil {
		set("employee_code", *req.EmployeeCode)
	}
	if req.DepartmentID != nil {
		set("department_id", *req.DepartmentID)
	} else if req.ClearDepartment {
		updates = append(updates, "department_id = NULL")
	}
	if req.Level != nil {
		set("level", *req.Level)
	} else if req.ClearLevel {
		updates = append(updates, "level = NULL")
	}
	if req.Role != nil {
		set("role", *req.Role)
	}
	if req.PhotoURL != nil {
		set("photo_url", *req.PhotoURL)
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(updates, ", "), argIdx)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isConstraintViolation(err, pgUniqueViolation, "users_employee_code_key") {
			return user.ErrEmployeeCodeExists
		}
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return user.ErrUserNotFound
	}

	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdateAttendanceState implements user.UserRepository.
func (r *userRepositoryImpl) UpdateAttendanceState(ctx context.Context, id string, expected attendance.Status, next attendance.State) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET attendance_status = $1,
			first_check_in_time = $2,
			last_check_in_time = $3,
			last_check_out_time = $4,
			last_comment = $5,
			last_log_id = $6,
			updated_at = NOW()
		WHERE id = $7 AND COALESCE(attendance_status, '') = $8
	`

	commandTag, err := q.Exec(ctx, query,
		string(next.Status), next.FirstCheckInTime, next.LastCheckInTime, next.LastCheckOutTime,
		next.LastComment, next.LastLogID, id, string(expected),
	)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrStateUpdateNotApplied
	}

	return nil
}

// SetLastComment implements user.UserRepository.
func (r *userRepositoryImpl) SetLastComment(ctx context.Context, id string, logID string, comment string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE users SET last_comment = $1, updated_at = NOW() WHERE id = $2 AND last_log_id = $3`,
		comment, id, logID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrStateUpdateNotApplied
	}
	return nil
}

// ResetAttendance implements user.UserRepository.
func (r *userRepositoryImpl) ResetAttendance(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET attendance_status = $1,
			first_check_in_time = NULL,
			last_check_in_time = NULL,
			last_check_out_time = NULL,
			last_comment = NULL,
			last_log_id = NULL,
			updated_at = NOW()
	`

	commandTag, err := q.Exec(ctx, query, string(attendance.StatusAbsent))
	if err != nil {
		return 0, fmt.Errorf("failed to reset attendance: %w", err)
	}

	return commandTag.RowsAffected(), nil
}
