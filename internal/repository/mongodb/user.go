package mongodb

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID           string  `bson:"_id"`
	Username     string  `bson:"username"`
	PasswordHash *string `bson:"password_hash"`
	FullName     string  `bson:"full_name"`
	Position     string  `bson:"position"`
	EmployeeCode string  `bson:"employee_code"`
	DepartmentID *string `bson:"department_id"`
	Level        *int    `bson:"level"`
	Role         string  `bson:"role"`
	PhotoURL     *string `bson:"photo_url"`

	AttendanceStatus string     `bson:"attendance_status"`
	FirstCheckInTime *time.Time `bson:"first_check_in_time"`
	LastCheckInTime  *time.Time `bson:"last_check_in_time"`
	LastCheckOutTime *time.Time `bson:"last_check_out_time"`
	LastComment      *string    `bson:"last_comment"`
	LastLogID        *string    `bson:"last_log_id"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d userDocument) toUser() user.User {
	return user.User{
		ID:               d.ID,
		Username:         d.Username,
		PasswordHash:     d.PasswordHash,
		FullName:         d.FullName,
		Position:         d.Position,
		EmployeeCode:     d.EmployeeCode,
		DepartmentID:     d.DepartmentID,
		Level:            d.Level,
		Role:             user.Role(d.Role),
		PhotoURL:         d.PhotoURL,
		AttendanceStatus: d.AttendanceStatus,
		FirstCheckInTime: d.FirstCheckInTime,
		LastCheckInTime:  d.LastCheckInTime,
		LastCheckOutTime: d.LastCheckOutTime,
		LastComment:      d.LastComment,
		LastLogID:        d.LastLogID,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type userRepository struct {
	users       *mongo.Collection
	departments *mongo.Collection
}

func NewUserRepository(db *database.MongoDB) user.UserRepository {
	return &userRepository{
		users:       db.Collection(usersCollection),
		departments: db.Collection(departmentsCollection),
	}
}

// departmentNames resolves department names for the given users.
func (r *userRepository) departmentNames(ctx context.Context, docs []userDocument) (map[string]string, error) {
	ids := make([]string, 0)
	for _, d := range docs {
		if d.DepartmentID != nil && !slices.Contains(ids, *d.DepartmentID) {
			ids = append(ids, *d.DepartmentID)
		}
	}
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	cursor, err := r.departments.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var dept departmentDocument
		if err := cursor.Decode(&dept); err != nil {
			return nil, err
		}
		names[dept.ID] = dept.Name
	}
	return names, cursor.Err()
}

func (r *userRepository) withDepartments(ctx context.Context, docs []userDocument) ([]user.User, error) {
	names, err := r.departmentNames(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve departments: %w", err)
	}

	users := make([]user.User, 0, len(docs))
	for _, d := range docs {
		u := d.toUser()
		if d.DepartmentID != nil {
			if name, ok := names[*d.DepartmentID]; ok {
				u.DepartmentName = &name
			}
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (user.User, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	users, err := r.withDepartments(ctx, []userDocument{doc})
	if err != nil {
		return user.User{}, err
	}
	return users[0], nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByUsername implements user.UserRepository.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// GetByEmployeeCode implements user.UserRepository.
func (r *userRepository) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	return r.findOne(ctx, bson.M{"employee_code": code})
}

// List implements user.UserRepository.
func (r *userRepository) List(ctx context.Context, filter user.ListUsersFilter) ([]user.User, error) {
	query := bson.M{}
	if filter.Search != nil && *filter.Search != "" {
		pattern := containsFold(*filter.Search)
		query["$or"] = bson.A{
			bson.M{"full_name": pattern},
			bson.M{"username": pattern},
			bson.M{"employee_code": pattern},
		}
	}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		query["department_id"] = *filter.DepartmentID
	}
	if filter.Role != nil && *filter.Role != "" {
		query["role"] = *filter.Role
	}

	cursor, err := r.users.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	// Mongo sorts missing levels first; ranked users go first here.
	slices.SortStableFunc(docs, func(a, b userDocument) int {
		switch {
		case a.Level == nil && b.Level == nil:
		case a.Level == nil:
			return 1
		case b.Level == nil:
			return -1
		case *a.Level != *b.Level:
			return cmp.Compare(*a.Level, *b.Level)
		}
		return cmp.Compare(a.FullName, b.FullName)
	})

	return r.withDepartments(ctx, docs)
}

// CountByDepartment implements user.UserRepository.
func (r *userRepository) CountByDepartment(ctx context.Context, departmentID string) (int64, error) {
	return r.users.CountDocuments(ctx, bson.M{"department_id": departmentID})
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	now := time.Now().UTC()
	doc := userDocument{
		ID:               id.String(),
		Username:         newUser.Username,
		PasswordHash:     newUser.PasswordHash,
		FullName:         newUser.FullName,
		Position:         newUser.Position,
		EmployeeCode:     newUser.EmployeeCode,
		DepartmentID:     newUser.DepartmentID,
		Level:            newUser.Level,
		Role:             string(newUser.Role),
		PhotoURL:         newUser.PhotoURL,
		AttendanceStatus: newUser.AttendanceStatus,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		switch {
		case duplicateOn(err, usernameIndex):
			return user.User{}, user.ErrUsernameExists
		case duplicateOn(err, employeeCodeIndex):
			return user.User{}, user.ErrEmployeeCodeExists
		}
		return user.User{}, err
	}

	return r.GetByID(ctx, doc.ID)
}

// Update implements user.UserRepository.
func (r *userRepository) Update(ctx context.Context, req user.UpdateUserRequest) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if req.FullName != nil {
		set["full_name"] = *req.FullName
	}
	if req.Position != nil {
		set["position"] = *req.Position
	}
	if req.EmployeeCode != nil {
		set["employee_code"] = *req.EmployeeCode
	}
	if req.DepartmentID != nil {
		set["department_id"] = *req.DepartmentID
	} else if req.ClearDepartment {
		unset["department_id"] = ""
	}
	if req.Level != nil {
		set["level"] = *req.Level
	} else if req.ClearLevel {
		unset["level"] = ""
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.PhotoURL != nil {
		set["photo_url"] = *req.PhotoURL
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.users.UpdateOne(ctx, bson.M{"_id": req.ID}, update)
	if err != nil {
		if duplicateOn(err, employeeCodeIndex) {
			return user.ErrEmployeeCodeExists
		}
		return err
	}
	if result.MatchedCount == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implements user.UserRepository.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	result, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// statusMatch matches the stored status. Documents created before the
// status field existed carry no value, which counts as "".
func statusMatch(expected attendance.Status) any {
	if expected == "" {
		return bson.M{"$in": bson.A{"", nil}}
	}
	return string(expected)
}

// UpdateAttendanceState implements user.UserRepository.
func (r *userRepository) UpdateAttendanceState(ctx context.Context, id string, expected attendance.Status, next attendance.State) error {
	filter := bson.M{"_id": id, "attendance_status": statusMatch(expected)}
	update := bson.M{"$set": bson.M{
		"attendance_status":   string(next.Status),
		"first_check_in_time": next.FirstCheckInTime,
		"last_check_in_time":  next.LastCheckInTime,
		"last_check_out_time": next.LastCheckOutTime,
		"last_comment":        next.LastComment,
		"last_log_id":         next.LastLogID,
		"updated_at":          time.Now().UTC(),
	}}

	result, err := r.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return user.ErrStateUpdateNotApplied
	}
	return nil
}

// SetLastComment implements user.UserRepository.
func (r *userRepository) SetLastComment(ctx context.Context, id string, logID string, comment string) error {
	result, err := r.users.UpdateOne(ctx,
		bson.M{"_id": id, "last_log_id": logID},
		bson.M{"$set": bson.M{"last_comment": comment, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return user.ErrStateUpdateNotApplied
	}
	return nil
}

// ResetAttendance implements user.UserRepository.
func (r *userRepository) ResetAttendance(ctx context.Context) (int64, error) {
	result, err := r.users.UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{
		"attendance_status":   string(attendance.StatusAbsent),
		"first_check_in_time": nil,
		"last_check_in_time":  nil,
		"last_check_out_time": nil,
		"last_comment":        nil,
		"last_log_id":         nil,
		"updated_at":          time.Now().UTC(),
	}})
	if err != nil {
		return 0, fmt.Errorf("failed to reset attendance: %w", err)
	}
	return result.MatchedCount, nil
}
