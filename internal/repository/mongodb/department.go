package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davomat/davomat-backend-go/internal/domain/department"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type departmentDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description *string   `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d departmentDocument) toDepartment() department.Department {
	return department.Department{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type departmentRepository struct {
	departments *mongo.Collection
	users       *mongo.Collection
}

func NewDepartmentRepository(db *database.MongoDB) department.DepartmentRepository {
	return &departmentRepository{
		departments: db.Collection(departmentsCollection),
		users:       db.Collection(usersCollection),
	}
}

// Create implements department.DepartmentRepository.
func (r *departmentRepository) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to generate department id: %w", err)
	}

	now := time.Now().UTC()
	doc := departmentDocument{
		ID:          id.String(),
		Name:        dept.Name,
		Description: dept.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.departments.InsertOne(ctx, doc); err != nil {
		if duplicateOn(err, departmentIndex) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, err
	}

	return doc.toDepartment(), nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	var doc departmentDocument
	if err := r.departments.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}

	d := doc.toDepartment()
	count, err := r.users.CountDocuments(ctx, bson.M{"department_id": id})
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to count employees: %w", err)
	}
	d.EmployeeCount = count
	return d, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepository) List(ctx context.Context) ([]department.Department, error) {
	cursor, err := r.departments.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []departmentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode departments: %w", err)
	}

	counts, err := r.employeeCounts(ctx)
	if err != nil {
		return nil, err
	}

	departments := make([]department.Department, 0, len(docs))
	for _, doc := range docs {
		d := doc.toDepartment()
		d.EmployeeCount = counts[d.ID]
		departments = append(departments, d)
	}
	return departments, nil
}

func (r *departmentRepository) employeeCounts(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"department_id": bson.M{"$ne": nil}}}},
		{{Key: "$group", Value: bson.M{"_id": "$department_id", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cursor.Err()
}

// Update implements department.DepartmentRepository.
func (r *departmentRepository) Update(ctx context.Context, req department.UpdateDepartmentRequest) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}

	result, err := r.departments.UpdateOne(ctx, bson.M{"_id": req.ID}, bson.M{"$set": set})
	if err != nil {
		if duplicateOn(err, departmentIndex) {
			return department.ErrDepartmentNameExists
		}
		return err
	}
	if result.MatchedCount == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.departments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if result.DeletedCount == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}
