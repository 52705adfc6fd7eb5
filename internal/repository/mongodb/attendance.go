package mongodb

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type logDocument struct {
	ID         string    `bson:"_id"`
	EmployeeID string    `bson:"employee_id"`
	Direction  string    `bson:"direction"`
	Source     string    `bson:"source"`
	RecordedBy string    `bson:"recorded_by"`
	Comment    *string   `bson:"comment"`
	OccurredAt time.Time `bson:"occurred_at"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (d logDocument) toLog() attendance.Log {
	return attendance.Log{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		Direction:  attendance.Direction(d.Direction),
		Source:     attendance.Source(d.Source),
		RecordedBy: d.RecordedBy,
		Comment:    d.Comment,
		OccurredAt: d.OccurredAt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type attendanceLogRepository struct {
	logs  *mongo.Collection
	users *mongo.Collection
}

func NewAttendanceLogRepository(db *database.MongoDB) attendance.LogRepository {
	return &attendanceLogRepository{
		logs:  db.Collection(logsCollection),
		users: db.Collection(usersCollection),
	}
}

// withNames attaches employee names to logs.
func (a *attendanceLogRepository) withNames(ctx context.Context, docs []logDocument) ([]attendance.Log, error) {
	ids := make([]string, 0)
	for _, d := range docs {
		if !slices.Contains(ids, d.EmployeeID) {
			ids = append(ids, d.EmployeeID)
		}
	}

	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		cursor, err := a.users.Find(ctx,
			bson.M{"_id": bson.M{"$in": ids}},
			options.Find().SetProjection(bson.M{"full_name": 1}),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve employee names: %w", err)
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var row struct {
				ID       string `bson:"_id"`
				FullName string `bson:"full_name"`
			}
			if err := cursor.Decode(&row); err != nil {
				return nil, err
			}
			names[row.ID] = row.FullName
		}
		if err := cursor.Err(); err != nil {
			return nil, err
		}
	}

	logs := make([]attendance.Log, 0, len(docs))
	for _, d := range docs {
		l := d.toLog()
		if name, ok := names[d.EmployeeID]; ok {
			l.EmployeeName = &name
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// Create implements attendance.LogRepository.
func (a *attendanceLogRepository) Create(ctx context.Context, log attendance.Log) (attendance.Log, error) {
	id := log.ID
	if id == "" {
		generated, err := uuid.NewV7()
		if err != nil {
			return attendance.Log{}, fmt.Errorf("failed to generate log id: %w", err)
		}
		id = generated.String()
	}

	now := time.Now().UTC()
	doc := logDocument{
		ID:         id,
		EmployeeID: log.EmployeeID,
		Direction:  string(log.Direction),
		Source:     string(log.Source),
		RecordedBy: log.RecordedBy,
		Comment:    log.Comment,
		OccurredAt: log.OccurredAt.UTC(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := a.logs.InsertOne(ctx, doc); err != nil {
		return attendance.Log{}, err
	}
	return doc.toLog(), nil
}

// GetByID implements attendance.LogRepository.
func (a *attendanceLogRepository) GetByID(ctx context.Context, id string) (attendance.Log, error) {
	var doc logDocument
	if err := a.logs.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return attendance.Log{}, attendance.ErrLogNotFound
		}
		return attendance.Log{}, err
	}

	logs, err := a.withNames(ctx, []logDocument{doc})
	if err != nil {
		return attendance.Log{}, err
	}
	return logs[0], nil
}

// UpdateComment implements attendance.LogRepository.
func (a *attendanceLogRepository) UpdateComment(ctx context.Context, id string, comment string) error {
	result, err := a.logs.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"comment": comment, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return attendance.ErrLogNotFound
	}
	return nil
}

// List implements attendance.LogRepository.
func (a *attendanceLogRepository) List(ctx context.Context, filter attendance.LogFilter) ([]attendance.Log, int64, error) {
	query := bson.M{}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		query["employee_id"] = *filter.EmployeeID
	}
	if filter.Direction != nil && *filter.Direction != "" {
		query["direction"] = *filter.Direction
	}

	occurred := bson.M{}
	if filter.From != nil {
		occurred["$gte"] = filter.From.UTC()
	}
	if filter.To != nil {
		occurred["$lt"] = filter.To.UTC()
	}
	if len(occurred) > 0 {
		query["occurred_at"] = occurred
	}

	total, err := a.logs.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance logs: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := a.logs.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance logs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []logDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode attendance logs: %w", err)
	}

	logs, err := a.withNames(ctx, docs)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
