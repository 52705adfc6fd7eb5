package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection       = "users"
	departmentsCollection = "departments"
	logsCollection        = "attendance_logs"

	usernameIndex     = "users_username_key"
	employeeCodeIndex = "users_employee_code_key"
	departmentIndex   = "departments_name_key"
)

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
// It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *database.MongoDB) error {
	unique := func(name string) *options.IndexOptions {
		return options.Index().SetName(name).SetUnique(true)
	}

	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique(usernameIndex)},
			{Keys: bson.D{{Key: "employee_code", Value: 1}}, Options: unique(employeeCodeIndex)},
			{Keys: bson.D{{Key: "department_id", Value: 1}}},
		},
		departmentsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique(departmentIndex)},
		},
		logsCollection: {
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
			{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

type sessionTransactor struct {
	client *mongo.Client
}

// NewTransactor returns a database.Transactor running fn in a multi-document
// transaction. Transactions need a replica set, so when enabled is false a
// no-op transactor is returned and callers rely on conditional updates alone.
func NewTransactor(db *database.MongoDB, enabled bool) database.Transactor {
	if !enabled {
		return database.NoopTransactor{}
	}
	return &sessionTransactor{client: db.Client}
}

func (t *sessionTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// duplicateOn reports whether err is a duplicate key error on the named index.
func duplicateOn(err error, index string) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), index)
}

// containsFold matches value anywhere in the field, ignoring case.
func containsFold(value string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
}
