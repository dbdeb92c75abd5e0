package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nodebucket/nodebucket/internal/employee"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores one document per employee, keyed by "empId", with the
// todo and done lists embedded in it.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

// EnsureIndexes creates the unique index on empId. Safe to call on every start.
func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "empId", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := m.col.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("create empId index: %w", err)
	}
	return nil
}

func (m *MongoRepo) Create(ctx context.Context, e *employee.Employee) error {
	doc := e.Clone()
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (m *MongoRepo) Get(ctx context.Context, employeeID string) (*employee.Employee, error) {
	var e employee.Employee
	if err := m.col.FindOne(ctx, bson.M{"empId": employeeID}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return e.Clone(), nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*employee.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "empId", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)
	out := []*employee.Employee{}
	for cur.Next(ctx) {
		var e employee.Employee
		if err := cur.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		out = append(out, e.Clone())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) UpdateProfile(ctx context.Context, employeeID string, firstName, lastName *string) (*employee.Employee, error) {
	set := bson.M{}
	if firstName != nil {
		set["firstName"] = *firstName
	}
	if lastName != nil {
		set["lastName"] = *lastName
	}
	if len(set) == 0 {
		return m.Get(ctx, employeeID)
	}
	return m.findAndSet(ctx, employeeID, set)
}

// SaveTasks overwrites both lists in a single update. Whatever was stored
// before is discarded.
func (m *MongoRepo) SaveTasks(ctx context.Context, employeeID string, todo, done []employee.Task) (*employee.Employee, error) {
	if todo == nil {
		todo = []employee.Task{}
	}
	if done == nil {
		done = []employee.Task{}
	}
	return m.findAndSet(ctx, employeeID, bson.M{"todo": todo, "done": done})
}

func (m *MongoRepo) findAndSet(ctx context.Context, employeeID string, set bson.M) (*employee.Employee, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var e employee.Employee
	err := m.col.FindOneAndUpdate(ctx, bson.M{"empId": employeeID}, bson.M{"$set": set}, opts).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return e.Clone(), nil
}

func (m *MongoRepo) Delete(ctx context.Context, employeeID string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"empId": employeeID})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}
