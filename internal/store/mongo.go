package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore backs the Collection contract with a mongo database.
type MongoStore struct {
	db *mongo.Database
}

// Connect dials the mongo deployment at uri and returns a store over the
// named database. The caller owns the client shutdown via Close.
func Connect(ctx context.Context, uri string, database string) (*MongoStore, error) {

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"uri":      uri,
		"database": database,
	}).Info("connected to the database")

	return &MongoStore{db: client.Database(database)}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// EnsureIndexes creates the unique email index on users. Duplicate emails
// then surface from Insert and Replace as DuplicateKeyError.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(Users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoStore) C(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) FindAll(ctx context.Context, results any) error {

	cur, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	return cur.All(ctx, results)
}

func (c *mongoCollection) FindByID(ctx context.Context, id primitive.ObjectID, result any) error {

	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(result)
	if err == mongo.ErrNoDocuments {
		return ErrNoDocuments
	}
	return err
}

func (c *mongoCollection) Insert(ctx context.Context, doc any) error {

	_, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{Field: "email"}
	}
	return err
}

func (c *mongoCollection) Replace(ctx context.Context, id primitive.ObjectID, doc any) error {

	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{Field: "email"}
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocuments
	}
	return nil
}

func (c *mongoCollection) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (c *mongoCollection) DeleteAll(ctx context.Context) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c *mongoCollection) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := c.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
