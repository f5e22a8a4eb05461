package repository

import (
	"context"
	"fmt"

	"github.com/folio/backend/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// contactsCollection is the Mongo collection holding submissions.
const contactsCollection = "contacts"

// NewMongoClient configures a client for uri. The driver dials in the
// background, so an unreachable server surfaces on the first operation.
func NewMongoClient(uri string) (*mongo.Client, error) {
	return mongo.Connect(options.Client().ApplyURI(uri))
}

// MongoContactRepository stores contact documents in a MongoDB collection.
type MongoContactRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

// NewMongoContactRepository uses the contacts collection of db.
func NewMongoContactRepository(db *mongo.Database) *MongoContactRepository {
	return &MongoContactRepository{db: db, coll: db.Collection(contactsCollection)}
}

var _ ContactRepository = (*MongoContactRepository)(nil)

// Insert lets the driver generate the ObjectID and returns it in hex.
func (r *MongoContactRepository) Insert(ctx context.Context, doc *model.ContactDocument) (string, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	switch id := res.InsertedID.(type) {
	case bson.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	case nil:
		return "", ErrMissingID
	default:
		return fmt.Sprint(id), nil
	}
}

// FindAll returns every document with _id projected out.
func (r *MongoContactRepository) FindAll(ctx context.Context) ([]*model.ContactDocument, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	docs := []*model.ContactDocument{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Ping checks that the primary is reachable.
func (r *MongoContactRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}
