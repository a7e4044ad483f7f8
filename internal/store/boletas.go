package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"onthegomusic/internal/domain"
)

// Boletas is the boletas collection. Receipts are append-only.
type Boletas struct {
	coll *mongo.Collection
}

// NewBoletas binds the boletas collection of db.
func NewBoletas(db *mongo.Database) *Boletas {
	return &Boletas{coll: db.Collection(CollBoletas)}
}

// List returns every receipt, newest first.
func (s *Boletas) List(ctx context.Context) ([]domain.Boleta, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "fecha", Value: -1}}))
	if err != nil {
		return nil, translate(err, "list boletas")
	}
	var out []domain.Boleta
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "list boletas")
	}
	if out == nil {
		out = []domain.Boleta{}
	}
	return out, nil
}

// Get returns one receipt by id.
func (s *Boletas) Get(ctx context.Context, id primitive.ObjectID) (*domain.Boleta, error) {
	var b domain.Boleta
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, translate(err, "get boleta")
	}
	return &b, nil
}

// Create inserts b and sets its generated id.
func (s *Boletas) Create(ctx context.Context, b *domain.Boleta) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, b); err != nil {
		return translate(err, "insert boleta")
	}
	return nil
}
