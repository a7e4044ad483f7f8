package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"onthegomusic/internal/domain"
)

// Productos is the productos collection.
type Productos struct {
	coll *mongo.Collection
}

// NewProductos binds the productos collection of db.
func NewProductos(db *mongo.Database) *Productos {
	return &Productos{coll: db.Collection(CollProductos)}
}

// List returns the whole catalog.
func (s *Productos) List(ctx context.Context) ([]domain.Producto, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, translate(err, "list productos")
	}
	var out []domain.Producto
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "list productos")
	}
	if out == nil {
		out = []domain.Producto{}
	}
	return out, nil
}

// Get returns one product by id.
func (s *Productos) Get(ctx context.Context, id primitive.ObjectID) (*domain.Producto, error) {
	var p domain.Producto
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate(err, "get producto")
	}
	return &p, nil
}

// Create inserts p and sets its generated id.
func (s *Productos) Create(ctx context.Context, p *domain.Producto) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return translate(err, "insert producto")
	}
	return nil
}

// Update merges the non-nil fields of patch onto the product and returns the result.
func (s *Productos) Update(ctx context.Context, id primitive.ObjectID, patch domain.ProductoPatch) (*domain.Producto, error) {
	set := bson.M{}
	setIf(set, "codigo", patch.Codigo)
	setIf(set, "title", patch.Title)
	setIf(set, "descripcion", patch.Descripcion)
	setIf(set, "price", patch.Price)
	setIf(set, "stock", patch.Stock)
	setIf(set, "stockCritico", patch.StockCritico)
	setIf(set, "categoria", patch.Categoria)
	setIf(set, "image", patch.Image)
	setIf(set, "miniatura1", patch.Miniatura1)
	setIf(set, "miniatura2", patch.Miniatura2)
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	var p domain.Producto
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err != nil {
		return nil, translate(err, "update producto")
	}
	return &p, nil
}

// Delete removes the product.
func (s *Productos) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete producto")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
